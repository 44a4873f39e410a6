package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/prodline/workorder-tracker/internal/access"
	"github.com/prodline/workorder-tracker/internal/api/dto"
	"github.com/prodline/workorder-tracker/internal/domain"
	"github.com/prodline/workorder-tracker/internal/service"
	apperrors "github.com/prodline/workorder-tracker/pkg/util/errorutil"
)

// AreasHandler manages area endpoints.
type AreasHandler struct {
	guard   *access.Guard
	service *service.AreaService
}

// NewAreasHandler constructs handler.
func NewAreasHandler(guard *access.Guard, areaService *service.AreaService) *AreasHandler {
	return &AreasHandler{guard: guard, service: areaService}
}

// Create POST /areas.
func (h *AreasHandler) Create(c *fiber.Ctx) error {
	if _, err := h.guard.CheckAccess(c.UserContext(), domain.ActionAreaCreate, bearerToken(c), ""); err != nil {
		return err
	}
	var req dto.AreaRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	area, err := h.service.Create(c.UserContext(), req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": areaResponse(area)})
}

// List GET /areas.
func (h *AreasHandler) List(c *fiber.Ctx) error {
	if _, err := h.guard.CheckAccess(c.UserContext(), domain.ActionAreaRead, bearerToken(c), ""); err != nil {
		return err
	}
	areas, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.AreaResponse, 0, len(areas))
	for i := range areas {
		items = append(items, areaResponse(&areas[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /areas/:id.
func (h *AreasHandler) Get(c *fiber.Ctx) error {
	if _, err := h.guard.CheckAccess(c.UserContext(), domain.ActionAreaRead, bearerToken(c), c.Params("id")); err != nil {
		return err
	}
	area, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": areaResponse(area)})
}

// Update PATCH /areas/:id.
func (h *AreasHandler) Update(c *fiber.Ctx) error {
	if _, err := h.guard.CheckAccess(c.UserContext(), domain.ActionAreaUpdate, bearerToken(c), c.Params("id")); err != nil {
		return err
	}
	var req dto.AreaRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	area, err := h.service.Update(c.UserContext(), c.Params("id"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": areaResponse(area)})
}

// Delete DELETE /areas/:id.
func (h *AreasHandler) Delete(c *fiber.Ctx) error {
	if _, err := h.guard.CheckAccess(c.UserContext(), domain.ActionAreaDelete, bearerToken(c), c.Params("id")); err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "area deleted"})
}
