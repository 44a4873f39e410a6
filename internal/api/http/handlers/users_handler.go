package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/prodline/workorder-tracker/internal/access"
	"github.com/prodline/workorder-tracker/internal/api/dto"
	"github.com/prodline/workorder-tracker/internal/domain"
	"github.com/prodline/workorder-tracker/internal/service"
	apperrors "github.com/prodline/workorder-tracker/pkg/util/errorutil"
)

// UsersHandler manages user administration endpoints.
type UsersHandler struct {
	guard   *access.Guard
	service *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(guard *access.Guard, userService *service.UserService) *UsersHandler {
	return &UsersHandler{guard: guard, service: userService}
}

// List GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	if _, err := h.guard.CheckAccess(c.UserContext(), domain.ActionUserList, bearerToken(c), ""); err != nil {
		return err
	}
	users, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	if _, err := h.guard.CheckAccess(c.UserContext(), domain.ActionUserRead, bearerToken(c), c.Params("id")); err != nil {
		return err
	}
	user, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// UpdateRole PATCH /users/:id/role.
func (h *UsersHandler) UpdateRole(c *fiber.Ctx) error {
	if _, err := h.guard.CheckAccess(c.UserContext(), domain.ActionUserUpdateRole, bearerToken(c), c.Params("id")); err != nil {
		return err
	}
	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.service.UpdateRole(c.UserContext(), c.Params("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// UpdateAccess PATCH /users/:id/access.
func (h *UsersHandler) UpdateAccess(c *fiber.Ctx) error {
	if _, err := h.guard.CheckAccess(c.UserContext(), domain.ActionUserUpdateAccess, bearerToken(c), c.Params("id")); err != nil {
		return err
	}
	var req dto.UpdateAccessRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.service.UpdateAccess(c.UserContext(), c.Params("id"), req.AccessGranted)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// UpdateProfile PATCH /users/:id.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	if _, err := h.guard.CheckAccess(c.UserContext(), domain.ActionUserUpdateProfile, bearerToken(c), c.Params("id")); err != nil {
		return err
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.service.UpdateProfile(c.UserContext(), c.Params("id"), req.FullName)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// Delete DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if _, err := h.guard.CheckAccess(c.UserContext(), domain.ActionUserDelete, bearerToken(c), c.Params("id")); err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "user deleted"})
}
