package handlers

import (
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/prodline/workorder-tracker/internal/access"
	"github.com/prodline/workorder-tracker/internal/api/dto"
	"github.com/prodline/workorder-tracker/internal/domain"
	"github.com/prodline/workorder-tracker/internal/service"
	"github.com/prodline/workorder-tracker/internal/upload"
	apperrors "github.com/prodline/workorder-tracker/pkg/util/errorutil"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	guard    *access.Guard
	service  *service.TicketService
	pipeline *upload.Pipeline
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(guard *access.Guard, ticketService *service.TicketService, pipeline *upload.Pipeline) *TicketsHandler {
	return &TicketsHandler{guard: guard, service: ticketService, pipeline: pipeline}
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	caller, err := h.guard.CheckAccess(c.UserContext(), domain.ActionTicketCreate, bearerToken(c), "")
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.WorkOrderID == "" || req.AreaID == "" || req.Description == "" {
		return apperrors.NewValidationError("work_order_id, area_id, description required", nil)
	}

	ticket, err := h.service.Create(c.UserContext(), caller, service.TicketCreateInput{
		WorkOrderID: req.WorkOrderID,
		AreaID:      req.AreaID,
		Priority:    req.Priority,
		Description: req.Description,
		ImageURLs:   req.ImageURLs,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// List GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	if _, err := h.guard.CheckAccess(c.UserContext(), domain.ActionTicketRead, bearerToken(c), ""); err != nil {
		return err
	}
	var workOrderID *string
	if val := c.Query("work_order_id"); val != "" {
		workOrderID = &val
	}
	tickets, err := h.service.List(c.UserContext(), workOrderID)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	if _, err := h.guard.CheckAccess(c.UserContext(), domain.ActionTicketRead, bearerToken(c), c.Params("id")); err != nil {
		return err
	}
	ticket, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// Update PATCH /tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	caller, err := h.guard.CheckAccess(c.UserContext(), domain.ActionTicketUpdate, bearerToken(c), c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.Update(c.UserContext(), caller, c.Params("id"), service.TicketUpdateInput{
		WorkOrderID: req.WorkOrderID,
		AreaID:      req.AreaID,
		Priority:    req.Priority,
		Description: req.Description,
		ImageURLs:   req.ImageURLs,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// Delete DELETE /tickets/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	caller, err := h.guard.CheckAccess(c.UserContext(), domain.ActionTicketDelete, bearerToken(c), c.Params("id"))
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), caller, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "ticket deleted"})
}

// UploadImages POST /tickets/upload. Accepts up to five files under the
// "images" multipart field.
func (h *TicketsHandler) UploadImages(c *fiber.Ctx) error {
	caller, err := h.guard.CheckAccess(c.UserContext(), domain.ActionImageUpload, bearerToken(c), "")
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return apperrors.NewValidationError("multipart form required", nil)
	}

	var files []upload.FileInput
	for _, header := range form.File["images"] {
		file, err := header.Open()
		if err != nil {
			return apperrors.NewValidationError("unreadable file", map[string]any{"file": header.Filename})
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return apperrors.NewValidationError("unreadable file", map[string]any{"file": header.Filename})
		}
		files = append(files, upload.FileInput{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	result, err := h.pipeline.UploadImages(c.UserContext(), caller, files)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.UploadResponse{
		URLs:    result.URLs,
		Errors:  result.Errors,
		Partial: result.Partial,
	}})
}
