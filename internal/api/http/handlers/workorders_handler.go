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

// WorkOrdersHandler manages work order endpoints.
type WorkOrdersHandler struct {
	guard   *access.Guard
	service *service.WorkOrderService
}

// NewWorkOrdersHandler constructs handler.
func NewWorkOrdersHandler(guard *access.Guard, workOrderService *service.WorkOrderService) *WorkOrdersHandler {
	return &WorkOrdersHandler{guard: guard, service: workOrderService}
}

// Create POST /work-orders.
func (h *WorkOrdersHandler) Create(c *fiber.Ctx) error {
	caller, err := h.guard.CheckAccess(c.UserContext(), domain.ActionWorkOrderCreate, bearerToken(c), "")
	if err != nil {
		return err
	}
	var req dto.CreateWorkOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Description == "" {
		return apperrors.NewValidationError("description required", nil)
	}

	order, err := h.service.Create(c.UserContext(), caller, service.WorkOrderCreateInput{
		ASMNumber:   req.ASMNumber,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": workOrderResponse(order)})
}

// List GET /work-orders.
func (h *WorkOrdersHandler) List(c *fiber.Ctx) error {
	if _, err := h.guard.CheckAccess(c.UserContext(), domain.ActionWorkOrderRead, bearerToken(c), ""); err != nil {
		return err
	}
	var search *string
	if val := c.Query("search"); val != "" {
		search = &val
	}
	var status *domain.WorkOrderStatus
	if val := c.Query("status"); val != "" {
		s := domain.WorkOrderStatus(val)
		status = &s
	}
	orders, err := h.service.List(c.UserContext(), search, status)
	if err != nil {
		return err
	}
	items := make([]dto.WorkOrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, workOrderResponse(&orders[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /work-orders/:id.
func (h *WorkOrdersHandler) Get(c *fiber.Ctx) error {
	if _, err := h.guard.CheckAccess(c.UserContext(), domain.ActionWorkOrderRead, bearerToken(c), c.Params("id")); err != nil {
		return err
	}
	detail, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	tickets := make([]dto.TicketResponse, 0, len(detail.Tickets))
	for i := range detail.Tickets {
		tickets = append(tickets, ticketResponse(&detail.Tickets[i]))
	}
	return c.JSON(fiber.Map{"data": dto.WorkOrderDetailResponse{
		WorkOrderResponse: workOrderResponse(&detail.WorkOrder),
		Tickets:           tickets,
	}})
}

// Update PATCH /work-orders/:id.
func (h *WorkOrdersHandler) Update(c *fiber.Ctx) error {
	caller, err := h.guard.CheckAccess(c.UserContext(), domain.ActionWorkOrderUpdate, bearerToken(c), c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.UpdateWorkOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	order, err := h.service.Update(c.UserContext(), caller, c.Params("id"), service.WorkOrderUpdateInput{
		ASMNumber:   req.ASMNumber,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": workOrderResponse(order)})
}

// Delete DELETE /work-orders/:id.
func (h *WorkOrdersHandler) Delete(c *fiber.Ctx) error {
	if _, err := h.guard.CheckAccess(c.UserContext(), domain.ActionWorkOrderDelete, bearerToken(c), c.Params("id")); err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "work order deleted"})
}
