package dto

import (
	"time"

	"github.com/prodline/workorder-tracker/internal/domain"
)

// CreateWorkOrderRequest payload.
type CreateWorkOrderRequest struct {
	ASMNumber   string                 `json:"asm_number"`
	Description string                 `json:"description"`
	Status      domain.WorkOrderStatus `json:"status"`
}

// UpdateWorkOrderRequest payload.
type UpdateWorkOrderRequest struct {
	ASMNumber   *string                 `json:"asm_number"`
	Description *string                 `json:"description"`
	Status      *domain.WorkOrderStatus `json:"status"`
}

// WorkOrderResponse representation.
type WorkOrderResponse struct {
	ID              string                 `json:"id"`
	WorkOrderNumber string                 `json:"work_order_number"`
	ASMNumber       string                 `json:"asm_number"`
	Description     string                 `json:"description"`
	Status          domain.WorkOrderStatus `json:"status"`
	CreatedBy       string                 `json:"created_by"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// WorkOrderDetailResponse includes the grouped tickets.
type WorkOrderDetailResponse struct {
	WorkOrderResponse
	Tickets []TicketResponse `json:"tickets"`
}
