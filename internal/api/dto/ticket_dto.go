package dto

import (
	"time"

	"github.com/prodline/workorder-tracker/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	WorkOrderID string                `json:"work_order_id"`
	AreaID      string                `json:"area_id"`
	Priority    domain.TicketPriority `json:"priority"`
	Description string                `json:"description"`
	ImageURLs   []string              `json:"image_urls"`
}

// UpdateTicketRequest payload. submitted_by is not an accepted field;
// unknown JSON keys are ignored by the parser.
type UpdateTicketRequest struct {
	WorkOrderID *string                `json:"work_order_id"`
	AreaID      *string                `json:"area_id"`
	Priority    *domain.TicketPriority `json:"priority"`
	Description *string                `json:"description"`
	ImageURLs   *[]string              `json:"image_urls"`
}

// TicketResponse representation.
type TicketResponse struct {
	ID           string                `json:"id"`
	TicketNumber string                `json:"ticket_number"`
	WorkOrderID  string                `json:"work_order_id"`
	AreaID       string                `json:"area_id"`
	SubmittedBy  string                `json:"submitted_by"`
	Priority     domain.TicketPriority `json:"priority"`
	Description  string                `json:"description"`
	ImageURLs    []string              `json:"image_urls"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// UploadResponse aggregates one image batch.
type UploadResponse struct {
	URLs    []string `json:"urls"`
	Errors  []string `json:"errors"`
	Partial bool     `json:"partial"`
}
