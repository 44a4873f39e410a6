package domain

import "time"

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "Low"
	TicketPriorityMedium TicketPriority = "Medium"
	TicketPriorityHigh   TicketPriority = "High"
)

// Valid reports whether the priority is a known level.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
		return true
	}
	return false
}

// MaxTicketImages bounds the image URL sequence on a ticket.
const MaxTicketImages = 5

// Ticket is an issue report attached to a work order.
// SubmittedBy is set once at creation to the authenticated caller and is
// never editable afterwards.
type Ticket struct {
	ID           string
	TicketNumber string
	WorkOrderID  string
	AreaID       string
	SubmittedBy  string
	Priority     TicketPriority
	Description  string
	ImageURLs    []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
