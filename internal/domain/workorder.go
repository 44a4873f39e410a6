package domain

import "time"

// WorkOrderStatus enumerates lifecycle states for work orders.
type WorkOrderStatus string

const (
	WorkOrderStatusOpen       WorkOrderStatus = "Open"
	WorkOrderStatusInProgress WorkOrderStatus = "In Progress"
	WorkOrderStatusCompleted  WorkOrderStatus = "Completed"
	WorkOrderStatusOnHold     WorkOrderStatus = "On Hold"
)

// Valid reports whether the status is a known state.
func (s WorkOrderStatus) Valid() bool {
	switch s {
	case WorkOrderStatusOpen, WorkOrderStatusInProgress, WorkOrderStatusCompleted, WorkOrderStatusOnHold:
		return true
	}
	return false
}

// WorkOrder is a production job record that groups tickets.
type WorkOrder struct {
	ID              string
	WorkOrderNumber string
	ASMNumber       string
	Description     string
	Status          WorkOrderStatus
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
