package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prodline/workorder-tracker/internal/domain"
	"github.com/prodline/workorder-tracker/internal/events"
	"github.com/prodline/workorder-tracker/internal/identity"
	"github.com/prodline/workorder-tracker/internal/repository"
	apperrors "github.com/prodline/workorder-tracker/pkg/util/errorutil"
)

// WorkOrderService coordinates work order workflows.
type WorkOrderService struct {
	workOrders repository.WorkOrderRepository
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// WorkOrderCreateInput describes creation payload.
type WorkOrderCreateInput struct {
	ASMNumber   string
	Description string
	Status      domain.WorkOrderStatus
}

// WorkOrderUpdateInput describes the mutable fields.
type WorkOrderUpdateInput struct {
	ASMNumber   *string
	Description *string
	Status      *domain.WorkOrderStatus
}

// WorkOrderDetail is a work order with its grouped tickets.
type WorkOrderDetail struct {
	WorkOrder domain.WorkOrder
	Tickets   []domain.Ticket
}

// NewWorkOrderService constructs the service.
func NewWorkOrderService(workOrders repository.WorkOrderRepository, tickets repository.TicketRepository, dispatcher events.Dispatcher) *WorkOrderService {
	return &WorkOrderService{workOrders: workOrders, tickets: tickets, dispatcher: dispatcher}
}

// Create records a new work order created by the caller.
func (s *WorkOrderService) Create(ctx context.Context, caller *identity.Identity, input WorkOrderCreateInput) (*domain.WorkOrder, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, apperrors.NewValidationError("description required", nil)
	}
	if input.Status == "" {
		input.Status = domain.WorkOrderStatusOpen
	}
	if !input.Status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": input.Status})
	}

	seq, err := s.workOrders.NextNumber(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	order := &domain.WorkOrder{
		WorkOrderNumber: fmt.Sprintf("WO-%06d", seq),
		ASMNumber:       strings.TrimSpace(input.ASMNumber),
		Description:     description,
		Status:          input.Status,
		CreatedBy:       caller.ID,
	}
	if err := s.workOrders.Create(ctx, order); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventWorkOrderCreated, order.ID, caller.ID, nil)
	return order, nil
}

// List returns work orders matching the search/status filters.
func (s *WorkOrderService) List(ctx context.Context, search *string, status *domain.WorkOrderStatus) ([]domain.WorkOrder, error) {
	if status != nil && !status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": *status})
	}
	orders, err := s.workOrders.List(ctx, repository.WorkOrderFilter{Search: search, Status: status})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return orders, nil
}

// Get fetches one work order together with its tickets.
func (s *WorkOrderService) Get(ctx context.Context, id string) (*WorkOrderDetail, error) {
	order, err := s.workOrders.GetByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, "work order", id)
	}
	tickets, err := s.tickets.List(ctx, repository.TicketFilter{WorkOrderID: &id})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &WorkOrderDetail{WorkOrder: *order, Tickets: tickets}, nil
}

// Update applies the provided fields; a status transition is published.
func (s *WorkOrderService) Update(ctx context.Context, caller *identity.Identity, id string, input WorkOrderUpdateInput) (*domain.WorkOrder, error) {
	order, err := s.workOrders.GetByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, "work order", id)
	}
	oldStatus := order.Status

	if input.ASMNumber != nil {
		order.ASMNumber = strings.TrimSpace(*input.ASMNumber)
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			return nil, apperrors.NewValidationError("description required", nil)
		}
		order.Description = description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": *input.Status})
		}
		order.Status = *input.Status
	}

	if err := s.workOrders.Update(ctx, order); err != nil {
		return nil, mapLookupErr(err, "work order", id)
	}

	if order.Status != oldStatus {
		s.publish(ctx, events.EventWorkOrderStatusChanged, order.ID, caller.ID, events.WorkOrderStatusChangedPayload{
			WorkOrderNumber: order.WorkOrderNumber,
			OldStatus:       oldStatus,
			NewStatus:       order.Status,
		})
	}
	return order, nil
}

// Delete removes one work order.
func (s *WorkOrderService) Delete(ctx context.Context, id string) error {
	if err := s.workOrders.Delete(ctx, id); err != nil {
		return mapLookupErr(err, "work order", id)
	}
	return nil
}

func (s *WorkOrderService) publish(ctx context.Context, eventType events.EventType, resourceID, actorID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		ResourceID: resourceID,
		ActorID:    actorID,
		Timestamp:  time.Now().UTC(),
		Payload:    payload,
	})
}
