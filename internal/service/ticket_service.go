package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/prodline/workorder-tracker/internal/domain"
	"github.com/prodline/workorder-tracker/internal/events"
	"github.com/prodline/workorder-tracker/internal/identity"
	"github.com/prodline/workorder-tracker/internal/repository"
	apperrors "github.com/prodline/workorder-tracker/pkg/util/errorutil"
)

// TicketService coordinates ticket workflows. Authorization happens in
// the access guard before any method here runs; the resolved caller is
// always passed in explicitly.
type TicketService struct {
	tickets    repository.TicketRepository
	workOrders repository.WorkOrderRepository
	areas      repository.AreaRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo    repository.TicketRepository
	WorkOrderRepo repository.WorkOrderRepository
	AreaRepo      repository.AreaRepository
	Dispatcher    events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	WorkOrderID string
	AreaID      string
	Priority    domain.TicketPriority
	Description string
	ImageURLs   []string
}

// TicketUpdateInput describes the mutable ticket fields. Absent pointers
// leave the stored value untouched; ownership (submitted_by) has no
// input at all.
type TicketUpdateInput struct {
	WorkOrderID *string
	AreaID      *string
	Priority    *domain.TicketPriority
	Description *string
	ImageURLs   *[]string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		workOrders: deps.WorkOrderRepo,
		areas:      deps.AreaRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create records a new ticket owned by the caller.
func (s *TicketService) Create(ctx context.Context, caller *identity.Identity, input TicketCreateInput) (*domain.Ticket, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, apperrors.NewValidationError("description required", nil)
	}
	if input.Priority == "" {
		input.Priority = domain.TicketPriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": input.Priority})
	}
	if len(input.ImageURLs) > domain.MaxTicketImages {
		return nil, apperrors.NewValidationError("too many images", map[string]any{"limit": domain.MaxTicketImages})
	}

	if _, err := s.workOrders.GetByID(ctx, input.WorkOrderID); err != nil {
		return nil, mapLookupErr(err, "work order", input.WorkOrderID)
	}
	if _, err := s.areas.GetByID(ctx, input.AreaID); err != nil {
		return nil, mapLookupErr(err, "area", input.AreaID)
	}

	seq, err := s.tickets.NextNumber(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	ticket := &domain.Ticket{
		TicketNumber: fmt.Sprintf("TKT-%06d", seq),
		WorkOrderID:  input.WorkOrderID,
		AreaID:       input.AreaID,
		SubmittedBy:  caller.ID,
		Priority:     input.Priority,
		Description:  description,
		ImageURLs:    input.ImageURLs,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventTicketCreated, ticket.ID, caller.ID, events.TicketCreatedPayload{
		TicketNumber: ticket.TicketNumber,
		WorkOrderID:  ticket.WorkOrderID,
		AreaID:       ticket.AreaID,
		Priority:     ticket.Priority,
		ImageCount:   len(ticket.ImageURLs),
	})
	return ticket, nil
}

// List returns tickets, optionally scoped to one work order, newest first.
func (s *TicketService) List(ctx context.Context, workOrderID *string) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx, repository.TicketFilter{WorkOrderID: workOrderID})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// Get fetches one ticket.
func (s *TicketService) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, "ticket", id)
	}
	return ticket, nil
}

// Update applies the provided fields. The owner set at creation is never
// touched, whatever the payload contains.
func (s *TicketService) Update(ctx context.Context, caller *identity.Identity, id string, input TicketUpdateInput) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, "ticket", id)
	}

	if input.WorkOrderID != nil {
		if _, err := s.workOrders.GetByID(ctx, *input.WorkOrderID); err != nil {
			return nil, mapLookupErr(err, "work order", *input.WorkOrderID)
		}
		ticket.WorkOrderID = *input.WorkOrderID
	}
	if input.AreaID != nil {
		if _, err := s.areas.GetByID(ctx, *input.AreaID); err != nil {
			return nil, mapLookupErr(err, "area", *input.AreaID)
		}
		ticket.AreaID = *input.AreaID
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": *input.Priority})
		}
		ticket.Priority = *input.Priority
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			return nil, apperrors.NewValidationError("description required", nil)
		}
		ticket.Description = description
	}
	if input.ImageURLs != nil {
		if len(*input.ImageURLs) > domain.MaxTicketImages {
			return nil, apperrors.NewValidationError("too many images", map[string]any{"limit": domain.MaxTicketImages})
		}
		ticket.ImageURLs = *input.ImageURLs
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, mapLookupErr(err, "ticket", id)
	}

	s.publish(ctx, events.EventTicketUpdated, ticket.ID, caller.ID, events.TicketUpdatedPayload{
		TicketNumber: ticket.TicketNumber,
		Priority:     ticket.Priority,
	})
	return ticket, nil
}

// Delete removes one ticket.
func (s *TicketService) Delete(ctx context.Context, caller *identity.Identity, id string) error {
	if err := s.tickets.Delete(ctx, id); err != nil {
		return mapLookupErr(err, "ticket", id)
	}
	s.publish(ctx, events.EventTicketDeleted, id, caller.ID, nil)
	return nil
}

func (s *TicketService) publish(ctx context.Context, eventType events.EventType, resourceID, actorID string, payload interface{}) {
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

func mapLookupErr(err error, resource, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	return apperrors.MapError(err)
}
