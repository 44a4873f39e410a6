package events

import (
	"context"
	"sync"
	"time"

	"github.com/prodline/workorder-tracker/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated          EventType = "ticket_created"
	EventTicketUpdated          EventType = "ticket_updated"
	EventTicketDeleted          EventType = "ticket_deleted"
	EventWorkOrderCreated       EventType = "work_order_created"
	EventWorkOrderStatusChanged EventType = "work_order_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	ResourceID string      `json:"resource_id"`
	ActorID    string      `json:"actor_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketNumber string                `json:"ticket_number"`
	WorkOrderID  string                `json:"work_order_id"`
	AreaID       string                `json:"area_id"`
	Priority     domain.TicketPriority `json:"priority"`
	ImageCount   int                   `json:"image_count"`
}

// TicketUpdatedPayload payload.
type TicketUpdatedPayload struct {
	TicketNumber string                `json:"ticket_number"`
	Priority     domain.TicketPriority `json:"priority"`
}

// WorkOrderStatusChangedPayload payload.
type WorkOrderStatusChangedPayload struct {
	WorkOrderNumber string                 `json:"work_order_number"`
	OldStatus       domain.WorkOrderStatus `json:"old_status"`
	NewStatus       domain.WorkOrderStatus `json:"new_status"`
}

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher interface allows event publication/subscription.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
}

// inMemoryDispatcher is a simple synchronous dispatcher.
type inMemoryDispatcher struct {
	mu        sync.RWMutex
	listeners map[EventType][]EventHandler
}

// NewInMemoryDispatcher creates a dispatcher instance.
func NewInMemoryDispatcher() Dispatcher {
	return &inMemoryDispatcher{
		listeners: make(map[EventType][]EventHandler),
	}
}

// Publish synchronously invokes handlers for the given event. A handler
// error never blocks the remaining handlers.
func (d *inMemoryDispatcher) Publish(ctx context.Context, event Event) error {
	d.mu.RLock()
	handlers := append([]EventHandler{}, d.listeners[event.Type]...)
	d.mu.RUnlock()

	for _, handler := range handlers {
		_ = handler(ctx, event)
	}
	return nil
}

// Subscribe registers a handler for the given event type.
func (d *inMemoryDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[eventType] = append(d.listeners[eventType], handler)
}
