package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisRelay forwards domain events to a Redis channel for downstream
// consumers (print view refresh, external notifiers).
type RedisRelay struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

// NewRedisRelay constructs the relay.
func NewRedisRelay(client *redis.Client, channel string, logger *zap.Logger) *RedisRelay {
	return &RedisRelay{client: client, channel: channel, logger: logger}
}

// RegisterHandlers subscribes the relay to every event type it forwards.
func (r *RedisRelay) RegisterHandlers(dispatcher Dispatcher) {
	if dispatcher == nil || r.client == nil {
		return
	}
	for _, eventType := range []EventType{
		EventTicketCreated,
		EventTicketUpdated,
		EventTicketDeleted,
		EventWorkOrderCreated,
		EventWorkOrderStatusChanged,
	} {
		dispatcher.Subscribe(eventType, r.forward)
	}
}

func (r *RedisRelay) forward(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		r.logger.Warn("event marshal failed", zap.String("type", string(event.Type)), zap.Error(err))
		return err
	}
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		r.logger.Warn("event publish failed", zap.String("type", string(event.Type)), zap.Error(err))
		return err
	}
	return nil
}
