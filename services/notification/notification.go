package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/strumhouse/strumhouse-main-sub001/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Publisher emits change events for subscribed clients. Delivery is
// at-most-once: a failed publish is logged, never retried, and never fails
// the write that triggered it.
type Publisher interface {
	Publish(ctx context.Context, collection, op, id string)
}

// RedisPublisher publishes change events on the "events:<collection>"
// channel as JSON.
type RedisPublisher struct {
	Client *redis.Client
	Logger *zap.Logger
}

func NewRedisPublisher(client *redis.Client, logger *zap.Logger) *RedisPublisher {
	return &RedisPublisher{Client: client, Logger: logger}
}

func (p *RedisPublisher) Publish(ctx context.Context, collection, op, id string) {
	event := models.ChangeEvent{
		Collection: collection,
		Op:         op,
		ID:         id,
		At:         time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		p.Logger.Warn("failed to encode change event", zap.Error(err))
		return
	}
	if err := p.Client.Publish(ctx, "events:"+collection, payload).Err(); err != nil {
		p.Logger.Warn("failed to publish change event",
			zap.String("collection", collection),
			zap.String("op", op),
			zap.String("id", id),
			zap.Error(err))
	}
}
