package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/storelink/catalog-api/internal/core/domain"
)

// Publisher broadcasts product events to every subscriber of a Redis
// pub/sub channel. Fan-out is Redis's: one PUBLISH reaches all current
// subscribers, and events are not retained for absent ones.
type Publisher struct {
	client  *redis.Client
	channel string
}

// NewPublisher creates a Publisher wrapping the given Redis client.
func NewPublisher(client *redis.Client, channel string) *Publisher {
	return &Publisher{client: client, channel: channel}
}

// Send serialises the event as JSON and publishes it to the channel.
func (p *Publisher) Send(ctx context.Context, event domain.ProductEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}
