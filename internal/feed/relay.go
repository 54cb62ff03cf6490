package feed

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// RedisRelay fans change notifications out to every instance through a
// Redis pub/sub channel.
type RedisRelay struct {
	client  *redis.Client
	channel string
}

// NewRedisRelay creates a relay on channel.
func NewRedisRelay(client *redis.Client, channel string) *RedisRelay {
	return &RedisRelay{client: client, channel: channel}
}

// Publish announces a change to collection.
func (r *RedisRelay) Publish(ctx context.Context, collection string) error {
	if err := r.client.Publish(ctx, r.channel, collection).Err(); err != nil {
		return fmt.Errorf("failed to publish change: %w", err)
	}
	return nil
}

// Run forwards every announced change to notify until ctx is done.
func (r *RedisRelay) Run(ctx context.Context, notify func(collection string)) {
	pubsub := r.client.Subscribe(ctx, r.channel)
	defer pubsub.Close()

	log.Printf("feed: listening for changes on redis channel %s", r.channel)
	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			notify(msg.Payload)
		case <-ctx.Done():
			return
		}
	}
}
