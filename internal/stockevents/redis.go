package stockevents

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/redis/go-redis/v9"
)

const stockChangedMessage = "stock-changed"

// RedisBus shares stock-changed signals between terminals through a Redis
// pub/sub channel.
type RedisBus struct {
	client  *redis.Client
	channel string
	logger  *log.Logger
}

func NewRedis(client *redis.Client, channel string, logger *log.Logger) *RedisBus {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &RedisBus{client: client, channel: channel, logger: logger}
}

func (b *RedisBus) Publish(ctx context.Context) error {
	if err := b.client.Publish(ctx, b.channel, stockChangedMessage).Err(); err != nil {
		return fmt.Errorf("redis publish failed: %w", err)
	}
	return nil
}

func (b *RedisBus) Subscribe(ctx context.Context) <-chan struct{} {
	out := make(chan struct{}, 1)
	ps := b.client.Subscribe(ctx, b.channel)
	// wait for the subscription to be confirmed so no publish is missed
	if _, err := ps.Receive(ctx); err != nil {
		b.logger.Printf("stockevents: subscribe channel=%s error=%v", b.channel, err)
		_ = ps.Close()
		close(out)
		return out
	}

	go func() {
		defer close(out)
		defer ps.Close()
		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				notify(out)
			}
		}
	}()
	return out
}
