package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/redis/go-redis/v9"
)

// DefaultChannel is the Redis pub/sub channel carrying task events.
const DefaultChannel = "tasktracker:tasks"

// RedisBroker publishes events to a Redis channel and delivers everything
// received on that channel, including its own events, to local subscribers.
type RedisBroker struct {
	client  *redis.Client
	pubsub  *redis.PubSub
	channel string
	local   *MemoryBroker
	logger  logging.Logger
	done    chan struct{}
}

// NewRedisBroker connects to addr, subscribes to channel and starts relaying.
func NewRedisBroker(ctx context.Context, addr, channel string, logger logging.Logger) (*RedisBroker, error) {
	if channel == "" {
		channel = DefaultChannel
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	pubsub := client.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		_ = client.Close()
		return nil, fmt.Errorf("redis subscribe: %w", err)
	}

	b := &RedisBroker{
		client:  client,
		pubsub:  pubsub,
		channel: channel,
		local:   NewMemoryBroker(64),
		logger:  logger.With("component", "redis_broker", "channel", channel),
		done:    make(chan struct{}),
	}
	go b.relay()
	return b, nil
}

func (b *RedisBroker) Publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

func (b *RedisBroker) Subscribe() (<-chan Event, func()) {
	return b.local.Subscribe()
}

func (b *RedisBroker) relay() {
	defer close(b.done)
	for msg := range b.pubsub.Channel() {
		b.handle(msg.Payload)
	}
}

func (b *RedisBroker) handle(payload string) {
	var e Event
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		b.logger.Warn(context.Background(), "dropping malformed event", "error", err)
		return
	}
	_ = b.local.Publish(context.Background(), e)
}

func (b *RedisBroker) Close() error {
	err := b.pubsub.Close()
	<-b.done
	_ = b.local.Close()
	if cerr := b.client.Close(); err == nil {
		err = cerr
	}
	return err
}
