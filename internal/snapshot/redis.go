package snapshot

import (
	"context"
	"fmt"

	"roomgrid/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// RedisListener refreshes the store on pub/sub notifications.
type RedisListener struct {
	client  *redis.Client
	channel string
	store   Refresher
	log     *logger.Logger
}

func NewRedisListener(client *redis.Client, channel string, store Refresher, log *logger.Logger) *RedisListener {
	if log == nil {
		log = logger.Discard()
	}
	return &RedisListener{
		client:  client,
		channel: channel,
		store:   store,
		log:     log.With("redis_listener"),
	}
}

// Start subscribes and handles notifications until ctx is cancelled or the
// subscription is closed.
func (l *RedisListener) Start(ctx context.Context) error {
	sub := l.client.Subscribe(ctx, l.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to %s: %w", l.channel, err)
	}
	l.log.Info("Listening for change notifications", "channel", l.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			l.Handle(ctx, msg.Payload)
		}
	}
}

// Handle refreshes the store for payloads naming a change event. It reports
// whether a refresh succeeded.
func (l *RedisListener) Handle(ctx context.Context, payload string) bool {
	eventType, ok := parseEventType([]byte(payload))
	if !ok {
		l.log.Warn("Ignoring unreadable change notification", "channel", l.channel, "payload", payload)
		return false
	}
	if !triggersRefresh(eventType) {
		l.log.Debug("Ignoring change notification", "event_type", eventType)
		return false
	}

	if err := l.store.RefreshFrom(ctx, SourceRedis); err != nil {
		l.log.Warn("Refresh after change notification failed", "event_type", eventType, "error", err)
		return false
	}
	return true
}
