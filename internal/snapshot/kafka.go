package snapshot

import (
	"context"
	"fmt"

	"roomgrid/pkg/kafka"
	kafka_config "roomgrid/pkg/kafka/config"
	kafka_middleware "roomgrid/pkg/kafka/middleware"
	"roomgrid/pkg/logger"
)

// KafkaListener refreshes the store when a change event arrives on the
// changes topic.
type KafkaListener struct {
	consumer *kafka.Consumer
	store    Refresher
	metrics  *kafka_middleware.Metrics
	log      *logger.Logger
}

func NewKafkaListener(cfg *kafka_config.Config, topic, groupID string, store Refresher, log *logger.Logger) (*KafkaListener, error) {
	if log == nil {
		log = logger.Discard()
	}
	l := &KafkaListener{
		store:   store,
		metrics: kafka_middleware.NewMetrics(),
		log:     log.With("kafka_listener"),
	}

	consumer, err := kafka.NewConsumer(cfg, topic, groupID, cfg.DLQTopic, l.Handle, log)
	if err != nil {
		return nil, fmt.Errorf("create changes consumer: %w", err)
	}
	consumer.Use(kafka_middleware.LoggingConsumerMiddleware(l.log))
	consumer.Use(kafka_middleware.MetricsConsumerMiddleware(l.metrics))
	l.consumer = consumer

	return l, nil
}

// Start blocks until ctx is cancelled.
func (l *KafkaListener) Start(ctx context.Context) error {
	return l.consumer.Start(ctx)
}

func (l *KafkaListener) Close() error {
	return l.consumer.Close()
}

func (l *KafkaListener) Metrics() kafka_middleware.MetricsSnapshot {
	return l.metrics.Snapshot()
}

// Handle is the consumer's message handler. The event type comes from the
// event-type header, falling back to the JSON payload. Unreadable messages
// are permanent failures; a failed refresh is retried.
func (l *KafkaListener) Handle(ctx context.Context, msg kafka.Message) error {
	eventType := msg.GetEventType()
	if eventType == "" {
		var ok bool
		if eventType, ok = parseEventType(msg.Value); !ok {
			return kafka.NewPermanentError("unreadable change event", kafka.ErrInvalidMessage)
		}
	}

	if !triggersRefresh(eventType) {
		l.log.Debug("Ignoring change event", "event_type", eventType, "event_id", msg.GetEventID())
		return nil
	}

	if err := l.store.RefreshFrom(ctx, SourceKafka); err != nil {
		return kafka.NewTransientError("snapshot refresh failed", err)
	}
	return nil
}
