package kafka_middleware

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"roomgrid/pkg/kafka"
	"roomgrid/pkg/logger"
)

func TestMetricsMiddleware(t *testing.T) {
	m := NewMetrics()
	ok := func(ctx context.Context, msg kafka.Message) error { return nil }
	fail := func(ctx context.Context, msg kafka.Message) error { return errors.New("boom") }

	consume := MetricsConsumerMiddleware(m)
	_ = consume(context.Background(), kafka.Message{}, ok)
	_ = consume(context.Background(), kafka.Message{}, ok)
	_ = consume(context.Background(), kafka.Message{}, fail)

	publish := MetricsProducerMiddleware(m)
	_ = publish(context.Background(), kafka.Message{}, fail)

	snap := m.Snapshot()
	if snap.MessagesConsumed != 2 || snap.MessagesConsumedFailed != 1 {
		t.Errorf("unexpected consume counters %+v", snap)
	}
	if snap.MessagesPublished != 0 || snap.MessagesPublishedFailed != 1 {
		t.Errorf("unexpected publish counters %+v", snap)
	}

	m.Reset()
	if m.Snapshot().MessagesConsumed != 0 {
		t.Error("Reset() should zero counters")
	}
	if m.AvgConsumeDuration() != 0 {
		t.Error("average of no samples should be zero")
	}
}

func TestLoggingConsumerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: logger.DEBUG, Output: &buf})

	mw := LoggingConsumerMiddleware(log)
	msg := kafka.NewMessage().WithKey("k").WithEventType("rooms.changed").WithRawValue([]byte(`{}`)).Build()

	err := mw(context.Background(), msg, func(ctx context.Context, msg kafka.Message) error {
		return errors.New("refresh failed")
	})
	if err == nil {
		t.Fatal("expected handler error to propagate")
	}
	if !strings.Contains(buf.String(), `"event_type":"rooms.changed"`) {
		t.Errorf("expected event type in log, got %s", buf.String())
	}
	if !strings.Contains(buf.String(), "refresh failed") {
		t.Errorf("expected error in log, got %s", buf.String())
	}
}
