package kafka_middleware

import (
	"context"
	"sync/atomic"
	"time"

	"roomgrid/pkg/kafka"
)

// Metrics counts kafka traffic for the status endpoint.
type Metrics struct {
	published            atomic.Int64
	publishFailed        atomic.Int64
	publishDurationTotal atomic.Int64

	consumed             atomic.Int64
	consumeFailed        atomic.Int64
	consumeDurationTotal atomic.Int64
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	MessagesPublished       int64  `json:"messages_published"`
	MessagesPublishedFailed int64  `json:"messages_published_failed"`
	AvgPublishDuration      string `json:"avg_publish_duration"`
	MessagesConsumed        int64  `json:"messages_consumed"`
	MessagesConsumedFailed  int64  `json:"messages_consumed_failed"`
	AvgConsumeDuration      string `json:"avg_consume_duration"`
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) Reset() {
	m.published.Store(0)
	m.publishFailed.Store(0)
	m.publishDurationTotal.Store(0)
	m.consumed.Store(0)
	m.consumeFailed.Store(0)
	m.consumeDurationTotal.Store(0)
}

func (m *Metrics) AvgPublishDuration() time.Duration {
	return average(m.publishDurationTotal.Load(), m.published.Load()+m.publishFailed.Load())
}

func (m *Metrics) AvgConsumeDuration() time.Duration {
	return average(m.consumeDurationTotal.Load(), m.consumed.Load()+m.consumeFailed.Load())
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		MessagesPublished:       m.published.Load(),
		MessagesPublishedFailed: m.publishFailed.Load(),
		AvgPublishDuration:      m.AvgPublishDuration().String(),
		MessagesConsumed:        m.consumed.Load(),
		MessagesConsumedFailed:  m.consumeFailed.Load(),
		AvgConsumeDuration:      m.AvgConsumeDuration().String(),
	}
}

func average(total, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return time.Duration(total / count)
}

func MetricsProducerMiddleware(m *Metrics) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()
		err := next(ctx, msg)

		m.publishDurationTotal.Add(int64(time.Since(start)))
		if err != nil {
			m.publishFailed.Add(1)
		} else {
			m.published.Add(1)
		}
		return err
	}
}

func MetricsConsumerMiddleware(m *Metrics) kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()
		err := next(ctx, msg)

		m.consumeDurationTotal.Add(int64(time.Since(start)))
		if err != nil {
			m.consumeFailed.Add(1)
		} else {
			m.consumed.Add(1)
		}
		return err
	}
}
