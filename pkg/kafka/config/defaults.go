package kafka_config

import "time"

const (
	DefaultKafkaBrokers  = "localhost:9092"
	DefaultKafkaDLQTopic = ""

	DefaultProducerMaxAttempts = 3
	DefaultProducerCompression = "snappy"

	// Change notifications are only useful going forward.
	DefaultConsumerStartOffset    = -1
	DefaultConsumerMaxWait        = 500 * time.Millisecond
	DefaultConsumerCommitInterval = time.Second
	DefaultConsumerMaxRetries     = 3
)
