package kafka_config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Brokers) != 1 || cfg.Brokers[0] != DefaultKafkaBrokers {
		t.Errorf("Brokers = %v", cfg.Brokers)
	}
	if cfg.ConsumerStartOffset != -1 || cfg.ConsumerCommitInterval != time.Second {
		t.Errorf("consumer settings = %+v", cfg)
	}
}

func TestLoad_Brokers(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, "k1:9092, k2:9092")
	t.Setenv(EnvKafkaDLQTopic, "roomgrid.changes.dlq")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Brokers) != 2 || cfg.Brokers[1] != "k2:9092" {
		t.Errorf("Brokers = %v", cfg.Brokers)
	}
	if cfg.DLQTopic != "roomgrid.changes.dlq" {
		t.Errorf("DLQTopic = %q", cfg.DLQTopic)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"empty broker", map[string]string{EnvKafkaBrokers: "k1:9092,"}, "Broker 1 cannot be empty"},
		{"compression", map[string]string{EnvKafkaProducerCompression: "brotli"}, "ProducerCompression"},
		{"start offset", map[string]string{EnvKafkaConsumerStartOffset: "42"}, "ConsumerStartOffset"},
		{"retries", map[string]string{EnvKafkaConsumerMaxRetries: "-1"}, "ConsumerMaxRetries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}
