package config

import (
	"time"

	"roomgrid/internal/calendar"
)

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "roomgrid"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort      = "8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultCORSAllowedOrigins = "*"

	DefaultRateLimitRequests = 120
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 15 * time.Second
	DefaultIdempotencyTTL = 10 * time.Minute

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultCalendarTimeZone        = "America/Sao_Paulo"
	DefaultCalendarOverlapPolicy   = calendar.PolicyInterval
	DefaultCalendarVisibleStatuses = "created,completed"
	DefaultRoomImage               = "/default-room.avif"

	DefaultRefreshSchedule = "@every 1m"
	DefaultSessionIdleTTL  = 2 * time.Hour
	DefaultMaxSessions     = 10000

	DefaultRedisChangesChannel = "roomgrid:changes"

	DefaultKafkaEnabled       = false
	DefaultKafkaChangesTopic  = "roomgrid.changes"
	DefaultKafkaConsumerGroup = "roomgrid-board"
)
