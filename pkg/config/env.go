package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvAuthToken          = "AUTH_TOKEN"
	EnvCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvCalendarTimeZone        = "CALENDAR_TIME_ZONE"
	EnvCalendarOverlapPolicy   = "CALENDAR_OVERLAP_POLICY"
	EnvCalendarVisibleStatuses = "CALENDAR_VISIBLE_STATUSES"
	EnvDefaultRoomImage        = "DEFAULT_ROOM_IMAGE"

	EnvRefreshSchedule = "REFRESH_SCHEDULE"
	EnvSessionIdleTTL  = "SESSION_IDLE_TTL"
	EnvMaxSessions     = "MAX_VIEWER_SESSIONS"

	EnvRedisAddr           = "REDIS_ADDR"
	EnvRedisPassword       = "REDIS_PASSWORD"
	EnvRedisChangesChannel = "REDIS_CHANGES_CHANNEL"

	EnvKafkaEnabled       = "KAFKA_ENABLED"
	EnvKafkaChangesTopic  = "KAFKA_CHANGES_TOPIC"
	EnvKafkaConsumerGroup = "KAFKA_CONSUMER_GROUP"
)
