package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"roomgrid/internal/calendar"
	"roomgrid/pkg/client"
	"roomgrid/pkg/logger"
	"roomgrid/pkg/model"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port      string
	LogFormat string

	AuthToken          string
	CORSAllowedOrigins []string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	TimeZone         string
	Location         *time.Location
	OverlapPolicy    calendar.OverlapPolicy
	VisibleStatuses  []model.BookingStatus
	DefaultRoomImage string

	RefreshSchedule string
	SessionIdleTTL  time.Duration
	MaxSessions     int

	RedisAddr           string
	RedisPassword       string
	RedisChangesChannel string

	KafkaEnabled       bool
	KafkaChangesTopic  string
	KafkaConsumerGroup string

	invalidStatuses []string

	Log    *logger.Logger
	Client *client.Client
}

// Load reads .env (when present) and the process environment, validates the
// result and exits on invalid configuration.
func Load(serviceName string) *Config {
	_ = godotenv.Load()

	cfg := FromEnv(serviceName)
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// FromEnv builds a Config from the environment without validating it.
func FromEnv(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port:      getEnvStr(EnvPort, DefaultPort),
		LogFormat: getEnvStr(EnvLogFormat, DefaultLogFormat),

		AuthToken:          getEnvStr(EnvAuthToken, ""),
		CORSAllowedOrigins: getEnvList(EnvCORSAllowedOrigins, DefaultCORSAllowedOrigins),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		TimeZone:         getEnvStr(EnvCalendarTimeZone, DefaultCalendarTimeZone),
		OverlapPolicy:    calendar.OverlapPolicy(strings.ToLower(strings.TrimSpace(getEnvStr(EnvCalendarOverlapPolicy, string(DefaultCalendarOverlapPolicy))))),
		DefaultRoomImage: getEnvStr(EnvDefaultRoomImage, DefaultRoomImage),

		RefreshSchedule: getEnvStr(EnvRefreshSchedule, DefaultRefreshSchedule),
		SessionIdleTTL:  getEnvDuration(EnvSessionIdleTTL, DefaultSessionIdleTTL),
		MaxSessions:     getEnvNum(EnvMaxSessions, DefaultMaxSessions),

		RedisAddr:           getEnvStr(EnvRedisAddr, ""),
		RedisPassword:       getEnvStr(EnvRedisPassword, ""),
		RedisChangesChannel: getEnvStr(EnvRedisChangesChannel, DefaultRedisChangesChannel),

		KafkaEnabled:       getEnvBool(EnvKafkaEnabled, DefaultKafkaEnabled),
		KafkaChangesTopic:  getEnvStr(EnvKafkaChangesTopic, DefaultKafkaChangesTopic),
		KafkaConsumerGroup: getEnvStr(EnvKafkaConsumerGroup, DefaultKafkaConsumerGroup),

		Client: client.NewClient(),
	}

	cfg.Log = logger.New(logger.Config{
		Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
		Format:    cfg.LogFormat,
		AddSource: true,
		Service:   serviceName,
	})

	if loc, err := time.LoadLocation(cfg.TimeZone); err == nil {
		cfg.Location = loc
	}

	for _, raw := range getEnvList(EnvCalendarVisibleStatuses, DefaultCalendarVisibleStatuses) {
		status, ok := model.ParseBookingStatus(raw)
		if !ok {
			cfg.invalidStatuses = append(cfg.invalidStatuses, raw)
			continue
		}
		cfg.VisibleStatuses = append(cfg.VisibleStatuses, status)
	}

	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

// SetRedis connects the redis client when REDIS_ADDR is configured.
func (cfg *Config) SetRedis() {
	if cfg.RedisAddr == "" {
		return
	}
	cfg.Client.SetRedis(cfg.Log, cfg.RedisAddr, cfg.RedisPassword, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.LogFormat != logger.JSON && cfg.LogFormat != logger.TEXT {
		errors = append(errors, fmt.Sprintf("LogFormat must be 'json' or 'text', got: %s", cfg.LogFormat))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if len(cfg.MongoURI) < 10 || !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
	}

	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	if cfg.Location == nil {
		if _, err := time.LoadLocation(cfg.TimeZone); err != nil {
			errors = append(errors, fmt.Sprintf("TimeZone must be a valid IANA zone, got: %s", cfg.TimeZone))
		}
	}

	if _, err := calendar.ParseOverlapPolicy(string(cfg.OverlapPolicy)); err != nil {
		errors = append(errors, fmt.Sprintf("OverlapPolicy must be '%s' or '%s': %v", calendar.PolicyInterval, calendar.PolicyStartHour, err))
	}

	for _, raw := range cfg.invalidStatuses {
		errors = append(errors, fmt.Sprintf("VisibleStatuses contains unknown status: %s", raw))
	}
	if len(cfg.VisibleStatuses) == 0 && len(cfg.invalidStatuses) == 0 {
		errors = append(errors, "VisibleStatuses cannot be empty")
	}
	for _, status := range cfg.VisibleStatuses {
		if status == model.StatusCancelled {
			errors = append(errors, "VisibleStatuses cannot include cancelled bookings")
		}
	}

	if _, err := cron.ParseStandard(cfg.RefreshSchedule); err != nil {
		errors = append(errors, fmt.Sprintf("RefreshSchedule is not a valid cron spec %q: %v", cfg.RefreshSchedule, err))
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"MongoConnTimeout", cfg.MongoConnTimeout},
		{"RateLimitWindow", cfg.RateLimitWindow},
		{"RequestTimeout", cfg.RequestTimeout},
		{"IdempotencyTTL", cfg.IdempotencyTTL},
		{"ReadTimeout", cfg.ReadTimeout},
		{"WriteTimeout", cfg.WriteTimeout},
		{"IdleTimeout", cfg.IdleTimeout},
		{"ShutdownTimeout", cfg.ShutdownTimeout},
		{"SessionIdleTTL", cfg.SessionIdleTTL},
	}
	for _, d := range durations {
		if d.value <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %s", d.name, d.value))
		}
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}

	if cfg.MaxSessions <= 0 {
		errors = append(errors, fmt.Sprintf("MaxSessions must be positive, got: %d", cfg.MaxSessions))
	}

	if cfg.KafkaEnabled {
		if cfg.KafkaChangesTopic == "" {
			errors = append(errors, "KafkaChangesTopic cannot be empty when Kafka is enabled")
		}
		if cfg.KafkaConsumerGroup == "" {
			errors = append(errors, "KafkaConsumerGroup cannot be empty when Kafka is enabled")
		}
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"log_format", cfg.LogFormat,
		"auth_token_set", cfg.AuthToken != "",
		"cors_allowed_origins", cfg.CORSAllowedOrigins,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"time_zone", cfg.TimeZone,
		"overlap_policy", cfg.OverlapPolicy,
		"visible_statuses", cfg.VisibleStatuses,
		"default_room_image", cfg.DefaultRoomImage,
		"refresh_schedule", cfg.RefreshSchedule,
		"session_idle_ttl", cfg.SessionIdleTTL,
		"max_sessions", cfg.MaxSessions,
		"redis_addr", cfg.RedisAddr,
		"redis_password_set", cfg.RedisPassword != "",
		"redis_changes_channel", cfg.RedisChangesChannel,
		"kafka_enabled", cfg.KafkaEnabled,
		"kafka_changes_topic", cfg.KafkaChangesTopic,
		"kafka_consumer_group", cfg.KafkaConsumerGroup,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// getEnvList splits a comma separated value, dropping blanks.
func getEnvList(key, fallback string) []string {
	raw := getEnvStr(key, fallback)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}
