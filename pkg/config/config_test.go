package config

import (
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"roomgrid/internal/calendar"
	"roomgrid/pkg/model"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv("test")

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default configuration should be valid: %v", err)
	}
	if cfg.Location == nil || cfg.Location.String() != DefaultCalendarTimeZone {
		t.Errorf("Location = %v, want %s", cfg.Location, DefaultCalendarTimeZone)
	}
	if cfg.OverlapPolicy != calendar.PolicyInterval {
		t.Errorf("OverlapPolicy = %s", cfg.OverlapPolicy)
	}
	if len(cfg.VisibleStatuses) != 2 || cfg.VisibleStatuses[0] != model.StatusCreated || cfg.VisibleStatuses[1] != model.StatusCompleted {
		t.Errorf("VisibleStatuses = %v", cfg.VisibleStatuses)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv(EnvCalendarTimeZone, "UTC")
	t.Setenv(EnvCalendarOverlapPolicy, "Start-Hour")
	t.Setenv(EnvCalendarVisibleStatuses, "criado, concluido")
	t.Setenv(EnvCORSAllowedOrigins, "https://a.example.com, ,https://b.example.com")
	t.Setenv(EnvSessionIdleTTL, "45m")
	t.Setenv(EnvRateLimitRequests, "not-a-number")

	cfg := FromEnv("test")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Location.String() != "UTC" {
		t.Errorf("Location = %v", cfg.Location)
	}
	if cfg.OverlapPolicy != calendar.PolicyStartHour {
		t.Errorf("OverlapPolicy = %s", cfg.OverlapPolicy)
	}
	if cfg.VisibleStatuses[0] != model.StatusCreated || cfg.VisibleStatuses[1] != model.StatusCompleted {
		t.Errorf("legacy statuses were not normalized: %v", cfg.VisibleStatuses)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
	if cfg.MaxSessions != DefaultMaxSessions {
		t.Errorf("MaxSessions = %d", cfg.MaxSessions)
	}
	if cfg.SessionIdleTTL != 45*time.Minute {
		t.Errorf("SessionIdleTTL = %s", cfg.SessionIdleTTL)
	}
	if cfg.RateLimitRequests != DefaultRateLimitRequests {
		t.Errorf("unparseable number should fall back to default, got %d", cfg.RateLimitRequests)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"bad port", map[string]string{EnvPort: "99999"}, "Port must be between"},
		{"bad mongo uri", map[string]string{EnvMongoURI: "postgres://localhost"}, "MongoURI must start with"},
		{"bad zone", map[string]string{EnvCalendarTimeZone: "Mars/Olympus"}, "TimeZone must be a valid IANA zone"},
		{"bad policy", map[string]string{EnvCalendarOverlapPolicy: "fuzzy"}, `unknown overlap policy "fuzzy"`},
		{"unknown status", map[string]string{EnvCalendarVisibleStatuses: "created,archived"}, "unknown status: archived"},
		{"cancelled visible", map[string]string{EnvCalendarVisibleStatuses: "created,cancelado"}, "cannot include cancelled"},
		{"bad cron", map[string]string{EnvRefreshSchedule: "every minute"}, "not a valid cron spec"},
		{"no sessions", map[string]string{EnvMaxSessions: "0"}, "MaxSessions must be positive"},
		{"non-positive duration", map[string]string{EnvSessionIdleTTL: "-1m"}, "SessionIdleTTL must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			err := FromEnv("test").Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_AggregatesErrors(t *testing.T) {
	t.Setenv(EnvPort, "0")
	t.Setenv(EnvCalendarOverlapPolicy, "fuzzy")

	err := FromEnv("test").Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "1. ") || !strings.Contains(err.Error(), "2. ") {
		t.Errorf("expected numbered errors, got %q", err.Error())
	}
}
