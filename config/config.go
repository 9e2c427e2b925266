package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	Port              string
	GinMode           string
	StoreDriver       string
	DatabaseURL       string
	JWTSecret         string
	JWTExpiry         time.Duration
	AdminEmail        string
	AdminPasswordHash string
	CorsOrigins       []string
	Location          *time.Location

	RevalidateWebhookURL string
	RevalidateSchedule   string
	WebhookTimeout       time.Duration

	AnalyticsQueueSize int

	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioWhatsAppNumber string
}

func Load() (Config, error) {
	cfg := Config{
		Port:                 envOr("PORT", "8080"),
		GinMode:              envOr("GIN_MODE", "debug"),
		StoreDriver:          strings.ToLower(envOr("STORE_DRIVER", DriverPostgres)),
		DatabaseURL:          envOr("DB_URL", ""),
		JWTSecret:            envOr("JWT_SECRET", ""),
		JWTExpiry:            time.Duration(envOrInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		AdminEmail:           strings.ToLower(envOr("ADMIN_EMAIL", "")),
		AdminPasswordHash:    envOr("ADMIN_PASSWORD_HASH", ""),
		CorsOrigins:          parseCSV(envOr("CORS_ORIGINS", "http://localhost:3000")),
		RevalidateWebhookURL: envOr("REVALIDATE_WEBHOOK_URL", ""),
		RevalidateSchedule:   envOr("REVALIDATE_SCHEDULE", "@every 1h"),
		WebhookTimeout:       time.Duration(envOrInt("REVALIDATE_TIMEOUT_SECONDS", 5)) * time.Second,
		AnalyticsQueueSize:   envOrInt("ANALYTICS_QUEUE_SIZE", 256),
		TwilioAccountSID:     envOr("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:      envOr("TWILIO_AUTH_TOKEN", ""),
		TwilioWhatsAppNumber: envOr("TWILIO_WHATSAPP_NUMBER", ""),
	}

	loc, err := time.LoadLocation(envOr("TIMEZONE", "Africa/Johannesburg"))
	if err != nil {
		return cfg, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Location = loc

	switch cfg.StoreDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return cfg, fmt.Errorf("missing env var: DB_URL (or set STORE_DRIVER=memory)")
		}
	case DriverMemory:
	default:
		return cfg, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.JWTSecret == "" && cfg.IsRelease() {
		return cfg, fmt.Errorf("missing env var: JWT_SECRET")
	}
	return cfg, nil
}

func (c Config) IsRelease() bool {
	return c.GinMode == "release"
}

// TwilioEnabled reports whether booking notifications can be sent.
func (c Config) TwilioEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioWhatsAppNumber != ""
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
