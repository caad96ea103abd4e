package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	IntakeQAPIKey         string
	IntakeQBaseURL        string
	IntakeQPartnerAPIKey  string
	IntakeQPartnerBaseURL string

	AppointmentLookaheadDays int
	MaxVoiceSearchResults    int
	UpstreamTimeout          time.Duration

	CORSAllowedOrigins []string
	WebhookRateLimit   float64
	WebhookRateBurst   int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		IntakeQAPIKey:         getEnv("INTAKEQ_API_KEY", ""),
		IntakeQBaseURL:        getEnv("INTAKEQ_BASE_URL", "https://intakeq.com/api/v1"),
		IntakeQPartnerAPIKey:  getEnv("INTAKEQ_PARTNER_API_KEY", ""),
		IntakeQPartnerBaseURL: getEnv("INTAKEQ_PARTNER_BASE_URL", "https://intakeq.com/api/partner"),

		AppointmentLookaheadDays: getEnvAsInt("APPOINTMENT_LOOKAHEAD_DAYS", 30),
		MaxVoiceSearchResults:    getEnvAsInt("MAX_VOICE_SEARCH_RESULTS", 3),
		UpstreamTimeout:          getEnvAsDuration("UPSTREAM_TIMEOUT", 15*time.Second),

		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS"),
		WebhookRateLimit:   getEnvAsFloat("WEBHOOK_RATE_LIMIT", 0),
		WebhookRateBurst:   getEnvAsInt("WEBHOOK_RATE_BURST", 10),
	}
}

// Validate reports configuration problems that prevent startup.
func (c *Config) Validate() error {
	if c.IntakeQAPIKey == "" {
		return fmt.Errorf("INTAKEQ_API_KEY is required")
	}
	if c.AppointmentLookaheadDays <= 0 {
		return fmt.Errorf("APPOINTMENT_LOOKAHEAD_DAYS must be greater than 0")
	}
	if c.MaxVoiceSearchResults <= 0 {
		return fmt.Errorf("MAX_VOICE_SEARCH_RESULTS must be greater than 0")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsSlice splits a comma-separated environment variable,
// dropping empty entries.
func getEnvAsSlice(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var values []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
