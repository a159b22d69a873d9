package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendSheets   = "sheets"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

const defaultJWTSecret = "catat-jualan-dev-secret"

type Config struct {
	Port         string
	CORSOrigins  []string
	JWTSecret    string
	TokenTTL     time.Duration
	ResetTTL     time.Duration
	AdminUserIDs []string
	TimeZone     string

	// ResetTokenInResponse echoes forgot-password tokens back to the caller
	ResetTokenInResponse bool

	Store  StoreConfig
	Events EventsConfig
	Log    LogConfig
}

type StoreConfig struct {
	Backend         string
	SpreadsheetID   string
	CredentialsFile string
	CredentialsJSON string
	DatabaseURL     string
}

type EventsConfig struct {
	AMQPURL         string
	AMQPQueue       string
	PubSubProjectID string
	PubSubTopic     string
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads .env when present, then the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:         getEnv("PORT", "3000"),
		CORSOrigins:  getEnvList("CORS_ORIGIN", []string{"http://localhost:8080"}),
		JWTSecret:    getEnv("JWT_SECRET", defaultJWTSecret),
		TokenTTL:     getEnvDuration("TOKEN_TTL", 7*24*time.Hour),
		ResetTTL:     getEnvDuration("RESET_TOKEN_TTL", time.Hour),
		AdminUserIDs: getEnvList("ADMIN_USER_IDS", nil),
		TimeZone:     getEnv("TZ_NAME", "Asia/Jakarta"),

		ResetTokenInResponse: getEnvBool("RESET_TOKEN_IN_RESPONSE", false),
		Store: StoreConfig{
			Backend:         strings.ToLower(getEnv("STORE_BACKEND", BackendSheets)),
			SpreadsheetID:   getEnv("GOOGLE_SHEETS_SPREADSHEET_ID", ""),
			CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
			CredentialsJSON: getEnv("GOOGLE_CREDENTIALS_JSON", ""),
			DatabaseURL:     getEnv("DATABASE_URL", ""),
		},
		Events: EventsConfig{
			AMQPURL:         getEnv("AMQP_URL", ""),
			AMQPQueue:       getEnv("AMQP_QUEUE", "catatjualan.events"),
			PubSubProjectID: getEnv("PUBSUB_PROJECT_ID", ""),
			PubSubTopic:     getEnv("PUBSUB_TOPIC", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}
}

// StoreConfigured reports whether the selected backend has what it needs.
func (c Config) StoreConfigured() bool {
	switch c.Store.Backend {
	case BackendMemory:
		return true
	case BackendPostgres:
		return c.Store.DatabaseURL != ""
	case BackendSheets:
		return c.Store.SpreadsheetID != "" && (c.Store.CredentialsFile != "" || c.Store.CredentialsJSON != "")
	}
	return false
}

// InsecureSecret reports whether the default development secret is in use.
func (c Config) InsecureSecret() bool {
	return c.JWTSecret == defaultJWTSecret
}

// Location resolves TimeZone, falling back to WIB (UTC+7).
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.Atoi(strings.TrimSpace(valueStr)); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseBool(strings.TrimSpace(valueStr)); err == nil {
			return value
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("168h") or a bare number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(valueStr) == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(strings.TrimSpace(valueStr)); err == nil && d > 0 {
		return d
	}
	if secs := getEnvInt(key, 0); secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
