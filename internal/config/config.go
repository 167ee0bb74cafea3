package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Credential source selectors.
const (
	CredentialSourceEnv   = "env"
	CredentialSourceRedis = "redis"
)

// Config aggregates runtime configuration for the dashboard.
type Config struct {
	App    AppConfig
	API    APIConfig
	Auth   AuthConfig
	Redis  RedisConfig
	Logger LoggerConfig
	UI     UIConfig
}

// AppConfig holds application identity values.
type AppConfig struct {
	Name    string
	Env     string
	Version string
}

// APIConfig points at the remote ticket API.
type APIConfig struct {
	BaseURL string
}

// AuthConfig describes where the externally-persisted session token
// is read from. The dashboard never writes a credential.
type AuthConfig struct {
	Source    string
	TokenVar  string
	TokenFile string
	RedisKey  string
}

// RedisConfig holds Redis connection values for the redis credential
// source.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
	File  string
}

// UIConfig holds presentation defaults.
type UIConfig struct {
	RowsPerPage int
}

// Load reads configuration from environment variables, applying
// defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	source := strings.ToLower(getEnv("AUTH_SOURCE", CredentialSourceEnv))
	if source != CredentialSourceEnv && source != CredentialSourceRedis {
		return nil, fmt.Errorf("invalid AUTH_SOURCE: %q", source)
	}

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "ticket-dashboard"),
			Env:     getEnv("APP_ENV", "development"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(getEnv("API_BASE_URL", "http://127.0.0.1:8080"), "/"),
		},
		Auth: AuthConfig{
			Source:    source,
			TokenVar:  getEnv("AUTH_TOKEN_VAR", "TICKET_SESSION_TOKEN"),
			TokenFile: os.Getenv("AUTH_TOKEN_FILE"),
			RedisKey:  getEnv("AUTH_REDIS_KEY", "session:token"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  os.Getenv("LOG_FILE"),
		},
		UI: UIConfig{
			RowsPerPage: getEnvAsInt("UI_ROWS_PER_PAGE", 10),
		},
	}

	if cfg.UI.RowsPerPage < 1 {
		cfg.UI.RowsPerPage = 10
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
