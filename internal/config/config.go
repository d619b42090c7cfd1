package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Notes    NotesConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Driver       string
	Connection   string
	MaxOpenConns int
}

type AuthConfig struct {
	JwtSecret     string
	TokenLifetime time.Duration
}

type NotesConfig struct {
	RecentFilesLimit int
	PathCacheTTL     time.Duration
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

const defaultJwtSecret = "default_secret"

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Driver:       getEnv("DB_DRIVER", "sqlite"),
			Connection:   getEnv("DB_CONNECTION_STRING", "notes.db"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
		},
		Auth: AuthConfig{
			JwtSecret:     getEnv("JWT_SECRET", defaultJwtSecret),
			TokenLifetime: getEnvAsDuration("JWT_TTL", 24*time.Hour),
		},
		Notes: NotesConfig{
			RecentFilesLimit: getEnvAsInt("RECENT_FILES_LIMIT", 10),
			PathCacheTTL:     getEnvAsDuration("PATH_CACHE_TTL", 10*time.Minute),
		},
		Tracing: TracingConfig{
			Enabled:  getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
