package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	SMTP      SMTPConfig
	Keys      APIKeys
	Widget    WidgetConfig
	Messaging MessagingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	WsLogFilePath      string
	CorsAllowedOrigins string
	OtelEnabled        bool
	OtelEndpoint       string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
	AlertEmail string // sales inbox notified about hot leads
}

type APIKeys struct {
	JWTSecret         string
	AdminPasswordHash string // bcrypt
}

type WidgetConfig struct {
	SessionTTL  time.Duration
	ContentFile string // optional YAML catalog, built-in content when empty
	ScoringMode string
	HotDelay    time.Duration
	MinDelay    time.Duration
	MaxDelay    time.Duration
}

type MessagingConfig struct {
	NatsURL      string
	RedisURL     string
	KafkaBrokers []string
	KafkaTopic   string
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			WsLogFilePath:      getEnv("WS_LOG_FILE_PATH", "logs/ws.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Lead Assistant"),
			AlertEmail: getEnv("SALES_ALERT_EMAIL", ""),
		},
		Keys: APIKeys{
			JWTSecret:         getEnv("JWT_SECRET", ""),
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Widget: WidgetConfig{
			SessionTTL:  getEnvAsDuration("WIDGET_SESSION_TTL", time.Hour),
			ContentFile: getEnv("WIDGET_CONTENT_FILE", ""),
			ScoringMode: getEnv("WIDGET_SCORING_MODE", "idempotent"),
			HotDelay:    getEnvAsDuration("WIDGET_HOT_DELAY", 500*time.Millisecond),
			MinDelay:    getEnvAsDuration("WIDGET_MIN_DELAY", 1000*time.Millisecond),
			MaxDelay:    getEnvAsDuration("WIDGET_MAX_DELAY", 1800*time.Millisecond),
		},
		Messaging: MessagingConfig{
			NatsURL:      getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379"),
			KafkaBrokers: getEnvAsList("KAFKA_BROKERS"),
			KafkaTopic:   getEnv("KAFKA_LEAD_TOPIC", "lead-signals"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("750ms", "2h").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
