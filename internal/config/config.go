package config

import (
	"fmt"
	"os"
	"time"
)

const (
	// Pagination
	DefaultPageLimit = 50
	MaxPageLimit     = 200

	// Auth
	TokenTTL  = 72 * time.Hour
	JWTIssuer = "duetchat-service"

	// Presence keys in Redis expire after this window without a heartbeat.
	PresenceTTL = 45 * time.Second
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port          string
	DatabaseDSN   string
	RedisAddr     string
	RedisPassword string
	JWTSecret     string
	// PasscodeA/PasscodeB gate login for the two fixed identities.
	PasscodeA string
	PasscodeB string
	// TranslateURL is the base URL of the LibreTranslate-compatible API.
	TranslateURL string
	// TelegramBotToken is optional; empty disables offline notifications.
	TelegramBotToken string
	LogLevel         string
}

// Load reads configuration from the environment. Call godotenv.Load first if
// a .env file should be honored.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getenv("PORT", "8080"),
		RedisAddr:        getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		PasscodeA:        os.Getenv("PASSCODE_A"),
		PasscodeB:        os.Getenv("PASSCODE_B"),
		TranslateURL:     getenv("TRANSLATE_API_URL", "http://localhost:5000"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		LogLevel:         getenv("LOG_LEVEL", "info"),
	}

	cfg.DatabaseDSN = os.Getenv("DATABASE_DSN")
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			getenv("DB_HOST", "localhost"),
			getenv("DB_USER", "duetchat"),
			os.Getenv("DB_PASSWORD"),
			getenv("DB_NAME", "duetchatdb"),
			getenv("DB_PORT", "5432"),
		)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	if cfg.PasscodeA == "" || cfg.PasscodeB == "" {
		return nil, fmt.Errorf("PASSCODE_A and PASSCODE_B must be set")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Passcode returns the login passcode configured for a role, or "" for an
// unknown role.
func (c *Config) Passcode(role string) string {
	switch role {
	case "A":
		return c.PasscodeA
	case "B":
		return c.PasscodeB
	}
	return ""
}
