package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort        string
	PostgresDSN     string
	RedisURL        string
	JWTSecret       string
	AdminUsername   string
	AdminPassword   string
	AdminEmail      string
	MailerBaseURL   string
	MailerServiceID string
	MailerTemplate  string
	MailerAPIKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	DBMaxOpenConns  int
	DBMaxIdleConns  int
	DBConnMaxIdle   time.Duration
	DBConnMaxLife   time.Duration
	RequestTimeout  time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		PostgresDSN:     getEnv("DATABASE_URL", ""),
		RedisURL:        getEnv("REDIS_URL", ""),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		AdminUsername:   getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:   getEnv("ADMIN_PASSWORD", ""),
		AdminEmail:      getEnv("ADMIN_EMAIL", "admin@feee.tn"),
		MailerBaseURL:   getEnv("MAILER_BASE_URL", ""),
		MailerServiceID: getEnv("MAILER_SERVICE_ID", ""),
		MailerTemplate:  getEnv("MAILER_TEMPLATE_ID", ""),
		MailerAPIKey:    getEnv("MAILER_API_KEY", ""),
		AccessTokenTTL:  getDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL: getDuration("REFRESH_TOKEN_TTL", 30*24*time.Hour),
		DBMaxOpenConns:  getInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:  getInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxIdle:   getDuration("DB_CONN_MAX_IDLE", 5*time.Minute),
		DBConnMaxLife:   getDuration("DB_CONN_MAX_LIFE", 30*time.Minute),
		RequestTimeout:  getDuration("REQUEST_TIMEOUT", 10*time.Second),
	}

	if cfg.PostgresDSN == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	if cfg.AdminPassword == "" {
		log.Fatal("ADMIN_PASSWORD is required")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
