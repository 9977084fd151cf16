package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	defaultIroningRate = "0.50"
	defaultCORSOrigin  = "http://localhost:5173"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string

	AdminSecretKey string
	CookieSecure   bool

	// ServiceKey, when set, lets callers sending it in X-Service-Auth use
	// the trusted rate tier.
	ServiceKey string

	// IroningRate is the flat per-item charge applied to every ironing line,
	// at creation, full update and dashboard aggregation alike.
	IroningRate decimal.Decimal

	CORSAllowedOrigins []string
	DashboardCacheTTL  time.Duration
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:             os.Getenv("DB_HOST"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
		DBPort:             os.Getenv("DB_PORT"),
		AppPort:            getenv("APP_PORT", "5000"),
		AppEnv:             os.Getenv("APP_ENV"),
		AdminSecretKey:     os.Getenv("ADMIN_SECRET_KEY"),
		CookieSecure:       os.Getenv("COOKIE_SECURE") == "true",
		ServiceKey:         os.Getenv("INTERNAL_SECRET_KEY"),
		CORSAllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", defaultCORSOrigin)),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	rate, err := ParseIroningRate(getenv("IRONING_RATE", defaultIroningRate))
	if err != nil {
		log.Fatalf("invalid IRONING_RATE: %v", err)
	}
	cfg.IroningRate = rate

	if raw := os.Getenv("DASHBOARD_CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl < 0 {
			log.Fatalf("invalid DASHBOARD_CACHE_TTL: %q", raw)
		}
		cfg.DashboardCacheTTL = ttl
	}

	return cfg
}

// ParseIroningRate parses a non-negative decimal amount.
func ParseIroningRate(raw string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, err
	}
	if rate.IsNegative() {
		return decimal.Zero, errNegativeRate
	}
	return rate, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
