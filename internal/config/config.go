package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env        string
	Port       int
	DBURL      string
	PrivateKey string
	TokenTTL   time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MediaDir       string
	PublicBaseURL  string
	AllowedOrigins []string

	OTLPEndpoint string

	LoginRateLimit  int
	LoginRateWindow time.Duration

	// in-process cache TTL for rarely changing reference data
	CacheTTL time.Duration

	// optional bootstrap superadmin, created at startup when both are set
	AdminEmail    string
	AdminPassword string
}

// Without the signing key no token can be issued or verified, so startup must abort.
var ErrMissingPrivateKey = errors.New("PRIVATE_KEY is not set")

func Load() (Config, error) {
	env := getEnv("APP_ENV", "dev")
	port := getEnvInt("PORT", 8080)
	dbURL := buildDBURL()

	privateKey := os.Getenv("PRIVATE_KEY")

	if privateKey == "" {
		return Config{}, ErrMissingPrivateKey
	}

	cfg := Config{
		Env:        env,
		Port:       port,
		DBURL:      dbURL,
		PrivateKey: privateKey,
		TokenTTL:   getEnvDuration("TOKEN_TTL", 24*time.Hour),

		RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		MediaDir:       getEnv("MEDIA_DIR", "media"),
		PublicBaseURL:  getEnv("PUBLIC_BASE_URL", fmt.Sprintf("http://localhost:%d", port)),
		AllowedOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),

		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),

		LoginRateLimit:  getEnvInt("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow: getEnvDuration("LOGIN_RATE_WINDOW", time.Minute),

		CacheTTL: getEnvDuration("CACHE_TTL", 30*time.Second),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	return cfg, nil
}

func buildDBURL() string {
	// a full DATABASE_URL wins over the individual parts
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "directory")
	pass := getEnv("DB_PASSWORD", "directory")
	name := getEnv("DB_NAME", "directory")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)

		if err != nil {
			return fallback
		}

		return d
	}
	return fallback
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")

	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}

	return out
}
