package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the recruit-api application.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	ClickHouse ClickHouseConfig
	Auth       AuthConfig
	RateLimit  RateLimitConfig
	Log        LogConfig
	Metrics    MetricsConfig
	Geo        GeoConfig
	Upload     UploadConfig
}

type ServerConfig struct {
	Addr            string
	Env             string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
	MinConns int
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// ClickHouseConfig selects the columnar backend for interaction events.
// When disabled, events live in PostgreSQL alongside everything else.
type ClickHouseConfig struct {
	Enabled  bool
	Addr     string
	Database string
	Username string
	Password string
}

type AuthConfig struct {
	Enabled   bool
	JWTSecret string
	TokenTTL  time.Duration

	// Bootstrap admin credentials, seeded on startup when set.
	AdminUsername string
	AdminPassword string

	// Request paths gated behind an admin bearer token.
	ProtectedPrefixes []string
}

type RateLimitConfig struct {
	Enabled     bool
	PublicRPS   float64
	PublicBurst int
	AdminRPS    float64
	AdminBurst  int
}

type LogConfig struct {
	Level  string
	Format string
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// GeoConfig configures GeoIP country enrichment of interaction events.
type GeoConfig struct {
	Enabled      bool
	DatabasePath string
}

type UploadConfig struct {
	Dir      string
	MaxBytes int64
}

// Load reads configuration from the environment (and an optional .env file)
// with sensible defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Addr:            getEnv("RECRUIT_HTTP_ADDR", ":8080"),
			Env:             getEnv("RECRUIT_ENV", "development"),
			ShutdownTimeout: getDurationEnv("RECRUIT_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("RECRUIT_DB_HOST", "localhost"),
			Port:     getIntEnv("RECRUIT_DB_PORT", 5432),
			User:     getEnv("RECRUIT_DB_USER", "recruit"),
			Password: getEnv("RECRUIT_DB_PASSWORD", "recruit_secret"),
			DBName:   getEnv("RECRUIT_DB_NAME", "recruit"),
			SSLMode:  getEnv("RECRUIT_DB_SSLMODE", "disable"),
			MaxConns: getIntEnv("RECRUIT_DB_MAX_CONNS", 25),
			MinConns: getIntEnv("RECRUIT_DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Enabled:  getBoolEnv("RECRUIT_REDIS_ENABLED", false),
			Addr:     getEnv("RECRUIT_REDIS_ADDR", "localhost:6379"),
			Password: getEnv("RECRUIT_REDIS_PASSWORD", ""),
			DB:       getIntEnv("RECRUIT_REDIS_DB", 0),
		},
		ClickHouse: ClickHouseConfig{
			Enabled:  getBoolEnv("RECRUIT_CLICKHOUSE_ENABLED", false),
			Addr:     getEnv("RECRUIT_CLICKHOUSE_ADDR", "localhost:9000"),
			Database: getEnv("RECRUIT_CLICKHOUSE_DB", "recruit"),
			Username: getEnv("RECRUIT_CLICKHOUSE_USER", "default"),
			Password: getEnv("RECRUIT_CLICKHOUSE_PASSWORD", ""),
		},
		Auth: AuthConfig{
			Enabled:       getBoolEnv("RECRUIT_AUTH_ENABLED", true),
			JWTSecret:     getEnv("RECRUIT_JWT_SECRET", ""),
			TokenTTL:      getDurationEnv("RECRUIT_TOKEN_TTL", 24*time.Hour),
			AdminUsername: getEnv("RECRUIT_ADMIN_USERNAME", "admin"),
			AdminPassword: getEnv("RECRUIT_ADMIN_PASSWORD", ""),
			ProtectedPrefixes: getSliceEnv("RECRUIT_AUTH_PROTECTED_PREFIXES", []string{
				"/api/admin/",
				"/api/analytics/worker-data",
				"/api/analytics/summary",
				"/api/analytics/ranking",
				"/api/analytics/comparison",
				"/api/analytics/today",
			}),
		},
		RateLimit: RateLimitConfig{
			Enabled:     getBoolEnv("RECRUIT_RATE_LIMIT_ENABLED", true),
			PublicRPS:   getFloatEnv("RECRUIT_RATE_LIMIT_PUBLIC_RPS", 200),
			PublicBurst: getIntEnv("RECRUIT_RATE_LIMIT_PUBLIC_BURST", 50),
			AdminRPS:    getFloatEnv("RECRUIT_RATE_LIMIT_ADMIN_RPS", 50),
			AdminBurst:  getIntEnv("RECRUIT_RATE_LIMIT_ADMIN_BURST", 10),
		},
		Log: LogConfig{
			Level:  getEnv("RECRUIT_LOG_LEVEL", "info"),
			Format: getEnv("RECRUIT_LOG_FORMAT", "json"),
		},
		Metrics: MetricsConfig{
			Enabled: getBoolEnv("RECRUIT_METRICS_ENABLED", true),
			Path:    getEnv("RECRUIT_METRICS_PATH", "/metrics"),
		},
		Geo: GeoConfig{
			Enabled:      getBoolEnv("RECRUIT_GEO_ENABLED", false),
			DatabasePath: getEnv("RECRUIT_GEO_DB_PATH", "/app/data/GeoLite2-Country.mmdb"),
		},
		Upload: UploadConfig{
			Dir:      getEnv("RECRUIT_UPLOAD_DIR", "static/uploads"),
			MaxBytes: getInt64Env("RECRUIT_UPLOAD_MAX_BYTES", 32<<20),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Auth.Enabled && c.Auth.JWTSecret == "" {
		return fmt.Errorf("RECRUIT_JWT_SECRET is required when auth is enabled")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Helper functions for reading environment variables

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getIntEnv(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getInt64Env(key string, def int64) int64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return def
}

func getFloatEnv(key string, def float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getSliceEnv(key string, def []string) []string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				result = append(result, p)
			}
		}
		return result
	}
	return def
}
