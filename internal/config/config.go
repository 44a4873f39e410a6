package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Identity IdentityConfig
	Storage  StorageConfig
	Logger   LoggerConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr          string
	Password      string
	DB            int
	EventsChannel string
}

// IdentityVerifyMode selects how bearer credentials are resolved.
type IdentityVerifyMode string

const (
	// VerifyModeLocal validates the provider-signed JWT with the shared
	// secret and loads the local profile.
	VerifyModeLocal IdentityVerifyMode = "local"
	// VerifyModeRemote exchanges the token with the provider's verify
	// endpoint before loading the local profile.
	VerifyModeRemote IdentityVerifyMode = "remote"
)

// IdentityConfig defines how bearer tokens are verified.
type IdentityConfig struct {
	Mode              IdentityVerifyMode
	JWTSecret         string
	VerifyURL         string
	ServiceKey        string
	HTTPTimeoutSecond int
}

// StorageConfig configures the object storage bucket.
type StorageConfig struct {
	BaseURL           string
	Bucket            string
	ServiceKey        string
	PutTimeoutSeconds int
	MaxFileSizeBytes  int64
	MaxBatchSize      int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	mode := IdentityVerifyMode(getEnv("IDENTITY_VERIFY_MODE", string(VerifyModeLocal)))
	if mode != VerifyModeLocal && mode != VerifyModeRemote {
		return nil, fmt.Errorf("invalid IDENTITY_VERIFY_MODE: %q", mode)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "workorder-tracker"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:          getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:      os.Getenv("REDIS_PASSWORD"),
			DB:            redisDB,
			EventsChannel: getEnv("REDIS_EVENTS_CHANNEL", "workorder-tracker:events"),
		},
		Identity: IdentityConfig{
			Mode:              mode,
			JWTSecret:         getEnv("IDENTITY_JWT_SECRET", "dev-secret"),
			VerifyURL:         os.Getenv("IDENTITY_VERIFY_URL"),
			ServiceKey:        os.Getenv("IDENTITY_SERVICE_KEY"),
			HTTPTimeoutSecond: getEnvAsInt("IDENTITY_HTTP_TIMEOUT_SECONDS", 10),
		},
		Storage: StorageConfig{
			BaseURL:           os.Getenv("STORAGE_BASE_URL"),
			Bucket:            getEnv("STORAGE_BUCKET", "ticket-images"),
			ServiceKey:        os.Getenv("STORAGE_SERVICE_KEY"),
			PutTimeoutSeconds: getEnvAsInt("STORAGE_PUT_TIMEOUT_SECONDS", 60),
			MaxFileSizeBytes:  int64(getEnvAsInt("STORAGE_MAX_FILE_SIZE_BYTES", 5*1024*1024)),
			MaxBatchSize:      getEnvAsInt("STORAGE_MAX_BATCH_SIZE", 5),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if mode == VerifyModeRemote && cfg.Identity.VerifyURL == "" {
		return nil, fmt.Errorf("IDENTITY_VERIFY_URL required in remote mode")
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// HTTPTimeout returns the identity exchange timeout.
func (i IdentityConfig) HTTPTimeout() time.Duration {
	if i.HTTPTimeoutSecond <= 0 {
		return 10 * time.Second
	}
	return time.Duration(i.HTTPTimeoutSecond) * time.Second
}

// PutTimeout returns the per-object write bound.
func (s StorageConfig) PutTimeout() time.Duration {
	if s.PutTimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(s.PutTimeoutSeconds) * time.Second
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

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
