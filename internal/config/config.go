package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Analytics AnalyticsConfig
	Seed      SeedConfig
}

type AppConfig struct {
	AppName       string
	Environment   string
	HTTPPort      string
	MigrationsDir string

	JobExpiryInterval time.Duration
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ApplicationName       string
	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
	Prefix   string
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type AnalyticsConfig struct {
	CacheTTL     time.Duration
	FetchTimeout time.Duration
}

type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optInt := func(key string, def int) int {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optDur := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}

	cfg.App = AppConfig{
		AppName:       req("APP_NAME"),
		Environment:   req("APP_ENV"),
		HTTPPort:      req("HTTP_PORT"),
		MigrationsDir: opt("MIGRATIONS_DIR"),

		JobExpiryInterval: optDur("JOB_EXPIRY_INTERVAL", time.Hour),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     req("DB_HOST"),
		DBPort:     req("DB_PORT"),
		DBName:     req("DB_NAME"),
		DBUser:     req("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ApplicationName:       opt("APP_NAME"),
		ConnectTimeout:        optDur("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDur("DB_POOL_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime:   optDur("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute),
		PoolHealthCheckPeriod: optDur("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute),
	}
	if cfg.Database.DBSSLMode == "" {
		cfg.Database.DBSSLMode = "disable"
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		DB:       optInt("REDIS_DB", 0),
		TTL:      time.Duration(optInt("REDIS_TTL", 600)) * time.Second,
		Prefix:   opt("REDIS_KEY_PREFIX"),
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == "" {
		cfg.Redis.Port = "6379"
	}
	if cfg.Redis.Prefix == "" {
		cfg.Redis.Prefix = "jobboard:"
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  optDur("JWT_ACCESS_EXPIRES_IN", 24*time.Hour),
		RefreshExpiresIn: optDur("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.Analytics = AnalyticsConfig{
		CacheTTL:     optDur("ANALYTICS_CACHE_TTL", 60*time.Second),
		FetchTimeout: optDur("ANALYTICS_FETCH_TIMEOUT", 10*time.Second),
	}

	cfg.Seed = SeedConfig{
		AdminEmail:    opt("SEED_ADMIN_EMAIL"),
		AdminPassword: opt("SEED_ADMIN_PASSWORD"),
		AdminName:     opt("SEED_ADMIN_NAME"),
	}
	if cfg.Seed.AdminName == "" {
		cfg.Seed.AdminName = "Administrator"
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}
