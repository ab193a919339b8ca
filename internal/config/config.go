package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/Jindonglee/resume-board/pkg/config"
)

// Config holds all service configuration, loaded from the environment.
type Config struct {
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"3018"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	AccessTokenSecret  string        `env:"ACCESS_TOKEN_SECRET_KEY,required,notEmpty"`
	RefreshTokenSecret string        `env:"REFRESH_TOKEN_SECRET_KEY,required,notEmpty"`
	AccessTokenExpiry  time.Duration `env:"ACCESS_TOKEN_EXPIRY" envDefault:"12h"`
	RefreshTokenExpiry time.Duration `env:"REFRESH_TOKEN_EXPIRY" envDefault:"168h"`

	LoginRateLimit int `env:"LOGIN_RATE_LIMIT" envDefault:"5"`
	LoginRateBurst int `env:"LOGIN_RATE_BURST" envDefault:"10"`

	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
}

// PostgresConfig holds database connection settings.
type PostgresConfig struct {
	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User     string `env:"POSTGRES_USER" envDefault:"resumeboard"`
	Password string `env:"POSTGRES_PASSWORD" envDefault:"resumeboard_secret"`
	DBName   string `env:"POSTGRES_DB" envDefault:"resumeboard"`
	SSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
}

// RedisConfig holds session store connection settings.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// KafkaConfig holds event stream settings.
type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
}

// Load reads and validates the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := pkgconfig.Load(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP_PORT: %d", cfg.HTTPPort)
	}
	if cfg.AccessTokenExpiry <= 0 {
		return nil, fmt.Errorf("ACCESS_TOKEN_EXPIRY must be positive")
	}
	if cfg.RefreshTokenExpiry <= 0 {
		return nil, fmt.Errorf("REFRESH_TOKEN_EXPIRY must be positive")
	}

	return &cfg, nil
}
