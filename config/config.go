package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// placeholderSecret is the value shipped in example env files; it must be replaced.
const placeholderSecret = "change-me-in-production"

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port            string        `env:"PORT" envDefault:"3001"`
	StoreDriver     string        `env:"STORE_DRIVER" envDefault:"mongo"`
	MongoURI        string        `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	DBName          string        `env:"MONGODB_DB" envDefault:"googlebooks"`
	JWTSecret       string        `env:"JWT_SECRET_KEY"`
	BcryptCost      int           `env:"BCRYPT_COST" envDefault:"10"`
	RedisAddr       string        `env:"REDIS_ADDR"`
	ProbeThreshold  int           `env:"TOKEN_PROBE_THRESHOLD" envDefault:"10"`
	ProbeWindow     time.Duration `env:"TOKEN_PROBE_WINDOW" envDefault:"15m"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:","`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"text"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	switch strings.TrimSpace(c.JWTSecret) {
	case "":
		errs = append(errs, errors.New("JWT_SECRET_KEY is required"))
	case placeholderSecret:
		errs = append(errs, fmt.Errorf("JWT_SECRET_KEY must be set to a strong secret (not the default %s)", placeholderSecret))
	}
	switch c.StoreDriver {
	case StoreMongo:
		if c.MongoURI == "" || c.DBName == "" {
			errs = append(errs, errors.New("MONGODB_URI and MONGODB_DB are required for the mongo store"))
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreMongo, StoreMemory, c.StoreDriver))
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost))
	}
	if c.ProbeThreshold < 0 {
		errs = append(errs, errors.New("TOKEN_PROBE_THRESHOLD must not be negative"))
	}
	if c.RedisAddr != "" && c.ProbeWindow <= 0 {
		errs = append(errs, errors.New("TOKEN_PROBE_WINDOW must be positive"))
	}
	return errors.Join(errs...)
}
