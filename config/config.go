package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type DB struct {
	User     string `default:"root" validate:"required"`
	Password string
	Addr     string `default:"127.0.0.1:3306" validate:"required"`
	Name     string `default:"webhooks" validate:"required"`
}

type Config struct {
	HTTPAddr string `default:":80" validate:"required"`
	DB       DB

	// WebhookHost is the host embedded in derived webhook URLs.
	WebhookHost string `default:"discordapp.com" validate:"required,hostname_port|hostname"`
	// StrictURL refuses to derive a URL for webhooks missing an id or token.
	StrictURL bool

	PruneInterval time.Duration `default:"10m" validate:"gt=0"`
	LogLevel      string        `default:"info" validate:"oneof=debug info warn error"`
}

// Load reads an optional .env file, then the process environment, on top of
// the defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, which has the signature of
// os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	cfg := new(Config)
	if err := defaults.Set(cfg); err != nil {
		return nil, err
	}

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("HTTP_ADDR", &cfg.HTTPAddr)
	str("DATA_DB_USER", &cfg.DB.User)
	str("DATA_DB_PASSWORD", &cfg.DB.Password)
	str("DATA_DB_ADDR", &cfg.DB.Addr)
	str("DATA_DB_NAME", &cfg.DB.Name)
	str("WEBHOOK_HOST", &cfg.WebhookHost)
	str("LOG_LEVEL", &cfg.LogLevel)

	if v, ok := lookup("WEBHOOK_STRICT_URL"); ok && v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("WEBHOOK_STRICT_URL: %w", err)
		}
		cfg.StrictURL = strict
	}
	if v, ok := lookup("PRUNE_INTERVAL"); ok && v != "" {
		interval, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("PRUNE_INTERVAL: %w", err)
		}
		cfg.PruneInterval = interval
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
