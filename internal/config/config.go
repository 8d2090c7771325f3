package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8000"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/monguessr.db"`
	ImageDir string     `env:"IMAGE_DIR" envDefault:"images"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	// AdminPassHash is a bcrypt hash of the admin upload credential. Empty
	// disables the admin endpoints entirely.
	AdminPassHash string `env:"ADMIN_PASS_HASH"`

	EndlessStartHP int64 `env:"ENDLESS_START_HP" envDefault:"5000"`
	StandardRounds int64 `env:"STANDARD_ROUNDS" envDefault:"5"`

	// Sessions idle longer than SessionTTL are deleted by the sweep, which
	// runs every SweepInterval.
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"1h"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"1h"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
