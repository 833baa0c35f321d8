package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/playperu/squaredrill/internal/drill"
)

type Config struct {
	HTTPAddr  string     `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	StaticDir string     `env:"STATIC_DIR"`

	TimedQuestions Count `env:"TIMED_QUESTIONS" envDefault:"64"`
	TimedSeconds   Count `env:"TIMED_SECONDS" envDefault:"60"`

	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`
}

// Count is a drill setting that never fails to parse. Anything that is not
// an integer reads as 0, which the drill replaces with its default.
type Count int

func (n *Count) UnmarshalText(b []byte) error {
	v, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		v = 0
	}
	*n = Count(v)
	return nil
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	return &cfg, nil
}

// DrillSettings returns the Timed mode settings. Non-positive values are
// replaced with the drill defaults when a controller is built.
func (c *Config) DrillSettings() drill.Settings {
	return drill.Settings{
		Questions: int(c.TimedQuestions),
		Seconds:   int(c.TimedSeconds),
	}
}
