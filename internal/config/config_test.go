package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/playperu/squaredrill/internal/drill"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	if s := cfg.DrillSettings(); s.Questions != 64 || s.Seconds != 60 {
		t.Errorf("DrillSettings = %+v, want 64/60", s)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("TIMED_QUESTIONS", "20")
	t.Setenv("TIMED_SECONDS", "0")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("SWEEP_INTERVAL", "-1s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" || cfg.LogLevel != slog.LevelDebug {
		t.Errorf("cfg = %+v", cfg)
	}
	if s := cfg.DrillSettings(); s.Questions != 20 || s.Seconds != 0 {
		t.Errorf("DrillSettings = %+v", s)
	}
	if cfg.SessionTTL != 5*time.Minute {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
	if cfg.SweepInterval != time.Minute {
		t.Errorf("SweepInterval = %v, want fallback 1m", cfg.SweepInterval)
	}
}

func TestLoadMalformedDrillSettings(t *testing.T) {
	t.Setenv("TIMED_QUESTIONS", "lots")
	t.Setenv("TIMED_SECONDS", "1m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s := cfg.DrillSettings()
	if s.Questions != 0 || s.Seconds != 0 {
		t.Errorf("DrillSettings = %+v, want 0/0 so the drill defaults apply", s)
	}

	c := drill.NewController(s)
	defer c.Close()
	if got := c.Settings(); got.Questions != drill.DefaultQuestions || got.Seconds != drill.DefaultSeconds {
		t.Errorf("controller settings = %+v, want %d/%d", got, drill.DefaultQuestions, drill.DefaultSeconds)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("SESSION_TTL", "forever")
	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a malformed SESSION_TTL")
	}
}
