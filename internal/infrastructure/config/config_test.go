package config

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/eslsoft/studyengine/internal/entity"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Fatalf("unexpected log config %+v", cfg.Log)
	}
	s := cfg.Study
	if s.InitialEase != 2.5 || s.MinimumEase != 1.3 || s.MaximumIntervalDays != 3650 {
		t.Fatalf("unexpected retention defaults %+v", s)
	}
	if s.LapseDelay != 10*time.Hour || s.AgainOffset != 2 || s.HardOffset != 5 {
		t.Fatalf("unexpected session defaults %+v", s)
	}
	if cfg.Adaptive() || cfg.Quiz.Count != 10 || cfg.Autoplay.Interval != 0 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	chdir(t, t.TempDir())
	t.Setenv("STUDY_MODE", "adaptive")
	t.Setenv("STUDY_AGAIN_OFFSET", "3")
	t.Setenv("STUDY_SEED", "42")
	t.Setenv("AUTOPLAY_INTERVAL", "2s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.Adaptive() || cfg.Study.AgainOffset != 3 || cfg.Seed() != 42 {
		t.Fatalf("environment not applied: %+v", cfg.Study)
	}
	if cfg.Autoplay.Interval != 2*time.Second {
		t.Fatalf("autoplay interval = %s", cfg.Autoplay.Interval)
	}
}

func TestValidate(t *testing.T) {
	base := Config{Study: StudyConfig{Mode: ModeTraditional}, Autoplay: AutoplayConfig{Grade: "good"}}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := map[string]func(c *Config){
		"mode":     func(c *Config) { c.Study.Mode = "cram" },
		"count":    func(c *Config) { c.Quiz.Count = -1 },
		"interval": func(c *Config) { c.Autoplay.Interval = -time.Second },
		"grade":    func(c *Config) { c.Autoplay.Grade = "perfect" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base
			mutate(&c)
			if err := c.Validate(); !errors.Is(err, entity.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore dir: %v", err)
		}
	})
}
