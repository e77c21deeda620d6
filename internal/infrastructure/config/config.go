package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/eslsoft/studyengine/internal/entity"
)

// Study modes.
const (
	ModeTraditional = "traditional"
	ModeAdaptive    = "adaptive"
)

// Config holds all configuration for the study engine CLI
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Study    StudyConfig    `mapstructure:"study"`
	Quiz     QuizConfig     `mapstructure:"quiz"`
	Autoplay AutoplayConfig `mapstructure:"autoplay"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StudyConfig tunes the retention model and the session queue.
type StudyConfig struct {
	InitialEase         float64       `mapstructure:"initial_ease"`
	MinimumEase         float64       `mapstructure:"minimum_ease"`
	MaximumIntervalDays int           `mapstructure:"maximum_interval_days"`
	LapseDelay          time.Duration `mapstructure:"lapse_delay"`
	AgainOffset         int           `mapstructure:"again_offset"`
	HardOffset          int           `mapstructure:"hard_offset"`
	Mode                string        `mapstructure:"mode"`
	Seed                int64         `mapstructure:"seed"`
	Filter              string        `mapstructure:"filter"`
	OrderBy             string        `mapstructure:"order_by"`
}

// QuizConfig holds test synthesis configuration
type QuizConfig struct {
	Count int  `mapstructure:"count"`
	Mixed bool `mapstructure:"mixed"`
}

// AutoplayConfig drives unattended sessions. A zero interval disables it.
type AutoplayConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	Grade    string        `mapstructure:"grade"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	setDefaults()

	// Enable reading from environment variables
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read configuration file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")

	// Study defaults
	viper.SetDefault("study.initial_ease", entity.DefaultEase)
	viper.SetDefault("study.minimum_ease", entity.MinimumEase)
	viper.SetDefault("study.maximum_interval_days", 3650)
	viper.SetDefault("study.lapse_delay", "10h")
	viper.SetDefault("study.again_offset", 2)
	viper.SetDefault("study.hard_offset", 5)
	viper.SetDefault("study.mode", ModeTraditional)
	viper.SetDefault("study.seed", 0)
	viper.SetDefault("study.filter", "")
	viper.SetDefault("study.order_by", "")

	// Quiz defaults
	viper.SetDefault("quiz.count", 10)
	viper.SetDefault("quiz.mixed", false)

	// Autoplay defaults
	viper.SetDefault("autoplay.interval", "0s")
	viper.SetDefault("autoplay.grade", entity.GradeGood.String())
}

// Validate checks the values the engine constructors cannot default.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Study.Mode) {
	case ModeTraditional, ModeAdaptive:
	default:
		return fmt.Errorf("%w: unknown study mode %q", entity.ErrInvalidConfig, c.Study.Mode)
	}
	if c.Quiz.Count < 0 {
		return fmt.Errorf("%w: quiz.count must not be negative", entity.ErrInvalidConfig)
	}
	if c.Autoplay.Interval < 0 {
		return fmt.Errorf("%w: autoplay.interval must not be negative", entity.ErrInvalidConfig)
	}
	if _, err := entity.ParseGrade(c.Autoplay.Grade); err != nil {
		return fmt.Errorf("%w: autoplay.grade: %w", entity.ErrInvalidConfig, err)
	}
	return nil
}

// Adaptive reports whether sessions use the adaptive learn policy.
func (c *Config) Adaptive() bool {
	return strings.EqualFold(c.Study.Mode, ModeAdaptive)
}

// Seed returns the configured random seed, or a time based one when unset.
func (c *Config) Seed() int64 {
	if c.Study.Seed != 0 {
		return c.Study.Seed
	}
	return time.Now().UnixNano()
}
