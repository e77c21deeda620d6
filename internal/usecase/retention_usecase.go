package usecase

import (
	"fmt"
	"math"
	"time"

	"github.com/eslsoft/studyengine/internal/entity"
)

const (
	defaultMaximumIntervalDays = 3650
	defaultLapseDelay          = 10 * time.Hour
	firstIntervalDays          = 1
	secondIntervalDays         = 6
)

// RetentionConfig configures a RetentionModel.
// Zero values select the documented defaults.
type RetentionConfig struct {
	InitialEase         float64       // zero → entity.DefaultEase
	MinimumEase         float64       // zero → entity.MinimumEase
	MaximumIntervalDays int           // zero → 3650
	LapseDelay          time.Duration // zero → 10h
}

// RetentionModel maps a retention state and a grade to the next state.
type RetentionModel interface {
	NewState(now time.Time) entity.RetentionState
	Update(state entity.RetentionState, grade entity.Grade, now time.Time) entity.RetentionState
}

// NewRetentionModel validates cfg and fills in defaults.
func NewRetentionModel(cfg RetentionConfig) (RetentionModel, error) {
	if cfg.InitialEase == 0 {
		cfg.InitialEase = entity.DefaultEase
	}
	if cfg.MinimumEase == 0 {
		cfg.MinimumEase = entity.MinimumEase
	}
	if cfg.MaximumIntervalDays == 0 {
		cfg.MaximumIntervalDays = defaultMaximumIntervalDays
	}
	if cfg.LapseDelay == 0 {
		cfg.LapseDelay = defaultLapseDelay
	}

	switch {
	case cfg.MinimumEase < 0:
		return nil, fmt.Errorf("%w: minimum ease %.2f is negative", entity.ErrInvalidConfig, cfg.MinimumEase)
	case cfg.InitialEase < cfg.MinimumEase:
		return nil, fmt.Errorf("%w: initial ease %.2f below minimum %.2f", entity.ErrInvalidConfig, cfg.InitialEase, cfg.MinimumEase)
	case cfg.MaximumIntervalDays < 1:
		return nil, fmt.Errorf("%w: maximum interval %d must be positive", entity.ErrInvalidConfig, cfg.MaximumIntervalDays)
	case cfg.LapseDelay < 0:
		return nil, fmt.Errorf("%w: lapse delay %s is negative", entity.ErrInvalidConfig, cfg.LapseDelay)
	}

	return &retentionModel{cfg: cfg}, nil
}

type retentionModel struct {
	cfg RetentionConfig
}

func (m *retentionModel) NewState(now time.Time) entity.RetentionState {
	return entity.NewRetentionState(m.cfg.InitialEase, now)
}

// Update never fails. Out-of-range grades are clamped and a zero ease is
// treated as a fresh item.
func (m *retentionModel) Update(state entity.RetentionState, grade entity.Grade, now time.Time) entity.RetentionState {
	grade = grade.Clamp()
	ease := state.Ease
	if ease <= 0 {
		ease = m.cfg.InitialEase
	}

	// The penalty grows quadratically with the distance from easy.
	d := float64(entity.GradeEasy - grade)
	next := entity.RetentionState{
		Ease: math.Max(m.cfg.MinimumEase, ease+(0.1-d*(0.08+d*0.02))),
	}

	if grade == entity.GradeAgain {
		next.Repetitions = 0
		next.IntervalDays = 0
		next.DueDate = now.Add(m.cfg.LapseDelay)
		return next
	}

	next.Repetitions = state.Repetitions + 1
	switch next.Repetitions {
	case 1:
		next.IntervalDays = firstIntervalDays
	case 2:
		next.IntervalDays = secondIntervalDays
	default:
		ivl := int(math.Round(float64(state.IntervalDays) * next.Ease))
		next.IntervalDays = min(max(ivl, 1), m.cfg.MaximumIntervalDays)
	}
	next.DueDate = now.Add(time.Duration(next.IntervalDays) * 24 * time.Hour)
	return next
}
