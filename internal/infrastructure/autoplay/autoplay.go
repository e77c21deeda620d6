// Package autoplay grades a study session on a fixed cadence without learner
// input.
package autoplay

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/studyengine/internal/entity"
)

// Session is the part of a study session the driver needs.
type Session interface {
	CurrentItem() (entity.LearnableItem, bool)
	Mark(grade entity.Grade)
	IsSessionDone() bool
}

// Driver marks the current item of a session every interval until the
// session is done. While running it must be the only caller of Mark.
type Driver struct {
	session  Session
	grade    entity.Grade
	interval time.Duration
	logger   logrus.FieldLogger

	scheduler *gocron.Scheduler
	done      chan struct{}
	once      sync.Once
}

// New creates a driver. interval must be positive.
func New(session Session, grade entity.Grade, interval time.Duration, logger logrus.FieldLogger) (*Driver, error) {
	if session == nil {
		return nil, fmt.Errorf("%w: autoplay needs a session", entity.ErrInvalidConfig)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("%w: autoplay interval must be positive, got %s", entity.ErrInvalidConfig, interval)
	}
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}

	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	s.WaitForScheduleAll()

	return &Driver{
		session:   session,
		grade:     grade.Clamp(),
		interval:  interval,
		logger:    logger.WithField("component", "autoplay"),
		scheduler: s,
		done:      make(chan struct{}),
	}, nil
}

// Run blocks until the session is done or ctx is cancelled.
func (d *Driver) Run(ctx context.Context) error {
	if d.session.IsSessionDone() {
		return nil
	}
	if _, err := d.scheduler.Every(d.interval).Do(d.tick); err != nil {
		return fmt.Errorf("schedule autoplay: %w", err)
	}
	d.scheduler.StartAsync()
	defer d.scheduler.Stop()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Driver) tick() {
	select {
	case <-d.done:
		return
	default:
	}

	if item, ok := d.session.CurrentItem(); ok {
		d.logger.WithFields(logrus.Fields{"item_id": item.ID, "grade": d.grade.String()}).Info("autoplay mark")
	}
	d.session.Mark(d.grade)

	if d.session.IsSessionDone() {
		d.once.Do(func() { close(d.done) })
	}
}
