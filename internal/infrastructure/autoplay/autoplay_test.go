package autoplay

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/eslsoft/studyengine/internal/entity"
)

type fakeSession struct {
	mu     sync.Mutex
	left   int
	grades []entity.Grade
	done   bool
}

func (s *fakeSession) CurrentItem() (entity.LearnableItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return entity.LearnableItem{ID: "x"}, s.left > 0
}

func (s *fakeSession) Mark(g entity.Grade) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.left == 0 {
		s.done = true
		return
	}
	s.grades = append(s.grades, g)
	s.left--
	if s.left == 0 {
		s.done = true
	}
}

func (s *fakeSession) IsSessionDone() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func TestDriverMarksUntilDone(t *testing.T) {
	session := &fakeSession{left: 3}
	d, err := New(session, entity.GradeEasy, 10*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	if !session.done || len(session.grades) != 3 {
		t.Fatalf("expected 3 marks and a finished session, got %v (done=%v)", session.grades, session.done)
	}
	for _, g := range session.grades {
		if g != entity.GradeEasy {
			t.Fatalf("unexpected grade %s", g)
		}
	}
}

func TestDriverStopsOnCancel(t *testing.T) {
	session := &fakeSession{left: 1000}
	d, err := New(session, entity.GradeGood, time.Hour, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := d.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}

func TestDriverSkipsFinishedSession(t *testing.T) {
	session := &fakeSession{done: true}
	d, err := New(session, entity.GradeGood, time.Millisecond, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(session.grades) != 0 {
		t.Fatal("finished session must not be marked")
	}
}

func TestNewValidatesArguments(t *testing.T) {
	if _, err := New(nil, entity.GradeGood, time.Second, nil); !errors.Is(err, entity.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for nil session, got %v", err)
	}
	if _, err := New(&fakeSession{}, entity.GradeGood, 0, nil); !errors.Is(err, entity.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for zero interval, got %v", err)
	}
}
