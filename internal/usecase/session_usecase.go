package usecase

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/studyengine/internal/entity"
	"github.com/eslsoft/studyengine/internal/repository"
)

// RequeuePolicy decides whether a just-graded item re-enters the session
// queue and at which position. pending is the queue length after the item
// was popped; the returned position is clamped to [0, pending].
type RequeuePolicy interface {
	Name() string
	Requeue(grade entity.Grade, pending int) (int, bool)
}

// TraditionalPolicy re-inserts weak recalls a fixed distance behind the head.
type TraditionalPolicy struct {
	AgainOffset int
	HardOffset  int
}

// DefaultTraditionalPolicy resurfaces "again" within the next three cards and
// "hard" a little later.
func DefaultTraditionalPolicy() TraditionalPolicy {
	return TraditionalPolicy{AgainOffset: 2, HardOffset: 5}
}

func (TraditionalPolicy) Name() string { return "traditional" }

func (p TraditionalPolicy) Requeue(grade entity.Grade, pending int) (int, bool) {
	switch grade {
	case entity.GradeAgain:
		return min(p.AgainOffset, pending), true
	case entity.GradeHard:
		return min(p.HardOffset, pending), true
	default:
		return 0, false
	}
}

// AdaptiveLearnPolicy sends weak recalls to the back of the queue.
type AdaptiveLearnPolicy struct{}

func (AdaptiveLearnPolicy) Name() string { return "adaptive" }

func (AdaptiveLearnPolicy) Requeue(grade entity.Grade, pending int) (int, bool) {
	if grade == entity.GradeAgain || grade == entity.GradeHard {
		return pending, true
	}
	return 0, false
}

// SessionDeps are the collaborators shared by both session modes.
type SessionDeps struct {
	Model  RetentionModel
	Store  repository.RetentionStore
	Clock  func() time.Time   // nil → time.Now
	Logger logrus.FieldLogger // nil → discarded
}

// SessionQueue schedules the items of one study session. It is owned by a
// single session and must not be shared across goroutines.
type SessionQueue struct {
	items    []entity.LearnableItem
	queue    []int
	reviewed []int
	done     bool

	policy RequeuePolicy
	model  RetentionModel
	store  repository.RetentionStore
	clock  func() time.Time
	logger logrus.FieldLogger
}

// NewTraditionalSession starts a session over items in their given order.
func NewTraditionalSession(items []entity.LearnableItem, deps SessionDeps, policy TraditionalPolicy) (*SessionQueue, error) {
	if policy.AgainOffset < 0 || policy.HardOffset < 0 {
		return nil, fmt.Errorf("%w: requeue offsets must not be negative (again=%d, hard=%d)",
			entity.ErrInvalidConfig, policy.AgainOffset, policy.HardOffset)
	}
	return newSessionQueue(items, deps, policy, nil)
}

// NewAdaptiveSession starts a session over items shuffled with rng.
func NewAdaptiveSession(items []entity.LearnableItem, deps SessionDeps, rng *rand.Rand) (*SessionQueue, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: adaptive session requires a random source", entity.ErrInvalidConfig)
	}
	return newSessionQueue(items, deps, AdaptiveLearnPolicy{}, rng)
}

func newSessionQueue(items []entity.LearnableItem, deps SessionDeps, policy RequeuePolicy, rng *rand.Rand) (*SessionQueue, error) {
	if deps.Model == nil {
		return nil, fmt.Errorf("%w: retention model is required", entity.ErrInvalidConfig)
	}
	if deps.Store == nil {
		return nil, fmt.Errorf("%w: retention store is required", entity.ErrInvalidConfig)
	}
	if err := checkItemIDs(items); err != nil {
		return nil, err
	}

	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = discardLogger()
	}

	queue := make([]int, len(items))
	for i := range queue {
		queue[i] = i
	}
	if rng != nil {
		rng.Shuffle(len(queue), func(i, j int) {
			queue[i], queue[j] = queue[j], queue[i]
		})
	}

	return &SessionQueue{
		items:  slices.Clone(items),
		queue:  queue,
		policy: policy,
		model:  deps.Model,
		store:  deps.Store,
		clock:  clock,
		logger: logger.WithField("policy", policy.Name()),
	}, nil
}

// CurrentItem returns the item at the head of the queue.
func (s *SessionQueue) CurrentItem() (entity.LearnableItem, bool) {
	if len(s.queue) == 0 {
		return entity.LearnableItem{}, false
	}
	return s.items[s.queue[0]], true
}

// Mark grades the current item, updates its retention state and re-inserts
// it according to the session policy. On an empty queue it only flags the
// session as done.
func (s *SessionQueue) Mark(grade entity.Grade) {
	if len(s.queue) == 0 {
		s.done = true
		return
	}

	grade = grade.Clamp()
	idx := s.queue[0]
	s.queue = s.queue[1:]
	item := s.items[idx]

	now := s.clock()
	state, ok := s.store.Load(item.ID)
	if !ok {
		state = s.model.NewState(now)
	}
	next := s.model.Update(state, grade, now)
	s.store.Save(item.ID, next)
	s.reviewed = append(s.reviewed, idx)

	log := s.logger.WithFields(logrus.Fields{
		"item_id":  item.ID,
		"grade":    grade.String(),
		"interval": next.IntervalDays,
	})
	if pos, requeue := s.policy.Requeue(grade, len(s.queue)); requeue {
		pos = min(max(pos, 0), len(s.queue))
		s.queue = slices.Insert(s.queue, pos, idx)
		log = log.WithField("requeue_at", pos)
	}
	log.WithField("remaining", len(s.queue)).Debug("item graded")

	if len(s.queue) == 0 {
		s.done = true
	}
}

// IsSessionDone reports whether the queue has been exhausted by Mark.
func (s *SessionQueue) IsSessionDone() bool {
	return s.done
}

// Policy names the requeue policy in use.
func (s *SessionQueue) Policy() string {
	return s.policy.Name()
}

// Items returns the session's item snapshot; queue indices refer into it.
func (s *SessionQueue) Items() []entity.LearnableItem {
	return slices.Clone(s.items)
}

// Pending returns the item indices still to review, head first.
func (s *SessionQueue) Pending() []int {
	return slices.Clone(s.queue)
}

// Remaining is the number of queued reviews, re-insertions included.
func (s *SessionQueue) Remaining() int {
	return len(s.queue)
}

// Reviewed returns the indices graded so far, in grading order.
func (s *SessionQueue) Reviewed() []int {
	return slices.Clone(s.reviewed)
}

// State returns the stored retention state of the item at idx.
func (s *SessionQueue) State(idx int) (entity.RetentionState, bool) {
	if idx < 0 || idx >= len(s.items) {
		return entity.RetentionState{}, false
	}
	return s.store.Load(s.items[idx].ID)
}

// States returns the retention states of the items graded so far, keyed by
// item id.
func (s *SessionQueue) States() map[string]entity.RetentionState {
	out := make(map[string]entity.RetentionState, len(s.reviewed))
	for _, idx := range s.reviewed {
		id := s.items[idx].ID
		if st, ok := s.store.Load(id); ok {
			out[id] = st
		}
	}
	return out
}

var errEmptyItemID = errors.New("item id is empty")

func checkItemIDs(items []entity.LearnableItem) error {
	seen := make(map[string]int, len(items))
	for i, it := range items {
		if it.ID == "" {
			return fmt.Errorf("%w: item %d: %w", entity.ErrInvalidConfig, i, errEmptyItemID)
		}
		if first, dup := seen[it.ID]; dup {
			return fmt.Errorf("%w: items %d and %d share id %q", entity.ErrInvalidConfig, first, i, it.ID)
		}
		seen[it.ID] = i
	}
	return nil
}
