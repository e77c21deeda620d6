package repository

import (
	"maps"
	"sync"

	"github.com/eslsoft/studyengine/internal/entity"
	"github.com/eslsoft/studyengine/internal/repository"
)

var _ repository.RetentionStore = (*MemoryRetentionStore)(nil)

// MemoryRetentionStore keeps retention states in a map. The persistence
// collaborator seeds it before a session and drains Snapshot afterwards.
type MemoryRetentionStore struct {
	mu     sync.RWMutex
	states map[string]entity.RetentionState
	dirty  map[string]struct{}
}

// NewMemoryRetentionStore copies seed so later writes never alias the caller's map.
func NewMemoryRetentionStore(seed map[string]entity.RetentionState) *MemoryRetentionStore {
	states := make(map[string]entity.RetentionState, len(seed))
	maps.Copy(states, seed)
	return &MemoryRetentionStore{
		states: states,
		dirty:  make(map[string]struct{}),
	}
}

func (s *MemoryRetentionStore) Load(itemID string) (entity.RetentionState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[itemID]
	return state, ok
}

func (s *MemoryRetentionStore) Save(itemID string, state entity.RetentionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[itemID] = state
	s.dirty[itemID] = struct{}{}
}

// Snapshot returns a copy of every known state.
func (s *MemoryRetentionStore) Snapshot() map[string]entity.RetentionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.states)
}

// Changed returns the states written since the store was created or last
// flushed, and clears the change set.
func (s *MemoryRetentionStore) Changed() map[string]entity.RetentionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]entity.RetentionState, len(s.dirty))
	for id := range s.dirty {
		out[id] = s.states[id]
	}
	s.dirty = make(map[string]struct{})
	return out
}
