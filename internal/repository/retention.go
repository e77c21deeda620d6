package repository

import "github.com/eslsoft/studyengine/internal/entity"

// RetentionStore holds the retention state of each item for one learner,
// keyed by item ID. Sessions load from it on every grade and write the
// updated state back before returning.
type RetentionStore interface {
	Load(itemID string) (entity.RetentionState, bool)
	Save(itemID string, state entity.RetentionState)
}
