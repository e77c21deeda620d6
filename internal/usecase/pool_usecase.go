package usecase

import (
	"fmt"
	"strings"

	"github.com/eslsoft/studyengine/internal/entity"
	"github.com/eslsoft/studyengine/pkg/filterexpr"
)

// itemSchema exposes item fields to pool filters and order_by.
var itemSchema = filterexpr.ResourceSchema[entity.LearnableItem]{
	Filter: map[string]filterexpr.FilterField[entity.LearnableItem]{
		"front":   {Kind: filterexpr.KindString, Value: func(it entity.LearnableItem) any { return it.Front }},
		"back":    {Kind: filterexpr.KindString, Value: func(it entity.LearnableItem) any { return it.Back }},
		"media":   {Kind: filterexpr.KindString, Value: func(it entity.LearnableItem) any { return it.Media }},
		"tags":    {Kind: filterexpr.KindStringList, Value: func(it entity.LearnableItem) any { return it.Tags }},
		"starred": {Kind: filterexpr.KindBool, Value: func(it entity.LearnableItem) any { return it.Starred }},
	},
	Order: filterexpr.OrderSchema[entity.LearnableItem]{
		Fields: map[string]filterexpr.OrderField[entity.LearnableItem]{
			"front":   {Compare: func(a, b entity.LearnableItem) int { return compareFolded(a.Front, b.Front) }},
			"back":    {Compare: func(a, b entity.LearnableItem) int { return compareFolded(a.Back, b.Back) }},
			"starred": {Compare: compareStarred},
		},
	},
}

// PoolSelector narrows and orders an item pool before a session or test.
type PoolSelector interface {
	Select(pool []entity.LearnableItem) ([]entity.LearnableItem, error)
}

// NewPoolSelector compiles a CEL filter such as `starred && "verbs" in tags`
// and an order_by clause such as `front desc, back`. Blank inputs keep every
// item in its original order.
func NewPoolSelector(filter, orderBy string) (PoolSelector, error) {
	q, err := filterexpr.Bind(filter, orderBy, itemSchema)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrInvalidConfig, err)
	}
	return &poolSelector{query: q}, nil
}

type poolSelector struct {
	query *filterexpr.Query[entity.LearnableItem]
}

func (s *poolSelector) Select(pool []entity.LearnableItem) ([]entity.LearnableItem, error) {
	return s.query.Apply(pool)
}

func compareFolded(a, b string) int {
	return strings.Compare(entity.NormalizeAnswer(a), entity.NormalizeAnswer(b))
}

// Starred items sort first in ascending order.
func compareStarred(a, b entity.LearnableItem) int {
	switch {
	case a.Starred == b.Starred:
		return 0
	case a.Starred:
		return -1
	default:
		return 1
	}
}
