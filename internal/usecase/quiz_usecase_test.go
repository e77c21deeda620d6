package usecase

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/eslsoft/studyengine/internal/entity"
)

func newTestSynthesizer(seed int64) QuestionSynthesizer {
	return NewQuestionSynthesizer(rand.New(rand.NewSource(seed)), nil)
}

func capitalsPool() []entity.LearnableItem {
	pairs := [][2]string{
		{"France", "Paris"},
		{"Germany", "Berlin"},
		{"Italy", "Rome"},
		{"Spain", "Madrid"},
		{"Portugal", "Lisbon"},
		{"Austria", "Vienna"},
	}
	pool := make([]entity.LearnableItem, len(pairs))
	for i, p := range pairs {
		pool[i] = entity.LearnableItem{ID: fmt.Sprintf("c%d", i), Front: p[0], Back: p[1]}
	}
	return pool
}

func itemsByID(pool []entity.LearnableItem) map[string]entity.LearnableItem {
	out := make(map[string]entity.LearnableItem, len(pool))
	for _, it := range pool {
		out[it.ID] = it
	}
	return out
}

func assertNoDuplicateOptions(t *testing.T, q entity.SynthesizedQuestion) {
	t.Helper()
	seen := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		key := entity.NormalizeAnswer(opt)
		if _, dup := seen[key]; dup {
			t.Fatalf("question %q has duplicate option %q: %v", q.Prompt, opt, q.Options)
		}
		seen[key] = struct{}{}
	}
}

func TestBuildMultipleChoiceKeysCorrectAnswer(t *testing.T) {
	pool := capitalsPool()
	byID := itemsByID(pool)

	for seed := int64(1); seed <= 20; seed++ {
		questions, err := newTestSynthesizer(seed).BuildMultipleChoice(pool, 4)
		if err != nil {
			t.Fatalf("seed %d: BuildMultipleChoice returned error: %v", seed, err)
		}
		if len(questions) != 4 {
			t.Fatalf("seed %d: expected 4 questions, got %d", seed, len(questions))
		}
		seenItems := map[string]bool{}
		for _, q := range questions {
			item, ok := byID[q.ItemID]
			if !ok {
				t.Fatalf("unknown item id %q", q.ItemID)
			}
			if seenItems[q.ItemID] {
				t.Fatalf("seed %d: item %q sampled twice", seed, q.ItemID)
			}
			seenItems[q.ItemID] = true
			if q.Kind != entity.QuestionMultipleChoice || q.Prompt != item.Front {
				t.Fatalf("unexpected question shape: %+v", q)
			}
			if len(q.Options) != 4 {
				t.Fatalf("expected 4 options, got %v", q.Options)
			}
			if q.Options[q.CorrectIndex] != item.Back {
				t.Fatalf("correct index %d points at %q, want %q", q.CorrectIndex, q.Options[q.CorrectIndex], item.Back)
			}
			assertNoDuplicateOptions(t, q)
		}
	}
}

func TestBuildMultipleChoiceSmallPool(t *testing.T) {
	pool := []entity.LearnableItem{
		{ID: "a", Front: "2+2", Back: "4"},
		{ID: "b", Front: "H2O", Back: "water"},
	}
	questions, err := newTestSynthesizer(3).BuildMultipleChoice(pool, 10)
	if err != nil {
		t.Fatalf("BuildMultipleChoice returned error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected one question per item, got %d", len(questions))
	}
	for _, q := range questions {
		if len(q.Options) != 2 {
			t.Fatalf("expected correct answer plus one distractor, got %v", q.Options)
		}
	}
}

func TestBuildMultipleChoiceDeduplicatesDistractors(t *testing.T) {
	pool := []entity.LearnableItem{
		{ID: "a", Front: "2+2", Back: "4"},
		{ID: "b", Front: "8/2", Back: " 4 "},
		{ID: "c", Front: "3+1", Back: "four"},
		{ID: "d", Front: "1+3", Back: "Four"},
	}
	questions, err := newTestSynthesizer(11).BuildMultipleChoice(pool, 0)
	if err != nil {
		t.Fatalf("BuildMultipleChoice returned error: %v", err)
	}
	if len(questions) != len(pool) {
		t.Fatalf("expected %d questions, got %d", len(pool), len(questions))
	}
	for _, q := range questions {
		if len(q.Options) != 2 {
			t.Fatalf("expected two distinct options, got %v", q.Options)
		}
		assertNoDuplicateOptions(t, q)
	}
}

func TestBuildMultipleChoiceInsufficientPool(t *testing.T) {
	cases := map[string][]entity.LearnableItem{
		"empty":       nil,
		"single item": {{ID: "a", Front: "x", Back: "y"}},
		"same answer": {{ID: "a", Front: "x", Back: "Same"}, {ID: "b", Front: "z", Back: " same "}},
	}
	for name, pool := range cases {
		t.Run(name, func(t *testing.T) {
			questions, err := newTestSynthesizer(1).BuildMultipleChoice(pool, 5)
			if !errors.Is(err, entity.ErrInsufficientPoolSize) {
				t.Fatalf("expected ErrInsufficientPoolSize, got %v", err)
			}
			if len(questions) != 0 {
				t.Fatalf("expected no questions, got %d", len(questions))
			}
		})
	}
}

func TestBuildMultipleChoiceDeterministicWithSeed(t *testing.T) {
	pool := capitalsPool()
	first, err := newTestSynthesizer(42).BuildMultipleChoice(pool, 3)
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	second, err := newTestSynthesizer(42).BuildMultipleChoice(pool, 3)
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same seed produced different questions:\n%v\n%v", first, second)
	}
}

func TestBuildMixedTestSequence(t *testing.T) {
	pool := capitalsPool()
	byID := itemsByID(pool)

	questions, err := newTestSynthesizer(5).BuildMixedTest(pool, 3)
	if err != nil {
		t.Fatalf("BuildMixedTest returned error: %v", err)
	}
	if len(questions) != 9 {
		t.Fatalf("expected three questions per item, got %d", len(questions))
	}

	kinds := []entity.QuestionKind{entity.QuestionMultipleChoice, entity.QuestionTrueFalse, entity.QuestionShortAnswer}
	for i, q := range questions {
		if q.Kind != kinds[i%3] {
			t.Fatalf("question %d: kind %s, want %s", i, q.Kind, kinds[i%3])
		}
		if i%3 != 0 && q.ItemID != questions[i-i%3].ItemID {
			t.Fatalf("question %d belongs to a different item than its group", i)
		}
		item := byID[q.ItemID]
		switch q.Kind {
		case entity.QuestionMultipleChoice:
			if q.Options[q.CorrectIndex] != item.Back {
				t.Fatalf("multiple choice keyed to %q, want %q", q.Answer(), item.Back)
			}
			assertNoDuplicateOptions(t, q)
		case entity.QuestionTrueFalse:
			if !reflect.DeepEqual(q.Options, []string{entity.OptionTrue, entity.OptionFalse}) {
				t.Fatalf("unexpected true/false options %v", q.Options)
			}
			shownCorrect := q.Statement == item.Back
			if shownCorrect != (q.CorrectIndex == 0) {
				t.Fatalf("true/false key mismatch: statement %q, back %q, index %d", q.Statement, item.Back, q.CorrectIndex)
			}
		case entity.QuestionShortAnswer:
			if !reflect.DeepEqual(q.Options, []string{item.Back}) || q.CorrectIndex != 0 {
				t.Fatalf("short answer should only carry the expected answer, got %+v", q)
			}
		}
	}
}

func TestBuildMixedTestTrueFalseUsesBothBranches(t *testing.T) {
	pool := capitalsPool()
	var shownTrue, shownFalse int
	for seed := int64(1); seed <= 30; seed++ {
		questions, err := newTestSynthesizer(seed).BuildMixedTest(pool, 0)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		for _, q := range questions {
			if q.Kind != entity.QuestionTrueFalse {
				continue
			}
			if q.CorrectIndex == 0 {
				shownTrue++
			} else {
				shownFalse++
			}
		}
	}
	if shownTrue == 0 || shownFalse == 0 {
		t.Fatalf("expected both true and false statements, got %d/%d", shownTrue, shownFalse)
	}
}

func TestBuildMixedTestSkipsKindsWithoutDistractors(t *testing.T) {
	pool := []entity.LearnableItem{{ID: "solo", Front: "capital of France", Back: "Paris"}}
	for seed := int64(1); seed <= 10; seed++ {
		questions, err := newTestSynthesizer(seed).BuildMixedTest(pool, 1)
		if err != nil {
			t.Fatalf("BuildMixedTest returned error: %v", err)
		}
		if len(questions) == 0 || questions[len(questions)-1].Kind != entity.QuestionShortAnswer {
			t.Fatalf("expected the short answer question to survive, got %+v", questions)
		}
		for _, q := range questions {
			if q.Kind == entity.QuestionMultipleChoice {
				t.Fatalf("multiple choice built without distractors: %+v", q)
			}
			if q.Kind == entity.QuestionTrueFalse && q.CorrectIndex != 0 {
				t.Fatalf("false statement built without distractors: %+v", q)
			}
		}
	}
}

func TestBuildMixedTestEmptyPool(t *testing.T) {
	_, err := newTestSynthesizer(1).BuildMixedTest(nil, 3)
	if !errors.Is(err, entity.ErrInsufficientPoolSize) {
		t.Fatalf("expected ErrInsufficientPoolSize, got %v", err)
	}
}

func TestSynthesizerGrade(t *testing.T) {
	s := newTestSynthesizer(1)
	mc := entity.SynthesizedQuestion{
		Kind:         entity.QuestionMultipleChoice,
		Options:      []string{"Berlin", "Paris", "Rome"},
		CorrectIndex: 1,
	}
	if !s.Grade(mc, " paris") {
		t.Fatal("correct option rejected")
	}
	if s.Grade(mc, "Rome") {
		t.Fatal("wrong option accepted")
	}
	if !s.Grade(mc, "2") || s.Grade(mc, "1") || s.Grade(mc, "9") {
		t.Fatal("option numbers graded incorrectly")
	}

	tf := entity.SynthesizedQuestion{
		Kind:         entity.QuestionTrueFalse,
		Options:      []string{entity.OptionTrue, entity.OptionFalse},
		CorrectIndex: 1,
	}
	if !s.Grade(tf, "false") || s.Grade(tf, "true") || !s.Grade(tf, "2") {
		t.Fatal("true/false graded incorrectly")
	}

	sa := entity.SynthesizedQuestion{Kind: entity.QuestionShortAnswer, Options: []string{"water"}}
	if !s.Grade(sa, "Water ") || s.Grade(sa, "wter") || s.Grade(sa, "1") {
		t.Fatal("short answer must use exact match")
	}

	if s.Grade(entity.SynthesizedQuestion{CorrectIndex: 3}, "") {
		t.Fatal("malformed question must never grade as correct")
	}
}
