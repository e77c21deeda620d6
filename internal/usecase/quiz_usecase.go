package usecase

import (
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/studyengine/internal/entity"
)

const maxDistractors = 3

// QuestionSynthesizer builds test questions from a pool of learnable items.
type QuestionSynthesizer interface {
	BuildMultipleChoice(pool []entity.LearnableItem, count int) ([]entity.SynthesizedQuestion, error)
	BuildMixedTest(pool []entity.LearnableItem, itemCount int) ([]entity.SynthesizedQuestion, error)
	Grade(question entity.SynthesizedQuestion, response string) bool
}

// NewQuestionSynthesizer binds the synthesizer to rng; every shuffle and
// sample draws from it, so a seeded source yields reproducible tests.
func NewQuestionSynthesizer(rng *rand.Rand, logger logrus.FieldLogger) QuestionSynthesizer {
	if logger == nil {
		logger = discardLogger()
	}
	return &questionSynthesizer{rng: rng, logger: logger}
}

type questionSynthesizer struct {
	rng    *rand.Rand
	logger logrus.FieldLogger
}

// BuildMultipleChoice samples up to count items (all items when count is not
// positive or exceeds the pool) and emits one question per item that has at
// least one distractor. The result may be shorter than requested.
func (s *questionSynthesizer) BuildMultipleChoice(pool []entity.LearnableItem, count int) ([]entity.SynthesizedQuestion, error) {
	if err := checkDistinctAnswers(pool); err != nil {
		return nil, err
	}

	picked := s.sample(pool, count)
	questions := make([]entity.SynthesizedQuestion, 0, len(picked))
	for _, idx := range picked {
		if q, ok := s.multipleChoice(pool, idx); ok {
			questions = append(questions, q)
		}
	}
	return questions, nil
}

// BuildMixedTest emits, per sampled item, a multiple-choice, a true/false and
// a short-answer question in that order. Kinds that need distractors are
// skipped when the pool cannot provide any.
func (s *questionSynthesizer) BuildMixedTest(pool []entity.LearnableItem, itemCount int) ([]entity.SynthesizedQuestion, error) {
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: empty pool", entity.ErrInsufficientPoolSize)
	}

	picked := s.sample(pool, itemCount)
	questions := make([]entity.SynthesizedQuestion, 0, 3*len(picked))
	for _, idx := range picked {
		if q, ok := s.multipleChoice(pool, idx); ok {
			questions = append(questions, q)
		}
		if q, ok := s.trueFalse(pool, idx); ok {
			questions = append(questions, q)
		}
		questions = append(questions, shortAnswer(pool[idx]))
	}
	return questions, nil
}

// Grade judges response against the keyed option with exact match. For
// multiple choice and true/false a 1-based option number is also accepted
// when the response does not spell out any option.
func (s *questionSynthesizer) Grade(question entity.SynthesizedQuestion, response string) bool {
	answer := question.Answer()
	if answer == "" {
		return false
	}
	if IsCorrectExact(response, answer) {
		return true
	}
	if question.Kind == entity.QuestionShortAnswer {
		return false
	}
	if lo.ContainsBy(question.Options, func(opt string) bool { return IsCorrectExact(response, opt) }) {
		return false
	}
	n, err := strconv.Atoi(strings.TrimSpace(response))
	return err == nil && n-1 == question.CorrectIndex
}

func (s *questionSynthesizer) sample(pool []entity.LearnableItem, count int) []int {
	perm := s.rng.Perm(len(pool))
	if count <= 0 || count >= len(perm) {
		return perm
	}
	return perm[:count]
}

func (s *questionSynthesizer) multipleChoice(pool []entity.LearnableItem, idx int) (entity.SynthesizedQuestion, bool) {
	item := pool[idx]
	log := s.logger.WithField("item_id", item.ID)

	distractors := s.distractors(pool, idx)
	if len(distractors) == 0 {
		log.Debug("skipping multiple choice: no distractors")
		return entity.SynthesizedQuestion{}, false
	}
	if len(distractors) > maxDistractors {
		distractors = distractors[:maxDistractors]
	}

	options := append([]string{item.Back}, distractors...)
	s.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	correct := lo.IndexOf(options, item.Back)
	if correct < 0 {
		log.Warn("skipping multiple choice: correct answer lost after shuffle")
		return entity.SynthesizedQuestion{}, false
	}

	return entity.SynthesizedQuestion{
		Kind:         entity.QuestionMultipleChoice,
		ItemID:       item.ID,
		Prompt:       item.Front,
		Options:      options,
		CorrectIndex: correct,
	}, true
}

func (s *questionSynthesizer) trueFalse(pool []entity.LearnableItem, idx int) (entity.SynthesizedQuestion, bool) {
	item := pool[idx]
	q := entity.SynthesizedQuestion{
		Kind:      entity.QuestionTrueFalse,
		ItemID:    item.ID,
		Prompt:    item.Front,
		Statement: item.Back,
		Options:   []string{entity.OptionTrue, entity.OptionFalse},
	}

	// Draw the coin first so the sequence of random calls does not depend on
	// the pool contents.
	showCorrect := s.rng.Float64() < 0.5
	if showCorrect {
		return q, true
	}

	distractors := s.distractors(pool, idx)
	if len(distractors) == 0 {
		s.logger.WithField("item_id", item.ID).Debug("skipping true/false: no distractors")
		return entity.SynthesizedQuestion{}, false
	}
	q.Statement = distractors[0]
	q.CorrectIndex = 1
	return q, true
}

func shortAnswer(item entity.LearnableItem) entity.SynthesizedQuestion {
	return entity.SynthesizedQuestion{
		Kind:    entity.QuestionShortAnswer,
		ItemID:  item.ID,
		Prompt:  item.Front,
		Options: []string{item.Back},
	}
}

// distractors returns the shuffled, de-duplicated back faces of every other
// item whose answer differs from pool[idx] under exact match.
func (s *questionSynthesizer) distractors(pool []entity.LearnableItem, idx int) []string {
	correct := entity.NormalizeAnswer(pool[idx].Back)
	candidates := lo.FilterMap(pool, func(other entity.LearnableItem, i int) (string, bool) {
		key := entity.NormalizeAnswer(other.Back)
		return other.Back, i != idx && key != "" && key != correct
	})
	candidates = lo.UniqBy(candidates, entity.NormalizeAnswer)
	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	return candidates
}

func checkDistinctAnswers(pool []entity.LearnableItem) error {
	backs := lo.Uniq(lo.FilterMap(pool, func(it entity.LearnableItem, _ int) (string, bool) {
		key := entity.NormalizeAnswer(it.Back)
		return key, key != ""
	}))
	if len(backs) < 2 {
		return fmt.Errorf("%w: %d distinct answers, need at least 2", entity.ErrInsufficientPoolSize, len(backs))
	}
	return nil
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
