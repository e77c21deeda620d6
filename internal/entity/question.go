package entity

// QuestionKind identifies the shape of a synthesized question.
type QuestionKind string

const (
	QuestionMultipleChoice QuestionKind = "multiple_choice"
	QuestionTrueFalse      QuestionKind = "true_false"
	QuestionShortAnswer    QuestionKind = "short_answer"
)

// True/false questions always present these two options in this order.
const (
	OptionTrue  = "True"
	OptionFalse = "False"
)

// SynthesizedQuestion is a single test question built from a pool item.
//
// For multiple choice, Options holds the shuffled answers and CorrectIndex
// points at the item's back face. For true/false, Statement is the back face
// shown to the learner and Options is {OptionTrue, OptionFalse}. For short
// answer, Options holds only the expected answer.
type SynthesizedQuestion struct {
	Kind         QuestionKind
	ItemID       string
	Prompt       string
	Statement    string
	Options      []string
	CorrectIndex int
}

// Answer returns the option text keyed as correct.
func (q SynthesizedQuestion) Answer() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}
