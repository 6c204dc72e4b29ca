package qbank

import "strings"

// QuestionKind is the closed set of question variants. Every consumption
// site (normalization, variation prompts, persistence) switches
// exhaustively over these values, so adding a fifth kind is a
// compile-surfaced change.
type QuestionKind string

const (
	KindMCQ         QuestionKind = "mcq"
	KindFillBlank   QuestionKind = "fill_blank"
	KindShortAnswer QuestionKind = "short_answer"
	KindLongAnswer  QuestionKind = "long_answer"
)

// DisplayName returns the operator-facing label for the kind,
// matching the labels used in prompts and progress output.
func (k QuestionKind) DisplayName() string {
	switch k {
	case KindMCQ:
		return "MCQ"
	case KindFillBlank:
		return "Fill in the Blank"
	case KindShortAnswer:
		return "Short Answer"
	case KindLongAnswer:
		return "Long Answer"
	}
	return string(k)
}

// BlankMarker is the placeholder fill-in-the-blank questions must contain.
const BlankMarker = "_____"

// MCQQuestion is a multiple choice question with exactly 4 options.
type MCQQuestion struct {
	Question    string   `json:"question" validate:"required"`
	Options     []string `json:"options" validate:"required,len=4,unique"`
	Answer      string   `json:"answer" validate:"required"`
	Explanation string   `json:"explanation" validate:"required"`
	Variations  []string `json:"variations"`
}

// FillBlankQuestion is a fill-in-the-blank question. The answer is
// conventionally 1-3 words; only the blank marker is enforced.
type FillBlankQuestion struct {
	Question   string   `json:"question" validate:"required"`
	Answer     string   `json:"answer" validate:"required"`
	Variations []string `json:"variations"`
}

// ShortAnswerQuestion expects a 2-4 sentence response.
type ShortAnswerQuestion struct {
	Question        string   `json:"question" validate:"required"`
	ReferenceAnswer string   `json:"reference_answer" validate:"required"`
	Variations      []string `json:"variations"`
}

// LongAnswerQuestion expects a 5-8 sentence response. It carries either
// a 3-6 item reference outline or a legacy prose reference answer,
// never both.
type LongAnswerQuestion struct {
	Question        string   `json:"question" validate:"required"`
	ReferencePoints []string `json:"reference_points,omitempty"`
	ReferenceAnswer string   `json:"reference_answer,omitempty"`
	Variations      []string `json:"variations"`
}

// Normalize resolves the outline-vs-prose duality: when reference points
// are present the legacy prose answer is cleared.
func (q *LongAnswerQuestion) Normalize() {
	for i, p := range q.ReferencePoints {
		q.ReferencePoints[i] = strings.TrimSpace(p)
	}
	if len(q.ReferencePoints) > 0 {
		q.ReferenceAnswer = ""
	}
}
