package qbank

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports a broken data-model invariant. During
// generation these are treated as content failures and consume the
// call's retry budget.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterStructValidation(mcqStructLevel, MCQQuestion{})
	v.RegisterStructValidation(fillBlankStructLevel, FillBlankQuestion{})
	v.RegisterStructValidation(longAnswerStructLevel, LongAnswerQuestion{})

	return v
}

// mcqStructLevel enforces the cross-field MCQ invariant: the answer must
// be an exact string match of one of the 4 options.
func mcqStructLevel(sl validator.StructLevel) {
	q := sl.Current().Interface().(MCQQuestion)
	for _, opt := range q.Options {
		if q.Answer == opt {
			return
		}
	}
	sl.ReportError(q.Answer, "Answer", "answer", "mcq_answer_in_options", "")
}

func fillBlankStructLevel(sl validator.StructLevel) {
	q := sl.Current().Interface().(FillBlankQuestion)
	if !strings.Contains(q.Question, BlankMarker) {
		sl.ReportError(q.Question, "Question", "question", "fill_blank_marker", "")
	}
}

// longAnswerStructLevel enforces reference_points XOR reference_answer:
// at least one non-empty, points count in [3,6] when present, and no
// prose answer alongside an outline.
func longAnswerStructLevel(sl validator.StructLevel) {
	q := sl.Current().Interface().(LongAnswerQuestion)

	if len(q.ReferencePoints) == 0 && strings.TrimSpace(q.ReferenceAnswer) == "" {
		sl.ReportError(q.ReferencePoints, "ReferencePoints", "reference_points", "long_answer_reference", "")
		return
	}
	if n := len(q.ReferencePoints); n > 0 {
		if n < 3 || n > 6 {
			sl.ReportError(q.ReferencePoints, "ReferencePoints", "reference_points", "reference_points_count", "")
		}
		if strings.TrimSpace(q.ReferenceAnswer) != "" {
			sl.ReportError(q.ReferenceAnswer, "ReferenceAnswer", "reference_answer", "long_answer_exclusive", "")
		}
	}
}

// Validate checks all structural and cross-field invariants of a topic,
// including the fixed Bloom ordering of each type sequence.
func (t *TopicQuestions) Validate() error {
	if err := validate.Struct(t); err != nil {
		return wrapValidatorErr(err)
	}
	if err := checkBloomOrder("MCQs", levels(t.MCQs)); err != nil {
		return err
	}
	if err := checkBloomOrder("fill_in_the_blanks", levels(t.FillInTheBlanks)); err != nil {
		return err
	}
	if err := checkBloomOrder("short_answer", levels(t.ShortAnswer)); err != nil {
		return err
	}
	if err := checkBloomOrder("long_answer", levels(t.LongAnswer)); err != nil {
		return err
	}
	return nil
}

// Validate checks the chapter container and every topic within it.
func (c *ChapterQuestions) Validate() error {
	if err := validate.Struct(c); err != nil {
		return wrapValidatorErr(err)
	}
	if c.TotalTopics != len(c.Topics) {
		return &ValidationError{
			Field: "total_topics",
			Msg:   fmt.Sprintf("declared %d but chapter has %d topics", c.TotalTopics, len(c.Topics)),
		}
	}
	for i := range c.Topics {
		if err := c.Topics[i].Validate(); err != nil {
			return fmt.Errorf("topic %q: %w", c.Topics[i].Topic, err)
		}
	}
	return nil
}

// ValidateGroups checks one type's full group sequence: exactly 6 groups
// in canonical Bloom order, each non-empty, with every question passing
// its structural and cross-field invariants. Generation runs this inside
// the call's retry loop so a broken invariant triggers a fresh call.
func ValidateGroups[Q any](field string, groups []BloomGroup[Q]) error {
	if err := checkBloomOrder(field, levels(groups)); err != nil {
		return err
	}
	for _, g := range groups {
		if len(g.Questions) == 0 {
			return &ValidationError{
				Field: field,
				Msg:   fmt.Sprintf("Bloom group %q has no questions", g.BloomTaxonomy),
			}
		}
		for i := range g.Questions {
			if err := validate.Struct(&g.Questions[i]); err != nil {
				return fmt.Errorf("%s/%s question %d: %w", field, g.BloomTaxonomy, i, wrapValidatorErr(err))
			}
		}
	}
	return nil
}

func levels[Q any](groups []BloomGroup[Q]) []BloomLevel {
	out := make([]BloomLevel, len(groups))
	for i, g := range groups {
		out[i] = g.BloomTaxonomy
	}
	return out
}

func checkBloomOrder(field string, got []BloomLevel) error {
	if len(got) != len(BloomOrder) {
		return &ValidationError{
			Field: field,
			Msg:   fmt.Sprintf("expected %d Bloom groups, got %d", len(BloomOrder), len(got)),
		}
	}
	for i, want := range BloomOrder {
		if got[i] != want {
			return &ValidationError{
				Field: field,
				Msg:   fmt.Sprintf("Bloom group %d is %q, want %q", i, got[i], want),
			}
		}
	}
	return nil
}

func wrapValidatorErr(err error) error {
	var verrs validator.ValidationErrors
	if ok := asValidationErrors(err, &verrs); ok && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{
			Field: fe.Namespace(),
			Msg:   fmt.Sprintf("failed %q constraint", fe.Tag()),
		}
	}
	return err
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = verrs
	}
	return ok
}
