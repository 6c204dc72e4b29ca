package qbank

// BloomGroup holds all questions of one variant at one Bloom level.
// The container is generic over the question variant, so each concrete
// per-type sequence is fully typed with no runtime narrowing.
type BloomGroup[Q any] struct {
	BloomTaxonomy BloomLevel `json:"bloom_taxonomy" validate:"required,oneof=remember understand apply analyze evaluate create"`
	Questions     []Q        `json:"questions" validate:"required,min=1,dive"`
}

// TopicQuestions is the complete question bank for one topic: four
// question types, each with exactly 6 Bloom groups in canonical order.
type TopicQuestions struct {
	Topic   string `json:"topic" validate:"required"`
	Content string `json:"content,omitempty"`

	MCQs            []BloomGroup[MCQQuestion]         `json:"MCQs" validate:"required,len=6,dive"`
	FillInTheBlanks []BloomGroup[FillBlankQuestion]   `json:"fill_in_the_blanks" validate:"required,len=6,dive"`
	ShortAnswer     []BloomGroup[ShortAnswerQuestion] `json:"short_answer" validate:"required,len=6,dive"`
	LongAnswer      []BloomGroup[LongAnswerQuestion]  `json:"long_answer" validate:"required,len=6,dive"`
}

// QuestionCount returns the total number of questions across all four
// types and all Bloom levels.
func (t *TopicQuestions) QuestionCount() int {
	n := 0
	for _, g := range t.MCQs {
		n += len(g.Questions)
	}
	for _, g := range t.FillInTheBlanks {
		n += len(g.Questions)
	}
	for _, g := range t.ShortAnswer {
		n += len(g.Questions)
	}
	for _, g := range t.LongAnswer {
		n += len(g.Questions)
	}
	return n
}

// Normalize applies in-place cleanups that structural validation alone
// cannot express, currently the long-answer outline-vs-prose resolution.
func (t *TopicQuestions) Normalize() {
	for gi := range t.LongAnswer {
		for qi := range t.LongAnswer[gi].Questions {
			t.LongAnswer[gi].Questions[qi].Normalize()
		}
	}
}

// ChapterQuestions is the complete question bank for one chapter.
// It is created by the generation stage, read by verification, and
// mutated only by the variation stage (each question's Variations field).
type ChapterQuestions struct {
	ClassName   string           `json:"class_name" validate:"required"`
	SubjectName string           `json:"subject_name" validate:"required"`
	ChapterName string           `json:"chapter_name" validate:"required"`
	TotalTopics int              `json:"total_topics" validate:"required,min=1"`
	Topics      []TopicQuestions `json:"topics" validate:"required,min=1,dive"`
}
