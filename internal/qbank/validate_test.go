package qbank

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func validMCQ() MCQQuestion {
	return MCQQuestion{
		Question:    "Which planet is closest to the sun?",
		Options:     []string{"Mercury", "Venus", "Earth", "Mars"},
		Answer:      "Mercury",
		Explanation: "Mercury orbits closest to the sun.",
	}
}

func validFillBlank() FillBlankQuestion {
	return FillBlankQuestion{
		Question: "Water boils at _____ degrees Celsius at sea level.",
		Answer:   "100",
	}
}

func validShortAnswer() ShortAnswerQuestion {
	return ShortAnswerQuestion{
		Question:        "Why does ice float on water?",
		ReferenceAnswer: "Ice is less dense than liquid water because of its crystal structure.",
	}
}

func validLongAnswer() LongAnswerQuestion {
	return LongAnswerQuestion{
		Question: "Explain the water cycle.",
		ReferencePoints: []string{
			"Evaporation from surface water",
			"Condensation into clouds",
			"Precipitation back to the surface",
		},
	}
}

func makeGroups[Q any](q Q) []BloomGroup[Q] {
	out := make([]BloomGroup[Q], 0, len(BloomOrder))
	for _, lvl := range BloomOrder {
		out = append(out, BloomGroup[Q]{BloomTaxonomy: lvl, Questions: []Q{q}})
	}
	return out
}

func validTopic() *TopicQuestions {
	return &TopicQuestions{
		Topic:           "9.1 The Solar System",
		Content:         "chapter text",
		MCQs:            makeGroups(validMCQ()),
		FillInTheBlanks: makeGroups(validFillBlank()),
		ShortAnswer:     makeGroups(validShortAnswer()),
		LongAnswer:      makeGroups(validLongAnswer()),
	}
}

func TestTopicQuestionsValid(t *testing.T) {
	topic := validTopic()
	require.NoError(t, topic.Validate())
	require.Equal(t, 24, topic.QuestionCount())
}

func TestMCQAnswerMustMatchOption(t *testing.T) {
	q := validMCQ()
	q.Answer = "Pluto"
	groups := makeGroups(q)

	err := ValidateGroups("MCQs", groups)
	require.Error(t, err)
	require.Contains(t, err.Error(), "mcq_answer_in_options")
}

func TestMCQOptionsMustBeUnique(t *testing.T) {
	q := validMCQ()
	q.Options = []string{"Mercury", "Mercury", "Earth", "Mars"}

	err := ValidateGroups("MCQs", makeGroups(q))
	require.Error(t, err)
}

func TestFillBlankRequiresMarker(t *testing.T) {
	q := validFillBlank()
	q.Question = "Water boils at 100 degrees Celsius."

	err := ValidateGroups("fill_in_the_blanks", makeGroups(q))
	require.Error(t, err)
	require.Contains(t, err.Error(), "fill_blank_marker")
}

func TestLongAnswerReference(t *testing.T) {
	tests := []struct {
		name   string
		points []string
		prose  string
		ok     bool
	}{
		{"outline only", []string{"a", "b", "c"}, "", true},
		{"prose only", nil, "legacy reference answer", true},
		{"neither", nil, "", false},
		{"both", []string{"a", "b", "c"}, "prose too", false},
		{"too few points", []string{"a", "b"}, "", false},
		{"too many points", []string{"a", "b", "c", "d", "e", "f", "g"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := LongAnswerQuestion{
				Question:        "Explain.",
				ReferencePoints: tt.points,
				ReferenceAnswer: tt.prose,
			}
			err := ValidateGroups("long_answer", makeGroups(q))
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestLongAnswerNormalizeClearsProse(t *testing.T) {
	q := LongAnswerQuestion{
		Question:        "Explain.",
		ReferencePoints: []string{" a ", "b", "c"},
		ReferenceAnswer: "stale prose",
	}
	q.Normalize()

	require.Empty(t, q.ReferenceAnswer)
	require.Equal(t, []string{"a", "b", "c"}, q.ReferencePoints)
}

func TestValidateGroupsBloomOrder(t *testing.T) {
	groups := makeGroups(validMCQ())
	groups[0], groups[1] = groups[1], groups[0]

	err := ValidateGroups("MCQs", groups)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestValidateGroupsCount(t *testing.T) {
	groups := makeGroups(validMCQ())[:5]

	err := ValidateGroups("MCQs", groups)
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected 6 Bloom groups")
}

func TestValidateGroupsEmptyQuestions(t *testing.T) {
	groups := makeGroups(validMCQ())
	groups[3].Questions = nil

	err := ValidateGroups("MCQs", groups)
	require.Error(t, err)
}

func TestChapterTotalTopicsMismatch(t *testing.T) {
	ch := &ChapterQuestions{
		ClassName:   "Class 6",
		SubjectName: "Science",
		ChapterName: "chapter 9",
		TotalTopics: 3,
		Topics:      []TopicQuestions{*validTopic()},
	}

	err := ch.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "total_topics")

	ch.TotalTopics = 1
	require.NoError(t, ch.Validate())
}

func TestQuestionKindDisplayName(t *testing.T) {
	for kind, want := range map[QuestionKind]string{
		KindMCQ:         "MCQ",
		KindFillBlank:   "Fill in the Blank",
		KindShortAnswer: "Short Answer",
		KindLongAnswer:  "Long Answer",
	} {
		require.Equal(t, want, kind.DisplayName(), fmt.Sprintf("kind %s", kind))
	}
}
