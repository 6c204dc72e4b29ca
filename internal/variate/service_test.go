package variate

import (
	"context"
	"encoding/json"
	"testing"

	"go.uber.org/zap"

	"github.com/satviksrivastava7-cnx/question-bank-gen/internal/llm"
	"github.com/satviksrivastava7-cnx/question-bank-gen/internal/qbank"
)

func testService(mock *llm.MockProvider) *Service {
	client := llm.NewClient(mock, 3, 8192)
	cfg := DefaultConfig()
	cfg.QuestionDelay = 0
	return NewService(client, cfg, zap.NewNop().Sugar())
}

func fiveVariations() llm.MockResponse {
	return llm.MockResponse{Content: json.RawMessage(`["v1","v2","v3","v4","v5"]`)}
}

func testChapter() *qbank.ChapterQuestions {
	return &qbank.ChapterQuestions{
		ChapterName: "chapter 9",
		TotalTopics: 1,
		Topics: []qbank.TopicQuestions{{
			Topic: "9.1 Solutions",
			MCQs: []qbank.BloomGroup[qbank.MCQQuestion]{{
				BloomTaxonomy: qbank.BloomRemember,
				Questions: []qbank.MCQQuestion{{
					Question:    "Which is a solvent?",
					Options:     []string{"Water", "Salt", "Sand", "Sugar"},
					Answer:      "Water",
					Explanation: "Water dissolves the others.",
				}},
			}},
			FillInTheBlanks: []qbank.BloomGroup[qbank.FillBlankQuestion]{{
				BloomTaxonomy: qbank.BloomRemember,
				Questions: []qbank.FillBlankQuestion{{
					Question: "A _____ dissolves in a solvent.",
					Answer:   "solute",
				}},
			}},
			ShortAnswer: []qbank.BloomGroup[qbank.ShortAnswerQuestion]{{
				BloomTaxonomy: qbank.BloomUnderstand,
				Questions: []qbank.ShortAnswerQuestion{{
					Question:        "What is a solution?",
					ReferenceAnswer: "A homogeneous mixture of solute and solvent.",
				}},
			}},
			LongAnswer: []qbank.BloomGroup[qbank.LongAnswerQuestion]{{
				BloomTaxonomy: qbank.BloomCreate,
				Questions: []qbank.LongAnswerQuestion{{
					Question:        "Design an experiment to separate a solution.",
					ReferencePoints: []string{"choose method", "apply it", "observe results"},
				}},
			}},
		}},
	}
}

func TestAddVariations(t *testing.T) {
	mock := llm.NewMockProvider(
		fiveVariations(), fiveVariations(), fiveVariations(), fiveVariations(),
	)
	svc := testService(mock)
	chapter := testChapter()

	stats, err := svc.AddVariations(context.Background(), chapter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Questions != 4 {
		t.Fatalf("expected 4 questions processed, got %d", stats.Questions)
	}
	if stats.Variations != 20 {
		t.Fatalf("expected 20 variations, got %d", stats.Variations)
	}
	if mock.CallCount() != 4 {
		t.Fatalf("expected 4 calls, got %d", mock.CallCount())
	}

	topic := &chapter.Topics[0]
	for _, vs := range [][]string{
		topic.MCQs[0].Questions[0].Variations,
		topic.FillInTheBlanks[0].Questions[0].Variations,
		topic.ShortAnswer[0].Questions[0].Variations,
		topic.LongAnswer[0].Questions[0].Variations,
	} {
		if len(vs) != 5 {
			t.Fatalf("expected 5 variations, got %d", len(vs))
		}
	}
}

func TestAddVariationsIdempotent(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := testService(mock)

	chapter := testChapter()
	existing := []string{"a", "b", "c", "d", "e"}
	topic := &chapter.Topics[0]
	topic.MCQs[0].Questions[0].Variations = existing
	topic.FillInTheBlanks[0].Questions[0].Variations = existing
	topic.ShortAnswer[0].Questions[0].Variations = existing
	topic.LongAnswer[0].Questions[0].Variations = existing

	stats, err := svc.AddVariations(context.Background(), chapter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Questions != 0 {
		t.Fatalf("expected 0 questions processed, got %d", stats.Questions)
	}
	if mock.CallCount() != 0 {
		t.Fatalf("expected 0 calls, got %d", mock.CallCount())
	}
}

func TestAddVariationsPadsShortfall(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`["a","b","c"]`)},
		fiveVariations(), fiveVariations(), fiveVariations(),
	)
	svc := testService(mock)
	chapter := testChapter()

	if _, err := svc.AddVariations(context.Background(), chapter); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := chapter.Topics[0].MCQs[0].Questions[0].Variations
	want := []string{"a", "b", "c", "a", "a"}
	if len(got) != 5 {
		t.Fatalf("expected 5 variations, got %d", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("variation %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAddVariationsTruncatesExtras(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`["a","b","c","d","e","f","g"]`)},
		fiveVariations(), fiveVariations(), fiveVariations(),
	)
	svc := testService(mock)
	chapter := testChapter()

	if _, err := svc.AddVariations(context.Background(), chapter); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := chapter.Topics[0].MCQs[0].Questions[0].Variations
	if len(got) != 5 || got[4] != "e" {
		t.Fatalf("expected first 5 kept, got %v", got)
	}
}

func TestAddVariationsAcceptsWrappedObject(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"variations":["a","b","c","d","e"]}`)},
		fiveVariations(), fiveVariations(), fiveVariations(),
	)
	svc := testService(mock)
	chapter := testChapter()

	if _, err := svc.AddVariations(context.Background(), chapter); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := chapter.Topics[0].MCQs[0].Questions[0].Variations
	if len(got) != 5 || got[0] != "a" {
		t.Fatalf("wrapper not unwrapped: %v", got)
	}
}

func TestAddVariationsCallFailureLeavesEmpty(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
		fiveVariations(), fiveVariations(), fiveVariations(),
	)
	svc := testService(mock)
	chapter := testChapter()

	stats, err := svc.AddVariations(context.Background(), chapter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := chapter.Topics[0].MCQs[0].Questions[0].Variations; len(got) != 0 {
		t.Fatalf("expected empty variations after failed call, got %v", got)
	}
	// The other three questions still got theirs.
	if got := chapter.Topics[0].FillInTheBlanks[0].Questions[0].Variations; len(got) != 5 {
		t.Fatalf("expected 5 variations, got %d", len(got))
	}
	if stats.Questions != 4 {
		t.Fatalf("expected 4 questions processed, got %d", stats.Questions)
	}
	if stats.Variations != 15 {
		t.Fatalf("expected 15 variations, got %d", stats.Variations)
	}
}
