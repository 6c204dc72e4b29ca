// Package variate implements the enrichment stage: every question gains
// exactly five reworded variations testing the same concept at the same
// Bloom level. The stage is idempotent; questions that already carry
// variations are left untouched.
package variate

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/satviksrivastava7-cnx/question-bank-gen/internal/llm"
	"github.com/satviksrivastava7-cnx/question-bank-gen/internal/qbank"
)

// variationCount is the fixed number of variations per question.
const variationCount = 5

// Config tunes the variation stage.
type Config struct {
	// Temperature runs hotter than generation to push for diversity.
	Temperature float64
	// QuestionDelay is the pause between per-question calls.
	QuestionDelay time.Duration
}

// DefaultConfig returns the stage defaults.
func DefaultConfig() Config {
	return Config{
		Temperature:   0.8,
		QuestionDelay: 500 * time.Millisecond,
	}
}

// Service is the variation stage.
type Service struct {
	client *llm.Client
	cfg    Config
	log    *zap.SugaredLogger
}

// NewService creates a variation service.
func NewService(client *llm.Client, cfg Config, log *zap.SugaredLogger) *Service {
	return &Service{client: client, cfg: cfg, log: log}
}

// Stats reports how much work a variation pass did.
type Stats struct {
	Questions  int
	Variations int
}

// AddVariations fills the variation list of every question in the
// chapter in place. A failed call leaves that question's variations
// empty and moves on; only context cancellation aborts the pass.
func (s *Service) AddVariations(ctx context.Context, chapter *qbank.ChapterQuestions) (Stats, error) {
	ctx = llm.WithPurpose(ctx, "variation")

	var stats Stats
	for i := range chapter.Topics {
		topic := &chapter.Topics[i]
		s.log.Infow("generating variations",
			"topic", topic.Topic,
			"progress", i+1,
			"total", len(chapter.Topics))

		for gi := range topic.MCQs {
			g := &topic.MCQs[gi]
			for qi := range g.Questions {
				q := &g.Questions[qi]
				if len(q.Variations) == 0 {
					q.Variations = s.variationsFor(ctx, qbank.KindMCQ, g.BloomTaxonomy, topic.Topic, q.Question, mcqInfo(q))
					stats.Questions++
					stats.Variations += len(q.Variations)
				}
				if err := sleep(ctx, s.cfg.QuestionDelay); err != nil {
					return stats, err
				}
			}
		}

		for gi := range topic.FillInTheBlanks {
			g := &topic.FillInTheBlanks[gi]
			for qi := range g.Questions {
				q := &g.Questions[qi]
				if len(q.Variations) == 0 {
					q.Variations = s.variationsFor(ctx, qbank.KindFillBlank, g.BloomTaxonomy, topic.Topic, q.Question, fillBlankInfo(q))
					stats.Questions++
					stats.Variations += len(q.Variations)
				}
				if err := sleep(ctx, s.cfg.QuestionDelay); err != nil {
					return stats, err
				}
			}
		}

		for gi := range topic.ShortAnswer {
			g := &topic.ShortAnswer[gi]
			for qi := range g.Questions {
				q := &g.Questions[qi]
				if len(q.Variations) == 0 {
					q.Variations = s.variationsFor(ctx, qbank.KindShortAnswer, g.BloomTaxonomy, topic.Topic, q.Question, shortAnswerInfo(q))
					stats.Questions++
					stats.Variations += len(q.Variations)
				}
				if err := sleep(ctx, s.cfg.QuestionDelay); err != nil {
					return stats, err
				}
			}
		}

		for gi := range topic.LongAnswer {
			g := &topic.LongAnswer[gi]
			for qi := range g.Questions {
				q := &g.Questions[qi]
				if len(q.Variations) == 0 {
					q.Variations = s.variationsFor(ctx, qbank.KindLongAnswer, g.BloomTaxonomy, topic.Topic, q.Question, longAnswerInfo(q))
					stats.Questions++
					stats.Variations += len(q.Variations)
				}
				if err := sleep(ctx, s.cfg.QuestionDelay); err != nil {
					return stats, err
				}
			}
		}
	}

	s.log.Infow("variation pass complete",
		"questions", stats.Questions,
		"variations", stats.Variations)
	return stats, nil
}

// variationsFor produces exactly variationCount strings for one
// question, or nil when the model call fails outright.
func (s *Service) variationsFor(ctx context.Context, kind qbank.QuestionKind, level qbank.BloomLevel, topic, questionText, info string) []string {
	user := buildVariationPrompt(kind, level, topic, questionText, info)

	resp, err := s.client.GenerateJSON(ctx, systemPrompt, user, s.cfg.Temperature)
	if err != nil {
		s.log.Warnw("variation call failed, leaving question without variations",
			"kind", kind,
			"topic", topic,
			"error", err)
		return nil
	}

	// Accept either a bare array or a {"variations": [...]} wrapper.
	raw := resp
	if obj, ok := resp.(map[string]any); ok {
		if v, present := obj["variations"]; present {
			raw = v
		}
	}
	items, ok := raw.([]any)
	if !ok {
		items = []any{raw}
	}

	var variations []string
	for _, item := range items {
		if v := Normalize(item, kind); v != "" {
			variations = append(variations, v)
		}
	}

	if len(variations) < variationCount {
		s.log.Warnw("short variation list, padding with duplicates",
			"kind", kind,
			"topic", topic,
			"got", len(variations),
			"want", variationCount)
		for len(variations) < variationCount {
			if len(variations) > 0 {
				variations = append(variations, variations[0])
			} else {
				variations = append(variations, questionText)
			}
		}
	}
	return variations[:variationCount]
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
