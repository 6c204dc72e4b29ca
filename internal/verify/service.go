// Package verify implements the read-only critique stage: a second
// model pass that classifies the generated questions for duplicates,
// clarity, correctness and Bloom alignment. It never mutates question
// data.
package verify

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/satviksrivastava7-cnx/question-bank-gen/internal/llm"
	"github.com/satviksrivastava7-cnx/question-bank-gen/internal/qbank"
)

// Service is the verification stage.
type Service struct {
	client *llm.Client
	cfg    Config
	log    *zap.SugaredLogger
}

// Config controls the verification stage.
type Config struct {
	// Temperature is kept lower than generation: the critique should be
	// consistent, not creative.
	Temperature float64
}

// DefaultConfig returns the stage defaults.
func DefaultConfig() Config {
	return Config{Temperature: 0.4}
}

// NewService creates a verification service.
func NewService(client *llm.Client, cfg Config, log *zap.SugaredLogger) *Service {
	return &Service{client: client, cfg: cfg, log: log}
}

// VerifyTopic critiques one topic's questions. A failed call yields a
// synthetic worst-case result (quality poor, no duplicates flagged)
// instead of an error, so one bad topic cannot abort the chapter.
func (s *Service) VerifyTopic(ctx context.Context, topic *qbank.TopicQuestions) qbank.TopicVerification {
	ctx = llm.WithPurpose(ctx, "verification")

	questionsJSON, err := json.MarshalIndent(topic, "", "  ")
	if err != nil {
		s.log.Errorw("marshal topic for verification", "topic", topic.Topic, "error", err)
		return worstCase(topic.Topic)
	}

	var result qbank.TopicVerification
	decodeErr := s.client.GenerateStructuredAs(
		ctx,
		systemPrompt,
		buildVerificationPrompt(topic.Topic, string(questionsJSON)),
		qbank.TopicVerificationSchema,
		s.cfg.Temperature,
		func(raw json.RawMessage) error {
			return json.Unmarshal(raw, &result)
		},
	)
	if decodeErr != nil {
		s.log.Warnw("verification call failed, recording worst case", "topic", topic.Topic, "error", decodeErr)
		return worstCase(topic.Topic)
	}

	s.log.Infow("topic verified",
		"topic", topic.Topic,
		"quality", result.OverallQuality,
		"duplicates", result.HasDuplicates,
		"issues", result.IssueCount(),
	)

	return result
}

// VerifyChapter critiques every topic and aggregates the chapter-level
// verdict: pass only if every topic is above fair quality with no
// duplicates.
func (s *Service) VerifyChapter(ctx context.Context, chapter *qbank.ChapterQuestions) *qbank.ChapterVerification {
	s.log.Infow("verifying chapter", "chapter", chapter.ChapterName, "topics", len(chapter.Topics))

	verification := &qbank.ChapterVerification{
		ChapterName: chapter.ChapterName,
		OverallPass: true,
	}

	for i := range chapter.Topics {
		tv := s.VerifyTopic(ctx, &chapter.Topics[i])
		verification.TopicVerifications = append(verification.TopicVerifications, tv)
		verification.TotalIssues += tv.IssueCount()
		if !tv.Acceptable() {
			verification.OverallPass = false
		}
	}

	s.log.Infow("verification complete",
		"chapter", chapter.ChapterName,
		"pass", verification.OverallPass,
		"total_issues", verification.TotalIssues,
	)

	return verification
}

func worstCase(topic string) qbank.TopicVerification {
	return qbank.TopicVerification{
		Topic:          topic,
		OverallQuality: qbank.QualityPoor,
		HasDuplicates:  false,
	}
}
