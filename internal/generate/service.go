package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/satviksrivastava7-cnx/question-bank-gen/internal/llm"
	"github.com/satviksrivastava7-cnx/question-bank-gen/internal/qbank"
)

// Service is the generation stage: it produces a complete, validated
// question bank per topic via four structured calls, one per question
// type.
type Service struct {
	client *llm.Client
	cfg    Config
	log    *zap.SugaredLogger
}

// NewService creates a generation service.
func NewService(client *llm.Client, cfg Config, log *zap.SugaredLogger) *Service {
	return &Service{client: client, cfg: cfg, log: log}
}

// TopicInput holds the context for one topic's generation calls.
type TopicInput struct {
	Topic             string
	Content           string
	ClassName         string
	SubjectName       string
	ChapterName       string
	QuestionsPerLevel int
}

// TopicSource pairs a syllabus topic with its content excerpt.
type TopicSource struct {
	Name    string
	Content string
}

// ChapterMeta identifies the chapter being generated.
type ChapterMeta struct {
	ClassName   string
	SubjectName string
	ChapterName string
}

// Result reports the outcome of a chapter-level generation pass.
type Result struct {
	Chapter      *qbank.ChapterQuestions
	FailedTopics []string
}

// GenerateTopic produces a full TopicQuestions for one topic: 4 types ×
// 6 Bloom levels × QuestionsPerLevel questions. Each type is a separate
// structured call so no single response grows past the truncation limit.
func (s *Service) GenerateTopic(ctx context.Context, in TopicInput) (*qbank.TopicQuestions, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	out := &qbank.TopicQuestions{
		Topic:   in.Topic,
		Content: in.Content,
	}

	sections := []struct {
		kind   qbank.QuestionKind
		schema *llm.Schema
		decode func(json.RawMessage) error
	}{
		{qbank.KindMCQ, qbank.MCQSectionSchema, func(raw json.RawMessage) error {
			var sec qbank.MCQSection
			if err := json.Unmarshal(raw, &sec); err != nil {
				return err
			}
			out.MCQs = sec.MCQs
			return qbank.ValidateGroups("MCQs", out.MCQs)
		}},
		{qbank.KindFillBlank, qbank.FillBlankSectionSchema, func(raw json.RawMessage) error {
			var sec qbank.FillBlankSection
			if err := json.Unmarshal(raw, &sec); err != nil {
				return err
			}
			out.FillInTheBlanks = sec.FillInTheBlanks
			return qbank.ValidateGroups("fill_in_the_blanks", out.FillInTheBlanks)
		}},
		{qbank.KindShortAnswer, qbank.ShortAnswerSectionSchema, func(raw json.RawMessage) error {
			var sec qbank.ShortAnswerSection
			if err := json.Unmarshal(raw, &sec); err != nil {
				return err
			}
			out.ShortAnswer = sec.ShortAnswer
			return qbank.ValidateGroups("short_answer", out.ShortAnswer)
		}},
		{qbank.KindLongAnswer, qbank.LongAnswerSectionSchema, func(raw json.RawMessage) error {
			var sec qbank.LongAnswerSection
			if err := json.Unmarshal(raw, &sec); err != nil {
				return err
			}
			out.LongAnswer = sec.LongAnswer
			return qbank.ValidateGroups("long_answer", out.LongAnswer)
		}},
	}

	for _, sec := range sections {
		s.log.Infow("generating section", "topic", in.Topic, "type", sec.kind.DisplayName())
		prompt := buildSectionPrompt(sec.kind, in)
		if err := s.client.GenerateStructuredAs(ctx, systemPrompt, prompt, sec.schema, s.cfg.Temperature, sec.decode); err != nil {
			return nil, fmt.Errorf("generate %s section: %w", sec.kind.DisplayName(), err)
		}
	}

	out.Normalize()
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("topic %q failed validation: %w", in.Topic, err)
	}

	return out, nil
}

// GenerateChapter runs GenerateTopic for every topic, skipping failures.
// It returns an error only when zero topics succeed.
func (s *Service) GenerateChapter(ctx context.Context, meta ChapterMeta, topics []TopicSource) (*Result, error) {
	perLevel := s.cfg.QuestionsPerLevel(len(topics))
	s.log.Infow("generating chapter",
		"chapter", meta.ChapterName,
		"topics", len(topics),
		"questions_per_level", perLevel,
	)

	res := &Result{}
	var generated []qbank.TopicQuestions

	for i, topic := range topics {
		s.log.Infof("[%d/%d] %s", i+1, len(topics), topic.Name)

		tq, err := s.GenerateTopic(ctx, TopicInput{
			Topic:             topic.Name,
			Content:           topic.Content,
			ClassName:         meta.ClassName,
			SubjectName:       meta.SubjectName,
			ChapterName:       meta.ChapterName,
			QuestionsPerLevel: perLevel,
		})
		if err != nil {
			s.log.Warnw("topic generation failed, skipping", "topic", topic.Name, "error", err)
			res.FailedTopics = append(res.FailedTopics, topic.Name)
			continue
		}
		generated = append(generated, *tq)

		if err := sleep(ctx, s.cfg.TopicDelay); err != nil {
			return nil, err
		}
	}

	if len(generated) == 0 {
		return nil, fmt.Errorf("no topics were generated successfully for chapter %q", meta.ChapterName)
	}

	res.Chapter = &qbank.ChapterQuestions{
		ClassName:   meta.ClassName,
		SubjectName: meta.SubjectName,
		ChapterName: meta.ChapterName,
		TotalTopics: len(generated),
		Topics:      generated,
	}

	return res, nil
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
