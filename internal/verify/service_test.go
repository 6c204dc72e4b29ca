package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/satviksrivastava7-cnx/question-bank-gen/internal/llm"
	"github.com/satviksrivastava7-cnx/question-bank-gen/internal/qbank"
)

func testService(mock *llm.MockProvider) *Service {
	client := llm.NewClient(mock, 3, 8192)
	return NewService(client, DefaultConfig(), zap.NewNop().Sugar())
}

func verificationJSON(topic, quality string, hasDuplicates bool, issues int) llm.MockResponse {
	issueList := "[]"
	if issues > 0 {
		var items string
		for i := 0; i < issues; i++ {
			if i > 0 {
				items += ","
			}
			items += `{"issue_type":"unclear","description":"ambiguous wording","severity":"medium"}`
		}
		issueList = "[" + items + "]"
	}
	body := fmt.Sprintf(`{
		"topic": %q,
		"mcq_verifications": [{"question_index":0,"is_valid":%v,"issues":%s}],
		"fill_blank_verifications": [],
		"short_answer_verifications": [],
		"long_answer_verifications": [],
		"overall_quality": %q,
		"has_duplicates": %v
	}`, topic, issues == 0, issueList, quality, hasDuplicates)
	return llm.MockResponse{Content: json.RawMessage(body)}
}

func testTopic(name string) qbank.TopicQuestions {
	return qbank.TopicQuestions{Topic: name}
}

func TestVerifyTopic(t *testing.T) {
	mock := llm.NewMockProvider(verificationJSON("9.1 Solutions", "good", false, 2))
	svc := testService(mock)

	topic := testTopic("9.1 Solutions")
	result := svc.VerifyTopic(context.Background(), &topic)

	if result.Topic != "9.1 Solutions" {
		t.Fatalf("unexpected topic: %q", result.Topic)
	}
	if result.OverallQuality != qbank.QualityGood {
		t.Fatalf("unexpected quality: %q", result.OverallQuality)
	}
	if result.IssueCount() != 2 {
		t.Fatalf("expected 2 issues, got %d", result.IssueCount())
	}
	if !result.Acceptable() {
		t.Fatal("good quality without duplicates should be acceptable")
	}
}

func TestVerifyTopicFailureYieldsWorstCase(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
	)
	svc := testService(mock)

	topic := testTopic("9.1 Solutions")
	result := svc.VerifyTopic(context.Background(), &topic)

	if result.OverallQuality != qbank.QualityPoor {
		t.Fatalf("expected poor quality fallback, got %q", result.OverallQuality)
	}
	if result.HasDuplicates {
		t.Fatal("worst case must not flag duplicates")
	}
	if result.Acceptable() {
		t.Fatal("worst case must not be acceptable")
	}
}

func TestVerifyChapterAggregates(t *testing.T) {
	mock := llm.NewMockProvider(
		verificationJSON("a", "excellent", false, 0),
		verificationJSON("b", "good", true, 3),
	)
	svc := testService(mock)

	chapter := &qbank.ChapterQuestions{
		ChapterName: "chapter 9",
		Topics:      []qbank.TopicQuestions{testTopic("a"), testTopic("b")},
	}
	verification := svc.VerifyChapter(context.Background(), chapter)

	if verification.ChapterName != "chapter 9" {
		t.Fatalf("unexpected chapter name: %q", verification.ChapterName)
	}
	if len(verification.TopicVerifications) != 2 {
		t.Fatalf("expected 2 topic verifications, got %d", len(verification.TopicVerifications))
	}
	if verification.TotalIssues != 3 {
		t.Fatalf("expected 3 total issues, got %d", verification.TotalIssues)
	}
	// Topic b has duplicates, so the chapter fails overall.
	if verification.OverallPass {
		t.Fatal("expected overall_pass=false")
	}
}

func TestVerifyChapterPasses(t *testing.T) {
	mock := llm.NewMockProvider(
		verificationJSON("a", "good", false, 1),
	)
	svc := testService(mock)

	chapter := &qbank.ChapterQuestions{
		ChapterName: "chapter 9",
		Topics:      []qbank.TopicQuestions{testTopic("a")},
	}
	verification := svc.VerifyChapter(context.Background(), chapter)

	if !verification.OverallPass {
		t.Fatal("expected overall_pass=true")
	}
	if verification.TotalIssues != 1 {
		t.Fatalf("expected 1 issue, got %d", verification.TotalIssues)
	}
}
