package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/satviksrivastava7-cnx/question-bank-gen/internal/generate"
	"github.com/satviksrivastava7-cnx/question-bank-gen/internal/llm"
	"github.com/satviksrivastava7-cnx/question-bank-gen/internal/qbank"
	"github.com/satviksrivastava7-cnx/question-bank-gen/internal/variate"
	"github.com/satviksrivastava7-cnx/question-bank-gen/internal/verify"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// makeChapterTree builds a Sample/Class 6/Science/chapter 9 fixture with
// one syllabus topic and returns the tree root and the chapter dir.
func makeChapterTree(t *testing.T) (root, chapterDir string) {
	t.Helper()
	root = filepath.Join(t.TempDir(), "Sample")
	subjectDir := filepath.Join(root, "Class 6", "Science")
	chapterDir = filepath.Join(subjectDir, "chapter 9")

	writeFile(t, filepath.Join(subjectDir, syllabusFileName),
		`{"chapters":[{"chapter":"chapter 9","topics":["9.1 Solutions"]}]}`)
	writeFile(t, filepath.Join(chapterDir, contentFileName),
		`{"content":"## 9.1 Solutions\nA solution is a homogeneous mixture."}`)
	return root, chapterDir
}

func testController(mock *llm.MockProvider) *Controller {
	client := llm.NewClient(mock, 3, 8192)
	log := zap.NewNop().Sugar()

	genCfg := generate.DefaultConfig()
	genCfg.TopicDelay = 0
	varCfg := variate.DefaultConfig()
	varCfg.QuestionDelay = 0

	return NewController(
		generate.NewService(client, genCfg, log),
		verify.NewService(client, verify.DefaultConfig(), log),
		variate.NewService(client, varCfg, log),
		log,
	)
}

var bloomLevels = []string{"remember", "understand", "apply", "analyze", "evaluate", "create"}

func sectionResponse(field, questionTemplate string) llm.MockResponse {
	var groups []string
	for _, lvl := range bloomLevels {
		groups = append(groups, fmt.Sprintf(`{"bloom_taxonomy":%q,"questions":[%s]}`,
			lvl, fmt.Sprintf(questionTemplate, lvl)))
	}
	body := fmt.Sprintf(`{%q:[%s]}`, field, strings.Join(groups, ","))
	return llm.MockResponse{Content: json.RawMessage(body)}
}

func queueTopicGeneration(mock *llm.MockProvider) {
	mock.AddResponse(sectionResponse("MCQs",
		`{"question":"Which %s option?","options":["a","b","c","d"],"answer":"a","explanation":"a is right"}`))
	mock.AddResponse(sectionResponse("fill_in_the_blanks",
		`{"question":"The %s answer is _____.","answer":"known"}`))
	mock.AddResponse(sectionResponse("short_answer",
		`{"question":"Explain %s briefly.","reference_answer":"A short answer."}`))
	mock.AddResponse(sectionResponse("long_answer",
		`{"question":"Discuss %s in depth.","reference_points":["one","two","three"]}`))
}

func queueVerification(mock *llm.MockProvider, topic string) {
	body := fmt.Sprintf(`{
		"topic": %q,
		"mcq_verifications": [],
		"fill_blank_verifications": [],
		"short_answer_verifications": [],
		"long_answer_verifications": [],
		"overall_quality": "good",
		"has_duplicates": false
	}`, topic)
	mock.AddResponse(llm.MockResponse{Content: json.RawMessage(body)})
}

func queueVariations(mock *llm.MockProvider, n int) {
	for i := 0; i < n; i++ {
		mock.AddResponse(llm.MockResponse{Content: json.RawMessage(`["v1","v2","v3","v4","v5"]`)})
	}
}

func TestDiscoverSingleChapter(t *testing.T) {
	_, chapterDir := makeChapterTree(t)

	chapters, err := Discover(chapterDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chapters) != 1 || chapters[0] != chapterDir {
		t.Fatalf("unexpected chapters: %v", chapters)
	}
}

func TestDiscoverRecursive(t *testing.T) {
	root, chapterDir := makeChapterTree(t)
	second := filepath.Join(root, "Class 6", "Science", "chapter 10")
	writeFile(t, filepath.Join(second, contentFileName), `{"content":""}`)

	chapters, err := Discover(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %v", chapters)
	}
	// Sorted by path.
	if chapters[0] != second || chapters[1] != chapterDir {
		t.Fatalf("unexpected order: %v", chapters)
	}
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestSaveBackup(t *testing.T) {
	dir := t.TempDir()
	info := ChapterInfo{ClassName: "Class 6", SubjectName: "Science", ChapterName: "chapter 9"}

	path, err := SaveBackup(dir, info, "generated", map[string]string{"k": "v"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	name := filepath.Base(path)
	if !strings.HasPrefix(name, "Class_6_Science_chapter_9_generated_") {
		t.Fatalf("unexpected backup name: %q", name)
	}
	if !strings.HasSuffix(name, ".txt") {
		t.Fatalf("unexpected extension: %q", name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	body := string(data)
	for _, want := range []string{
		"Backup: Class 6 - Science - chapter 9",
		"Stage: generated",
		`"k": "v"`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("backup missing %q:\n%s", want, body)
		}
	}
}

func TestProcessChapterSkipsExisting(t *testing.T) {
	_, chapterDir := makeChapterTree(t)
	writeFile(t, filepath.Join(chapterDir, questionsFileName), `{}`)

	mock := llm.NewMockProvider()
	ctrl := testController(mock)

	skipped, err := ctrl.ProcessChapter(context.Background(), chapterDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !skipped {
		t.Fatal("expected chapter to be skipped")
	}
	if mock.CallCount() != 0 {
		t.Fatalf("expected no model calls, got %d", mock.CallCount())
	}
}

func TestProcessChapterSyllabusMismatch(t *testing.T) {
	root, _ := makeChapterTree(t)
	subjectDir := filepath.Join(root, "Class 6", "Science")

	// The syllabus names a different chapter entirely.
	writeFile(t, filepath.Join(subjectDir, syllabusFileName),
		`{"chapters":[{"chapter":"chapter 3","topics":["3.1 Metals"]}]}`)
	chapterDir := filepath.Join(subjectDir, "chapter 9")

	mock := llm.NewMockProvider()
	ctrl := testController(mock)

	_, err := ctrl.ProcessChapter(context.Background(), chapterDir)

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Fatalf("expected no model calls, got %d", mock.CallCount())
	}
	if _, statErr := os.Stat(filepath.Join(chapterDir, questionsFileName)); !os.IsNotExist(statErr) {
		t.Fatal("questions.json must not be written for an aborted chapter")
	}
}

func TestProcessChapterEndToEnd(t *testing.T) {
	_, chapterDir := makeChapterTree(t)

	mock := llm.NewMockProvider()
	queueTopicGeneration(mock)
	queueVerification(mock, "9.1 Solutions")
	// 4 types x 6 levels x 1 question.
	queueVariations(mock, 24)

	ctrl := testController(mock)
	skipped, err := ctrl.ProcessChapter(context.Background(), chapterDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skipped {
		t.Fatal("chapter should not be skipped")
	}

	// Final question bank.
	data, err := os.ReadFile(filepath.Join(chapterDir, questionsFileName))
	if err != nil {
		t.Fatalf("read questions.json: %v", err)
	}
	var chapter qbank.ChapterQuestions
	if err := json.Unmarshal(data, &chapter); err != nil {
		t.Fatalf("parse questions.json: %v", err)
	}
	if err := chapter.Validate(); err != nil {
		t.Fatalf("persisted chapter fails validation: %v", err)
	}
	if chapter.ClassName != "Class 6" || chapter.ChapterName != "chapter 9" {
		t.Fatalf("unexpected chapter identity: %+v", chapter)
	}
	if got := chapter.Topics[0].QuestionCount(); got != 24 {
		t.Fatalf("expected 24 questions, got %d", got)
	}
	if vs := chapter.Topics[0].MCQs[0].Questions[0].Variations; len(vs) != 5 {
		t.Fatalf("expected 5 variations, got %d", len(vs))
	}

	// Verification report.
	data, err = os.ReadFile(filepath.Join(chapterDir, reportFileName))
	if err != nil {
		t.Fatalf("read verification report: %v", err)
	}
	var report qbank.ChapterVerification
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("parse verification report: %v", err)
	}
	if !report.OverallPass {
		t.Fatal("expected overall_pass=true")
	}

	// One backup per stage.
	entries, err := os.ReadDir(filepath.Join(chapterDir, backupDirName))
	if err != nil {
		t.Fatalf("read backups: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 backups, got %d", len(entries))
	}
}

func TestRunCountsOutcomes(t *testing.T) {
	root, chapterDir := makeChapterTree(t)
	writeFile(t, filepath.Join(chapterDir, questionsFileName), `{}`)

	mock := llm.NewMockProvider()
	ctrl := testController(mock)

	sum, err := ctrl.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Skipped != 1 || sum.Processed != 0 || sum.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}

func TestRunNoChapters(t *testing.T) {
	_, err := testController(llm.NewMockProvider()).Run(context.Background(), t.TempDir())

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}
