// Package pipeline orchestrates the three stages over a content tree:
// generate questions per chapter, verify them, add variations, and
// persist artifacts next to the chapter's source files.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/satviksrivastava7-cnx/question-bank-gen/internal/generate"
	"github.com/satviksrivastava7-cnx/question-bank-gen/internal/variate"
	"github.com/satviksrivastava7-cnx/question-bank-gen/internal/verify"
)

// Controller wires the three stage services together.
type Controller struct {
	generator *generate.Service
	verifier  *verify.Service
	variator  *variate.Service
	log       *zap.SugaredLogger
}

// NewController creates a pipeline controller.
func NewController(gen *generate.Service, ver *verify.Service, vrt *variate.Service, log *zap.SugaredLogger) *Controller {
	return &Controller{generator: gen, verifier: ver, variator: vrt, log: log}
}

// Summary counts chapter outcomes for one run.
type Summary struct {
	Processed int
	Skipped   int
	Failed    int
}

// Run discovers chapters under root and processes each in turn. A
// failing chapter never aborts the run; only context cancellation does.
func (c *Controller) Run(ctx context.Context, root string) (Summary, error) {
	chapters, err := Discover(root)
	if err != nil {
		return Summary{}, err
	}
	if len(chapters) == 0 {
		return Summary{}, &ConfigurationError{Path: root, Msg: "no chapters with chapter_content.json found"}
	}

	c.log.Infow("pipeline starting", "root", root, "chapters", len(chapters))

	var sum Summary
	for i, dir := range chapters {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		c.log.Infow("processing chapter",
			"progress", i+1,
			"total", len(chapters),
			"dir", dir)

		skipped, err := c.ProcessChapter(ctx, dir)
		switch {
		case err != nil:
			c.log.Errorw("chapter failed", "dir", dir, "error", err)
			sum.Failed++
		case skipped:
			sum.Skipped++
		default:
			sum.Processed++
		}
	}

	c.log.Infow("pipeline complete",
		"processed", sum.Processed,
		"skipped", sum.Skipped,
		"failed", sum.Failed)
	return sum, nil
}

// ProcessChapter runs the full generate/verify/variate sequence for one
// chapter directory. An existing questions.json skips the chapter
// entirely. Verification and variation failures degrade: the chapter's
// questions are still persisted.
func (c *Controller) ProcessChapter(ctx context.Context, chapterDir string) (skipped bool, err error) {
	questionsPath := filepath.Join(chapterDir, questionsFileName)
	if _, err := os.Stat(questionsPath); err == nil {
		c.log.Infow("skipping chapter, questions.json already exists", "dir", chapterDir)
		return true, nil
	}

	info, err := ChapterInfoFromPath(chapterDir)
	if err != nil {
		return false, err
	}
	c.log.Infow("chapter identified",
		"class", info.ClassName,
		"subject", info.SubjectName,
		"chapter", info.ChapterName)

	// syllabus.json lives in the subject directory, one level up.
	syllabus, err := LoadSyllabus(filepath.Dir(chapterDir))
	if err != nil {
		return false, err
	}
	topics, err := FindChapterTopics(syllabus, chapterDir, info)
	if err != nil {
		return false, err
	}

	full, err := LoadChapterContent(chapterDir)
	if err != nil {
		return false, err
	}
	if full == "" {
		c.log.Warnw("chapter content is empty, generating from topic names only", "dir", chapterDir)
	}

	sources := make([]generate.TopicSource, 0, len(topics))
	for _, t := range topics {
		sources = append(sources, generate.TopicSource{
			Name:    t,
			Content: ExtractTopicContent(full, t, DefaultContentLimit),
		})
	}

	meta := generate.ChapterMeta{
		ClassName:   info.ClassName,
		SubjectName: info.SubjectName,
		ChapterName: info.ChapterName,
	}
	res, err := c.generator.GenerateChapter(ctx, meta, sources)
	if err != nil {
		return false, fmt.Errorf("generation stage: %w", err)
	}
	chapter := res.Chapter

	if err := SaveJSON(questionsPath, chapter); err != nil {
		return false, err
	}
	if _, err := SaveBackup(chapterDir, info, "generated", chapter); err != nil {
		c.log.Warnw("backup failed", "stage", "generated", "error", err)
	}

	report := c.verifier.VerifyChapter(ctx, chapter)
	if report.OverallPass {
		c.log.Infow("verification passed", "issues", report.TotalIssues)
	} else {
		c.log.Warnw("verification found problems, see report", "issues", report.TotalIssues)
	}
	if err := SaveJSON(filepath.Join(chapterDir, reportFileName), report); err != nil {
		c.log.Warnw("could not write verification report", "error", err)
	}
	if _, err := SaveBackup(chapterDir, info, "verified", chapter); err != nil {
		c.log.Warnw("backup failed", "stage", "verified", "error", err)
	}

	if stats, verr := c.variator.AddVariations(ctx, chapter); verr != nil {
		c.log.Warnw("variation stage aborted, persisting partial variations", "error", verr)
	} else {
		c.log.Infow("variations added",
			"questions", stats.Questions,
			"variations", stats.Variations)
	}

	if err := SaveJSON(questionsPath, chapter); err != nil {
		return false, err
	}
	if _, err := SaveBackup(chapterDir, info, "varied", chapter); err != nil {
		c.log.Warnw("backup failed", "stage", "varied", "error", err)
	}

	return false, nil
}
