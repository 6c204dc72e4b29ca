package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// SyllabusChapter is one chapter entry from syllabus.json after key
// normalization.
type SyllabusChapter struct {
	Name   string
	Topics []string
}

// syllabus.json comes from several upstream exporters that disagree on
// key casing, so both spellings of every key are accepted.
type rawSyllabus struct {
	Chapters    []rawSyllabusChapter `json:"chapters"`
	ChaptersAlt []rawSyllabusChapter `json:"Chapters"`
}

type rawSyllabusChapter struct {
	Chapter    string   `json:"chapter"`
	ChapterAlt string   `json:"Chapter"`
	Topics     []string `json:"topics"`
	TopicsAlt  []string `json:"Topics"`
}

func (c rawSyllabusChapter) normalize() SyllabusChapter {
	name := c.Chapter
	if name == "" {
		name = c.ChapterAlt
	}
	topics := c.Topics
	if len(topics) == 0 {
		topics = c.TopicsAlt
	}
	return SyllabusChapter{Name: name, Topics: topics}
}

// LoadSyllabus reads syllabus.json from the subject directory.
func LoadSyllabus(subjectDir string) ([]SyllabusChapter, error) {
	path := filepath.Join(subjectDir, syllabusFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ConfigurationError{Path: subjectDir, Msg: "syllabus.json not found"}
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var raw rawSyllabus
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ConfigurationError{Path: path, Msg: fmt.Sprintf("invalid JSON: %v", err)}
	}

	entries := raw.Chapters
	if len(entries) == 0 {
		entries = raw.ChaptersAlt
	}

	chapters := make([]SyllabusChapter, 0, len(entries))
	for _, e := range entries {
		chapters = append(chapters, e.normalize())
	}
	return chapters, nil
}

var chapterNumberRe = regexp.MustCompile(`\d+`)

// FindChapterTopics locates the syllabus entry for a chapter directory.
// Matching is tolerant: exact chapter name, directory name as a
// substring of the syllabus name, or a bare chapter number extracted
// from the directory name. No match or an empty topic list is a
// configuration error.
func FindChapterTopics(chapters []SyllabusChapter, chapterDir string, info ChapterInfo) ([]string, error) {
	dirName := strings.ToLower(filepath.Base(chapterDir))
	chapterName := strings.ToLower(info.ChapterName)
	chapterNumber := chapterNumberRe.FindString(dirName)

	for _, c := range chapters {
		name := strings.ToLower(c.Name)
		if name == chapterName ||
			strings.Contains(name, dirName) ||
			(chapterNumber != "" && name == chapterNumber) {
			if len(c.Topics) == 0 {
				return nil, &ConfigurationError{
					Path: chapterDir,
					Msg:  fmt.Sprintf("chapter %q has no topics in syllabus.json", c.Name),
				}
			}
			return c.Topics, nil
		}
	}

	return nil, &ConfigurationError{
		Path: chapterDir,
		Msg:  fmt.Sprintf("chapter %q not found in syllabus.json (available: %s)", info.ChapterName, availableNames(chapters)),
	}
}

func availableNames(chapters []SyllabusChapter) string {
	var names []string
	for i, c := range chapters {
		if i == 5 {
			names = append(names, "...")
			break
		}
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}
