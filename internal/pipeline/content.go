package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// DefaultContentLimit caps the per-topic content excerpt sent to the
// model.
const DefaultContentLimit = 3000

const truncationMarker = "\n\n[Content truncated for API limits]"

var (
	topicNumberRe = regexp.MustCompile(`^\d+\.\d+\s+`)
	nextHeadingRe = regexp.MustCompile(`\n#+ \d+\.\d+`)
)

// LoadChapterContent reads the full chapter text from
// chapter_content.json. A missing file is not an error; generation
// proceeds on empty content.
func LoadChapterContent(chapterDir string) (string, error) {
	path := filepath.Join(chapterDir, contentFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	var payload struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("parse %s: %w", path, err)
	}
	return payload.Content, nil
}

// ExtractTopicContent slices the chapter text down to the section for
// one topic. The topic heading is searched as a markdown heading, then
// as plain text, then with its section number stripped; the slice runs
// to the next numbered heading. When the heading is not found at all
// the chapter prefix is used so generation still has material.
func ExtractTopicContent(full, topic string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultContentLimit
	}

	escaped := regexp.QuoteMeta(topic)
	bare := regexp.QuoteMeta(topicNumberRe.ReplaceAllString(topic, ""))
	patterns := []string{
		`#+ ` + escaped,
		`# ` + escaped,
		escaped,
		bare,
	}

	start := -1
	for _, p := range patterns {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			continue
		}
		if loc := re.FindStringIndex(full); loc != nil {
			start = loc[0]
			break
		}
	}

	if start == -1 {
		if len(full) > maxChars {
			return full[:maxChars]
		}
		return full
	}

	end := start + maxChars
	searchFrom := start + len(topic)
	if searchFrom > len(full) {
		searchFrom = len(full)
	}
	if loc := nextHeadingRe.FindStringIndex(full[searchFrom:]); loc != nil {
		end = searchFrom + loc[0]
	}
	if end > len(full) {
		end = len(full)
	}

	section := full[start:end]
	if len(section) > maxChars {
		section = section[:maxChars] + truncationMarker
	}
	return section
}
