package pipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Artifact and input file names within a chapter directory.
const (
	contentFileName   = "chapter_content.json"
	questionsFileName = "questions.json"
	reportFileName    = "verification_report.json"
	syllabusFileName  = "syllabus.json"
	backupDirName     = "backups"
)

// Discover returns the chapter directories under root, sorted by path.
// A chapter directory is any directory containing chapter_content.json.
// When root itself is a chapter directory it is the single result; the
// tree is not searched further.
func Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, &ConfigurationError{Path: root, Msg: "not a directory"}
	}

	if _, err := os.Stat(filepath.Join(root, contentFileName)); err == nil {
		return []string{root}, nil
	}

	var chapters []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == contentFileName {
			chapters = append(chapters, filepath.Dir(path))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Strings(chapters)
	return chapters, nil
}
