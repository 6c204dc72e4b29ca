package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SaveJSON writes v as indented JSON, creating parent directories.
func SaveJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// SaveBackup writes a timestamped text snapshot of v under the
// chapter's backups directory. Each stage (generated, verified, varied)
// produces a new file; backups are never overwritten.
func SaveBackup(chapterDir string, info ChapterInfo, stage string, v any) (string, error) {
	backupDir := filepath.Join(chapterDir, backupDirName)
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	ts := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("%s_%s_%s_%s_%s.txt",
		underscore(info.ClassName),
		underscore(info.SubjectName),
		underscore(info.ChapterName),
		stage,
		ts,
	)

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal backup: %w", err)
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "Backup: %s - %s - %s\n", info.ClassName, info.SubjectName, info.ChapterName)
	fmt.Fprintf(&b, "Stage: %s\n", stage)
	fmt.Fprintf(&b, "Timestamp: %s\n", ts)
	b.WriteString(strings.Repeat("=", 80) + "\n\n")
	b.Write(data)

	path := filepath.Join(backupDir, name)
	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return path, nil
}

func underscore(s string) string {
	return strings.ReplaceAll(s, " ", "_")
}
