package pipeline

import (
	"path/filepath"
	"strings"
)

// ChapterInfo identifies a chapter by its position in the content tree.
type ChapterInfo struct {
	ClassName   string
	SubjectName string
	ChapterName string
}

// ChapterInfoFromPath derives class, subject and chapter names from the
// chapter directory path. Two layouts are recognized:
//
//	CBSE/<class>/<medium>/<subject>/<chapter>
//	Sample/<class>/<subject>/<chapter>
//
// Segments missing past the root marker come back as "Unknown".
func ChapterInfoFromPath(chapterDir string) (ChapterInfo, error) {
	parts := strings.Split(filepath.ToSlash(filepath.Clean(chapterDir)), "/")

	rootIdx := -1
	var rootName string
	for i, p := range parts {
		if p == "CBSE" || p == "Sample" {
			rootIdx = i
			rootName = p
			break
		}
	}
	if rootIdx < 0 {
		return ChapterInfo{}, &ConfigurationError{
			Path: chapterDir,
			Msg:  "path does not contain a CBSE or Sample segment",
		}
	}

	part := func(i int) string {
		if i < len(parts) {
			return parts[i]
		}
		return "Unknown"
	}

	if rootName == "Sample" {
		return ChapterInfo{
			ClassName:   part(rootIdx + 1),
			SubjectName: part(rootIdx + 2),
			ChapterName: part(rootIdx + 3),
		}, nil
	}

	// CBSE inserts a medium segment between class and subject.
	return ChapterInfo{
		ClassName:   part(rootIdx + 1),
		SubjectName: part(rootIdx + 3),
		ChapterName: part(rootIdx + 4),
	}, nil
}
