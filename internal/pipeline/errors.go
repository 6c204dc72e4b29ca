package pipeline

import "fmt"

// ConfigurationError reports invalid or missing setup for a chapter:
// an unrecognized path layout, a missing syllabus, or a chapter the
// syllabus does not list. Chapters failing configuration are aborted
// before any artifact is written.
type ConfigurationError struct {
	Path string
	Msg  string
}

func (e *ConfigurationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("configuration error: %s", e.Msg)
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Path, e.Msg)
}
