package variate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/satviksrivastava7-cnx/question-bank-gen/internal/qbank"
)

// textFields are tried in priority order when a variation arrives as an
// object instead of a plain string.
var textFields = []string{"question", "variation_text", "variation", "text", "prompt"}

// Normalize flattens one raw variation item into a single clean string.
// Models return variations in several shapes: bare strings, objects with
// a text field, bundled {"variation_1": ..., "variation_2": ...} maps,
// or full question objects with options and answers. All of them reduce
// to one string here so the stored variation list stays uniform.
func Normalize(item any, kind qbank.QuestionKind) string {
	switch v := item.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		return normalizeObject(v, kind)
	default:
		return strings.TrimSpace(fmt.Sprint(item))
	}
}

func normalizeObject(obj map[string]any, kind qbank.QuestionKind) string {
	if joined := joinBundled(obj); joined != "" {
		return joined
	}

	var base string
	for _, key := range textFields {
		if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
			base = strings.TrimSpace(s)
			break
		}
	}

	// MCQ objects carry options and an answer that would be lost if we
	// kept only the stem.
	if kind == qbank.KindMCQ {
		if opts, ok := obj["options"].([]any); ok {
			if text := joinList(opts); text != "" {
				base = appendPart(base, "Options: "+text)
			}
		}
		if ans, ok := obj["answer"].(string); ok && strings.TrimSpace(ans) != "" {
			base = appendPart(base, "Answer: "+strings.TrimSpace(ans))
		}
	}

	if points, ok := obj["reference_points"].([]any); ok {
		if text := joinList(points); text != "" {
			base = appendPart(base, "Key points: "+text)
		}
	}
	if ref, ok := obj["reference_answer"].(string); ok && strings.TrimSpace(ref) != "" {
		if base == "" {
			base = strings.TrimSpace(ref)
		} else {
			base += " | Reference answer: " + strings.TrimSpace(ref)
		}
	}

	if base != "" {
		return base
	}

	// Nothing usable extracted. Keep the raw object rather than drop it.
	raw, err := json.Marshal(obj)
	if err != nil {
		return ""
	}
	return string(raw)
}

// joinBundled handles responses like {"variation_1": "...", "variation_2": "..."}
// by joining the values in key order.
func joinBundled(obj map[string]any) string {
	var keys []string
	for k := range obj {
		if strings.HasPrefix(k, "variation_") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		if v := stringify(obj[k]); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " | ")
}

func joinList(items []any) string {
	var parts []string
	for _, item := range items {
		if v := stringify(item); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, "; ")
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

func appendPart(base, part string) string {
	if base == "" {
		return part
	}
	return base + " | " + part
}
