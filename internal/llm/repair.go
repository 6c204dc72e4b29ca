package llm

import "strings"

// Repair cleans raw model output so it has the best chance of parsing as
// JSON: strips markdown code-fence wrapping and scrubs non-printable
// control characters, keeping newline and tab which are legal inside
// JSON strings. It is a heuristic patch over an unreliable generator,
// kept separate from the retry logic so the heuristics can grow
// independently.
func Repair(text string) string {
	text = strings.TrimSpace(text)

	// Fence wrapping: ```json ... ``` or bare ``` ... ```.
	if strings.HasPrefix(text, "```json") {
		text = text[len("```json"):]
	} else if strings.HasPrefix(text, "```") {
		text = text[len("```"):]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case r < 0x20 || r == 0x7f || (r >= 0x80 && r <= 0x9f):
			// C0/C1 control characters corrupt JSON string literals.
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}

	return strings.TrimSpace(b.String())
}
