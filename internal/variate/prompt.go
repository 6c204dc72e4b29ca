package variate

import (
	"fmt"
	"strings"

	"github.com/satviksrivastava7-cnx/question-bank-gen/internal/qbank"
)

const systemPrompt = `You are an expert question writer specialized in creating diverse variations of assessment items.

Your task is to generate 5 variations of each question that:
1. Test the SAME concept and learning objective
2. Maintain the SAME difficulty level
3. Maintain the SAME Bloom's taxonomy level
4. Use DIFFERENT wording and context
5. Are equally valid and high-quality

VARIATION STRATEGIES:

1. CONTEXTUAL VARIATION:
   - Change the scenario or example
   - Use different real-world applications
   - Vary the subject of the question

2. STRUCTURAL VARIATION:
   - Rephrase the question stem
   - Change question format (while keeping type)
   - Vary the order of information

3. NUMERICAL VARIATION (if applicable):
   - Use different numbers
   - Change units while maintaining complexity
   - Vary the scale

4. EXAMPLE VARIATION:
   - Use different examples
   - Change specific references
   - Vary cultural or contextual elements

IMPORTANT RULES:
- Generate EXACTLY 5 variations per question
- Each variation must be unique
- Do NOT change the core concept being tested
- Do NOT change the difficulty level
- Do NOT change the Bloom's taxonomy level
- Maintain the same question type (MCQ stays MCQ, etc.)

For MCQs:
- Vary the question and all options
- Keep the same number of options (4)
- Maintain plausibility of distractors

For Fill in the Blanks:
- Vary the sentence structure
- Keep the answer compatible (may need to change answer too)

For Answer Questions:
- Vary the question phrasing
- Reference answer should guide similar length response

QUALITY CHECK:
Each variation should:
- Be as good or better than the original
- Test the same learning objective
- Be grammatically correct
- Be appropriate for the target audience`

// buildVariationPrompt assembles the user message for one question's
// variation call. additionalInfo carries type-specific context such as
// MCQ options or the reference outline.
func buildVariationPrompt(kind qbank.QuestionKind, level qbank.BloomLevel, topic, questionText, additionalInfo string) string {
	var b strings.Builder

	b.WriteString("Generate 5 variations of the following question.\n\n")
	fmt.Fprintf(&b, "ORIGINAL QUESTION:\nType: %s\nBloom's Level: %s\nTopic: %s\n\n", kind.DisplayName(), level, topic)
	fmt.Fprintf(&b, "Question: %s\n\n", questionText)
	if additionalInfo != "" {
		b.WriteString(additionalInfo)
		b.WriteString("\n\n")
	}

	b.WriteString(`Generate 5 high-quality variations that:
1. Test the same concept
2. Maintain the same difficulty
3. Use different wording and context
4. Are equally clear and professional

Return ONLY a JSON array of 5 variation strings.
Example: ["Variation 1", "Variation 2", "Variation 3", "Variation 4", "Variation 5"]`)

	return b.String()
}

func mcqInfo(q *qbank.MCQQuestion) string {
	var b strings.Builder
	b.WriteString("Options:\n")
	for _, opt := range q.Options {
		fmt.Fprintf(&b, "- %s\n", opt)
	}
	fmt.Fprintf(&b, "\nCorrect Answer: %s\n\n", q.Answer)
	b.WriteString(`For variations:
- Vary both the question and all options
- Maintain 4 plausible options
- Ensure one option is clearly correct`)
	return b.String()
}

func fillBlankInfo(q *qbank.FillBlankQuestion) string {
	return fmt.Sprintf(`Answer: %s

For variations:
- Vary the sentence structure
- Keep the blank appropriate for the concept
- Answer may need to change to fit new context`, q.Answer)
}

func shortAnswerInfo(q *qbank.ShortAnswerQuestion) string {
	return fmt.Sprintf(`Reference Answer: %s

For variations:
- Vary the question phrasing
- Maintain the same concept being tested
- Keep expected answer length similar`, q.ReferenceAnswer)
}

func longAnswerInfo(q *qbank.LongAnswerQuestion) string {
	var header string
	if len(q.ReferencePoints) > 0 {
		var b strings.Builder
		b.WriteString("Reference Points:\n")
		for _, p := range q.ReferencePoints {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		header = strings.TrimRight(b.String(), "\n")
	} else {
		header = "Legacy Reference Answer: " + q.ReferenceAnswer
	}
	return header + `

For variations:
- Vary the question phrasing
- Maintain every reference point / key idea
- Keep the expected depth and structure (introduction, development, conclusion)`
}
