package verify

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert educational quality assurance specialist and assessment reviewer.

Your task is to rigorously verify question quality and identify issues.

VERIFICATION CRITERIA:

1. DUPLICATE DETECTION:
   - Check for identical or near-identical questions
   - Look for questions testing the same concept in the same way
   - Flag paraphrased duplicates

2. CLARITY:
   - Questions must be unambiguous
   - Language should be clear and professional

3. CORRECTNESS:
   - MCQ answers must match one of the options exactly
   - Explanations must be accurate
   - Reference answers and reference points must be correct and complete

4. BLOOM'S ALIGNMENT:
   - Questions must match their assigned Bloom's level
   - Remember questions should test recall, not analysis
   - Create questions should require original thinking

5. QUALITY:
   - Grammar and spelling must be correct
   - Professional formatting and presentation
   - Age-appropriate language and complexity

ISSUE SEVERITY LEVELS:

- CRITICAL: Makes question unusable (wrong answer, duplicate)
- HIGH: Significantly impacts quality (unclear, misaligned Bloom's)
- MEDIUM: Minor quality issues (grammar, formatting)
- LOW: Cosmetic improvements possible

Be thorough and strict. Quality over quantity.`

// buildVerificationPrompt assembles the user message for one topic's
// critique call. questionsJSON is the serialized TopicQuestions.
func buildVerificationPrompt(topic, questionsJSON string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Verify the quality of questions for this topic.\n\nTOPIC: %s\n\n", topic)
	fmt.Fprintf(&b, "QUESTIONS TO VERIFY:\n%s\n\n", questionsJSON)

	b.WriteString(`Check for:
1. Duplicate questions (within topic and across Bloom's levels)
2. Clarity and ambiguity issues
3. Correct answers and explanations
4. Bloom's taxonomy alignment
5. Grammar and formatting
6. Overall quality

Provide detailed verification results with specific issues and suggestions.
Return ONLY valid JSON matching the verification schema.`)

	return b.String()
}
