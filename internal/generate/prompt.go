package generate

import (
	"fmt"
	"strings"

	"github.com/satviksrivastava7-cnx/question-bank-gen/internal/qbank"
)

const systemPrompt = `You are an expert educational content creator and assessment designer with deep knowledge of pedagogy and Bloom's Taxonomy.

Your task is to generate high-quality, educationally sound questions that:
1. Align precisely with Bloom's Taxonomy levels
2. Test specific concepts thoroughly
3. Are clear, unambiguous, and grammatically correct
4. Have appropriate difficulty for the target audience
5. Avoid repetition and redundancy

BLOOM'S TAXONOMY LEVELS:

1. REMEMBER: Recall facts and basic concepts
   - Keywords: define, list, identify, name, state, describe, recognize
2. UNDERSTAND: Explain ideas or concepts
   - Keywords: explain, summarize, paraphrase, classify, compare, interpret
3. APPLY: Use information in new situations
   - Keywords: apply, demonstrate, solve, use, illustrate, calculate
4. ANALYZE: Draw connections among ideas
   - Keywords: analyze, compare, contrast, distinguish, examine, categorize
5. EVALUATE: Justify a decision or course of action
   - Keywords: evaluate, judge, critique, defend, assess, prioritize
6. CREATE: Produce new or original work
   - Keywords: create, design, construct, develop, formulate, propose

IMPORTANT RULES:
- Generate the specified number of questions per Bloom's level
- Each question MUST be completely unique - NO repetition or paraphrasing
- Ensure questions are diverse and cover different aspects of the content
- Maintain consistent difficulty within each Bloom's level
- Use proper grammar, spelling, and punctuation
- Format numbers and units correctly
- Ensure all required fields are populated`

// typeGuidance holds the per-question-type quality standards appended to
// the section prompt.
var typeGuidance = map[qbank.QuestionKind]string{
	qbank.KindMCQ: `MCQ QUALITY STANDARDS:
- Question must be clear and specific
- Provide exactly 4 options; all must be plausible
- Distractors should address common misconceptions
- Avoid "all of the above" or "none of the above"
- The answer must exactly match one of the options
- Provide a brief, educational explanation`,

	qbank.KindFillBlank: `FILL-IN-THE-BLANK QUALITY STANDARDS:
- Use _____ to indicate the blank
- Context should make the answer relatively clear
- Avoid multiple possible correct answers
- The answer should be 1-3 words`,

	qbank.KindShortAnswer: `SHORT ANSWER QUALITY STANDARDS:
- Require 2-4 sentence responses
- Should test understanding, not just recall
- The reference answer should model the expected response
- Be specific about what is being asked`,

	qbank.KindLongAnswer: `LONG ANSWER QUALITY STANDARDS:
- Require 5-8 sentence detailed responses
- Should test higher-order thinking
- Provide 3-6 concise reference points a complete answer must cover
- May involve multiple concepts or steps`,
}

// buildSectionPrompt assembles the user message for one question type's
// generation call.
func buildSectionPrompt(kind qbank.QuestionKind, in TopicInput) string {
	perLevel := in.QuestionsPerLevel
	total := perLevel * len(qbank.BloomOrder)

	var b strings.Builder

	fmt.Fprintf(&b, "Generate %s questions for the following topic.\n\n", kind.DisplayName())
	fmt.Fprintf(&b, "CLASS: %s\nSUBJECT: %s\nCHAPTER: %s\nTOPIC: %s\n\n", in.ClassName, in.SubjectName, in.ChapterName, in.Topic)
	fmt.Fprintf(&b, "CONTENT:\n%s\n\n", in.Content)

	fmt.Fprintf(&b, "Generate %d questions per Bloom's level across all 6 levels (%d questions total).\n", perLevel, total)
	b.WriteString("The 6 Bloom groups must appear in this exact order: remember, understand, apply, analyze, evaluate, create.\n\n")

	b.WriteString(typeGuidance[kind])
	b.WriteString("\n\nCRITICAL REQUIREMENTS:\n")
	b.WriteString(`1. Every question MUST be completely unique and distinct
2. NO repetition, paraphrasing, or similar questions allowed
3. Cover different aspects, concepts, and angles from the content
4. Each question should test a different learning point
5. Questions progress from simple (remember) to complex (create)
6. All questions are based on the provided content

Return ONLY valid JSON matching the schema. Do not include any markdown formatting or additional text.`)

	return b.String()
}
