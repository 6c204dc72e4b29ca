package qbank

import "github.com/satviksrivastava7-cnx/question-bank-gen/internal/llm"

// Response schemas for the structured generation calls. Each section
// schema describes one question type's full 6-level payload; the
// verification schema describes the per-topic critique.

// MCQSection is the decode target for an MCQ generation response.
type MCQSection struct {
	MCQs []BloomGroup[MCQQuestion] `json:"MCQs"`
}

// FillBlankSection is the decode target for a fill-in-the-blank response.
type FillBlankSection struct {
	FillInTheBlanks []BloomGroup[FillBlankQuestion] `json:"fill_in_the_blanks"`
}

// ShortAnswerSection is the decode target for a short-answer response.
type ShortAnswerSection struct {
	ShortAnswer []BloomGroup[ShortAnswerQuestion] `json:"short_answer"`
}

// LongAnswerSection is the decode target for a long-answer response.
type LongAnswerSection struct {
	LongAnswer []BloomGroup[LongAnswerQuestion] `json:"long_answer"`
}

var bloomLevelSchema = map[string]any{
	"type":        "string",
	"enum":        []any{"remember", "understand", "apply", "analyze", "evaluate", "create"},
	"description": "Bloom's taxonomy level for this group",
}

// sectionSchema builds the schema for one question type: an array of 6
// Bloom groups, each holding an array of questions of that type.
func sectionSchema(field, description string, questionSchema map[string]any) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			field: map[string]any{
				"type":        "array",
				"minItems":    6,
				"maxItems":    6,
				"description": "Exactly 6 groups, one per Bloom's level in order: remember, understand, apply, analyze, evaluate, create",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"bloom_taxonomy": bloomLevelSchema,
						"questions": map[string]any{
							"type":        "array",
							"minItems":    1,
							"description": description,
							"items":       questionSchema,
						},
					},
					"required":             []any{"bloom_taxonomy", "questions"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{field},
		"additionalProperties": false,
	}
}

// MCQSectionSchema validates the MCQ generation response.
var MCQSectionSchema = &llm.Schema{
	Name:        "mcq-section",
	Description: "Multiple choice questions for one topic, grouped by Bloom's level",
	Definition: sectionSchema("MCQs", "MCQ questions for this Bloom's level", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question text",
			},
			"options": map[string]any{
				"type":        "array",
				"minItems":    4,
				"maxItems":    4,
				"items":       map[string]any{"type": "string"},
				"description": "Exactly 4 distinct options",
			},
			"answer": map[string]any{
				"type":        "string",
				"description": "The correct answer; must exactly match one option",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Brief explanation of why the answer is correct",
			},
		},
		"required":             []any{"question", "options", "answer", "explanation"},
		"additionalProperties": false,
	}),
}

// FillBlankSectionSchema validates the fill-in-the-blank response.
var FillBlankSectionSchema = &llm.Schema{
	Name:        "fill-blank-section",
	Description: "Fill-in-the-blank questions for one topic, grouped by Bloom's level",
	Definition: sectionSchema("fill_in_the_blanks", "Fill-in-the-blank questions for this Bloom's level", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "Question text with the blank indicated by _____",
			},
			"answer": map[string]any{
				"type":        "string",
				"description": "The word or short phrase (1-3 words) that fills the blank",
			},
		},
		"required":             []any{"question", "answer"},
		"additionalProperties": false,
	}),
}

// ShortAnswerSectionSchema validates the short-answer response.
var ShortAnswerSectionSchema = &llm.Schema{
	Name:        "short-answer-section",
	Description: "Short answer questions for one topic, grouped by Bloom's level",
	Definition: sectionSchema("short_answer", "Short answer questions for this Bloom's level", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question text",
			},
			"reference_answer": map[string]any{
				"type":        "string",
				"description": "Model answer, 2-4 sentences",
			},
		},
		"required":             []any{"question", "reference_answer"},
		"additionalProperties": false,
	}),
}

// LongAnswerSectionSchema validates the long-answer response.
var LongAnswerSectionSchema = &llm.Schema{
	Name:        "long-answer-section",
	Description: "Long answer questions for one topic, grouped by Bloom's level",
	Definition: sectionSchema("long_answer", "Long answer questions for this Bloom's level", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question text",
			},
			"reference_points": map[string]any{
				"type":        "array",
				"minItems":    3,
				"maxItems":    6,
				"items":       map[string]any{"type": "string"},
				"description": "3-6 concise points a complete answer must cover",
			},
		},
		"required":             []any{"question", "reference_points"},
		"additionalProperties": false,
	}),
}

var questionVerificationSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"question_index": map[string]any{
			"type":        "integer",
			"description": "Index of the question within its Bloom group sequence",
		},
		"is_valid": map[string]any{
			"type":        "boolean",
			"description": "Whether the question is usable as-is",
		},
		"issues": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"issue_type": map[string]any{
						"type": "string",
						"enum": []any{"duplicate", "unclear", "incorrect", "poor_quality", "grammatical"},
					},
					"description": map[string]any{"type": "string"},
					"severity": map[string]any{
						"type": "string",
						"enum": []any{"low", "medium", "high", "critical"},
					},
				},
				"required":             []any{"issue_type", "description", "severity"},
				"additionalProperties": false,
			},
		},
		"suggestion": map[string]any{
			"type":        "string",
			"description": "Optional improvement suggestion",
		},
	},
	"required":             []any{"question_index", "is_valid", "issues"},
	"additionalProperties": false,
}

// TopicVerificationSchema validates the per-topic critique response.
var TopicVerificationSchema = &llm.Schema{
	Name:        "topic-verification",
	Description: "Quality critique of all questions generated for one topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topic": map[string]any{
				"type":        "string",
				"description": "Topic name",
			},
			"mcq_verifications": map[string]any{
				"type":  "array",
				"items": questionVerificationSchema,
			},
			"fill_blank_verifications": map[string]any{
				"type":  "array",
				"items": questionVerificationSchema,
			},
			"short_answer_verifications": map[string]any{
				"type":  "array",
				"items": questionVerificationSchema,
			},
			"long_answer_verifications": map[string]any{
				"type":  "array",
				"items": questionVerificationSchema,
			},
			"overall_quality": map[string]any{
				"type": "string",
				"enum": []any{"excellent", "good", "fair", "poor"},
			},
			"has_duplicates": map[string]any{
				"type":        "boolean",
				"description": "Whether duplicate or near-duplicate questions were found",
			},
		},
		"required":             []any{"topic", "mcq_verifications", "fill_blank_verifications", "short_answer_verifications", "long_answer_verifications", "overall_quality", "has_duplicates"},
		"additionalProperties": false,
	},
}
