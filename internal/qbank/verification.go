package qbank

// IssueType classifies a problem found in a generated question.
type IssueType string

const (
	IssueDuplicate   IssueType = "duplicate"
	IssueUnclear     IssueType = "unclear"
	IssueIncorrect   IssueType = "incorrect"
	IssuePoorQuality IssueType = "poor_quality"
	IssueGrammatical IssueType = "grammatical"
)

// IssueSeverity grades how badly an issue impacts a question.
type IssueSeverity string

const (
	SeverityLow      IssueSeverity = "low"
	SeverityMedium   IssueSeverity = "medium"
	SeverityHigh     IssueSeverity = "high"
	SeverityCritical IssueSeverity = "critical"
)

// QualityRating is the model's overall judgement of a topic's questions.
type QualityRating string

const (
	QualityExcellent QualityRating = "excellent"
	QualityGood      QualityRating = "good"
	QualityFair      QualityRating = "fair"
	QualityPoor      QualityRating = "poor"
)

// QuestionIssue is a single problem found in one question.
type QuestionIssue struct {
	IssueType   IssueType     `json:"issue_type"`
	Description string        `json:"description"`
	Severity    IssueSeverity `json:"severity"`
}

// QuestionVerification is the critique result for a single question.
type QuestionVerification struct {
	QuestionIndex int             `json:"question_index"`
	IsValid       bool            `json:"is_valid"`
	Issues        []QuestionIssue `json:"issues"`
	Suggestion    string          `json:"suggestion,omitempty"`
}

// TopicVerification aggregates critique results for one topic.
// It is a read-only judgement layer: nothing downstream mutates the
// question data based on it.
type TopicVerification struct {
	Topic                    string                 `json:"topic"`
	MCQVerifications         []QuestionVerification `json:"mcq_verifications"`
	FillBlankVerifications   []QuestionVerification `json:"fill_blank_verifications"`
	ShortAnswerVerifications []QuestionVerification `json:"short_answer_verifications"`
	LongAnswerVerifications  []QuestionVerification `json:"long_answer_verifications"`
	OverallQuality           QualityRating          `json:"overall_quality"`
	HasDuplicates            bool                   `json:"has_duplicates"`
}

// IssueCount returns the total number of issues across all four
// per-type verification lists.
func (t *TopicVerification) IssueCount() int {
	n := 0
	for _, list := range [][]QuestionVerification{
		t.MCQVerifications,
		t.FillBlankVerifications,
		t.ShortAnswerVerifications,
		t.LongAnswerVerifications,
	} {
		for _, v := range list {
			n += len(v.Issues)
		}
	}
	return n
}

// Acceptable reports whether this topic clears the chapter-level quality
// bar: quality above fair, and no duplicates.
func (t *TopicVerification) Acceptable() bool {
	if t.OverallQuality == QualityPoor || t.OverallQuality == QualityFair {
		return false
	}
	return !t.HasDuplicates
}

// ChapterVerification is the chapter-level verdict, persisted as a
// standalone report independent of the question bank file.
type ChapterVerification struct {
	ChapterName        string              `json:"chapter_name"`
	TopicVerifications []TopicVerification `json:"topic_verifications"`
	OverallPass        bool                `json:"overall_pass"`
	TotalIssues        int                 `json:"total_issues"`
}
