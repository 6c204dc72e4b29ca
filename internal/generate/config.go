package generate

import "time"

// Config controls the generation stage.
type Config struct {
	// Temperature for generation calls (0.0-1.0).
	Temperature float64

	// TopicDelay is the pause after each topic's generation calls,
	// keeping the pipeline under the provider's rate limit.
	TopicDelay time.Duration

	// DenseTopicThreshold is the topic count at which a chapter switches
	// from the high per-level question count to the low one. Chapters
	// with fewer topics get more questions per level to compensate.
	DenseTopicThreshold int

	// PerLevelSparse is the questions-per-Bloom-level count for chapters
	// below the threshold.
	PerLevelSparse int

	// PerLevelDense is the count for chapters at or above the threshold.
	PerLevelDense int
}

// DefaultConfig returns the stage defaults. The per-level counts are a
// tuning heuristic, not a contract.
func DefaultConfig() Config {
	return Config{
		Temperature:         0.6,
		TopicDelay:          2 * time.Second,
		DenseTopicThreshold: 5,
		PerLevelSparse:      8,
		PerLevelDense:       5,
	}
}

// QuestionsPerLevel picks the per-level question count from chapter
// topic density.
func (c Config) QuestionsPerLevel(topicCount int) int {
	if topicCount < c.DenseTopicThreshold {
		return c.PerLevelSparse
	}
	return c.PerLevelDense
}
