package qbank

// BloomLevel is one of the six ordered cognitive-demand categories of
// Bloom's taxonomy.
type BloomLevel string

const (
	BloomRemember   BloomLevel = "remember"
	BloomUnderstand BloomLevel = "understand"
	BloomApply      BloomLevel = "apply"
	BloomAnalyze    BloomLevel = "analyze"
	BloomEvaluate   BloomLevel = "evaluate"
	BloomCreate     BloomLevel = "create"
)

// BloomOrder is the canonical ordering of the six levels, from lowest to
// highest cognitive demand. Consumers may rely on positional indexing
// 0-5 into the per-type group sequences.
var BloomOrder = [6]BloomLevel{
	BloomRemember,
	BloomUnderstand,
	BloomApply,
	BloomAnalyze,
	BloomEvaluate,
	BloomCreate,
}

// Valid reports whether l is one of the six known levels.
func (l BloomLevel) Valid() bool {
	for _, lvl := range BloomOrder {
		if l == lvl {
			return true
		}
	}
	return false
}
