package mention

import "math"

// Weighting of positional prominence versus mention density. 60/40 favors
// where an entity appears over how often.
const (
	prominenceWeight = 0.6
	densityWeight    = 0.4
)

// Density is mentions per word. Zero when totalWords is zero.
func Density(mentions, totalWords int) float64 {
	if totalWords <= 0 {
		return 0
	}
	return float64(mentions) / float64(totalWords)
}

// Prominence rewards early mentions, log-dampened so that position 1 vs 2
// matters more than position 50 vs 51. firstPosition is 1-indexed; 0 (no
// occurrence) yields 0.
func Prominence(firstPosition int) float64 {
	if firstPosition <= 0 {
		return 0
	}
	return 1 / math.Log10(float64(firstPosition)+9)
}

// VisibilityIndex combines prominence and density into a [0, 1] score.
// Never returns NaN; every divide-by-zero path is 0.
func VisibilityIndex(set OccurrenceSet, totalWords int) float64 {
	score := prominenceWeight*Prominence(set.FirstPosition()) +
		densityWeight*Density(set.TotalMentions, totalWords)
	return math.Max(0, math.Min(1, score))
}

// ShareOfAnswers is the percentage of total mentions attributable to the
// primary entity versus the comparison aggregate. Zero denominator yields
// 0, not NaN.
func ShareOfAnswers(primaryMentions, secondaryMentions int) float64 {
	total := primaryMentions + secondaryMentions
	if total <= 0 {
		return 0
	}
	return float64(primaryMentions) / float64(total) * 100
}
