package domain

import "math"

// SentimentLabel is the discrete valence of a sentiment score.
type SentimentLabel string

// Sentiment labels.
const (
	SentimentPositive SentimentLabel = "POSITIVE"
	SentimentNegative SentimentLabel = "NEGATIVE"
	SentimentNeutral  SentimentLabel = "NEUTRAL"
)

// Label thresholds: score > 0.15 is positive, score < -0.15 is negative.
const (
	positiveThreshold = 0.15
	negativeThreshold = -0.15
)

// MaxEvidenceSentences caps evidence lists for UI display.
const MaxEvidenceSentences = 3

// SentimentResult is the scored valence of one answer toward one entity.
// Score is always on the canonical [-1, 1] scale; any 1-100 representation
// is a presentation-layer transform applied via Score100 at the boundary.
type SentimentResult struct {
	RecordID          string         `json:"record_id"`
	Entity            string         `json:"entity"`
	Label             SentimentLabel `json:"label"`
	Score             float64        `json:"score"`
	PositiveEvidence  []string       `json:"positive_evidence,omitempty"`
	NegativeEvidence  []string       `json:"negative_evidence,omitempty"`
	ProviderExhausted bool           `json:"provider_exhausted,omitempty"`
}

// LabelForScore derives the label from a score. Pure function of the
// thresholds above.
func LabelForScore(score float64) SentimentLabel {
	switch {
	case score > positiveThreshold:
		return SentimentPositive
	case score < negativeThreshold:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// ClampScore forces a score onto the canonical [-1, 1] scale.
func ClampScore(score float64) float64 {
	if math.IsNaN(score) {
		return 0
	}
	return math.Max(-1, math.Min(1, score))
}

// Score100 converts a canonical score to the 1-100 presentation scale.
// The single allowed boundary transform; never used inside the pipeline.
func Score100(score float64) int {
	return int(math.Round(((ClampScore(score)+1)/2)*99)) + 1
}

// NewSentimentResult builds a result from a raw score and evidence:
// clamps the score, derives the label, and caps evidence lists for UI
// display. Both the per-operation path and the consolidated path build
// their results here, keeping the two observationally equivalent.
func NewSentimentResult(recordID, entity string, score float64, positive, negative []string) SentimentResult {
	score = ClampScore(score)
	return SentimentResult{
		RecordID:         recordID,
		Entity:           entity,
		Label:            LabelForScore(score),
		Score:            score,
		PositiveEvidence: capEvidence(positive),
		NegativeEvidence: capEvidence(negative),
	}
}

func capEvidence(sentences []string) []string {
	if len(sentences) > MaxEvidenceSentences {
		return sentences[:MaxEvidenceSentences]
	}
	return sentences
}

// NeutralSentiment is the degraded-but-present result returned when every
// provider in the chain failed. Distinguishable from a computed neutral via
// the ProviderExhausted flag.
func NeutralSentiment(recordID, entity string) SentimentResult {
	return SentimentResult{
		RecordID:          recordID,
		Entity:            entity,
		Label:             SentimentNeutral,
		Score:             0,
		ProviderExhausted: true,
	}
}
