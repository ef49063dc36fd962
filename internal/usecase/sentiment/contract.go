package sentiment

import "context"

// Analysis is the raw provider output before labeling: a score on the
// canonical [-1, 1] scale plus evidence sentences.
type Analysis struct {
	Score            float64
	PositiveEvidence []string
	NegativeEvidence []string
}

// Provider is one interchangeable sentiment backend. Providers are tried
// in priority order; any error advances the chain to the next one.
type Provider interface {
	Name() string
	Analyze(ctx context.Context, text, entity string) (Analysis, error)
}
