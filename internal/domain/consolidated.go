package domain

// EntityAnalysis is the per-entity slice of a consolidated analysis call:
// product names extracted from the answer plus the entity's sentiment.
type EntityAnalysis struct {
	Entity    string          `json:"entity"`
	Products  []string        `json:"products"`
	Sentiment SentimentResult `json:"sentiment"`
}

// ConsolidatedAnalysisResult bundles product extraction, citation
// categorization, and sentiment for one record, produced by a single LLM
// call. Cached keyed by record ID with a TTL, never durable state.
type ConsolidatedAnalysisResult struct {
	RecordID  string             `json:"record_id"`
	Entities  []EntityAnalysis   `json:"entities"`
	Citations []CitationCategory `json:"citations"`
}

// EntityByName returns the analysis slice for the named entity.
func (r *ConsolidatedAnalysisResult) EntityByName(name string) (EntityAnalysis, bool) {
	for _, e := range r.Entities {
		if e.Entity == name {
			return e, true
		}
	}
	return EntityAnalysis{}, false
}
