package domain

import (
	"fmt"
	"time"
)

// RawAnswerRecord is one AI-generated answer plus its metadata, the atomic
// unit of pipeline work. Deposited by the upstream collector and never
// mutated here.
type RawAnswerRecord struct {
	ID             string    `json:"id"`
	SourceProvider string    `json:"source_provider"`
	QuestionText   string    `json:"question_text"`
	AnswerText     string    `json:"answer_text"`
	CitedURLs      []string  `json:"cited_urls"`
	BrandRef       string    `json:"brand_ref"`
	CompetitorRefs []string  `json:"competitor_refs"`
	CreatedAt      time.Time `json:"created_at"`
}

// Validate checks the fields the pipeline cannot work without.
// Empty answer text is valid input (scores to zero), a missing ID or
// brand reference is not.
func (r *RawAnswerRecord) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("record ID is required: %w", ErrValidation)
	}
	if r.BrandRef == "" {
		return fmt.Errorf("record %s: brand ref is required: %w", r.ID, ErrValidation)
	}
	return nil
}
