package domain

import "testing"

func TestLabelForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  SentimentLabel
	}{
		{1.0, SentimentPositive},
		{0.16, SentimentPositive},
		{0.15, SentimentNeutral},
		{0, SentimentNeutral},
		{-0.15, SentimentNeutral},
		{-0.16, SentimentNegative},
		{-1.0, SentimentNegative},
	}
	for _, tt := range tests {
		if got := LabelForScore(tt.score); got != tt.want {
			t.Errorf("LabelForScore(%f) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{2.5, 1},
		{-3, -1},
		{0.4, 0.4},
	}
	for _, tt := range tests {
		if got := ClampScore(tt.in); got != tt.want {
			t.Errorf("ClampScore(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestScore100_Boundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  int
	}{
		{-1, 1},
		{0, 51}, // round(0.5*99)+1
		{1, 100},
	}
	for _, tt := range tests {
		if got := Score100(tt.score); got != tt.want {
			t.Errorf("Score100(%f) = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestNeutralSentiment(t *testing.T) {
	s := NeutralSentiment("rec-1", "Acme")
	if s.Label != SentimentNeutral || s.Score != 0 {
		t.Fatalf("unexpected neutral result: %+v", s)
	}
	if !s.ProviderExhausted {
		t.Fatal("expected ProviderExhausted flag")
	}
}

func TestRecordValidate(t *testing.T) {
	tests := []struct {
		name    string
		record  RawAnswerRecord
		wantErr bool
	}{
		{"valid", RawAnswerRecord{ID: "r1", BrandRef: "Acme"}, false},
		{"empty answer text is valid", RawAnswerRecord{ID: "r1", BrandRef: "Acme", AnswerText: ""}, false},
		{"missing id", RawAnswerRecord{BrandRef: "Acme"}, true},
		{"missing brand", RawAnswerRecord{ID: "r1"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
