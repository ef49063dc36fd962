package sentiment

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestChunked_ShortTextPassesThrough(t *testing.T) {
	inner := &mockProvider{name: "legacy", result: Analysis{Score: 0.4}}
	p := NewChunkedProvider(inner, 1000)

	res, err := p.Analyze(context.Background(), "Short text.", "Acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Score != 0.4 || inner.calls != 1 {
		t.Errorf("score=%f calls=%d", res.Score, inner.calls)
	}
}

func TestChunked_SplitsBySentenceCap(t *testing.T) {
	// 30 sentences over a tiny char limit forces chunking; the 12-sentence
	// cap bounds every call.
	var b strings.Builder
	for i := 0; i < 30; i++ {
		b.WriteString("Acme makes a fine product. ")
	}
	inner := &mockProvider{name: "legacy", result: Analysis{Score: 0.5}}
	p := NewChunkedProvider(inner, 200)

	res, err := p.Analyze(context.Background(), b.String(), "Acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls < 2 {
		t.Fatalf("expected multiple chunk calls, got %d", inner.calls)
	}
	for i, text := range inner.texts {
		if n := len(SplitSentences(text)); n > maxSentencesPerChunk {
			t.Errorf("chunk %d has %d sentences, cap is %d", i, n, maxSentencesPerChunk)
		}
	}
	if math.Abs(res.Score-0.5) > 1e-9 {
		t.Errorf("averaged score = %f, want 0.5", res.Score)
	}
}

func TestChunked_AveragesChunkScores(t *testing.T) {
	scores := []float64{1.0, 0.0, -0.4}
	idx := 0
	inner := &scriptedProvider{fn: func() (Analysis, error) {
		s := scores[idx]
		idx++
		return Analysis{Score: s}, nil
	}}
	p := NewChunkedProvider(inner, 10)

	// Three sentences, each over the char limit: one chunk each.
	text := "This sentence is long enough. Another long enough sentence here. And one more to close things."
	res, err := p.Analyze(context.Background(), text, "Acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := (1.0 + 0.0 - 0.4) / 3
	if math.Abs(res.Score-want) > 1e-9 {
		t.Errorf("score = %f, want %f", res.Score, want)
	}
}

func TestChunked_ChunkErrorPropagates(t *testing.T) {
	inner := &mockProvider{name: "legacy", err: errors.New("quota")}
	p := NewChunkedProvider(inner, 10)

	_, err := p.Analyze(context.Background(), "One long sentence. Two long sentences.", "Acme")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("First one. Second one! Third one? Trailing")
	if len(got) != 4 {
		t.Fatalf("got %d sentences: %v", len(got), got)
	}
	if got[0] != "First one" || got[3] != "Trailing" {
		t.Errorf("unexpected sentences: %v", got)
	}
}

// scriptedProvider returns scripted results per call.
type scriptedProvider struct {
	fn func() (Analysis, error)
}

func (s *scriptedProvider) Name() string { return "scripted" }

func (s *scriptedProvider) Analyze(_ context.Context, _, _ string) (Analysis, error) {
	return s.fn()
}
