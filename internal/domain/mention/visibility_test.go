package mention

import (
	"math"
	"testing"

	"github.com/brandlens/brandlens/internal/domain"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool { return math.Abs(a-b) < tolerance }

func TestVisibilityIndex_Golden(t *testing.T) {
	// "Acme is the best. Acme Pro costs $10." -> 8 words, mentions at 1,5,6.
	profile := domain.EntityProfile{CanonicalName: "Acme", ProductNames: []string{"Acme Pro"}}
	text := "Acme is the best. Acme Pro costs $10."

	set := FindOccurrences(text, profile)
	words := CountWords(text)

	if d := Density(set.TotalMentions, words); !almostEqual(d, 0.375) {
		t.Fatalf("density = %f, want 0.375", d)
	}
	if p := Prominence(set.FirstPosition()); !almostEqual(p, 1.0) {
		t.Fatalf("prominence = %f, want 1.0", p)
	}
	if v := VisibilityIndex(set, words); !almostEqual(v, 0.75) {
		t.Fatalf("visibility = %f, want 0.75", v)
	}
}

func TestProminence(t *testing.T) {
	tests := []struct {
		name     string
		position int
		want     float64
	}{
		{"first position is 1.0", 1, 1.0},
		{"no occurrence is 0", 0, 0},
		{"negative is 0", -3, 0},
		{"position 91", 91, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Prominence(tt.position); !almostEqual(got, tt.want) {
				t.Fatalf("Prominence(%d) = %f, want %f", tt.position, got, tt.want)
			}
		})
	}
}

func TestProminence_EarlyPositionsDominate(t *testing.T) {
	earlyDelta := Prominence(1) - Prominence(2)
	lateDelta := Prominence(50) - Prominence(51)
	if earlyDelta <= lateDelta {
		t.Fatalf("expected log dampening: delta(1,2)=%f must exceed delta(50,51)=%f",
			earlyDelta, lateDelta)
	}
}

func TestDensity_ZeroWords(t *testing.T) {
	if got := Density(5, 0); got != 0 {
		t.Fatalf("Density with zero words = %f, want 0", got)
	}
}

func TestVisibilityIndex_Bounds(t *testing.T) {
	tests := []struct {
		name       string
		positions  []int
		totalWords int
	}{
		{"no occurrences", nil, 100},
		{"empty text", nil, 0},
		{"single early mention", []int{1}, 1},
		{"dense mentions", []int{1, 2, 3, 4}, 4},
		{"late mention", []int{500}, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := OccurrenceSet{TotalMentions: len(tt.positions)}
			for _, p := range tt.positions {
				set.Occurrences = append(set.Occurrences, Occurrence{TokenPosition: p})
			}
			v := VisibilityIndex(set, tt.totalWords)
			if math.IsNaN(v) || v < 0 || v > 1 {
				t.Fatalf("visibility out of bounds: %f", v)
			}
		})
	}
}

func TestShareOfAnswers(t *testing.T) {
	tests := []struct {
		name               string
		primary, secondary int
		want               float64
	}{
		{"even split", 5, 5, 50},
		{"all primary", 3, 0, 100},
		{"all secondary", 0, 7, 0},
		{"zero denominator", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShareOfAnswers(tt.primary, tt.secondary)
			if !almostEqual(got, tt.want) {
				t.Fatalf("ShareOfAnswers(%d, %d) = %f, want %f",
					tt.primary, tt.secondary, got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Fatalf("share out of bounds: %f", got)
			}
		})
	}
}
