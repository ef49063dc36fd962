package mention

import (
	"sort"
	"strings"

	"github.com/brandlens/brandlens/internal/domain"
)

// Occurrence is a single located mention.
type Occurrence struct {
	TokenPosition int // 1-indexed
}

// OccurrenceSet holds every located mention of one entity in one answer.
// Ephemeral: recomputed per record, never persisted directly.
type OccurrenceSet struct {
	Entity        string
	Occurrences   []Occurrence
	TotalMentions int
}

// FirstPosition returns the 1-indexed position of the first occurrence,
// or 0 when there is none.
func (s OccurrenceSet) FirstPosition() int {
	if len(s.Occurrences) == 0 {
		return 0
	}
	return s.Occurrences[0].TokenPosition
}

// FindOccurrences locates every mention of the entity's canonical name,
// aliases, and product names in text. Matching is case-insensitive,
// apostrophe-normalized, and whole-token, with two relaxations: simple
// plural/possessive forms, and substring matches for single-token
// candidates only (multi-word aliases never match partially, to avoid
// false positives). A multi-token match records each covered position.
//
// Empty text yields an empty set, not an error. Overlap with another
// entity's terms is allowed; each entity is scanned independently.
func FindOccurrences(text string, profile domain.EntityProfile) OccurrenceSet {
	set := OccurrenceSet{Entity: profile.CanonicalName}

	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return set
	}

	normalized := make([]string, len(tokens))
	for i, tok := range tokens {
		normalized[i] = normalizeToken(tok)
	}

	hit := make(map[int]struct{})
	for _, term := range profile.MatchTerms() {
		matchTerm(normalized, term, hit)
	}

	positions := make([]int, 0, len(hit))
	for pos := range hit {
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	set.Occurrences = make([]Occurrence, len(positions))
	for i, pos := range positions {
		set.Occurrences[i] = Occurrence{TokenPosition: pos}
	}
	set.TotalMentions = len(positions)
	return set
}

// matchTerm scans the normalized token stream for one candidate term and
// records 1-indexed positions of every covered token into hit.
func matchTerm(normalized []string, term string, hit map[int]struct{}) {
	candTokens := Tokenize(term)
	if len(candTokens) == 0 {
		return
	}
	cand := make([]string, len(candTokens))
	for i, tok := range candTokens {
		cand[i] = normalizeToken(tok)
	}

	if len(cand) == 1 {
		for i, tok := range normalized {
			if tokenMatches(tok, cand[0]) || strings.Contains(tok, cand[0]) {
				hit[i+1] = struct{}{}
			}
		}
		return
	}

	for i := 0; i+len(cand) <= len(normalized); i++ {
		matched := true
		for j, c := range cand {
			if !tokenMatches(normalized[i+j], c) {
				matched = false
				break
			}
		}
		if matched {
			for j := range cand {
				hit[i+j+1] = struct{}{}
			}
		}
	}
}
