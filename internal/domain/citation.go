package domain

import (
	"net/url"
	"strings"
)

// CitationCategory is the classification of a cited domain. Domain-keyed,
// shared across records, and append-only: once a domain is classified it is
// reused for every future lookup.
type CitationCategory struct {
	Domain     string               `json:"domain"`
	Category   Category             `json:"category"`
	PageName   string               `json:"page_name,omitempty"`
	Confidence float64              `json:"confidence"`
	Source     ClassificationSource `json:"source"`
}

// Category is the fixed taxonomy for cited domains.
type Category string

// Citation categories.
const (
	CategoryEditorial     Category = "editorial"
	CategoryCorporate     Category = "corporate"
	CategoryReference     Category = "reference"
	CategoryUGC           Category = "ugc"
	CategorySocial        Category = "social"
	CategoryInstitutional Category = "institutional"
	CategoryOther         Category = "other"
)

// ValidCategory reports whether c is a member of the taxonomy.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryEditorial, CategoryCorporate, CategoryReference,
		CategoryUGC, CategorySocial, CategoryInstitutional, CategoryOther:
		return true
	}
	return false
}

// ClassificationSource records which tier produced a classification.
type ClassificationSource string

// Classification sources, cheapest tier first. SourceFallback marks the
// degraded result returned when the AI tier fails.
const (
	SourceCache     ClassificationSource = "cache"
	SourceHardcoded ClassificationSource = "hardcoded"
	SourceHeuristic ClassificationSource = "heuristic"
	SourceAI        ClassificationSource = "ai"
	SourceFallback  ClassificationSource = "heuristic-fallback"
)

// DomainOf extracts the normalized domain from a URL string. Empty when
// the URL has no usable host.
func DomainOf(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	host := u.Hostname()
	if host == "" && !strings.Contains(raw, "://") {
		// Bare domains like "en.wikipedia.org/wiki/Acme" parse as paths.
		if u, err = url.Parse("https://" + strings.TrimSpace(raw)); err == nil {
			host = u.Hostname()
		}
	}
	return NormalizeDomain(host)
}

// NormalizeDomain lowercases and strips a leading www.
func NormalizeDomain(domainName string) string {
	d := strings.ToLower(strings.TrimSpace(domainName))
	d = strings.TrimPrefix(d, "www.")
	return d
}

// CitationDomains extracts distinct normalized domains from cited URLs in
// first-seen order.
func CitationDomains(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, raw := range urls {
		d := DomainOf(raw)
		if d == "" {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}
