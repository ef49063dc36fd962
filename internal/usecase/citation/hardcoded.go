package citation

import "github.com/brandlens/brandlens/internal/domain"

// defaultTable maps well-known domains to categories. Deterministic,
// classified with full confidence. Extended (and overridden) by the
// citation.hardcoded config map.
var defaultTable = map[string]domain.Category{
	// Editorial
	"nytimes.com":      domain.CategoryEditorial,
	"theguardian.com":  domain.CategoryEditorial,
	"bbc.com":          domain.CategoryEditorial,
	"bbc.co.uk":        domain.CategoryEditorial,
	"reuters.com":      domain.CategoryEditorial,
	"bloomberg.com":    domain.CategoryEditorial,
	"techcrunch.com":   domain.CategoryEditorial,
	"theverge.com":     domain.CategoryEditorial,
	"wired.com":        domain.CategoryEditorial,
	"forbes.com":       domain.CategoryEditorial,
	"cnet.com":         domain.CategoryEditorial,
	"zdnet.com":        domain.CategoryEditorial,

	// Reference. Wiki properties are covered by the heuristic tier.
	"britannica.com": domain.CategoryReference,
	"archive.org":    domain.CategoryReference,

	// UGC
	"reddit.com":        domain.CategoryUGC,
	"quora.com":         domain.CategoryUGC,
	"stackoverflow.com": domain.CategoryUGC,
	"trustpilot.com":    domain.CategoryUGC,
	"g2.com":            domain.CategoryUGC,
	"capterra.com":      domain.CategoryUGC,
	"medium.com":        domain.CategoryUGC,

	// Social
	"twitter.com":   domain.CategorySocial,
	"x.com":         domain.CategorySocial,
	"facebook.com":  domain.CategorySocial,
	"instagram.com": domain.CategorySocial,
	"linkedin.com":  domain.CategorySocial,
	"youtube.com":   domain.CategorySocial,
	"tiktok.com":    domain.CategorySocial,
}
