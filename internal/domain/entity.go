package domain

// EntityProfile describes a brand or competitor: the canonical name plus the
// aliases and product names that count as mentions of it. Supplied by
// configuration and immutable for the duration of a scoring run; product
// names may be resolved lazily and attached via WithProducts.
type EntityProfile struct {
	CanonicalName string   `yaml:"name" json:"name"`
	Aliases       []string `yaml:"aliases" json:"aliases"`
	ProductNames  []string `yaml:"products" json:"products"`
}

// WithProducts returns a copy of the profile with the given product names
// merged in. Duplicates (case-sensitive) are dropped.
func (p EntityProfile) WithProducts(products []string) EntityProfile {
	seen := make(map[string]struct{}, len(p.ProductNames))
	merged := make([]string, 0, len(p.ProductNames)+len(products))
	for _, name := range p.ProductNames {
		seen[name] = struct{}{}
		merged = append(merged, name)
	}
	for _, name := range products {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		merged = append(merged, name)
	}

	out := p
	out.ProductNames = merged
	return out
}

// MatchTerms returns every term that counts as a mention of this entity:
// canonical name, aliases, and product names, in that order.
func (p EntityProfile) MatchTerms() []string {
	terms := make([]string, 0, 1+len(p.Aliases)+len(p.ProductNames))
	if p.CanonicalName != "" {
		terms = append(terms, p.CanonicalName)
	}
	terms = append(terms, p.Aliases...)
	terms = append(terms, p.ProductNames...)
	return terms
}
