package features

import (
	"regexp"
	"strings"
)

var (
	normalizeStripRegex = regexp.MustCompile(`[^a-z0-9\s-]+`)
	collapseSpacesRegex = regexp.MustCompile(`\s+`)
	alnumSpaceOnlyRegex = regexp.MustCompile(`[^a-z0-9\s]+`)
)

// NormalizeFeatureName canonicalizes a free-text feature name for index
// lookups: lowercase, drop everything outside [a-z0-9\s-], collapse runs
// of whitespace, trim.
func NormalizeFeatureName(name string) string {
	s := strings.ToLower(name)
	s = normalizeStripRegex.ReplaceAllString(s, "")
	s = collapseSpacesRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// StripPunctuation reduces an already-normalized name further, to letters,
// digits and spaces only. The deduplicator compares names in this form as
// well, to catch punctuation-only variants ("web-share" vs "web share").
func StripPunctuation(normalized string) string {
	s := alnumSpaceOnlyRegex.ReplaceAllString(normalized, "")
	s = collapseSpacesRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

type aliasEntry struct {
	alias string // normalized
	id    string
}

// AliasIndex maps normalized alias strings to canonical feature ids.
// It is built once and never mutated. The ordered entry list drives the
// fuzzy containment scan: manual aliases first (file order), then dataset
// titles and aliases in dataset-declaration order, so the earliest declared
// alias wins when several would match.
type AliasIndex struct {
	exact   map[string]string
	ordered []aliasEntry
}

// buildAliasIndex assembles the index from dataset titles/aliases and the
// manual table. Exact-map precedence: dataset entries are inserted first,
// manual entries second, so a manual alias overrides a colliding dataset
// alias. That is deliberate: the manual table exists to correct the
// dataset's naming, not the other way around.
func buildAliasIndex(records []Record, manual []ManualAlias) *AliasIndex {
	idx := &AliasIndex{
		exact: make(map[string]string),
	}

	for _, m := range manual {
		norm := NormalizeFeatureName(m.Name)
		if norm == "" {
			continue
		}
		idx.ordered = append(idx.ordered, aliasEntry{alias: norm, id: m.ID})
	}

	for _, rec := range records {
		for _, name := range append([]string{rec.Title}, rec.Aliases...) {
			norm := NormalizeFeatureName(name)
			if norm == "" {
				continue
			}
			idx.ordered = append(idx.ordered, aliasEntry{alias: norm, id: rec.ID})
			if _, exists := idx.exact[norm]; !exists {
				idx.exact[norm] = rec.ID
			}
		}
	}

	// Manual entries overwrite dataset entries on exact-key collision.
	for _, m := range manual {
		norm := NormalizeFeatureName(m.Name)
		if norm == "" {
			continue
		}
		idx.exact[norm] = m.ID
	}

	return idx
}

// Resolve maps a normalized name to a feature id. Exact lookup first; on a
// miss, a linear containment scan over the ordered entries where the alias
// being a substring of the input, or the input a substring of the alias,
// counts as a match. First hit wins; no ranking by length or specificity.
func (idx *AliasIndex) Resolve(normalized string) (string, bool) {
	if normalized == "" {
		return "", false
	}
	if id, ok := idx.exact[normalized]; ok {
		return id, true
	}
	for _, e := range idx.ordered {
		if strings.Contains(normalized, e.alias) || strings.Contains(e.alias, normalized) {
			return e.id, true
		}
	}
	return "", false
}

// ResolveFeatureID resolves a free-text feature name to a canonical dataset
// id. The empty result means "unknown feature" and is not an error; callers
// render those as Baseline-unknown.
func (c *Catalog) ResolveFeatureID(name string) (string, bool) {
	return c.index.Resolve(NormalizeFeatureName(name))
}
