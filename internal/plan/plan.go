package plan

import "github.com/baselens/baselens/internal/features"

// Mention is a single web-platform feature reference as proposed by the
// analysis, before and after resolution. Name is always set; FeatureID is
// filled in (or corrected) by the deduplicator, and Baseline is attached
// when the id is known to the catalog.
type Mention struct {
	Name      string                    `json:"name"`
	FeatureID string                    `json:"featureId,omitempty"`
	Baseline  *features.FeatureBaseline `json:"baseline,omitempty"`
}

// Section is one step of an implementation plan.
type Section struct {
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Features []Mention `json:"webFeatures"`
}

// Plan is an ordered sequence of sections. It lives only for the duration
// of one analysis session and is never persisted.
type Plan struct {
	Sections []Section `json:"plan"`
}

// Stats summarizes one deduplication pass, for diagnostics.
type Stats struct {
	Sections      int `json:"sections"`
	Kept          int `json:"kept"`
	Dropped       int `json:"dropped"`
	Fillers       int `json:"fillers"`
	DistinctIDs   int `json:"distinct_ids"`
	DistinctNames int `json:"distinct_names"`
}

// Result is the output of a deduplication pass: the same sections in the
// same order, each with a deduplicated, minimum-length feature list.
type Result struct {
	Plan  Plan  `json:"plan"`
	Stats Stats `json:"stats"`
}
