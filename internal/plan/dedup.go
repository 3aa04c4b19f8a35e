package plan

import (
	"fmt"
	"strings"

	"github.com/baselens/baselens/internal/features"
)

// Deduplicator enforces plan-wide feature uniqueness. Analysis output tends
// to mention the same platform feature in several sections under slightly
// different phrasings; one pass through Process resolves every mention to a
// canonical id, drops repeats and near-duplicate name variants, and pads
// thin sections from the demo pool.
type Deduplicator struct {
	catalog *features.Catalog
	cfg     Config
}

// NewDeduplicator creates a deduplicator over the given catalog.
func NewDeduplicator(catalog *features.Catalog, cfg Config) (*Deduplicator, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dedup config: %w", err)
	}
	return &Deduplicator{catalog: catalog, cfg: cfg}, nil
}

// usedName is one consumed name in both comparison forms.
type usedName struct {
	norm     string // normalized (lowercase, [a-z0-9\s-] only)
	stripped string // normalized with punctuation removed as well
}

// usedSet is the accumulator threaded through a deduplication pass. It is
// scoped to a single Process call; deduplication is strictly sequential
// and order-dependent, so survivors mark the set immediately and later
// mentions (same section or not) see them as used.
type usedSet struct {
	ids     map[string]struct{}
	nameSet map[string]struct{}
	names   []usedName
}

func newUsedSet() *usedSet {
	return &usedSet{
		ids:     make(map[string]struct{}),
		nameSet: make(map[string]struct{}),
	}
}

func (u *usedSet) markID(id string) {
	u.ids[id] = struct{}{}
}

func (u *usedSet) markName(norm string) {
	if _, dup := u.nameSet[norm]; dup {
		return
	}
	u.nameSet[norm] = struct{}{}
	u.names = append(u.names, usedName{norm: norm, stripped: features.StripPunctuation(norm)})
}

func (u *usedSet) idUsed(id string) bool {
	_, ok := u.ids[id]
	return ok
}

// nameUsed reports whether norm is already consumed: an exact hit, or a
// "variation" of a used name. Variation means substring containment in
// either direction, checked on the raw normalized strings and again on
// punctuation-stripped copies; the second pass catches punctuation-only
// differences like "optional chaining" vs "optional chaining (?.)".
func (u *usedSet) nameUsed(norm string) bool {
	if norm == "" {
		return false
	}
	if _, ok := u.nameSet[norm]; ok {
		return true
	}
	stripped := features.StripPunctuation(norm)
	for _, used := range u.names {
		if strings.Contains(norm, used.norm) || strings.Contains(used.norm, norm) {
			return true
		}
		if stripped != "" && used.stripped != "" &&
			(strings.Contains(stripped, used.stripped) || strings.Contains(used.stripped, stripped)) {
			return true
		}
	}
	return false
}

// Process deduplicates a freshly obtained plan. Sections are folded in
// original order with the used-set as the explicit accumulator; the output
// keeps the same sections, each with a deduplicated feature list of at
// least MinSectionFeatures mentions (pool permitting), kept mentions first
// and fillers after.
func (d *Deduplicator) Process(p Plan) Result {
	used := newUsedSet()

	out := Plan{Sections: make([]Section, 0, len(p.Sections))}
	stats := Stats{Sections: len(p.Sections)}

	for i, sec := range p.Sections {
		processed := d.processSection(sec, i, used, &stats)
		out.Sections = append(out.Sections, processed)
	}

	stats.DistinctIDs = len(used.ids)
	stats.DistinctNames = len(used.names)
	return Result{Plan: out, Stats: stats}
}

func (d *Deduplicator) processSection(sec Section, sectionIndex int, used *usedSet, stats *Stats) Section {
	kept := make([]Mention, 0, len(sec.Features))

	for _, m := range sec.Features {
		name := strings.TrimSpace(m.Name)
		if name == "" && m.FeatureID == "" {
			stats.Dropped++
			continue
		}

		// Prefer the explicit id; otherwise resolve by name.
		id := m.FeatureID
		if id == "" {
			id, _ = d.catalog.ResolveFeatureID(name)
		}
		norm := features.NormalizeFeatureName(name)

		if (id != "" && used.idUsed(id)) || used.nameUsed(norm) {
			stats.Dropped++
			continue
		}

		enriched := Mention{Name: name, FeatureID: id}
		if id != "" {
			enriched.Baseline = d.catalog.BaselineStatus(id)
			used.markID(id)
		}
		// An unresolvable mention still consumes its name, so the same
		// string cannot reappear in a later section.
		if norm != "" {
			used.markName(norm)
		}
		kept = append(kept, enriched)
		stats.Kept++
	}

	if d.cfg.EnableFillers {
		for fillerIndex := 0; len(kept) < d.cfg.MinSectionFeatures; fillerIndex++ {
			filler, ok := pickFiller(sectionIndex, fillerIndex, used)
			if !ok {
				// Pool exhausted; the section stays short.
				break
			}
			filler.Baseline = d.catalog.BaselineStatus(filler.FeatureID)
			used.markID(filler.FeatureID)
			used.markName(features.NormalizeFeatureName(filler.Name))
			kept = append(kept, filler)
			stats.Fillers++
		}
	}

	return Section{Title: sec.Title, Content: sec.Content, Features: kept}
}

// pickFiller chooses the next unused demo feature, starting at
// (sectionIndex + fillerIndex) mod poolSize and advancing by one on each
// collision with the used-set, for at most poolSize probes.
func pickFiller(sectionIndex, fillerIndex int, used *usedSet) (Mention, bool) {
	size := len(fillerPool)
	start := (sectionIndex + fillerIndex) % size
	for attempt := 0; attempt < size; attempt++ {
		f := fillerPool[(start+attempt)%size]
		if used.idUsed(f.ID) || used.nameUsed(features.NormalizeFeatureName(f.Name)) {
			continue
		}
		return Mention{Name: f.Name, FeatureID: f.ID}, true
	}
	return Mention{}, false
}
