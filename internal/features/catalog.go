package features

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed features.json aliases.yaml
var dataFS embed.FS

// ManualAlias is one entry of the hand-maintained alias table.
type ManualAlias struct {
	Name string `yaml:"name"`
	ID   string `yaml:"id"`
}

type aliasFile struct {
	Aliases []ManualAlias `yaml:"aliases"`
}

// Catalog is the loaded, immutable feature dataset plus its alias index.
// Build one with NewCatalog (or use Default) and treat it as read-only.
type Catalog struct {
	records []Record
	byID    map[string]int
	index   *AliasIndex
}

// NewCatalog decodes the embedded dataset and manual alias table, validates
// them, and builds the alias index. Duplicate record ids and malformed
// entries are errors; dangling depends_on/related references are logged as
// warnings and kept (they only affect navigation, not lookup).
func NewCatalog() (*Catalog, error) {
	raw, err := dataFS.ReadFile("features.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded dataset: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	rawAliases, err := dataFS.ReadFile("aliases.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded alias table: %w", err)
	}

	var af aliasFile
	if err := yaml.Unmarshal(rawAliases, &af); err != nil {
		return nil, fmt.Errorf("decode alias table: %w", err)
	}

	return buildCatalog(records, af.Aliases)
}

// buildCatalog validates records and assembles the catalog. Split out from
// NewCatalog so tests can construct catalogs from literal records.
func buildCatalog(records []Record, manual []ManualAlias) (*Catalog, error) {
	byID := make(map[string]int, len(records))
	for i, rec := range records {
		if rec.ID == "" {
			return nil, fmt.Errorf("record %d has empty id", i)
		}
		if rec.Title == "" {
			return nil, fmt.Errorf("record %q has empty title", rec.ID)
		}
		if _, dup := byID[rec.ID]; dup {
			return nil, fmt.Errorf("duplicate record id %q", rec.ID)
		}
		if !rec.Status.Baseline.IsBool {
			switch BaselineLevel(rec.Status.Baseline.Str) {
			case BaselineHigh, BaselineLow, BaselineUnknown:
			default:
				return nil, fmt.Errorf("record %q has invalid baseline %q", rec.ID, rec.Status.Baseline.Str)
			}
		}
		byID[rec.ID] = i
	}

	// Dangling cross-references render as dead navigation, nothing worse,
	// so they warn instead of failing the load.
	for _, rec := range records {
		for _, ref := range rec.DependsOn {
			if _, ok := byID[ref]; !ok {
				slog.Warn("dangling depends_on reference", "id", rec.ID, "ref", ref)
			}
		}
		for _, ref := range rec.Related {
			if _, ok := byID[ref]; !ok {
				slog.Warn("dangling related reference", "id", rec.ID, "ref", ref)
			}
		}
	}

	for _, m := range manual {
		if m.Name == "" || m.ID == "" {
			return nil, fmt.Errorf("manual alias %+v missing name or id", m)
		}
		if _, ok := byID[m.ID]; !ok {
			slog.Warn("manual alias targets unknown id", "name", m.Name, "id", m.ID)
		}
	}

	c := &Catalog{
		records: records,
		byID:    byID,
	}
	c.index = buildAliasIndex(records, manual)
	return c, nil
}

// Record returns the dataset record for id, or nil if the catalog has none.
func (c *Catalog) Record(id string) *Record {
	i, ok := c.byID[id]
	if !ok {
		return nil
	}
	return &c.records[i]
}

// Records returns all records in declaration order. Callers must not mutate.
func (c *Catalog) Records() []Record {
	return c.records
}

// Len returns the number of curated records.
func (c *Catalog) Len() int {
	return len(c.records)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the process-wide catalog built from the embedded data.
// The embedded dataset is compiled in and covered by tests, so a failure
// here is a programmer error and panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := NewCatalog()
		if err != nil {
			panic(fmt.Sprintf("features: embedded dataset is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}
