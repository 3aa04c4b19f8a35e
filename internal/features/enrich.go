package features

import (
	"strings"

	"golang.org/x/mod/semver"
)

// FeatureBaseline is the display-ready Baseline snapshot for one feature.
// It is a read-only projection of a dataset record: derived status and
// support booleans plus the record's descriptive metadata echoed verbatim.
// Snapshots are rebuilt per lookup and never cached or mutated.
type FeatureBaseline struct {
	FeatureID   string          `json:"featureId"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Status      BaselineLevel   `json:"status"`
	Support     map[string]bool `json:"support"`
	// Versions keeps the raw per-browser value ("57", "true", "false")
	// for display next to the derived Support booleans.
	Versions map[string]string `json:"versions"`

	Group string   `json:"group,omitempty"`
	Tags  []string `json:"tags,omitempty"`

	Experimental      bool     `json:"experimental,omitempty"`
	Deprecated        bool     `json:"deprecated,omitempty"`
	SecureContext     bool     `json:"secureContext,omitempty"`
	Permissions       []string `json:"permissions,omitempty"`
	RequiresIsolation bool     `json:"requiresIsolation,omitempty"`
	BehindFlag        bool     `json:"behindFlag,omitempty"`
	PartialSupport    bool     `json:"partialSupport,omitempty"`

	DependsOn []string `json:"dependsOn,omitempty"`
	Related   []string `json:"related,omitempty"`

	BaselineYear     int    `json:"baselineYear,omitempty"`
	BaselineLowDate  string `json:"baselineLowDate,omitempty"`
	BaselineHighDate string `json:"baselineHighDate,omitempty"`

	SpecURL string `json:"specUrl,omitempty"`
	MDNURL  string `json:"mdnUrl,omitempty"`
}

// BaselineStatus looks up a feature id and materializes its Baseline
// snapshot. Ids absent from the curated dataset fall back to the legacy
// table; ids in neither return nil, meaning "unknown", never an error.
func (c *Catalog) BaselineStatus(id string) *FeatureBaseline {
	rec := c.Record(id)
	if rec == nil {
		rec = legacyRecord(id)
	}
	if rec == nil {
		return nil
	}
	return snapshot(rec)
}

// BaselineStatusByName resolves a free-text name and returns its snapshot,
// or nil when the name does not resolve.
func (c *Catalog) BaselineStatusByName(name string) *FeatureBaseline {
	id, ok := c.ResolveFeatureID(name)
	if !ok {
		return nil
	}
	return c.BaselineStatus(id)
}

func snapshot(rec *Record) *FeatureBaseline {
	support := make(map[string]bool, len(Browsers))
	versions := make(map[string]string, len(Browsers))
	for _, browser := range Browsers {
		val, ok := rec.Status.Support[browser]
		if !ok {
			support[browser] = false
			versions[browser] = "false"
			continue
		}
		support[browser] = val.Supported()
		versions[browser] = val.Display()
	}

	return &FeatureBaseline{
		FeatureID:         rec.ID,
		Title:             rec.Title,
		Description:       rec.Description,
		Status:            rec.Status.Baseline.Level(),
		Support:           support,
		Versions:          versions,
		Group:             rec.Group,
		Tags:              rec.Tags,
		Experimental:      rec.Experimental,
		Deprecated:        rec.Deprecated,
		SecureContext:     rec.SecureContext,
		Permissions:       rec.Permissions,
		RequiresIsolation: rec.RequiresIsolation,
		BehindFlag:        rec.BehindFlag,
		PartialSupport:    rec.PartialSupport,
		DependsOn:         rec.DependsOn,
		Related:           rec.Related,
		BaselineYear:      rec.Status.BaselineYear,
		BaselineLowDate:   rec.Status.BaselineLowDate,
		BaselineHighDate:  rec.Status.BaselineHighDate,
		SpecURL:           rec.SpecURL,
		MDNURL:            rec.MDNURL,
	}
}

// SupportedIn reports whether the feature is available in the given browser
// at the given version. Version strings compare numerically via semver
// ("10.1" >= "10"); a bool support entry ignores the version argument.
func (f *FeatureBaseline) SupportedIn(browser, version string) bool {
	if !f.Support[browser] {
		return false
	}
	minVersion := f.Versions[browser]
	if minVersion == "" || minVersion == "true" {
		return true
	}
	have := canonVersion(version)
	want := canonVersion(minVersion)
	if !semver.IsValid(have) || !semver.IsValid(want) {
		// Unparseable versions fall back to the support boolean.
		return true
	}
	return semver.Compare(have, want) >= 0
}

// UnsupportedBrowsers lists the tracked browsers without support, in
// display order.
func (f *FeatureBaseline) UnsupportedBrowsers() []string {
	var out []string
	for _, browser := range Browsers {
		if !f.Support[browser] {
			out = append(out, browser)
		}
	}
	return out
}

// canonVersion turns a browser version like "10.1" into a semver-comparable
// string ("v10.1").
func canonVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return v
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
