// Package features holds the curated web-platform feature catalog:
// the dataset records, the alias index used to resolve free-text feature
// names to canonical ids, and the Baseline enrichment projection.
package features

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Browsers is the set of tracked browser keys, in display order.
// Every enriched support map has an entry for each of these.
var Browsers = []string{"chrome", "edge", "firefox", "safari"}

// BaselineLevel is the three-valued Baseline classification.
type BaselineLevel string

const (
	// BaselineHigh means the feature is widely available across browsers.
	BaselineHigh BaselineLevel = "high"

	// BaselineLow means the feature is newly or narrowly available.
	BaselineLow BaselineLevel = "low"

	// BaselineUnknown means the feature has no Baseline classification.
	BaselineUnknown BaselineLevel = "unknown"
)

// BaselineFlag is the raw baseline field of a dataset record. The upstream
// data encodes it as either a JSON bool (true = widely available,
// false = not baseline) or a string level ("low", "high", "unknown").
type BaselineFlag struct {
	IsBool bool
	Bool   bool
	Str    string
}

// UnmarshalJSON accepts a bool or a string.
func (b *BaselineFlag) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case bool:
		b.IsBool = true
		b.Bool = val
	case string:
		b.IsBool = false
		b.Str = val
	default:
		return fmt.Errorf("baseline must be bool or string, got %T", v)
	}
	return nil
}

// MarshalJSON writes the flag back in its original shape.
func (b BaselineFlag) MarshalJSON() ([]byte, error) {
	if b.IsBool {
		return json.Marshal(b.Bool)
	}
	return json.Marshal(b.Str)
}

// Level maps the raw flag to the three-valued classification:
// bool true -> high, bool false -> low, string passed through.
// An unrecognized string maps to unknown.
func (b BaselineFlag) Level() BaselineLevel {
	if b.IsBool {
		if b.Bool {
			return BaselineHigh
		}
		return BaselineLow
	}
	switch BaselineLevel(b.Str) {
	case BaselineHigh, BaselineLow, BaselineUnknown:
		return BaselineLevel(b.Str)
	default:
		return BaselineUnknown
	}
}

// SupportValue is a per-browser support entry. The upstream data encodes it
// as a version string ("57"), a bare number (57), or a bool.
type SupportValue struct {
	IsBool  bool
	Bool    bool
	Version string
}

// UnmarshalJSON accepts a string, a number, or a bool.
func (s *SupportValue) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch val := v.(type) {
	case bool:
		s.IsBool = true
		s.Bool = val
	case string:
		s.Version = val
	case json.Number:
		s.Version = val.String()
	default:
		return fmt.Errorf("support value must be string, number, or bool, got %T", v)
	}
	return nil
}

// MarshalJSON writes the value back in its original shape.
func (s SupportValue) MarshalJSON() ([]byte, error) {
	if s.IsBool {
		return json.Marshal(s.Bool)
	}
	return json.Marshal(s.Version)
}

// Supported reports whether this entry means "supported": a version value
// means yes, an explicit bool is used as-is.
func (s SupportValue) Supported() bool {
	if s.IsBool {
		return s.Bool
	}
	return s.Version != ""
}

// Display returns the raw value for presentation ("57", "true", "false").
func (s SupportValue) Display() string {
	if s.IsBool {
		if s.Bool {
			return "true"
		}
		return "false"
	}
	return s.Version
}

// RecordStatus is the status block of a dataset record.
type RecordStatus struct {
	Baseline         BaselineFlag            `json:"baseline"`
	BaselineYear     int                     `json:"baseline_year,omitempty"`
	BaselineLowDate  string                  `json:"baseline_low_date,omitempty"`
	BaselineHighDate string                  `json:"baseline_high_date,omitempty"`
	Support          map[string]SupportValue `json:"support"`
}

// Record is a canonical dataset entry. The id is a stable dotted-hierarchical
// key (e.g. "css.properties.grid") and acts as the primary key. All metadata
// fields are optional; the record set is immutable once loaded.
type Record struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Aliases     []string     `json:"aliases,omitempty"`
	Description string       `json:"description,omitempty"`
	Group       string       `json:"group,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Status      RecordStatus `json:"status"`

	Experimental      bool     `json:"experimental,omitempty"`
	Deprecated        bool     `json:"deprecated,omitempty"`
	SecureContext     bool     `json:"secure_context,omitempty"`
	Permissions       []string `json:"permissions,omitempty"`
	RequiresIsolation bool     `json:"requires_isolation,omitempty"`
	BehindFlag        bool     `json:"behind_flag,omitempty"`
	PartialSupport    bool     `json:"partial_support,omitempty"`

	DependsOn []string `json:"depends_on,omitempty"`
	Related   []string `json:"related,omitempty"`

	SpecURL string `json:"spec_url,omitempty"`
	MDNURL  string `json:"mdn_url,omitempty"`
}
