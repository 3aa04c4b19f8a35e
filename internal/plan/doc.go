// Package plan models the implementation plan returned by screenshot
// analysis and provides the deduplication engine that cleans it up for
// display: every distinct web-platform feature appears exactly once across
// the whole plan, and every section carries a minimum number of feature
// mentions, padded from a fixed demo pool when the analysis supplied fewer.
package plan
