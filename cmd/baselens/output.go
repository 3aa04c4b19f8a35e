package main

import (
	"fmt"
	"strings"

	"github.com/baselens/baselens/internal/features"
	"github.com/baselens/baselens/internal/plan"
	"github.com/fatih/color"
)

var (
	badgeHigh    = color.New(color.FgGreen, color.Bold)
	badgeLow     = color.New(color.FgYellow, color.Bold)
	badgeUnknown = color.New(color.FgHiBlack, color.Bold)
	headingColor = color.New(color.FgCyan, color.Bold)
)

// formatBadge renders a Baseline level as a short colored badge.
func formatBadge(level features.BaselineLevel) string {
	switch level {
	case features.BaselineHigh:
		return badgeHigh.Sprint("[WIDELY AVAILABLE]")
	case features.BaselineLow:
		return badgeLow.Sprint("[NEWLY AVAILABLE]")
	default:
		return badgeUnknown.Sprint("[UNKNOWN]")
	}
}

// printBaseline prints one feature snapshot in full.
func printBaseline(b *features.FeatureBaseline) {
	fmt.Printf("%s  %s\n", headingColor.Sprint(b.Title), formatBadge(b.Status))
	fmt.Printf("  id: %s\n", b.FeatureID)
	if b.Description != "" {
		fmt.Printf("  %s\n", b.Description)
	}

	var supports []string
	for _, browser := range features.Browsers {
		mark := color.RedString("✗")
		version := ""
		if b.Support[browser] {
			mark = color.GreenString("✓")
			if v := b.Versions[browser]; v != "" && v != "true" {
				version = " " + v + "+"
			}
		}
		supports = append(supports, fmt.Sprintf("%s %s%s", mark, browser, version))
	}
	fmt.Printf("  %s\n", strings.Join(supports, "   "))

	if b.BaselineYear != 0 {
		fmt.Printf("  baseline since %d\n", b.BaselineYear)
	}
	var flags []string
	if b.Experimental {
		flags = append(flags, "experimental")
	}
	if b.Deprecated {
		flags = append(flags, "deprecated")
	}
	if b.SecureContext {
		flags = append(flags, "secure context")
	}
	if b.RequiresIsolation {
		flags = append(flags, "cross-origin isolation")
	}
	if b.BehindFlag {
		flags = append(flags, "behind a flag")
	}
	if len(flags) > 0 {
		fmt.Printf("  notes: %s\n", strings.Join(flags, ", "))
	}
	if len(b.Related) > 0 {
		fmt.Printf("  related: %s\n", strings.Join(b.Related, ", "))
	}
}

// printPlan prints a deduplicated plan, one section at a time.
func printPlan(res plan.Result) {
	for i, sec := range res.Plan.Sections {
		fmt.Printf("\n%s %s\n", headingColor.Sprintf("%d.", i+1), headingColor.Sprint(sec.Title))
		if sec.Content != "" {
			fmt.Printf("   %s\n", sec.Content)
		}
		for _, m := range sec.Features {
			badge := formatBadge(features.BaselineUnknown)
			if m.Baseline != nil {
				badge = formatBadge(m.Baseline.Status)
			}
			fmt.Printf("   - %s %s\n", m.Name, badge)
		}
	}
	fmt.Printf("\n%d sections, %d features (%d dropped as duplicates, %d filled in)\n",
		res.Stats.Sections, res.Stats.Kept+res.Stats.Fillers, res.Stats.Dropped, res.Stats.Fillers)
}
