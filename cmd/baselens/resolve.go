package main

import (
	"fmt"
	"strings"

	"github.com/baselens/baselens/internal/features"
	"github.com/spf13/cobra"
)

var flagBrowser string

var resolveCmd = &cobra.Command{
	Use:   "resolve <feature name>",
	Short: "Resolve a feature name and show its Baseline status",
	Long: `Resolve a free-text feature name (or canonical id) against the curated
dataset and print its Baseline availability and per-browser support.

Examples:
  baselens resolve "CSS Grid"
  baselens resolve css.properties.grid
  baselens resolve "sticky header" --browser chrome@55`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		catalog := features.Default()

		// Try the input as a canonical id first, then as a name.
		baseline := catalog.BaselineStatus(name)
		if baseline == nil {
			baseline = catalog.BaselineStatusByName(name)
		}
		if baseline == nil {
			fmt.Printf("%q  %s\n", name, formatBadge(features.BaselineUnknown))
			fmt.Println("  no matching feature in the dataset")
			return nil
		}

		printBaseline(baseline)

		if flagBrowser != "" {
			browser, version, ok := strings.Cut(flagBrowser, "@")
			if !ok {
				return fmt.Errorf("invalid --browser %q (want browser@version, e.g. chrome@55)", flagBrowser)
			}
			if baseline.SupportedIn(browser, version) {
				fmt.Printf("  %s %s is supported\n", browser, version)
			} else {
				fmt.Printf("  %s %s is NOT supported\n", browser, version)
			}
		}
		return nil
	},
}

func init() {
	resolveCmd.Flags().StringVar(&flagBrowser, "browser", "", "check a specific browser version (browser@version)")
	rootCmd.AddCommand(resolveCmd)
}
