// Command baselens analyzes UI design screenshots against web-platform
// Baseline data: resolve feature names, generate implementation plans,
// chat about compatibility, and serve the backend HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/baselens/baselens/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfg config.Config

	flagModel string
	flagDB    string
)

var rootCmd = &cobra.Command{
	Use:   "baselens",
	Short: "Baseline compatibility insight for UI designs",
	Long: `baselens turns UI design screenshots into implementation plans annotated
with Baseline web-platform availability, and answers follow-up questions
about browser support and fallbacks.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.FromEnv()
		if err != nil {
			return err
		}
		if flagModel != "" {
			cfg.Model = flagModel
		}
		if flagDB != "" {
			cfg.DBPath = flagDB
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "override the analysis model")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "path to the local notes database")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
