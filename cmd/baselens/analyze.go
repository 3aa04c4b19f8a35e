package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/baselens/baselens/internal/ai"
	"github.com/baselens/baselens/internal/features"
	"github.com/baselens/baselens/internal/plan"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <screenshot>",
	Short: "Analyze a UI screenshot into a Baseline-annotated plan",
	Long: `Send a UI design screenshot to the model and print the resulting
implementation plan. Each plan section lists the web platform features it
relies on, deduplicated across the whole plan and annotated with Baseline
availability badges.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		image, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read screenshot: %w", err)
		}

		client, err := ai.New(ai.Config{APIKey: cfg.APIKey, Model: cfg.Model})
		if err != nil {
			return err
		}

		dedupCfg, err := plan.ConfigFromEnv()
		if err != nil {
			return err
		}
		dedup, err := plan.NewDeduplicator(features.Default(), dedupCfg)
		if err != nil {
			return err
		}

		fmt.Println("Analyzing screenshot...")
		p, err := client.AnalyzePlan(context.Background(), image, mediaTypeForPath(path))
		if err != nil {
			return err
		}

		printPlan(dedup.Process(*p))
		return nil
	},
}

func mediaTypeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "image/png"
	}
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
