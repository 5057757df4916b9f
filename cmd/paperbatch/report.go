// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zwli/paperbatch/internal/catalog"
	"github.com/zwli/paperbatch/internal/llm"
	"github.com/zwli/paperbatch/internal/report"
	"github.com/zwli/paperbatch/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Aggregate Markdown summaries into one combined research report",
	Long: `Report reads every Markdown summary directly under the input directory
(not recursively), feeds them to the chat API as one labeled prompt, and
writes the combined report to a timestamped research_report_*.md file in
the same directory. Prior reports are excluded from the input set, and an
appendix mapping paper numbers to filenames is appended so citations can
be traced.`,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := reportConfig(cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}

	backend := llm.New(cfg.AIConfig)
	rec, err := report.Run(cmd.Context(), backend, cfg, os.Stdout)
	if err != nil {
		return err
	}

	if enabled, dbPath := catalogSettings(cmd); enabled {
		if dbPath == "" {
			dbPath = catalog.DefaultPath(cfg.InputDir)
		}
		if err := recordReport(cmd, dbPath, rec); err != nil {
			fmt.Fprintf(os.Stderr, "warning: catalog update failed: %v\n", err)
		}
	}
	return nil
}

func recordReport(cmd *cobra.Command, dbPath string, rec types.ReportRecord) error {
	store, err := catalog.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.RecordReport(cmd.Context(), rec)
}

func reportConfig(cmd *cobra.Command) types.ReportConfig {
	return types.ReportConfig{
		AIConfig:     aiConfigFromFlags(cmd),
		InputDir:     stringSetting(cmd, "input-dir", "report.input_dir"),
		ReportPrefix: stringSetting(cmd, "report-prefix", "report.report_prefix"),
		Language:     stringSetting(cmd, "language", "report.language"),
	}
}

func init() {
	reportCmd.Flags().String("input-dir", "", "directory read non-recursively for Markdown summaries")
	reportCmd.Flags().String("report-prefix", "", "output filename prefix and exclusion filter (default research_report)")
	registerAIFlags(reportCmd)
	reportCmd.Flags().Bool("no-catalog", false, "do not record this run in the catalog")
	reportCmd.Flags().String("catalog-db", "", "catalog database path (default <input-dir>/.paperbatch/catalog.db)")

	rootCmd.AddCommand(reportCmd)
}
