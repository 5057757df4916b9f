// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zwli/paperbatch/internal/catalog"
	"github.com/zwli/paperbatch/internal/llm"
	"github.com/zwli/paperbatch/internal/summarize"
	"github.com/zwli/paperbatch/pkg/types"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize every PDF under a directory into Markdown",
	Long: `Summarize walks the input directory recursively, extracts the text layer
of each PDF, and asks the chat API for a structured summary. Summaries are
written next to their PDFs with the same base name; files that already
have one are skipped, so an interrupted batch can be resumed by re-running.`,
	RunE: runSummarize,
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg := summarizeConfig(cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}

	backend := llm.New(cfg.AIConfig)
	result, fileResults, err := summarize.Run(cmd.Context(), backend, cfg, os.Stdout)
	if err != nil {
		return err
	}

	if enabled, dbPath := catalogSettings(cmd); enabled {
		if dbPath == "" {
			dbPath = catalog.DefaultPath(cfg.InputDir)
		}
		if err := recordDocuments(cmd.Context(), dbPath, fileResults); err != nil {
			fmt.Fprintf(os.Stderr, "warning: catalog update failed: %v\n", err)
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed", result.Failed)
	}
	return nil
}

func summarizeConfig(cmd *cobra.Command) types.SummarizeConfig {
	return types.SummarizeConfig{
		AIConfig:     aiConfigFromFlags(cmd),
		InputDir:     stringSetting(cmd, "input-dir", "summarize.input_dir"),
		PromptBudget: intSetting(cmd, "prompt-budget", "summarize.prompt_budget"),
		Language:     stringSetting(cmd, "language", "summarize.language"),
	}
}

// recordDocuments writes the per-file outcomes of a summarize run into the
// catalog.
func recordDocuments(ctx context.Context, dbPath string, results []types.FileResult) error {
	store, err := catalog.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	now := time.Now().UTC()
	for _, res := range results {
		rec := types.DocumentRecord{
			SourcePath:  res.Path,
			Outcome:     res.Outcome,
			Kind:        res.Kind,
			ProcessedAt: now,
		}
		if res.Outcome != types.OutcomeFailed {
			rec.SummaryPath = summarize.DerivedPath(res.Path)
		}
		if err := store.RecordDocument(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	summarizeCmd.Flags().String("input-dir", "", "directory scanned recursively for PDFs")
	summarizeCmd.Flags().Int("prompt-budget", 0, "max runes of extracted text per prompt (default 65535)")
	registerAIFlags(summarizeCmd)
	summarizeCmd.Flags().Bool("no-catalog", false, "do not record this run in the catalog")
	summarizeCmd.Flags().String("catalog-db", "", "catalog database path (default <input-dir>/.paperbatch/catalog.db)")

	rootCmd.AddCommand(summarizeCmd)
}
