// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zwli/paperbatch/internal/rename"
	"github.com/zwli/paperbatch/pkg/types"
)

var renameCmd = &cobra.Command{
	Use:   "rename",
	Short: "Rename PDFs after their extracted titles",
	Long: `Rename walks the input directory recursively and renames each PDF after
a title extracted from its first pages. Three heuristics run in order:
a scan of the leading text lines, the document metadata title (off by
default), and the largest-font span. Titles are sanitized into safe
filenames; name collisions get a numeric suffix. PDFs with no usable
title are skipped.`,
	RunE: runRename,
}

func runRename(cmd *cobra.Command, args []string) error {
	cfg := renameConfig(cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}

	result, err := rename.Run(cfg, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed", result.Failed)
	}
	return nil
}

func renameConfig(cmd *cobra.Command) types.RenameConfig {
	cfg := types.RenameConfig{
		InputDir:    stringSetting(cmd, "input-dir", "rename.input_dir"),
		MinTitleLen: intSetting(cmd, "min-title-len", "rename.min_title_len"),
		MaxTitleLen: intSetting(cmd, "max-title-len", "rename.max_title_len"),
		WriteLog:    true,
	}
	cfg.HeadingFontSize, _ = cmd.Flags().GetFloat64("heading-font-size")
	if cfg.HeadingFontSize == 0 {
		cfg.HeadingFontSize = viper.GetFloat64("rename.heading_font_size")
	}
	if useMeta, _ := cmd.Flags().GetBool("use-metadata-title"); useMeta {
		cfg.UseMetadataTitle = true
	} else {
		cfg.UseMetadataTitle = viper.GetBool("rename.use_metadata_title")
	}
	if viper.IsSet("rename.write_log") {
		cfg.WriteLog = viper.GetBool("rename.write_log")
	}
	if noLog, _ := cmd.Flags().GetBool("no-log"); noLog {
		cfg.WriteLog = false
	}
	return cfg
}

func init() {
	renameCmd.Flags().String("input-dir", "", "directory scanned recursively for PDFs")
	renameCmd.Flags().Int("min-title-len", 0, "shortest plausible title line, in runes (default 10)")
	renameCmd.Flags().Int("max-title-len", 0, "longest plausible title line, in runes (default 200)")
	renameCmd.Flags().Float64("heading-font-size", 0, "font size above which a span counts as a heading (default 11)")
	renameCmd.Flags().Bool("use-metadata-title", false, "enable the document-info /Title heuristic")
	renameCmd.Flags().Bool("no-log", false, "do not write the YAML rename log")

	rootCmd.AddCommand(renameCmd)
}
