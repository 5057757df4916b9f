// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rename extracts document titles and renames PDFs to match.
// A document with no usable title is skipped, never failed: absence of a
// title is an expected case.
package rename

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/zwli/paperbatch/internal/pdftext"
	"github.com/zwli/paperbatch/internal/scan"
	"github.com/zwli/paperbatch/pkg/types"
)

// titlePages is how many leading pages the heuristics inspect.
const titlePages = 2

// BatchResult holds the outcome counts of a batch rename run.
type BatchResult struct {
	Renamed int
	Skipped int
	Failed  int
}

// Total returns the number of files processed.
func (r BatchResult) Total() int {
	return r.Renamed + r.Skipped + r.Failed
}

// HasFailures reports whether any files failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// LogEntry records one applied rename in the YAML run log.
type LogEntry struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// runLog is the YAML document written after a run with at least one rename.
type runLog struct {
	RenamedAt string     `yaml:"renamed_at"`
	Renames   []LogEntry `yaml:"renames"`
}

// ProcessFile extracts, sanitizes, and applies a title to one PDF. It
// returns the outcome and, on success, the new path. Rename errors leave
// the original file untouched.
func ProcessFile(path string, opts pdftext.HeuristicOptions) (types.FileResult, string) {
	res := types.FileResult{Path: path}

	doc, err := pdftext.ReadDocument(path, titlePages)
	if err != nil {
		res.Outcome = types.OutcomeFailed
		res.Kind = types.FailureParse
		res.Err = err
		return res, ""
	}

	title, ok := pdftext.ExtractTitle(doc, pdftext.Heuristics(opts))
	if !ok {
		res.Outcome = types.OutcomeSkipped
		return res, ""
	}

	stem := SanitizeTitle(title)
	if stem == "" {
		res.Outcome = types.OutcomeSkipped
		return res, ""
	}

	target := resolveTarget(filepath.Dir(path), stem, filepath.Ext(path))
	if err := os.Rename(path, target); err != nil {
		res.Outcome = types.OutcomeFailed
		res.Kind = types.FailureIO
		res.Err = err
		return res, ""
	}

	res.Outcome = types.OutcomeSuccess
	return res, target
}

// Run renames every PDF under cfg.InputDir, printing per-file progress to
// w. When cfg.WriteLog is set and at least one file was renamed, a
// timestamped YAML log of applied renames is written to the input
// directory.
func Run(cfg types.RenameConfig, w io.Writer) (BatchResult, error) {
	pdfs, err := scan.Scan(cfg.InputDir, ".pdf")
	if err != nil {
		return BatchResult{}, err
	}
	fmt.Fprintf(w, "Found %d PDF files\n", len(pdfs))

	opts := heuristicOptions(cfg)
	var result BatchResult
	var entries []LogEntry
	for i, path := range pdfs {
		res, newPath := ProcessFile(path, opts)
		base := filepath.Base(path)
		switch res.Outcome {
		case types.OutcomeSuccess:
			result.Renamed++
			entries = append(entries, LogEntry{From: path, To: newPath})
			fmt.Fprintf(w, "[%d/%d] renamed: %s -> %s\n", i+1, len(pdfs), base, filepath.Base(newPath))
		case types.OutcomeSkipped:
			result.Skipped++
			fmt.Fprintf(w, "[%d/%d] skipped: %s (no usable title)\n", i+1, len(pdfs), base)
		case types.OutcomeFailed:
			result.Failed++
			fmt.Fprintf(w, "[%d/%d] failed:  %s (%s: %v)\n", i+1, len(pdfs), base, res.Kind, res.Err)
		}
	}

	if cfg.WriteLog && len(entries) > 0 {
		logPath := filepath.Join(cfg.InputDir, fmt.Sprintf("rename_log_%s.yaml", time.Now().Format("20060102_150405")))
		if err := writeLog(logPath, entries); err != nil {
			fmt.Fprintf(w, "warning: could not write rename log: %v\n", err)
		} else {
			fmt.Fprintf(w, "Rename log written to %s\n", logPath)
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d renamed, %d skipped, %d failed (total: %d)\n",
		result.Renamed, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// resolveTarget returns a free path for stem in dir, appending _1, _2, …
// while the name is taken. Assumes the single-threaded batch is the only
// writer in dir.
func resolveTarget(dir, stem, ext string) string {
	target := filepath.Join(dir, stem+ext)
	for counter := 1; exists(target); counter++ {
		target = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, counter, ext))
	}
	return target
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// writeLog marshals the applied renames to a YAML file.
func writeLog(path string, entries []LogEntry) error {
	data, err := yaml.Marshal(runLog{
		RenamedAt: time.Now().UTC().Format(time.RFC3339),
		Renames:   entries,
	})
	if err != nil {
		return fmt.Errorf("marshaling rename log: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// heuristicOptions maps the stage config onto heuristic tuning, filling
// defaults for zero values.
func heuristicOptions(cfg types.RenameConfig) pdftext.HeuristicOptions {
	opts := pdftext.DefaultHeuristicOptions()
	if cfg.MinTitleLen > 0 {
		opts.MinLineLen = cfg.MinTitleLen
	}
	if cfg.MaxTitleLen > 0 {
		opts.MaxLineLen = cfg.MaxTitleLen
	}
	if cfg.HeadingFontSize > 0 {
		opts.HeadingFontSize = cfg.HeadingFontSize
	}
	opts.UseMetadata = cfg.UseMetadataTitle
	return opts
}
