// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report aggregates per-paper Markdown summaries into one combined
// research report.
package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zwli/paperbatch/pkg/types"
)

const (
	// DefaultPrefix names generated reports. Files carrying it are also
	// excluded from the input set, so a prior report is never fed back
	// into a new one.
	DefaultPrefix = "research_report"

	defaultLanguage = "en"
)

// Completer abstracts the chat API so tests can supply a mock.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// SourceFile is one Markdown summary feeding the combined report.
type SourceFile struct {
	Name    string
	Content string
}

// CollectSources reads every .md file directly under dir, excluding names
// with the report prefix. Only the top level is read; nested directories
// are ignored. Unreadable files are reported to w and dropped.
func CollectSources(dir, prefix string, w io.Writer) ([]SourceFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &types.ConfigError{Field: "input-dir", Reason: fmt.Sprintf("directory %s does not exist", dir)}
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var files []SourceFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		if strings.HasPrefix(entry.Name(), prefix) {
			fmt.Fprintf(w, "excluded: %s (prior report)\n", entry.Name())
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(w, "warning: could not read %s: %v\n", entry.Name(), err)
			continue
		}
		files = append(files, SourceFile{Name: entry.Name(), Content: string(data)})
	}
	return files, nil
}

// Appendix builds the ordinal-to-filename index appended to the report, so
// in-text citations of "Paper N" can be traced back to their source files.
func Appendix(files []SourceFile) string {
	var b strings.Builder
	b.WriteString("\n\n---\n\nReferenced papers (number to filename):\n")
	for i, f := range files {
		fmt.Fprintf(&b, "\nPaper %d: %s\n", i+1, f.Name)
	}
	return b.String()
}

// OutputPath returns the timestamped report path inside dir.
func OutputPath(dir, prefix string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.md", prefix, now.Format("20060102_150405")))
}

// Run collects summaries, issues a single API call, and writes the
// combined report with its appendix to a timestamped file in the input
// directory. Nothing is written when the call fails or returns nothing.
func Run(ctx context.Context, backend Completer, cfg types.ReportConfig, w io.Writer) (types.ReportRecord, error) {
	prefix := cfg.ReportPrefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	files, err := CollectSources(cfg.InputDir, prefix, w)
	if err != nil {
		return types.ReportRecord{}, err
	}
	if len(files) == 0 {
		return types.ReportRecord{}, fmt.Errorf("no markdown summaries found in %s", cfg.InputDir)
	}
	fmt.Fprintf(w, "Found %d markdown files\n", len(files))

	lang := cfg.Language
	if lang == "" {
		lang = defaultLanguage
	}
	prompt, err := BuildPrompt(files, lang)
	if err != nil {
		return types.ReportRecord{}, fmt.Errorf("building prompt: %w", err)
	}

	fmt.Fprintln(w, "Generating research report...")
	body, err := backend.Complete(ctx, prompt)
	if err != nil {
		return types.ReportRecord{}, fmt.Errorf("generating report: %w", err)
	}

	outPath := OutputPath(cfg.InputDir, prefix, time.Now())
	if err := os.WriteFile(outPath, []byte(body+Appendix(files)), 0o644); err != nil {
		return types.ReportRecord{}, fmt.Errorf("writing report: %w", err)
	}
	fmt.Fprintf(w, "Research report written to %s\n", outPath)

	return types.ReportRecord{
		Path:       outPath,
		PaperCount: len(files),
		CreatedAt:  time.Now().UTC(),
	}, nil
}
