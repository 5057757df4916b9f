// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize turns PDFs into per-file Markdown summaries through a
// chat-completions backend. Each PDF gets a summary next to it with the
// same base name; an existing summary marks the PDF as done, which is what
// makes interrupted batches resumable.
package summarize

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zwli/paperbatch/internal/pdftext"
	"github.com/zwli/paperbatch/internal/scan"
	"github.com/zwli/paperbatch/pkg/types"
)

const (
	defaultPromptBudget = 65535
	defaultLanguage     = "en"
)

// Completer abstracts the chat API so tests can supply a mock.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// extractText is the PDF text source. Package-level var for test substitution.
var extractText = pdftext.ExtractText

// BatchResult holds the outcome counts of a batch summarization run.
type BatchResult struct {
	Summarized int
	Skipped    int
	Failed     int
}

// Total returns the number of files processed.
func (r BatchResult) Total() int {
	return r.Summarized + r.Skipped + r.Failed
}

// HasFailures reports whether any files failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// DerivedPath returns the summary path for a PDF: same directory and base
// name, .md extension. Its existence marks the PDF as already processed.
func DerivedPath(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + ".md"
}

// TruncateForPrompt cuts text to at most budget runes. The cut is a silent
// deterministic prefix; nothing summarizes the dropped tail. budget <= 0
// uses the default of 65535.
func TruncateForPrompt(text string, budget int) string {
	if budget <= 0 {
		budget = defaultPromptBudget
	}
	runes := []rune(text)
	if len(runes) <= budget {
		return text
	}
	return string(runes[:budget])
}

// ProcessFile summarizes one PDF. An existing summary is Skipped without
// touching it. The summary file is written only after every step succeeds,
// so a failed file leaves no partial output behind.
func ProcessFile(ctx context.Context, backend Completer, pdfPath string, cfg types.SummarizeConfig) types.FileResult {
	res := types.FileResult{Path: pdfPath}
	mdPath := DerivedPath(pdfPath)

	if _, err := os.Stat(mdPath); err == nil {
		res.Outcome = types.OutcomeSkipped
		return res
	}

	text, err := extractText(pdfPath)
	if err != nil || strings.TrimSpace(text) == "" {
		if err == nil {
			err = fmt.Errorf("no embedded text layer in %s", filepath.Base(pdfPath))
		}
		return failed(res, types.FailureParse, err)
	}

	prompt, err := renderPrompt(TruncateForPrompt(text, cfg.PromptBudget), language(cfg.Language))
	if err != nil {
		return failed(res, types.FailureAPI, fmt.Errorf("rendering prompt: %w", err))
	}

	reply, err := backend.Complete(ctx, prompt)
	if err != nil {
		return failed(res, types.FailureAPI, err)
	}

	if err := writeSummary(mdPath, filepath.Base(pdfPath), reply); err != nil {
		return failed(res, types.FailureIO, err)
	}

	res.Outcome = types.OutcomeSuccess
	return res
}

// Run summarizes every PDF under cfg.InputDir, printing per-file progress
// to w. It returns the aggregate counts and the per-file results so the
// caller can record them.
func Run(ctx context.Context, backend Completer, cfg types.SummarizeConfig, w io.Writer) (BatchResult, []types.FileResult, error) {
	pdfs, err := scan.Scan(cfg.InputDir, ".pdf")
	if err != nil {
		return BatchResult{}, nil, err
	}
	fmt.Fprintf(w, "Found %d PDF files\n", len(pdfs))

	var result BatchResult
	results := make([]types.FileResult, 0, len(pdfs))
	for i, path := range pdfs {
		res := ProcessFile(ctx, backend, path, cfg)
		results = append(results, res)
		base := filepath.Base(path)
		switch res.Outcome {
		case types.OutcomeSuccess:
			result.Summarized++
			fmt.Fprintf(w, "[%d/%d] summarized: %s\n", i+1, len(pdfs), base)
		case types.OutcomeSkipped:
			result.Skipped++
			fmt.Fprintf(w, "[%d/%d] skipped: %s (summary exists)\n", i+1, len(pdfs), base)
		case types.OutcomeFailed:
			result.Failed++
			fmt.Fprintf(w, "[%d/%d] failed:  %s (%s: %v)\n", i+1, len(pdfs), base, res.Kind, res.Err)
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d summarized, %d skipped, %d failed (total: %d)\n",
		result.Summarized, result.Skipped, result.Failed, result.Total())
	return result, results, nil
}

// writeSummary writes the reply with a frontmatter header naming the
// source PDF and a generation timestamp.
func writeSummary(mdPath, sourceName, summary string) error {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "source_pdf: %q\n", sourceName)
	fmt.Fprintf(&b, "generated_at: %q\n", time.Now().UTC().Format(time.RFC3339))
	b.WriteString("---\n\n")
	b.WriteString("# Literature Summary\n\n")
	fmt.Fprintf(&b, "**Source**: `%s`\n\n", sourceName)
	b.WriteString(summary)
	b.WriteString("\n")
	return os.WriteFile(mdPath, []byte(b.String()), 0o644)
}

func failed(res types.FileResult, kind types.FailureKind, err error) types.FileResult {
	res.Outcome = types.OutcomeFailed
	res.Kind = kind
	res.Err = err
	return res
}

func language(lang string) string {
	if lang == "" {
		return defaultLanguage
	}
	return lang
}
