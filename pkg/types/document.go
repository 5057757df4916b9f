// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Outcome is the state of one file after a batch stage touched it. It is
// the unit of batch-level accounting.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// FailureKind classifies why a file failed, so callers and tests can tell
// a parser problem from an API or filesystem one. The set is closed: batch
// code never produces a kind outside these constants.
type FailureKind string

const (
	// FailureNone is the zero kind, used on success and skip.
	FailureNone FailureKind = ""

	// FailureParse covers unreadable PDFs and empty text layers.
	FailureParse FailureKind = "parse"

	// FailureAPI covers transport errors, non-2xx statuses, and malformed
	// response shapes from the chat API.
	FailureAPI FailureKind = "api"

	// FailureIO covers write and rename errors.
	FailureIO FailureKind = "io"
)

// FileResult is the outcome of processing a single input file. Failures
// never abort a batch; they are recorded here and the run continues.
type FileResult struct {
	// Path is the input file as it was found by the scanner.
	Path string

	// Outcome is success, skipped, or failed.
	Outcome Outcome

	// Kind is set when Outcome is failed.
	Kind FailureKind

	// Err is the underlying error when Outcome is failed.
	Err error
}

// DocumentRecord is one catalog row: the latest known processing state of
// a source document.
type DocumentRecord struct {
	// SourcePath is the input PDF path.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// SummaryPath is the derived Markdown path, when one exists.
	SummaryPath string `json:"summary_path,omitempty" yaml:"summary_path,omitempty"`

	// Title is the extracted title, when one was found.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Outcome is the last recorded outcome for this document.
	Outcome Outcome `json:"outcome" yaml:"outcome"`

	// Kind is the failure kind when Outcome is failed.
	Kind FailureKind `json:"failure_kind,omitempty" yaml:"failure_kind,omitempty"`

	// ProcessedAt is when the document was last touched.
	ProcessedAt time.Time `json:"processed_at" yaml:"processed_at"`
}

// ReportRecord is one catalog row for a generated combined report.
type ReportRecord struct {
	// Path is where the report was written.
	Path string `json:"path" yaml:"path"`

	// PaperCount is how many summaries fed the report.
	PaperCount int `json:"paper_count" yaml:"paper_count"`

	// CreatedAt is when the report was generated.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
