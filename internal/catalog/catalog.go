// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists per-run processing records to a local SQLite
// database, so an operator can ask which documents were summarized, which
// failed and why, and which reports were generated, without re-walking
// the input tree.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/zwli/paperbatch/pkg/types"
)

const (
	catalogDirName = ".paperbatch"
	dbFile         = "catalog.db"
)

// Store manages the catalog SQLite database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the catalog location under the input directory.
func DefaultPath(inputDir string) string {
	return filepath.Join(inputDir, catalogDirName, dbFile)
}

// Open opens or creates the catalog database at path, creating the schema
// when it does not exist.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			source_path TEXT PRIMARY KEY,
			summary_path TEXT,
			title TEXT,
			outcome TEXT NOT NULL,
			failure_kind TEXT,
			processed_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_outcome ON documents(outcome)`,
		`CREATE TABLE IF NOT EXISTS reports (
			path TEXT PRIMARY KEY,
			paper_count INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordDocument upserts the latest outcome for a source document.
func (s *Store) RecordDocument(ctx context.Context, rec types.DocumentRecord) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO documents
			(source_path, summary_path, title, outcome, failure_kind, processed_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_path) DO UPDATE SET
			summary_path = excluded.summary_path,
			title = excluded.title,
			outcome = excluded.outcome,
			failure_kind = excluded.failure_kind,
			processed_at = excluded.processed_at`,
		rec.SourcePath, rec.SummaryPath, rec.Title,
		string(rec.Outcome), string(rec.Kind),
		rec.ProcessedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording document %s: %w", rec.SourcePath, err)
	}
	return nil
}

// RecordReport inserts a generated report.
func (s *Store) RecordReport(ctx context.Context, rec types.ReportRecord) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO reports (path, paper_count, created_at)
		VALUES (?, ?, ?)`,
		rec.Path, rec.PaperCount, rec.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording report %s: %w", rec.Path, err)
	}
	return nil
}

// Documents returns every recorded document, most recently processed first.
func (s *Store) Documents(ctx context.Context) ([]types.DocumentRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT source_path, summary_path, title, outcome, failure_kind, processed_at
		FROM documents ORDER BY processed_at DESC, source_path`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// Search returns documents whose source path or title contains q,
// most recently processed first.
func (s *Store) Search(ctx context.Context, q string) ([]types.DocumentRecord, error) {
	pattern := "%" + q + "%"
	rows, err := s.db.QueryContext(ctx, `SELECT source_path, summary_path, title, outcome, failure_kind, processed_at
		FROM documents
		WHERE source_path LIKE ? OR title LIKE ?
		ORDER BY processed_at DESC, source_path`, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("searching documents: %w", err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// Reports returns every recorded report, most recent first.
func (s *Store) Reports(ctx context.Context) ([]types.ReportRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path, paper_count, created_at
		FROM reports ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer rows.Close()

	var recs []types.ReportRecord
	for rows.Next() {
		var rec types.ReportRecord
		var created string
		if err := rows.Scan(&rec.Path, &rec.PaperCount, &created); err != nil {
			return nil, fmt.Errorf("scanning report row: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, created)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func scanDocuments(rows *sql.Rows) ([]types.DocumentRecord, error) {
	var recs []types.DocumentRecord
	for rows.Next() {
		var rec types.DocumentRecord
		var outcome, kind, processed string
		if err := rows.Scan(&rec.SourcePath, &rec.SummaryPath, &rec.Title, &outcome, &kind, &processed); err != nil {
			return nil, fmt.Errorf("scanning document row: %w", err)
		}
		rec.Outcome = types.Outcome(outcome)
		rec.Kind = types.FailureKind(kind)
		rec.ProcessedAt, _ = time.Parse(time.RFC3339, processed)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
