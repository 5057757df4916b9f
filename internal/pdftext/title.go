// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// headerFooterPattern matches lines that are page furniture rather than a
// title: page numbers ("page 3 of 12", "第 2 页") and watermarks.
var headerFooterPattern = regexp.MustCompile(`(?i)page|第.*页|confidential`)

// Heuristic is one named title-extraction strategy. Heuristics run in
// order; the first candidate wins.
type Heuristic struct {
	Name string
	Pick func(doc *Document) (string, bool)
}

// HeuristicOptions tunes the title heuristics.
type HeuristicOptions struct {
	// MinLineLen and MaxLineLen bound plausible title lines, in runes.
	MinLineLen int
	MaxLineLen int

	// LinesPerPage is how many leading lines to inspect per page.
	LinesPerPage int

	// HeadingFontSize is the size above which a span counts as a heading.
	HeadingFontSize float64

	// UseMetadata enables the document-info /Title heuristic.
	UseMetadata bool
}

// DefaultHeuristicOptions returns the standard tuning: titles between 10
// and 200 runes, 10 lines inspected per page, headings above 11pt, and
// the metadata heuristic off.
func DefaultHeuristicOptions() HeuristicOptions {
	return HeuristicOptions{
		MinLineLen:      10,
		MaxLineLen:      200,
		LinesPerPage:    10,
		HeadingFontSize: 11,
	}
}

// Heuristics returns the ordered strategy list for opts: first-lines, then
// metadata (when enabled), then largest-font.
func Heuristics(opts HeuristicOptions) []Heuristic {
	hs := []Heuristic{{Name: "first-lines", Pick: firstLines(opts)}}
	if opts.UseMetadata {
		hs = append(hs, Heuristic{Name: "metadata", Pick: metadataTitle})
	}
	return append(hs, Heuristic{Name: "largest-font", Pick: largestFont(opts)})
}

// ExtractTitle runs the heuristics in order and returns the first
// candidate. A document with no usable title returns ok == false; that is
// an expected case, not an error.
func ExtractTitle(doc *Document, heuristics []Heuristic) (string, bool) {
	for _, h := range heuristics {
		if title, ok := h.Pick(doc); ok {
			return title, true
		}
	}
	return "", false
}

// firstLines picks the first leading line that looks like a title: bounded
// length, not purely numeric, not page furniture.
func firstLines(opts HeuristicOptions) func(*Document) (string, bool) {
	return func(doc *Document) (string, bool) {
		for _, page := range doc.Pages {
			lines := page.Lines
			if len(lines) > opts.LinesPerPage {
				lines = lines[:opts.LinesPerPage]
			}
			for _, line := range lines {
				n := utf8.RuneCountInString(line)
				if n < opts.MinLineLen || n > opts.MaxLineLen {
					continue
				}
				if isNumeric(line) {
					continue
				}
				if headerFooterPattern.MatchString(line) {
					continue
				}
				return line, true
			}
		}
		return "", false
	}
}

// metadataTitle returns the document information /Title when it carries
// more than a few characters.
func metadataTitle(doc *Document) (string, bool) {
	if utf8.RuneCountInString(doc.InfoTitle) > 3 {
		return doc.InfoTitle, true
	}
	return "", false
}

// largestFont picks the largest-size span on a page when it stands out
// from body text. Pages are tried in order; ties keep the earliest span.
func largestFont(opts HeuristicOptions) func(*Document) (string, bool) {
	return func(doc *Document) (string, bool) {
		for _, page := range doc.Pages {
			var best Span
			for _, sp := range page.Spans {
				if sp.FontSize > best.FontSize {
					best = sp
				}
			}
			if best.FontSize > opts.HeadingFontSize && best.Text != "" {
				return best.Text, true
			}
		}
		return "", false
	}
}

// isNumeric reports whether s consists entirely of digits.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
