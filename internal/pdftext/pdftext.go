// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext reads text, lines, and font-size spans out of PDF files.
// Only the embedded text layer is used; scanned (image-only) PDFs yield
// empty text and are handled by callers as parse failures or skips.
package pdftext

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Span is a run of text rendered at one font size. Consecutive fragments
// with the same size are merged, approximating the layout-level span.
type Span struct {
	Text     string
	FontSize float64
}

// Page holds the text content of one page: visual lines top to bottom,
// plus the same content as font-sized spans.
type Page struct {
	Lines []string
	Spans []Span
}

// Document is the parsed view of a PDF consumed by the title heuristics.
type Document struct {
	Pages []Page

	// InfoTitle is /Title from the document information dictionary, if any.
	InfoTitle string
}

// ExtractText returns the embedded text layer of the whole PDF, pages
// joined by newlines. Pages that fail to decode are dropped rather than
// failing the document.
func ExtractText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var sb strings.Builder
	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				ft := p.Font(name)
				fonts[name] = &ft
			}
		}
		text, pageErr := p.GetPlainText(fonts)
		if pageErr != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String()), nil
}

// ReadDocument parses up to maxPages pages into lines and spans, along
// with the metadata title. maxPages <= 0 reads every page.
func ReadDocument(path string, maxPages int) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	doc := &Document{InfoTitle: infoTitle(r)}

	n := r.NumPage()
	if maxPages > 0 && n > maxPages {
		n = maxPages
	}
	for i := 1; i <= n; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		doc.Pages = append(doc.Pages, readPage(p))
	}
	return doc, nil
}

// readPage converts a page's text rows into trimmed lines and merged
// same-size spans. Rows that fail to decode leave an empty page.
func readPage(p pdf.Page) Page {
	var page Page
	rows, err := p.GetTextByRow()
	if err != nil {
		return page
	}
	for _, row := range rows {
		var line strings.Builder
		var spans []Span
		for _, txt := range row.Content {
			line.WriteString(txt.S)
			if n := len(spans); n > 0 && spans[n-1].FontSize == txt.FontSize {
				spans[n-1].Text += txt.S
			} else {
				spans = append(spans, Span{Text: txt.S, FontSize: txt.FontSize})
			}
		}
		if s := strings.TrimSpace(line.String()); s != "" {
			page.Lines = append(page.Lines, s)
		}
		for _, sp := range spans {
			sp.Text = strings.TrimSpace(sp.Text)
			if sp.Text != "" {
				page.Spans = append(page.Spans, sp)
			}
		}
	}
	return page
}

// infoTitle reads /Info /Title from the trailer. The pdf package panics on
// some malformed dictionaries, so the read is fenced with recover.
func infoTitle(r *pdf.Reader) (title string) {
	defer func() { _ = recover() }()
	v := r.Trailer().Key("Info").Key("Title")
	if v.Kind() == pdf.String {
		title = strings.TrimSpace(v.Text())
	}
	return title
}
