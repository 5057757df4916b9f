// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rename

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// maxTitleRunes caps sanitized filename stems.
const maxTitleRunes = 200

var (
	// disallowed matches every rune that may not appear in a filename
	// stem: anything outside Unicode letters, digits, underscore, and
	// hyphen. Go's \w is ASCII-only, which would mangle accented Latin,
	// kana, hangul, and Cyrillic titles.
	disallowed = regexp.MustCompile(`[^\p{L}\p{N}_-]`)

	// underscoreRuns collapses the replacement underscores.
	underscoreRuns = regexp.MustCompile(`_+`)
)

// SanitizeTitle normalizes a raw title candidate into a safe filename
// stem. NFKC folds full-width characters first; every disallowed rune
// becomes an underscore, runs of underscores collapse to one, leading and
// trailing underscores are stripped, and the result is capped at 200
// runes. Sanitizing an already-sanitized string returns it unchanged.
// An empty result means the candidate was unusable.
func SanitizeTitle(title string) string {
	cleaned := norm.NFKC.String(title)
	cleaned = disallowed.ReplaceAllString(cleaned, "_")
	cleaned = underscoreRuns.ReplaceAllString(cleaned, "_")
	cleaned = strings.Trim(cleaned, "_")
	if runes := []rune(cleaned); len(runes) > maxTitleRunes {
		cleaned = string(runes[:maxTitleRunes])
	}
	// The cut can expose a trailing underscore; strip it so sanitization
	// stays idempotent.
	return strings.Trim(cleaned, "_")
}
