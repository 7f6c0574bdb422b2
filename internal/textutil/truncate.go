package textutil

import (
	"strings"
	"unicode/utf8"
)

// Truncate fits a title, a body excerpt, and an optional suffix inside a
// hard character budget. The suffix is never shortened: platform tags and
// reserved trailing content must survive intact, so when space runs out
// the body is cut first and the title last. Counting is rune-based since
// platform limits are character limits.
//
// Non-empty parts are joined with a blank line between each.
func Truncate(title, body string, limit int, suffix string) string {
	pad := 0
	if suffix != "" {
		pad = 2
	}
	reserved := utf8.RuneCountInString(title) + 2 + utf8.RuneCountInString(suffix) + pad
	available := limit - reserved

	if available <= 0 {
		return saturated(title, limit, suffix)
	}

	var excerpt string
	if body != "" {
		if utf8.RuneCountInString(body) > available {
			// A window too small for any body text plus the ellipsis
			// drops the body rather than blowing the budget.
			if cut := available - 3; cut > 0 {
				excerpt = string([]rune(body)[:cut]) + "..."
			}
		} else {
			excerpt = body
		}
	}

	parts := []string{title}
	if excerpt != "" {
		parts = append(parts, excerpt)
	}
	if suffix != "" {
		parts = append(parts, suffix)
	}

	return strings.Join(parts, "\n\n")
}

// saturated handles the case where the title and suffix alone exhaust the
// budget: the title is cut to whatever room the suffix leaves, the suffix
// stays whole.
func saturated(title string, limit int, suffix string) string {
	keep := limit - utf8.RuneCountInString(suffix) - 5
	if keep < 0 {
		keep = 0
	}

	runes := []rune(title)
	if keep < len(runes) {
		title = string(runes[:keep])
	}

	out := title + "..."
	if suffix != "" {
		out += " " + suffix
	}
	return out
}
