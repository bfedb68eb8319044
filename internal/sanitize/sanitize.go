// Package sanitize cleans free-text fields before they enter a question
// model.
package sanitize

import (
	"html"
	"strings"
)

// Profile selects how aggressively text is cleaned.
type Profile int

const (
	// Raw passes text through untouched.
	Raw Profile = iota
	// Plain strips all markup and collapses whitespace.
	Plain
	// RichHTML keeps markup but drops script and style blocks.
	RichHTML
)

// Clean returns the text cleaned per the profile.
func Clean(s string, p Profile) string {
	switch p {
	case Plain:
		return collapseSpace(html.UnescapeString(stripTags(s)))
	case RichHTML:
		return strings.TrimSpace(dropBlocks(s, "script", "style"))
	default:
		return s
	}
}

// stripTags removes every <...> run. Unterminated tags swallow the rest
// of the string, matching how browsers treat them.
func stripTags(s string) string {
	var b strings.Builder
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				b.WriteByte(s[i])
			}
		}
	}
	return b.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// dropBlocks removes whole <name>...</name> elements, case-insensitively.
func dropBlocks(s string, names ...string) string {
	low := strings.ToLower(s)
	for _, name := range names {
		open := "<" + name
		close := "</" + name + ">"
		for {
			i := strings.Index(low, open)
			if i < 0 {
				break
			}
			j := strings.Index(low[i:], close)
			if j < 0 {
				s = s[:i]
				low = low[:i]
				break
			}
			end := i + j + len(close)
			s = s[:i] + s[end:]
			low = low[:i] + low[end:]
		}
	}
	return s
}
