// Package i18n provides localized message lookup for user-visible import
// notices and errors. The core treats message keys as opaque; only the
// English catalog ships today.
package i18n

import (
	"fmt"
	"strings"
)

// Catalog maps message keys to display strings. Templates reference their
// single argument as {$a}.
type Catalog struct {
	msgs map[string]string
}

// Get renders the message for key. Unknown keys render as [[key]] so a
// missing string is visible rather than silent.
func (c *Catalog) Get(key string, arg any) string {
	tmpl, ok := c.msgs[key]
	if !ok {
		return "[[" + key + "]]"
	}
	if arg == nil {
		return tmpl
	}
	return strings.ReplaceAll(tmpl, "{$a}", fmt.Sprint(arg))
}

// NewEnglish returns the built-in English catalog.
func NewEnglish() *Catalog {
	return &Catalog{msgs: map[string]string{
		"pluginname":             "Questionmark QML format",
		"unknownquestiontype":    "Question type {$a} is not supported by QML import",
		"contenttypenotset":      "No content type set in question header, defaulting to HTML",
		"blankmultiquestionhint": " (enter every blank in order, separated by commas)",
		"missingoutcome":         "Question '{$a}' is missing a required outcome",
		"missingchoice":          "Question '{$a}' is missing a required choice",
		"badcondition":           "Cannot parse the scoring condition of question '{$a}'",
		"nocorrectanswer":        "Question '{$a}' marks no answer as correct",
		"invaliddocument":        "The uploaded file is not a valid QML document",
		"defaultcorrect":         "Correct",
		"defaultpartial":         "Partly correct",
		"defaultincorrect":       "Incorrect",
	}}
}
