// Package cloze serializes a stem plus its matched choices into
// embedded-answer markup and decodes that markup back into structured
// sub-questions. The wire format must stay byte-exact: blocks look like
//
//	{1:MULTICHOICE:=Paris#Correct~Berlin#Incorrect}
//
// with `=` prefixing correct options, `#` introducing per-option feedback
// and `~` separating options. The characters \ { } ~ # are
// backslash-escaped inside option text and feedback; literal braces in
// the surrounding text are backslash-escaped as well so the decoder never
// mistakes them for block delimiters.
package cloze

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Tag selects the sub-question style of a block.
type Tag string

const (
	TagMultiChoice Tag = "MULTICHOICE"
	TagShortAnswer Tag = "SHORTANSWER"
	TagNumerical   Tag = "NUMERICAL"
)

// Option is one option of an embedded sub-question.
type Option struct {
	Correct  bool
	Text     string
	Feedback string
}

// Sub is one decoded embedded sub-question.
type Sub struct {
	Weight  int
	Tag     Tag
	Options []Option
}

var blankRun = regexp.MustCompile(`_{2,}`)

// Encode builds one embedded-answer block and inserts it into the stem
// text. A run of two or more underscores in the stem is replaced by the
// block; otherwise the block is appended after a separating space.
func Encode(stem string, tag Tag, weight int, opts []Option) string {
	stem = escapeText(stem)
	var b strings.Builder
	b.WriteByte('{')
	b.WriteString(strconv.Itoa(weight))
	b.WriteByte(':')
	b.WriteString(string(tag))
	b.WriteByte(':')
	for i, o := range opts {
		if i > 0 {
			b.WriteByte('~')
		}
		if o.Correct {
			b.WriteByte('=')
		}
		b.WriteString(escape(o.Text))
		if o.Feedback != "" {
			b.WriteByte('#')
			b.WriteString(escape(o.Feedback))
		}
	}
	b.WriteByte('}')
	block := b.String()

	if loc := blankRun.FindStringIndex(stem); loc != nil {
		return stem[:loc[0]] + block + stem[loc[1]:]
	}
	if stem == "" {
		return block
	}
	return stem + " " + block
}

// Decode extracts every embedded-answer block from text. It returns the
// text with each block replaced by a blank marker, plus the structured
// sub-questions in document order.
func Decode(text string) (string, []Sub, error) {
	var clean strings.Builder
	var subs []Sub
	i := 0
	for i < len(text) {
		c := text[i]
		if c == '\\' && i+1 < len(text) {
			clean.WriteByte(text[i+1])
			i += 2
			continue
		}
		if c != '{' {
			clean.WriteByte(c)
			i++
			continue
		}
		end := blockEnd(text, i)
		if end < 0 {
			return "", nil, fmt.Errorf("cloze: unterminated block at offset %d", i)
		}
		sub, err := parseBlock(text[i+1 : end])
		if err != nil {
			return "", nil, err
		}
		subs = append(subs, sub)
		clean.WriteString("___")
		i = end + 1
	}
	return clean.String(), subs, nil
}

// blockEnd finds the closing brace of a block opened at start, honoring
// backslash escapes.
func blockEnd(text string, start int) int {
	for i := start + 1; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '}':
			return i
		}
	}
	return -1
}

func parseBlock(body string) (Sub, error) {
	head := strings.SplitN(body, ":", 3)
	if len(head) != 3 {
		return Sub{}, fmt.Errorf("cloze: malformed block %q", body)
	}
	weight, err := strconv.Atoi(head[0])
	if err != nil {
		return Sub{}, fmt.Errorf("cloze: block weight %q: %w", head[0], err)
	}
	sub := Sub{Weight: weight, Tag: Tag(head[1])}
	switch sub.Tag {
	case TagMultiChoice, TagShortAnswer, TagNumerical:
	default:
		return Sub{}, fmt.Errorf("cloze: unknown block tag %q", head[1])
	}
	for _, raw := range splitUnescaped(head[2], '~') {
		if raw == "" {
			continue
		}
		var o Option
		if raw[0] == '=' {
			o.Correct = true
			raw = raw[1:]
		}
		parts := splitUnescaped(raw, '#')
		o.Text = unescape(parts[0])
		if len(parts) > 1 {
			o.Feedback = unescape(parts[1])
		}
		sub.Options = append(sub.Options, o)
	}
	return sub, nil
}

func splitUnescaped(s string, sep byte) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case sep:
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

var (
	escaper     = strings.NewReplacer(`\`, `\\`, `{`, `\{`, `}`, `\}`, `~`, `\~`, `#`, `\#`)
	textEscaper = strings.NewReplacer(`\`, `\\`, `{`, `\{`, `}`, `\}`)
)

func escape(s string) string { return escaper.Replace(s) }

func escapeText(s string) string { return textEscaper.Replace(s) }

func unescape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
