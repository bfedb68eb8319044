// Package condition parses the boolean condition mini-language embedded in
// QML outcome nodes, e.g.
//
//	NOT "0" AND NOT "1" AND "2"
//	"0" MATCHES NOCASE "reduction" OR "0" NEAR NOCASE "reduction"
//	"0" = "42"
//
// The grammar is deliberately restricted to what the source system emits:
// a disjunction of conjunctions of (optionally negated) comparisons, no
// parentheses, no precedence. NOT binds to the single following quoted
// literal only. This matches the source data and must not be widened to
// general boolean semantics.
package condition

import (
	"fmt"
	"strings"
)

// Op is a comparison operator.
type Op string

const (
	// OpNone marks a bare literal reference such as `"2"` with no
	// operator or right operand.
	OpNone    Op = ""
	OpMatches Op = "MATCHES"
	OpNear    Op = "NEAR"
	OpEquals  Op = "="
)

// Comparison is one term of a conjunction.
type Comparison struct {
	Negated       bool
	Left          string
	Op            Op
	CaseSensitive bool
	Right         string
}

// Conjunction is an AND-joined run of comparisons.
type Conjunction []Comparison

// Expression is an OR-joined list of conjunctions.
type Expression []Conjunction

// Comparisons flattens the expression into document order.
func (e Expression) Comparisons() []Comparison {
	var out []Comparison
	for _, c := range e {
		out = append(out, c...)
	}
	return out
}

// ParseError reports a condition that does not fit the restricted grammar.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("condition %q: %s", e.Input, e.Reason)
}

// IsBareReference reports whether the condition text is too short to be a
// full expression and is instead a bare literal reference like `"0"`.
// Callers must synthesize a combined condition from sibling outcomes before
// parsing (see the score package).
func IsBareReference(s string) bool {
	return len(strings.TrimSpace(s)) <= 3
}

// Parse turns raw condition text into an Expression.
func Parse(s string) (Expression, error) {
	toks, err := tokenize(s)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, &ParseError{Input: s, Reason: "empty condition"}
	}
	if last := toks[len(toks)-1]; last == "AND" || last == "OR" {
		return nil, &ParseError{Input: s, Reason: "trailing " + last}
	}

	var expr Expression
	var conj Conjunction
	i := 0
	for i < len(toks) {
		switch toks[i] {
		case "OR":
			if len(conj) == 0 {
				return nil, &ParseError{Input: s, Reason: "OR with no preceding term"}
			}
			expr = append(expr, conj)
			conj = nil
			i++
		case "AND":
			if len(conj) == 0 {
				return nil, &ParseError{Input: s, Reason: "AND with no preceding term"}
			}
			i++
		default:
			cmp, n, reason := parseComparison(toks[i:])
			if reason != "" {
				return nil, &ParseError{Input: s, Reason: reason}
			}
			conj = append(conj, cmp)
			i += n
		}
	}
	if len(conj) == 0 {
		return nil, &ParseError{Input: s, Reason: "trailing OR"}
	}
	expr = append(expr, conj)
	return expr, nil
}

// parseComparison consumes one term from the token stream. A term is
// NOT? literal (op NOCASE? literal)?. Adjacent bare terms with no joining
// keyword are accepted because the synthesized combined form emits them
// that way.
func parseComparison(toks []string) (Comparison, int, string) {
	c := Comparison{CaseSensitive: true}
	n := 0
	if toks[n] == "NOT" {
		c.Negated = true
		n++
		if n >= len(toks) {
			return c, n, "NOT with no following literal"
		}
	}
	left, ok := unquote(toks[n])
	if !ok {
		return c, n, fmt.Sprintf("expected quoted literal, got %q", toks[n])
	}
	c.Left = left
	n++

	if n >= len(toks) {
		return c, n, ""
	}
	switch toks[n] {
	case string(OpMatches):
		c.Op = OpMatches
	case string(OpNear):
		c.Op = OpNear
	case string(OpEquals):
		c.Op = OpEquals
	default:
		// Bare reference; the next token starts a new term.
		return c, n, ""
	}
	n++
	if n < len(toks) && toks[n] == "NOCASE" {
		c.CaseSensitive = false
		n++
	}
	if n >= len(toks) {
		return c, n, fmt.Sprintf("operator %s missing right operand", c.Op)
	}
	right, ok := unquote(toks[n])
	if !ok {
		return c, n, fmt.Sprintf("operator %s right operand %q is not quoted", c.Op, toks[n])
	}
	c.Right = right
	n++
	return c, n, ""
}

// tokenize splits the condition on whitespace, keeping quoted substrings
// atomic. Quoted literals never contain the keywords as word-boundary
// tokens in observed data.
func tokenize(s string) ([]string, error) {
	var toks []string
	i := 0
	for i < len(s) {
		switch c := s[i]; {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++
		case c == '"':
			j := strings.IndexByte(s[i+1:], '"')
			if j < 0 {
				return nil, &ParseError{Input: s, Reason: "unterminated quoted literal"}
			}
			toks = append(toks, s[i:i+j+2])
			i += j + 2
		default:
			j := i
			for j < len(s) && s[j] != ' ' && s[j] != '\t' && s[j] != '\r' && s[j] != '\n' && s[j] != '"' {
				j++
			}
			toks = append(toks, s[i:j])
			i = j
		}
	}
	return toks, nil
}

func unquote(tok string) (string, bool) {
	if len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"' {
		return tok[1 : len(tok)-1], true
	}
	return "", false
}
