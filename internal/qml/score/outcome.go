// Package score turns a question's ordered outcome set into per-choice
// fractions or stem-to-choice matches.
package score

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/questbank/qmlbank/internal/qml/condition"
)

const (
	// RightID is the outcome id whose condition is authoritative for the
	// whole question.
	RightID = "right"
	// WrongID is the catch-all negative-feedback outcome id.
	WrongID = "wrong"
	// otherLiteral marks a catch-all condition in source data.
	otherLiteral = "OTHER"
)

// Outcome is one named scoring rule attached to a question. Score carries
// the SCORE attribute when present, otherwise the ADD delta.
type Outcome struct {
	ID        string
	Score     int
	Condition string
	Feedback  string
}

// IsOther reports whether the outcome's condition is the literal catch-all.
func (o Outcome) IsOther() bool {
	return strings.TrimSpace(o.Condition) == otherLiteral
}

// Normalize prepares a raw outcome set for aggregation: a trailing outcome
// whose condition is OTHER and whose score is zero is reclassified as the
// catch-all "wrong" outcome (source data is inconsistent about labeling
// it), and bare literal conditions are replaced by a combined condition
// synthesized from the whole set.
func Normalize(outs []Outcome) []Outcome {
	norm := make([]Outcome, len(outs))
	copy(norm, outs)
	for i := range norm {
		if i == len(norm)-1 && norm[i].IsOther() && norm[i].Score == 0 {
			norm[i].ID = WrongID
			continue
		}
		if condition.IsBareReference(norm[i].Condition) {
			norm[i].Condition = Combined(outs)
		}
	}
	return norm
}

// Combined synthesizes the canonical combined condition from sibling
// outcomes: for every outcome in document order, NOT when its score is
// zero, then its ordinal position as a quoted literal.
func Combined(outs []Outcome) string {
	parts := make([]string, 0, len(outs))
	for i, o := range outs {
		t := `"` + strconv.Itoa(i) + `"`
		if o.Score == 0 {
			t = "NOT " + t
		}
		parts = append(parts, t)
	}
	return strings.Join(parts, " AND ")
}

// StemOutcome is one stem's scoring rule: the acceptable alternative
// comparisons recovered from its condition, with the outcome's score and
// feedback.
type StemOutcome struct {
	ID           string
	Score        int
	Feedback     string
	Alternatives []condition.Comparison
}

// Aggregate is the classified view of a question's outcomes: either one
// combined expression attributed to the "right" outcome, or a per-stem
// list, plus the catch-all "wrong" outcome when present.
type Aggregate struct {
	Combined condition.Expression // nil unless a "right" outcome governs
	Right    *Outcome
	Stems    []StemOutcome
	Wrong    *Outcome
}

// BadConditionError tags a structural parse failure with the outcome it
// came from so callers can locate the source record.
type BadConditionError struct {
	OutcomeID string
	Err       error
}

func (e *BadConditionError) Error() string {
	return fmt.Sprintf("outcome %q: %v", e.OutcomeID, e.Err)
}

func (e *BadConditionError) Unwrap() error { return e.Err }

// Build classifies a normalized outcome set. If an outcome with id "right"
// exists its condition is authoritative: it is parsed whole, and its
// conjunction is split into one comparison per stem. Otherwise every
// numerically-identified outcome contributes one stem whose condition is
// split on OR into acceptable alternatives.
func Build(outs []Outcome) (Aggregate, error) {
	var agg Aggregate
	for i := range outs {
		o := outs[i]
		switch {
		case o.ID == RightID:
			expr, err := condition.Parse(o.Condition)
			if err != nil {
				return Aggregate{}, &BadConditionError{OutcomeID: o.ID, Err: err}
			}
			agg.Combined = expr
			agg.Right = &outs[i]
			for _, cmp := range expr.Comparisons() {
				agg.Stems = append(agg.Stems, StemOutcome{
					ID:           cmp.Left,
					Score:        o.Score,
					Feedback:     o.Feedback,
					Alternatives: []condition.Comparison{cmp},
				})
			}
		case o.ID == WrongID:
			agg.Wrong = &outs[i]
		default:
			if _, err := strconv.Atoi(o.ID); err != nil {
				// Not a stem outcome; "Always happens" style rows are
				// ignored for scoring.
				continue
			}
			expr, err := condition.Parse(o.Condition)
			if err != nil {
				return Aggregate{}, &BadConditionError{OutcomeID: o.ID, Err: err}
			}
			stem := StemOutcome{ID: o.ID, Score: o.Score, Feedback: o.Feedback}
			for _, alt := range expr {
				stem.Alternatives = append(stem.Alternatives, alt...)
			}
			if len(stem.Alternatives) > 0 {
				stem.ID = stem.Alternatives[0].Left
			}
			agg.Stems = append(agg.Stems, stem)
		}
	}
	return agg, nil
}
