package score

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/questbank/qmlbank/internal/qml/condition"
)

// ErrNoCorrectAnswer is returned when a combined condition marks no choice
// correct. Rejecting the question here keeps divide-by-zero fractions out
// of the bank.
var ErrNoCorrectAnswer = errors.New("condition marks no choice correct")

// Fractions converts a combined condition over choice indices into a
// per-choice weight array. A negated comparison marks its choice
// incorrect, any other marks it correct. Correct choices are worth
// 1/correctCount each; incorrect choices are worth 0 on single-response
// questions and -1/correctCount on multi-response questions, so selecting
// every choice nets zero.
//
// The returned slice is indexed by declared choice position, not by the
// order comparisons appear in the condition.
func Fractions(expr condition.Expression, single bool) ([]float64, error) {
	correctAt := map[int]bool{}
	maxIdx := -1
	for _, cmp := range expr.Comparisons() {
		idx, err := strconv.Atoi(cmp.Left)
		if err != nil {
			return nil, fmt.Errorf("choice reference %q is not an index", cmp.Left)
		}
		if idx < 0 {
			return nil, fmt.Errorf("choice reference %d is negative", idx)
		}
		correctAt[idx] = !cmp.Negated
		if idx > maxIdx {
			maxIdx = idx
		}
	}

	correct := 0
	for _, ok := range correctAt {
		if ok {
			correct++
		}
	}
	if correct == 0 {
		return nil, ErrNoCorrectAnswer
	}

	worth := 1 / float64(correct)
	fractions := make([]float64, maxIdx+1)
	for idx, ok := range correctAt {
		switch {
		case ok:
			fractions[idx] = worth
		case single:
			fractions[idx] = 0
		default:
			fractions[idx] = -worth
		}
	}
	return fractions, nil
}
