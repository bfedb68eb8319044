package qml

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/questbank/qmlbank/internal/qml/parser"
	"github.com/questbank/qmlbank/internal/question"
)

// importNumerical accepts the two observed numeric condition shapes:
// exact (`"0" = "42"`) and within-range (`"0" = "40 TO 44"`).
func (im *Importer) importNumerical(qn *parser.Node, h question.Header) (question.Question, error) {
	outs := im.outcomes(qn)
	if len(outs) == 0 {
		return nil, errors.New(im.msgs.Get("missingoutcome", h.Name))
	}
	agg, err := im.aggregate(h.Name, outs)
	if err != nil {
		return nil, err
	}
	if agg.Wrong != nil {
		h.GeneralFeedback = agg.Wrong.Feedback
	}

	num := question.Numerical{Header: h}
	for _, stem := range agg.Stems {
		for _, cmp := range stem.Alternatives {
			if cmp.Negated || cmp.Right == "" {
				continue
			}
			na := question.NumAnswer{Fraction: 1, Feedback: stem.Feedback}
			if lo, hi, ok := parseRange(cmp.Right); ok {
				na.Min, na.Max, na.Ranged = lo, hi, true
				na.Value = (lo + hi) / 2
			} else {
				v, err := strconv.ParseFloat(cmp.Right, 64)
				if err != nil {
					return nil, fmt.Errorf("%s: value %q is not numeric", im.msgs.Get("badcondition", h.Name), cmp.Right)
				}
				na.Value = v
			}
			num.Answers = append(num.Answers, na)
		}
	}
	if len(num.Answers) == 0 {
		return nil, errors.New(im.msgs.Get("nocorrectanswer", h.Name))
	}
	return num, nil
}

// parseRange parses the single observed range shape "lo TO hi".
func parseRange(s string) (lo, hi float64, ok bool) {
	parts := strings.SplitN(s, " TO ", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, false
	}
	hi, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, false
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo, hi, true
}
