package qml

import (
	"errors"
	"strings"

	"github.com/questbank/qmlbank/internal/qml/parser"
	"github.com/questbank/qmlbank/internal/qml/score"
	"github.com/questbank/qmlbank/internal/question"
)

// importShortAnswer routes a fill-in-blanks question by its scoring shape:
// a single "right" outcome means one score for the whole question (exact
// match, possibly over several blanks), while per-blank numeric outcomes
// mean each blank is scored on its own and the question becomes an
// embedded-answer question.
func (im *Importer) importShortAnswer(qn *parser.Node, h question.Header) (question.Question, error) {
	outs := im.outcomes(qn)
	if len(outs) == 0 {
		return nil, errors.New(im.msgs.Get("missingoutcome", h.Name))
	}

	switch outs[0].ID {
	case score.RightID:
		multi := strings.Contains(outs[0].Condition, "AND")
		return im.importFIB(qn, h, outs, multi)
	case "0":
		return im.importCloze(qn, h, outs)
	default:
		return nil, errors.New(im.msgs.Get("unknownquestiontype", "FIB/"+outs[0].ID))
	}
}

func (im *Importer) importFIB(qn *parser.Node, h question.Header, outs []score.Outcome, multi bool) (question.Question, error) {
	agg, err := im.aggregate(h.Name, outs)
	if err != nil {
		return nil, err
	}

	// The question text interleaves the ANSWER node's text runs with one
	// blank marker per choice slot.
	segments, _ := im.answerLayout(qn.Child("ANSWER"))
	qText := strings.TrimSpace(strings.Join(segments, " _ "))
	if qText != "" {
		if h.Name == "" || h.Name == "Fill in Blanks question" {
			h.Name = qText
		}
		h.Text = qText
	}

	correctFB := ""
	if agg.Right != nil {
		correctFB = agg.Right.Feedback
	}
	if agg.Wrong != nil {
		h.GeneralFeedback = agg.Wrong.Feedback
	} else if len(outs) > 1 && outs[1].ID != score.RightID {
		h.GeneralFeedback = outs[1].Feedback
	}

	sa := question.ShortAnswer{Header: h, MultiBlank: multi}
	if multi {
		// One compound answer: every blank's expected value in document
		// order, comma-joined. Only the first alternative per stem
		// participates; OR variants cannot be expressed in this form.
		var parts []string
		seen := map[string]bool{}
		for _, stem := range agg.Stems {
			if seen[stem.ID] {
				continue
			}
			seen[stem.ID] = true
			for _, alt := range stem.Alternatives {
				if !alt.Negated && alt.Right != "" {
					parts = append(parts, alt.Right)
					break
				}
			}
		}
		if len(parts) == 0 {
			return nil, errors.New(im.msgs.Get("nocorrectanswer", h.Name))
		}
		sa.Answers = []question.Answer{{Text: strings.Join(parts, ","), Fraction: 1, Feedback: correctFB}}
		sa.Text += im.msgs.Get("blankmultiquestionhint", nil)
	} else {
		// Each OR alternative is an acceptable exact answer in its own
		// right.
		caseSensitive := true
		for _, cmp := range agg.Combined.Comparisons() {
			if cmp.Negated || cmp.Right == "" {
				continue
			}
			if !cmp.CaseSensitive {
				caseSensitive = false
			}
			sa.Answers = append(sa.Answers, question.Answer{Text: cmp.Right, Fraction: 1, Feedback: correctFB})
		}
		if len(sa.Answers) == 0 {
			return nil, errors.New(im.msgs.Get("nocorrectanswer", h.Name))
		}
		sa.CaseSensitive = caseSensitive
	}
	return sa, nil
}
