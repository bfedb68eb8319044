package qml

import (
	"errors"
	"fmt"

	"github.com/questbank/qmlbank/internal/qml/condition"
	"github.com/questbank/qmlbank/internal/qml/parser"
	"github.com/questbank/qmlbank/internal/qml/score"
	"github.com/questbank/qmlbank/internal/question"
)

// importMultiChoice handles MC (single response) and MR (multi response).
// The first outcome's condition is the combined correctness expression; a
// bare reference has already been replaced by the synthesized combined
// form during normalization.
func (im *Importer) importMultiChoice(qn *parser.Node, h question.Header, single bool) (question.Question, error) {
	outs := score.Normalize(im.outcomes(qn))
	if len(outs) == 0 {
		return nil, errors.New(im.msgs.Get("missingoutcome", h.Name))
	}

	expr, err := condition.Parse(outs[0].Condition)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", im.msgs.Get("badcondition", h.Name), err)
	}
	fractions, err := score.Fractions(expr, single)
	if err != nil {
		if errors.Is(err, score.ErrNoCorrectAnswer) {
			return nil, errors.New(im.msgs.Get("nocorrectanswer", h.Name))
		}
		return nil, fmt.Errorf("%s: %w", im.msgs.Get("badcondition", h.Name), err)
	}

	_, choices := im.answerLayout(qn.Child("ANSWER"))
	if len(choices) == 0 {
		return nil, errors.New(im.msgs.Get("missingchoice", h.Name))
	}

	correctFB := im.msgs.Get("defaultcorrect", nil)
	incorrectFB := im.msgs.Get("defaultincorrect", nil)

	answers := make([]question.Answer, len(choices))
	for i, text := range choices {
		var f float64
		if i < len(fractions) {
			f = fractions[i]
		}
		fb := incorrectFB
		if f > 0 {
			fb = correctFB
		}
		// Per-choice outcomes carry authored feedback; prefer it over
		// the defaults when present.
		if i < len(outs) && outs[i].Feedback != "" && outs[i].ID != score.RightID && outs[i].ID != score.WrongID {
			fb = outs[i].Feedback
		}
		answers[i] = question.Answer{Text: text, Fraction: f, Feedback: fb}
	}

	return question.MultiChoice{
		Header:            h,
		Single:            single,
		Answers:           answers,
		CorrectFeedback:   correctFB,
		PartialFeedback:   im.msgs.Get("defaultpartial", nil),
		IncorrectFeedback: incorrectFB,
	}, nil
}
