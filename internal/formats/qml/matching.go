package qml

import (
	"errors"
	"strconv"

	"github.com/questbank/qmlbank/internal/qml/parser"
	"github.com/questbank/qmlbank/internal/qml/score"
	"github.com/questbank/qmlbank/internal/question"
)

// importMatching builds stem-to-choice pairs. Stems come from the per-stem
// outcomes; the stem's display text is the ANSWER text run at its ordinal
// position. Choices that match no stem stay in the question as
// distractors.
func (im *Importer) importMatching(qn *parser.Node, h question.Header) (question.Question, error) {
	outs := im.outcomes(qn)
	if len(outs) == 0 {
		return nil, errors.New(im.msgs.Get("missingoutcome", h.Name))
	}
	agg, err := im.aggregate(h.Name, outs)
	if err != nil {
		return nil, err
	}

	segments, choices := im.answerLayout(qn.Child("ANSWER"))
	if len(choices) == 0 {
		return nil, errors.New(im.msgs.Get("missingchoice", h.Name))
	}

	wrongFB := ""
	if agg.Wrong != nil {
		wrongFB = agg.Wrong.Feedback
	}
	matches, residual := score.Matches(agg.Stems, choices, wrongFB)
	if len(matches) == 0 {
		return nil, errors.New(im.msgs.Get("nocorrectanswer", h.Name))
	}

	m := question.Matching{Header: h}
	for _, match := range matches {
		stemText := match.StemID
		if idx, err := strconv.Atoi(match.StemID); err == nil && idx >= 0 && idx < len(segments)-1 {
			if segments[idx] != "" {
				stemText = segments[idx]
			}
		}
		m.Pairs = append(m.Pairs, question.Pair{
			StemText:   stemText,
			ChoiceText: match.ChoiceText,
			Feedback:   match.Feedback,
		})
	}
	for _, d := range residual {
		m.Distractors = append(m.Distractors, d.Text)
	}
	return m, nil
}
