package qml

import (
	"errors"
	"strings"

	"github.com/questbank/qmlbank/internal/qml/parser"
	"github.com/questbank/qmlbank/internal/question"
)

// importTrueFalse maps the two outcomes onto true/false feedback. The
// first choice's content says which side the first outcome belongs to; a
// missing second outcome is fatal for this question only.
func (im *Importer) importTrueFalse(qn *parser.Node, h question.Header) (question.Question, error) {
	outs := im.outcomes(qn)
	if len(outs) < 2 {
		return nil, errors.New(im.msgs.Get("missingoutcome", h.Name))
	}
	_, choices := im.answerLayout(qn.Child("ANSWER"))
	if len(choices) == 0 {
		return nil, errors.New(im.msgs.Get("missingchoice", h.Name))
	}

	tf := question.TrueFalse{Header: h}
	if strings.EqualFold(strings.TrimSpace(choices[0]), "true") {
		tf.FeedbackTrue = outs[0].Feedback
		tf.FeedbackFalse = outs[1].Feedback
		tf.Answer = outs[0].Score == 1
	} else {
		tf.FeedbackTrue = outs[1].Feedback
		tf.FeedbackFalse = outs[0].Feedback
		tf.Answer = outs[1].Score == 1
	}
	return tf, nil
}
