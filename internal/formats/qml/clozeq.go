package qml

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/questbank/qmlbank/internal/qml/cloze"
	"github.com/questbank/qmlbank/internal/qml/parser"
	"github.com/questbank/qmlbank/internal/qml/score"
	"github.com/questbank/qmlbank/internal/question"
)

// importCloze converts a question whose blanks are scored individually
// (FIB with per-blank outcomes, or SEL drop-down blanks) into an
// embedded-answer question: each blank becomes one encoded block carrying
// its correct alternatives plus the residual distractors, and the encoded
// text is decoded again to obtain the structured sub-question model.
func (im *Importer) importCloze(qn *parser.Node, h question.Header, outs []score.Outcome) (question.Question, error) {
	if outs == nil {
		outs = im.outcomes(qn)
	}
	if len(outs) == 0 {
		return nil, errors.New(im.msgs.Get("missingoutcome", h.Name))
	}
	agg, err := im.aggregate(h.Name, outs)
	if err != nil {
		return nil, err
	}

	segments, choices := im.answerLayout(qn.Child("ANSWER"))

	// Drop-down blanks declare their options as choice text; a typed
	// blank is an empty CHOICE slot and contributes no option.
	var options []string
	for _, c := range choices {
		if c != "" {
			options = append(options, c)
		}
	}

	wrongFB := ""
	if agg.Wrong != nil {
		wrongFB = agg.Wrong.Feedback
	}
	matches, residual := score.Matches(agg.Stems, options, wrongFB)
	if len(matches) == 0 {
		return nil, errors.New(im.msgs.Get("nocorrectanswer", h.Name))
	}

	perStem := map[string][]score.Match{}
	for _, m := range matches {
		perStem[m.StemID] = append(perStem[m.StemID], m)
	}

	// Drop-down blanks get choice-style blocks; typed blanks get
	// shortanswer-style blocks.
	tag := cloze.TagShortAnswer
	if len(options) > 0 {
		tag = cloze.TagMultiChoice
	}

	nblanks := len(segments) - 1
	if nblanks == 0 {
		nblanks = len(perStem)
		for len(segments) < nblanks+1 {
			segments = append(segments, "")
		}
	}

	var b strings.Builder
	for i := 0; i < nblanks; i++ {
		stemMatches := perStem[strconv.Itoa(i)]
		if len(stemMatches) == 0 {
			// A blank with no scoring rule cannot be answered.
			return nil, errors.New(im.msgs.Get("missingoutcome", fmt.Sprintf("%s [blank %d]", h.Name, i)))
		}
		weight := 0
		var opts []cloze.Option
		for _, m := range stemMatches {
			opts = append(opts, cloze.Option{Correct: true, Text: m.ChoiceText, Feedback: m.Feedback})
			weight += m.Score
		}
		for _, d := range residual {
			opts = append(opts, cloze.Option{Correct: false, Text: d.Text, Feedback: d.Feedback})
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(cloze.Encode(segments[i], tag, weight, opts))
	}
	if trailing := segments[len(segments)-1]; trailing != "" {
		b.WriteByte(' ')
		b.WriteString(trailing)
	}

	encoded := strings.TrimSpace(b.String())
	_, subs, err := cloze.Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", im.msgs.Get("badcondition", h.Name), err)
	}

	h.Text = encoded
	q := question.Cloze{Header: h}
	for _, s := range subs {
		cs := question.ClozeSub{Weight: s.Weight, Tag: string(s.Tag)}
		for _, o := range s.Options {
			cs.Options = append(cs.Options, question.ClozeOption{Correct: o.Correct, Text: o.Text, Feedback: o.Feedback})
		}
		q.Subs = append(q.Subs, cs)
	}
	return q, nil
}
