// Package qml imports Questionmark QML question files into the question
// model. The scoring semantics live in the condition/score/cloze packages;
// this package walks the document tree, assembles per-kind headers and
// routes each question node to its importer.
package qml

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/questbank/qmlbank/internal/formats"
	"github.com/questbank/qmlbank/internal/i18n"
	"github.com/questbank/qmlbank/internal/qml/parser"
	"github.com/questbank/qmlbank/internal/qml/score"
	"github.com/questbank/qmlbank/internal/question"
	"github.com/questbank/qmlbank/internal/sanitize"
	"github.com/questbank/qmlbank/internal/templvars"
)

func init() {
	formats.Register("qml", func(o formats.Options) formats.Importer { return New(o) })
}

// Importer converts QML documents. It is stateless across questions and
// safe to reuse for a whole batch.
type Importer struct {
	vars *templvars.Store
	msgs *i18n.Catalog
}

func New(opts formats.Options) *Importer {
	msgs := opts.Messages
	if msgs == nil {
		msgs = i18n.NewEnglish()
	}
	return &Importer{vars: opts.Vars, msgs: msgs}
}

// Import reads one QML document. A malformed document fails the whole
// batch; anything wrong with a single question becomes a notice and the
// batch continues.
func (im *Importer) Import(ctx context.Context, r io.Reader) (*formats.Result, error) {
	root, err := parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", im.msgs.Get("invaliddocument", nil), err)
	}

	res := &formats.Result{}
	for _, qn := range questionNodes(root) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		q, notices, err := im.importQuestion(qn)
		res.Notices = append(res.Notices, notices...)
		if err != nil {
			res.Notices = append(res.Notices, err.Error())
			res.Skipped++
			continue
		}
		if q == nil {
			res.Skipped++
			continue
		}
		res.Questions = append(res.Questions, q)
	}
	return res, nil
}

// questionNodes tolerates both a QML root element and a bare QUESTION
// stream wrapped in any container element.
func questionNodes(root *parser.Node) []*parser.Node {
	if strings.EqualFold(root.Name, "QUESTION") {
		return []*parser.Node{root}
	}
	return root.ChildrenNamed("QUESTION")
}

func (im *Importer) importQuestion(qn *parser.Node) (question.Question, []string, error) {
	h, notices := im.header(qn)

	ans := qn.Child("ANSWER")
	qtype := ""
	if ans != nil {
		qtype = strings.ToUpper(strings.TrimSpace(ans.Attr("QTYPE")))
	}

	var q question.Question
	var err error
	switch qtype {
	case "MC":
		q, err = im.importMultiChoice(qn, h, true)
	case "MR":
		q, err = im.importMultiChoice(qn, h, false)
	case "TF", "YN":
		q, err = im.importTrueFalse(qn, h)
	case "FIB":
		q, err = im.importShortAnswer(qn, h)
	case "SEL":
		q, err = im.importCloze(qn, h, nil)
	case "NUM":
		q, err = im.importNumerical(qn, h)
	case "ESSAY", "EXT":
		q = question.Essay{Header: h}
	case "MAT":
		q, err = im.importMatching(qn, h)
	case "CAT":
		q = question.Category{Header: h}
	default:
		notices = append(notices, im.msgs.Get("unknownquestiontype", qtype))
		return nil, notices, nil
	}
	return q, notices, err
}

// outcomes extracts the ordered scoring outcomes of a question node.
// "Always happens" rows carry no scoring information and are dropped.
// SCORE is preferred over ADD when both attributes are present.
func (im *Importer) outcomes(qn *parser.Node) []score.Outcome {
	var outs []score.Outcome
	for _, on := range qn.ChildrenNamed("OUTCOME") {
		if strings.EqualFold(on.Attr("ID"), "Always happens") {
			continue
		}
		outs = append(outs, score.Outcome{
			ID:        on.Attr("ID"),
			Score:     outcomeScore(on),
			Condition: strings.TrimSpace(on.ChildText("CONDITION")),
			Feedback:  im.clean(on.ChildText("CONTENT"), question.FormatHTML),
		})
	}
	return outs
}

func outcomeScore(on *parser.Node) int {
	for _, key := range []string{"SCORE", "ADD"} {
		if v := on.Attr(key); v != "" {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err == nil {
				return n
			}
		}
	}
	return 0
}

// answerLayout splits an ANSWER node into the text run preceding each
// choice and the ordered choice contents. segments always holds one more
// entry than choices (the trailing run).
func (im *Importer) answerLayout(ans *parser.Node) (segments []string, choices []string) {
	var seg strings.Builder
	if ans != nil {
		for _, c := range ans.Children {
			switch {
			case strings.EqualFold(c.Name, "CHOICE"):
				segments = append(segments, strings.TrimSpace(seg.String()))
				seg.Reset()
				text := c.ChildText("CONTENT")
				if text == "" {
					text = c.Text
				}
				choices = append(choices, im.clean(text, question.FormatPlain))
			case strings.EqualFold(c.Name, "CONTENT"):
				if seg.Len() > 0 {
					seg.WriteByte(' ')
				}
				seg.WriteString(c.Text)
			}
		}
	}
	segments = append(segments, strings.TrimSpace(seg.String()))
	return segments, choices
}

func (im *Importer) clean(s string, f question.Format) string {
	s = im.vars.Apply(s)
	if f == question.FormatPlain {
		return sanitize.Clean(s, sanitize.Plain)
	}
	return sanitize.Clean(s, sanitize.RichHTML)
}

// aggregate normalizes and classifies a question's outcomes, translating
// structural failures into localized per-question errors.
func (im *Importer) aggregate(name string, outs []score.Outcome) (score.Aggregate, error) {
	agg, err := score.Build(score.Normalize(outs))
	if err != nil {
		var bad *score.BadConditionError
		if errors.As(err, &bad) {
			return score.Aggregate{}, fmt.Errorf("%s: %w", im.msgs.Get("badcondition", name), err)
		}
		return score.Aggregate{}, err
	}
	return agg, nil
}
