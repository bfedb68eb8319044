package qml

import (
	"strings"

	"github.com/questbank/qmlbank/internal/qml/parser"
	"github.com/questbank/qmlbank/internal/question"
)

// header assembles the fields shared by every question kind. The question
// name and default text come from the DESCRIPTION attribute; the CONTENT
// child supplies the body and its declared content type. A missing content
// type defaults to HTML with a notice, matching the source tool's export
// habits.
func (im *Importer) header(qn *parser.Node) (question.Header, []string) {
	var notices []string
	name := strings.TrimSpace(qn.Attr("DESCRIPTION"))
	h := question.Header{Name: name}

	raw := name
	ctype := ""
	if content := qn.Child("CONTENT"); content != nil {
		ctype = content.Attr("TYPE")
		if content.Text != "" {
			raw = content.Text
		}
	}

	switch ctype {
	case "text/plain":
		h.TextFormat = question.FormatPlain
	case "text/html":
		h.TextFormat = question.FormatHTML
	default:
		notices = append(notices, im.msgs.Get("contenttypenotset", nil))
		h.TextFormat = question.FormatHTML
	}
	h.Text = im.clean(raw, h.TextFormat)
	if h.Name == "" {
		h.Name = h.Text
	}
	return h, notices
}
