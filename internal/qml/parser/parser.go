// Package parser reads a QML byte stream into a navigable node tree. It
// keeps no schema knowledge: every element becomes a Node with its
// attributes, inline text and ordered children, and the importers decide
// what the nodes mean.
package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmptyDocument is returned when the stream holds no parseable QML
// document. Callers get this explicit result instead of a nil tree.
var ErrEmptyDocument = errors.New("qml: empty or invalid document")

// Node is one element of the source document.
type Node struct {
	Name     string
	Attrs    map[string]string
	Text     string
	Children []*Node
}

// Attr returns the named attribute, matching case-insensitively because
// exporters disagree about attribute casing.
func (n *Node) Attr(key string) string {
	if v, ok := n.Attrs[key]; ok {
		return v
	}
	for k, v := range n.Attrs {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

// Child returns the first child with the given element name.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every direct child with the given element name, in
// document order.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if strings.EqualFold(c.Name, name) {
			out = append(out, c)
		}
	}
	return out
}

// ChildText returns the inline text of the first child with the given
// name, or "".
func (n *Node) ChildText(name string) string {
	if c := n.Child(name); c != nil {
		return c.Text
	}
	return ""
}

// Parse reads the stream and returns the document root element.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	// QML exports are frequently latin-1 tagged; accept any declared
	// charset and read bytes as-is.
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	root, err := decodeElement(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyDocument, err)
	}
	if root == nil {
		return nil, ErrEmptyDocument
	}
	return root, nil
}

// decodeElement finds the first start element and builds its subtree.
func decodeElement(dec *xml.Decoder) (*Node, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, nil
			}
			return nil, err
		}
		if se, ok := tok.(xml.StartElement); ok {
			return buildNode(dec, se)
		}
	}
}

func buildNode(dec *xml.Decoder, se xml.StartElement) (*Node, error) {
	n := &Node{Name: se.Name.Local, Attrs: map[string]string{}}
	for _, a := range se.Attr {
		n.Attrs[a.Name.Local] = a.Value
	}
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := buildNode(dec, t)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			n.Text = strings.TrimSpace(text.String())
			return n, nil
		}
	}
}
