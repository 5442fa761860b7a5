// Package xmltree parses XML catalog responses into an element tree whose
// tags carry no namespace prefix.
package xmltree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// ErrNoRoot is returned for documents without a root element.
var ErrNoRoot = errors.New("xml: no root element")

// Parse reads body and returns its root with every namespace prefix removed.
func Parse(body []byte) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, fmt.Errorf("xml: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, ErrNoRoot
	}
	StripNamespaces(root)
	return root, nil
}

// StripNamespaces clears the namespace prefix of el and all its descendants,
// and of their attributes, so lookups can use bare local names.
func StripNamespaces(el *etree.Element) {
	el.Space = ""
	for i := range el.Attr {
		el.Attr[i].Space = ""
	}
	for _, c := range el.ChildElements() {
		StripNamespaces(c)
	}
}

// Text returns the trimmed text of the first child named tag, or "".
func Text(el *etree.Element, tag string) string {
	if el == nil {
		return ""
	}
	c := el.SelectElement(tag)
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Text())
}

// TextOrAttr looks for a child element first and falls back to an attribute
// of the same name.
func TextOrAttr(el *etree.Element, name string) string {
	if s := Text(el, name); s != "" {
		return s
	}
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.SelectAttrValue(name, ""))
}
