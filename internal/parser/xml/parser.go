package xml

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"

	"github.com/rezonia/cte-checker/internal/model"
)

// TrimToMarkup drops any pasted text before the first '<' and trims the
// remainder. It returns false if the text holds no markup.
func TrimToMarkup(raw string) (string, bool) {
	idx := strings.IndexByte(raw, '<')
	if idx < 0 {
		return "", false
	}
	return strings.TrimSpace(raw[idx:]), true
}

// Parse turns raw document text into an immutable tree
func Parse(raw string) (*Document, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, model.ErrEmpty()
	}

	content, ok := TrimToMarkup(raw)
	if !ok {
		return nil, model.ErrNoMarkup()
	}

	doc := etree.NewDocument()
	// Input is already decoded text, whatever the declaration says
	doc.ReadSettings.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	// Keep repeated attributes so checkNames can reject them
	doc.ReadSettings.PreserveDuplicateAttrs = true
	if err := doc.ReadFromString(content); err != nil {
		return nil, model.ErrMalformed(err)
	}

	root, err := documentElement(doc)
	if err != nil {
		return nil, model.ErrMalformed(err)
	}
	if err := checkNames(root); err != nil {
		return nil, model.ErrMalformed(err)
	}

	return &Document{root: freeze(root)}, nil
}

// ParseKind parses raw text and tags any failure with the expected document kind
func ParseKind(raw string, kind model.DocumentKind) (*Document, error) {
	doc, err := Parse(raw)
	if err != nil {
		var parseErr *model.ParseError
		if errors.As(err, &parseErr) {
			return nil, parseErr.WithKind(kind)
		}
		return nil, err
	}
	return doc, nil
}

// documentElement returns the single root element, rejecting trailing
// elements or text after it
func documentElement(doc *etree.Document) (*etree.Element, error) {
	var root *etree.Element
	for _, tok := range doc.Child {
		switch t := tok.(type) {
		case *etree.Element:
			if root != nil {
				return nil, errors.New("multiple root elements")
			}
			root = t
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				return nil, errors.New("character data outside the root element")
			}
		}
	}
	if root == nil {
		return nil, errors.New("no root element")
	}
	return root, nil
}

// checkNames enforces the well-formedness rules encoding/xml leaves out:
// every prefix is bound to a namespace and no attribute appears twice,
// whether by qualified name or by expanded name
func checkNames(el *etree.Element) error {
	if el.Space != "" && !bound(el, el.Space) {
		return fmt.Errorf("unbound namespace prefix %q on element %s", el.Space, el.FullTag())
	}

	type name struct{ space, key string }
	qualified := make(map[name]bool, len(el.Attr))
	expanded := make(map[name]bool, len(el.Attr))
	for i := range el.Attr {
		a := &el.Attr[i]
		if qualified[name{a.Space, a.Key}] {
			return fmt.Errorf("duplicate attribute %s on element %s", a.FullKey(), el.FullTag())
		}
		qualified[name{a.Space, a.Key}] = true

		switch a.Space {
		case "", "xmlns", "xml":
			continue
		}
		if !bound(el, a.Space) {
			return fmt.Errorf("unbound namespace prefix %q on attribute %s", a.Space, a.FullKey())
		}
		uri := a.NamespaceURI()
		if expanded[name{uri, a.Key}] {
			return fmt.Errorf("duplicate attribute {%s}%s on element %s", uri, a.Key, el.FullTag())
		}
		expanded[name{uri, a.Key}] = true
	}

	for _, child := range el.ChildElements() {
		if err := checkNames(child); err != nil {
			return err
		}
	}
	return nil
}

// bound reports whether prefix resolves to a non-empty namespace URI
func bound(el *etree.Element, prefix string) bool {
	switch prefix {
	case "xml":
		return true
	case "xmlns":
		return false
	}
	for e := el; e != nil; e = e.Parent() {
		for _, a := range e.Attr {
			if a.Space == "xmlns" && a.Key == prefix {
				return a.Value != ""
			}
		}
	}
	return false
}

// freeze copies an etree element into the read-only tree
func freeze(src *etree.Element) *Element {
	e := &Element{
		space:  src.NamespaceURI(),
		prefix: src.Space,
		tag:    src.Tag,
	}

	if len(src.Attr) > 0 {
		e.attrs = make([]Attr, 0, len(src.Attr))
		for _, a := range src.Attr {
			e.attrs = append(e.attrs, Attr{Space: a.Space, Key: a.Key, Value: a.Value})
		}
	}

	var text strings.Builder
	for _, tok := range src.Child {
		switch t := tok.(type) {
		case *etree.Element:
			child := freeze(t)
			e.children = append(e.children, child)
			text.WriteString(child.text)
		case *etree.CharData:
			text.WriteString(t.Data)
		}
	}
	e.text = text.String()

	return e
}
