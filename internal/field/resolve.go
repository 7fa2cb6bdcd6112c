// Package field resolves slash-separated element paths against NF-e and CT-e
// document trees.
package field

import (
	"strings"

	"github.com/rezonia/cte-checker/internal/model"
	"github.com/rezonia/cte-checker/internal/parser/xml"
)

// Namespaces is the lookup order tried for every path segment
var Namespaces = [...]string{model.NamespaceNFe, model.NamespaceCTe}

// Path is a sequence of element local names to descend
type Path []string

// ParsePath splits "dest/enderDest/xLgr" into a Path, dropping empty segments
func ParsePath(s string) Path {
	parts := strings.Split(s, "/")
	path := make(Path, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			path = append(path, p)
		}
	}
	return path
}

func (p Path) String() string {
	return strings.Join(p, "/")
}

// MarshalText encodes the path in its slash-separated form
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Path) UnmarshalText(text []byte) error {
	*p = ParsePath(string(text))
	return nil
}

// scope is a node whose descendants can be searched by namespace and tag
type scope interface {
	Find(space, tag string) *xml.Element
}

// Resolve descends path from the document, taking at each step the first
// matching element among the current node's descendants, in the NF-e namespace
// first and the CT-e namespace second. It returns the trimmed text content of
// the last element, or false when a step has no match or the text is blank.
func Resolve(doc *xml.Document, path Path) (string, bool) {
	if doc == nil || len(path) == 0 {
		return "", false
	}

	var current scope = doc
	var el *xml.Element
	for _, segment := range path {
		el = lookup(current, segment)
		if el == nil {
			return "", false
		}
		current = el
	}

	text := strings.TrimSpace(el.Text())
	if text == "" {
		return "", false
	}
	return text, true
}

func lookup(s scope, tag string) *xml.Element {
	for _, space := range Namespaces {
		if el := s.Find(space, tag); el != nil {
			return el
		}
	}
	return nil
}
