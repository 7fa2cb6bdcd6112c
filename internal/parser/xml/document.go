package xml

// Attr is an attribute as written in the source document
type Attr struct {
	// Space is the namespace prefix as written, "" for unprefixed attributes
	Space string
	Key   string
	Value string
}

// Element is a read-only node of a parsed document.
// Elements are only built by Parse and have no mutators.
type Element struct {
	space    string
	prefix   string
	tag      string
	attrs    []Attr
	children []*Element
	text     string
}

// Tag returns the local name of the element
func (e *Element) Tag() string {
	return e.tag
}

// Space returns the resolved namespace URI of the element
func (e *Element) Space() string {
	return e.space
}

// Prefix returns the namespace prefix as written in the source
func (e *Element) Prefix() string {
	return e.prefix
}

// Attr returns the value of the unprefixed attribute with the given key
func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.attrs {
		if a.Space == "" && a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Attrs returns a copy of the element attributes in source order
func (e *Element) Attrs() []Attr {
	out := make([]Attr, len(e.attrs))
	copy(out, e.attrs)
	return out
}

// Children returns a copy of the child elements in source order
func (e *Element) Children() []*Element {
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// Text returns the concatenated character data of the element and all its
// descendants, untrimmed
func (e *Element) Text() string {
	return e.text
}

// Find returns the first descendant (excluding e) in document order with the
// given namespace URI and local name, or nil
func (e *Element) Find(space, tag string) *Element {
	for _, c := range e.children {
		if c.matches(space, tag) {
			return c
		}
		if found := c.Find(space, tag); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant (excluding e) in document order with the
// given namespace URI and local name
func (e *Element) FindAll(space, tag string) []*Element {
	var out []*Element
	e.collect(space, tag, &out)
	return out
}

func (e *Element) collect(space, tag string, out *[]*Element) {
	for _, c := range e.children {
		if c.matches(space, tag) {
			*out = append(*out, c)
		}
		c.collect(space, tag, out)
	}
}

func (e *Element) matches(space, tag string) bool {
	return e.tag == tag && e.space == space
}

// Document is an immutable parsed document
type Document struct {
	root *Element
}

// Root returns the document element
func (d *Document) Root() *Element {
	return d.root
}

// Find returns the first element of the whole document, root included, with
// the given namespace URI and local name, or nil
func (d *Document) Find(space, tag string) *Element {
	if d.root.matches(space, tag) {
		return d.root
	}
	return d.root.Find(space, tag)
}

// FindAll returns every element of the whole document, root included, with
// the given namespace URI and local name
func (d *Document) FindAll(space, tag string) []*Element {
	var out []*Element
	if d.root.matches(space, tag) {
		out = append(out, d.root)
	}
	d.root.collect(space, tag, &out)
	return out
}
