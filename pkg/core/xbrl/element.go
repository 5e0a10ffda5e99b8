// Package xbrl builds a schema-less element tree from tagged financial
// disclosure documents.
//
// Elements live in an arena owned by their Document and are addressed by
// ElementID. Each element lists its children by ID; there are no parent
// pointers. Construction and traversal both use explicit stacks, so document
// nesting depth never maps onto Go call depth.
package xbrl

import "strings"

// ElementID addresses an element inside its Document.
type ElementID int

// InvalidElement is the zero-information ID returned by failed lookups.
const InvalidElement ElementID = -1

// Element is a single tagged node.
//
// ContextRef and UnitRef carry the contextRef / unitRef attributes; they are
// never duplicated in Attributes. Namespace declarations are recorded on the
// Document, not on the element.
type Element struct {
	Name       string
	Value      *string
	Attributes map[string]string
	Children   []ElementID
	ContextRef *string
	UnitRef    *string
}

// Text returns the element's text value.
func (e *Element) Text() (string, bool) {
	if e.Value == nil {
		return "", false
	}
	return *e.Value, true
}

// Attr returns a generic attribute.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.Attributes[name]
	return v, ok
}

// Context returns the context reference, or "" when the element has none.
func (e *Element) Context() string {
	if e.ContextRef == nil {
		return ""
	}
	return *e.ContextRef
}

// Prefix returns the namespace prefix of the qualified name.
func (e *Element) Prefix() string {
	if i := strings.IndexByte(e.Name, ':'); i >= 0 {
		return e.Name[:i]
	}
	return ""
}

// LocalName returns the qualified name without its prefix.
func (e *Element) LocalName() string {
	return localName(e.Name)
}

// Document is a fully materialised tree. It is built once by a Builder and
// must be treated as read-only afterwards; it is safe for concurrent readers.
type Document struct {
	// Namespaces maps declared prefixes to namespace URIs.
	Namespaces map[string]string
	// Contexts maps context ids to their period and entity metadata.
	Contexts map[string]Context
	// Units maps unit ids to their measure (e.g. "iso4217:JPY").
	Units map[string]string

	elements []Element
	roots    []ElementID
}

func newDocument() *Document {
	return &Document{
		Namespaces: make(map[string]string),
		Contexts:   make(map[string]Context),
		Units:      make(map[string]string),
	}
}

// Roots returns the top-level elements in document order.
func (d *Document) Roots() []ElementID {
	roots := make([]ElementID, len(d.roots))
	copy(roots, d.roots)
	return roots
}

// Element returns the element with the given ID.
func (d *Document) Element(id ElementID) (*Element, bool) {
	if d == nil || id < 0 || int(id) >= len(d.elements) {
		return nil, false
	}
	return &d.elements[id], true
}

// Len returns the number of elements in the document.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.elements)
}

// WalkFunc is called for each visited element. depth is 0 for top-level
// elements. Returning false skips the element's descendants.
type WalkFunc func(id ElementID, el *Element, depth int) bool

// Walk visits every element in document (pre-)order.
func (d *Document) Walk(fn WalkFunc) {
	if d == nil {
		return
	}
	d.walk(d.roots, 0, fn)
}

// WalkFrom visits the subtree rooted at id, starting with id itself at depth 0.
func (d *Document) WalkFrom(id ElementID, fn WalkFunc) {
	if _, ok := d.Element(id); !ok {
		return
	}
	d.walk([]ElementID{id}, 0, fn)
}

type walkFrame struct {
	id    ElementID
	depth int
}

func (d *Document) walk(starts []ElementID, depth int, fn WalkFunc) {
	stack := make([]walkFrame, 0, len(starts)+16)
	for i := len(starts) - 1; i >= 0; i-- {
		stack = append(stack, walkFrame{id: starts[i], depth: depth})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		el := &d.elements[f.id]
		if !fn(f.id, el, f.depth) {
			continue
		}
		for i := len(el.Children) - 1; i >= 0; i-- {
			stack = append(stack, walkFrame{id: el.Children[i], depth: f.depth + 1})
		}
	}
}

// Stats summarises a document for diagnostics.
type Stats struct {
	Elements   int `json:"elements"`
	Roots      int `json:"roots"`
	MaxDepth   int `json:"max_depth"`
	Namespaces int `json:"namespaces"`
	Contexts   int `json:"contexts"`
	Units      int `json:"units"`
	Facts      int `json:"facts"` // elements carrying a context reference
}

// Stats walks the document once and reports its shape.
func (d *Document) Stats() Stats {
	if d == nil {
		return Stats{}
	}
	s := Stats{
		Elements:   len(d.elements),
		Roots:      len(d.roots),
		Namespaces: len(d.Namespaces),
		Contexts:   len(d.Contexts),
		Units:      len(d.Units),
	}
	d.Walk(func(_ ElementID, el *Element, depth int) bool {
		if depth+1 > s.MaxDepth {
			s.MaxDepth = depth + 1
		}
		if el.ContextRef != nil {
			s.Facts++
		}
		return true
	})
	return s
}

func localName(name string) string {
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// localNameIs compares local names case-insensitively; inline HTML readers
// hand over lower-cased tag names.
func localNameIs(name, local string) bool {
	return strings.EqualFold(localName(name), local)
}
