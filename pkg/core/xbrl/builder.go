package xbrl

import "strings"

const (
	contextRefAttr  = "contextRef"
	unitRefAttr     = "unitRef"
	namespacePrefix = "xmlns:"
)

// Attr is a qualified attribute as written in the source.
type Attr struct {
	Name  string
	Value string
}

// Builder turns a start/text/end token stream into a Document.
//
// Open elements sit on an explicit stack; an element enters the document
// arena only when its end token pops it. A Builder must not be reused after
// Finish.
type Builder struct {
	doc   *Document
	stack []Element
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{doc: newDocument()}
}

// Depth returns the number of currently open elements.
func (b *Builder) Depth() int {
	return len(b.stack)
}

// Start opens an element.
func (b *Builder) Start(name string, attrs []Attr) {
	el := Element{Name: name}
	for _, a := range attrs {
		switch {
		case a.Name == contextRefAttr:
			v := a.Value
			el.ContextRef = &v
		case a.Name == unitRefAttr:
			v := a.Value
			el.UnitRef = &v
		case strings.HasPrefix(a.Name, namespacePrefix):
			b.doc.Namespaces[a.Name[len(namespacePrefix):]] = a.Value
		default:
			if el.Attributes == nil {
				el.Attributes = make(map[string]string, len(attrs))
			}
			el.Attributes[a.Name] = a.Value
		}
	}
	b.stack = append(b.stack, el)
}

// Text sets the value of the innermost open element. Later text replaces
// earlier text. Whitespace-only text and text outside any element are
// ignored.
func (b *Builder) Text(s string) {
	if len(b.stack) == 0 {
		return
	}
	t := strings.TrimSpace(s)
	if t == "" {
		return
	}
	b.stack[len(b.stack)-1].Value = &t
}

// End closes the innermost open element. An empty name skips the name check.
func (b *Builder) End(name string) error {
	depth := len(b.stack)
	if depth == 0 {
		return &StructuralError{Kind: UnexpectedEnd, Name: name}
	}
	if name != "" && b.stack[depth-1].Name != name {
		return &StructuralError{Kind: MismatchedEnd, Name: name, Open: b.stack[depth-1].Name, Depth: depth}
	}

	el := b.stack[depth-1]
	b.stack[depth-1] = Element{}
	b.stack = b.stack[:depth-1]

	id := ElementID(len(b.doc.elements))
	b.doc.elements = append(b.doc.elements, el)

	if len(b.stack) == 0 {
		b.doc.roots = append(b.doc.roots, id)
	} else {
		parent := &b.stack[len(b.stack)-1]
		parent.Children = append(parent.Children, id)
	}
	return nil
}

// Finish returns the completed document. Open elements at this point are a
// structural failure and no partial document is returned.
func (b *Builder) Finish() (*Document, error) {
	if depth := len(b.stack); depth > 0 {
		return nil, &StructuralError{Kind: Unterminated, Name: b.stack[depth-1].Name, Depth: depth}
	}
	doc := b.doc
	b.doc = nil
	doc.indexResources()
	return doc, nil
}
