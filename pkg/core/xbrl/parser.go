package xbrl

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/net/html/charset"
)

// ParseString parses an in-memory document.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Parse reads a tagged document in a single forward scan and returns its
// element tree. Prefixes are kept exactly as written; nothing is validated
// against a schema.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	dec.CharsetReader = charset.NewReaderLabel

	b := NewBuilder()
	for {
		// RawToken leaves prefixes untranslated and does not pair end tags;
		// the builder does the pairing.
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, tokenError(dec, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			b.Start(qualifiedName(t.Name), attrsOf(t.Attr))
		case xml.CharData:
			b.Text(string(t))
		case xml.EndElement:
			if err := b.End(qualifiedName(t.Name)); err != nil {
				return nil, withPosition(err, dec)
			}
		}
	}

	doc, err := b.Finish()
	if err != nil {
		return nil, withPosition(err, dec)
	}
	return doc, nil
}

func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func attrsOf(in []xml.Attr) []Attr {
	if len(in) == 0 {
		return nil
	}
	out := make([]Attr, len(in))
	for i, a := range in {
		out[i] = Attr{Name: qualifiedName(a.Name), Value: a.Value}
	}
	return out
}

func tokenError(dec *xml.Decoder, err error) error {
	var syn *xml.SyntaxError
	if !errors.As(err, &syn) {
		return errors.Wrap(err, "xbrl: read document")
	}
	line, column := dec.InputPos()
	if syn.Line > 0 {
		line = syn.Line
	}
	return &ParseError{Line: line, Column: column, Offset: dec.InputOffset(), Err: err}
}

func withPosition(err error, dec *xml.Decoder) error {
	var se *StructuralError
	if errors.As(err, &se) {
		se.Line, se.Column = dec.InputPos()
	}
	return err
}
