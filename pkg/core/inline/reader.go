// Package inline converts inline-tagged HTML (iXBRL) into the same element
// tree the XML parser produces, for archives that carry no .xbrl instance.
package inline

import (
	"math"
	"strconv"
	"strings"

	"edinet_ingest/pkg/core/facts"
	"edinet_ingest/pkg/core/xbrl"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"golang.org/x/net/html"
)

// RootName is the synthetic top-level element holding all converted facts.
const RootName = "xbrli:xbrl"

// HTML parsing lower-cases tag and attribute names; fact names live in the
// name attribute and keep their case.
const (
	tagNonFraction = "ix:nonfraction"
	tagNonNumeric  = "ix:nonnumeric"
	tagContext     = "xbrli:context"
	tagUnit        = "xbrli:unit"

	selector = `ix\:nonfraction, ix\:nonnumeric, xbrli\:context, xbrli\:unit`
)

// Parse converts one or more inline documents into a single tree. Facts keep
// document order across and within documents.
func Parse(docs ...string) (*xbrl.Document, error) {
	b := xbrl.NewBuilder()
	b.Start(RootName, nil)

	for i, src := range docs {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
		if err != nil {
			return nil, errors.Wrapf(err, "inline: parse document %d", i)
		}
		declareNamespaces(b, doc)

		var emitErr error
		doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			node := sel.Get(0)
			switch node.Data {
			case tagNonFraction:
				emitNonFraction(b, sel)
			case tagNonNumeric:
				emitNonNumeric(b, sel)
			case tagContext, tagUnit:
				emitErr = emitSubtree(b, node)
			}
			return emitErr == nil
		})
		if emitErr != nil {
			return nil, errors.Wrapf(emitErr, "inline: document %d", i)
		}
	}

	if err := b.End(RootName); err != nil {
		return nil, err
	}
	return b.Finish()
}

// declareNamespaces forwards xmlns:* declarations of the html element to the
// builder as attributes of an empty marker element.
func declareNamespaces(b *xbrl.Builder, doc *goquery.Document) {
	root := doc.Find("html").First()
	if root.Length() == 0 {
		return
	}
	var decls []xbrl.Attr
	for _, a := range root.Get(0).Attr {
		if strings.HasPrefix(a.Key, "xmlns:") {
			decls = append(decls, xbrl.Attr{Name: a.Key, Value: a.Val})
		}
	}
	if len(decls) == 0 {
		return
	}
	b.Start("ix:header", decls)
	_ = b.End("ix:header")
}

func emitNonFraction(b *xbrl.Builder, sel *goquery.Selection) {
	name, ok := sel.Attr("name")
	if !ok || name == "" {
		return
	}
	b.Start(name, factAttrs(sel.Get(0)))
	if isNil, _ := sel.Attr("xsi:nil"); isNil != "true" {
		format, _ := sel.Attr("format")
		scale, _ := sel.Attr("scale")
		sign, _ := sel.Attr("sign")
		b.Text(NormalizeNumber(sel.Text(), format, scale, sign))
	}
	_ = b.End(name)
}

func emitNonNumeric(b *xbrl.Builder, sel *goquery.Selection) {
	name, ok := sel.Attr("name")
	if !ok || name == "" {
		return
	}
	b.Start(name, factAttrs(sel.Get(0)))
	b.Text(sel.Text())
	_ = b.End(name)
}

// factAttrs restores the attribute spelling the XML parser sees and drops the
// inline transformation attributes, which are applied to the value instead.
func factAttrs(n *html.Node) []xbrl.Attr {
	attrs := make([]xbrl.Attr, 0, len(n.Attr))
	for _, a := range n.Attr {
		switch a.Key {
		case "contextref":
			attrs = append(attrs, xbrl.Attr{Name: "contextRef", Value: a.Val})
		case "unitref":
			attrs = append(attrs, xbrl.Attr{Name: "unitRef", Value: a.Val})
		case "name", "format", "scale", "sign", "xsi:nil":
		default:
			attrs = append(attrs, xbrl.Attr{Name: a.Key, Value: a.Val})
		}
	}
	return attrs
}

// emitSubtree replays an element subtree into the builder with an explicit
// stack.
func emitSubtree(b *xbrl.Builder, root *html.Node) error {
	type frame struct {
		n     *html.Node
		leave bool
	}
	stack := []frame{{n: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.leave {
			if err := b.End(f.n.Data); err != nil {
				return err
			}
			continue
		}
		switch f.n.Type {
		case html.TextNode:
			b.Text(f.n.Data)
		case html.ElementNode:
			attrs := make([]xbrl.Attr, len(f.n.Attr))
			for i, a := range f.n.Attr {
				attrs[i] = xbrl.Attr{Name: a.Key, Value: a.Val}
			}
			b.Start(f.n.Data, attrs)
			stack = append(stack, frame{n: f.n, leave: true})
			for c := f.n.LastChild; c != nil; c = c.PrevSibling {
				stack = append(stack, frame{n: c})
			}
		}
	}
	return nil
}

// NormalizeNumber applies the inline transformation attributes to displayed
// text and returns a plain decimal literal. Text that cannot be read as a
// number is returned trimmed and unchanged, so the resolver skips it.
func NormalizeNumber(text, format, scale, sign string) string {
	raw := strings.TrimSpace(text)

	var digits string
	switch formatName(format) {
	case "zerodash", "fixed-zero", "fixedzero":
		digits = "0"
	case "numcommadecimal", "num-comma-decimal":
		digits = strings.NewReplacer(".", "", " ", "", "\u00a0", "").Replace(raw)
		digits = strings.Replace(digits, ",", ".", 1)
	default:
		digits = strings.NewReplacer(",", "", " ", "", "\u00a0", "").Replace(raw)
	}

	v, ok := facts.ParseNumber(digits)
	if !ok {
		return raw
	}
	if scale != "" {
		n, err := strconv.Atoi(strings.TrimSpace(scale))
		if err != nil {
			return raw
		}
		v *= math.Pow10(n)
	}
	if sign == "-" {
		v = -v
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatName(format string) string {
	if i := strings.LastIndexByte(format, ':'); i >= 0 {
		format = format[i+1:]
	}
	return strings.ToLower(format)
}
