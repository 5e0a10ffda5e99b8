package xbrl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quarterlyInstance = `<?xml version="1.0" encoding="UTF-8"?>
<xbrli:xbrl xmlns:xbrli="http://www.xbrl.org/2003/instance"
            xmlns:iso4217="http://www.xbrl.org/2003/iso4217"
            xmlns:xlink="http://www.w3.org/1999/xlink">
  <link:schemaRef xmlns:link="http://www.xbrl.org/2003/linkbase" xlink:type="simple" xlink:href="jpcrp040300-q1r-001.xsd"/>
  <xbrli:context id="CurrentYTDDuration">
    <xbrli:entity>
      <xbrli:identifier scheme="http://disclosure.edinet-fsa.go.jp">E00001-000</xbrli:identifier>
    </xbrli:entity>
    <xbrli:period>
      <xbrli:startDate>2015-01-01</xbrli:startDate>
      <xbrli:endDate>2015-03-31</xbrli:endDate>
    </xbrli:period>
  </xbrli:context>
  <xbrli:context id="CurrentQuarterInstant_NonConsolidatedMember">
    <xbrli:entity>
      <xbrli:identifier scheme="http://disclosure.edinet-fsa.go.jp">E00001-000</xbrli:identifier>
      <xbrli:segment>
        <xbrldi:explicitMember xmlns:xbrldi="http://xbrl.org/2006/xbrldi" dimension="jppfs_cor:ConsolidatedOrNonConsolidatedAxis">jppfs_cor:NonConsolidatedMember</xbrldi:explicitMember>
      </xbrli:segment>
    </xbrli:entity>
    <xbrli:period>
      <xbrli:instant>2015-03-31</xbrli:instant>
    </xbrli:period>
  </xbrli:context>
  <xbrli:unit id="JPY">
    <xbrli:measure>iso4217:JPY</xbrli:measure>
  </xbrli:unit>
  <xbrli:unit id="JPYPerShares">
    <xbrli:divide>
      <xbrli:unitNumerator><xbrli:measure>iso4217:JPY</xbrli:measure></xbrli:unitNumerator>
      <xbrli:unitDenominator><xbrli:measure>xbrli:shares</xbrli:measure></xbrli:unitDenominator>
    </xbrli:divide>
  </xbrli:unit>
  <jppfs_cor:NetSales xmlns:jppfs_cor="http://disclosure.edinet-fsa.go.jp/taxonomy/jppfs/2014-03-31/jppfs_cor" contextRef="CurrentYTDDuration" unitRef="JPY" decimals="-6">1000000000</jppfs_cor:NetSales>
  <jppfs_cor:CostOfSales contextRef="CurrentYTDDuration" unitRef="JPY" decimals="-6">400000000</jppfs_cor:CostOfSales>
</xbrli:xbrl>`

func TestParse_Namespaces(t *testing.T) {
	doc, err := ParseString(quarterlyInstance)
	require.NoError(t, err)

	// Declarations are scattered across the root and nested elements.
	assert.Equal(t, map[string]string{
		"xbrli":     "http://www.xbrl.org/2003/instance",
		"iso4217":   "http://www.xbrl.org/2003/iso4217",
		"xlink":     "http://www.w3.org/1999/xlink",
		"link":      "http://www.xbrl.org/2003/linkbase",
		"xbrldi":    "http://xbrl.org/2006/xbrldi",
		"jppfs_cor": "http://disclosure.edinet-fsa.go.jp/taxonomy/jppfs/2014-03-31/jppfs_cor",
	}, doc.Namespaces)
}

func TestParse_FactAttributes(t *testing.T) {
	doc, err := ParseString(quarterlyInstance)
	require.NoError(t, err)

	var netSales *Element
	doc.Walk(func(_ ElementID, el *Element, _ int) bool {
		if el.Name == "jppfs_cor:NetSales" {
			netSales = el
		}
		return true
	})
	require.NotNil(t, netSales)

	require.NotNil(t, netSales.ContextRef)
	assert.Equal(t, "CurrentYTDDuration", *netSales.ContextRef)
	require.NotNil(t, netSales.UnitRef)
	assert.Equal(t, "JPY", *netSales.UnitRef)

	text, ok := netSales.Text()
	assert.True(t, ok)
	assert.Equal(t, "1000000000", text)

	// Only generic attributes remain in the attribute map.
	assert.Equal(t, map[string]string{"decimals": "-6"}, netSales.Attributes)
	assert.Equal(t, "jppfs_cor", netSales.Prefix())
	assert.Equal(t, "NetSales", netSales.LocalName())
}

func TestParse_DefaultNamespaceIsGenericAttribute(t *testing.T) {
	doc, err := ParseString(`<root xmlns="urn:default" xmlns:a="urn:a"><a:x/></root>`)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"a": "urn:a"}, doc.Namespaces)
	root, ok := doc.Element(doc.Roots()[0])
	require.True(t, ok)
	assert.Equal(t, map[string]string{"xmlns": "urn:default"}, root.Attributes)
}

func TestParse_NamespaceRedeclarationLastWins(t *testing.T) {
	doc, err := ParseString(`<r xmlns:p="urn:one"><c xmlns:p="urn:two"/></r>`)
	require.NoError(t, err)
	assert.Equal(t, "urn:two", doc.Namespaces["p"])
}

func TestParse_ElementCount(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"declaration only", `<?xml version="1.0"?>`},
		{"single element", `<a/>`},
		{"siblings", `<a><b/><c/><d/></a>`},
		{"nested", `<a><b><c><d>1</d></c></b><e>2</e></a>`},
		{"sample instance", quarterlyInstance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseString(tt.input)
			require.NoError(t, err)

			want := countStartTags(tt.input)
			assert.Equal(t, want, doc.Len())

			visited := 0
			doc.Walk(func(_ ElementID, _ *Element, _ int) bool {
				visited++
				return true
			})
			assert.Equal(t, want, visited)
		})
	}
}

// countStartTags counts element start tags in simple well-formed input.
func countStartTags(s string) int {
	n := 0
	for i := 0; i < len(s)-1; i++ {
		if s[i] != '<' {
			continue
		}
		switch s[i+1] {
		case '/', '?', '!':
			continue
		}
		n++
	}
	return n
}

func TestParse_DocumentOrder(t *testing.T) {
	doc, err := ParseString(`<a><b><c/></b><d><e/><f/></d></a><g/>`)
	require.NoError(t, err)

	var names []string
	var depths []int
	doc.Walk(func(_ ElementID, el *Element, depth int) bool {
		names = append(names, el.Name)
		depths = append(depths, depth)
		return true
	})
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g"}, names)
	assert.Equal(t, []int{0, 1, 2, 1, 2, 2, 0}, depths)
	assert.Len(t, doc.Roots(), 2)
}

func TestParse_WalkPrunesSubtree(t *testing.T) {
	doc, err := ParseString(`<a><skip><x/><y/></skip><keep/></a>`)
	require.NoError(t, err)

	var names []string
	doc.Walk(func(_ ElementID, el *Element, _ int) bool {
		names = append(names, el.Name)
		return el.Name != "skip"
	})
	assert.Equal(t, []string{"a", "skip", "keep"}, names)
}

func TestParse_LastTextWins(t *testing.T) {
	doc, err := ParseString(`<a>first<!-- split -->second</a>`)
	require.NoError(t, err)

	root, _ := doc.Element(doc.Roots()[0])
	text, ok := root.Text()
	assert.True(t, ok)
	assert.Equal(t, "second", text)
}

func TestParse_WhitespaceDoesNotReplaceText(t *testing.T) {
	doc, err := ParseString("<a>5<b>1</b>\n   </a>")
	require.NoError(t, err)

	root, _ := doc.Element(doc.Roots()[0])
	text, _ := root.Text()
	assert.Equal(t, "5", text)
}

func TestParse_TextIsTrimmed(t *testing.T) {
	doc, err := ParseString("<a>\n  42  \n</a>")
	require.NoError(t, err)

	root, _ := doc.Element(doc.Roots()[0])
	text, _ := root.Text()
	assert.Equal(t, "42", text)
}

func TestParse_ContainerHasNoValue(t *testing.T) {
	doc, err := ParseString("<a>\n  <b/>\n</a>")
	require.NoError(t, err)

	root, _ := doc.Element(doc.Roots()[0])
	_, ok := root.Text()
	assert.False(t, ok)
	assert.Nil(t, root.ContextRef)
	assert.Equal(t, "", root.Context())
}

func TestParse_DeepNesting(t *testing.T) {
	const depth = 5000
	input := strings.Repeat("<n>", depth) + "7" + strings.Repeat("</n>", depth)

	doc, err := ParseString(input)
	require.NoError(t, err)
	assert.Equal(t, depth, doc.Len())
	assert.Equal(t, depth, doc.Stats().MaxDepth)
}

func TestParse_StructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		kind StructuralKind
		elem string
	}{
		{"unterminated root", `<a><b>1</b>`, Unterminated, "a"},
		{"unterminated child", `<a><b>1`, Unterminated, "b"},
		{"end without start", `<a/></b>`, UnexpectedEnd, "b"},
		{"mismatched end", `<a><b></c></a>`, MismatchedEnd, "c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseString(tt.in)
			require.Error(t, err)
			assert.Nil(t, doc, "no partial tree on failure")

			var se *StructuralError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.kind, se.Kind)
			assert.Equal(t, tt.elem, se.Name)
			assert.True(t, IsMalformed(err))
		})
	}
}

func TestParse_SyntaxErrorCarriesPosition(t *testing.T) {
	doc, err := ParseString("<a>\n<b attr=unquoted/></a>")
	require.Error(t, err)
	assert.Nil(t, doc)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Line)
	assert.True(t, IsMalformed(err))
	assert.Contains(t, err.Error(), "line 2")
}

func TestParse_Contexts(t *testing.T) {
	doc, err := ParseString(quarterlyInstance)
	require.NoError(t, err)

	require.Len(t, doc.Contexts, 2)

	ytd := doc.Contexts["CurrentYTDDuration"]
	assert.Equal(t, "E00001-000", ytd.EntityIdentifier)
	assert.Equal(t, "http://disclosure.edinet-fsa.go.jp", ytd.EntityScheme)
	assert.Equal(t, "2015-01-01", ytd.StartDate)
	assert.Equal(t, "2015-03-31", ytd.EndDate)
	assert.False(t, ytd.IsInstant())

	inst := doc.Contexts["CurrentQuarterInstant_NonConsolidatedMember"]
	assert.True(t, inst.IsInstant())
	assert.Equal(t, "2015-03-31", inst.Instant)
	assert.Equal(t, []DimensionMember{{
		Dimension: "jppfs_cor:ConsolidatedOrNonConsolidatedAxis",
		Member:    "jppfs_cor:NonConsolidatedMember",
	}}, inst.Members)
}

func TestParse_Units(t *testing.T) {
	doc, err := ParseString(quarterlyInstance)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"JPY":          "iso4217:JPY",
		"JPYPerShares": "iso4217:JPY/xbrli:shares",
	}, doc.Units)
}

func TestParse_Stats(t *testing.T) {
	doc, err := ParseString(quarterlyInstance)
	require.NoError(t, err)

	s := doc.Stats()
	assert.Equal(t, 1, s.Roots)
	assert.Equal(t, 2, s.Facts)
	assert.Equal(t, 2, s.Contexts)
	assert.Equal(t, 2, s.Units)
	assert.Equal(t, 6, s.Namespaces)
	assert.Equal(t, doc.Len(), s.Elements)
}

func TestDocument_ElementLookup(t *testing.T) {
	doc, err := ParseString(`<a/>`)
	require.NoError(t, err)

	_, ok := doc.Element(InvalidElement)
	assert.False(t, ok)
	_, ok = doc.Element(ElementID(doc.Len()))
	assert.False(t, ok)

	var nilDoc *Document
	assert.Equal(t, 0, nilDoc.Len())
	_, ok = nilDoc.Element(0)
	assert.False(t, ok)
}
