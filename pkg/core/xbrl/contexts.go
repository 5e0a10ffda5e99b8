package xbrl

import "strings"

// Context is the period and entity metadata declared by a context element.
type Context struct {
	ID               string            `json:"id"`
	EntityScheme     string            `json:"entity_scheme,omitempty"`
	EntityIdentifier string            `json:"entity_identifier,omitempty"`
	StartDate        string            `json:"start_date,omitempty"`
	EndDate          string            `json:"end_date,omitempty"`
	Instant          string            `json:"instant,omitempty"`
	Members          []DimensionMember `json:"members,omitempty"`
}

// DimensionMember is an explicit dimension qualifier of a context.
type DimensionMember struct {
	Dimension string `json:"dimension"`
	Member    string `json:"member"`
}

// IsInstant reports whether the context describes a point in time.
func (c Context) IsInstant() bool {
	return c.Instant != ""
}

// indexResources fills Contexts and Units from the finished tree.
func (d *Document) indexResources() {
	d.Walk(func(id ElementID, el *Element, _ int) bool {
		switch {
		case localNameIs(el.Name, "context"):
			if ctxID, ok := el.Attr("id"); ok {
				d.Contexts[ctxID] = d.buildContext(ctxID, id)
			}
			return false
		case localNameIs(el.Name, "unit"):
			if unitID, ok := el.Attr("id"); ok {
				d.Units[unitID] = d.unitMeasure(id)
			}
			return false
		}
		return true
	})
}

func (d *Document) buildContext(ctxID string, root ElementID) Context {
	ctx := Context{ID: ctxID}
	d.WalkFrom(root, func(_ ElementID, el *Element, _ int) bool {
		text, _ := el.Text()
		switch {
		case localNameIs(el.Name, "identifier"):
			ctx.EntityScheme, _ = el.Attr("scheme")
			ctx.EntityIdentifier = text
		case localNameIs(el.Name, "startDate"):
			ctx.StartDate = text
		case localNameIs(el.Name, "endDate"):
			ctx.EndDate = text
		case localNameIs(el.Name, "instant"):
			ctx.Instant = text
		case localNameIs(el.Name, "explicitMember"):
			dim, _ := el.Attr("dimension")
			ctx.Members = append(ctx.Members, DimensionMember{Dimension: dim, Member: text})
		}
		return true
	})
	return ctx
}

// unitMeasure returns "a" for simple units and "a/b" for divide units.
func (d *Document) unitMeasure(root ElementID) string {
	var numerator, denominator []string
	inDenominator := -1

	d.WalkFrom(root, func(_ ElementID, el *Element, depth int) bool {
		if inDenominator >= 0 && depth <= inDenominator {
			inDenominator = -1
		}
		switch {
		case localNameIs(el.Name, "unitDenominator"):
			inDenominator = depth
		case localNameIs(el.Name, "measure"):
			text, _ := el.Text()
			if inDenominator >= 0 {
				denominator = append(denominator, text)
			} else {
				numerator = append(numerator, text)
			}
		}
		return true
	})

	measure := strings.Join(numerator, "*")
	if len(denominator) > 0 {
		measure += "/" + strings.Join(denominator, "*")
	}
	return measure
}
