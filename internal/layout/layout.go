// Package layout assigns sunburst angles to a sector hierarchy.
//
// Angles are in degrees, clockwise from 12 o'clock. Each level keeps a
// cumulative percentage cursor that starts at its parent's start, so
// children tile their parent's span exactly.
package layout

import (
	"github.com/shopspring/decimal"

	"github.com/aims-dev/sectorburst/internal/hierarchy"
	"github.com/aims-dev/sectorburst/internal/model"
)

var fullCircle = decimal.NewFromInt(360)

// Arc is a segment's angular span in degrees.
type Arc struct {
	Start float64 `json:"start_deg"`
	End   float64 `json:"end_deg"`
}

// Span returns End - Start.
func (a Arc) Span() float64 { return a.End - a.Start }

// Contains reports whether deg lies in [Start, End).
func (a Arc) Contains(deg float64) bool {
	return deg >= a.Start && deg < a.End
}

// Node is a hierarchy node annotated with its arc.
type Node struct {
	Path       model.Path
	Level      model.Level
	Code       string
	Name       string
	Percentage decimal.Decimal
	Arc        Arc
	Children   []*Node
}

// Layout is an annotated tree ready for colouring and rendering.
type Layout struct {
	Total decimal.Decimal
	Roots []*Node
}

// Compute lays out tree against total. It returns false when total is not
// positive; nothing should be drawn in that case.
func Compute(tree *hierarchy.Tree, total decimal.Decimal) (*Layout, bool) {
	if !total.IsPositive() || tree.IsEmpty() {
		return nil, false
	}

	l := &Layout{Total: total}
	deg := func(cum decimal.Decimal) float64 {
		return cum.Mul(fullCircle).Div(total).InexactFloat64()
	}
	span := func(from, pct decimal.Decimal) Arc {
		return Arc{Start: deg(from), End: deg(from.Add(pct))}
	}

	groupCursor := decimal.Zero
	for _, g := range tree.Groups() {
		gn := &Node{
			Path:       g.Path(),
			Level:      model.LevelGroup,
			Code:       g.Code(),
			Name:       g.Name(),
			Percentage: g.Percentage(),
			Arc:        span(groupCursor, g.Percentage()),
		}

		catCursor := groupCursor
		for _, c := range g.Categories() {
			cn := &Node{
				Path:       model.CategoryPath(g.Code(), c.Code()),
				Level:      model.LevelCategory,
				Code:       c.Code(),
				Name:       c.Name(),
				Percentage: c.Percentage(),
				Arc:        span(catCursor, c.Percentage()),
			}

			leafCursor := catCursor
			for i, s := range c.Subsectors() {
				cn.Children = append(cn.Children, &Node{
					Path:       model.SubsectorPath(g.Code(), c.Code(), i, s.Code),
					Level:      model.LevelSubsector,
					Code:       s.Code,
					Name:       s.Name,
					Percentage: s.Percentage,
					Arc:        span(leafCursor, s.Percentage),
				})
				leafCursor = leafCursor.Add(s.Percentage)
			}

			gn.Children = append(gn.Children, cn)
			catCursor = catCursor.Add(c.Percentage())
		}

		l.Roots = append(l.Roots, gn)
		groupCursor = groupCursor.Add(g.Percentage())
	}
	return l, true
}

// Total picks the layout denominator. With includeUnallocated the circle
// represents 100% less any skipped share, so the gap left after the drawn
// segments equals the unallocated remainder.
func Total(tree *hierarchy.Tree, includeUnallocated bool) decimal.Decimal {
	total := tree.Total()
	if !includeUnallocated {
		return total
	}
	whole := hierarchy.Hundred.Sub(hierarchy.Sum(tree.Skipped()))
	if total.LessThan(whole) {
		return whole
	}
	return total
}

// Walk visits nodes depth-first in drawing order. Returning false stops the walk.
func (l *Layout) Walk(fn func(n *Node) bool) {
	if l == nil {
		return
	}
	var visit func(nodes []*Node) bool
	visit = func(nodes []*Node) bool {
		for _, n := range nodes {
			if !fn(n) {
				return false
			}
			if !visit(n.Children) {
				return false
			}
		}
		return true
	}
	visit(l.Roots)
}

// Nodes returns every node depth-first.
func (l *Layout) Nodes() []*Node {
	var out []*Node
	l.Walk(func(n *Node) bool {
		out = append(out, n)
		return true
	})
	return out
}

// AtLevel returns the nodes of one ring in angular order.
func (l *Layout) AtLevel(level model.Level) []*Node {
	var out []*Node
	l.Walk(func(n *Node) bool {
		if n.Level == level {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Find returns the node with the given path.
func (l *Layout) Find(path model.Path) (*Node, bool) {
	var found *Node
	l.Walk(func(n *Node) bool {
		if n.Path == path {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}
