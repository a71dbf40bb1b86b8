package hierarchy

import (
	"github.com/shopspring/decimal"

	"github.com/aims-dev/sectorburst/internal/model"
)

// Tree is the frozen result of one build. Nodes expose read-only accessors.
type Tree struct {
	groups  []*GroupNode
	byCode  map[string]*GroupNode
	total   decimal.Decimal
	skipped []model.Allocation
}

// GroupNode is a top-level sector group.
type GroupNode struct {
	code       string
	name       string
	percentage decimal.Decimal
	categories []*CategoryNode
	byCode     map[string]*CategoryNode
}

// CategoryNode is a 3-digit category within a group.
type CategoryNode struct {
	code       string
	name       string
	percentage decimal.Decimal
	subsectors []model.Allocation
}

// Groups returns the groups in first-seen order.
func (t *Tree) Groups() []*GroupNode {
	out := make([]*GroupNode, len(t.groups))
	copy(out, t.groups)
	return out
}

// Group returns a group by code.
func (t *Tree) Group(code string) (*GroupNode, bool) {
	g, ok := t.byCode[code]
	return g, ok
}

// Len returns the number of groups.
func (t *Tree) Len() int { return len(t.groups) }

// IsEmpty reports whether no allocation resolved.
func (t *Tree) IsEmpty() bool { return len(t.groups) == 0 }

// Total returns the sum of resolved percentages.
func (t *Tree) Total() decimal.Decimal { return t.total }

// Skipped returns the allocations whose codes did not resolve, in input order.
func (t *Tree) Skipped() []model.Allocation {
	out := make([]model.Allocation, len(t.skipped))
	copy(out, t.skipped)
	return out
}

// Code returns the group code.
func (g *GroupNode) Code() string { return g.code }

// Name returns the group name.
func (g *GroupNode) Name() string { return g.name }

// Percentage returns the sum of the group's categories.
func (g *GroupNode) Percentage() decimal.Decimal { return g.percentage }

// Path returns the node path.
func (g *GroupNode) Path() model.Path { return model.GroupPath(g.code) }

// Categories returns the categories in first-seen order.
func (g *GroupNode) Categories() []*CategoryNode {
	out := make([]*CategoryNode, len(g.categories))
	copy(out, g.categories)
	return out
}

// Category returns a category by code.
func (g *GroupNode) Category(code string) (*CategoryNode, bool) {
	c, ok := g.byCode[code]
	return c, ok
}

// Code returns the category code.
func (c *CategoryNode) Code() string { return c.code }

// Name returns the category name.
func (c *CategoryNode) Name() string { return c.name }

// Percentage returns the sum of the category's subsectors.
func (c *CategoryNode) Percentage() decimal.Decimal { return c.percentage }

// Subsectors returns the leaf allocations in input order.
func (c *CategoryNode) Subsectors() []model.Allocation {
	out := make([]model.Allocation, len(c.subsectors))
	copy(out, c.subsectors)
	return out
}
