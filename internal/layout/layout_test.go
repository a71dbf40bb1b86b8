package layout

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aims-dev/sectorburst/internal/hierarchy"
	"github.com/aims-dev/sectorburst/internal/model"
	"github.com/aims-dev/sectorburst/internal/reference"
)

func build(t *testing.T, pairs ...string) *hierarchy.Tree {
	t.Helper()
	require.Zero(t, len(pairs)%2)
	table, err := reference.Default()
	require.NoError(t, err)

	var allocs []model.Allocation
	for i := 0; i < len(pairs); i += 2 {
		allocs = append(allocs, model.Allocation{Code: pairs[i], Percentage: decimal.RequireFromString(pairs[i+1])})
	}
	return hierarchy.NewBuilder(table, zerolog.Nop()).Build(allocs)
}

func TestCompute_EducationExample(t *testing.T) {
	tree := build(t, "11120", "33.3", "11130", "33.3", "11110", "33.3")
	l, ok := Compute(tree, tree.Total())
	require.True(t, ok)

	require.Len(t, l.Roots, 1)
	g := l.Roots[0]
	assert.Equal(t, 0.0, g.Arc.Start)
	assert.Equal(t, 360.0, g.Arc.End)

	leaves := l.AtLevel(model.LevelSubsector)
	require.Len(t, leaves, 3)
	for _, leaf := range leaves {
		assert.InDelta(t, 120.0, leaf.Arc.Span(), 1e-9)
	}
	assert.Equal(t, 360.0, leaves[2].Arc.End)
}

func TestCompute_ChildrenTileParent(t *testing.T) {
	tree := build(t,
		"11120", "12.5", "12220", "7.25", "11220", "30", "12250", "0.01",
		"23230", "22.22", "23630", "3", "72010", "13.33", "11130", "1.69",
	)
	l, ok := Compute(tree, tree.Total())
	require.True(t, ok)

	var check func(parent *Node)
	check = func(parent *Node) {
		if len(parent.Children) == 0 {
			return
		}
		assert.Equal(t, parent.Arc.Start, parent.Children[0].Arc.Start, "first child of %s starts at parent start", parent.Path)
		for i := 1; i < len(parent.Children); i++ {
			assert.Equal(t, parent.Children[i-1].Arc.End, parent.Children[i].Arc.Start, "children of %s must not overlap or gap", parent.Path)
		}
		assert.Equal(t, parent.Arc.End, parent.Children[len(parent.Children)-1].Arc.End, "last child of %s ends at parent end", parent.Path)
		for _, c := range parent.Children {
			check(c)
		}
	}
	for _, root := range l.Roots {
		check(root)
	}

	for i := 1; i < len(l.Roots); i++ {
		assert.Equal(t, l.Roots[i-1].Arc.End, l.Roots[i].Arc.Start)
	}
	assert.Equal(t, 360.0, l.Roots[len(l.Roots)-1].Arc.End)
}

func TestCompute_AngleConservation(t *testing.T) {
	tree := build(t, "11120", "20", "12220", "30", "31120", "10")
	total := decimal.NewFromInt(100)
	l, ok := Compute(tree, total)
	require.True(t, ok)

	for _, level := range []model.Level{model.LevelGroup, model.LevelCategory, model.LevelSubsector} {
		sum := 0.0
		for _, n := range l.AtLevel(level) {
			sum += n.Arc.Span()
			assert.InDelta(t, n.Percentage.InexactFloat64()/100*360, n.Arc.Span(), 1e-9)
		}
		assert.InDelta(t, 360*0.6, sum, 1e-9, "level %s", level)
	}
}

func TestCompute_ZeroTotal(t *testing.T) {
	tree := build(t, "11120", "0")
	l, ok := Compute(tree, tree.Total())
	assert.False(t, ok)
	assert.Nil(t, l)

	empty := build(t)
	_, ok = Compute(empty, hierarchy.Hundred)
	assert.False(t, ok, "empty tree has nothing to draw")
}

func TestTotal(t *testing.T) {
	partial := build(t, "11120", "40")
	assert.True(t, Total(partial, false).Equal(decimal.NewFromInt(40)))
	assert.True(t, Total(partial, true).Equal(decimal.NewFromInt(100)))

	over := build(t, "11120", "80", "12220", "40")
	assert.True(t, Total(over, true).Equal(decimal.NewFromInt(120)), "over-allocation keeps its own total")
}

func TestTotal_SkippedCodesLeaveNoGap(t *testing.T) {
	tree := build(t, "11120", "60", "99999", "40")
	require.Len(t, tree.Skipped(), 1)
	assert.True(t, Total(tree, true).Equal(decimal.NewFromInt(60)))

	l, ok := Compute(tree, Total(tree, true))
	require.True(t, ok)
	assert.Equal(t, 360.0, l.Roots[0].Arc.End)

	partial := build(t, "11120", "30", "99999", "20")
	assert.True(t, Total(partial, true).Equal(decimal.NewFromInt(80)), "gap is the 50% remainder")

	mostlySkipped := build(t, "11120", "10", "99999", "150")
	assert.True(t, Total(mostlySkipped, true).Equal(decimal.NewFromInt(10)))
}

func TestCompute_IncludeUnallocatedLeavesGap(t *testing.T) {
	tree := build(t, "11120", "25")
	l, ok := Compute(tree, Total(tree, true))
	require.True(t, ok)
	assert.Equal(t, 90.0, l.Roots[0].Arc.End)
}

func TestWalkOrderAndFind(t *testing.T) {
	tree := build(t, "11120", "50", "12220", "50")
	l, ok := Compute(tree, tree.Total())
	require.True(t, ok)

	var paths []model.Path
	for _, n := range l.Nodes() {
		paths = append(paths, n.Path)
	}
	assert.Equal(t, []model.Path{
		"110", "110/111", "110/111/11120@0",
		"120", "120/122", "120/122/12220@0",
	}, paths)

	n, ok := l.Find("120/122")
	require.True(t, ok)
	assert.Equal(t, model.LevelCategory, n.Level)
	assert.Equal(t, Arc{Start: 180, End: 360}, n.Arc)

	_, ok = l.Find("999")
	assert.False(t, ok)

	var nilLayout *Layout
	assert.Empty(t, nilLayout.Nodes())
}

func TestArc(t *testing.T) {
	a := Arc{Start: 10, End: 40}
	assert.Equal(t, 30.0, a.Span())
	assert.True(t, a.Contains(10))
	assert.True(t, a.Contains(39.9))
	assert.False(t, a.Contains(40))
	assert.False(t, a.Contains(5))
}
