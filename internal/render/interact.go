package render

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/aims-dev/sectorburst/internal/layout"
	"github.com/aims-dev/sectorburst/internal/model"
)

// HoverEvent carries the tooltip data of a hovered segment.
type HoverEvent struct {
	Path       model.Path      `json:"path"`
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Level      model.Level     `json:"level"`
	Percentage decimal.Decimal `json:"percentage"`
}

// ClickEvent identifies a clicked segment.
type ClickEvent struct {
	Code  string      `json:"code"`
	Level model.Level `json:"level"`
}

// Handlers receives interaction events. Nil handlers are ignored.
type Handlers struct {
	OnHover        func(HoverEvent)
	OnSegmentClick func(ClickEvent)
}

// SegmentAt returns the segment under canvas point (x, y).
func (c *Chart) SegmentAt(x, y float64) (*layout.Node, bool) {
	if c.layout == nil {
		return nil, false
	}
	cx, cy := c.Center()
	dx, dy := x-cx, y-cy
	r := math.Hypot(dx, dy)
	if r < c.opts.InnerRadius {
		return nil, false
	}
	level := model.Level(int((r - c.opts.InnerRadius) / c.opts.RingWidth))
	if level > model.LevelSubsector {
		return nil, false
	}

	deg := math.Atan2(dx, -dy) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}

	var hit *layout.Node
	c.layout.Walk(func(n *layout.Node) bool {
		if n.Level == level && n.Arc.Contains(deg) {
			hit = n
			return false
		}
		return true
	})
	return hit, hit != nil
}

// Hover forwards the segment under (x, y) to OnHover. It reports whether a
// segment was hit.
func (c *Chart) Hover(x, y float64) bool {
	n, ok := c.SegmentAt(x, y)
	if !ok {
		return false
	}
	if c.handlers.OnHover != nil {
		c.handlers.OnHover(NewHoverEvent(n))
	}
	return true
}

// Click forwards the segment under (x, y) to OnSegmentClick.
func (c *Chart) Click(x, y float64) bool {
	n, ok := c.SegmentAt(x, y)
	if !ok {
		return false
	}
	if c.handlers.OnSegmentClick != nil {
		c.handlers.OnSegmentClick(ClickEvent{Code: n.Code, Level: n.Level})
	}
	return true
}

// NewHoverEvent builds the hover payload of a node.
func NewHoverEvent(n *layout.Node) HoverEvent {
	return HoverEvent{
		Path:       n.Path,
		Code:       n.Code,
		Name:       n.Name,
		Level:      n.Level,
		Percentage: n.Percentage,
	}
}
