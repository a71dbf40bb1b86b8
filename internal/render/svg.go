// Package render draws laid-out sector hierarchies as SVG sunbursts,
// terminal trees and flat CSV exports.
package render

import (
	"fmt"
	"html"
	"io"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/shopspring/decimal"

	"github.com/aims-dev/sectorburst/internal/layout"
	"github.com/aims-dev/sectorburst/internal/model"
)

// Options holds SVG rendering parameters.
type Options struct {
	Width       int     // canvas width in pixels
	Height      int     // canvas height in pixels
	InnerRadius float64 // radius of the hole in the middle
	RingWidth   float64 // width of each of the three rings
	Background  string  // background fill, empty for transparent
	Stroke      string  // segment outline color
	Title       string  // optional chart title
}

// DefaultOptions returns sensible defaults for a 640x640 chart.
func DefaultOptions() Options {
	return Options{
		Width:       640,
		Height:      640,
		InnerRadius: 60,
		RingWidth:   80,
		Background:  "#ffffff",
		Stroke:      "#ffffff",
	}
}

// fullTurn is the span at which a segment is drawn as two half arcs;
// an SVG arc cannot start and end on the same point.
const fullTurn = 359.999

// Chart is a drawable, interactive sunburst.
type Chart struct {
	layout   *layout.Layout
	colors   map[model.Path]colorful.Color
	opts     Options
	handlers Handlers
}

// NewChart creates a Chart. A nil layout draws an empty placeholder.
func NewChart(l *layout.Layout, colors map[model.Path]colorful.Color, opts Options, h Handlers) *Chart {
	if opts.Width == 0 || opts.Height == 0 {
		d := DefaultOptions()
		opts.Width, opts.Height = d.Width, d.Height
	}
	if opts.RingWidth <= 0 {
		opts.RingWidth = DefaultOptions().RingWidth
	}
	if opts.Stroke == "" {
		opts.Stroke = DefaultOptions().Stroke
	}
	return &Chart{layout: l, colors: colors, opts: opts, handlers: h}
}

// Center returns the canvas center.
func (c *Chart) Center() (x, y float64) {
	return float64(c.opts.Width) / 2, float64(c.opts.Height) / 2
}

// Radii returns the inner and outer radius of a level's ring.
func (c *Chart) Radii(level model.Level) (inner, outer float64) {
	inner = c.opts.InnerRadius + float64(level)*c.opts.RingWidth
	return inner, inner + c.opts.RingWidth
}

// SVG renders the chart to a string.
func (c *Chart) SVG() string {
	var sb strings.Builder
	_ = c.WriteSVG(&sb)
	return sb.String()
}

// WriteSVG renders the chart to w.
func (c *Chart) WriteSVG(w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		c.opts.Width, c.opts.Height, c.opts.Width, c.opts.Height)
	sb.WriteString("\n")

	if c.opts.Background != "" {
		fmt.Fprintf(&sb, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`+"\n",
			c.opts.Width, c.opts.Height, html.EscapeString(c.opts.Background))
	}
	if c.opts.Title != "" {
		fmt.Fprintf(&sb, `<text x="%d" y="24" text-anchor="middle" font-family="sans-serif" font-size="16">%s</text>`+"\n",
			c.opts.Width/2, html.EscapeString(c.opts.Title))
	}

	if c.layout == nil {
		cx, cy := c.Center()
		fmt.Fprintf(&sb, `<text x="%s" y="%s" text-anchor="middle" font-family="sans-serif" font-size="14" fill="#888888">No sector allocations</text>`+"\n",
			num(cx), num(cy))
	} else {
		c.layout.Walk(func(n *layout.Node) bool {
			c.writeSegment(&sb, n)
			return true
		})
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func (c *Chart) writeSegment(sb *strings.Builder, n *layout.Node) {
	if n.Arc.Span() <= 0 {
		return
	}
	cx, cy := c.Center()
	r0, r1 := c.Radii(n.Level)

	fill := "#cccccc"
	if col, ok := c.colors[n.Path]; ok {
		fill = col.Hex()
	}

	fmt.Fprintf(sb, `<path d="%s" fill="%s" stroke="%s" data-path="%s" data-code="%s" data-level="%s" data-percentage="%s"><title>%s</title></path>`+"\n",
		sectorPath(cx, cy, r0, r1, n.Arc.Start, n.Arc.End),
		fill,
		html.EscapeString(c.opts.Stroke),
		html.EscapeString(string(n.Path)),
		html.EscapeString(n.Code),
		n.Level,
		n.Percentage.String(),
		html.EscapeString(Tooltip(n)),
	)
}

// Tooltip returns the hover text of a node.
func Tooltip(n *layout.Node) string {
	return fmt.Sprintf("%s %s (%s): %s", n.Code, n.Name, n.Level, FormatPercent(n.Percentage))
}

// FormatPercent formats a percentage with two decimals.
func FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}

// sectorPath returns the SVG path of an annular sector between radii r0 < r1
// and angles a0 < a1 (degrees, clockwise from 12 o'clock).
func sectorPath(cx, cy, r0, r1, a0, a1 float64) string {
	if a1-a0 >= fullTurn {
		mid := a0 + (a1-a0)/2
		return sectorPath(cx, cy, r0, r1, a0, mid) + " " + sectorPath(cx, cy, r0, r1, mid, a1)
	}

	large := 0
	if a1-a0 > 180 {
		large = 1
	}
	x0, y0 := polar(cx, cy, r1, a0)
	x1, y1 := polar(cx, cy, r1, a1)
	x2, y2 := polar(cx, cy, r0, a1)
	x3, y3 := polar(cx, cy, r0, a0)

	return fmt.Sprintf("M %s %s A %s %s 0 %d 1 %s %s L %s %s A %s %s 0 %d 0 %s %s Z",
		num(x0), num(y0),
		num(r1), num(r1), large, num(x1), num(y1),
		num(x2), num(y2),
		num(r0), num(r0), large, num(x3), num(y3),
	)
}

// polar converts an angle in degrees (clockwise from 12 o'clock) to canvas coordinates.
func polar(cx, cy, r, deg float64) (x, y float64) {
	rad := deg * math.Pi / 180
	return cx + r*math.Sin(rad), cy - r*math.Cos(rad)
}

func num(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
