package palette

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/aims-dev/sectorburst/internal/hierarchy"
	"github.com/aims-dev/sectorburst/internal/model"
)

// maxTint keeps the lightest shade distinguishable from the background.
const maxTint = 0.9

var white = colorful.Color{R: 1, G: 1, B: 1}

// ErrEmptyPalette is returned when a scheme has no colors.
var ErrEmptyPalette = errors.New("palette has no colors")

// Scheme configures color assignment.
type Scheme struct {
	Colors        []string // hex base colors, one per group (cycled)
	CategoryTint  float64  // blend toward white for the first category
	SubsectorTint float64  // blend toward white for the first subsector
	ShadeSpread   float64  // extra tint spread across siblings
}

// DefaultColors is the D3 category10 palette.
var DefaultColors = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// DefaultScheme returns the built-in scheme.
func DefaultScheme() Scheme {
	colors := make([]string, len(DefaultColors))
	copy(colors, DefaultColors)
	return Scheme{
		Colors:        colors,
		CategoryTint:  0.25,
		SubsectorTint: 0.5,
		ShadeSpread:   0.25,
	}
}

// Palette assigns deterministic colors to hierarchy nodes.
type Palette struct {
	base   []colorful.Color
	scheme Scheme
}

// New parses a scheme's colors.
func New(s Scheme) (*Palette, error) {
	if len(s.Colors) == 0 {
		return nil, ErrEmptyPalette
	}
	base := make([]colorful.Color, len(s.Colors))
	for i, hex := range s.Colors {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("parsing palette color %d %q: %w", i, hex, err)
		}
		base[i] = c
	}
	return &Palette{base: base, scheme: s}, nil
}

// Base returns the base color for the i-th group.
func (p *Palette) Base(i int) colorful.Color {
	return p.base[i%len(p.base)]
}

// Assign maps every node path of tree to a color. Groups take palette colors
// in order; descendants are lighter tints of their group's color.
func (p *Palette) Assign(tree *hierarchy.Tree) map[model.Path]colorful.Color {
	colors := make(map[model.Path]colorful.Color)
	for gi, g := range tree.Groups() {
		base := p.Base(gi)
		colors[g.Path()] = base

		cats := g.Categories()
		for ci, c := range cats {
			colors[model.CategoryPath(g.Code(), c.Code())] = tint(base, p.scheme.CategoryTint, p.scheme.ShadeSpread, ci, len(cats))

			leaves := c.Subsectors()
			for si, s := range leaves {
				path := model.SubsectorPath(g.Code(), c.Code(), si, s.Code)
				colors[path] = tint(base, p.scheme.SubsectorTint, p.scheme.ShadeSpread, si, len(leaves))
			}
		}
	}
	return colors
}

func tint(base colorful.Color, start, spread float64, index, count int) colorful.Color {
	t := start
	if count > 0 {
		t += spread * float64(index) / float64(count)
	}
	if t > maxTint {
		t = maxTint
	}
	if t < 0 {
		t = 0
	}
	return base.BlendRgb(white, t).Clamped()
}

// Lightness returns the CIE L* of c, used to compare tints.
func Lightness(c colorful.Color) float64 {
	l, _, _ := c.Lab()
	return l
}
