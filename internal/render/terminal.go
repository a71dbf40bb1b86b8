package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/shopspring/decimal"

	"github.com/aims-dev/sectorburst/internal/layout"
	"github.com/aims-dev/sectorburst/internal/model"
)

const (
	swatch     = "██"
	labelWidth = 56
)

var (
	groupStyle     = lipgloss.NewStyle().Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#d62728"))
	percentStyle   = lipgloss.NewStyle().Width(9).Align(lipgloss.Right)
	indentByLevel  = map[model.Level]string{model.LevelGroup: "", model.LevelCategory: "  ", model.LevelSubsector: "    "}
	labelStyleByLv = map[model.Level]lipgloss.Style{
		model.LevelGroup:     groupStyle,
		model.LevelCategory:  lipgloss.NewStyle(),
		model.LevelSubsector: lipgloss.NewStyle(),
	}
)

// Terminal renders the layout as an indented, colored tree followed by the
// unallocated remainder and any skipped codes.
func Terminal(l *layout.Layout, colors map[model.Path]colorful.Color, remainder decimal.Decimal, skipped []model.Allocation) string {
	var sb strings.Builder

	if l == nil {
		sb.WriteString(mutedStyle.Render("No sector allocations"))
		sb.WriteString("\n")
	}

	l.Walk(func(n *layout.Node) bool {
		sw := swatch
		if col, ok := colors[n.Path]; ok {
			sw = lipgloss.NewStyle().Foreground(lipgloss.Color(col.Hex())).Render(swatch)
		}
		label := truncate(fmt.Sprintf("%s%s %s", indentByLevel[n.Level], n.Code, n.Name), labelWidth)
		label = fmt.Sprintf("%-*s", labelWidth, label)

		sb.WriteString(sw)
		sb.WriteString(" ")
		sb.WriteString(labelStyleByLv[n.Level].Render(label))
		sb.WriteString(percentStyle.Render(FormatPercent(n.Percentage)))
		sb.WriteString("\n")
		return true
	})

	footer := fmt.Sprintf("%s %-*s", "  ", labelWidth, "Unallocated")
	sb.WriteString(mutedStyle.Render(footer))
	sb.WriteString(percentStyle.Render(FormatPercent(remainder)))
	sb.WriteString("\n")

	for _, a := range skipped {
		sb.WriteString(warnStyle.Render(fmt.Sprintf("skipped unknown sector code %s (%s, %s)", a.Code, a.Name, FormatPercent(a.Percentage))))
		sb.WriteString("\n")
	}
	return sb.String()
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
