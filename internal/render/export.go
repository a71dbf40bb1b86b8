package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/aims-dev/sectorburst/internal/layout"
	"github.com/aims-dev/sectorburst/internal/model"
)

// ExportHeader is the CSV header of a flat layout export.
const ExportHeader = "level,path,code,name,percentage,start_deg,end_deg,color"

// WriteCSV writes every laid-out node as one CSV row, depth-first.
func WriteCSV(w io.Writer, l *layout.Layout, colors map[model.Path]colorful.Color) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(ExportHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	var err error
	row := 2
	l.Walk(func(n *layout.Node) bool {
		color := ""
		if c, ok := colors[n.Path]; ok {
			color = c.Hex()
		}
		rec := []string{
			n.Level.String(),
			string(n.Path),
			n.Code,
			n.Name,
			n.Percentage.String(),
			strconv.FormatFloat(n.Arc.Start, 'f', 4, 64),
			strconv.FormatFloat(n.Arc.End, 'f', 4, 64),
			color,
		}
		if werr := cw.Write(rec); werr != nil {
			err = fmt.Errorf("writing row %d: %w", row, werr)
			return false
		}
		row++
		return true
	})
	if err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}
