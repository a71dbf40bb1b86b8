package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aims-dev/sectorburst/internal/allocation"
	"github.com/aims-dev/sectorburst/internal/layout"
	"github.com/aims-dev/sectorburst/internal/model"
	"github.com/aims-dev/sectorburst/internal/render"
	"github.com/aims-dev/sectorburst/internal/sunburst"
)

// NodeResponse is one annotated, colored node.
type NodeResponse struct {
	Path       model.Path     `json:"path"`
	Level      model.Level    `json:"level"`
	Code       string         `json:"code"`
	Name       string         `json:"name"`
	Percentage float64        `json:"percentage"`
	StartDeg   float64        `json:"start_deg"`
	EndDeg     float64        `json:"end_deg"`
	Color      string         `json:"color"`
	Children   []NodeResponse `json:"children,omitempty"`
}

// SunburstResponse is the JSON form of a pipeline result.
type SunburstResponse struct {
	Total     float64            `json:"total"`
	Remainder float64            `json:"remainder"`
	Groups    []NodeResponse     `json:"groups"`
	Skipped   []model.Allocation `json:"skipped"`
}

// HitRequest asks which segment lies under a canvas point.
type HitRequest struct {
	Allocations []model.Allocation `json:"allocations"`
	X           float64            `json:"x"`
	Y           float64            `json:"y"`
}

// HitResponse is the hover payload of a hit segment.
type HitResponse struct {
	Path       model.Path  `json:"path"`
	Code       string      `json:"code"`
	Name       string      `json:"name"`
	Level      model.Level `json:"level"`
	Percentage float64     `json:"percentage"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"sectors": s.table.Len(),
	})
}

func (s *Server) handleListSectors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.table.All())
}

func (s *Server) handleGetSector(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	entry, ok := s.table.Resolve(code)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown sector code %q", code))
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleSunburst(w http.ResponseWriter, r *http.Request) {
	allocs, ok := s.readAllocations(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toResponse(s.engine.Run(allocs)))
}

func (s *Server) handleSunburstSVG(w http.ResponseWriter, r *http.Request) {
	allocs, ok := s.readAllocations(w, r)
	if !ok {
		return
	}
	res := s.engine.Run(allocs)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	if err := res.Chart(render.Handlers{}).WriteSVG(w); err != nil {
		s.log.Error().Err(err).Msg("Failed to write SVG")
	}
}

func (s *Server) handleSunburstHit(w http.ResponseWriter, r *http.Request) {
	var req HitRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	var hit *HitResponse
	chart := s.engine.Run(req.Allocations).Chart(render.Handlers{
		OnHover: func(e render.HoverEvent) {
			hit = &HitResponse{
				Path:       e.Path,
				Code:       e.Code,
				Name:       e.Name,
				Level:      e.Level,
				Percentage: e.Percentage.InexactFloat64(),
			}
		},
	})
	if !chart.Hover(req.X, req.Y) {
		writeError(w, http.StatusNotFound, "no segment at point")
		return
	}
	writeJSON(w, http.StatusOK, hit)
}

func (s *Server) readAllocations(w http.ResponseWriter, r *http.Request) ([]model.Allocation, bool) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading request body: "+err.Error())
		return nil, false
	}
	allocs, err := allocation.DecodeJSON(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return allocs, true
}

func toResponse(res *sunburst.Result) SunburstResponse {
	out := SunburstResponse{
		Total:     res.Total.InexactFloat64(),
		Remainder: res.Remainder.InexactFloat64(),
		Groups:    []NodeResponse{},
		Skipped:   res.Tree.Skipped(),
	}
	if out.Skipped == nil {
		out.Skipped = []model.Allocation{}
	}
	if res.Layout == nil {
		return out
	}

	var convert func(n *layout.Node) NodeResponse
	convert = func(n *layout.Node) NodeResponse {
		nr := NodeResponse{
			Path:       n.Path,
			Level:      n.Level,
			Code:       n.Code,
			Name:       n.Name,
			Percentage: n.Percentage.InexactFloat64(),
			StartDeg:   n.Arc.Start,
			EndDeg:     n.Arc.End,
		}
		if c, ok := res.Colors[n.Path]; ok {
			nr.Color = c.Hex()
		}
		for _, child := range n.Children {
			nr.Children = append(nr.Children, convert(child))
		}
		return nr
	}
	for _, root := range res.Layout.Roots {
		out.Groups = append(out.Groups, convert(root))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
