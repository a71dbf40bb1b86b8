package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aims-dev/sectorburst/internal/model"
	"github.com/aims-dev/sectorburst/internal/palette"
	"github.com/aims-dev/sectorburst/internal/reference"
	"github.com/aims-dev/sectorburst/internal/render"
	"github.com/aims-dev/sectorburst/internal/sunburst"
)

const educationBody = `[
  {"code": "11120", "name": "Education facilities", "percentage": 33.3},
  {"code": "11130", "name": "Teacher training", "percentage": 33.3},
  {"code": "11110", "name": "Education policy", "percentage": 33.3}
]`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	table, err := reference.Default()
	require.NoError(t, err)
	p, err := palette.New(palette.DefaultScheme())
	require.NoError(t, err)
	engine := sunburst.NewEngine(table, p, sunburst.Options{Render: render.DefaultOptions()}, zerolog.Nop())
	return New(Config{Addr: ":0", Log: zerolog.Nop(), Table: table, Engine: engine})
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Greater(t, body["sectors"], float64(0))
}

func TestListSectors(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/sectors", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []model.ReferenceEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	assert.Equal(t, s.table.Len(), len(entries))
}

func TestGetSector(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/sectors/11120", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var entry model.ReferenceEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, "111", entry.CategoryCode)
	assert.Equal(t, "110", entry.GroupCode)

	rec = do(t, s, http.MethodGet, "/api/sectors/99999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "99999")
}

func TestSunburst(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/sunburst", educationBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp SunburstResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 99.9, resp.Total, 1e-9)
	assert.InDelta(t, 0.1, resp.Remainder, 1e-9)
	assert.Empty(t, resp.Skipped)

	require.Len(t, resp.Groups, 1)
	g := resp.Groups[0]
	assert.Equal(t, "110", g.Code)
	assert.Equal(t, model.LevelGroup, g.Level)
	assert.Equal(t, 0.0, g.StartDeg)
	assert.Equal(t, 360.0, g.EndDeg)
	assert.True(t, strings.HasPrefix(g.Color, "#"))

	require.Len(t, g.Children, 1)
	cat := g.Children[0]
	assert.Equal(t, "111", cat.Code)
	require.Len(t, cat.Children, 3)
	assert.Equal(t, "11120", cat.Children[0].Code)
	assert.Equal(t, 120.0, cat.Children[0].EndDeg)
	assert.Equal(t, 360.0, cat.Children[2].EndDeg)
}

func TestSunburst_Envelope(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/sunburst", `{"allocations": [{"code": "99999", "name": "Legacy", "percentage": 5}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SunburstResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Groups)
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, "99999", resp.Skipped[0].Code)
	assert.InDelta(t, 95, resp.Remainder, 1e-9)
}

func TestSunburst_BadBody(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/sunburst", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestSunburstSVG(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/sunburst/svg", educationBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<svg")
	assert.Equal(t, 5, strings.Count(rec.Body.String(), "<path "))
}

func TestSunburstHit(t *testing.T) {
	s := newTestServer(t)
	body := `{"allocations": ` + educationBody + `, "x": 320, "y": 220}`

	rec := do(t, s, http.MethodPost, "/api/sunburst/hit", body)
	require.Equal(t, http.StatusOK, rec.Code)
	var hit HitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hit))
	assert.Equal(t, "110", hit.Code)
	assert.Equal(t, model.LevelGroup, hit.Level)
	assert.InDelta(t, 99.9, hit.Percentage, 1e-9)
}

func TestSunburstHit_Miss(t *testing.T) {
	s := newTestServer(t)
	body := `{"allocations": ` + educationBody + `, "x": 320, "y": 320}`
	rec := do(t, s, http.MethodPost, "/api/sunburst/hit", body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/sunburst", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
