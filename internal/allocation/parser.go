package allocation

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/aims-dev/sectorburst/internal/model"
)

// ErrUnknownFormat is returned when no parser handles a file.
var ErrUnknownFormat = errors.New("unknown allocation format")

// Parser converts an allocation file into Allocations.
type Parser interface {
	Parse(r io.Reader) ([]model.Allocation, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// ForPath returns the parser matching a file extension.
func (r *Registry) ForPath(path string) (Parser, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "yml" {
		ext = "yaml"
	}
	p := r.Get(ext)
	if p == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Base(path))
	}
	return p, nil
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CSVParser{})
	r.Register(&YAMLParser{})
	r.Register(&JSONParser{})
	return r
}

// ReadFile parses an allocation file, picking the parser by extension.
func ReadFile(path string) ([]model.Allocation, error) {
	p, err := DefaultRegistry().ForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening allocations: %w", err)
	}
	defer f.Close()

	allocs, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return allocs, nil
}

// CSVParser reads "code,name,percentage" files with a header row.
type CSVParser struct{}

const (
	csvNumFields = 3
	csvColCode   = 0
	csvColName   = 1
	csvColPct    = 2
)

// Format returns the parser name.
func (p *CSVParser) Format() string { return "csv" }

// Parse reads a CSV allocation file.
func (p *CSVParser) Parse(r io.Reader) ([]model.Allocation, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = csvNumFields
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading allocations CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var allocs []model.Allocation
	for i, rec := range records[1:] {
		pct, err := decimal.NewFromString(strings.TrimSpace(rec[csvColPct]))
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing percentage %q: %w", i+2, rec[csvColPct], err)
		}
		allocs = append(allocs, model.Allocation{
			Code:       strings.TrimSpace(rec[csvColCode]),
			Name:       strings.TrimSpace(rec[csvColName]),
			Percentage: pct,
		})
	}
	return allocs, nil
}

// WriteCSV writes allocations in the CSVParser layout.
func WriteCSV(w io.Writer, allocs []model.Allocation) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"code", "name", "percentage"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, a := range allocs {
		if err := cw.Write([]string{a.Code, a.Name, a.Percentage.String()}); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// YAMLParser reads either a bare list of allocations or a document with an
// "allocations" key.
type YAMLParser struct{}

type yamlAllocation struct {
	Code       string `yaml:"code"`
	Name       string `yaml:"name"`
	Percentage any    `yaml:"percentage"`
}

type yamlDocument struct {
	Allocations []yamlAllocation `yaml:"allocations"`
}

// Format returns the parser name.
func (p *YAMLParser) Format() string { return "yaml" }

// Parse reads a YAML allocation file.
func (p *YAMLParser) Parse(r io.Reader) ([]model.Allocation, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading allocations YAML: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parsing allocations YAML: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	var items []yamlAllocation
	switch node.Content[0].Kind {
	case yaml.SequenceNode:
		if err := node.Content[0].Decode(&items); err != nil {
			return nil, fmt.Errorf("decoding allocations YAML: %w", err)
		}
	case yaml.MappingNode:
		var doc yamlDocument
		if err := node.Content[0].Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding allocations YAML: %w", err)
		}
		items = doc.Allocations
	default:
		return nil, errors.New("allocations YAML must be a list or a mapping with an allocations key")
	}

	var allocs []model.Allocation
	for i, item := range items {
		pct, err := toDecimal(item.Percentage)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		allocs = append(allocs, model.Allocation{
			Code:       strings.TrimSpace(item.Code),
			Name:       strings.TrimSpace(item.Name),
			Percentage: pct,
		})
	}
	return allocs, nil
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case float64:
		return decimal.NewFromFloat(x), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return decimal.Zero, fmt.Errorf("parsing percentage %q: %w", x, err)
		}
		return d, nil
	case nil:
		return decimal.Zero, errors.New("missing percentage")
	default:
		return decimal.Zero, fmt.Errorf("unsupported percentage %v (%T)", v, v)
	}
}

// JSONParser reads a JSON array of allocations or {"allocations": [...]}.
type JSONParser struct{}

// Format returns the parser name.
func (p *JSONParser) Format() string { return "json" }

// Parse reads a JSON allocation file.
func (p *JSONParser) Parse(r io.Reader) ([]model.Allocation, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading allocations JSON: %w", err)
	}
	return DecodeJSON(data)
}

// Request is the JSON envelope accepted by DecodeJSON and the HTTP API.
type Request struct {
	Allocations []model.Allocation `json:"allocations"`
}

// DecodeJSON decodes either a bare array or a Request envelope.
func DecodeJSON(data []byte) ([]model.Allocation, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, nil
	}

	var allocs []model.Allocation
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(data, &allocs); err != nil {
			return nil, fmt.Errorf("parsing allocations JSON: %w", err)
		}
	} else {
		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("parsing allocations JSON: %w", err)
		}
		allocs = req.Allocations
	}

	for i := range allocs {
		allocs[i].Code = strings.TrimSpace(allocs[i].Code)
		allocs[i].Name = strings.TrimSpace(allocs[i].Name)
	}
	return allocs, nil
}
