package reference

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aims-dev/sectorburst/internal/model"
)

// ErrDuplicateCode is returned when a reference file lists a code twice.
var ErrDuplicateCode = errors.New("duplicate sector code")

// Table is an immutable in-memory sector reference table.
type Table struct {
	entries []model.ReferenceEntry
	byCode  map[string]model.ReferenceEntry
}

// NewTable creates a Table from a slice of entries.
func NewTable(entries []model.ReferenceEntry) (*Table, error) {
	byCode := make(map[string]model.ReferenceEntry, len(entries))
	for _, e := range entries {
		if _, ok := byCode[e.Code]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, e.Code)
		}
		byCode[e.Code] = e
	}
	owned := make([]model.ReferenceEntry, len(entries))
	copy(owned, entries)
	return &Table{entries: owned, byCode: byCode}, nil
}

// Load reads a sector reference CSV from disk.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening reference table: %w", err)
	}
	defer f.Close()

	entries, err := ReadEntries(f)
	if err != nil {
		return nil, fmt.Errorf("reading reference table: %w", err)
	}
	return NewTable(entries)
}

// Save writes the table as CSV to path, creating parent directories.
func (t *Table) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating reference dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating reference file: %w", err)
	}
	defer f.Close()

	if err := WriteEntries(f, t.entries); err != nil {
		return fmt.Errorf("writing reference table: %w", err)
	}
	return nil
}

// Resolve returns the reference entry for a sector code.
func (t *Table) Resolve(code string) (model.ReferenceEntry, bool) {
	e, ok := t.byCode[strings.TrimSpace(code)]
	return e, ok
}

// Exists reports whether a sector code is known.
func (t *Table) Exists(code string) bool {
	_, ok := t.Resolve(code)
	return ok
}

// All returns a copy of every entry in table order.
func (t *Table) All() []model.ReferenceEntry {
	out := make([]model.ReferenceEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Group is a distinct top-level group of the table.
type Group struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Groups returns the distinct groups in first-seen table order.
func (t *Table) Groups() []Group {
	seen := make(map[string]bool)
	var groups []Group
	for _, e := range t.entries {
		if seen[e.GroupCode] {
			continue
		}
		seen[e.GroupCode] = true
		groups = append(groups, Group{Code: e.GroupCode, Name: e.GroupName})
	}
	return groups
}

// ByGroup returns all entries of the given group.
func (t *Table) ByGroup(groupCode string) []model.ReferenceEntry {
	var result []model.ReferenceEntry
	for _, e := range t.entries {
		if e.GroupCode == groupCode {
			result = append(result, e)
		}
	}
	return result
}
