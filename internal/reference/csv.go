package reference

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aims-dev/sectorburst/internal/model"
)

// Header is the CSV header of a sector reference file.
const Header = "code,name,category_code,category_name,group_code,group_name"

const (
	numFields       = 6
	colCode         = 0
	colName         = 1
	colCategoryCode = 2
	colCategoryName = 3
	colGroupCode    = 4
	colGroupName    = 5
)

// ErrInvalidEntry is returned for rows that cannot describe a sector.
var ErrInvalidEntry = errors.New("invalid reference entry")

// ReadEntries reads a sector reference CSV.
func ReadEntries(r io.Reader) ([]model.ReferenceEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading reference CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var entries []model.ReferenceEntry
	for i, rec := range records[1:] {
		entry, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// WriteEntries writes a sector reference CSV (including header).
func WriteEntries(w io.Writer, entries []model.ReferenceEntry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalEntry converts a ReferenceEntry to a CSV row.
func MarshalEntry(e model.ReferenceEntry) []string {
	row := make([]string, numFields)
	row[colCode] = e.Code
	row[colName] = e.Name
	row[colCategoryCode] = e.CategoryCode
	row[colCategoryName] = e.CategoryName
	row[colGroupCode] = e.GroupCode
	row[colGroupName] = e.GroupName
	return row
}

// UnmarshalEntry converts a CSV row to a ReferenceEntry.
func UnmarshalEntry(record []string) (model.ReferenceEntry, error) {
	if len(record) != numFields {
		return model.ReferenceEntry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	e := model.ReferenceEntry{
		Code:         strings.TrimSpace(record[colCode]),
		Name:         strings.TrimSpace(record[colName]),
		CategoryCode: strings.TrimSpace(record[colCategoryCode]),
		CategoryName: strings.TrimSpace(record[colCategoryName]),
		GroupCode:    strings.TrimSpace(record[colGroupCode]),
		GroupName:    strings.TrimSpace(record[colGroupName]),
	}

	if !IsSectorCode(e.Code) {
		return model.ReferenceEntry{}, fmt.Errorf("%w: code %q is not a 5-digit sector code", ErrInvalidEntry, e.Code)
	}
	if e.CategoryCode == "" || e.GroupCode == "" {
		return model.ReferenceEntry{}, fmt.Errorf("%w: code %s has no group or category", ErrInvalidEntry, e.Code)
	}
	return e, nil
}

// IsSectorCode reports whether s is a 5-digit sector code.
func IsSectorCode(s string) bool {
	if len(s) != 5 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
