package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Level identifies a ring of the sunburst.
type Level int

const (
	LevelGroup Level = iota
	LevelCategory
	LevelSubsector
)

// String returns the lowercase level name used in exports and events.
func (l Level) String() string {
	switch l {
	case LevelGroup:
		return "group"
	case LevelCategory:
		return "category"
	case LevelSubsector:
		return "subsector"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	switch string(text) {
	case "group":
		*l = LevelGroup
	case "category":
		*l = LevelCategory
	case "subsector":
		*l = LevelSubsector
	default:
		return fmt.Errorf("unknown level %q", text)
	}
	return nil
}

// Allocation assigns a share of a total to one 5-digit sector code.
type Allocation struct {
	Code       string          `json:"code" yaml:"code"`
	Name       string          `json:"name" yaml:"name"`
	Percentage decimal.Decimal `json:"percentage" yaml:"percentage"`
}

// ReferenceEntry is one row of the sector reference table.
type ReferenceEntry struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	CategoryCode string `json:"category_code"`
	CategoryName string `json:"category_name"`
	GroupCode    string `json:"group_code"`
	GroupName    string `json:"group_name"`
}

// Path identifies a node of a sector hierarchy.
// "110" (group), "110/111" (category), "110/111/11120@0" (subsector).
type Path string

// GroupPath returns the path of a group node.
func GroupPath(group string) Path {
	return Path(group)
}

// CategoryPath returns the path of a category node.
func CategoryPath(group, category string) Path {
	return Path(group + "/" + category)
}

// SubsectorPath returns the path of the index-th subsector of a category.
// The index keeps duplicate codes apart.
func SubsectorPath(group, category string, index int, code string) Path {
	return Path(fmt.Sprintf("%s/%s/%s@%d", group, category, code, index))
}
