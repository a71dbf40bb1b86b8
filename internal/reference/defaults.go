package reference

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"
)

//go:embed data/dac5.csv
var dac5CSV []byte

var loadDefault = sync.OnceValues(func() (*Table, error) {
	entries, err := ReadEntries(bytes.NewReader(dac5CSV))
	if err != nil {
		return nil, fmt.Errorf("parsing bundled DAC-5 table: %w", err)
	}
	return NewTable(entries)
})

// Default returns the bundled OECD DAC-5 sector table. It is parsed once.
func Default() (*Table, error) {
	return loadDefault()
}

// DefaultCSV returns the raw bundled table.
func DefaultCSV() []byte {
	out := make([]byte, len(dac5CSV))
	copy(out, dac5CSV)
	return out
}
