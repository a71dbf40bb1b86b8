package reference

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aims-dev/sectorburst/internal/model"
)

func TestRoundTrip(t *testing.T) {
	entries := []model.ReferenceEntry{
		{Code: "11120", Name: "Education facilities and training", CategoryCode: "111", CategoryName: "Education, Level Unspecified", GroupCode: "110", GroupName: "Education"},
		{Code: "12220", Name: "Basic health care", CategoryCode: "122", CategoryName: "Basic Health", GroupCode: "120", GroupName: "Health"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteEntries(&buf, entries))

	got, err := ReadEntries(&buf)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestReadEntries_Empty(t *testing.T) {
	got, err := ReadEntries(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReadEntries_TrimsWhitespace(t *testing.T) {
	csv := Header + "\n 11130 , Teacher training ,111,Education,110,Education\n"
	got, err := ReadEntries(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "11130", got[0].Code)
	assert.Equal(t, "Teacher training", got[0].Name)
}

func TestUnmarshalEntry_Errors(t *testing.T) {
	tests := []struct {
		name   string
		record []string
		want   string
	}{
		{"field count", []string{"11120"}, "expected 6 fields"},
		{"short code", []string{"111", "x", "111", "x", "110", "x"}, "not a 5-digit sector code"},
		{"letters", []string{"11a20", "x", "111", "x", "110", "x"}, "not a 5-digit sector code"},
		{"no group", []string{"11120", "x", "111", "x", "", "x"}, "no group or category"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalEntry(tt.record)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReadEntries_RowNumberInError(t *testing.T) {
	csv := Header + "\n11120,a,111,b,110,c\nbad,a,111,b,110,c\n"
	_, err := ReadEntries(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
	assert.ErrorIs(t, err, ErrInvalidEntry)
}

func TestIsSectorCode(t *testing.T) {
	assert.True(t, IsSectorCode("11120"))
	assert.False(t, IsSectorCode("1112"))
	assert.False(t, IsSectorCode("111200"))
	assert.False(t, IsSectorCode("1112x"))
	assert.False(t, IsSectorCode(""))
}
