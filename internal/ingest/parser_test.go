package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csc-gandhinagar/stipend-flow/internal/common"
)

func TestSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"applications.csv", true},
		{"APPLICATIONS.CSV", true},
		{"muster.xlsx", true},
		{"legacy.xls", true},
		{"notes.txt", false},
		{"noext", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Supported(tt.path), tt.path)
	}
}

func TestParseCSV(t *testing.T) {
	input := "Full Name, Roll No ,Birth Place\n" +
		"Amit,101, Gandhinagar \n" +
		",,\n" +
		"Bina,102,Rajkot\n"

	result, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"Full Name", "Roll No", "Birth Place"}, result.Headers)

	// The wholly-empty line is dropped.
	require.Len(t, result.Rows, 2)
	assert.Equal(t, "Amit", result.Rows[0]["Full Name"])
	assert.Equal(t, "Gandhinagar", result.Rows[0]["Birth Place"], "values are trimmed")
	assert.Equal(t, "102", result.Rows[1]["Roll No"])
}

func TestParseCSVSyntheticHeaders(t *testing.T) {
	input := "Full Name,,Roll No\nAmit,x,101\n"

	result, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"Full Name", "__empty_1", "Roll No"}, result.Headers)
	assert.Equal(t, "x", result.Rows[0]["__empty_1"])
}

func TestParseCSVRaggedRows(t *testing.T) {
	input := "A,B,C\n1,2\n"

	result, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, "", result.Rows[0]["C"], "missing trailing cells read as empty")
}

func TestParseCSVMalformed(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("A,\"B\n1,2"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrParseFailure))
	assert.NotEmpty(t, common.UserMessage(err))
}

func TestParseCSVEmpty(t *testing.T) {
	result, err := ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, result.Headers)
	assert.Empty(t, result.Rows)
}

func TestParseDispatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "apps.csv")
	require.NoError(t, os.WriteFile(path, []byte("Full Name\nAmit\n"), 0o600))

	result, err := Parse(path)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
}

func TestParseUnsupportedExtension(t *testing.T) {
	_, err := Parse("notes.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnsupportedFormat))
}
