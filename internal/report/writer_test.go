package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSVDir(t *testing.T) {
	m, err := Build(reportSet(), "Jan")
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "reports")
	written, err := WriteCSVDir(m, dir)
	require.NoError(t, err)

	names := make([]string, 0, len(written))
	for _, p := range written {
		names = append(names, filepath.Base(p))
	}
	assert.Contains(t, names, "summary_jan.csv")
	assert.Contains(t, names, "general_full_jan.csv")
	assert.Contains(t, names, "general_eligible_jan.csv")
	assert.Contains(t, names, "sc_full_jan.csv")
	assert.Contains(t, names, "noting_jan.txt")

	// Empty categories are not written.
	assert.NotContains(t, names, "sebc_full_jan.csv")

	data, err := os.ReadFile(filepath.Join(dir, "summary_jan.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "Category,Male No,Male Amount,Female No,Female Amount,Total Candidates,Amount (Rs.)", lines[0])
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[5], "Total,"))
}

func TestRenderDocument(t *testing.T) {
	m, err := Build(reportSet(), "Jan")
	require.NoError(t, err)

	text := RenderDocument(m.Document)
	assert.Contains(t, text, "NOTING Jan Report")
	assert.Contains(t, text, "ANNEXURE – A")
	assert.Contains(t, text, "Grand Total of All Categories")
	assert.Contains(t, text, "Sr No\tFull Name\tApplication No\tRemarks")
}
