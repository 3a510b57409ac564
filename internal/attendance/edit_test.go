package attendance

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csc-gandhinagar/stipend-flow/internal/common"
)

func TestAddFieldAll(t *testing.T) {
	ws := makeSet("1", "2")

	updated, err := AddFieldAll(ws, "Bank Account", "")
	require.NoError(t, err)

	for i := range updated {
		assert.True(t, updated[i].Has("Bank Account"))
		// Mirrored into the export snapshot.
		assert.Contains(t, updated[i].OriginalFields, "Bank Account")
	}
	assert.False(t, ws[0].Has("Bank Account"), "input set must stay untouched")
}

func TestAddFieldAllEmptyName(t *testing.T) {
	_, err := AddFieldAll(makeSet("1"), "   ", "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrColumnNotFound))
}

func TestSetFieldRecomputesDerived(t *testing.T) {
	ws := makeSet("1")
	ws[0].Set("Jan Total", "20")
	ws[0].Set("Jan Attended", "10")

	updated, err := SetField(ws, 0, "Jan Attended", "18")
	require.NoError(t, err)

	a := updated.ByID(0)
	assert.Equal(t, "18", a.Get("Jan Attended"))
	assert.Equal(t, "90.0%", a.Get("Jan %"))
	assert.Equal(t, "2000", a.Get("Jan Stipend"))
}

func TestSetFieldPlainColumnNoRecompute(t *testing.T) {
	ws := makeSet("1")

	updated, err := SetField(ws, 0, "Full Name", "Renamed")
	require.NoError(t, err)

	a := updated.ByID(0)
	assert.Equal(t, "Renamed", a.Get("Full Name"))
	assert.False(t, a.Has("Jan %"))
}

func TestSetFieldHalfPairNoRecompute(t *testing.T) {
	ws := makeSet("1")

	// Only the total is present; derived fields wait for the pair.
	updated, err := SetField(ws, 0, "Jan Total", "20")
	require.NoError(t, err)
	assert.False(t, updated.ByID(0).Has("Jan %"))
}

func TestSetFieldUnknownID(t *testing.T) {
	_, err := SetField(makeSet("1"), 99, "Full Name", "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}
