package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csc-gandhinagar/stipend-flow/internal/common"
	"github.com/csc-gandhinagar/stipend-flow/internal/model"
)

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "stipend.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testSession() *model.Session {
	return &model.Session{
		Headers: []string{"Full Name", "Roll Number", "Birth Place"},
		Applicants: model.WorkingSet{
			{
				ID:             0,
				Status:         model.StatusReview,
				Fields:         map[string]string{"Full Name": "A", "Roll Number": "101"},
				OriginalFields: map[string]string{"Full Name": "A", "Roll Number": "101"},
			},
			{
				ID:             1,
				Status:         model.StatusApproved,
				Fields:         map[string]string{"Full Name": "B", "Roll Number": "102"},
				OriginalFields: map[string]string{"Full Name": "B", "Roll Number": "102"},
			},
		},
	}
}

func TestLoadSessionEmpty(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	has, err := store.HasSession(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	_, err = store.LoadSession(ctx)
	assert.True(t, errors.Is(err, common.ErrNoSession))
}

func TestReplaceAndLoadSession(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceSession(ctx, testSession()))

	loaded, err := store.LoadSession(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"Full Name", "Roll Number", "Birth Place"}, loaded.Headers)
	require.Len(t, loaded.Applicants, 2)

	// Position order survives the round trip.
	assert.Equal(t, 0, loaded.Applicants[0].ID)
	assert.Equal(t, model.StatusReview, loaded.Applicants[0].Status)
	assert.Equal(t, "A", loaded.Applicants[0].Get("Full Name"))
	assert.Equal(t, "102", loaded.Applicants[1].Get("Roll Number"))
	assert.Equal(t, loaded.Applicants[0].Fields, loaded.Applicants[0].OriginalFields)
}

func TestReplaceSessionSwapsAtomically(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceSession(ctx, testSession()))

	next := testSession()
	next.Applicants = next.Applicants[:1]
	next.Applicants[0].Status = model.StatusApproved
	require.NoError(t, store.ReplaceSession(ctx, next))

	loaded, err := store.LoadSession(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Applicants, 1)
	assert.Equal(t, model.StatusApproved, loaded.Applicants[0].Status)
}

func TestReplaceSessionValidation(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	t.Run("nil session", func(t *testing.T) {
		err := store.ReplaceSession(ctx, nil)
		assert.True(t, errors.Is(err, ErrNilSession))
	})

	t.Run("duplicate ids", func(t *testing.T) {
		s := testSession()
		s.Applicants[1].ID = 0
		err := store.ReplaceSession(ctx, s)
		assert.True(t, errors.Is(err, ErrDuplicateID))
	})

	t.Run("invalid status", func(t *testing.T) {
		s := testSession()
		s.Applicants[0].Status = "Maybe"
		err := store.ReplaceSession(ctx, s)
		assert.True(t, errors.Is(err, ErrInvalidStatus))
	})

	t.Run("negative id", func(t *testing.T) {
		s := testSession()
		s.Applicants[0].ID = -1
		err := store.ReplaceSession(ctx, s)
		assert.True(t, errors.Is(err, ErrNegativeID))
	})

	t.Run("missing field map", func(t *testing.T) {
		s := testSession()
		s.Applicants[0].OriginalFields = nil
		err := store.ReplaceSession(ctx, s)
		assert.True(t, errors.Is(err, ErrMissingFieldMap))
	})

	// Failed validation must not clobber stored data.
	has, err := store.HasSession(ctx)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestClear(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceSession(ctx, testSession()))
	require.NoError(t, store.Clear(ctx))

	has, err := store.HasSession(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	_, err = store.LoadSession(ctx)
	assert.True(t, errors.Is(err, common.ErrNoSession))
}
