package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-advisory/dealmatch/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func testStrategy() model.Strategy {
	return model.Strategy{
		Name: "US energy mid-market",
		PreferenceFilters: map[string]string{
			"energy_infra": "Y",
			"real_estate":  "N",
		},
		SizeFilter: model.SizeFilter{MinInvestment: 10, MaxInvestment: 50},
		Countries:  []string{"US"},
	}
}

func TestSQLite_CreateAndGetStrategy(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	created, err := st.CreateStrategy(ctx, testStrategy())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := st.GetStrategy(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "US energy mid-market", got.Name)
	assert.Equal(t, map[string]string{"energy_infra": "Y", "real_estate": "N"}, got.PreferenceFilters)
	assert.Equal(t, model.SizeFilter{MinInvestment: 10, MaxInvestment: 50}, got.SizeFilter)
	assert.Equal(t, []string{"US"}, got.Countries)
}

func TestSQLite_GetStrategy_NotFound(t *testing.T) {
	st := newTestSQLiteStore(t)

	_, err := st.GetStrategy(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNotFound))
}

func TestSQLite_ListStrategies(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	list, err := st.ListStrategies(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = st.CreateStrategy(ctx, testStrategy())
	require.NoError(t, err)
	second := testStrategy()
	second.Name = "open mandate"
	_, err = st.CreateStrategy(ctx, second)
	require.NoError(t, err)

	list, err = st.ListStrategies(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	names := []string{list[0].Name, list[1].Name}
	assert.Contains(t, names, "US energy mid-market")
	assert.Contains(t, names, "open mandate")
}

func TestSQLite_UpdateStrategy(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	created, err := st.CreateStrategy(ctx, testStrategy())
	require.NoError(t, err)

	created.Name = "renamed"
	created.PreferenceFilters = map[string]string{"mezzanine": "Y"}
	created.SizeFilter = model.SizeFilter{MaxInvestment: 200}
	created.Countries = nil

	updated, err := st.UpdateStrategy(ctx, *created)
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, map[string]string{"mezzanine": "Y"}, updated.PreferenceFilters)
	assert.Equal(t, 200.0, updated.SizeFilter.MaxInvestment)
	assert.Empty(t, updated.Countries)
	// Creation time survives edits.
	assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())
}

func TestSQLite_UpdateStrategy_NotFound(t *testing.T) {
	st := newTestSQLiteStore(t)

	s := testStrategy()
	s.ID = "nonexistent"
	_, err := st.UpdateStrategy(context.Background(), s)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNotFound))
}

func TestSQLite_DeleteStrategy(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	created, err := st.CreateStrategy(ctx, testStrategy())
	require.NoError(t, err)

	require.NoError(t, st.DeleteStrategy(ctx, created.ID))

	_, err = st.GetStrategy(ctx, created.ID)
	assert.True(t, eris.Is(err, ErrNotFound))

	err = st.DeleteStrategy(ctx, created.ID)
	assert.True(t, eris.Is(err, ErrNotFound))
}

func TestSQLite_EmptyFiltersRoundTrip(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	created, err := st.CreateStrategy(ctx, model.Strategy{Name: "bare"})
	require.NoError(t, err)

	got, err := st.GetStrategy(ctx, created.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.PreferenceFilters)
	assert.Empty(t, got.PreferenceFilters)
	assert.Empty(t, got.Countries)
	assert.True(t, got.SizeFilter.Unbounded())
}
