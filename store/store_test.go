package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/dimensio/errors"
	qtest "github.com/teranos/dimensio/internal/testing"
	"github.com/teranos/dimensio/units"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db := qtest.CreateTestDB(t)
	logger := zaptest.NewLogger(t).Sugar()
	require.NoError(t, Migrate(db, logger))
	return New(db, logger)
}

func TestOpenDB(t *testing.T) {
	t.Run("opens database with WAL and foreign keys", func(t *testing.T) {
		db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"), nil)
		require.NoError(t, err)
		defer db.Close()

		var journalMode string
		require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
		assert.Equal(t, "wal", journalMode)

		var foreignKeys int
		require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys))
		assert.Equal(t, 1, foreignKeys)

		var busyTimeout int
		require.NoError(t, db.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout))
		assert.Equal(t, SQLiteBusyTimeoutMS, busyTimeout)
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		db, err := OpenDB("/invalid/nonexistent/path/db.sqlite", nil)
		if err == nil && db != nil {
			err = db.Ping()
			db.Close()
		}
		assert.Error(t, err)
	})
}

func TestOpen_CreatesFileAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dimensio.db")
	s, err := Open(path, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)

	var tables int
	require.NoError(t, s.DB().QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('spaces', 'units', 'unit_dimensions', 'space_dimensions')",
	).Scan(&tables))
	assert.Equal(t, 4, tables)
}

func TestMigrate_Idempotent(t *testing.T) {
	db := qtest.CreateTestDB(t)
	require.NoError(t, Migrate(db, nil))
	require.NoError(t, Migrate(db, nil))

	var versions int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&versions))
	files, err := migrationFiles()
	require.NoError(t, err)
	assert.Equal(t, len(files), versions)
	assert.Equal(t, "000", migrationVersion(files[0]))
}

func TestSaveAndLoadRegistry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	reg, err := units.BuildDefaultRegistry()
	require.NoError(t, err)
	require.NoError(t, s.SaveRegistry(ctx, "si", reg))

	loaded, err := s.LoadRegistry(ctx, "si")
	require.NoError(t, err)
	assert.Equal(t, reg.Identifiers(), loaded.Identifiers())
	assert.Equal(t, reg.Space().DimensionNames(), loaded.Space().DimensionNames())
	assert.NotSame(t, reg.Space(), loaded.Space())

	for _, u := range reg.Units() {
		got, ok := loaded.Lookup(u.Identifier())
		require.True(t, ok, u.Identifier())
		assert.True(t, got.Dimensions().Equal(u.Dimensions()), u.Identifier())
		assert.Equal(t, u.Name(), got.Name())
	}

	v, err := loaded.ConvertFloat(0, "Pa", "Pa_a")
	require.NoError(t, err)
	assert.InDelta(t, 101325, v, 1e-9)
}

func TestSaveRegistry_Replaces(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	space, err := units.NewDimensionSpace(2, units.WithName("kin"), units.WithDescription("kinematics"))
	require.NoError(t, err)
	reg, err := units.NewRegistry(space)
	require.NoError(t, err)
	require.NoError(t, reg.Define("m", []float64{1, 0}, 1, 0, "metre"))
	require.NoError(t, reg.Define("s", []float64{0, 1}, 1, 0, "second"))
	require.NoError(t, s.SaveRegistry(ctx, "kin", reg))

	smaller, err := units.NewRegistry(space)
	require.NoError(t, err)
	require.NoError(t, smaller.Define("ft", []float64{1, 0}, 0.3048, 0, "foot"))
	require.NoError(t, s.SaveRegistry(ctx, "kin", smaller))

	loaded, err := s.LoadRegistry(ctx, "kin")
	require.NoError(t, err)
	assert.Equal(t, []string{"ft"}, loaded.Identifiers())
	assert.Equal(t, "kinematics", loaded.Space().Description())
	assert.Nil(t, loaded.Space().DimensionNames())

	var orphans int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM unit_dimensions WHERE unit IN ('m', 's')").Scan(&orphans))
	assert.Zero(t, orphans)
}

func TestSaveRegistry_SkipsCustomTransforms(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	space, err := units.NewDimensionSpace(1)
	require.NoError(t, err)
	reg, err := units.NewRegistry(space)
	require.NoError(t, err)
	require.NoError(t, reg.Define("W", []float64{1}, 1, 0, ""))
	dBW, err := units.NewFuncUnit(space, "dBW", []float64{1},
		func(x float64) float64 { return x }, func(x float64) float64 { return x })
	require.NoError(t, err)
	require.NoError(t, reg.Register(dBW))

	require.NoError(t, s.SaveRegistry(ctx, "power", reg))
	loaded, err := s.LoadRegistry(ctx, "power")
	require.NoError(t, err)
	assert.Equal(t, []string{"W"}, loaded.Identifiers())
}

func TestSaveRegistry_RequiresName(t *testing.T) {
	s := newTestStore(t)
	reg, err := units.BuildDefaultRegistry()
	require.NoError(t, err)

	err = s.SaveRegistry(context.Background(), "", reg)
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
}

func TestListAndDeleteSpaces(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	spaces, err := s.ListSpaces(ctx)
	require.NoError(t, err)
	assert.Empty(t, spaces)

	reg, err := units.BuildDefaultRegistry()
	require.NoError(t, err)
	require.NoError(t, s.SaveRegistry(ctx, "si", reg))
	require.NoError(t, s.SaveRegistry(ctx, "backup", reg))

	spaces, err = s.ListSpaces(ctx)
	require.NoError(t, err)
	require.Len(t, spaces, 2)
	assert.Equal(t, "backup", spaces[0].Name)
	assert.Equal(t, "si", spaces[1].Name)
	assert.Equal(t, 7, spaces[1].Dimensions)
	assert.Equal(t, reg.Len(), spaces[1].Units)
	assert.False(t, spaces[1].UpdatedAt.IsZero())

	require.NoError(t, s.DeleteSpace(ctx, "backup"))
	err = s.DeleteSpace(ctx, "backup")
	assert.True(t, errors.IsNotFoundError(err))

	_, err = s.LoadRegistry(ctx, "backup")
	assert.True(t, errors.IsNotFoundError(err))

	var remaining int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM units WHERE space = 'backup'").Scan(&remaining))
	assert.Zero(t, remaining)
}
