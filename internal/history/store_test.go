package history

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T, limit int) *SQLiteStore {
	t.Helper()
	store, err := OpenStore(context.Background(), ":memory:", limit)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_OpenClose(t *testing.T) {
	store := NewSQLiteStore(10)
	require.NoError(t, store.Open(":memory:"))
	assert.Equal(t, ":memory:", store.Path())
	require.NoError(t, store.Close())
}

func TestSQLiteStore_NotOpen(t *testing.T) {
	store := NewSQLiteStore(10)
	ctx := context.Background()

	assert.ErrorIs(t, store.Add(ctx, NewEntry("longueur", 1, "km", "m", 1000)), ErrNotOpen)
	_, err := store.List(ctx, 0)
	assert.ErrorIs(t, err, ErrNotOpen)
	_, err = store.Count(ctx)
	assert.ErrorIs(t, err, ErrNotOpen)
	_, err = store.Clear(ctx)
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.ErrorIs(t, store.Migrate(ctx), ErrNotOpen)
	assert.NoError(t, store.Close())
}

func TestSQLiteStore_Migrate(t *testing.T) {
	store := setupTestStore(t, 0)
	ctx := context.Background()

	version, err := store.MigrationVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	// Running again is a no-op.
	require.NoError(t, store.Migrate(ctx))
}

func TestSQLiteStore_AddList(t *testing.T) {
	store := setupTestStore(t, 0)
	ctx := context.Background()

	first := NewEntry("longueur", 1, "mile", "m", 1609.344)
	second := NewEntry("temperature", 100, "°C", "°F", 212)
	require.NoError(t, store.Add(ctx, first))
	require.NoError(t, store.Add(ctx, second))

	entries, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, first.ID, entries[0].ID)
	assert.Equal(t, second.ID, entries[1].ID)
	assert.Equal(t, "°C", entries[1].From)
	assert.Equal(t, 212.0, entries[1].Result)
	assert.True(t, first.CreatedAt.Equal(entries[0].CreatedAt), "timestamps survive the round trip")
	assert.Equal(t, time.UTC, entries[0].CreatedAt.Location())

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSQLiteStore_ListLimit(t *testing.T) {
	store := setupTestStore(t, 0)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, store.Add(ctx, NewEntry("masse", float64(i), "kg", "g", float64(i)*1000)))
	}

	entries, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 4.0, entries[0].Value)
	assert.Equal(t, 5.0, entries[1].Value)
}

func TestSQLiteStore_Retention(t *testing.T) {
	tests := []struct {
		name   string
		limit  int
		adds   int
		want   int
		oldest float64
	}{
		{"under limit", 3, 2, 2, 1},
		{"at limit", 3, 3, 3, 1},
		{"over limit keeps newest", 3, 7, 3, 5},
		{"unlimited", 0, 7, 7, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := setupTestStore(t, tt.limit)
			ctx := context.Background()

			for i := 1; i <= tt.adds; i++ {
				require.NoError(t, store.Add(ctx, NewEntry("temps", float64(i), "h", "min", float64(i)*60)))
			}

			entries, err := store.List(ctx, 0)
			require.NoError(t, err)
			require.Len(t, entries, tt.want)
			assert.Equal(t, tt.oldest, entries[0].Value)
			assert.Equal(t, float64(tt.adds), entries[len(entries)-1].Value)
		})
	}
}

func TestSQLiteStore_Clear(t *testing.T) {
	store := setupTestStore(t, 0)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, NewEntry("longueur", 1, "km", "m", 1000)))
	require.NoError(t, store.Add(ctx, NewEntry("longueur", 2, "km", "m", 2000)))

	n, err := store.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	entries, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSQLiteStore_AddRejectsNonFinite(t *testing.T) {
	store := setupTestStore(t, 0)
	ctx := context.Background()

	tests := []struct {
		name          string
		value, result float64
	}{
		{"nan value", math.NaN(), math.NaN()},
		{"infinite value", math.Inf(1), math.Inf(1)},
		{"overflowed result", 1e308, math.Inf(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Add(ctx, NewEntry("longueur", tt.value, "km", "nm", tt.result))
			assert.ErrorIs(t, err, ErrNonFinite)
		})
	}

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSQLiteStore_FileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "history.db")
	ctx := context.Background()

	store, err := OpenStore(ctx, path, 50)
	require.NoError(t, err)
	require.NoError(t, store.Add(ctx, NewEntry("longueur", 1, "km", "m", 1000)))
	require.NoError(t, store.Close())

	// Entries persist across reopen.
	store, err = OpenStore(ctx, path, 50)
	require.NoError(t, err)
	defer store.Close()

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

// --- sqlmock error paths ---

func newMockStore(t *testing.T, limit int) (*SQLiteStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &SQLiteStore{db: db, limit: limit}, mock
}

func TestSQLiteStore_AddTrimsInTransaction(t *testing.T) {
	store, mock := newMockStore(t, 50)
	e := NewEntry("longueur", 1, "km", "m", 1000)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO history")).
		WithArgs(e.ID, sqlmock.AnyArg(), "longueur", 1.0, "km", "m", 1000.0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM history WHERE seq NOT IN")).
		WithArgs(50).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, store.Add(context.Background(), e))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_AddUnlimitedSkipsTrim(t *testing.T) {
	store, mock := newMockStore(t, 0)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO history")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, store.Add(context.Background(), NewEntry("masse", 1, "kg", "g", 1000)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_AddErrors(t *testing.T) {
	boom := errors.New("disk I/O error")

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr string
	}{
		{
			name: "begin fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(boom)
			},
			wantErr: "failed to begin transaction",
		},
		{
			name: "insert fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO history")).WillReturnError(boom)
				mock.ExpectRollback()
			},
			wantErr: "failed to insert history entry",
		},
		{
			name: "trim fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO history")).WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM history")).WillReturnError(boom)
				mock.ExpectRollback()
			},
			wantErr: "failed to trim history",
		},
		{
			name: "commit fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO history")).WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM history")).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectCommit().WillReturnError(boom)
			},
			wantErr: "failed to commit history entry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t, 5)
			tt.setup(mock)

			err := store.Add(context.Background(), NewEntry("longueur", 1, "km", "m", 1000))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.ErrorIs(t, err, boom)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLiteStore_ListErrors(t *testing.T) {
	t.Run("query fails", func(t *testing.T) {
		store, mock := newMockStore(t, 0)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, created_at")).WithArgs(-1).WillReturnError(errors.New("locked"))

		_, err := store.List(context.Background(), 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list history")
	})

	t.Run("bad timestamp", func(t *testing.T) {
		store, mock := newMockStore(t, 0)
		rows := sqlmock.NewRows([]string{"id", "created_at", "quantity", "value", "from_unit", "to_unit", "result"}).
			AddRow("abc", "yesterday", "longueur", 1.0, "km", "m", 1000.0)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, created_at")).WithArgs(10).WillReturnRows(rows)

		_, err := store.List(context.Background(), 10)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid timestamp "yesterday"`)
	})
}

func TestSQLiteStore_ClearError(t *testing.T) {
	store, mock := newMockStore(t, 0)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM history")).WillReturnError(errors.New("readonly"))

	_, err := store.Clear(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to clear history")
	assert.NoError(t, mock.ExpectationsWereMet())
}
