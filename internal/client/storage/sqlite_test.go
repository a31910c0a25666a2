package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*SQLiteStore, *sql.DB) {
	t.Helper()
	db, err := OpenDatabase(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteStore(db), db
}

func TestSQLiteStore_SetGet(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyAuthToken, []byte("tok123")))

	v, err := s.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("tok123"), v)
}

func TestSQLiteStore_GetAbsent(t *testing.T) {
	s, _ := openTestStore(t)

	v, err := s.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSQLiteStore_SetOverwrites(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyAuthToken, []byte("old")))
	require.NoError(t, s.Set(ctx, KeyAuthToken, []byte("new")))

	v, err := s.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)
}

func TestSQLiteStore_DeleteIsIdempotent(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyAuthToken, []byte("a")))
	require.NoError(t, s.Set(ctx, KeyRefreshToken, []byte("r")))
	require.NoError(t, s.Delete(ctx, KeyAuthToken, KeyRefreshToken))
	require.NoError(t, s.Delete(ctx, KeyAuthToken))

	m, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestSQLiteStore_ListAndClear(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "a", []byte{0xAA}))
	require.NoError(t, s.Set(ctx, "b", []byte{0xBB}))

	m, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"a": {0xAA}, "b": {0xBB}}, m)

	require.NoError(t, s.Clear(ctx))
	m, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestSQLiteStore_BatchCommitsAll(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	err := s.Batch(ctx, func(tx Store) error {
		if err := tx.Set(ctx, KeyAuthToken, []byte("A")); err != nil {
			return err
		}
		return tx.Set(ctx, KeyRefreshToken, []byte("R"))
	})
	require.NoError(t, err)

	m, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("A"), m[KeyAuthToken])
	assert.Equal(t, []byte("R"), m[KeyRefreshToken])
}

func TestSQLiteStore_BatchRollsBack(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	err := s.Batch(ctx, func(tx Store) error {
		require.NoError(t, tx.Set(ctx, KeyAuthToken, []byte("A")))
		return errors.New("refresh write failed")
	})
	require.Error(t, err)

	v, err := s.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSQLiteStore_JSONHelpers(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	type settings struct {
		AutoSync bool `json:"auto_sync"`
	}

	var got settings
	ok, err := GetJSON(ctx, s, KeySyncSettings, &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, SetJSON(ctx, s, KeySyncSettings, settings{AutoSync: true}))

	ok, err = GetJSON(ctx, s, KeySyncSettings, &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, got.AutoSync)

	require.NoError(t, s.Set(ctx, KeySyncSettings, []byte("{broken")))
	_, err = GetJSON(ctx, s, KeySyncSettings, &got)
	assert.ErrorContains(t, err, "failed to decode sync_settings")
}

func TestRunMigrations_Idempotent(t *testing.T) {
	_, db := openTestStore(t)
	require.NoError(t, RunMigrations(context.Background(), db))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='local_store'`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestSQLiteStore_ErrorsAreWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewSQLiteStore(db)
	ctx := context.Background()
	boom := errors.New("io error")

	mock.ExpectQuery(`SELECT value FROM local_store`).WithArgs("k").WillReturnError(boom)
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "failed to get k")

	mock.ExpectExec(`INSERT INTO local_store`).WithArgs("k", []byte("v")).WillReturnError(boom)
	err = s.Set(ctx, "k", []byte("v"))
	assert.ErrorContains(t, err, "failed to set k")

	mock.ExpectExec(`DELETE FROM local_store WHERE key`).WithArgs("k").WillReturnError(boom)
	err = s.Delete(ctx, "k")
	assert.ErrorContains(t, err, "failed to delete k")

	mock.ExpectQuery(`SELECT key, value FROM local_store`).WillReturnError(boom)
	_, err = s.List(ctx)
	assert.ErrorContains(t, err, "failed to list local store")

	mock.ExpectExec(`DELETE FROM local_store`).WillReturnError(boom)
	err = s.Clear(ctx)
	assert.ErrorContains(t, err, "failed to clear local store")

	require.NoError(t, mock.ExpectationsWereMet())
}
