package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	version, err := MigrationVersion(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"form_versions", "uploads"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestOpenDB_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "forms.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	uow := NewSQLiteUnitOfWork(db)
	boom := errors.New("boom")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO form_versions
			(id, form_number, form_title, version, structure_hash, header_json, columns_json, uploaded_at)
			VALUES ('v1', '1', 't', 1, 'h', '[]', '[]', '2026-01-01T00:00:00Z')`)
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM form_versions`).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestWithinTx_RollsBackOnPanic(t *testing.T) {
	db := openTestDB(t)
	uow := NewSQLiteUnitOfWork(db)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
			_, err := tx.ExecContext(ctx, `INSERT INTO form_versions
				(id, form_number, form_title, version, structure_hash, header_json, columns_json, uploaded_at)
				VALUES ('v1', '1', 't', 1, 'h', '[]', '[]', '2026-01-01T00:00:00Z')`)
			require.NoError(t, err)
			panic("boom")
		})
	})

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM form_versions`).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestOpenDB_EnforcesUploadVersionReference(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "forms.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`INSERT INTO uploads (id, form_version_id, source_name, row_count, rows_snappy, uploaded_at)
		VALUES ('u1', 'missing', 'filled.xlsx', 0, x'', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err)
}
