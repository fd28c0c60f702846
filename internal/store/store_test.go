package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/formstruct-go/internal/db"
	"github.com/ukaji3/formstruct-go/pkg/formstruct/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sampleStructure(formNumber, hash string) *models.FormStructure {
	return &models.FormStructure{
		FormNumber:    formNumber,
		FormTitle:     "Sample " + formNumber,
		UploadedAtUTC: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Header: []models.HeaderNode{
			{Label: "Group", RowStart: 3, RowEnd: 3, ColStart: 1, ColEnd: 2, Children: []models.HeaderNode{
				{Label: "a", RowStart: 4, RowEnd: 4, ColStart: 1, ColEnd: 1},
				{Label: "b", RowStart: 4, RowEnd: 4, ColStart: 2, ColEnd: 2},
			}},
		},
		Columns: []models.ColumnDefinition{
			{Index: 1, Name: "a", Path: "Group / a", Type: models.ColumnTypeString},
			{Index: 2, Name: "b", Path: "Group / b", Type: models.ColumnTypeString},
		},
		StructureHash: hash,
	}
}

func TestFormRepo_CreateVersionNumbersPerForm(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteFormRepo(openTestDB(t))

	v1, err := repo.CreateVersion(ctx, sampleStructure("001", "h1"))
	require.NoError(t, err)
	v2, err := repo.CreateVersion(ctx, sampleStructure("001", "h2"))
	require.NoError(t, err)
	other, err := repo.CreateVersion(ctx, sampleStructure("002", "h1"))
	require.NoError(t, err)

	assert.Equal(t, 1, v1.Version)
	assert.Equal(t, 2, v2.Version)
	assert.Equal(t, 1, other.Version)
	assert.NotEqual(t, v1.ID, v2.ID)

	latest, err := repo.Latest(ctx, "001")
	require.NoError(t, err)
	assert.Equal(t, v2.ID, latest.ID)
	assert.Equal(t, "Group / b", latest.Columns[1].Path)
	require.Len(t, latest.Header, 1)
	assert.Len(t, latest.Header[0].Children, 2)
	assert.True(t, latest.UploadedAtUTC.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)))

	versions, err := repo.ListVersions(ctx, "001")
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, 1, versions[0].Version)

	forms, err := repo.ListForms(ctx)
	require.NoError(t, err)
	require.Len(t, forms, 2)
	assert.Equal(t, FormSummary{FormNumber: "001", FormTitle: "Sample 001", LatestVersion: 2, Versions: 2}, forms[0])
}

func TestFormRepo_FindByHash(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteFormRepo(openTestDB(t))

	created, err := repo.CreateVersion(ctx, sampleStructure("001", "abc"))
	require.NoError(t, err)

	found, err := repo.FindByHash(ctx, "001", "abc")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.FindByHash(ctx, "001", "other")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.FindByHash(ctx, "002", "abc")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.Latest(ctx, "999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFormRepo_SetColumnType(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteFormRepo(openTestDB(t))

	_, err := repo.CreateVersion(ctx, sampleStructure("001", "abc"))
	require.NoError(t, err)

	require.NoError(t, repo.SetColumnType(ctx, "001", 1, "Group / b", models.ColumnTypeDate))
	v, err := repo.GetVersion(ctx, "001", 1)
	require.NoError(t, err)
	assert.Equal(t, models.ColumnTypeString, v.Columns[0].Type)
	assert.Equal(t, models.ColumnTypeDate, v.Columns[1].Type)

	err = repo.SetColumnType(ctx, "001", 1, "Group / z", models.ColumnTypeDate)
	assert.ErrorIs(t, err, ErrNotFound)
	err = repo.SetColumnType(ctx, "001", 1, "Group / b", "money")
	assert.Error(t, err)
	err = repo.SetColumnType(ctx, "001", 7, "Group / b", models.ColumnTypeDate)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUploadRepo_RoundTripsRows(t *testing.T) {
	ctx := context.Background()
	conn := openTestDB(t)
	forms := NewSQLiteFormRepo(conn)
	uploads := NewSQLiteUploadRepo(conn)

	v, err := forms.CreateVersion(ctx, sampleStructure("001", "abc"))
	require.NoError(t, err)

	val := "hello"
	u := &Upload{
		FormVersionID: v.ID,
		SourceName:    "filled.xlsx",
		UploadedAtUTC: time.Now(),
		Rows: []models.FormDataRow{
			{RowNumber: 5, Values: map[string]*string{"Group / a": &val, "Group / b": nil}},
		},
	}
	require.NoError(t, uploads.Create(ctx, u))
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, 1, u.RowCount)

	got, err := uploads.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "001", got.FormNumber)
	assert.Equal(t, 1, got.Version)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, 5, got.Rows[0].RowNumber)
	s, ok := got.Rows[0].Value("Group / a")
	assert.True(t, ok)
	assert.Equal(t, "hello", s)
	assert.Nil(t, got.Rows[0].Values["Group / b"])

	list, err := uploads.ListByForm(ctx, "001")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Rows)
	assert.Equal(t, 1, list[0].RowCount)

	_, err = uploads.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
