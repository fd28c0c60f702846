package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang/snappy"
	"github.com/ukaji3/formstruct-go/internal/db"
	"github.com/ukaji3/formstruct-go/pkg/formstruct/models"
)

// SQLiteUploadRepo stores extracted data uploads.
// Row payloads are kept as snappy-compressed JSON.
type SQLiteUploadRepo struct {
	db db.DBTX
}

// NewSQLiteUploadRepo creates a new SQLiteUploadRepo.
func NewSQLiteUploadRepo(db db.DBTX) *SQLiteUploadRepo {
	return &SQLiteUploadRepo{db: db}
}

// Create stores u, assigning its ID when empty.
func (r *SQLiteUploadRepo) Create(ctx context.Context, u *Upload) error {
	if u.ID == "" {
		u.ID = generateID()
	}
	u.RowCount = len(u.Rows)
	u.UploadedAtUTC = u.UploadedAtUTC.UTC()

	payload, err := json.Marshal(u.Rows)
	if err != nil {
		return fmt.Errorf("encoding rows: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO uploads (id, form_version_id, source_name, row_count, rows_snappy, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID,
		u.FormVersionID,
		u.SourceName,
		u.RowCount,
		snappy.Encode(nil, payload),
		u.UploadedAtUTC.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting upload: %w", err)
	}
	return nil
}

// Get returns the upload with the given id, including its rows.
func (r *SQLiteUploadRepo) Get(ctx context.Context, id string) (*Upload, error) {
	var (
		u          Upload
		compressed []byte
		uploadedAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT u.id, u.form_version_id, v.form_number, v.version, u.source_name, u.row_count, u.rows_snappy, u.uploaded_at
		FROM uploads u JOIN form_versions v ON v.id = u.form_version_id
		WHERE u.id = ?`, id,
	).Scan(&u.ID, &u.FormVersionID, &u.FormNumber, &u.Version, &u.SourceName, &u.RowCount, &compressed, &uploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting upload: %w", err)
	}

	payload, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("decompressing rows: %w", err)
	}
	var rows []models.FormDataRow
	if err := json.Unmarshal(payload, &rows); err != nil {
		return nil, fmt.Errorf("decoding rows: %w", err)
	}
	u.Rows = rows

	if u.UploadedAtUTC, err = parseTime(uploadedAt); err != nil {
		return nil, fmt.Errorf("parsing uploaded_at: %w", err)
	}
	return &u, nil
}

// ListByForm returns the uploads of every version of formNumber, newest first.
// Rows are not loaded.
func (r *SQLiteUploadRepo) ListByForm(ctx context.Context, formNumber string) ([]*Upload, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.form_version_id, v.form_number, v.version, u.source_name, u.row_count, u.uploaded_at
		FROM uploads u JOIN form_versions v ON v.id = u.form_version_id
		WHERE v.form_number = ?
		ORDER BY u.uploaded_at DESC`, formNumber)
	if err != nil {
		return nil, fmt.Errorf("listing uploads: %w", err)
	}
	defer rows.Close()

	var uploads []*Upload
	for rows.Next() {
		var (
			u          Upload
			uploadedAt string
		)
		if err := rows.Scan(&u.ID, &u.FormVersionID, &u.FormNumber, &u.Version, &u.SourceName, &u.RowCount, &uploadedAt); err != nil {
			return nil, fmt.Errorf("scanning upload: %w", err)
		}
		if u.UploadedAtUTC, err = parseTime(uploadedAt); err != nil {
			return nil, fmt.Errorf("parsing uploaded_at: %w", err)
		}
		uploads = append(uploads, &u)
	}
	return uploads, rows.Err()
}
