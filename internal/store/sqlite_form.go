package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ukaji3/formstruct-go/internal/db"
	"github.com/ukaji3/formstruct-go/pkg/formstruct/models"
)

// SQLiteFormRepo stores form versions.
type SQLiteFormRepo struct {
	db db.DBTX
}

// NewSQLiteFormRepo creates a new SQLiteFormRepo.
func NewSQLiteFormRepo(db db.DBTX) *SQLiteFormRepo {
	return &SQLiteFormRepo{db: db}
}

const formColumns = `id, form_number, template_form_number, form_title, version, structure_hash, header_json, columns_json, uploaded_at`

// CreateVersion stores s as the next version of its form and sets s.Version.
func (r *SQLiteFormRepo) CreateVersion(ctx context.Context, s *models.FormStructure) (*FormVersion, error) {
	var next int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) + 1 FROM form_versions WHERE form_number = ?`,
		s.FormNumber,
	).Scan(&next)
	if err != nil {
		return nil, fmt.Errorf("computing next version: %w", err)
	}

	headerJSON, err := json.Marshal(s.Header)
	if err != nil {
		return nil, fmt.Errorf("encoding header: %w", err)
	}
	columnsJSON, err := json.Marshal(s.Columns)
	if err != nil {
		return nil, fmt.Errorf("encoding columns: %w", err)
	}

	v := &FormVersion{ID: generateID(), FormStructure: *s}
	v.Version = next
	v.UploadedAtUTC = v.UploadedAtUTC.UTC()

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO form_versions (`+formColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID,
		v.FormNumber,
		v.TemplateFormNumber,
		v.FormTitle,
		v.Version,
		v.StructureHash,
		string(headerJSON),
		string(columnsJSON),
		v.UploadedAtUTC.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting form version: %w", err)
	}

	s.Version = next
	return v, nil
}

// FindByHash returns the version of formNumber with the given structure hash.
func (r *SQLiteFormRepo) FindByHash(ctx context.Context, formNumber, hash string) (*FormVersion, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+formColumns+` FROM form_versions
		WHERE form_number = ? AND structure_hash = ? ORDER BY version DESC LIMIT 1`,
		formNumber, hash)
	return scanFormVersion(row)
}

// Latest returns the highest version of formNumber.
func (r *SQLiteFormRepo) Latest(ctx context.Context, formNumber string) (*FormVersion, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+formColumns+` FROM form_versions
		WHERE form_number = ? ORDER BY version DESC LIMIT 1`,
		formNumber)
	return scanFormVersion(row)
}

// GetVersion returns one version of formNumber.
func (r *SQLiteFormRepo) GetVersion(ctx context.Context, formNumber string, version int) (*FormVersion, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+formColumns+` FROM form_versions WHERE form_number = ? AND version = ?`,
		formNumber, version)
	return scanFormVersion(row)
}

// ListVersions returns all versions of formNumber, oldest first.
func (r *SQLiteFormRepo) ListVersions(ctx context.Context, formNumber string) ([]*FormVersion, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+formColumns+` FROM form_versions WHERE form_number = ? ORDER BY version`,
		formNumber)
	if err != nil {
		return nil, fmt.Errorf("listing form versions: %w", err)
	}
	defer rows.Close()

	var versions []*FormVersion
	for rows.Next() {
		v, err := scanFormVersion(rows)
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// ListForms summarizes every stored form, ordered by form number.
func (r *SQLiteFormRepo) ListForms(ctx context.Context) ([]FormSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT v.form_number, v.form_title, v.version, c.versions
		FROM form_versions v
		JOIN (SELECT form_number, MAX(version) AS latest, COUNT(*) AS versions
			FROM form_versions GROUP BY form_number) c
			ON c.form_number = v.form_number AND c.latest = v.version
		ORDER BY v.form_number`)
	if err != nil {
		return nil, fmt.Errorf("listing forms: %w", err)
	}
	defer rows.Close()

	var forms []FormSummary
	for rows.Next() {
		var f FormSummary
		if err := rows.Scan(&f.FormNumber, &f.FormTitle, &f.LatestVersion, &f.Versions); err != nil {
			return nil, fmt.Errorf("scanning form summary: %w", err)
		}
		forms = append(forms, f)
	}
	return forms, rows.Err()
}

// SetColumnType changes the type of the column identified by path.
func (r *SQLiteFormRepo) SetColumnType(ctx context.Context, formNumber string, version int, path string, typ models.ColumnType) error {
	if !typ.Valid() {
		return fmt.Errorf("unknown column type %q", typ)
	}
	v, err := r.GetVersion(ctx, formNumber, version)
	if err != nil {
		return err
	}

	found := false
	for i := range v.Columns {
		if v.Columns[i].Path == path {
			v.Columns[i].Type = typ
			found = true
		}
	}
	if !found {
		return fmt.Errorf("column %q: %w", path, ErrNotFound)
	}

	columnsJSON, err := json.Marshal(v.Columns)
	if err != nil {
		return fmt.Errorf("encoding columns: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `UPDATE form_versions SET columns_json = ? WHERE id = ?`, string(columnsJSON), v.ID)
	if err != nil {
		return fmt.Errorf("updating columns: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFormVersion(row scanner) (*FormVersion, error) {
	var (
		v           FormVersion
		headerJSON  string
		columnsJSON string
		uploadedAt  string
	)
	err := row.Scan(
		&v.ID,
		&v.FormNumber,
		&v.TemplateFormNumber,
		&v.FormTitle,
		&v.Version,
		&v.StructureHash,
		&headerJSON,
		&columnsJSON,
		&uploadedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning form version: %w", err)
	}

	if err := json.Unmarshal([]byte(headerJSON), &v.Header); err != nil {
		return nil, fmt.Errorf("decoding header: %w", err)
	}
	if err := json.Unmarshal([]byte(columnsJSON), &v.Columns); err != nil {
		return nil, fmt.Errorf("decoding columns: %w", err)
	}
	if v.UploadedAtUTC, err = parseTime(uploadedAt); err != nil {
		return nil, fmt.Errorf("parsing uploaded_at: %w", err)
	}
	return &v, nil
}
