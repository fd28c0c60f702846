// Package ingest registers form templates and stores data from filled forms.
package ingest

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ukaji3/formstruct-go/internal/db"
	"github.com/ukaji3/formstruct-go/internal/store"
	"github.com/ukaji3/formstruct-go/pkg/formstruct"
	"github.com/ukaji3/formstruct-go/pkg/formstruct/models"
)

var (
	// ErrUnknownForm indicates that no template was registered for the form number.
	ErrUnknownForm = errors.New("no template registered for form")
	// ErrStructureMismatch indicates that the header matches no stored version.
	ErrStructureMismatch = errors.New("header does not match any registered version")
)

// Service coordinates parsing with the form and upload stores.
type Service struct {
	db     *sql.DB
	uow    db.UnitOfWork
	opts   formstruct.Options
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a Service over conn. A nil logger discards output.
func NewService(conn *sql.DB, opts formstruct.Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		db:     conn,
		uow:    db.NewSQLiteUnitOfWork(conn),
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}
}

// RegisterResult is the outcome of registering a template.
type RegisterResult struct {
	Version *store.FormVersion `json:"version"`
	// Created is false when a version with the same structure already existed.
	Created bool `json:"created"`
}

// RegisterTemplate parses a template and stores it as a new version of its
// form unless a version with the same structure hash already exists.
// Column types are carried forward from the latest version by path.
func (s *Service) RegisterTemplate(ctx context.Context, r io.Reader, sourceName string) (*RegisterResult, error) {
	layout, err := formstruct.ParseLayout(r, sourceName, s.opts)
	if err != nil {
		return nil, err
	}
	structure := layout.Structure
	structure.UploadedAtUTC = s.now().UTC()

	var result RegisterResult
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		forms := store.NewSQLiteFormRepo(tx)

		existing, err := forms.FindByHash(ctx, structure.FormNumber, structure.StructureHash)
		if err == nil {
			result.Version = existing
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		latest, err := forms.Latest(ctx, structure.FormNumber)
		switch {
		case err == nil:
			carryColumnTypes(&structure, latest)
		case !errors.Is(err, store.ErrNotFound):
			return err
		}

		created, err := forms.CreateVersion(ctx, &structure)
		if err != nil {
			return err
		}
		result.Version = created
		result.Created = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("registering template %s: %w", sourceName, err)
	}

	if result.Created {
		s.logger.Info("form version created",
			"form_number", result.Version.FormNumber,
			"version", result.Version.Version,
			"columns", len(result.Version.Columns),
			"source", sourceName)
	} else {
		s.logger.Info("form structure already registered",
			"form_number", result.Version.FormNumber,
			"version", result.Version.Version,
			"source", sourceName)
	}
	return &result, nil
}

// IngestData parses a filled form, matches it to a registered version by
// structure hash, and stores its non-empty data rows.
func (s *Service) IngestData(ctx context.Context, r io.Reader, sourceName string) (*store.Upload, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", sourceName, err)
	}

	layout, err := formstruct.ParseLayout(bytes.NewReader(data), sourceName, s.opts)
	if err != nil {
		return nil, err
	}
	structure := layout.Structure

	forms := store.NewSQLiteFormRepo(s.db)
	version, err := forms.FindByHash(ctx, structure.FormNumber, structure.StructureHash)
	if errors.Is(err, store.ErrNotFound) {
		if _, latestErr := forms.Latest(ctx, structure.FormNumber); errors.Is(latestErr, store.ErrNotFound) {
			return nil, fmt.Errorf("form %s: %w", structure.FormNumber, ErrUnknownForm)
		}
		return nil, fmt.Errorf("form %s: %w", structure.FormNumber, ErrStructureMismatch)
	}
	if err != nil {
		return nil, err
	}

	rows, err := formstruct.ReadDataRows(bytes.NewReader(data), layout)
	if err != nil {
		return nil, err
	}

	upload := &store.Upload{
		FormVersionID: version.ID,
		FormNumber:    version.FormNumber,
		Version:       version.Version,
		SourceName:    sourceName,
		UploadedAtUTC: s.now().UTC(),
		Rows:          rows,
	}
	if err := store.NewSQLiteUploadRepo(s.db).Create(ctx, upload); err != nil {
		return nil, err
	}

	s.logger.Info("upload stored",
		"upload_id", upload.ID,
		"form_number", upload.FormNumber,
		"version", upload.Version,
		"rows", upload.RowCount,
		"source", sourceName)
	return upload, nil
}

// Forms lists every stored form.
func (s *Service) Forms(ctx context.Context) ([]store.FormSummary, error) {
	return store.NewSQLiteFormRepo(s.db).ListForms(ctx)
}

// Versions lists the stored versions of formNumber.
func (s *Service) Versions(ctx context.Context, formNumber string) ([]*store.FormVersion, error) {
	return store.NewSQLiteFormRepo(s.db).ListVersions(ctx, formNumber)
}

// Version returns one stored version of formNumber.
func (s *Service) Version(ctx context.Context, formNumber string, version int) (*store.FormVersion, error) {
	return store.NewSQLiteFormRepo(s.db).GetVersion(ctx, formNumber, version)
}

// Uploads lists the stored uploads of formNumber without their rows.
func (s *Service) Uploads(ctx context.Context, formNumber string) ([]*store.Upload, error) {
	return store.NewSQLiteUploadRepo(s.db).ListByForm(ctx, formNumber)
}

// Upload returns one stored upload with its rows.
func (s *Service) Upload(ctx context.Context, id string) (*store.Upload, error) {
	return store.NewSQLiteUploadRepo(s.db).Get(ctx, id)
}

// SetColumnType assigns a data type to a column of a stored version.
func (s *Service) SetColumnType(ctx context.Context, formNumber string, version int, path string, typ models.ColumnType) error {
	if err := store.NewSQLiteFormRepo(s.db).SetColumnType(ctx, formNumber, version, path, typ); err != nil {
		return err
	}
	s.logger.Info("column type set", "form_number", formNumber, "version", version, "path", path, "type", typ)
	return nil
}

// carryColumnTypes copies column types from prev onto columns with the same path.
func carryColumnTypes(s *models.FormStructure, prev *store.FormVersion) {
	types := make(map[string]models.ColumnType, len(prev.Columns))
	for _, c := range prev.Columns {
		types[c.Path] = c.Type
	}
	for i := range s.Columns {
		if t, ok := types[s.Columns[i].Path]; ok && t != "" {
			s.Columns[i].Type = t
		}
	}
}
