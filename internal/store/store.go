// Package store persists form schema versions and data uploads in SQLite.
package store

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ukaji3/formstruct-go/pkg/formstruct/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// FormVersion is a stored schema version of a form.
type FormVersion struct {
	ID string `json:"id"`
	models.FormStructure
}

// FormSummary describes one stored form.
type FormSummary struct {
	FormNumber    string `json:"form_number"`
	FormTitle     string `json:"form_title"`
	LatestVersion int    `json:"latest_version"`
	Versions      int    `json:"versions"`
}

// Upload is a stored set of data rows extracted from one filled form.
type Upload struct {
	ID            string               `json:"id"`
	FormVersionID string               `json:"form_version_id"`
	FormNumber    string               `json:"form_number"`
	Version       int                  `json:"version"`
	SourceName    string               `json:"source_name"`
	RowCount      int                  `json:"row_count"`
	UploadedAtUTC time.Time            `json:"uploaded_at_utc"`
	Rows          []models.FormDataRow `json:"rows,omitempty"`
}

const timeLayout = time.RFC3339Nano

func generateID() string {
	return uuid.New().String()
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
