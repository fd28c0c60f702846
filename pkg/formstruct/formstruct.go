package formstruct

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/ukaji3/formstruct-go/pkg/formstruct/models"
	"github.com/ukaji3/formstruct-go/pkg/formstruct/parser"
	"github.com/xuri/excelize/v2"
)

// ParseLayout reads a workbook from r and infers its form layout.
// sourceFileName is only used in error messages.
func ParseLayout(r io.Reader, sourceFileName string, opts Options) (layout *models.FormLayout, err error) {
	f, e := excelize.OpenReader(r)
	if e != nil {
		return nil, &ParseError{Source: sourceFileName, Reason: parser.ReasonFailed, Cause: e}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	return parser.ParseLayout(f, sourceFileName, opts.probeParams())
}

// Parse reads a workbook from r and returns only its form structure.
func Parse(r io.Reader, sourceFileName string, opts Options) (*models.FormStructure, error) {
	layout, err := ParseLayout(r, sourceFileName, opts)
	if err != nil {
		return nil, err
	}
	return &layout.Structure, nil
}

// ReadDataRows reads a workbook from r and extracts its data rows using
// layout. The workbook must share the geometry layout was parsed from.
func ReadDataRows(r io.Reader, layout *models.FormLayout) (rows []models.FormDataRow, err error) {
	f, e := excelize.OpenReader(r)
	if e != nil {
		return nil, &ParseError{Reason: parser.ReasonFailed, Cause: e}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	return parser.ReadDataRows(f, layout)
}

// ParseLayoutFile infers the form layout of the Excel file at path.
func ParseLayoutFile(path string, opts Options) (*models.FormLayout, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseLayout(file, filepath.Base(path), opts)
}

// ReadDataRowsFile extracts the data rows of the Excel file at path.
func ReadDataRowsFile(path string, layout *models.FormLayout) ([]models.FormDataRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadDataRows(file, layout)
}

// NormalizeFormNumber returns the key a raw form number is stored under:
// its first run of decimal digits, or the trimmed text when it has none.
func NormalizeFormNumber(raw string) string {
	return parser.NormalizeFormNumber(raw)
}
