package testutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// Workbook builds an in-memory xlsx file for parser tests.
type Workbook struct {
	t     testing.TB
	f     *excelize.File
	sheet string
}

// NewWorkbook creates an empty workbook with a single sheet.
func NewWorkbook(t testing.TB) *Workbook {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })
	return &Workbook{t: t, f: f, sheet: f.GetSheetName(0)}
}

// Set writes value into cell.
func (w *Workbook) Set(cell string, value any) *Workbook {
	w.t.Helper()
	require.NoError(w.t, w.f.SetCellValue(w.sheet, cell, value))
	return w
}

// Row writes values into row starting at column A. Nil values are skipped.
func (w *Workbook) Row(row int, values ...any) *Workbook {
	w.t.Helper()
	for i, v := range values {
		if v == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		require.NoError(w.t, err)
		w.Set(cell, v)
	}
	return w
}

// Merge merges from:to and writes label into the anchor cell when non-empty.
func (w *Workbook) Merge(from, to, label string) *Workbook {
	w.t.Helper()
	if label != "" {
		w.Set(from, label)
	}
	require.NoError(w.t, w.f.MergeCell(w.sheet, from, to))
	return w
}

// Formula writes formula into cell without a cached result, as files saved
// by libraries that do not evaluate formulas have them.
func (w *Workbook) Formula(cell, formula string) *Workbook {
	w.t.Helper()
	require.NoError(w.t, w.f.SetCellFormula(w.sheet, cell, formula))
	return w
}

// DateStyle applies a date number format to from:to without writing values.
func (w *Workbook) DateStyle(from, to string) *Workbook {
	w.t.Helper()
	style, err := w.f.NewStyle(&excelize.Style{NumFmt: 14})
	require.NoError(w.t, err)
	require.NoError(w.t, w.f.SetCellStyle(w.sheet, from, to, style))
	return w
}

// Bytes serializes the workbook.
func (w *Workbook) Bytes() []byte {
	w.t.Helper()
	buf, err := w.f.WriteToBuffer()
	require.NoError(w.t, err)
	return buf.Bytes()
}

// Reader returns a fresh reader over the serialized workbook.
func (w *Workbook) Reader() *bytes.Reader {
	return bytes.NewReader(w.Bytes())
}

// Open serializes the workbook and reopens it, the way an uploaded file is read.
func (w *Workbook) Open() *excelize.File {
	w.t.Helper()
	f, err := excelize.OpenReader(w.Reader())
	require.NoError(w.t, err)
	w.t.Cleanup(func() { _ = f.Close() })
	return f
}

// GroupedTemplate writes the two-row grouped header used across tests:
// "Group A" over A1..A2 and "Group B" over B1..B3.
func GroupedTemplate(t testing.TB, formNumber, title string) *Workbook {
	t.Helper()
	return NewWorkbook(t).
		Set("A1", formNumber).
		Set("A2", title).
		Merge("A3", "B3", "Group A").
		Merge("C3", "E3", "Group B").
		Row(4, "A1", "A2", "B1", "B2", "B3")
}
