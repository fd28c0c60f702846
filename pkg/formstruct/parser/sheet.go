// Package parser provides form layout inference over Excel worksheets.
package parser

import (
	"strings"

	"github.com/ukaji3/formstruct-go/pkg/formstruct/models"
	"github.com/xuri/excelize/v2"
)

// sheet is an in-memory view of the first worksheet of a workbook.
type sheet struct {
	name   string
	rows   [][]string
	merges []models.Area
	// formulas marks cells holding a formula without a cached display value.
	formulas map[cellRef]bool
	// lastRow and lastCol bound the cells holding content (1-based).
	lastRow int
	lastCol int
}

// loadSheet reads cell text and merged ranges of the first worksheet.
func loadSheet(f *excelize.File) (*sheet, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, newParseError(ReasonNoWorksheets, "")
	}
	name := sheets[0]

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, err
	}

	mergeCells, err := f.GetMergeCells(name)
	if err != nil {
		return nil, err
	}
	merges := make([]models.Area, 0, len(mergeCells))
	for _, mc := range mergeCells {
		area, err := parseRangeToArea(mc.GetStartAxis() + ":" + mc.GetEndAxis())
		if err != nil {
			return nil, err
		}
		merges = append(merges, area)
	}

	formulas, err := findFormulaCells(f, name, rows)
	if err != nil {
		return nil, err
	}

	s := &sheet{
		name:     name,
		rows:     rows,
		merges:   merges,
		formulas: formulas,
	}
	s.lastRow, s.lastCol = s.contentBounds()
	return s, nil
}

// cellRef is a 1-based (row, col) pair.
type cellRef struct {
	row, col int
}

// findFormulaCells looks up the blank cells of the GetRows grid. GetRows keeps
// a formula cell with no cached value as "", indistinguishable from padding.
func findFormulaCells(f *excelize.File, name string, rows [][]string) (map[cellRef]bool, error) {
	formulas := make(map[cellRef]bool)
	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				continue
			}
			formula, err := f.GetCellFormula(name, cellName(rowIdx+1, colIdx+1))
			if err != nil {
				return nil, err
			}
			if formula != "" {
				formulas[cellRef{rowIdx + 1, colIdx + 1}] = true
			}
		}
	}
	return formulas, nil
}

// text returns the trimmed display text of the cell at (row, col).
func (s *sheet) text(row, col int) string {
	return strings.TrimSpace(s.raw(row, col))
}

// firstText returns the first non-empty cell text in row, scanning left to right.
func (s *sheet) firstText(row int) string {
	for col := 1; col <= s.lastCol; col++ {
		if t := s.text(row, col); t != "" {
			return t
		}
	}
	return ""
}

// mergeAt returns the merged range covering (row, col).
func (s *sheet) mergeAt(row, col int) (models.Area, bool) {
	for _, m := range s.merges {
		if m.Contains(row, col) {
			return m, true
		}
	}
	return models.Area{}, false
}

// raw returns the untrimmed display text of the cell at (row, col).
func (s *sheet) raw(row, col int) string {
	if row < 1 || col < 1 || row > len(s.rows) {
		return ""
	}
	cells := s.rows[row-1]
	if col > len(cells) {
		return ""
	}
	return cells[col-1]
}

// hasContent reports whether the cell holds a value or a formula.
// Whitespace counts as a value; a style alone does not.
func (s *sheet) hasContent(row, col int) bool {
	return s.raw(row, col) != "" || s.formulas[cellRef{row, col}]
}

// rowIsEmpty reports whether none of the listed columns of row has content.
func (s *sheet) rowIsEmpty(row int, cols []int) bool {
	for _, col := range cols {
		if s.hasContent(row, col) {
			return false
		}
	}
	return true
}

// contentBounds finds the last row and column holding content.
// Cells that only carry a style come back from GetRows as padding and are ignored.
func (s *sheet) contentBounds() (lastRow, lastCol int) {
	for rowIdx, row := range s.rows {
		for colIdx := range row {
			if !s.hasContent(rowIdx+1, colIdx+1) {
				continue
			}
			if rowIdx+1 > lastRow {
				lastRow = rowIdx + 1
			}
			if colIdx+1 > lastCol {
				lastCol = colIdx + 1
			}
		}
	}
	return
}
