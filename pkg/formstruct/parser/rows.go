package parser

import (
	"fmt"

	"github.com/ukaji3/formstruct-go/pkg/formstruct/models"
	"github.com/xuri/excelize/v2"
)

// ReadDataRows extracts the data rows of the first worksheet of f using a
// previously parsed layout. Rows with no content in any leaf column are skipped.
func ReadDataRows(f *excelize.File, layout *models.FormLayout) (result []models.FormDataRow, err error) {
	defer func() {
		if p := recover(); p != nil {
			result, err = nil, fmt.Errorf("panic while reading worksheet: %v", p)
		}
		err = wrapParseError("", err)
	}()

	if layout == nil || len(layout.LeafColumns) != len(layout.Structure.Columns) {
		return nil, newParseError(ReasonLayoutMismatch, "")
	}

	s, err := loadSheet(f)
	if err != nil {
		return nil, err
	}

	columns := layout.Structure.Columns
	for rowNum := layout.DataStartRow; rowNum <= layout.UsedLastRow; rowNum++ {
		if s.rowIsEmpty(rowNum, layout.LeafColumns) {
			continue
		}

		values := make(map[string]*string, len(columns))
		for i, col := range layout.LeafColumns {
			values[columns[i].Path] = cellValue(s, rowNum, col)
		}
		result = append(result, models.FormDataRow{
			RowNumber: rowNum,
			Values:    values,
		})
	}

	return result, nil
}

// cellValue returns the trimmed display text of a cell, or nil when blank.
func cellValue(s *sheet, row, col int) *string {
	v := s.text(row, col)
	if v == "" {
		return nil
	}
	return &v
}
