package parser

import (
	"fmt"
	"time"

	"github.com/ukaji3/formstruct-go/pkg/formstruct/models"
	"github.com/xuri/excelize/v2"
)

// ParseLayout infers the form layout of the first worksheet of f.
// source names the workbook in error messages.
func ParseLayout(f *excelize.File, source string, params ProbeParams) (layout *models.FormLayout, err error) {
	defer func() {
		if p := recover(); p != nil {
			layout, err = nil, fmt.Errorf("panic while reading worksheet: %v", p)
		}
		err = wrapParseError(source, err)
	}()

	s, err := loadSheet(f)
	if err != nil {
		return nil, err
	}
	if s.lastRow == 0 {
		return nil, newParseError(ReasonEmptyWorkbook, "")
	}

	rawNumber := s.firstText(1)
	if rawNumber == "" {
		return nil, newParseError(ReasonFormNumberMissing, "")
	}
	title := s.firstText(2)
	if title == "" {
		return nil, newParseError(ReasonFormTitleMissing, "")
	}

	tree, err := probeHeader(s, params)
	if err != nil {
		return nil, err
	}

	header := tree.nodes()
	columns, leafCols := flattenColumns(tree)

	lastHeaderRow := tree.lastRow
	if numbers, ok := columnIndexRow(s, lastHeaderRow+1, leafCols); ok {
		lastHeaderRow++
		for i := range columns {
			columns[i].ColumnNumber = &numbers[i]
		}
		params.logger().Debug("column index row consumed", "sheet", s.name, "row", lastHeaderRow)
	}

	hash, err := StructureHash(header, columns)
	if err != nil {
		return nil, err
	}

	formNumber := NormalizeFormNumber(rawNumber)
	structure := models.FormStructure{
		FormNumber:    formNumber,
		FormTitle:     title,
		UploadedAtUTC: time.Now().UTC(),
		Header:        header,
		Columns:       columns,
		StructureHash: hash,
	}
	if rawNumber != formNumber {
		structure.TemplateFormNumber = rawNumber
	}

	return &models.FormLayout{
		Structure:      structure,
		HeaderRowStart: headerFirstRow,
		LastHeaderRow:  lastHeaderRow,
		DataStartRow:   lastHeaderRow + 1,
		UsedLastRow:    s.lastRow,
		LeafColumns:    leafCols,
	}, nil
}
