package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ukaji3/formstruct-go/pkg/formstruct/models"
)

// PathSeparator joins header labels into a column path.
const PathSeparator = " / "

var digitRun = regexp.MustCompile(`[0-9]+`)

// firstDigits returns the first run of decimal digits in s.
func firstDigits(s string) string {
	return digitRun.FindString(s)
}

// NormalizeFormNumber extracts the first digit run of raw,
// or returns raw trimmed when it has no digits.
func NormalizeFormNumber(raw string) string {
	raw = strings.TrimSpace(raw)
	if digits := firstDigits(raw); digits != "" {
		return digits
	}
	return raw
}

// flattenColumns derives the column definitions and their worksheet columns
// from the tree's leaves.
func flattenColumns(t *headerTree) ([]models.ColumnDefinition, []int) {
	columns := make([]models.ColumnDefinition, 0, len(t.leaves))
	leafCols := make([]int, 0, len(t.leaves))
	for i, leaf := range t.leaves {
		columns = append(columns, models.ColumnDefinition{
			Index: i + 1,
			Name:  leaf.label,
			Path:  strings.Join(leaf.path(), PathSeparator),
			Type:  models.ColumnTypeString,
		})
		leafCols = append(leafCols, leaf.area.C1)
	}
	return columns, leafCols
}

// columnIndexRow checks whether row numbers the leaf columns 1..N in order.
// It returns the matched digit text for each leaf column.
func columnIndexRow(s *sheet, row int, leafCols []int) ([]string, bool) {
	if row > s.lastRow || len(leafCols) == 0 {
		return nil, false
	}
	numbers := make([]string, len(leafCols))
	for i, col := range leafCols {
		digits := firstDigits(s.text(row, col))
		if digits == "" {
			return nil, false
		}
		n, err := strconv.Atoi(digits)
		if err != nil || n != i+1 {
			return nil, false
		}
		numbers[i] = digits
	}
	return numbers, true
}
