package formstruct

import "github.com/ukaji3/formstruct-go/pkg/formstruct/parser"

// ParseError is re-exported from the parser package and describes which
// structural expectation a workbook violated.
//
// Example:
//
//	var pe *formstruct.ParseError
//	if errors.As(err, &pe) {
//	    fmt.Println(pe.Reason)
//	}
type ParseError = parser.ParseError

// Sentinels matching ParseError reasons via errors.Is.
var (
	ErrNoWorksheets      = parser.ErrNoWorksheets
	ErrEmptyWorkbook     = parser.ErrEmptyWorkbook
	ErrFormNumberMissing = parser.ErrFormNumberMissing
	ErrFormTitleMissing  = parser.ErrFormTitleMissing
	ErrHeaderMissing     = parser.ErrHeaderMissing
	ErrHeaderCellEmpty   = parser.ErrHeaderCellEmpty
	ErrProbeInsideMerge  = parser.ErrProbeInsideMerge
	ErrHeaderGap         = parser.ErrHeaderGap
	ErrLeafSpansColumns  = parser.ErrLeafSpansColumns
	ErrLeafNotUnique     = parser.ErrLeafNotUnique
	ErrLayoutMismatch    = parser.ErrLayoutMismatch
	ErrFailed            = parser.ErrFailed
)
