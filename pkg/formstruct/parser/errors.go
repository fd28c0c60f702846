package parser

import (
	"errors"
	"fmt"
)

// Diagnostic reasons carried by ParseError.
const (
	ReasonNoWorksheets         = "Excel file contains no worksheets"
	ReasonEmptyWorkbook        = "Excel file is empty"
	ReasonFormNumberMissing    = "Form number is missing"
	ReasonFormTitleMissing     = "Form title is missing"
	ReasonHeaderMissing        = "Header is missing"
	ReasonHeaderCellEmpty      = "Header cell is empty"
	ReasonProbeInsideMerge     = "Header probe ended inside a merged range"
	ReasonHeaderGap            = "Header has a gap in bottom row"
	ReasonLeafSpansColumns     = "Leaf header spans multiple columns"
	ReasonLeafColumnsNotUnique = "Leaf header columns are not unique"
	ReasonLayoutMismatch       = "Layout does not match the worksheet"
	ReasonFailed               = "Failed to parse Excel file"
)

// Sentinels for errors.Is. They match any ParseError with the same Reason.
var (
	ErrNoWorksheets      = &ParseError{Reason: ReasonNoWorksheets}
	ErrEmptyWorkbook     = &ParseError{Reason: ReasonEmptyWorkbook}
	ErrFormNumberMissing = &ParseError{Reason: ReasonFormNumberMissing}
	ErrFormTitleMissing  = &ParseError{Reason: ReasonFormTitleMissing}
	ErrHeaderMissing     = &ParseError{Reason: ReasonHeaderMissing}
	ErrHeaderCellEmpty   = &ParseError{Reason: ReasonHeaderCellEmpty}
	ErrProbeInsideMerge  = &ParseError{Reason: ReasonProbeInsideMerge}
	ErrHeaderGap         = &ParseError{Reason: ReasonHeaderGap}
	ErrLeafSpansColumns  = &ParseError{Reason: ReasonLeafSpansColumns}
	ErrLeafNotUnique     = &ParseError{Reason: ReasonLeafColumnsNotUnique}
	ErrLayoutMismatch    = &ParseError{Reason: ReasonLayoutMismatch}
	ErrFailed            = &ParseError{Reason: ReasonFailed}
)

// ParseError represents a form parse failure.
type ParseError struct {
	// Source is the file name the workbook was read from, if known.
	Source string
	// Reason is one of the Reason* diagnostics.
	Reason string
	// Detail locates the violation, e.g. the offending cell.
	Detail string
	// Cause is the underlying error for wrapped library failures.
	Cause error
}

func (e *ParseError) Error() string {
	msg := e.Reason
	if e.Detail != "" {
		msg += " " + e.Detail
	}
	if e.Source != "" {
		msg = fmt.Sprintf("%s: %s", e.Source, msg)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a ParseError with the same Reason.
func (e *ParseError) Is(target error) bool {
	var t *ParseError
	if errors.As(target, &t) {
		return e.Reason == t.Reason
	}
	return false
}

func newParseError(reason, detail string) *ParseError {
	return &ParseError{Reason: reason, Detail: detail}
}

// wrapParseError attaches source to err, turning foreign errors into ReasonFailed.
func wrapParseError(source string, err error) error {
	if err == nil {
		return nil
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		if pe.Source == "" {
			pe.Source = source
		}
		return pe
	}
	return &ParseError{Source: source, Reason: ReasonFailed, Cause: err}
}

// specificity ranks probe failures; a later failure replaces an earlier one
// of equal or lower rank.
func specificity(err error) int {
	var pe *ParseError
	if !errors.As(err, &pe) {
		return 0
	}
	switch pe.Reason {
	case ReasonHeaderMissing:
		return 0
	case ReasonProbeInsideMerge:
		return 1
	default:
		return 2
	}
}
