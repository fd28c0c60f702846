// Package formstruct learns form schemas from Excel templates and extracts
// data rows from filled-in copies of the same form.
package formstruct

import (
	"log/slog"

	"github.com/ukaji3/formstruct-go/pkg/formstruct/parser"
)

// Options configures parsing behavior.
type Options struct {
	// MaxHeaderProbeRows limits how many rows past the first candidate the
	// header boundary search may try. Zero means parser.DefaultMaxProbeRows.
	MaxHeaderProbeRows int
	// Logger receives debug diagnostics from the header search.
	// If nil, nothing is logged.
	Logger *slog.Logger
}

// DefaultOptions returns default parsing options.
func DefaultOptions() Options {
	return Options{
		MaxHeaderProbeRows: parser.DefaultMaxProbeRows,
	}
}

func (o Options) probeParams() parser.ProbeParams {
	params := parser.DefaultProbeParams()
	if o.MaxHeaderProbeRows > 0 {
		params.MaxRows = o.MaxHeaderProbeRows
	}
	params.Logger = o.Logger
	return params
}
