package parser

import (
	"log/slog"
)

// DefaultMaxProbeRows bounds how far below its start the header boundary is searched.
const DefaultMaxProbeRows = 50

// ProbeParams holds parameters for header boundary probing.
type ProbeParams struct {
	// MaxRows is the number of rows past the start row that may be probed.
	MaxRows int
	// Logger receives probe diagnostics. Nil disables logging.
	Logger *slog.Logger
}

// DefaultProbeParams returns default probing parameters.
func DefaultProbeParams() ProbeParams {
	return ProbeParams{
		MaxRows: DefaultMaxProbeRows,
	}
}

func (p ProbeParams) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}

// probeHeader finds the first boundary row below which a valid header ends.
// Candidates are tried one row at a time; the most specific failure is
// returned when none of them yields a header.
func probeHeader(s *sheet, params ProbeParams) (*headerTree, error) {
	log := params.logger()
	maxRows := params.MaxRows
	if maxRows <= 0 {
		maxRows = DefaultMaxProbeRows
	}

	start := probeStartRow(s)
	limit := min(start+maxRows, s.lastRow)
	if limit < start {
		limit = start
	}

	var lastErr error
	for candidate := start; candidate <= limit; candidate++ {
		lastCol := headerLastCol(s, headerFirstRow, candidate)
		if lastCol < 1 {
			continue
		}

		tree, err := buildHeader(s, headerFirstRow, candidate, lastCol)
		if err == nil {
			err = tree.checkBottomEdge()
		}
		if err == nil {
			log.Debug("header boundary accepted", "sheet", s.name, "last_row", candidate, "last_col", lastCol)
			return tree, nil
		}

		log.Debug("header candidate rejected", "sheet", s.name, "row", candidate, "error", err)
		if lastErr == nil || specificity(err) >= specificity(lastErr) {
			lastErr = err
		}
	}

	if lastErr == nil {
		lastErr = newParseError(ReasonHeaderMissing, "")
	}
	return nil, lastErr
}

// probeStartRow returns the first candidate boundary. A merge starting at or
// below the first header row cannot be cut, so the start is pushed down to
// the bottom of the topmost such merge.
func probeStartRow(s *sheet) int {
	start := headerFirstRow
	top := 0
	for _, m := range s.merges {
		if m.R1 < headerFirstRow {
			continue
		}
		if top == 0 || m.R1 < top {
			top = m.R1
		}
	}
	for _, m := range s.merges {
		if m.R1 == top && m.R2 > start {
			start = m.R2
		}
	}
	return start
}

// headerLastCol returns the rightmost header column for rows firstRow..lastRow:
// the larger of the rightmost labelled cell and the rightmost merge edge.
func headerLastCol(s *sheet, firstRow, lastRow int) int {
	lastCol := 0
	for row := firstRow; row <= lastRow; row++ {
		for col := s.lastCol; col > lastCol; col-- {
			if s.text(row, col) != "" {
				lastCol = col
				break
			}
		}
	}
	for _, m := range s.merges {
		if m.R1 >= firstRow && m.R1 <= lastRow && m.C2 > lastCol {
			lastCol = m.C2
		}
	}
	return lastCol
}
