package models

// FormDataRow represents one extracted data row.
type FormDataRow struct {
	// RowNumber is the worksheet row index (1-based).
	RowNumber int `json:"row_number"`
	// Values maps column path to the cell display text. Nil marks an empty cell.
	Values map[string]*string `json:"values"`
}

// Value returns the value for path and whether the cell was non-empty.
func (r FormDataRow) Value(path string) (string, bool) {
	v := r.Values[path]
	if v == nil {
		return "", false
	}
	return *v, true
}
