package models

// FormLayout is the parser's complete output for one workbook.
type FormLayout struct {
	// Structure is the schema derived from the header.
	Structure FormStructure `json:"structure"`
	// HeaderRowStart is the first header row (1-based).
	HeaderRowStart int `json:"header_row_start"`
	// LastHeaderRow is the last header row, including a column-index row.
	LastHeaderRow int `json:"last_header_row"`
	// DataStartRow is the first candidate data row.
	DataStartRow int `json:"data_start_row"`
	// UsedLastRow is the last row holding any cell content.
	UsedLastRow int `json:"used_last_row"`
	// LeafColumns maps each column definition, by position, to a worksheet column.
	LeafColumns []int `json:"leaf_columns"`
}
