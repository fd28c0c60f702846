package models

// ColumnType tags the data type of a column.
type ColumnType string

const (
	ColumnTypeString   ColumnType = "string"
	ColumnTypeDate     ColumnType = "date"
	ColumnTypeDateTime ColumnType = "datetime"
	ColumnTypeInteger  ColumnType = "integer"
	ColumnTypeDecimal  ColumnType = "decimal"
)

// Valid reports whether t is one of the known column types.
func (t ColumnType) Valid() bool {
	switch t {
	case ColumnTypeString, ColumnTypeDate, ColumnTypeDateTime, ColumnTypeInteger, ColumnTypeDecimal:
		return true
	}
	return false
}

// ColumnDefinition represents one leaf column of a flattened form header.
type ColumnDefinition struct {
	// Index is the 1-based position among the leaf columns.
	Index int `json:"index"`
	// Name is the leaf header label.
	Name string `json:"name"`
	// Path joins the labels from the root header down to the leaf.
	// It identifies the column across files and versions.
	Path string `json:"path"`
	// ColumnNumber is the text of the column-index row cell, if the form has one.
	ColumnNumber *string `json:"column_number,omitempty"`
	// Type is the data type of the column values.
	Type ColumnType `json:"type"`
}
