package models

import "time"

// FormStructure is a versioned schema snapshot of a form.
type FormStructure struct {
	// FormNumber is the normalized form identifier taken from row 1.
	FormNumber string `json:"form_number"`
	// TemplateFormNumber is the raw form number text when it differs from FormNumber.
	TemplateFormNumber string `json:"template_form_number,omitempty"`
	// FormTitle is the title text taken from row 2.
	FormTitle string `json:"form_title"`
	// Version is the schema version. Zero until a store assigns one.
	Version int `json:"version"`
	// UploadedAtUTC is the time the structure was parsed or stored.
	UploadedAtUTC time.Time `json:"uploaded_at_utc"`
	// Header contains the top-level header nodes.
	Header []HeaderNode `json:"header"`
	// Columns contains the leaf columns in header order.
	Columns []ColumnDefinition `json:"columns"`
	// StructureHash identifies the header layout.
	StructureHash string `json:"structure_hash"`
}

// Column returns the column with the given path.
func (s *FormStructure) Column(path string) (ColumnDefinition, bool) {
	for _, c := range s.Columns {
		if c.Path == path {
			return c, true
		}
	}
	return ColumnDefinition{}, false
}
