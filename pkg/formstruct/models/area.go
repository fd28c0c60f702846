package models

import "fmt"

// Area represents cell coordinate bounds of a rectangular range.
type Area struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// Contains reports whether the cell at (row, col) lies inside the area.
func (a Area) Contains(row, col int) bool {
	return row >= a.R1 && row <= a.R2 && col >= a.C1 && col <= a.C2
}

// IsAnchor reports whether (row, col) is the top-left cell of the area.
func (a Area) IsAnchor(row, col int) bool {
	return row == a.R1 && col == a.C1
}

// Width returns the number of columns covered by the area.
func (a Area) Width() int {
	return a.C2 - a.C1 + 1
}

func (a Area) String() string {
	return fmt.Sprintf("R%dC%d:R%dC%d", a.R1, a.C1, a.R2, a.C2)
}
