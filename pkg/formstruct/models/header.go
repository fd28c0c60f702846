// Package models defines data structures for form layout extraction.
package models

// HeaderNode represents one header cell or merged header region.
type HeaderNode struct {
	// Label is the display text of the region. Never empty.
	Label string `json:"label"`
	// RowStart is the first row covered by the region (1-based).
	RowStart int `json:"row_start"`
	// RowEnd is the last row covered by the region (1-based, inclusive).
	RowEnd int `json:"row_end"`
	// ColStart is the first column covered by the region (1-based).
	ColStart int `json:"col_start"`
	// ColEnd is the last column covered by the region (1-based, inclusive).
	ColEnd int `json:"col_end"`
	// Children are the nested regions ordered by column, then row.
	Children []HeaderNode `json:"children,omitempty"`
}

// IsLeaf reports whether the node has no children.
func (n HeaderNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// Leaves returns the leaf nodes below n in depth-first order.
func (n HeaderNode) Leaves() []HeaderNode {
	if n.IsLeaf() {
		return []HeaderNode{n}
	}
	var leaves []HeaderNode
	for _, child := range n.Children {
		leaves = append(leaves, child.Leaves()...)
	}
	return leaves
}
