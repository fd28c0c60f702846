package parser

import (
	"fmt"
	"sort"

	"github.com/ukaji3/formstruct-go/pkg/formstruct/models"
)

// headerFirstRow is the first header row; rows 1 and 2 hold number and title.
const headerFirstRow = 3

// region is a mutable header node used while linking parents and children.
type region struct {
	label    string
	area     models.Area
	parent   *region
	children []*region
}

// headerTree is the header built for one candidate boundary.
type headerTree struct {
	firstRow int
	lastRow  int
	lastCol  int
	roots    []*region
	leaves   []*region
	// bottom is the number of regions ending on lastRow.
	bottom int
}

// buildHeader builds the header tree covering rows firstRow..lastRow and
// columns 1..lastCol. Structural violations are returned as *ParseError.
func buildHeader(s *sheet, firstRow, lastRow, lastCol int) (*headerTree, error) {
	regions, err := collectRegions(s, firstRow, lastRow, lastCol)
	if err != nil {
		return nil, err
	}

	tree := &headerTree{
		firstRow: firstRow,
		lastRow:  lastRow,
		lastCol:  lastCol,
	}

	if err := tree.checkBottomRow(regions); err != nil {
		return nil, err
	}

	tree.link(regions)

	for _, r := range regions {
		if len(r.children) == 0 && r.area.Width() > 1 {
			return nil, newParseError(ReasonLeafSpansColumns,
				fmt.Sprintf("at %s (%q)", cellName(r.area.R1, r.area.C1), r.label))
		}
	}

	tree.leaves, err = uniqueLeaves(tree.roots)
	if err != nil {
		return nil, err
	}
	return tree, nil
}

// uniqueLeaves collects the leaves below roots depth-first and requires each
// to own a distinct worksheet column. Regions read from a well-formed sheet
// always pass: a single-column region above another in the same column
// becomes its parent. Overlapping merges in a damaged file are what this
// rejects.
func uniqueLeaves(roots []*region) ([]*region, error) {
	var leaves []*region
	seen := make(map[int]*region)
	for _, root := range roots {
		for _, leaf := range collectLeaves(root) {
			if prev, ok := seen[leaf.area.C1]; ok {
				return nil, newParseError(ReasonLeafColumnsNotUnique,
					fmt.Sprintf("at %s and %s", cellName(prev.area.R1, prev.area.C1), cellName(leaf.area.R1, leaf.area.C1)))
			}
			seen[leaf.area.C1] = leaf
			leaves = append(leaves, leaf)
		}
	}
	return leaves, nil
}

// collectRegions records one region per merged anchor or labelled plain cell.
func collectRegions(s *sheet, firstRow, lastRow, lastCol int) ([]*region, error) {
	var regions []*region
	for row := firstRow; row <= lastRow; row++ {
		for col := 1; col <= lastCol; col++ {
			if m, ok := s.mergeAt(row, col); ok {
				if !m.IsAnchor(row, col) {
					continue
				}
				label := s.text(row, col)
				if label == "" {
					return nil, newParseError(ReasonHeaderCellEmpty, "at "+cellName(row, col))
				}
				if m.R2 > lastRow {
					return nil, newParseError(ReasonProbeInsideMerge, "at "+cellName(row, col))
				}
				regions = append(regions, &region{label: label, area: m})
				continue
			}
			if label := s.text(row, col); label != "" {
				regions = append(regions, &region{
					label: label,
					area:  models.Area{R1: row, C1: col, R2: row, C2: col},
				})
			}
		}
	}
	return regions, nil
}

// checkBottomRow requires the regions ending on the last header row to cover
// every header column. A header without such regions is left unchecked.
func (t *headerTree) checkBottomRow(regions []*region) error {
	covered := make([]bool, t.lastCol+1)
	for _, r := range regions {
		if r.area.R2 != t.lastRow {
			continue
		}
		t.bottom++
		for col := r.area.C1; col <= r.area.C2 && col <= t.lastCol; col++ {
			covered[col] = true
		}
	}
	if t.bottom == 0 {
		return nil
	}
	for col := 1; col <= t.lastCol; col++ {
		if !covered[col] {
			return newParseError(ReasonHeaderGap, "at "+cellName(t.lastRow, col))
		}
	}
	return nil
}

// link assigns every region the containing region that starts closest above it.
func (t *headerTree) link(regions []*region) {
	for _, r := range regions {
		var parent *region
		for _, p := range regions {
			if p.area.R1 >= r.area.R1 || p.area.C1 > r.area.C1 || p.area.C2 < r.area.C2 {
				continue
			}
			if parent == nil || p.area.R1 > parent.area.R1 {
				parent = p
			}
		}
		r.parent = parent
		if parent == nil {
			t.roots = append(t.roots, r)
		} else {
			parent.children = append(parent.children, r)
		}
	}

	sortRegions(t.roots)
	for _, r := range regions {
		sortRegions(r.children)
	}
}

// checkBottomEdge requires the leaves to cover columns 1..lastCol.
func (t *headerTree) checkBottomEdge() error {
	if len(t.leaves) == 0 {
		return newParseError(ReasonHeaderMissing, "")
	}
	covered := make([]bool, t.lastCol+1)
	for _, leaf := range t.leaves {
		if leaf.area.C1 <= t.lastCol {
			covered[leaf.area.C1] = true
		}
	}
	for col := 1; col <= t.lastCol; col++ {
		if !covered[col] {
			return newParseError(ReasonHeaderGap, "at "+cellName(t.lastRow, col))
		}
	}
	return nil
}

// nodes converts the tree into immutable header nodes.
func (t *headerTree) nodes() []models.HeaderNode {
	nodes := make([]models.HeaderNode, 0, len(t.roots))
	for _, r := range t.roots {
		nodes = append(nodes, r.node())
	}
	return nodes
}

// path returns the labels from the root down to r.
func (r *region) path() []string {
	if r.parent == nil {
		return []string{r.label}
	}
	return append(r.parent.path(), r.label)
}

func (r *region) node() models.HeaderNode {
	n := models.HeaderNode{
		Label:    r.label,
		RowStart: r.area.R1,
		RowEnd:   r.area.R2,
		ColStart: r.area.C1,
		ColEnd:   r.area.C2,
	}
	for _, c := range r.children {
		n.Children = append(n.Children, c.node())
	}
	return n
}

func collectLeaves(r *region) []*region {
	if len(r.children) == 0 {
		return []*region{r}
	}
	var leaves []*region
	for _, c := range r.children {
		leaves = append(leaves, collectLeaves(c)...)
	}
	return leaves
}

func sortRegions(regions []*region) {
	sort.SliceStable(regions, func(i, j int) bool {
		if regions[i].area.C1 != regions[j].area.C1 {
			return regions[i].area.C1 < regions[j].area.C1
		}
		return regions[i].area.R1 < regions[j].area.R1
	})
}
