package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/formstruct-go/pkg/formstruct/models"
)

// gridSheet builds a sheet from literal rows, starting at row 1.
func gridSheet(rows [][]string, merges ...models.Area) *sheet {
	s := &sheet{name: "Sheet1", rows: rows, merges: merges}
	s.lastRow, s.lastCol = s.contentBounds()
	return s
}

func TestBuildHeader_ParentIsClosestContainingRegion(t *testing.T) {
	s := gridSheet([][]string{
		{"1"},
		{"T"},
		{"Top", "", ""},
		{"Mid", "", "Side"},
		{"a", "b", "c"},
	},
		models.Area{R1: 3, C1: 1, R2: 3, C2: 3},
		models.Area{R1: 4, C1: 1, R2: 4, C2: 2},
	)

	tree, err := buildHeader(s, 3, 5, 3)
	require.NoError(t, err)
	require.NoError(t, tree.checkBottomEdge())

	require.Len(t, tree.leaves, 3)
	assert.Equal(t, []string{"Top", "Mid", "a"}, tree.leaves[0].path())
	assert.Equal(t, []string{"Top", "Mid", "b"}, tree.leaves[1].path())
	assert.Equal(t, []string{"Top", "Side", "c"}, tree.leaves[2].path())

	nodes := tree.nodes()
	require.Len(t, nodes, 1)
	assert.Equal(t, "Top", nodes[0].Label)
	require.Len(t, nodes[0].Children, 2)
	assert.Equal(t, "Mid", nodes[0].Children[0].Label)
	assert.Equal(t, "Side", nodes[0].Children[1].Label)
	assert.Len(t, nodes[0].Leaves(), 3)
}

func TestBuildHeader_ForestOfRoots(t *testing.T) {
	s := gridSheet([][]string{
		{"1"},
		{"T"},
		{"x", "y", "z"},
	})

	tree, err := buildHeader(s, 3, 3, 3)
	require.NoError(t, err)
	assert.Len(t, tree.roots, 3)
	assert.Len(t, tree.leaves, 3)
}

func TestBuildHeader_MergeBelowBoundary(t *testing.T) {
	s := gridSheet([][]string{
		{"1"},
		{"T"},
		{"Tall", "b"},
		{"", "c"},
	},
		models.Area{R1: 3, C1: 1, R2: 4, C2: 1},
	)

	_, err := buildHeader(s, 3, 3, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProbeInsideMerge)
	assert.Contains(t, err.Error(), "A3")
}

func TestBuildHeader_NoBottomRegionsSkipsGapCheck(t *testing.T) {
	s := gridSheet([][]string{
		{"1"},
		{"T"},
		{"a", "", "c"},
		{"", "", ""},
	})

	tree, err := buildHeader(s, 3, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, tree.bottom)

	err = tree.checkBottomEdge()
	assert.ErrorIs(t, err, ErrHeaderGap)
}

func TestProbeStartRow(t *testing.T) {
	s := gridSheet([][]string{{"1"}, {"T"}, {"a"}},
		models.Area{R1: 1, C1: 1, R2: 2, C2: 3},
		models.Area{R1: 3, C1: 1, R2: 5, C2: 1},
		models.Area{R1: 3, C1: 2, R2: 4, C2: 2},
		models.Area{R1: 9, C1: 1, R2: 12, C2: 1},
	)
	assert.Equal(t, 5, probeStartRow(s))

	assert.Equal(t, headerFirstRow, probeStartRow(gridSheet([][]string{{"1"}})))
}

func TestHeaderLastCol(t *testing.T) {
	s := gridSheet([][]string{
		{"1"},
		{"T", "", "", "", "", "wide title"},
		{"a", "b"},
		{"", "", "c"},
	},
		models.Area{R1: 4, C1: 3, R2: 4, C2: 5},
	)

	assert.Equal(t, 2, headerLastCol(s, 3, 3))
	assert.Equal(t, 5, headerLastCol(s, 3, 4))
}

func TestUniqueLeaves(t *testing.T) {
	cell := func(label string, row, col int) *region {
		return &region{label: label, area: models.Area{R1: row, C1: col, R2: row, C2: col}}
	}

	t.Run("distinct columns in tree order", func(t *testing.T) {
		group := &region{label: "G", area: models.Area{R1: 3, C1: 1, R2: 3, C2: 2}}
		a, b := cell("a", 4, 1), cell("b", 4, 2)
		group.children = []*region{a, b}
		c := cell("c", 3, 3)

		leaves, err := uniqueLeaves([]*region{group, c})
		require.NoError(t, err)
		assert.Equal(t, []*region{a, b, c}, leaves)
	})

	t.Run("two leaves in one column", func(t *testing.T) {
		_, err := uniqueLeaves([]*region{cell("upper", 3, 2), cell("lower", 4, 2)})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLeafNotUnique)
		assert.Contains(t, err.Error(), "B3 and B4")
	})
}
