package parser

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/formstruct-go/internal/testutil"
	"github.com/ukaji3/formstruct-go/pkg/formstruct/models"
)

func mustAtoi(t *testing.T, s string) int {
	t.Helper()
	n, err := strconv.Atoi(s)
	require.NoError(t, err)
	return n
}

func TestReadDataRows(t *testing.T) {
	wb := testutil.GroupedTemplate(t, "TEST-001", "Test Form").
		Row(5, "alpha", "beta", 10, nil, "gamma").
		Row(7, nil, nil, nil, "  ", nil).
		Row(8, nil, "   ", nil, "last", nil).
		DateStyle("A9", "E30")

	layout, err := parseWorkbook(t, wb)
	require.NoError(t, err)
	assert.Equal(t, 8, layout.UsedLastRow)

	rows, err := ReadDataRows(wb.Open(), layout)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	first := rows[0]
	assert.Equal(t, 5, first.RowNumber)
	assert.Len(t, first.Values, 5)
	v, ok := first.Value("Group A / A1")
	assert.True(t, ok)
	assert.Equal(t, "alpha", v)
	v, _ = first.Value("Group B / B1")
	assert.Equal(t, "10", v)
	assert.Nil(t, first.Values["Group B / B2"])

	// whitespace keeps the row but is recorded as blank
	blank := rows[1]
	assert.Equal(t, 7, blank.RowNumber)
	assert.Len(t, blank.Values, 5)
	for path, value := range blank.Values {
		assert.Nil(t, value, path)
	}

	third := rows[2]
	assert.Equal(t, 8, third.RowNumber)
	assert.Nil(t, third.Values["Group A / A2"])
	v, ok = third.Value("Group B / B2")
	assert.True(t, ok)
	assert.Equal(t, "last", v)
}

func TestReadDataRows_OnlyLeafColumnsCount(t *testing.T) {
	wb := testutil.GroupedTemplate(t, "TEST-001", "Test Form").
		Set("G5", "outside the header").
		Row(6, "x")

	layout, err := parseWorkbook(t, wb)
	require.NoError(t, err)

	rows, err := ReadDataRows(wb.Open(), layout)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 6, rows[0].RowNumber)
}

func TestReadDataRows_TemplateHasNoRows(t *testing.T) {
	wb := testutil.GroupedTemplate(t, "TEST-001", "Test Form")

	layout, err := parseWorkbook(t, wb)
	require.NoError(t, err)

	rows, err := ReadDataRows(wb.Open(), layout)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadDataRows_LayoutMismatch(t *testing.T) {
	wb := testutil.GroupedTemplate(t, "TEST-001", "Test Form")

	_, err := ReadDataRows(wb.Open(), &models.FormLayout{LeafColumns: []int{1}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLayoutMismatch)

	_, err = ReadDataRows(wb.Open(), nil)
	assert.ErrorIs(t, err, ErrLayoutMismatch)
}
