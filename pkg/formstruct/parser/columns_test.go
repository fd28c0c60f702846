package parser

import (
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeFormNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"TEST-001", "001"},
		{"Form #007-B", "007"},
		{"  42  ", "42"},
		{"A12B34", "12"},
		{"  Personnel  ", "Personnel"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeFormNumber(tt.input), "NormalizeFormNumber(%q)", tt.input)
	}
}

func TestProperty_NormalizeFormNumber(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("the first digit run survives any letter prefix and suffix", prop.ForAll(
		func(prefix string, n uint32, suffix string) bool {
			digits := strconv.FormatUint(uint64(n), 10)
			return NormalizeFormNumber(prefix+"-"+digits+"-"+suffix) == digits
		},
		gen.AlphaString(),
		gen.UInt32(),
		gen.AlphaString(),
	))

	properties.Property("digit-free numbers are kept trimmed", prop.ForAll(
		func(s string) bool {
			return NormalizeFormNumber("  "+s+" ") == strings.TrimSpace(s)
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestProperty_ColumnIndexRow(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("a 1..N row is detected with its digit text", prop.ForAll(
		func(n int) bool {
			row := make([]string, n)
			leafCols := make([]int, n)
			for i := range row {
				row[i] = "#" + strconv.Itoa(i+1)
				leafCols[i] = i + 1
			}
			s := &sheet{rows: [][]string{row}, lastRow: 1, lastCol: n}
			numbers, ok := columnIndexRow(s, 1, leafCols)
			if !ok || len(numbers) != n {
				return false
			}
			for i, num := range numbers {
				if num != strconv.Itoa(i+1) {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 40),
	))

	properties.Property("swapping two numbers breaks the sequence", prop.ForAll(
		func(n, i int) bool {
			i = i % (n - 1)
			row := make([]string, n)
			leafCols := make([]int, n)
			for c := range row {
				row[c] = strconv.Itoa(c + 1)
				leafCols[c] = c + 1
			}
			row[i], row[i+1] = row[i+1], row[i]
			s := &sheet{rows: [][]string{row}, lastRow: 1, lastCol: n}
			_, ok := columnIndexRow(s, 1, leafCols)
			return !ok
		},
		gen.IntRange(2, 40),
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t)
}

func TestColumnIndexRow_MissingCell(t *testing.T) {
	s := &sheet{rows: [][]string{{"1", "", "3"}}, lastRow: 1, lastCol: 3}
	_, ok := columnIndexRow(s, 1, []int{1, 2, 3})
	assert.False(t, ok)

	_, ok = columnIndexRow(s, 2, []int{1, 2, 3})
	assert.False(t, ok, "rows past the used range are never index rows")
}
