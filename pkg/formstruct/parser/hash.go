package parser

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/ukaji3/formstruct-go/pkg/formstruct/models"
)

type hashNode struct {
	Label    string     `json:"label"`
	RowStart int        `json:"rs"`
	RowEnd   int        `json:"re"`
	ColStart int        `json:"cs"`
	ColEnd   int        `json:"ce"`
	Children []hashNode `json:"children"`
}

type hashColumn struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Path  string `json:"path"`
}

type hashDocument struct {
	Header  []hashNode   `json:"header"`
	Columns []hashColumn `json:"columns"`
}

// StructureHash returns the hex SHA-256 of the header tree and column
// identities. Form number, title, timestamps and column types do not
// contribute.
func StructureHash(header []models.HeaderNode, columns []models.ColumnDefinition) (string, error) {
	doc := hashDocument{
		Header:  hashNodes(header),
		Columns: make([]hashColumn, 0, len(columns)),
	}
	for _, c := range columns {
		doc.Columns = append(doc.Columns, hashColumn{Index: c.Index, Name: c.Name, Path: c.Path})
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func hashNodes(nodes []models.HeaderNode) []hashNode {
	out := make([]hashNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, hashNode{
			Label:    n.Label,
			RowStart: n.RowStart,
			RowEnd:   n.RowEnd,
			ColStart: n.ColStart,
			ColEnd:   n.ColEnd,
			Children: hashNodes(n.Children),
		})
	}
	return out
}
