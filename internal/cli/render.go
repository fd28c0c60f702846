package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/ukaji3/formstruct-go/internal/config"
	"github.com/ukaji3/formstruct-go/internal/store"
	"github.com/ukaji3/formstruct-go/pkg/formstruct/models"
)

const shortHashLen = 12

func (a *app) jsonOutput() bool {
	return a.cfg != nil && a.cfg.Output == config.OutputJSON
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	// column paths are identities; keep header text as written
	t.Style().Format.Header = text.FormatDefault
	return t
}

func renderLayout(w io.Writer, layout *models.FormLayout) {
	s := layout.Structure
	fmt.Fprintf(w, "Form:        %s\n", s.FormNumber)
	if s.TemplateFormNumber != "" {
		fmt.Fprintf(w, "Template:    %s\n", s.TemplateFormNumber)
	}
	fmt.Fprintf(w, "Title:       %s\n", s.FormTitle)
	fmt.Fprintf(w, "Header rows: %d-%d\n", layout.HeaderRowStart, layout.LastHeaderRow)
	fmt.Fprintf(w, "Data rows:   %d-%d\n", layout.DataStartRow, layout.UsedLastRow)
	fmt.Fprintf(w, "Hash:        %s\n", s.StructureHash)

	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Sheet Col", "Path", "No.", "Type"})
	for i, c := range s.Columns {
		number := ""
		if c.ColumnNumber != nil {
			number = *c.ColumnNumber
		}
		sheetCol := 0
		if i < len(layout.LeafColumns) {
			sheetCol = layout.LeafColumns[i]
		}
		t.AppendRow(table.Row{c.Index, sheetCol, c.Path, number, c.Type})
	}
	t.Render()
}

func renderRows(w io.Writer, columns []models.ColumnDefinition, rows []models.FormDataRow) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}

	t := newTable(w)
	header := table.Row{"Row"}
	for _, c := range columns {
		header = append(header, c.Path)
	}
	t.AppendHeader(header)

	for _, r := range rows {
		line := table.Row{r.RowNumber}
		for _, c := range columns {
			v, _ := r.Value(c.Path)
			line = append(line, v)
		}
		t.AppendRow(line)
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(rows))
}

func renderForms(w io.Writer, forms []store.FormSummary) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Form", "Title", "Latest", "Versions"})
	for _, f := range forms {
		t.AppendRow(table.Row{f.FormNumber, f.FormTitle, f.LatestVersion, f.Versions})
	}
	t.Render()
}

func renderVersions(w io.Writer, versions []*store.FormVersion) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Version", "Title", "Columns", "Hash", "Registered (UTC)"})
	for _, v := range versions {
		t.AppendRow(table.Row{v.Version, v.FormTitle, len(v.Columns), shortHash(v.StructureHash),
			v.UploadedAtUTC.Format("2006-01-02 15:04:05")})
	}
	t.Render()
}

func renderUploads(w io.Writer, uploads []*store.Upload) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Version", "Source", "Rows", "Uploaded (UTC)"})
	for _, u := range uploads {
		t.AppendRow(table.Row{u.ID, u.Version, u.SourceName, u.RowCount,
			u.UploadedAtUTC.Format("2006-01-02 15:04:05")})
	}
	t.Render()
}

func shortHash(h string) string {
	if len(h) > shortHashLen {
		return h[:shortHashLen]
	}
	return h
}
