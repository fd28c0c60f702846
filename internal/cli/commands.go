package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/ukaji3/formstruct-go/pkg/formstruct"
	"github.com/ukaji3/formstruct-go/pkg/formstruct/models"
)

func (a *app) newLayoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "layout <file.xlsx>",
		Short: "Print the header layout of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := formstruct.ParseLayoutFile(args[0], a.parseOptions())
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return renderJSON(cmd.OutOrStdout(), layout)
			}
			renderLayout(cmd.OutOrStdout(), layout)
			return nil
		},
	}
}

func (a *app) newRowsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rows <file.xlsx>",
		Short: "Print the data rows of a filled form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := formstruct.ParseLayoutFile(args[0], a.parseOptions())
			if err != nil {
				return err
			}
			rows, err := formstruct.ReadDataRowsFile(args[0], layout)
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return renderJSON(cmd.OutOrStdout(), rows)
			}
			renderRows(cmd.OutOrStdout(), layout.Structure.Columns, rows)
			return nil
		},
	}
}

func (a *app) newRegisterCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "register <template.xlsx>",
		Short: "Store a template as a schema version of its form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, conn, err := a.openService()
			if err != nil {
				return err
			}
			defer conn.Close()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			res, err := svc.RegisterTemplate(cmd.Context(), f, filepath.Base(args[0]))
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return renderJSON(cmd.OutOrStdout(), res)
			}
			state := "registered"
			if !res.Created {
				state = "already registered as"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Form %s %s version %d (%d columns)\n",
				res.Version.FormNumber, state, res.Version.Version, len(res.Version.Columns))
			return nil
		},
	}
}

func (a *app) newIngestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <file.xlsx>",
		Short: "Store the data rows of a filled form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, conn, err := a.openService()
			if err != nil {
				return err
			}
			defer conn.Close()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			upload, err := svc.IngestData(cmd.Context(), f, filepath.Base(args[0]))
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				upload.Rows = nil
				return renderJSON(cmd.OutOrStdout(), upload)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored upload %s: %d rows for form %s version %d\n",
				upload.ID, upload.RowCount, upload.FormNumber, upload.Version)
			return nil
		},
	}
}

func (a *app) newFormsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "forms",
		Short: "List stored forms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, conn, err := a.openService()
			if err != nil {
				return err
			}
			defer conn.Close()

			forms, err := svc.Forms(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return renderJSON(cmd.OutOrStdout(), forms)
			}
			renderForms(cmd.OutOrStdout(), forms)
			return nil
		},
	}
}

func (a *app) newVersionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "versions <form-number>",
		Short: "List the schema versions of a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, conn, err := a.openService()
			if err != nil {
				return err
			}
			defer conn.Close()

			versions, err := svc.Versions(cmd.Context(), formstruct.NormalizeFormNumber(args[0]))
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return renderJSON(cmd.OutOrStdout(), versions)
			}
			renderVersions(cmd.OutOrStdout(), versions)
			return nil
		},
	}
}

func (a *app) newSetTypeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-type <form-number> <version> <path> <type>",
		Short: "Assign a data type to a column of a stored version",
		Long: `Assign a data type to a column of a stored version.

Types: string, date, datetime, integer, decimal. Later versions registered for
the same form inherit the type of columns with the same path.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", args[1], err)
			}
			typ := models.ColumnType(args[3])
			if !typ.Valid() {
				return fmt.Errorf("invalid column type %q", args[3])
			}

			svc, conn, err := a.openService()
			if err != nil {
				return err
			}
			defer conn.Close()

			formNumber := formstruct.NormalizeFormNumber(args[0])
			if err := svc.SetColumnType(cmd.Context(), formNumber, version, args[2], typ); err != nil {
				return err
			}
			if !a.jsonOutput() {
				fmt.Fprintf(cmd.OutOrStdout(), "Column %q of form %s version %d is now %s\n", args[2], formNumber, version, typ)
			}
			return nil
		},
	}
}

func (a *app) newUploadsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "uploads <form-number>",
		Short: "List stored uploads of a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, conn, err := a.openService()
			if err != nil {
				return err
			}
			defer conn.Close()

			uploads, err := svc.Uploads(cmd.Context(), formstruct.NormalizeFormNumber(args[0]))
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return renderJSON(cmd.OutOrStdout(), uploads)
			}
			renderUploads(cmd.OutOrStdout(), uploads)
			return nil
		},
	}
}

func (a *app) newUploadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <id>",
		Short: "Print the rows of a stored upload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, conn, err := a.openService()
			if err != nil {
				return err
			}
			defer conn.Close()

			upload, err := svc.Upload(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return renderJSON(cmd.OutOrStdout(), upload)
			}
			version, err := svc.Version(cmd.Context(), upload.FormNumber, upload.Version)
			if err != nil {
				return err
			}
			renderRows(cmd.OutOrStdout(), version.Columns, upload.Rows)
			return nil
		},
	}
}
