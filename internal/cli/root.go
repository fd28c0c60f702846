// Package cli provides the formstruct command-line interface.
package cli

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/formstruct-go/internal/config"
	"github.com/ukaji3/formstruct-go/internal/db"
	"github.com/ukaji3/formstruct-go/internal/ingest"
	"github.com/ukaji3/formstruct-go/pkg/formstruct"
)

// Version is set at build time.
var Version = "0.1.0"

// app holds state shared by the subcommands of one invocation.
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
}

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "formstruct",
		Short: "Learn form schemas from Excel templates and extract their data",
		Long: `formstruct reads spreadsheet forms. It learns a form's multi-row header
from an empty template, stores it as a schema version, and extracts data rows
from filled-in copies of the same form.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, used, err := config.Load(a.cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			a.cfg = cfg

			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			if used != "" {
				a.logger.Debug("using config file", "path", used)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: ./formstruct.yaml)")
	flags.String("database", "", "path to the SQLite database (default: formstruct.db)")
	flags.Int("max-header-probe-rows", 0, "rows searched below the first header row (default: 50)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.StringP("output", "o", "", "output format (text|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.OutputText, config.OutputJSON}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(
		a.newLayoutCommand(),
		a.newRowsCommand(),
		a.newRegisterCommand(),
		a.newIngestCommand(),
		a.newFormsCommand(),
		a.newVersionsCommand(),
		a.newSetTypeCommand(),
		a.newUploadsCommand(),
		a.newUploadCommand(),
	)
	return rootCmd
}

// Execute runs the root command and reports errors on stderr.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func (a *app) parseOptions() formstruct.Options {
	opts := formstruct.DefaultOptions()
	if a.cfg.MaxHeaderProbeRows > 0 {
		opts.MaxHeaderProbeRows = a.cfg.MaxHeaderProbeRows
	}
	opts.Logger = a.logger
	return opts
}

// openService opens the configured database. The caller closes the returned DB.
func (a *app) openService() (*ingest.Service, *sql.DB, error) {
	conn, err := db.OpenDB(a.cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return ingest.NewService(conn, a.parseOptions(), a.logger), conn, nil
}
