package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/castlebridge/smithyast/internal/catalog"
)

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "import <model-file>",
		Short: "Validate a model document and store it in the catalog",
		Long: `Validate a model document and persist it into the catalog database.

Only documents that pass validation are admitted. Import is idempotent on
content hash: re-importing an identical document returns the existing
record.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, args[0], dbPath, cmd)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "smithyast.db", "catalog database path")
	return cmd
}

func runImport(opts *RootOptions, file, dbPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	doc, err := loadValidated(formatter, file)
	if err != nil {
		return err
	}

	cat, err := catalog.Open(dbPath)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("cannot open catalog %s", dbPath))
	}
	defer cat.Close()

	rec, err := cat.Put(cmd.Context(), doc, file)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return NewExitError(ExitCommandError, "import failed")
	}

	formatter.VerboseLog("Imported %s as %s", file, rec.ImportID)
	if formatter.Format == "json" {
		return formatter.Success(rec)
	}
	fmt.Fprintf(formatter.Writer, "✓ imported %s\n", file)
	fmt.Fprintf(formatter.Writer, "  hash:      %s\n", rec.Hash)
	fmt.Fprintf(formatter.Writer, "  import id: %s\n", rec.ImportID)
	fmt.Fprintf(formatter.Writer, "  shapes:    %d\n", rec.ShapeCount)
	return nil
}
