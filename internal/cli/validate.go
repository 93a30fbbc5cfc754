package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/castlebridge/smithyast/internal/assemble"
)

// ValidationResult holds per-file validation results.
type ValidationResult struct {
	File   string                     `json:"file"`
	Valid  bool                       `json:"valid"`
	Errors []assemble.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <model-file>...",
		Short: "Validate model documents",
		Long: `Validate Smithy AST model documents.

Checks shape ID grammar, per-variant field sets, and member naming
constraints, accumulating every violation found. Accepts .json, .yaml,
and .cue model files.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, files []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	results, err := validateFiles(formatter, files)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if !r.Valid {
			failed++
		}
	}

	if formatter.Format == "json" {
		enc := json.NewEncoder(formatter.Writer)
		enc.SetIndent("", "  ")
		resp := CLIResponse{Status: "ok", Data: results}
		if failed > 0 {
			resp.Status = "error"
			resp.Error = &CLIError{Code: firstErrorCode(results), Message: fmt.Sprintf("%d file(s) failed validation", failed)}
		}
		if err := enc.Encode(resp); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				fmt.Fprintf(formatter.Writer, "✓ %s\n", r.File)
				continue
			}
			fmt.Fprintf(formatter.Writer, "✗ %s\n", r.File)
			for _, e := range r.Errors {
				fmt.Fprintf(formatter.Writer, "  %s\n", e.Error())
			}
		}
	}

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed for %d file(s)", failed))
	}
	return nil
}

// firstErrorCode returns the code of the first violation across results,
// for the JSON response summary.
func firstErrorCode(results []ValidationResult) string {
	for _, r := range results {
		if len(r.Errors) > 0 {
			return r.Errors[0].Code
		}
	}
	return ErrCodeGeneric
}

// validateFiles loads and assembles each file. A load failure aborts the
// run with a command error; validation failures accumulate per file.
func validateFiles(formatter *OutputFormatter, files []string) ([]ValidationResult, error) {
	results := make([]ValidationResult, 0, len(files))
	for _, file := range files {
		formatter.VerboseLog("Validating %s", file)
		doc, errs, err := LoadDocument(file)
		if err != nil {
			var loadErr *LoadError
			if errors.As(err, &loadErr) {
				_ = formatter.Error(loadErr.Code, loadErr.Error(), nil)
			} else {
				_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
			}
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("cannot load %s", file))
		}
		result := ValidationResult{File: file, Valid: doc != nil, Errors: errs}
		results = append(results, result)
	}
	return results, nil
}
