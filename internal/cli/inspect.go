package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/castlebridge/smithyast/internal/ast"
)

// InspectResult holds the shape listing of a validated document.
type InspectResult struct {
	File   string       `json:"file"`
	Smithy string       `json:"smithy"`
	Hash   string       `json:"hash"`
	Shapes []ShapeEntry `json:"shapes"`
}

// ShapeEntry is one row of the shape listing.
type ShapeEntry struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Members int    `json:"members,omitempty"`
	Mixins  int    `json:"mixins,omitempty"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "inspect <model-file>",
		Short:         "List the shapes of a validated model document",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runInspect(opts *RootOptions, file string, cmd *cobra.Command) error {
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

	hash, err := ast.DocumentHash(doc)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return NewExitError(ExitCommandError, "cannot hash document")
	}

	result := InspectResult{File: file, Smithy: doc.Smithy, Hash: hash}
	for _, id := range doc.ShapeIDs() {
		shape := doc.Shapes[id]
		entry := ShapeEntry{ID: string(id), Type: string(shape.Type())}
		switch s := shape.(type) {
		case *ast.StructureShape:
			entry.Members = len(s.Members)
			entry.Mixins = len(s.Mixins)
		case *ast.UnionShape:
			entry.Members = len(s.Members)
			entry.Mixins = len(s.Mixins)
		case *ast.EnumShape:
			entry.Members = len(s.Members)
			entry.Mixins = len(s.Mixins)
		case *ast.SimpleShape:
			entry.Mixins = len(s.Mixins)
		case *ast.ListShape:
			entry.Members = 1
			entry.Mixins = len(s.Mixins)
		case *ast.MapShape:
			entry.Members = 2
			entry.Mixins = len(s.Mixins)
		case *ast.ServiceShape:
			entry.Mixins = len(s.Mixins)
		case *ast.ResourceShape:
			entry.Mixins = len(s.Mixins)
		case *ast.OperationShape:
			entry.Mixins = len(s.Mixins)
		}
		result.Shapes = append(result.Shapes, entry)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "%s (smithy %s)\n", file, doc.Smithy)
	fmt.Fprintf(formatter.Writer, "hash: %s\n\n", hash)
	w := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SHAPE\tTYPE\tMEMBERS")
	for _, entry := range result.Shapes {
		fmt.Fprintf(w, "%s\t%s\t%d\n", entry.ID, entry.Type, entry.Members)
	}
	return w.Flush()
}

// loadValidated loads a model file and requires it to pass validation.
func loadValidated(formatter *OutputFormatter, file string) (*ast.Document, error) {
	doc, errs, err := LoadDocument(file)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("cannot load %s", file))
	}
	if doc == nil {
		for _, e := range errs {
			fmt.Fprintf(formatter.ErrWriter, "%s\n", e.Error())
		}
		return nil, NewExitError(ExitFailure, fmt.Sprintf("%s failed validation with %d error(s)", file, len(errs)))
	}
	return doc, nil
}
