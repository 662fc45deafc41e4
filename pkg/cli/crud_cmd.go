package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"sqlast/internal/crud"
)

type crudOutput struct {
	References []crud.Reference `json:"references" yaml:"references"`
	Matrix     []crud.Row       `json:"matrix" yaml:"matrix"`
}

func newCRUDCmd(a *app) *cobra.Command {
	var (
		record bool
		dbPath string
		refs   bool
	)
	cmd := &cobra.Command{
		Use:   "crud PATTERN...",
		Short: "Build a CRUD matrix of the objects scripts touch",
		Long: "Extract the tables, views and procedures each script creates, reads,\n" +
			"drops or executes. With --record the references are stored in a SQLite\n" +
			"database, replacing earlier results for the same files.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			files, err := a.parseFiles(ctx, args)
			if err != nil {
				return err
			}

			var store *crud.Store
			if record {
				path := a.cfg.DBPath
				if cmd.Flags().Changed("db") {
					path = dbPath
				}
				store, err = crud.Open(ctx, path, a.logger)
				if err != nil {
					return err
				}
				defer store.Close() //nolint:errcheck
			}

			result := crudOutput{References: []crud.Reference{}}
			for _, f := range files {
				if f.Err != nil {
					continue
				}
				found := crud.Extract(f.Script)
				if store != nil {
					if err := store.RecordFile(ctx, f.Path, len(f.Script.Statements), found); err != nil {
						return err
					}
				}
				result.References = append(result.References, found...)
			}
			result.Matrix = crud.Matrix(result.References)

			out := cmd.OutOrStdout()
			ok, err := a.printStructured(out, result)
			if err != nil {
				return err
			}
			if !ok {
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				if refs {
					for _, r := range result.References {
						fmt.Fprintf(tw, "%s:%d:%d\t%s\t%s\n", r.File, r.Line, r.Col, r.Operation, r.Object)
					}
				} else {
					for _, row := range result.Matrix {
						fmt.Fprintf(tw, "%s\t%s\n", row.Object, row.Operations)
					}
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}
			if reportParseErrors(cmd.ErrOrStderr(), files) {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&record, "record", false, "Store references in the SQLite database")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default $SQLAST_DB_PATH or sqlast.sqlite)")
	cmd.Flags().BoolVar(&refs, "refs", false, "Print every reference instead of the matrix")
	return cmd
}
