package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sqlast/internal/sqlparse"
)

type parseResult struct {
	File       string               `json:"file" yaml:"file"`
	Statements []string             `json:"statements,omitempty" yaml:"statements,omitempty"`
	Error      *sqlparse.Diagnostic `json:"error,omitempty" yaml:"error,omitempty"`
}

func newParseCmd(a *app) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "parse PATTERN...",
		Short: "Parse scripts and print their syntax trees",
		Long: "Parse every .sql file matched by the given files, directories or glob\n" +
			"patterns and print each statement as an S-expression. Exits 1 if any file\n" +
			"fails to parse.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := a.parseFiles(cmd.Context(), args)
			if err != nil {
				return err
			}

			results := make([]parseResult, len(files))
			for i, f := range files {
				results[i].File = f.Path
				if f.Err != nil {
					if perr, ok := sqlparse.AsError(f.Err); ok {
						results[i].Error = &perr.Diagnostic
					}
					continue
				}
				for _, stmt := range f.Script.Statements {
					results[i].Statements = append(results[i].Statements, sqlparse.Format(stmt))
				}
			}

			out := cmd.OutOrStdout()
			ok, err := a.printStructured(out, results)
			if err != nil {
				return err
			}
			if !ok && !quiet {
				for i, r := range results {
					if files[i].Err != nil {
						continue
					}
					fmt.Fprintf(out, "-- %s\n", r.File)
					for _, s := range r.Statements {
						fmt.Fprintln(out, s)
					}
				}
			}
			if reportParseErrors(cmd.ErrOrStderr(), files) {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only report errors")
	return cmd
}
