package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"sqlast/internal/source"
	"sqlast/internal/sqlparse"
)

type tokenRow struct {
	Kind  string `json:"kind" yaml:"kind"`
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
	Line  int    `json:"line" yaml:"line"`
	Col   int    `json:"col" yaml:"col"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
	Flags string `json:"flags,omitempty" yaml:"flags,omitempty"`
}

func newTokensCmd(a *app) *cobra.Command {
	var trivia bool
	cmd := &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the token stream of a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := source.ReadFile(args[0])
			if err != nil {
				return err
			}
			sc := sqlparse.NewScanner(text, sqlparse.ScannerOptions{
				Path:     args[0],
				Vendor:   a.cfg.Vendor,
				Features: a.cfg.Features,
			})

			var rows []tokenRow
			for {
				tok, err := sc.Scan()
				if err != nil {
					writeError(cmd.ErrOrStderr(), text, err)
					return errFailed
				}
				if tok.Kind == sqlparse.KindEndOfFile {
					break
				}
				if !trivia && tok.Kind.IsTrivia() {
					continue
				}
				line, col := sc.Lines().Position(tok.Start)
				rows = append(rows, tokenRow{
					Kind:  tok.Kind.String(),
					Start: tok.Start,
					End:   tok.End,
					Line:  line + 1,
					Col:   col + 1,
					Value: tok.Value,
					Flags: tok.Flags.String(),
				})
			}

			out := cmd.OutOrStdout()
			if ok, err := a.printStructured(out, rows); ok {
				return err
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, r := range rows {
				fmt.Fprintf(tw, "%d:%d\t%s\t%q\t%s\n", r.Line, r.Col, r.Kind, sc.Text()[r.Start:r.End], r.Flags)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&trivia, "trivia", false, "Include whitespace and comments")
	return cmd
}
