package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"sqlast/internal/lint"
)

const defaultLintConfig = ".sqllint.yaml"

func newLintCmd(a *app) *cobra.Command {
	var (
		configPath string
		severity   string
		listRules  bool
	)
	cmd := &cobra.Command{
		Use:   "lint [PATTERN...]",
		Short: "Check scripts against the lint rules",
		Long: "Lint every .sql file matched by the given files, directories or glob\n" +
			"patterns. Violations are suppressed with a comment on the same line or the\n" +
			"line above:\n\n" +
			"    -- sqllint:ignore SQL002 SQL007\n\n" +
			"Exits 1 if any file fails to parse or any error-severity violation remains.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if listRules {
				return printRules(a, cmd)
			}
			if len(args) == 0 {
				return errors.New("requires at least 1 arg(s), only received 0")
			}

			minSev, err := lint.ParseSeverity(severity)
			if err != nil {
				return err
			}
			lintCfg, err := loadLintConfig(configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}

			files, err := a.parseFiles(cmd.Context(), args)
			if err != nil {
				return err
			}
			violations := []lint.Violation{}
			for _, f := range files {
				if f.Err != nil {
					continue
				}
				vs := lint.New(f.Script).RunWithConfig(lintCfg)
				violations = append(violations, lint.Filter(vs, minSev)...)
			}

			ok, err := a.printStructured(out, violations)
			if err != nil {
				return err
			}
			if !ok {
				for _, v := range violations {
					fmt.Fprintln(out, v.String())
				}
			}
			parseFailed := reportParseErrors(cmd.ErrOrStderr(), files)
			a.logger.Debug("lint finished", "files", len(files), "violations", len(violations))
			if parseFailed || lint.HasErrors(violations) {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", defaultLintConfig, "Rule severity overrides (YAML)")
	cmd.Flags().StringVar(&severity, "severity", "info", "Minimum severity to report (info, warning, error)")
	cmd.Flags().BoolVar(&listRules, "list-rules", false, "List the available rules and exit")
	return cmd
}

// loadLintConfig reads path. A missing default file is not an error; a
// missing file named explicitly is.
func loadLintConfig(path string, explicit bool) (*lint.Config, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && !explicit {
		return nil, nil
	}
	return lint.LoadConfig(path)
}

type ruleRow struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	Severity    lint.Severity `json:"severity" yaml:"severity"`
	Description string        `json:"description" yaml:"description"`
}

func printRules(a *app, cmd *cobra.Command) error {
	var rows []ruleRow
	for _, r := range lint.RegisteredRules() {
		rows = append(rows, ruleRow{ID: r.ID(), Name: r.Name(), Severity: r.DefaultSeverity(), Description: r.Description()})
	}
	out := cmd.OutOrStdout()
	if ok, err := a.printStructured(out, rows); ok {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Severity, r.Description)
	}
	return tw.Flush()
}
