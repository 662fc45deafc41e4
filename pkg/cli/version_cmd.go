package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Args:  cobra.NoArgs,
		// Skip config loading so version works with a broken environment.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, _ := cmd.Root().PersistentFlags().GetString("output")
			info := map[string]string{"version": version, "commit": commit}
			switch output {
			case "json":
				return printJSON(cmd.OutOrStdout(), info)
			case "yaml":
				return printYAML(cmd.OutOrStdout(), info)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sqlast version %s (commit: %s)\n", version, commit)
			return nil
		},
	}
}
