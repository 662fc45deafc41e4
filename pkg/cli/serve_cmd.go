package cli

import (
	"github.com/spf13/cobra"

	"sqlast/internal/crud"
	"sqlast/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		listen     string
		dbPath     string
		noDB       bool
		configPath string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser, linter and CRUD extractor over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if cmd.Flags().Changed("listen") {
				a.cfg.ListenAddr = listen
			}
			if cmd.Flags().Changed("db") {
				a.cfg.DBPath = dbPath
			}
			lintCfg, err := loadLintConfig(configPath, cmd.Flags().Changed("lint-config"))
			if err != nil {
				return err
			}

			var store *crud.Store
			if !noDB {
				store, err = crud.Open(ctx, a.cfg.DBPath, a.logger)
				if err != nil {
					return err
				}
				defer store.Close() //nolint:errcheck
			}

			return server.New(a.cfg, lintCfg, store, a.logger).ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", ":8080", "Listen address (default $SQLAST_LISTEN_ADDR)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default $SQLAST_DB_PATH or sqlast.sqlite)")
	cmd.Flags().BoolVar(&noDB, "no-db", false, "Run without the metadata store")
	cmd.Flags().StringVar(&configPath, "lint-config", defaultLintConfig, "Rule severity overrides (YAML)")
	return cmd
}
