// Package cli implements the sqlast command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sqlast/internal/config"
)

var (
	version = "dev"
	commit  = "none"
)

// errFailed signals a non-zero exit whose cause was already reported, such
// as parse diagnostics or lint errors.
var errFailed = errors.New("failed")

// app carries the resolved configuration to every subcommand.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	output string
}

// Execute runs the CLI.
func Execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()
	return run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, errFailed) {
			return 1
		}
		output, _ := rootCmd.PersistentFlags().GetString("output")
		if output == "json" {
			_ = printJSON(stdout, map[string]any{"error": err.Error()})
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		vendor    vendorValue
		features  featureValue
		logLevel  string
		logFormat string
		output    string
		workers   int
		envFile   string
	)
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "sqlast",
		Short:         "T-SQL tokenizer, parser and analysis toolkit",
		Long:          "Tokenize, parse, lint and extract object references from T-SQL scripts.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(envFile); err != nil {
				return err
			}
			cfg, err := config.LoadFromEnv()
			if err != nil {
				return err
			}

			// Apply precedence: flag > env > default
			flags := cmd.Flags()
			if flags.Changed("vendor") {
				cfg.Vendor = vendor.v
			}
			if flags.Changed("feature") {
				cfg.Features = features.f
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("log-format") {
				cfg.LogFormat = logFormat
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if cfg.Workers <= 0 {
				return fmt.Errorf("--workers must be positive, got %d", cfg.Workers)
			}
			if err := validateOutputFormat(output); err != nil {
				return err
			}

			a.cfg = cfg
			a.output = output
			a.logger = newLogger(cmd.ErrOrStderr(), cfg)
			for _, w := range cfg.Warnings {
				a.logger.Warn(w)
			}
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.Var(&vendor, "vendor", "SQL dialect (mssql, postgres)")
	pf.Var(&features, "feature", "Enable optional grammar, repeatable ("+featureList()+", all)")
	pf.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
	pf.StringVarP(&output, "output", "o", "text", "Output format (text, json, yaml)")
	pf.IntVar(&workers, "workers", 4, "Files parsed in parallel")
	pf.StringVar(&envFile, "env-file", ".env", "Dotenv file read before SQLAST_* variables")

	rootCmd.AddCommand(newTokensCmd(a))
	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newLintCmd(a))
	rootCmd.AddCommand(newCRUDCmd(a))
	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "completion [bash|zsh|fish|powershell]",
		Short:     "Generate shell completion scripts",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
	return cmd
}
