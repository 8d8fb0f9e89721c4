// Package cli provides the sqltint command-line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sqltint/sqltint/internal/config"
)

var (
	cfgFile  string
	connFlag string
	noColor  bool
	verbose  bool
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// configKey is used to store config in context.
type configKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sqltint",
		Short: "sqltint - semantic SQL syntax coloring",
		Long: `sqltint classifies every identifier in a SQL buffer by what it actually
resolves to against a connected database's catalog: tables, views, columns,
schemas, databases, aliases, CTEs, temp tables, procedures and functions
each get their own highlight, not just a lexical keyword color.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("connection") {
				cfg.Connection = connFlag
			}
			if cmd.Flags().Changed("no-color") {
				cfg.NoColor = noColor
			}
			if cmd.Flags().Changed("verbose") {
				cfg.Verbose = verbose
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			})))

			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "no-colour" {
			name = "no-color"
		}
		return pflag.NormalizedName(name)
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./sqltint.yaml)")
	rootCmd.PersistentFlags().StringVarP(&connFlag, "connection", "c", "", "named connection from the config to resolve against")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI colors in output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(newClassifyCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newCatalogCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// getConfig retrieves the config from the command context.
func getConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{}
}
