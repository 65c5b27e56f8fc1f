// Package cli provides the command-line interface for sqlscore.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/eri-adepoju/sqlscore/internal/cli/commands"
	"github.com/eri-adepoju/sqlscore/internal/config"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "sqlscore",
		Short: "sqlscore - SQL complexity scoring",
		Long: `sqlscore estimates the migration complexity of SQL scripts.

It segments each script into statements with dialect-aware block
tracking, counts complexity-relevant constructs (loops, cursors, dynamic
SQL, window functions, ...) and classifies the script as LOW, MEDIUM or
COMPLEX. Thresholds are configurable through sqlscore.yaml, SQLSCORE_*
environment variables and flags.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			slog.SetDefault(log)

			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			cfg, err := config.Load(wd, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			cmd.SetContext(commands.WithConfig(cmd.Context(), cfg, log))
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.String("dialect", "", "Dialect: oracle, tsql, snowflake, ansi (default: infer from directory)")
	pf.String("format", "", "Output format: table, json, yaml")
	pf.Int("jobs", 0, "Max concurrent files (default: GOMAXPROCS)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		commands.NewScoreCommand(),
		commands.NewRulesCommand(),
		commands.NewSplitCommand(),
		commands.NewVersionCommand(Version, GitCommit),
	)

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
