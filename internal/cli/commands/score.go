package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eri-adepoju/sqlscore/internal/cli/output"
	"github.com/eri-adepoju/sqlscore/internal/config"
	"github.com/eri-adepoju/sqlscore/internal/runner"
	"github.com/eri-adepoju/sqlscore/pkg/score"
)

// ScoreOptions holds options for the score command.
type ScoreOptions struct {
	Verify bool // compare against COMPLEXITY annotations
	Detail bool // full per-file report instead of summary rows
}

// NewScoreCommand creates the score command.
func NewScoreCommand() *cobra.Command {
	opts := &ScoreOptions{}
	cmd := &cobra.Command{
		Use:   "score <path>...",
		Short: "Score SQL scripts for migration complexity",
		Long: `Score one or more SQL files or directories.

Directories are walked recursively for .sql and .ddl files. Unless
--dialect is set, each file's dialect is inferred from its parent
directory name (oracle/, tsql/, snowflake/), defaulting to ansi.`,
		Example: `  # Score a single file
  sqlscore score --dialect oracle migrate_customers.sql

  # Score an assessment export laid out per dialect
  sqlscore score ./export

  # Verify computed tiers against -- COMPLEXITY: annotations
  sqlscore score --verify ./testdata

  # Full report for one file as JSON
  sqlscore score --detail --format json proc.sql`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "Verify tiers against COMPLEXITY annotations")
	cmd.Flags().BoolVar(&opts.Detail, "detail", false, "Print the full report per file")

	return cmd
}

func runScore(cmd *cobra.Command, args []string, opts *ScoreOptions) error {
	cfg, log := fromContext(cmd.Context())

	if cfg.Format != "" && !config.ValidFormat(cfg.Format) {
		return fmt.Errorf("unknown output format %q", cfg.Format)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := score.NewEngine(score.WithThresholds(cfg.Thresholds))
	r := runner.New(engine, runner.Options{
		Dialect: cfg.Dialect,
		Jobs:    cfg.Jobs,
		Verify:  opts.Verify || cfg.Verify,
		Log:     log,
	})

	results, err := r.Run(ctx, args)
	if err != nil {
		return err
	}

	renderer := output.NewRenderer(cmd.OutOrStdout(), output.Mode(cfg.Format))
	if opts.Detail {
		for _, res := range results {
			if res.Report == nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", res.Path, res.ErrText)
				continue
			}
			if err := renderer.Detail(res.Path, res.Report); err != nil {
				return err
			}
		}
	} else if err := renderer.Results(results); err != nil {
		return err
	}

	return exitStatus(results)
}

// exitStatus turns per-file failures and verification mismatches into a
// non-zero exit.
func exitStatus(results []runner.FileResult) error {
	failed, mismatched := 0, 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
		if res.Expected != nil && !res.Match {
			mismatched++
		}
	}
	switch {
	case failed > 0:
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	case mismatched > 0:
		return fmt.Errorf("%d of %d files mismatched their expected tier", mismatched, len(results))
	default:
		return nil
	}
}
