package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eri-adepoju/sqlscore/internal/splitter"
	"github.com/eri-adepoju/sqlscore/pkg/dialect"
)

// SplitOptions holds options for the split command.
type SplitOptions struct {
	Output string
}

// NewSplitCommand creates the split command.
func NewSplitCommand() *cobra.Command {
	opts := &SplitOptions{}
	cmd := &cobra.Command{
		Use:   "split <file-or-dir>",
		Short: "Split a DDL export into one file per object",
		Long: `Split a large DDL file (for example Snowflake GET_DDL output) into
individual numbered files, one per CREATE statement. Statement
boundaries are dialect-aware, so procedure bodies with embedded
semicolons are kept whole.

Directory inputs are walked for .sql and .ddl files and each source
file gets its own output subdirectory.`,
		Example: `  # Split next to the input, into database_ddl_split/
  sqlscore split --dialect snowflake database_ddl.sql

  # Split a folder of exports into a chosen directory
  sqlscore split ./ddl_exports --output ./objects`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output directory (default: <input>_split)")

	return cmd
}

func runSplit(cmd *cobra.Command, input string, opts *SplitOptions) error {
	cfg, log := fromContext(cmd.Context())

	name := cfg.Dialect
	if name == "" {
		name = "ansi"
	}
	profile, err := dialect.Get(name)
	if err != nil {
		return err
	}

	outDir := opts.Output
	if outDir == "" {
		outDir = splitter.DefaultOutputDir(input)
	}

	res, err := splitter.New(profile, log).Split(input, outDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "split %d statements from %d files into %s (%d written)\n",
		res.Statements, res.FilesProcessed, outDir, res.Written)
	if res.Written == 0 {
		return fmt.Errorf("no CREATE statements found in %s", input)
	}
	return nil
}
