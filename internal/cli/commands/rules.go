package commands

import (
	"github.com/spf13/cobra"

	"github.com/eri-adepoju/sqlscore/internal/cli/output"
	"github.com/eri-adepoju/sqlscore/pkg/score"
)

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List classification rules and active thresholds",
		Long: `List the classifier's rule table together with the thresholds it
will use, after applying configuration and environment overrides.`,
		Example: `  # Show rules and thresholds
  sqlscore rules

  # Export as YAML
  sqlscore rules --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _ := fromContext(cmd.Context())
			renderer := output.NewRenderer(cmd.OutOrStdout(), output.Mode(cfg.Format))
			return renderer.Rules(score.Rules(), cfg.Thresholds)
		},
	}
}
