// Package config loads sqlscore configuration. Precedence, lowest to
// highest: built-in defaults, sqlscore.yaml in the working directory,
// SQLSCORE_* environment variables, command-line flags.
package config

import (
	"strings"

	"github.com/eri-adepoju/sqlscore/pkg/score"
)

// Config is the resolved runtime configuration.
type Config struct {
	// Dialect is the default dialect applied when neither a flag nor the
	// directory layout selects one. Empty means infer from the input's
	// parent directory name.
	Dialect string `koanf:"dialect"`

	// Format selects report rendering: table, json or yaml.
	Format string `koanf:"format"`

	// Jobs bounds concurrent file scoring. Zero means GOMAXPROCS.
	Jobs int `koanf:"jobs"`

	// Verify compares computed tiers against COMPLEXITY annotations in
	// the scripts.
	Verify bool `koanf:"verify"`

	Thresholds score.Thresholds `koanf:"thresholds"`
}

// Formats accepted by Config.Format.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ValidFormat reports whether f is a known output format.
func ValidFormat(f string) bool {
	switch strings.ToLower(f) {
	case FormatTable, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

func defaults() map[string]interface{} {
	th := score.DefaultThresholds()
	return map[string]interface{}{
		"dialect": "",
		"format":  FormatTable,
		"jobs":    0,
		"verify":  false,
		"thresholds.medium_statement_count": th.MediumStatementCount,
		"thresholds.loop_count":             th.LoopCount,
		"thresholds.complex_statement_min":  th.ComplexStatementMin,
		"thresholds.complex_statement_max":  th.ComplexStatementMax,
		"thresholds.subquery_depth":         th.SubqueryDepth,
	}
}
