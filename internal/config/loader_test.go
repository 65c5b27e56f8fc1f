package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir(), nil)
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Dialect)
	assert.Equal(t, FormatTable, cfg.Format)
	assert.Equal(t, 0, cfg.Jobs)
	assert.False(t, cfg.Verify)
	assert.Equal(t, 10, cfg.Thresholds.MediumStatementCount)
	assert.Equal(t, 5, cfg.Thresholds.LoopCount)
	assert.Equal(t, 30, cfg.Thresholds.ComplexStatementMin)
	assert.Equal(t, 50, cfg.Thresholds.ComplexStatementMax)
	assert.Equal(t, 2, cfg.Thresholds.SubqueryDepth)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("dialect: oracle\nformat: json\nthresholds:\n  loop_count: 8\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), content, 0o644))

	cfg, err := Load(dir, nil)
	require.NoError(t, err)

	assert.Equal(t, "oracle", cfg.Dialect)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, 8, cfg.Thresholds.LoopCount)
	// Untouched keys keep their defaults.
	assert.Equal(t, 10, cfg.Thresholds.MediumStatementCount)
}

func TestLoad_AltConfigFileName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileNameAlt),
		[]byte("dialect: tsql\n"), 0o644))

	cfg, err := Load(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, "tsql", cfg.Dialect)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName),
		[]byte("dialect: oracle\nthresholds:\n  loop_count: 8\n"), 0o644))

	t.Setenv("SQLSCORE_DIALECT", "snowflake")
	t.Setenv("SQLSCORE_THRESHOLDS_LOOP_COUNT", "3")

	cfg, err := Load(dir, nil)
	require.NoError(t, err)

	assert.Equal(t, "snowflake", cfg.Dialect)
	assert.Equal(t, 3, cfg.Thresholds.LoopCount)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("SQLSCORE_DIALECT", "snowflake")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("dialect", "", "")
	require.NoError(t, flags.Parse([]string{"--dialect", "tsql"}))

	cfg, err := Load(t.TempDir(), flags)
	require.NoError(t, err)
	assert.Equal(t, "tsql", cfg.Dialect)
}

func TestLoad_UnchangedFlagDoesNotOverride(t *testing.T) {
	t.Setenv("SQLSCORE_FORMAT", "yaml")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("format", FormatTable, "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(t.TempDir(), flags)
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, cfg.Format)
}

func TestEnvToPath(t *testing.T) {
	assert.Equal(t, "dialect", envToPath("SQLSCORE_DIALECT"))
	assert.Equal(t, "thresholds.loop_count", envToPath("SQLSCORE_THRESHOLDS_LOOP_COUNT"))
	assert.Equal(t, "thresholds.medium_statement_count",
		envToPath("SQLSCORE_THRESHOLDS_MEDIUM_STATEMENT_COUNT"))
}

func TestValidFormat(t *testing.T) {
	assert.True(t, ValidFormat("table"))
	assert.True(t, ValidFormat("JSON"))
	assert.True(t, ValidFormat("yaml"))
	assert.False(t, ValidFormat("xml"))
}
