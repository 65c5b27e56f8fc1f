package score_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eri-adepoju/sqlscore/pkg/dialect"
	_ "github.com/eri-adepoju/sqlscore/pkg/dialects/ansi"
	_ "github.com/eri-adepoju/sqlscore/pkg/dialects/oracle"
	_ "github.com/eri-adepoju/sqlscore/pkg/dialects/snowflake"
	_ "github.com/eri-adepoju/sqlscore/pkg/dialects/tsql"
	"github.com/eri-adepoju/sqlscore/pkg/score"
)

func scoreText(t *testing.T, dialectName, text string) *score.Report {
	t.Helper()
	report, err := score.NewEngine().Score(context.Background(),
		score.Script{Text: text, Dialect: dialectName})
	require.NoError(t, err)
	require.NotNil(t, report)
	return report
}

// rollupProc builds an Oracle procedure with two cursors, one dynamic SQL
// call, six loops and enough embedded DML to land in the 30-50 statement
// band.
func rollupProc() string {
	var b strings.Builder
	b.WriteString("CREATE OR REPLACE PROCEDURE nightly_rollup AS\n")
	b.WriteString("  CURSOR acct_cur IS SELECT id FROM accounts;\n")
	b.WriteString("  CURSOR txn_cur IS SELECT id FROM transactions;\n")
	b.WriteString("BEGIN\n")
	for i := 0; i < 31; i++ {
		b.WriteString("  INSERT INTO daily_totals (id) VALUES (1);\n")
	}
	for i := 0; i < 6; i++ {
		b.WriteString("  FOR r IN acct_cur LOOP UPDATE balances SET amt = 0; END LOOP;\n")
	}
	b.WriteString("  EXECUTE IMMEDIATE 'TRUNCATE TABLE staging';\n")
	b.WriteString("END;\n/\n")
	return b.String()
}

func TestScore_SmallDeclarativeScriptIsLow(t *testing.T) {
	report := scoreText(t, "ansi", `
		SELECT * FROM customers;
		INSERT INTO audit_log (event) VALUES ('load');
	`)

	assert.Equal(t, score.TierLow, report.Tier)
	assert.Equal(t, 2, report.StatementCount)
	assert.Equal(t, 2, report.ConventionalStatementCount)
	assert.Empty(t, report.RuleTrace)
	assert.False(t, report.Partial)
}

func TestScore_VolumeRaisesToMedium(t *testing.T) {
	report := scoreText(t, "ansi",
		strings.Repeat("SELECT id FROM orders;\n", 11))

	assert.Equal(t, score.TierMedium, report.Tier)
	require.Len(t, report.RuleTrace, 1)
	assert.Equal(t, "VOLUME", report.RuleTrace[0].RuleID)
	assert.Equal(t, 11, report.RuleTrace[0].Observed)
}

func TestScore_WindowFunctionRaisesToMedium(t *testing.T) {
	report := scoreText(t, "snowflake",
		"SELECT rank() OVER (ORDER BY amt DESC) FROM sales;")

	assert.Equal(t, score.TierMedium, report.Tier)
	assert.Equal(t, 1, report.ConstructCounts[string(score.CategoryWindow)])
	assert.True(t, report.CategoryBreak["medium"])
}

func TestScore_ProceduralRollupIsComplex(t *testing.T) {
	report := scoreText(t, "oracle", rollupProc())

	assert.Equal(t, score.TierComplex, report.Tier)
	assert.Equal(t, 1, report.StatementCount)
	// The procedure's volume lives in its body.
	assert.Equal(t, 37, report.ConventionalStatementCount)
	assert.Equal(t, 6, report.ConstructCounts[string(score.CategoryLoop)])
	assert.Equal(t, 2, report.ConstructCounts[string(score.CategoryCursor)])
	assert.Equal(t, 1, report.ConstructCounts[string(score.CategoryDynamicSQL)])
	assert.True(t, report.CategoryBreak["complex"])

	var ids []string
	for _, e := range report.RuleTrace {
		ids = append(ids, e.RuleID)
	}
	assert.Equal(t, []string{"VOLUME", "LOOPS", "PROCEDURAL-MIX"}, ids)
}

func TestScore_LoopCountSetsComplexBreak(t *testing.T) {
	var b strings.Builder
	b.WriteString("BEGIN\n")
	for i := 0; i < 6; i++ {
		b.WriteString("  FOR i IN 1..3 LOOP NULL; END LOOP;\n")
	}
	b.WriteString("END;\n/\n")

	report := scoreText(t, "oracle", b.String())

	assert.Equal(t, score.TierComplex, report.Tier)
	assert.Equal(t, 6, report.ConstructCounts[string(score.CategoryLoop)])
	// The loop cutoff alone sets the COMPLEX break, with no cursors or
	// dynamic SQL in sight.
	assert.True(t, report.CategoryBreak["complex"])

	var ids []string
	for _, e := range report.RuleTrace {
		ids = append(ids, e.RuleID)
	}
	assert.Equal(t, []string{"LOOPS"}, ids)
}

func TestScore_TSQLBareProcedureBody(t *testing.T) {
	var b strings.Builder
	b.WriteString("CREATE PROCEDURE dbo.load_all AS\n")
	for i := 0; i < 35; i++ {
		b.WriteString("INSERT INTO staging_orders (id) VALUES (1);\n")
	}
	b.WriteString("GO\n")

	report := scoreText(t, "tsql", b.String())

	// The body has no BEGIN of its own; its statements still count as
	// the procedure's volume.
	assert.Equal(t, 1, report.StatementCount)
	assert.Equal(t, 35, report.ConventionalStatementCount)
	assert.Equal(t, score.TierMedium, report.Tier)
	require.NotEmpty(t, report.RuleTrace)
	assert.Equal(t, "VOLUME", report.RuleTrace[0].RuleID)
}

func TestScore_IsDeterministic(t *testing.T) {
	script := score.Script{Text: rollupProc(), Dialect: "oracle"}
	engine := score.NewEngine()

	first, err := engine.Score(context.Background(), script)
	require.NoError(t, err)
	second, err := engine.Score(context.Background(), script)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScore_LexErrorIsUnparseable(t *testing.T) {
	report := scoreText(t, "ansi", "SELECT 'unterminated\nFROM t;")

	assert.Equal(t, score.TierUnparseable, report.Tier)
	assert.Equal(t, 0, report.StatementCount)
	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, score.DiagLexError, report.Diagnostics[0].Kind)
}

func TestScore_UnknownDialect(t *testing.T) {
	report, err := score.NewEngine().Score(context.Background(),
		score.Script{Text: "SELECT 1;", Dialect: "db2"})

	require.Error(t, err)
	assert.ErrorIs(t, err, dialect.ErrUnknownDialect)
	assert.Nil(t, report)
}

func TestScore_UnbalancedBlockYieldsPartialReport(t *testing.T) {
	report := scoreText(t, "oracle", "SELECT 1 FROM dual;\nBEGIN\n  INSERT INTO t VALUES (1);")

	assert.True(t, report.Partial)
	assert.Equal(t, 1, report.StatementCount)
	assert.Equal(t, score.TierLow, report.Tier)
	require.NotEmpty(t, report.Diagnostics)
	assert.Equal(t, score.DiagSegmentation, report.Diagnostics[0].Kind)
}

func TestScore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := score.NewEngine().Score(ctx,
		score.Script{Text: "SELECT 1;\nSELECT 2;", Dialect: "ansi"})

	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.True(t, report.Partial)
	assert.Equal(t, 0, report.StatementCount)
}

func TestScore_CustomThresholds(t *testing.T) {
	th := score.DefaultThresholds()
	th.MediumStatementCount = 1

	engine := score.NewEngine(score.WithThresholds(th))
	report, err := engine.Score(context.Background(),
		score.Script{Text: "SELECT 1;\nSELECT 2;", Dialect: "ansi"})
	require.NoError(t, err)

	assert.Equal(t, score.TierMedium, report.Tier)
}

func TestScore_UnknownConstructDoesNotBlock(t *testing.T) {
	// A stray END is recorded fail-open; the rest of the script still
	// scores.
	report := scoreText(t, "ansi", "SELECT 1 END;\nSELECT 2;")

	assert.Equal(t, score.TierLow, report.Tier)
	assert.Equal(t, 2, report.StatementCount)
	require.NotEmpty(t, report.Diagnostics)
	assert.Equal(t, score.DiagUnknownConstruct, report.Diagnostics[0].Kind)
	assert.False(t, report.Partial, "unknown constructs do not mark the report partial")
}
