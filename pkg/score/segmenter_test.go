package score_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eri-adepoju/sqlscore/pkg/dialects/ansi"
	"github.com/eri-adepoju/sqlscore/pkg/dialects/oracle"
	"github.com/eri-adepoju/sqlscore/pkg/dialects/snowflake"
	"github.com/eri-adepoju/sqlscore/pkg/dialects/tsql"
	"github.com/eri-adepoju/sqlscore/pkg/scanner"
	"github.com/eri-adepoju/sqlscore/pkg/score"
)

func TestSegment_SemicolonBoundaries(t *testing.T) {
	stmts, diags, err := score.Segment("SELECT 1; SELECT 2; SELECT 3;", ansi.ANSI)
	require.NoError(t, err)
	assert.Empty(t, diags)

	require.Len(t, stmts, 3)
	assert.Equal(t, "SELECT 1;", stmts[0].Text)
	assert.Equal(t, "SELECT 3;", stmts[2].Text)
}

func TestSegment_TrailingStatementWithoutTerminator(t *testing.T) {
	stmts, _, err := score.Segment("SELECT 1; SELECT 2", ansi.ANSI)
	require.NoError(t, err)

	require.Len(t, stmts, 2)
	assert.Equal(t, "SELECT 2", stmts[1].Text)
}

func TestSegment_InnerSemicolonsStayInBlock(t *testing.T) {
	input := `CREATE OR REPLACE PROCEDURE sync_accounts AS
BEGIN
  UPDATE accounts SET synced = 1;
  DELETE FROM staging_accounts;
END;
SELECT count(1) FROM accounts;`

	stmts, diags, err := score.Segment(input, oracle.Oracle)
	require.NoError(t, err)
	assert.Empty(t, diags)

	require.Len(t, stmts, 2)
	assert.Contains(t, stmts[0].Text, "DELETE FROM staging_accounts;")
	assert.Contains(t, stmts[1].Text, "count(1)")
}

func TestSegment_OracleSlashAfterBlock(t *testing.T) {
	input := "BEGIN\n  NULL;\nEND;\n/\nSELECT 1;"
	stmts, diags, err := score.Segment(input, oracle.Oracle)
	require.NoError(t, err)
	assert.Empty(t, diags)

	// The "/" after a terminated block produces no extra statement.
	require.Len(t, stmts, 2)
}

func TestSegment_TSQLBatches(t *testing.T) {
	input := "CREATE VIEW v AS SELECT 1 AS x\nGO\nSELECT * FROM v\nGO"
	stmts, diags, err := score.Segment(input, tsql.TSQL)
	require.NoError(t, err)
	assert.Empty(t, diags)

	require.Len(t, stmts, 2)
	assert.Contains(t, stmts[0].Text, "CREATE VIEW")
}

func TestSegment_BeginTranDoesNotNest(t *testing.T) {
	input := "BEGIN TRAN; UPDATE t SET x = 1; COMMIT;"
	stmts, diags, err := score.Segment(input, tsql.TSQL)
	require.NoError(t, err)
	assert.Empty(t, diags)

	assert.Len(t, stmts, 3)
}

func TestSegment_CaseEndInsideSelect(t *testing.T) {
	input := "SELECT CASE WHEN x > 0 THEN 'pos' ELSE 'neg' END FROM t; SELECT 2;"
	stmts, diags, err := score.Segment(input, ansi.ANSI)
	require.NoError(t, err)
	assert.Empty(t, diags)

	assert.Len(t, stmts, 2)
}

func TestSegment_EndSuffixIsNotAnOpener(t *testing.T) {
	input := "BEGIN IF x = 1 THEN NULL; END IF; END;"
	stmts, diags, err := score.Segment(input, oracle.Oracle)
	require.NoError(t, err)
	assert.Empty(t, diags)

	assert.Len(t, stmts, 1)
}

func TestSegment_UnbalancedBlockIsLocalized(t *testing.T) {
	input := "SELECT 1; BEGIN SELECT 2; SELECT 3"
	stmts, diags, err := score.Segment(input, snowflake.Snowflake)
	require.NoError(t, err)

	// The open BEGIN swallows the rest; the first statement survives.
	require.Len(t, stmts, 1)
	assert.Equal(t, "SELECT 1;", stmts[0].Text)
	require.Len(t, diags, 1)
	assert.Equal(t, score.DiagSegmentation, diags[0].Kind)
}

func TestSegment_UnbalancedAtBatchSeparator(t *testing.T) {
	input := "BEGIN TRY SELECT 1\nGO\nSELECT 2\nGO"
	stmts, diags, err := score.Segment(input, tsql.TSQL)
	require.NoError(t, err)

	require.Len(t, stmts, 1)
	assert.Equal(t, "SELECT 2", stmts[0].Text)
	require.Len(t, diags, 1)
	assert.Equal(t, score.DiagSegmentation, diags[0].Kind)
}

func TestSegment_LexErrorIsFatal(t *testing.T) {
	_, _, err := score.Segment("SELECT 'oops; SELECT 2;", ansi.ANSI)

	var lexErr *scanner.LexError
	require.ErrorAs(t, err, &lexErr)
}

func TestSegment_DollarBodyStaysWhole(t *testing.T) {
	input := "CREATE PROCEDURE p() AS $$ BEGIN SELECT 1; SELECT 2; END; $$; SELECT 3;"
	stmts, diags, err := score.Segment(input, snowflake.Snowflake)
	require.NoError(t, err)
	assert.Empty(t, diags)

	require.Len(t, stmts, 2)
	assert.Contains(t, stmts[0].Text, "$$")
}

func TestSegment_EmptyInput(t *testing.T) {
	stmts, diags, err := score.Segment("  \n\t-- only a comment\n", ansi.ANSI)
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Empty(t, stmts)
}
