package score_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eri-adepoju/sqlscore/pkg/dialect"
	"github.com/eri-adepoju/sqlscore/pkg/dialects/ansi"
	"github.com/eri-adepoju/sqlscore/pkg/dialects/oracle"
	"github.com/eri-adepoju/sqlscore/pkg/dialects/snowflake"
	"github.com/eri-adepoju/sqlscore/pkg/dialects/tsql"
	"github.com/eri-adepoju/sqlscore/pkg/score"
)

// analyzeOne segments a single-statement script and analyzes it.
func analyzeOne(t *testing.T, sql string, p *dialect.Profile) *score.StatementAnalysis {
	t.Helper()
	stmts, diags, err := score.Segment(sql, p)
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Len(t, stmts, 1)
	return score.Analyze(&stmts[0], p)
}

func count(res *score.StatementAnalysis, c score.Category) int {
	n := 0
	for _, occ := range res.Occurrences {
		if occ.Category == c {
			n++
		}
	}
	return n
}

func TestAnalyze_OracleForLoop(t *testing.T) {
	sql := `BEGIN
  FOR i IN 1..10 LOOP
    INSERT INTO log_table VALUES (i);
  END LOOP;
END;`
	res := analyzeOne(t, sql, oracle.Oracle)

	assert.Equal(t, 1, count(res, score.CategoryLoop))
	assert.Equal(t, 1, count(res, score.CategoryDML))
	assert.Equal(t, score.KindProcedural, res.Kind)
}

func TestAnalyze_TSQLWhileMarker(t *testing.T) {
	sql := "WHILE @i < 10 BEGIN SET @i = @i + 1 END"
	res := analyzeOne(t, sql, tsql.TSQL)

	assert.Equal(t, 1, count(res, score.CategoryLoop))
	assert.Equal(t, score.KindProcedural, res.Kind)
}

func TestAnalyze_SnowflakeLoopForms(t *testing.T) {
	sql := `BEGIN
  FOR i IN 1 TO 10 DO
    INSERT INTO t VALUES (:i);
  END FOR;
  WHILE x < 5 DO
    SET x = x + 1;
  END WHILE;
  REPEAT
    SET y = y + 1;
  UNTIL y > 3
  END REPEAT;
END;`
	res := analyzeOne(t, sql, snowflake.Snowflake)

	assert.Equal(t, 3, count(res, score.CategoryLoop))
}

func TestAnalyze_ForUpdateIsNotALoop(t *testing.T) {
	sql := "SELECT * FROM accounts WHERE id = 1 FOR UPDATE;"
	res := analyzeOne(t, sql, snowflake.Snowflake)

	assert.Equal(t, 0, count(res, score.CategoryLoop))
	assert.Equal(t, 0, count(res, score.CategoryDML))
	assert.Equal(t, score.KindConventional, res.Kind)
}

func TestAnalyze_Conditionals(t *testing.T) {
	sql := `BEGIN
  IF x = 1 THEN
    NULL;
  ELSIF x = 2 THEN
    NULL;
  END IF;
END;`
	res := analyzeOne(t, sql, oracle.Oracle)

	assert.Equal(t, 2, count(res, score.CategoryConditional))
}

func TestAnalyze_SearchedCaseIsConditionalButConventional(t *testing.T) {
	sql := "SELECT CASE WHEN amount > 0 THEN 'credit' ELSE 'debit' END FROM ledger;"
	res := analyzeOne(t, sql, ansi.ANSI)

	assert.Equal(t, 1, count(res, score.CategoryConditional))
	assert.Equal(t, score.KindConventional, res.Kind)
}

func TestAnalyze_SimpleCaseIsNotCounted(t *testing.T) {
	sql := "SELECT CASE status WHEN 1 THEN 'on' ELSE 'off' END FROM devices;"
	res := analyzeOne(t, sql, ansi.ANSI)

	assert.Equal(t, 0, count(res, score.CategoryConditional))
}

func TestAnalyze_Cursor(t *testing.T) {
	sql := `DECLARE
  CURSOR c IS SELECT id FROM accounts;
BEGIN
  OPEN c;
  CLOSE c;
END;`
	res := analyzeOne(t, sql, oracle.Oracle)

	assert.Equal(t, 1, count(res, score.CategoryCursor))
}

func TestAnalyze_DynamicSQL(t *testing.T) {
	t.Run("execute immediate", func(t *testing.T) {
		sql := "BEGIN EXECUTE IMMEDIATE 'TRUNCATE TABLE staging'; END;"
		res := analyzeOne(t, sql, oracle.Oracle)
		assert.Equal(t, 1, count(res, score.CategoryDynamicSQL))
	})

	t.Run("sp_executesql", func(t *testing.T) {
		sql := "EXEC sp_executesql @stmt"
		res := analyzeOne(t, sql, tsql.TSQL)
		assert.Equal(t, 1, count(res, score.CategoryDynamicSQL))
		assert.Equal(t, score.KindControl, res.Kind)
	})

	t.Run("exec paren", func(t *testing.T) {
		sql := "EXEC('DROP TABLE ' + @name)"
		res := analyzeOne(t, sql, tsql.TSQL)
		assert.Equal(t, 1, count(res, score.CategoryDynamicSQL))
	})
}

func TestAnalyze_ExceptionHandlers(t *testing.T) {
	t.Run("oracle exception section", func(t *testing.T) {
		sql := `BEGIN
  NULL;
EXCEPTION
  WHEN OTHERS THEN NULL;
END;`
		res := analyzeOne(t, sql, oracle.Oracle)
		assert.Equal(t, 1, count(res, score.CategoryException))
	})

	t.Run("tsql begin catch", func(t *testing.T) {
		sql := "BEGIN TRY SELECT 1 END TRY BEGIN CATCH SELECT error_message() END CATCH"
		res := analyzeOne(t, sql, tsql.TSQL)
		assert.Equal(t, 1, count(res, score.CategoryException))
	})
}

func TestAnalyze_WindowFunctions(t *testing.T) {
	sql := "SELECT row_number() OVER (PARTITION BY region ORDER BY revenue) FROM sales;"
	res := analyzeOne(t, sql, ansi.ANSI)

	assert.Equal(t, 1, count(res, score.CategoryWindow))
	assert.True(t, res.HasWindow)
}

func TestAnalyze_AggregateWithoutOverIsNotWindow(t *testing.T) {
	sql := "SELECT sum(amount) FROM ledger;"
	res := analyzeOne(t, sql, ansi.ANSI)

	assert.Equal(t, 0, count(res, score.CategoryWindow))
}

func TestAnalyze_WithinGroupBeforeOver(t *testing.T) {
	sql := "SELECT percentile_cont(0.5) WITHIN GROUP (ORDER BY ms) OVER (PARTITION BY api) FROM calls"
	res := analyzeOne(t, sql, tsql.TSQL)

	assert.Equal(t, 1, count(res, score.CategoryWindow))
}

func TestAnalyze_HeavyFunctions(t *testing.T) {
	sql := "SELECT listagg(name, ','), regexp_replace(code, '[0-9]', '') FROM parts;"
	res := analyzeOne(t, sql, oracle.Oracle)

	assert.Equal(t, 2, count(res, score.CategoryHeavy))
}

func TestAnalyze_CTEAndJoins(t *testing.T) {
	sql := `WITH totals AS (
  SELECT region, sum(amount) AS total FROM sales GROUP BY region
), ranked (region, total) AS (
  SELECT region, total FROM totals
)
SELECT r.region FROM ranked r JOIN regions g ON g.name = r.region;`
	res := analyzeOne(t, sql, ansi.ANSI)

	assert.Equal(t, 2, count(res, score.CategoryCTE))
	assert.Equal(t, 1, count(res, score.CategoryJoin))
	assert.True(t, res.HasCTE)
	// CTE bodies are parenthesized queries.
	assert.Equal(t, 2, count(res, score.CategorySubquery))
}

func TestAnalyze_SubqueryDepth(t *testing.T) {
	sql := "SELECT * FROM (SELECT * FROM (SELECT id FROM base) inner_q) outer_q;"
	res := analyzeOne(t, sql, ansi.ANSI)

	assert.Equal(t, 2, count(res, score.CategorySubquery))
	assert.Equal(t, 2, res.MaxSubqueryDepth)
}

func TestAnalyze_DMLGuards(t *testing.T) {
	sql := `CREATE TABLE child (
  parent_id int,
  CONSTRAINT fk FOREIGN KEY (parent_id) REFERENCES parent (id) ON DELETE CASCADE
);`
	res := analyzeOne(t, sql, ansi.ANSI)

	assert.Equal(t, 0, count(res, score.CategoryDML))
}

func TestAnalyze_DMLCounts(t *testing.T) {
	sql := "MERGE INTO target t USING source s ON t.id = s.id WHEN NOT MATCHED THEN INSERT VALUES (s.id);"
	res := analyzeOne(t, sql, ansi.ANSI)

	// MERGE plus its INSERT action.
	assert.Equal(t, 2, count(res, score.CategoryDML))
}

func TestAnalyze_DollarBodyIsRecursed(t *testing.T) {
	sql := `CREATE OR REPLACE PROCEDURE reprice()
RETURNS varchar
LANGUAGE SQL
AS $$
BEGIN
  FOR i IN 1 TO 10 DO
    UPDATE prices SET amount = amount * 1.1;
  END FOR;
END
$$;`
	res := analyzeOne(t, sql, snowflake.Snowflake)

	assert.Equal(t, 1, count(res, score.CategoryLoop))
	assert.Equal(t, 1, count(res, score.CategoryDML))
	assert.Equal(t, score.KindProcedural, res.Kind)
}

func TestAnalyze_TSQLBareProcedureBody(t *testing.T) {
	sql := `CREATE PROCEDURE dbo.refresh_totals AS
INSERT INTO totals SELECT region, sum(amount) FROM sales GROUP BY region;
DELETE FROM totals WHERE amount IS NULL;
UPDATE totals SET refreshed = 1;`
	res := analyzeOne(t, sql, tsql.TSQL)

	// No BEGIN wraps the body; the statements are still embedded in the
	// routine.
	assert.Equal(t, 3, res.InnerConventional)
	assert.Equal(t, 3, count(res, score.CategoryDML))
	assert.Equal(t, score.KindProcedural, res.Kind)
}

func TestAnalyze_StrayEndIsUnknownConstruct(t *testing.T) {
	stmts, diags, err := score.Segment("SELECT 1 END", ansi.ANSI)
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Len(t, stmts, 1)

	res := score.Analyze(&stmts[0], ansi.ANSI)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, score.DiagUnknownConstruct, res.Diagnostics[0].Kind)
	// Fail-open: the statement still classifies.
	assert.Equal(t, score.KindConventional, res.Kind)
}

func TestAnalyze_ControlStatement(t *testing.T) {
	res := analyzeOne(t, "DECLARE @total int", tsql.TSQL)
	assert.Equal(t, score.KindControl, res.Kind)
}
