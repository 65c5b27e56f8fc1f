// Package tsql provides the Transact-SQL dialect profile.
//
// GO terminates a batch when alone on its line and does not nest. IF and
// WHILE take a single statement or a BEGIN ... END block, so they are
// construct markers rather than block openers.
package tsql

import (
	"github.com/eri-adepoju/sqlscore/pkg/dialect"
	"github.com/eri-adepoju/sqlscore/pkg/token"
)

func init() {
	dialect.Register(TSQL)
}

// T-SQL specific tokens
var (
	// TokenTry marks BEGIN TRY / END TRY
	TokenTry = token.Register("TRY")
	// TokenCatch marks BEGIN CATCH / END CATCH
	TokenCatch = token.Register("CATCH")
	// TokenTran is the short transaction keyword
	TokenTran = token.Register("TRAN")
	// TokenTransaction prevents BEGIN TRANSACTION from opening a block
	TokenTransaction = token.Register("TRANSACTION")
	// TokenPrint starts a diagnostic print statement
	TokenPrint = token.Register("PRINT")
)

// TSQL is the Transact-SQL dialect profile.
var TSQL = dialect.New("tsql").
	BatchSeparator("GO").
	BracketIdents().
	Keyword("try", TokenTry).
	Keyword("catch", TokenCatch).
	Keyword("tran", TokenTran).
	Keyword("transaction", TokenTransaction).
	Keyword("print", TokenPrint).
	// EXEC is an alias for EXECUTE
	Keyword("exec", token.EXECUTE).
	// Block structure. BEGIN TRAN / BEGIN TRANSACTION is a transaction
	// statement, not a block.
	Opener(dialect.Opener{
		Token: token.BEGIN,
		Kind:  dialect.KindBlock,
		ExcludeNext: map[token.TokenType]struct{}{
			TokenTran:        {},
			TokenTransaction: {},
		},
	}).
	Opener(dialect.Opener{Token: token.CASE, Kind: dialect.KindCase}).
	// A routine body runs to the batch separator, not to an END.
	Opener(dialect.Opener{Token: token.CREATE, Kind: dialect.KindBlock, RoutineHeader: true, BatchScoped: true}).
	CloserSuffixes(TokenTry, TokenCatch).
	LoopMarkers(token.WHILE).
	CondMarkers(token.IF).
	Exception(TokenCatch, token.BEGIN).
	DynamicCalls("sp_executesql").
	DynamicExecParen().
	ControlStarters(
		token.IF, token.WHILE, token.DECLARE, token.SET,
		token.RETURN, token.EXECUTE, TokenPrint,
	).
	Windows(
		"row_number", "rank", "dense_rank", "ntile",
		"lag", "lead", "first_value", "last_value",
		"percent_rank", "cume_dist", "percentile_cont", "percentile_disc",
		"sum", "avg", "count", "count_big", "min", "max",
	).
	Heavy(
		"string_agg", "string_split",
		"json_query", "json_value", "json_modify", "openjson",
	).
	HeavyPrefixes("regexp_").
	Build()
