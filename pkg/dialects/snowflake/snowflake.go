// Package snowflake provides the Snowflake Scripting dialect profile.
//
// Procedure bodies passed as $$-delimited strings are opaque spans; the
// scripting constructs (FOR ... DO, WHILE ... DO, REPEAT, EXCEPTION) apply
// to inline BEGIN ... END blocks.
package snowflake

import (
	"github.com/eri-adepoju/sqlscore/pkg/dialect"
	"github.com/eri-adepoju/sqlscore/pkg/token"
)

func init() {
	dialect.Register(Snowflake)
}

// Snowflake-specific tokens
var (
	// TokenElseif is the Snowflake Scripting ELSEIF branch keyword
	TokenElseif = token.Register("ELSEIF")
	// TokenImmediate follows EXECUTE in dynamic SQL
	TokenImmediate = token.Register("IMMEDIATE")
	// TokenException opens the handler section of a block
	TokenException = token.Register("EXCEPTION")
	// TokenRepeat opens a REPEAT ... UNTIL ... END REPEAT loop
	TokenRepeat = token.Register("REPEAT")
	// TokenLet declares a scripting variable
	TokenLet = token.Register("LET")
	// TokenTransaction prevents BEGIN TRANSACTION from opening a block
	TokenTransaction = token.Register("TRANSACTION")
)

// Snowflake is the Snowflake Scripting dialect profile.
var Snowflake = dialect.New("snowflake").
	DollarQuotes().
	Keyword("elseif", TokenElseif).
	Keyword("immediate", TokenImmediate).
	Keyword("exception", TokenException).
	Keyword("repeat", TokenRepeat).
	Keyword("let", TokenLet).
	Keyword("transaction", TokenTransaction).
	// Block structure. A bare BEGIN; or BEGIN TRANSACTION starts a
	// transaction, not a block.
	Opener(dialect.Opener{
		Token: token.BEGIN,
		Kind:  dialect.KindBlock,
		ExcludeNext: map[token.TokenType]struct{}{
			TokenTransaction: {},
			token.SEMI:       {},
		},
	}).
	Opener(dialect.Opener{Token: token.DECLARE, Kind: dialect.KindBlock, AbsorbNext: token.BEGIN}).
	Opener(dialect.Opener{Token: token.CREATE, Kind: dialect.KindBlock, RoutineHeader: true, AbsorbNext: token.BEGIN}).
	Opener(dialect.Opener{Token: token.IF, Kind: dialect.KindConditional}).
	Opener(dialect.Opener{Token: token.CASE, Kind: dialect.KindCase}).
	Opener(dialect.Opener{Token: token.LOOP, Kind: dialect.KindLoop}).
	// FOR and WHILE open a block only in their DO form; the LOOP form
	// opens at the LOOP keyword, and FOR UPDATE never opens.
	Opener(dialect.Opener{Token: token.FOR, Kind: dialect.KindLoop, NeedsDo: true}).
	Opener(dialect.Opener{Token: token.WHILE, Kind: dialect.KindLoop, NeedsDo: true}).
	Opener(dialect.Opener{Token: TokenRepeat, Kind: dialect.KindLoop}).
	CloserSuffixes(token.IF, token.LOOP, token.CASE, token.FOR, token.WHILE, TokenRepeat).
	CondMarkers(TokenElseif).
	Exception(TokenException, 0).
	DynamicPair(token.EXECUTE, TokenImmediate).
	ControlStarters(token.DECLARE, TokenLet, token.RETURN, token.EXECUTE).
	Windows(
		"row_number", "rank", "dense_rank", "ntile",
		"lag", "lead", "first_value", "last_value", "nth_value",
		"percent_rank", "cume_dist", "ratio_to_report", "conditional_true_event",
		"sum", "avg", "count", "min", "max", "median",
	).
	Heavy(
		"listagg", "array_agg", "object_agg",
		"object_construct", "array_construct", "array_flatten",
		"parse_json", "to_json", "flatten", "get_path", "rlike",
	).
	HeavyPrefixes("regexp_").
	Build()
