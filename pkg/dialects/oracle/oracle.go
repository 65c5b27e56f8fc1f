// Package oracle provides the Oracle PL/SQL dialect profile.
//
// A line containing only "/" closes the preceding block without producing
// a statement of its own, matching SQL*Plus script conventions.
package oracle

import (
	"github.com/eri-adepoju/sqlscore/pkg/dialect"
	"github.com/eri-adepoju/sqlscore/pkg/token"
)

func init() {
	dialect.Register(Oracle)
}

// Oracle-specific tokens
var (
	// TokenElsif is the PL/SQL ELSIF branch keyword
	TokenElsif = token.Register("ELSIF")
	// TokenImmediate follows EXECUTE in dynamic SQL
	TokenImmediate = token.Register("IMMEDIATE")
	// TokenException opens the handler section of a block
	TokenException = token.Register("EXCEPTION")
)

// Oracle is the Oracle PL/SQL dialect profile.
var Oracle = dialect.New("oracle").
	SlashTerminates().
	Keyword("elsif", TokenElsif).
	Keyword("immediate", TokenImmediate).
	Keyword("exception", TokenException).
	// Block structure. DECLARE ... BEGIN ... END is one block; so is an
	// inline routine body (CREATE PROCEDURE ... AS ... BEGIN ... END).
	Opener(dialect.Opener{Token: token.BEGIN, Kind: dialect.KindBlock}).
	Opener(dialect.Opener{Token: token.DECLARE, Kind: dialect.KindBlock, AbsorbNext: token.BEGIN}).
	Opener(dialect.Opener{Token: token.CREATE, Kind: dialect.KindBlock, RoutineHeader: true, AbsorbNext: token.BEGIN}).
	Opener(dialect.Opener{Token: token.IF, Kind: dialect.KindConditional}).
	Opener(dialect.Opener{Token: token.CASE, Kind: dialect.KindCase}).
	// FOR ... LOOP and WHILE ... LOOP both open at the LOOP keyword,
	// so a loop is counted once per construct.
	Opener(dialect.Opener{Token: token.LOOP, Kind: dialect.KindLoop}).
	CloserSuffixes(token.IF, token.LOOP, token.CASE).
	CondMarkers(TokenElsif).
	Exception(TokenException, 0).
	DynamicPair(token.EXECUTE, TokenImmediate).
	ControlStarters(token.DECLARE, token.EXECUTE).
	Windows(
		"row_number", "rank", "dense_rank", "ntile",
		"lag", "lead", "first_value", "last_value", "nth_value",
		"percent_rank", "cume_dist", "ratio_to_report",
		"sum", "avg", "count", "min", "max", "median",
	).
	Heavy(
		"listagg", "xmlagg", "collect",
		"json_object", "json_array", "json_arrayagg", "json_objectagg",
		"json_table", "json_value", "json_query",
	).
	HeavyPrefixes("regexp_").
	Build()
