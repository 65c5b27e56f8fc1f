// Package ansi provides the ANSI SQL dialect profile.
//
// The profile covers standard declarative SQL plus the SQL/PSM block
// constructs (BEGIN ... END, IF ... END IF, LOOP ... END LOOP) so generic
// scripts segment correctly even when they carry procedural bodies.
package ansi

import (
	"github.com/eri-adepoju/sqlscore/pkg/dialect"
	"github.com/eri-adepoju/sqlscore/pkg/token"
)

func init() {
	dialect.Register(ANSI)
}

// TokenImmediate is the IMMEDIATE keyword of SQL/PSM EXECUTE IMMEDIATE.
var TokenImmediate = token.Register("IMMEDIATE")

// ANSI is the ANSI SQL dialect profile.
var ANSI = dialect.New("ansi").
	Keyword("immediate", TokenImmediate).
	// Block structure (SQL/PSM)
	Opener(dialect.Opener{Token: token.BEGIN, Kind: dialect.KindBlock}).
	Opener(dialect.Opener{Token: token.CREATE, Kind: dialect.KindBlock, RoutineHeader: true, AbsorbNext: token.BEGIN}).
	Opener(dialect.Opener{Token: token.IF, Kind: dialect.KindConditional}).
	Opener(dialect.Opener{Token: token.CASE, Kind: dialect.KindCase}).
	Opener(dialect.Opener{Token: token.LOOP, Kind: dialect.KindLoop}).
	Opener(dialect.Opener{Token: token.WHILE, Kind: dialect.KindLoop, NeedsDo: true}).
	Opener(dialect.Opener{Token: token.FOR, Kind: dialect.KindLoop, NeedsDo: true}).
	CloserSuffixes(token.IF, token.LOOP, token.CASE, token.WHILE, token.FOR).
	ControlStarters(token.DECLARE).
	DynamicPair(token.EXECUTE, TokenImmediate).
	// Standard window functions; aggregates count only with an OVER clause
	Windows(
		"row_number", "rank", "dense_rank", "ntile",
		"lag", "lead", "first_value", "last_value", "nth_value",
		"percent_rank", "cume_dist",
		"sum", "avg", "count", "min", "max",
	).
	Heavy(
		"listagg", "array_agg",
		"json_object", "json_array", "json_arrayagg", "json_objectagg",
	).
	HeavyPrefixes("regexp_").
	Build()
