// Package dialect provides SQL dialect profiles for complexity scoring.
//
// A Profile is an immutable bundle of lexical rules (statement terminators,
// block keyword pairs, loop and conditional syntax) and function catalogs
// (window functions, heavy native functions) consumed by the scanner, the
// segmenter and the construct analyzer. Profiles are data, not behavior:
// adding a dialect means registering a new profile from a pkg/dialects
// package, never branching analyzer logic on the dialect name.
package dialect

import (
	"strings"

	"github.com/eri-adepoju/sqlscore/pkg/token"
)

// Kind classifies what a block-opening keyword introduces.
type Kind int

const (
	// KindBlock is a plain compound block (BEGIN ... END).
	KindBlock Kind = iota
	// KindLoop is a loop body (LOOP, FOR ... DO, REPEAT ... END REPEAT).
	KindLoop
	// KindConditional is a conditional block (IF ... END IF).
	KindConditional
	// KindCase is a CASE expression or CASE statement (CASE ... END).
	// CASE never makes a statement procedural on its own.
	KindCase
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindBlock:
		return "block"
	case KindLoop:
		return "loop"
	case KindConditional:
		return "conditional"
	case KindCase:
		return "case"
	default:
		return "unknown"
	}
}

// Opener describes a block-opening keyword and how to confirm it.
type Opener struct {
	Token token.TokenType
	Kind  Kind

	// NeedsDo restricts the opener to loop headers that are closed by a DO
	// keyword before the statement terminator (Snowflake FOR ... DO,
	// WHILE ... DO). A FOR followed by LOOP defers to the LOOP opener, and
	// a FOR UPDATE clause never opens a block.
	NeedsDo bool

	// ExcludeNext lists tokens that cancel the opener when they follow it
	// directly (BEGIN TRANSACTION, bare BEGIN; in Snowflake).
	ExcludeNext map[token.TokenType]struct{}

	// RoutineHeader restricts the opener to CREATE statements that define
	// a PROCEDURE, FUNCTION or TRIGGER. CREATE TABLE and friends never
	// open a block.
	RoutineHeader bool

	// AbsorbNext names a token that belongs to this block rather than
	// opening a nested one. The PL/SQL declare section (DECLARE ... BEGIN
	// ... END) and inline routine bodies (CREATE PROCEDURE ... AS BEGIN
	// ... END) are single blocks closed by one END.
	AbsorbNext token.TokenType

	// BatchScoped blocks are closed by the batch separator or end of
	// input instead of END (T-SQL CREATE PROCEDURE bodies run to GO).
	BatchScoped bool
}

// Profile represents a SQL dialect's scoring configuration.
// Profiles are built once via the Builder and never mutated afterwards,
// so concurrent analysis needs no locking.
type Profile struct {
	Name string

	// Lexical settings
	DollarQuotes    bool   // $$ / $tag$ delimited bodies are opaque spans
	BatchSeparator  string // word alone on a line that ends a batch ("go"), "" = none
	SlashTerminates bool   // a line containing only "/" closes the preceding block
	BracketIdents   bool   // [name] identifier quoting (T-SQL)

	// Dialect keywords beyond the builtin set (normalized lowercase)
	keywords map[string]token.TokenType

	// Block structure
	openers        map[token.TokenType]Opener
	closerSuffixes map[token.TokenType]struct{} // tokens that may trail END (IF, LOOP, TRY, ...)

	// Construct markers that are not block openers
	loopMarkers map[token.TokenType]struct{} // T-SQL WHILE
	condMarkers map[token.TokenType]struct{} // ELSIF, ELSEIF, T-SQL IF

	// Exception handler detection
	exceptionMarker token.TokenType // 0 = dialect has no handler syntax
	exceptionAfter  token.TokenType // required preceding token, 0 = any

	// Dynamic SQL detection
	dynamicPairs     [][2]token.TokenType // EXECUTE IMMEDIATE
	dynamicCalls     map[string]struct{}  // sp_executesql
	dynamicExecParen bool                 // EXECUTE('...') / EXEC('...')

	// Leading tokens that mark a statement as a control statement
	controlStarters map[token.TokenType]struct{}

	// Function catalogs (normalized lowercase)
	windows       map[string]struct{}
	heavy         map[string]struct{}
	heavyPrefixes []string
}

// LookupKeyword returns the dialect-specific token type for an identifier.
func (p *Profile) LookupKeyword(name string) (token.TokenType, bool) {
	t, ok := p.keywords[name]
	return t, ok
}

// Opener returns the opener definition for a token type.
func (p *Profile) Opener(t token.TokenType) (Opener, bool) {
	o, ok := p.openers[t]
	return o, ok
}

// IsCloserSuffix returns true if the token may directly follow END as part
// of the closing keyword (END IF, END LOOP, END TRY, ...).
func (p *Profile) IsCloserSuffix(t token.TokenType) bool {
	_, ok := p.closerSuffixes[t]
	return ok
}

// IsLoopMarker returns true for loop keywords that do not open an
// END-terminated block (T-SQL WHILE).
func (p *Profile) IsLoopMarker(t token.TokenType) bool {
	_, ok := p.loopMarkers[t]
	return ok
}

// IsCondMarker returns true for conditional keywords that do not open an
// END-terminated block (ELSIF, ELSEIF, T-SQL IF).
func (p *Profile) IsCondMarker(t token.TokenType) bool {
	_, ok := p.condMarkers[t]
	return ok
}

// ExceptionMarker returns the handler marker token and the token that must
// precede it (EOF means any). ok is false when the dialect has no handler
// syntax.
func (p *Profile) ExceptionMarker() (marker, after token.TokenType, ok bool) {
	if p.exceptionMarker == 0 {
		return 0, 0, false
	}
	return p.exceptionMarker, p.exceptionAfter, true
}

// DynamicPair returns the second token of a dynamic-SQL keyword pair
// starting with t (EXECUTE -> IMMEDIATE).
func (p *Profile) DynamicPair(t token.TokenType) (token.TokenType, bool) {
	for _, pair := range p.dynamicPairs {
		if pair[0] == t {
			return pair[1], true
		}
	}
	return 0, false
}

// IsDynamicCall returns true if the (lowercased) name is a dynamic-SQL
// entry point such as sp_executesql.
func (p *Profile) IsDynamicCall(name string) bool {
	_, ok := p.dynamicCalls[strings.ToLower(name)]
	return ok
}

// DynamicExecParen returns true if EXECUTE('...') counts as dynamic SQL.
func (p *Profile) DynamicExecParen() bool {
	return p.dynamicExecParen
}

// IsControlStarter returns true if a statement beginning with t is a
// control statement rather than conventional SQL.
func (p *Profile) IsControlStarter(t token.TokenType) bool {
	_, ok := p.controlStarters[t]
	return ok
}

// IsWindow returns true if the (lowercased) name is in the dialect's
// window-function catalog.
func (p *Profile) IsWindow(name string) bool {
	_, ok := p.windows[strings.ToLower(name)]
	return ok
}

// IsHeavy returns true if the (lowercased) name is in the dialect's heavy
// native-function catalog (string/array aggregation, JSON construction,
// regex functions).
func (p *Profile) IsHeavy(name string) bool {
	lower := strings.ToLower(name)
	if _, ok := p.heavy[lower]; ok {
		return true
	}
	for _, prefix := range p.heavyPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
