package score

import (
	"github.com/eri-adepoju/sqlscore/pkg/dialect"
	"github.com/eri-adepoju/sqlscore/pkg/token"
)

// frame records one open block on the nesting stack.
type frame struct {
	opener   dialect.Opener
	offset   int
	absorbed bool // the opener's AbsorbNext token was seen
}

// absorbPending reports whether t is claimed by the top frame instead of
// opening a nested block (the BEGIN of a DECLARE section or an inline
// routine body). The frame is marked so only the first occurrence is
// absorbed.
func absorbPending(stack []frame, t token.TokenType) bool {
	if len(stack) == 0 {
		return false
	}
	top := &stack[len(stack)-1]
	if top.opener.AbsorbNext == t && !top.absorbed {
		top.absorbed = true
		return true
	}
	return false
}

// routinePending reports whether the top frame is a routine definition
// still waiting for its body. A dollar-quoted BODY token satisfies it and
// closes the frame at the call site.
func routinePending(stack []frame) bool {
	if len(stack) == 0 {
		return false
	}
	top := stack[len(stack)-1]
	return top.opener.AbsorbNext != 0 && !top.absorbed
}

// mergesWithPending reports whether opener o continues a pending routine
// frame instead of nesting: CREATE PROCEDURE ... AS DECLARE ... BEGIN ...
// END is one block closed by one END.
func mergesWithPending(stack []frame, o dialect.Opener) bool {
	return routinePending(stack) &&
		o.AbsorbNext != 0 &&
		o.AbsorbNext == stack[len(stack)-1].opener.AbsorbNext
}

// popBatchScoped removes trailing batch-scoped frames, which close at the
// batch separator or end of input rather than at END.
func popBatchScoped(stack []frame) []frame {
	for len(stack) > 0 && stack[len(stack)-1].opener.BatchScoped {
		stack = stack[:len(stack)-1]
	}
	return stack
}

// openerAt reports whether toks[i] opens a block under the profile's rules.
// It applies the ExcludeNext cancellation (BEGIN TRANSACTION) and the
// NeedsDo lookahead for loop headers that only open in their DO form
// (Snowflake FOR ... DO). FOR followed by LOOP defers to the LOOP opener.
func openerAt(p *dialect.Profile, toks []token.Token, i int) (dialect.Opener, bool) {
	o, ok := p.Opener(toks[i].Type)
	if !ok {
		return dialect.Opener{}, false
	}
	if len(o.ExcludeNext) > 0 && i+1 < len(toks) {
		if _, excluded := o.ExcludeNext[toks[i+1].Type]; excluded {
			return dialect.Opener{}, false
		}
	}
	if o.RoutineHeader && !isRoutineHeader(toks, i) {
		return dialect.Opener{}, false
	}
	if o.NeedsDo {
		for j := i + 1; j < len(toks); j++ {
			switch toks[j].Type {
			case token.DO:
				return o, true
			case token.LOOP, token.SEMI, token.BATCH, token.SLASH, token.EOF:
				return dialect.Opener{}, false
			}
		}
		return dialect.Opener{}, false
	}
	return o, true
}

// closerSuffixMatches reports whether an END suffix is plausible for the
// opener that was just popped. A mismatch is an UnknownConstruct signal,
// not a hard error.
func closerSuffixMatches(opener dialect.Opener, suffix token.TokenType) bool {
	switch suffix {
	case token.IF:
		return opener.Kind == dialect.KindConditional
	case token.LOOP, token.WHILE, token.FOR:
		return opener.Kind == dialect.KindLoop
	case token.CASE:
		return opener.Kind == dialect.KindCase
	default:
		// Dialect-registered suffixes (TRY, CATCH, REPEAT, ...) are not
		// distinguished further.
		return true
	}
}
