package score

import (
	"fmt"
	"strings"

	"github.com/eri-adepoju/sqlscore/pkg/dialect"
	"github.com/eri-adepoju/sqlscore/pkg/scanner"
	"github.com/eri-adepoju/sqlscore/pkg/token"
)

// ConstructOccurrence is one recognized complexity-relevant construct.
type ConstructOccurrence struct {
	Category Category
	Depth    int // block-nesting depth (subquery depth for CategorySubquery)
	Offset   int // byte offset in the script
}

// StatementAnalysis is the analyzer's result for one statement.
type StatementAnalysis struct {
	Kind             StatementKind
	Occurrences      []ConstructOccurrence
	MaxSubqueryDepth int
	HasCTE           bool
	HasWindow        bool

	// InnerConventional counts conventional statements embedded in a
	// procedural body, where the proc's volume lives.
	InnerConventional int

	Diagnostics []Diagnostic
}

// Analyze walks one statement's token stream, classifies the statement and
// collects construct occurrences. Unrecognized constructs are recorded as
// unknown-construct diagnostics and excluded from counts; they never block
// classification.
func Analyze(stmt *Statement, profile *dialect.Profile) *StatementAnalysis {
	a := &analysis{profile: profile, res: &StatementAnalysis{}}
	a.walk(stmt.Tokens, 0)

	res := a.res
	res.HasCTE = a.count(CategoryCTE) > 0
	res.HasWindow = a.count(CategoryWindow) > 0
	res.InnerConventional = a.innerConv
	res.Kind = a.statementKind(stmt.Tokens)
	stmt.Kind = res.Kind
	return res
}

// analysis carries the walk state for one statement.
type analysis struct {
	profile *dialect.Profile
	res     *StatementAnalysis

	sawBlock       bool // confirmed non-CASE opener
	nonDeclarative int  // loop/conditional(non-CASE)/cursor/exception/dynamic hits
	createRoutine  bool // CREATE [OR REPLACE] PROCEDURE/FUNCTION/TRIGGER
	innerConv      int  // conventional statements nested in blocks
}

func (a *analysis) count(c Category) int {
	n := 0
	for _, occ := range a.res.Occurrences {
		if occ.Category == c {
			n++
		}
	}
	return n
}

func (a *analysis) record(c Category, depth, offset int) {
	a.res.Occurrences = append(a.res.Occurrences, ConstructOccurrence{
		Category: c,
		Depth:    depth,
		Offset:   offset,
	})
}

// walk analyzes a token slice. baseDepth is non-zero when recursing into a
// dollar-quoted routine body, whose constructs nest inside the enclosing
// statement.
func (a *analysis) walk(toks []token.Token, baseDepth int) {
	p := a.profile

	var (
		stack     []frame
		parens    int
		subqueryAt []int // paren depths at which subqueries started
	)
	depth := func() int { return baseDepth + len(stack) }

	for i := 0; i < len(toks); i++ {
		t := toks[i]

		if depth() > 0 && statementStart(toks, i, baseDepth) && isConventionalStart(t.Type) {
			a.innerConv++
		}

		switch t.Type {
		case token.LPAREN:
			parens++
			if i+1 < len(toks) && (toks[i+1].Type == token.SELECT || toks[i+1].Type == token.WITH) {
				subqueryAt = append(subqueryAt, parens)
				a.record(CategorySubquery, len(subqueryAt), t.Pos.Offset)
				if len(subqueryAt) > a.res.MaxSubqueryDepth {
					a.res.MaxSubqueryDepth = len(subqueryAt)
				}
			}
			continue

		case token.RPAREN:
			if len(subqueryAt) > 0 && subqueryAt[len(subqueryAt)-1] == parens {
				subqueryAt = subqueryAt[:len(subqueryAt)-1]
			}
			if parens > 0 {
				parens--
			}
			continue

		case token.END:
			if len(stack) == 0 {
				a.diag(DiagUnknownConstruct, t.Pos.Offset, "END with no open block")
				continue
			}
			popped := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if i+1 < len(toks) && p.IsCloserSuffix(toks[i+1].Type) {
				i++
				if !closerSuffixMatches(popped.opener, toks[i].Type) {
					a.diag(DiagUnknownConstruct, toks[i].Pos.Offset,
						fmt.Sprintf("END %s closes a %s block", toks[i].Type, popped.opener.Kind))
				}
			}
			continue

		case token.BODY:
			if routinePending(stack) {
				stack = stack[:len(stack)-1]
			}
			a.walkBody(t, depth())
			continue

		case token.JOIN:
			a.record(CategoryJoin, depth(), t.Pos.Offset)
			continue

		case token.CURSOR:
			a.record(CategoryCursor, depth(), t.Pos.Offset)
			a.nonDeclarative++
			continue

		case token.WITH:
			a.countCTEMembers(toks, i, depth())
			continue

		case token.INSERT, token.MERGE:
			a.record(CategoryDML, depth(), t.Pos.Offset)
			continue

		case token.UPDATE:
			// FOR UPDATE locking clauses are not DML.
			if i > 0 && toks[i-1].Type == token.FOR {
				continue
			}
			a.record(CategoryDML, depth(), t.Pos.Offset)
			continue

		case token.DELETE:
			// ON DELETE CASCADE referential actions are not DML.
			if i > 0 && toks[i-1].Type == token.ON {
				continue
			}
			a.record(CategoryDML, depth(), t.Pos.Offset)
			continue

		case token.CREATE:
			// A routine header enters the body frame, mirroring the
			// segmenter, so embedded statements count at depth >= 1 even
			// when the body has no BEGIN of its own.
			if o, ok := openerAt(p, toks, i); ok && !mergesWithPending(stack, o) {
				a.createRoutine = true
				a.sawBlock = true
				stack = append(stack, frame{opener: o, offset: t.Pos.Offset})
			}
			continue

		case token.IDENT:
			a.analyzeCall(toks, i, depth())
			continue
		}

		// Dynamic SQL: keyword pair (EXECUTE IMMEDIATE) or EXECUTE('...').
		if next, ok := p.DynamicPair(t.Type); ok && i+1 < len(toks) && toks[i+1].Type == next {
			a.record(CategoryDynamicSQL, depth(), t.Pos.Offset)
			a.nonDeclarative++
			i++
			continue
		}
		if t.Type == token.EXECUTE && p.DynamicExecParen() &&
			i+1 < len(toks) && toks[i+1].Type == token.LPAREN {
			a.record(CategoryDynamicSQL, depth(), t.Pos.Offset)
			a.nonDeclarative++
			continue
		}

		// Exception handlers (EXCEPTION section, BEGIN CATCH).
		if marker, after, ok := p.ExceptionMarker(); ok && t.Type == marker {
			if after == 0 || (i > 0 && toks[i-1].Type == after) {
				a.record(CategoryException, depth(), t.Pos.Offset)
				a.nonDeclarative++
			}
		}

		// Non-opener construct markers (T-SQL WHILE / IF, ELSIF, ELSEIF).
		if p.IsLoopMarker(t.Type) {
			a.record(CategoryLoop, depth(), t.Pos.Offset)
			a.nonDeclarative++
			continue
		}
		if p.IsCondMarker(t.Type) {
			a.record(CategoryConditional, depth(), t.Pos.Offset)
			a.nonDeclarative++
			continue
		}

		// Block openers. The BEGIN of a declare section or an inline
		// routine body continues the open block instead of nesting.
		if absorbPending(stack, t.Type) {
			continue
		}
		if o, ok := openerAt(p, toks, i); ok && !mergesWithPending(stack, o) {
			switch o.Kind {
			case dialect.KindLoop:
				a.record(CategoryLoop, depth(), t.Pos.Offset)
				a.nonDeclarative++
				a.sawBlock = true
			case dialect.KindConditional:
				a.record(CategoryConditional, depth(), t.Pos.Offset)
				a.nonDeclarative++
				a.sawBlock = true
			case dialect.KindCase:
				// Searched CASE expressions count as conditionals but do
				// not make the statement procedural.
				if i+1 < len(toks) && toks[i+1].Type == token.WHEN {
					a.record(CategoryConditional, depth(), t.Pos.Offset)
				}
			default:
				a.sawBlock = true
			}
			stack = append(stack, frame{opener: o, offset: t.Pos.Offset})
		}
	}
}

// walkBody recursively analyzes a dollar-quoted routine body. Segmentation
// treats the body as an opaque span; analysis descends into it so loops and
// handlers inside procedure bodies are counted. A lex error inside the body
// is recorded fail-open as an unknown construct.
func (a *analysis) walkBody(body token.Token, depth int) {
	inner := stripDollarTag(body.Literal)
	if inner == "" {
		return
	}
	toks, err := scanner.Tokenize(inner, a.profile)
	if err != nil {
		a.diag(DiagUnknownConstruct, body.Pos.Offset, "unparseable routine body: "+err.Error())
		return
	}
	// Drop the trailing EOF token before walking.
	if n := len(toks); n > 0 && toks[n-1].Type == token.EOF {
		toks = toks[:n-1]
	}
	a.walk(toks, depth+1)
}

// analyzeCall checks an identifier call site against the profile catalogs.
func (a *analysis) analyzeCall(toks []token.Token, i, depth int) {
	p := a.profile
	name := toks[i].Literal

	if p.IsDynamicCall(name) {
		a.record(CategoryDynamicSQL, depth, toks[i].Pos.Offset)
		a.nonDeclarative++
		return
	}

	if i+1 >= len(toks) || toks[i+1].Type != token.LPAREN {
		return
	}

	if p.IsWindow(name) && hasOverClause(toks, i+1) {
		a.record(CategoryWindow, depth, toks[i].Pos.Offset)
		return
	}
	if p.IsHeavy(name) {
		a.record(CategoryHeavy, depth, toks[i].Pos.Offset)
	}
}

// countCTEMembers counts the named members of a WITH clause starting at
// toks[i]. The walk itself keeps going over the member bodies, so nested
// constructs are still counted.
func (a *analysis) countCTEMembers(toks []token.Token, i, depth int) {
	j := i + 1
	// Optional RECURSIVE.
	if j < len(toks) && toks[j].Type == token.IDENT && strings.EqualFold(toks[j].Literal, "recursive") {
		j++
	}
	for j < len(toks) {
		if toks[j].Type != token.IDENT {
			return
		}
		member := toks[j]
		j++
		// Optional column list.
		if j < len(toks) && toks[j].Type == token.LPAREN {
			j = skipBalanced(toks, j)
		}
		if j >= len(toks) || toks[j].Type != token.AS {
			return
		}
		j++
		if j >= len(toks) || toks[j].Type != token.LPAREN {
			return
		}
		a.record(CategoryCTE, depth, member.Pos.Offset)
		j = skipBalanced(toks, j)
		if j < len(toks) && toks[j].Type == token.COMMA {
			j++
			continue
		}
		return
	}
}

func (a *analysis) diag(kind DiagKind, offset int, msg string) {
	a.res.Diagnostics = append(a.res.Diagnostics, Diagnostic{Kind: kind, Offset: offset, Message: msg})
}

// statementKind resolves the statement classification from the walk flags.
func (a *analysis) statementKind(toks []token.Token) StatementKind {
	switch {
	case a.sawBlock || a.createRoutine:
		return KindProcedural
	case a.nonDeclarative > 0:
		return KindControl
	case len(toks) > 0 && a.profile.IsControlStarter(toks[0].Type):
		return KindControl
	default:
		return KindConventional
	}
}

// isRoutineHeader reports whether toks[i] starts CREATE [OR REPLACE]
// [modifiers] PROCEDURE/FUNCTION/TRIGGER. Routine definitions are
// procedural even when their body is an opaque dollar-quoted span. A small
// window after CREATE covers modifiers like EDITIONABLE or SECURE; object
// names cut the search off.
func isRoutineHeader(toks []token.Token, i int) bool {
	j := i + 1
	if j+1 < len(toks) && toks[j].Type == token.OR && toks[j+1].Type == token.REPLACE {
		j += 2
	}
	for k := 0; k < 3 && j < len(toks); k, j = k+1, j+1 {
		switch toks[j].Type {
		case token.PROCEDURE, token.FUNCTION, token.TRIGGER:
			return true
		case token.TABLE, token.VIEW:
			return false
		}
	}
	return false
}

// hasOverClause reports whether the call whose argument list opens at
// toks[open] is followed by an OVER clause, skipping an optional
// WITHIN GROUP (...) section.
func hasOverClause(toks []token.Token, open int) bool {
	j := skipBalanced(toks, open)
	if j < len(toks) && toks[j].Type == token.IDENT && strings.EqualFold(toks[j].Literal, "within") {
		j++
		if j < len(toks) && toks[j].Type == token.GROUP {
			j++
		}
		if j < len(toks) && toks[j].Type == token.LPAREN {
			j = skipBalanced(toks, j)
		}
	}
	return j < len(toks) && toks[j].Type == token.OVER
}

// statementStart reports whether toks[i] begins an embedded statement:
// the first token of a routine body, or a token directly following a
// statement terminator or block introducer. AS covers the first statement
// of a bare routine body (CREATE PROCEDURE ... AS INSERT ...).
func statementStart(toks []token.Token, i, baseDepth int) bool {
	if i == 0 {
		return baseDepth > 0
	}
	switch toks[i-1].Type {
	case token.SEMI, token.BEGIN, token.THEN, token.ELSE, token.DO, token.LOOP, token.AS:
		return true
	default:
		return false
	}
}

// isConventionalStart matches the leading token of a conventional DML or
// query statement.
func isConventionalStart(t token.TokenType) bool {
	switch t {
	case token.SELECT, token.INSERT, token.UPDATE, token.DELETE, token.MERGE, token.WITH:
		return true
	default:
		return false
	}
}

// stripDollarTag removes the $tag$ ... $tag$ delimiters from a dollar-quoted
// body literal, returning the inner text.
func stripDollarTag(lit string) string {
	if len(lit) < 2 || lit[0] != '$' {
		return lit
	}
	end := strings.IndexByte(lit[1:], '$')
	if end < 0 {
		return lit
	}
	tag := lit[:end+2] // "$tag$" including both dollars
	inner := lit[len(tag):]
	inner = strings.TrimSuffix(inner, tag)
	return inner
}

// skipBalanced returns the index just past the parenthesized group opening
// at toks[open]. If the group never closes it returns len(toks).
func skipBalanced(toks []token.Token, open int) int {
	depth := 0
	for j := open; j < len(toks); j++ {
		switch toks[j].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				return j + 1
			}
		}
	}
	return len(toks)
}
