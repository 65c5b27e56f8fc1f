package score

import (
	"fmt"
	"strings"

	"github.com/eri-adepoju/sqlscore/pkg/dialect"
	"github.com/eri-adepoju/sqlscore/pkg/scanner"
	"github.com/eri-adepoju/sqlscore/pkg/token"
)

// StatementKind classifies a segmented statement.
type StatementKind int

const (
	// KindConventional is pure declarative SQL, possibly with window
	// functions, CASE expressions and subqueries.
	KindConventional StatementKind = iota
	// KindProcedural is a statement containing a procedural block.
	KindProcedural
	// KindControl is a top-level control statement (IF, WHILE, DECLARE,
	// EXECUTE IMMEDIATE) without a block body.
	KindControl
)

// String returns the kind label.
func (k StatementKind) String() string {
	switch k {
	case KindConventional:
		return "conventional"
	case KindProcedural:
		return "procedural"
	case KindControl:
		return "control"
	default:
		return fmt.Sprintf("KIND(%d)", k)
	}
}

// Statement is one top-level statement span produced by the segmenter.
// It is read-only after segmentation; Kind is filled in by the analyzer.
type Statement struct {
	Text   string
	Start  int // byte offset of the first token
	End    int // byte offset just past the terminator
	Tokens []token.Token // significant tokens, terminator excluded
	Kind   StatementKind
}

// SegmentationError reports unbalanced block nesting. It is localized to
// one statement: scoring continues with the remaining statements and the
// report is marked partial.
type SegmentationError struct {
	Offset  int // offset of the last unmatched opener
	Message string
}

func (e *SegmentationError) Error() string {
	return fmt.Sprintf("segmentation error at offset %d: %s", e.Offset, e.Message)
}

// Segment splits raw script text into an ordered list of top-level
// statements. A terminator is only a boundary when the block-nesting stack
// is empty, so semicolons inside a stored-procedure body belong to the
// enclosing statement. Returned diagnostics carry localized segmentation
// findings; the error return is a *scanner.LexError and fatal.
func Segment(text string, profile *dialect.Profile) ([]Statement, []Diagnostic, error) {
	toks, err := scanner.Tokenize(text, profile)
	if err != nil {
		return nil, nil, err
	}

	var (
		stmts []Statement
		diags []Diagnostic
		cur   []token.Token
		stack []frame
	)

	flush := func(end int) {
		if len(cur) == 0 {
			return
		}
		start := cur[0].Pos.Offset
		if end < start {
			end = start
		}
		stmts = append(stmts, Statement{
			Text:   strings.TrimSpace(text[start:end]),
			Start:  start,
			End:    end,
			Tokens: cur,
		})
		cur = nil
	}

	// dropUnbalanced records the segmentation error for the statement in
	// progress and resets the nesting state.
	dropUnbalanced := func(reason string) {
		top := stack[len(stack)-1]
		diags = append(diags, Diagnostic{
			Kind:    DiagSegmentation,
			Offset:  top.offset,
			Message: (&SegmentationError{Offset: top.offset, Message: reason}).Error(),
		})
		stack = stack[:0]
		cur = nil
	}

	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch t.Type {
		case token.EOF:
			// handled after the loop

		case token.SEMI:
			if len(stack) == 0 {
				flush(t.Pos.Offset + 1)
				continue
			}
			cur = append(cur, t)

		case token.BATCH:
			// GO ends the batch regardless of nesting and does not nest
			// itself. Routine bodies that run to the separator close here.
			stack = popBatchScoped(stack)
			if len(stack) > 0 {
				dropUnbalanced("unclosed block at batch separator")
				continue
			}
			flush(t.Pos.Offset)

		case token.SLASH:
			// A trailing "/" closes the preceding block; when everything
			// is already terminated it produces no new statement.
			if len(stack) > 0 {
				dropUnbalanced("unclosed block at block terminator")
				continue
			}
			flush(t.Pos.Offset)

		case token.END:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			cur = append(cur, t)
			// Consume the closing suffix (END IF, END LOOP, END TRY) so
			// it is not mistaken for a fresh opener.
			if i+1 < len(toks) && profile.IsCloserSuffix(toks[i+1].Type) {
				i++
				cur = append(cur, toks[i])
			}

		case token.BODY:
			// A dollar-quoted body satisfies a pending routine header
			// (CREATE PROCEDURE ... AS $$ ... $$).
			if routinePending(stack) {
				stack = stack[:len(stack)-1]
			}
			cur = append(cur, t)

		default:
			if absorbPending(stack, t.Type) {
				cur = append(cur, t)
				continue
			}
			if o, ok := openerAt(profile, toks, i); ok && !mergesWithPending(stack, o) {
				stack = append(stack, frame{opener: o, offset: t.Pos.Offset})
			}
			cur = append(cur, t)
		}
	}

	stack = popBatchScoped(stack)
	if len(stack) > 0 {
		// Unbalanced nesting at end-of-input aborts the offending
		// statement only.
		dropUnbalanced("unclosed block at end of input")
	} else {
		flush(len(text))
	}

	return stmts, diags, nil
}
