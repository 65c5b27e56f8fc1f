package scanner

import (
	"fmt"

	"github.com/eri-adepoju/sqlscore/pkg/token"
)

// LexError represents a lexical analysis error. It is fatal for the whole
// script: once a literal or comment is unterminated, every following offset
// is unreliable.
type LexError struct {
	Pos     token.Position
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnterminatedString  = "unterminated string literal"
	ErrUnterminatedComment = "unterminated block comment"
	ErrUnterminatedBody    = "unterminated dollar-quoted body"
	ErrUnterminatedQuoted  = "unterminated quoted identifier"
)
