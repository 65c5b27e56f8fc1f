// Package scanner tokenizes SQL scripts under the lexical rules of a
// dialect profile.
//
// The scanner knows about string and comment state, dollar-quoted bodies
// and line-only terminators (Oracle "/", T-SQL GO), so downstream
// components never match keywords inside literals. It performs no parsing:
// the segmenter and analyzer consume the flat token stream.
package scanner

import (
	"strings"
	"unicode"

	"github.com/eri-adepoju/sqlscore/pkg/dialect"
	"github.com/eri-adepoju/sqlscore/pkg/token"
)

// Scanner tokenizes SQL input for one dialect profile.
type Scanner struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	profile *dialect.Profile
}

// New creates a Scanner for the given input and profile.
func New(input string, profile *dialect.Profile) *Scanner {
	s := &Scanner{
		input:   input,
		line:    1,
		col:     0,
		profile: profile,
	}
	s.readChar()
	return s
}

// readChar advances to the next character.
func (s *Scanner) readChar() {
	if s.readPos >= len(s.input) {
		s.ch = 0 // ASCII NUL = EOF
	} else {
		s.ch = s.input[s.readPos]
	}
	s.pos = s.readPos
	s.readPos++

	if s.ch == '\n' {
		s.line++
		s.col = 0
	} else {
		s.col++
	}
}

// peekChar returns the next character without advancing.
func (s *Scanner) peekChar() byte {
	if s.readPos >= len(s.input) {
		return 0
	}
	return s.input[s.readPos]
}

// currentPos returns the current position.
func (s *Scanner) currentPos() token.Position {
	return token.Position{
		Line:   s.line,
		Column: s.col,
		Offset: s.pos,
	}
}

// NextToken returns the next token. A non-nil error is always a *LexError
// and fatal for the script.
func (s *Scanner) NextToken() (token.Token, error) {
	if err := s.skipWhitespaceAndComments(); err != nil {
		return token.Token{}, err
	}

	pos := s.currentPos()

	// Dollar-quoted bodies are opaque spans ($$ ... $$ or $tag$ ... $tag$).
	if s.profile.DollarQuotes && s.ch == '$' {
		if tag, ok := s.peekDollarTag(); ok {
			return s.readDollarBody(pos, tag)
		}
	}

	// A line containing only "/" closes the preceding block (Oracle).
	if s.profile.SlashTerminates && s.ch == '/' && s.aloneOnLine(s.pos, 1) {
		s.readChar()
		return token.Token{Type: token.SLASH, Literal: "/", Pos: pos}, nil
	}

	var tok token.Token
	tok.Pos = pos

	switch s.ch {
	case 0:
		tok.Type = token.EOF
		tok.Literal = ""
		return tok, nil
	case ';':
		tok = token.Token{Type: token.SEMI, Literal: ";", Pos: pos}
	case '(':
		tok = token.Token{Type: token.LPAREN, Literal: "(", Pos: pos}
	case ')':
		tok = token.Token{Type: token.RPAREN, Literal: ")", Pos: pos}
	case ',':
		tok = token.Token{Type: token.COMMA, Literal: ",", Pos: pos}
	case '.':
		tok = token.Token{Type: token.DOT, Literal: ".", Pos: pos}
	case '\'':
		lit, err := s.readString()
		if err != nil {
			return token.Token{}, err
		}
		return token.Token{Type: token.STRING, Literal: lit, Pos: pos}, nil
	case '"':
		lit, err := s.readQuoted('"')
		if err != nil {
			return token.Token{}, err
		}
		return token.Token{Type: token.IDENT, Literal: lit, Pos: pos}, nil
	case '[':
		if s.profile.BracketIdents {
			lit, err := s.readQuoted(']')
			if err != nil {
				return token.Token{}, err
			}
			return token.Token{Type: token.IDENT, Literal: lit, Pos: pos}, nil
		}
		tok = token.Token{Type: token.OPERATOR, Literal: "[", Pos: pos}
	default:
		switch {
		case isIdentStart(s.ch):
			lit := s.readIdentifier()
			return s.identToken(lit, pos), nil
		case isDigit(s.ch):
			return token.Token{Type: token.NUMBER, Literal: s.readNumber(), Pos: pos}, nil
		default:
			tok = token.Token{Type: token.OPERATOR, Literal: string(s.ch), Pos: pos}
		}
	}

	s.readChar()
	return tok, nil
}

// identToken resolves an identifier against builtin keywords, the profile's
// keyword table and the batch separator rule.
func (s *Scanner) identToken(lit string, pos token.Position) token.Token {
	lower := strings.ToLower(lit)

	// GO terminates a T-SQL batch only when alone on its line.
	if s.profile.BatchSeparator != "" && lower == s.profile.BatchSeparator &&
		s.aloneOnLine(pos.Offset, len(lit)) {
		return token.Token{Type: token.BATCH, Literal: lit, Pos: pos}
	}

	t := token.LookupIdent(lower)
	if t == token.IDENT {
		if dyn, ok := s.profile.LookupKeyword(lower); ok {
			t = dyn
		}
	}
	return token.Token{Type: t, Literal: lit, Pos: pos}
}

// aloneOnLine reports whether the span [offset, offset+length) is the only
// non-whitespace content on its line.
func (s *Scanner) aloneOnLine(offset, length int) bool {
	for i := offset - 1; i >= 0 && s.input[i] != '\n'; i-- {
		if s.input[i] != ' ' && s.input[i] != '\t' && s.input[i] != '\r' {
			return false
		}
	}
	for i := offset + length; i < len(s.input) && s.input[i] != '\n'; i++ {
		if s.input[i] != ' ' && s.input[i] != '\t' && s.input[i] != '\r' {
			return false
		}
	}
	return true
}

// skipWhitespaceAndComments skips whitespace and comments.
func (s *Scanner) skipWhitespaceAndComments() error {
	for {
		for s.ch == ' ' || s.ch == '\t' || s.ch == '\n' || s.ch == '\r' {
			s.readChar()
		}

		// Line comment (-- ...)
		if s.ch == '-' && s.peekChar() == '-' {
			for s.ch != '\n' && s.ch != 0 {
				s.readChar()
			}
			continue
		}

		// Block comment (/* ... */)
		if s.ch == '/' && s.peekChar() == '*' {
			pos := s.currentPos()
			s.readChar() // skip '/'
			s.readChar() // skip '*'
			closed := false
			for s.ch != 0 {
				if s.ch == '*' && s.peekChar() == '/' {
					s.readChar() // skip '*'
					s.readChar() // skip '/'
					closed = true
					break
				}
				s.readChar()
			}
			if !closed {
				return &LexError{Pos: pos, Message: ErrUnterminatedComment}
			}
			continue
		}

		return nil
	}
}

// readString reads a single-quoted string literal.
// Handles doubled single quotes as escape: 'it''s' -> it's
func (s *Scanner) readString() (string, error) {
	start := s.currentPos()
	s.readChar() // skip opening quote

	var result strings.Builder
	for {
		if s.ch == 0 {
			return "", &LexError{Pos: start, Message: ErrUnterminatedString}
		}
		if s.ch == '\'' {
			if s.peekChar() == '\'' {
				result.WriteByte('\'')
				s.readChar() // skip first quote
				s.readChar() // skip second quote
				continue
			}
			s.readChar() // skip closing quote
			return result.String(), nil
		}
		result.WriteByte(s.ch)
		s.readChar()
	}
}

// readQuoted reads a quoted identifier delimited by closer ('"' or ']').
// Doubled closers are escapes.
func (s *Scanner) readQuoted(closer byte) (string, error) {
	start := s.currentPos()
	s.readChar() // skip opening quote

	var result strings.Builder
	for {
		if s.ch == 0 {
			return "", &LexError{Pos: start, Message: ErrUnterminatedQuoted}
		}
		if s.ch == closer {
			if s.peekChar() == closer {
				result.WriteByte(closer)
				s.readChar()
				s.readChar()
				continue
			}
			s.readChar() // skip closing quote
			return result.String(), nil
		}
		result.WriteByte(s.ch)
		s.readChar()
	}
}

// peekDollarTag checks whether the current position starts a $tag$ or $$
// delimiter and returns the full tag including both dollar signs.
func (s *Scanner) peekDollarTag() (string, bool) {
	j := s.pos + 1
	for j < len(s.input) && isDollarTagChar(s.input[j]) {
		j++
	}
	if j < len(s.input) && s.input[j] == '$' {
		return s.input[s.pos : j+1], true
	}
	return "", false
}

// readDollarBody reads a dollar-quoted body as one opaque BODY token.
// The literal covers the full span including delimiters.
func (s *Scanner) readDollarBody(pos token.Position, tag string) (token.Token, error) {
	start := s.pos
	for range tag {
		s.readChar()
	}

	for {
		if s.ch == 0 {
			return token.Token{}, &LexError{Pos: pos, Message: ErrUnterminatedBody}
		}
		if s.ch == '$' && strings.HasPrefix(s.input[s.pos:], tag) {
			for range tag {
				s.readChar()
			}
			return token.Token{Type: token.BODY, Literal: s.input[start:s.pos], Pos: pos}, nil
		}
		s.readChar()
	}
}

// readIdentifier reads an unquoted identifier.
func (s *Scanner) readIdentifier() string {
	start := s.pos
	for isIdentPart(s.ch) {
		s.readChar()
	}
	return s.input[start:s.pos]
}

// readNumber reads a numeric literal (integer, decimal, or scientific).
func (s *Scanner) readNumber() string {
	start := s.pos

	for isDigit(s.ch) {
		s.readChar()
	}
	if s.ch == '.' && isDigit(s.peekChar()) {
		s.readChar() // skip '.'
		for isDigit(s.ch) {
			s.readChar()
		}
	}
	if s.ch == 'e' || s.ch == 'E' {
		s.readChar()
		if s.ch == '+' || s.ch == '-' {
			s.readChar()
		}
		for isDigit(s.ch) {
			s.readChar()
		}
	}

	return s.input[start:s.pos]
}

// isIdentStart covers letters plus the T-SQL and Oracle sigils (@vars,
// #temp tables).
func isIdentStart(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || ch == '_' || ch == '@' || ch == '#'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '$'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isDollarTagChar(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || ch == '_'
}

// Tokenize returns all tokens from the input, ending with EOF.
func Tokenize(input string, profile *dialect.Profile) ([]token.Token, error) {
	s := New(input, profile)
	var tokens []token.Token
	for {
		tok, err := s.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}
