// Package token defines the token types for dialect-aware SQL scanning.
//
// Core ANSI and procedural tokens are defined as constants (IDs 0-999) for
// switch performance. Dialect-specific tokens (ELSIF, CATCH, IMMEDIATE, ...)
// are registered dynamically via Register().
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

//nolint:revive // ALL_CAPS names are intentional for SQL token conventions
const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT  // identifier
	NUMBER // 123, 45.67, 1e10
	STRING // 'hello'
	BODY   // dollar-quoted body, kept opaque: $$ ... $$

	// Punctuation and terminators
	SEMI     // ;
	BATCH    // batch separator alone on a line (T-SQL GO)
	SLASH    // block terminator '/' alone on a line (Oracle)
	LPAREN   // (
	RPAREN   // )
	COMMA    // ,
	DOT      // .
	OPERATOR // any other operator character sequence

	// Keywords (alphabetical)
	ALL
	AND
	AS
	BEGIN
	BETWEEN
	BY
	CASE
	CLOSE
	CREATE
	CROSS
	CURSOR
	DECLARE
	DELETE
	DISTINCT
	DO
	ELSE
	END
	EXCEPT
	EXECUTE
	EXISTS
	FETCH
	FOR
	FROM
	FULL
	FUNCTION
	GROUP
	HAVING
	IF
	IN
	INNER
	INSERT
	INTERSECT
	INTO
	IS
	JOIN
	LEFT
	LIKE
	LIMIT
	LOOP
	MERGE
	NOT
	NULL
	ON
	OPEN
	OR
	ORDER
	OUTER
	OVER
	PARTITION
	PROCEDURE
	REPLACE
	RETURN
	RIGHT
	SELECT
	SET
	TABLE
	THEN
	TRIGGER
	UNION
	UPDATE
	VALUES
	VIEW
	WHEN
	WHERE
	WHILE
	WITH

	// Sentinel - dynamic tokens start after this
	maxBuiltin TokenType = 999
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	// Check dynamic tokens first
	if name, ok := getDynamicName(t); ok {
		return name
	}
	// Then check builtin tokens
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps builtin token types to their string representations.
var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",
	BODY:   "BODY",

	SEMI:     ";",
	BATCH:    "BATCH",
	SLASH:    "/",
	LPAREN:   "(",
	RPAREN:   ")",
	COMMA:    ",",
	DOT:      ".",
	OPERATOR: "OPERATOR",

	ALL:       "ALL",
	AND:       "AND",
	AS:        "AS",
	BEGIN:     "BEGIN",
	BETWEEN:   "BETWEEN",
	BY:        "BY",
	CASE:      "CASE",
	CLOSE:     "CLOSE",
	CREATE:    "CREATE",
	CROSS:     "CROSS",
	CURSOR:    "CURSOR",
	DECLARE:   "DECLARE",
	DELETE:    "DELETE",
	DISTINCT:  "DISTINCT",
	DO:        "DO",
	ELSE:      "ELSE",
	END:       "END",
	EXCEPT:    "EXCEPT",
	EXECUTE:   "EXECUTE",
	EXISTS:    "EXISTS",
	FETCH:     "FETCH",
	FOR:       "FOR",
	FROM:      "FROM",
	FULL:      "FULL",
	FUNCTION:  "FUNCTION",
	GROUP:     "GROUP",
	HAVING:    "HAVING",
	IF:        "IF",
	IN:        "IN",
	INNER:     "INNER",
	INSERT:    "INSERT",
	INTERSECT: "INTERSECT",
	INTO:      "INTO",
	IS:        "IS",
	JOIN:      "JOIN",
	LEFT:      "LEFT",
	LIKE:      "LIKE",
	LIMIT:     "LIMIT",
	LOOP:      "LOOP",
	MERGE:     "MERGE",
	NOT:       "NOT",
	NULL:      "NULL",
	ON:        "ON",
	OPEN:      "OPEN",
	OR:        "OR",
	ORDER:     "ORDER",
	OUTER:     "OUTER",
	OVER:      "OVER",
	PARTITION: "PARTITION",
	PROCEDURE: "PROCEDURE",
	REPLACE:   "REPLACE",
	RETURN:    "RETURN",
	RIGHT:     "RIGHT",
	SELECT:    "SELECT",
	SET:       "SET",
	TABLE:     "TABLE",
	THEN:      "THEN",
	TRIGGER:   "TRIGGER",
	UNION:     "UNION",
	UPDATE:    "UPDATE",
	VALUES:    "VALUES",
	VIEW:      "VIEW",
	WHEN:      "WHEN",
	WHERE:     "WHERE",
	WHILE:     "WHILE",
	WITH:      "WITH",
}

// keywords maps lowercase keyword strings to their token types.
var keywords = map[string]TokenType{
	"all":       ALL,
	"and":       AND,
	"as":        AS,
	"begin":     BEGIN,
	"between":   BETWEEN,
	"by":        BY,
	"case":      CASE,
	"close":     CLOSE,
	"create":    CREATE,
	"cross":     CROSS,
	"cursor":    CURSOR,
	"declare":   DECLARE,
	"delete":    DELETE,
	"distinct":  DISTINCT,
	"do":        DO,
	"else":      ELSE,
	"end":       END,
	"except":    EXCEPT,
	"execute":   EXECUTE,
	"exists":    EXISTS,
	"fetch":     FETCH,
	"for":       FOR,
	"from":      FROM,
	"full":      FULL,
	"function":  FUNCTION,
	"group":     GROUP,
	"having":    HAVING,
	"if":        IF,
	"in":        IN,
	"inner":     INNER,
	"insert":    INSERT,
	"intersect": INTERSECT,
	"into":      INTO,
	"is":        IS,
	"join":      JOIN,
	"left":      LEFT,
	"like":      LIKE,
	"limit":     LIMIT,
	"loop":      LOOP,
	"merge":     MERGE,
	"not":       NOT,
	"null":      NULL,
	"on":        ON,
	"open":      OPEN,
	"or":        OR,
	"order":     ORDER,
	"outer":     OUTER,
	"over":      OVER,
	"partition": PARTITION,
	"procedure": PROCEDURE,
	"replace":   REPLACE,
	"return":    RETURN,
	"right":     RIGHT,
	"select":    SELECT,
	"set":       SET,
	"table":     TABLE,
	"then":      THEN,
	"trigger":   TRIGGER,
	"union":     UNION,
	"update":    UPDATE,
	"values":    VALUES,
	"view":      VIEW,
	"when":      WHEN,
	"where":     WHERE,
	"while":     WHILE,
	"with":      WITH,
}

// LookupIdent returns the token type for the given lowercase identifier.
// If the identifier is a keyword, the keyword token type is returned.
// Otherwise, IDENT is returned.
// This only checks builtin keywords; dialect keywords are resolved through
// the profile's keyword table.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a builtin keyword.
func IsKeyword(t TokenType) bool {
	return t >= ALL && t <= WITH
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}
