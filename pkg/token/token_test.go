package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupIdent_Keywords(t *testing.T) {
	assert.Equal(t, SELECT, LookupIdent("select"))
	assert.Equal(t, BEGIN, LookupIdent("begin"))
	assert.Equal(t, CURSOR, LookupIdent("cursor"))
	assert.Equal(t, IDENT, LookupIdent("revenue"))
}

func TestLookupIdent_IsLowercaseOnly(t *testing.T) {
	// Callers normalize before lookup; uppercase input is not a keyword.
	assert.Equal(t, IDENT, LookupIdent("SELECT"))
}

func TestIsKeyword(t *testing.T) {
	assert.True(t, IsKeyword(SELECT))
	assert.True(t, IsKeyword(WITH))
	assert.False(t, IsKeyword(IDENT))
	assert.False(t, IsKeyword(SEMI))
}

func TestRegister_AssignsStableTokens(t *testing.T) {
	a := Register("TESTONLY_A")
	b := Register("TESTONLY_B")

	require.NotEqual(t, a, b)
	assert.True(t, IsDynamic(a))
	assert.Equal(t, "TESTONLY_A", a.String())

	// Registering the same name again returns the same token.
	assert.Equal(t, a, Register("TESTONLY_A"))
}

func TestString_BuiltinAndUnknown(t *testing.T) {
	assert.Equal(t, "SELECT", SELECT.String())
	assert.Equal(t, ";", SEMI.String())
	assert.Equal(t, "TOKEN(900)", TokenType(900).String())
}
