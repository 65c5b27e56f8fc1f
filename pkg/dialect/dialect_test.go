package dialect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eri-adepoju/sqlscore/pkg/dialect"
	"github.com/eri-adepoju/sqlscore/pkg/token"
)

func TestBuilder_Profile(t *testing.T) {
	imm := token.Register("TESTONLY_IMMEDIATE")
	p := dialect.New("testonly").
		BatchSeparator("GO").
		Keyword("immediate", imm).
		Opener(dialect.Opener{Token: token.BEGIN, Kind: dialect.KindBlock}).
		Opener(dialect.Opener{Token: token.LOOP, Kind: dialect.KindLoop}).
		CloserSuffixes(token.LOOP).
		LoopMarkers(token.WHILE).
		DynamicPair(token.EXECUTE, imm).
		DynamicCalls("SP_ExecuteSQL").
		ControlStarters(token.DECLARE).
		Windows("Row_Number").
		Heavy("listagg").
		HeavyPrefixes("REGEXP_").
		Build()

	assert.Equal(t, "testonly", p.Name)
	assert.Equal(t, "go", p.BatchSeparator)

	tok, ok := p.LookupKeyword("immediate")
	require.True(t, ok)
	assert.Equal(t, imm, tok)

	o, ok := p.Opener(token.LOOP)
	require.True(t, ok)
	assert.Equal(t, dialect.KindLoop, o.Kind)
	_, ok = p.Opener(token.IF)
	assert.False(t, ok)

	assert.True(t, p.IsCloserSuffix(token.LOOP))
	assert.True(t, p.IsLoopMarker(token.WHILE))
	assert.False(t, p.IsCondMarker(token.WHILE))

	second, ok := p.DynamicPair(token.EXECUTE)
	require.True(t, ok)
	assert.Equal(t, imm, second)

	// Name catalogs are case-insensitive.
	assert.True(t, p.IsDynamicCall("sp_executesql"))
	assert.True(t, p.IsWindow("ROW_NUMBER"))
	assert.True(t, p.IsHeavy("LISTAGG"))
	assert.True(t, p.IsHeavy("regexp_replace"))
	assert.False(t, p.IsHeavy("substr"))

	assert.True(t, p.IsControlStarter(token.DECLARE))
}

func TestProfile_NoExceptionMarker(t *testing.T) {
	p := dialect.New("bare").Build()
	_, _, ok := p.ExceptionMarker()
	assert.False(t, ok)
}

func TestRegistry_GetAndList(t *testing.T) {
	p := dialect.New("testonly-registry").Build()
	dialect.Register(p)

	got, err := dialect.Get("TESTONLY-REGISTRY")
	require.NoError(t, err)
	assert.Same(t, p, got)

	assert.Contains(t, dialect.List(), "testonly-registry")
}

func TestRegistry_UnknownDialect(t *testing.T) {
	_, err := dialect.Get("no-such-dialect")
	require.Error(t, err)
	assert.ErrorIs(t, err, dialect.ErrUnknownDialect)
}
