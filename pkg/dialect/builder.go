package dialect

import (
	"strings"

	"github.com/eri-adepoju/sqlscore/pkg/token"
)

// Builder constructs an immutable Profile.
// Dialect packages call New(...) at init() time, chain the configuration,
// and Register the result.
type Builder struct {
	p *Profile
}

// New starts a profile definition for the named dialect.
func New(name string) *Builder {
	return &Builder{p: &Profile{
		Name:            name,
		keywords:        make(map[string]token.TokenType),
		openers:         make(map[token.TokenType]Opener),
		closerSuffixes:  make(map[token.TokenType]struct{}),
		loopMarkers:     make(map[token.TokenType]struct{}),
		condMarkers:     make(map[token.TokenType]struct{}),
		dynamicCalls:    make(map[string]struct{}),
		controlStarters: make(map[token.TokenType]struct{}),
		windows:         make(map[string]struct{}),
		heavy:           make(map[string]struct{}),
	}}
}

// DollarQuotes enables $$-delimited opaque bodies (Snowflake, Postgres style).
func (b *Builder) DollarQuotes() *Builder {
	b.p.DollarQuotes = true
	return b
}

// BatchSeparator sets the word that terminates a batch when alone on a line.
func (b *Builder) BatchSeparator(word string) *Builder {
	b.p.BatchSeparator = strings.ToLower(word)
	return b
}

// SlashTerminates enables the Oracle client convention of a line containing
// only "/" closing the preceding block.
func (b *Builder) SlashTerminates() *Builder {
	b.p.SlashTerminates = true
	return b
}

// BracketIdents enables [name] identifier quoting (T-SQL).
func (b *Builder) BracketIdents() *Builder {
	b.p.BracketIdents = true
	return b
}

// Keyword registers a dialect-specific keyword.
func (b *Builder) Keyword(name string, t token.TokenType) *Builder {
	b.p.keywords[strings.ToLower(name)] = t
	return b
}

// Opener adds a block-opening keyword.
func (b *Builder) Opener(o Opener) *Builder {
	b.p.openers[o.Token] = o
	return b
}

// CloserSuffixes declares tokens that may trail END as part of the closer.
func (b *Builder) CloserSuffixes(ts ...token.TokenType) *Builder {
	for _, t := range ts {
		b.p.closerSuffixes[t] = struct{}{}
	}
	return b
}

// LoopMarkers declares loop keywords that do not open an END-terminated block.
func (b *Builder) LoopMarkers(ts ...token.TokenType) *Builder {
	for _, t := range ts {
		b.p.loopMarkers[t] = struct{}{}
	}
	return b
}

// CondMarkers declares conditional keywords that do not open an
// END-terminated block.
func (b *Builder) CondMarkers(ts ...token.TokenType) *Builder {
	for _, t := range ts {
		b.p.condMarkers[t] = struct{}{}
	}
	return b
}

// Exception sets the exception-handler marker. after restricts the match to
// occurrences directly preceded by that token; pass 0 for any position.
func (b *Builder) Exception(marker, after token.TokenType) *Builder {
	b.p.exceptionMarker = marker
	b.p.exceptionAfter = after
	return b
}

// DynamicPair declares a two-keyword dynamic-SQL form (EXECUTE IMMEDIATE).
func (b *Builder) DynamicPair(first, second token.TokenType) *Builder {
	b.p.dynamicPairs = append(b.p.dynamicPairs, [2]token.TokenType{first, second})
	return b
}

// DynamicCalls declares dynamic-SQL entry points matched by name.
func (b *Builder) DynamicCalls(names ...string) *Builder {
	for _, n := range names {
		b.p.dynamicCalls[strings.ToLower(n)] = struct{}{}
	}
	return b
}

// DynamicExecParen marks EXECUTE('...') / EXEC('...') as dynamic SQL.
func (b *Builder) DynamicExecParen() *Builder {
	b.p.dynamicExecParen = true
	return b
}

// ControlStarters declares leading tokens that mark control statements.
func (b *Builder) ControlStarters(ts ...token.TokenType) *Builder {
	for _, t := range ts {
		b.p.controlStarters[t] = struct{}{}
	}
	return b
}

// Windows adds names to the window-function catalog.
func (b *Builder) Windows(names ...string) *Builder {
	for _, n := range names {
		b.p.windows[strings.ToLower(n)] = struct{}{}
	}
	return b
}

// Heavy adds names to the heavy native-function catalog.
func (b *Builder) Heavy(names ...string) *Builder {
	for _, n := range names {
		b.p.heavy[strings.ToLower(n)] = struct{}{}
	}
	return b
}

// HeavyPrefixes adds name prefixes (regexp_, json_) to the heavy catalog.
func (b *Builder) HeavyPrefixes(prefixes ...string) *Builder {
	for _, p := range prefixes {
		b.p.heavyPrefixes = append(b.p.heavyPrefixes, strings.ToLower(p))
	}
	return b
}

// Build finalizes the profile.
func (b *Builder) Build() *Profile {
	return b.p
}
