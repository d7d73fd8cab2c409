package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/gram/grammar"
	"github.com/ava12/gram/langdef"
	"github.com/ava12/gram/source"
)

func TestSourceLexer(t *testing.T) {
	g, e := langdef.ParseString("scan", `
		stmt |> id ii fi si bi 'while' op $
		op |> + ++ += $
	`)
	require.NoError(t, e)

	sl := newSourceLexer(g)
	class := func(tag string) int {
		return g.TerminalIndex(grammar.Terminal{Kind: grammar.ClassTerminal, Text: tag})
	}
	literal := func(text string) int {
		return g.TerminalIndex(grammar.Terminal{Kind: grammar.LiteralTerminal, Text: text})
	}

	src := "while whiles // comment\n 12 1.5 \"s\\\"q\" true /* multi\nline */ +++= + unknown"
	expected := []struct {
		text     string
		terminal int
	}{
		{"while", literal("while")},
		{"whiles", class(grammar.IdentClass)},
		{"12", class(grammar.IntClass)},
		{"1.5", class(grammar.FloatClass)},
		{`"s\"q"`, class(grammar.StringClass)},
		{"true", class(grammar.BoolClass)},
		{"++", literal("++")},
		{"+=", literal("+=")},
		{"+", literal("+")},
		{"unknown", class(grammar.IdentClass)},
		{"", eofTerminal},
	}

	sc := sl.scan(source.NewString("src", src))
	for i, exp := range expected {
		tok, e := sc.Next()
		require.NoError(t, e, "token #%d", i)
		assert.Equal(t, exp.text, tok.Text(), "token #%d", i)
		assert.Equal(t, exp.terminal, sl.terminal(tok), "token #%d %q", i, tok.Text())
	}
}

func TestSourceLexerMissingClasses(t *testing.T) {
	g, e := langdef.ParseString("scan", "stmt |> ; $")
	require.NoError(t, e)

	sl := newSourceLexer(g)
	tokens, e := sl.lexer.Tokens(source.NewString("src", "; x 1"))
	require.NoError(t, e)
	require.Len(t, tokens, 4)
	assert.Equal(t, 0, sl.terminal(tokens[0]))
	assert.Equal(t, -1, sl.terminal(tokens[1]))
	assert.Equal(t, -1, sl.terminal(tokens[2]))
	assert.Equal(t, eofTerminal, sl.terminal(tokens[3]))
}
