package lexer

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/gram/internal/test"
	"github.com/ava12/gram/source"
)

var (
	tokenRe      = regexp.MustCompile(`(?s:[\s]+|(\d+)|([a-z_][a-z0-9_]*)|('.*?')|('.{0,10}))`)
	tokenTypes   = []TokenType{{1, "number"}, {2, "name"}, {3, "string"}, {-1, ""}}
	tokenSamples = "123 foo 'bar'"
)

func newLexer() *Lexer {
	return New(tokenRe, tokenTypes)
}

func TestEmpty(t *testing.T) {
	sources := []string{"", " ", "  ", " \t\r\n "}
	for _, src := range sources {
		tok, e := newLexer().Scan(source.NewString("", src)).Next()
		require.NoError(t, e, "source %q", src)
		assert.True(t, tok.IsEof(), "source %q", src)
		assert.Equal(t, EofTokenName, tok.TypeName())
	}
}

func TestTokenSamples(t *testing.T) {
	toks, e := newLexer().Tokens(source.NewString("", tokenSamples))
	require.NoError(t, e)
	require.Len(t, toks, 4)

	for i, tokType := range tokenTypes[:3] {
		assert.Equal(t, tokType.TypeName, toks[i].TypeName())
		assert.Equal(t, tokType.Type, toks[i].Type())
	}
	assert.Equal(t, "'bar'", toks[2].Text())
	assert.Equal(t, 9, toks[2].Col())
	assert.True(t, toks[3].IsEof())
}

func TestScanIsRestartable(t *testing.T) {
	l := newLexer()
	src := source.NewString("", tokenSamples)
	first, e := l.Scan(src).Next()
	require.NoError(t, e)
	again, e := l.Scan(src).Next()
	require.NoError(t, e)
	assert.Equal(t, first.Text(), again.Text())
	assert.Equal(t, "123", again.Text())
}

func TestBrokenToken(t *testing.T) {
	tok, e := newLexer().Scan(source.NewString("src", "\n  '*  *")).Next()
	assert.Nil(t, tok)
	test.ExpectErrorCode(t, BadTokenError, e)
	ee := test.AsError(t, e)
	assert.Equal(t, 2, ee.Line)
	assert.Equal(t, 3, ee.Col)
	assert.Contains(t, ee.Message, `"'*  *"`)
}

func TestWrongChar(t *testing.T) {
	sc := newLexer().Scan(source.NewString("src", "foo\n 12 #"))
	for i := 0; i < 2; i++ {
		_, e := sc.Next()
		require.NoError(t, e)
	}

	_, e := sc.Next()
	test.ExpectErrorCode(t, WrongCharError, e)
	ee := test.AsError(t, e)
	assert.Equal(t, 2, ee.Line)
	assert.Equal(t, 5, ee.Col)
	assert.Equal(t, "#", ee.Token)
}
