package gram

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPos struct {
	name      string
	line, col int
}

func (p testPos) SourceName() string { return p.name }
func (p testPos) Line() int          { return p.line }
func (p testPos) Col() int           { return p.col }

func TestErrorMessages(t *testing.T) {
	samples := []struct {
		e   *Error
		msg string
	}{
		{FormatError(GrammarSyntaxErrors, "plain"), "plain"},
		{FormatError(ParseErrors, "rule %q", "expr"), `rule "expr"`},
		{FormatErrorPos(testPos{"src", 2, 5}, LexicalErrors, "char %c", 'x'), "char x in src at line 2 col 5"},
		{FormatErrorPos(testPos{"", 3, 1}, LexicalErrors, "char"), "char at line 3 col 1"},
		{NewError(1, "msg", "src", 0, 0), "msg"},
	}

	for i, s := range samples {
		assert.Equal(t, s.msg, s.e.Error(), "sample #%d", i)
	}
}

func TestClass(t *testing.T) {
	assert.Equal(t, GrammarSyntaxErrors, Class(GrammarSyntaxErrors+5))
	assert.Equal(t, LexicalErrors, Class(LexicalErrors))
	assert.Equal(t, GrammarSemanticErrors, Class(GrammarSemanticErrors+98))
	assert.Equal(t, ParseErrors, Class(ParseErrors+1))
	assert.Equal(t, 0, Class(0))
}

func TestWrappedErrors(t *testing.T) {
	e := FormatError(ParseErrors+2, "unexpected").WithRule("expr").WithToken(")")
	wrapped := fmt.Errorf("parsing input: %w", e)

	require.True(t, IsClass(wrapped, ParseErrors))
	assert.False(t, IsClass(wrapped, LexicalErrors))
	assert.Equal(t, ParseErrors+2, Code(wrapped))
	assert.Equal(t, 0, Code(fmt.Errorf("other")))
	assert.Equal(t, "expr", e.Rule)
	assert.Equal(t, ")", e.Token)
}
