package langdef

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/gram/grammar"
	"github.com/ava12/gram/internal/logging"
	"github.com/ava12/gram/internal/test"
	"github.com/ava12/gram/lexer"
)

func checkErrorCode(t *testing.T, samples []string, code int) {
	t.Helper()
	for index, src := range samples {
		_, e := ParseString("string", src)
		if code == 0 {
			require.NoError(t, e, "input #%d", index)
			continue
		}

		test.ExpectErrorCode(t, code, e)
	}
}

func TestValidSamples(t *testing.T) {
	samples := []string{
		"foo |> id $",
		"foo -> id ; $",
		"foo -> foo , id $ foo |> id $",
		"// comment\nfoo |> id /// doc\n ii $",
		"foo |> e id $",
		"foo -> e $ foo -> ( ) $",
		"foo -> '@' id \"#\" $",
		"foo -> bar $ bar |> if while $",
	}
	checkErrorCode(t, samples, 0)
}

func TestUnexpectedToken(t *testing.T) {
	samples := []string{
		"$",
		"-> foo $",
		"( |> id $",
		"'foo' |> id $",
	}
	checkErrorCode(t, samples, UnexpectedTokenError)
}

func TestMissingDirective(t *testing.T) {
	samples := []string{
		"foo",
		"foo id $",
		"foo $",
		"foo = id $",
	}
	checkErrorCode(t, samples, MissingDirectiveError)
}

func TestMissingEnd(t *testing.T) {
	samples := []string{
		"foo |> id",
		"foo -> id ;",
		"foo -> id\nbar -> id $",
		"foo |> id $ bar |> ii",
	}
	checkErrorCode(t, samples, MissingEndError)
}

func TestEmptyProduction(t *testing.T) {
	checkErrorCode(t, []string{"foo -> $", "foo |> $"}, EmptyProductionError)
}

func TestEpsilonMisuse(t *testing.T) {
	checkErrorCode(t, []string{"foo -> e id $", "foo -> id e $"}, EpsilonMisuseError)
}

func TestReservedName(t *testing.T) {
	checkErrorCode(t, []string{"e |> id $", "ii -> id $"}, ReservedNameError)
}

func TestLexicalErrors(t *testing.T) {
	checkErrorCode(t, []string{"foo -> 'id $", "foo -> \"bar $"}, lexer.BadTokenError)
	checkErrorCode(t, []string{"foo -> @ $", "foo -> # $"}, lexer.WrongCharError)
}

func TestSemanticErrors(t *testing.T) {
	checkErrorCode(t, []string{"", "// nothing"}, grammar.EmptyGrammarError)
	checkErrorCode(t, []string{"foo -> bar $"}, grammar.UndefinedRuleError)
	checkErrorCode(t, []string{"foo -> foo id $"}, grammar.NonTerminatingRuleError)
}

func TestErrorPosition(t *testing.T) {
	_, e := ParseString("src", "foo |> id $\nbar -> id\n  baz -> ii $")
	test.ExpectErrorCode(t, MissingEndError, e)
	ee := test.AsError(t, e)
	assert.Equal(t, "src", ee.SourceName)
	assert.Equal(t, 3, ee.Line)
	assert.Equal(t, 7, ee.Col)
	assert.Equal(t, "bar", ee.Rule)
}

func TestProductions(t *testing.T) {
	g, e := ParseString("src", `
list -> list , item $
list |> item e $
item -> '[' list ']' $
item |> id ii $
`)
	require.NoError(t, e)
	assert.Equal(t, "list", g.Root)

	list := g.Rule("list")
	require.NotNil(t, list)
	require.Len(t, list.Productions, 3)
	assert.True(t, list.IsRecursive())
	assert.True(t, list.Productions[0].IsRecursiveStep())
	assert.Equal(t, grammar.SequenceOrigin, list.Productions[0].Origin)
	assert.Equal(t, "list -> list , item", list.Productions[0].String())
	assert.Equal(t, grammar.AlternationOrigin, list.Productions[1].Origin)
	assert.True(t, list.Productions[2].IsEpsilon())
	assert.True(t, g.Nullable("list"))

	item := g.Rule("item")
	require.Len(t, item.Productions, 3)
	assert.False(t, item.IsRecursive())
	assert.Equal(t, "item -> [ list ]", item.Productions[0].String())
	assert.Equal(t, "item |> <id>", item.Productions[1].String())
	assert.Equal(t, []string{"[", "<id>", "<ii>"}, g.TerminalNames(g.First("item")))
	assert.Equal(t, 6, len(g.Productions()))
}

func TestAttachedEnd(t *testing.T) {
	g, e := ParseString("src", "list -> list item$ list |> item$ item |> id ii$")
	require.NoError(t, e)
	assert.Equal(t, "list -> list item", g.Rule("list").Productions[0].String())
	assert.Len(t, g.Rule("item").Productions, 2)

	g, e = ParseString("src", "x |> op$ op |> '$' $")
	require.NoError(t, e)
	assert.Equal(t, "op |> $", g.Rule("op").Productions[0].String())
}

func TestRootSelection(t *testing.T) {
	src := "foo |> bar $ bar |> id $ root_unit |> foo $"
	g, e := ParseString("src", src)
	require.NoError(t, e)
	assert.Equal(t, "root_unit", g.Root)

	g, e = ParseString("src", src, WithRoot("bar"))
	require.NoError(t, e)
	assert.Equal(t, "bar", g.Root)

	_, e = ParseString("src", src, WithRoot("qux"))
	test.ExpectErrorCode(t, grammar.UndefinedRuleError, e)
}

func TestProfile(t *testing.T) {
	p := grammar.DefaultProfile()
	p.Keywords = append(p.Keywords, "until")
	p.Punctuators = append(p.Punctuators, "@", "<-")

	_, e := ParseString("src", "loop -> until id $")
	test.ExpectErrorCode(t, grammar.UndefinedRuleError, e)

	g, e := ParseString("src", "loop -> until id <- @ $", WithProfile(p))
	require.NoError(t, e)
	syms := g.Rule("loop").Productions[0].Symbols
	require.Len(t, syms, 4)
	assert.Equal(t, grammar.Literal("until", syms[0].Pos).Terminal, syms[0].Terminal)
	assert.Equal(t, "<-", syms[2].Terminal.Text)
	assert.Equal(t, "@", syms[3].Terminal.Text)

	p.Punctuators = append(p.Punctuators, "")
	_, e = ParseString("src", "foo |> id $", WithProfile(p))
	assert.ErrorIs(t, e, grammar.ErrEmptyPunctuator)
}

func TestQuotedTerminals(t *testing.T) {
	g, e := ParseString("src", `foo -> '\'' "\\" '->' $`)
	require.NoError(t, e)
	syms := g.Rule("foo").Productions[0].Symbols
	require.Len(t, syms, 3)
	assert.Equal(t, "'", syms[0].Terminal.Text)
	assert.Equal(t, `\`, syms[1].Terminal.Text)
	assert.Equal(t, "->", syms[2].Terminal.Text)
}

func TestWarningsAreLogged(t *testing.T) {
	buf := &bytes.Buffer{}
	_, e := ParseString("src", "foo |> id $ bar |> ii $", WithLogger(logging.New(buf, "warn")))
	require.NoError(t, e)
	assert.Contains(t, buf.String(), "unreachable")
	assert.Contains(t, buf.String(), "rule=bar")
}
