package parser

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ava12/gram/grammar"
	"github.com/ava12/gram/lexer"
	"github.com/ava12/gram/source"
)

// Token types produced by source lexer. Token type is not a terminal index,
// terminals are resolved by sourceLexer.terminal.
const (
	identToken = iota
	floatToken
	intToken
	stringToken
	punctToken
)

const eofTerminal = lexer.EofTokenType

// sourceLexer tokenizes sources written in the language described by a grammar.
type sourceLexer struct {
	lexer    *lexer.Lexer
	literals map[string]int
	classes  map[int]int
	boolean  int
}

func newSourceLexer(g *grammar.Grammar) *sourceLexer {
	sl := &sourceLexer{
		literals: make(map[string]int),
		classes: map[int]int{
			identToken:  g.TerminalIndex(grammar.Terminal{Kind: grammar.ClassTerminal, Text: grammar.IdentClass}),
			floatToken:  g.TerminalIndex(grammar.Terminal{Kind: grammar.ClassTerminal, Text: grammar.FloatClass}),
			intToken:    g.TerminalIndex(grammar.Terminal{Kind: grammar.ClassTerminal, Text: grammar.IntClass}),
			stringToken: g.TerminalIndex(grammar.Terminal{Kind: grammar.ClassTerminal, Text: grammar.StringClass}),
		},
		boolean: g.TerminalIndex(grammar.Terminal{Kind: grammar.ClassTerminal, Text: grammar.BoolClass}),
	}

	var puncts []string
	for i, t := range g.Terminals() {
		if t.Kind != grammar.LiteralTerminal {
			continue
		}
		sl.literals[t.Text] = i
		if !t.IsWord() {
			puncts = append(puncts, regexp.QuoteMeta(t.Text))
		}
	}
	sort.SliceStable(puncts, func(i, j int) bool {
		return len(puncts[i]) > len(puncts[j])
	})

	punctRe := `[^\s\S]`
	if len(puncts) > 0 {
		punctRe = strings.Join(puncts, "|")
	}

	re := regexp.MustCompile(
		`^(?:\s+|//[^\n]*|/\*(?s:.*?)\*/|` +
			`([A-Za-z_][A-Za-z_0-9]*)|` +
			`(\d+\.\d*)|` +
			`(\d+)|` +
			`("(?:[^"\\\n]|\\.)*")|` +
			`("[^\n]*|/\*(?s:.*))|` +
			`(` + punctRe + `))`)

	sl.lexer = lexer.New(re, []lexer.TokenType{
		{Type: identToken, TypeName: "identifier"},
		{Type: floatToken, TypeName: "float"},
		{Type: intToken, TypeName: "integer"},
		{Type: stringToken, TypeName: "string"},
		{Type: lexer.ErrorTokenType, TypeName: lexer.ErrorTokenName},
		{Type: punctToken, TypeName: "punctuator"},
	})
	return sl
}

func (sl *sourceLexer) scan(s *source.Source) *lexer.Scanner {
	return sl.lexer.Scan(s)
}

// terminal returns grammar terminal index matching t, eofTerminal, or -1 if the grammar has no such terminal.
func (sl *sourceLexer) terminal(t *lexer.Token) int {
	switch t.Type() {
	case lexer.EofTokenType:
		return eofTerminal

	case punctToken:
		if i, f := sl.literals[t.Text()]; f {
			return i
		}
		return -1

	case identToken:
		if i, f := sl.literals[t.Text()]; f {
			return i
		}
		if sl.boolean >= 0 && (t.Text() == "true" || t.Text() == "false") {
			return sl.boolean
		}
	}

	return sl.classes[t.Type()]
}
