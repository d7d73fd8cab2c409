package parser

import (
	"strings"

	"github.com/ava12/gram"
	"github.com/ava12/gram/lexer"
)

// Error codes used by parser:
const (
	// UnexpectedEofError indicates that source ended while more tokens were expected.
	UnexpectedEofError = gram.ParseErrors + iota

	// UnexpectedTokenError indicates that a production expects other token at current position.
	UnexpectedTokenError

	// NoMatchingAlternativeError indicates that no alternative of a non-nullable rule starts with current token.
	NoMatchingAlternativeError

	// StackLimitError indicates that input nesting exceeds parser depth limit.
	StackLimitError

	// UnknownRuleError indicates that requested root rule is not defined in grammar.
	UnknownRuleError

	// NoProgressError indicates that a rule is re-entered at the same token, i.e. the grammar loops.
	NoProgressError

	// BadLiteralError indicates that a literal token cannot be decoded (e.g. integer overflow).
	BadLiteralError

	// UnvalidatedGrammarError indicates an attempt to compile grammar that has not passed validation.
	UnvalidatedGrammarError
)

func expecting(expected []string) string {
	if len(expected) == 0 {
		return ""
	}
	return ", expecting " + strings.Join(expected, " or ")
}

func unexpectedEofError(t *lexer.Token, rule string, expected []string) *gram.Error {
	return gram.FormatErrorPos(t, UnexpectedEofError, "unexpected end of input in %s%s", rule, expecting(expected)).
		WithRule(rule)
}

func unexpectedTokenError(t *lexer.Token, rule string, expected []string) *gram.Error {
	return gram.FormatErrorPos(t, UnexpectedTokenError, "unexpected %q in %s%s", t.Text(), rule, expecting(expected)).
		WithRule(rule).WithToken(t.Text())
}

func noMatchingAlternativeError(t *lexer.Token, rule string, expected []string) *gram.Error {
	return gram.FormatErrorPos(t, NoMatchingAlternativeError, "no alternative of %s starts with %q%s", rule, t.Text(), expecting(expected)).
		WithRule(rule).WithToken(t.Text())
}

func stackLimitError(t *lexer.Token, rule string, limit int) *gram.Error {
	return gram.FormatErrorPos(t, StackLimitError, "nesting depth limit (%d) exceeded in %s", limit, rule).
		WithRule(rule).WithToken(t.Text())
}

func unknownRuleError(name string) *gram.Error {
	return gram.FormatError(UnknownRuleError, "unknown rule %q", name).WithRule(name)
}

func noProgressError(t *lexer.Token, rule string) *gram.Error {
	return gram.FormatErrorPos(t, NoProgressError, "rule %s re-entered without consuming input", rule).
		WithRule(rule).WithToken(t.Text())
}

func badLiteralError(t *lexer.Token, e error) *gram.Error {
	return gram.FormatErrorPos(t, BadLiteralError, "bad literal: %s", e.Error()).WithToken(t.Text())
}

func unvalidatedGrammarError(name string) *gram.Error {
	return gram.FormatError(UnvalidatedGrammarError, "grammar %q is not validated", name)
}
