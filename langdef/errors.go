package langdef

import (
	"github.com/ava12/gram"
	"github.com/ava12/gram/lexer"
)

// Error codes used by langdef:
const (
	// UnexpectedTokenError indicates a token that cannot start or continue a declaration.
	UnexpectedTokenError = gram.GrammarSyntaxErrors + iota

	// MissingDirectiveError indicates a rule name not followed by "->" or "|>".
	MissingDirectiveError

	// MissingEndError indicates a declaration not terminated with "$".
	MissingEndError

	// EmptyProductionError indicates a declaration with no symbols.
	EmptyProductionError

	// EpsilonMisuseError indicates "e" mixed with other symbols in a sequence production.
	EpsilonMisuseError

	// ReservedNameError indicates an attempt to declare a rule named "e" or after a token class.
	ReservedNameError
)

func unexpectedTokenError(t *lexer.Token, expected string) *gram.Error {
	return gram.FormatErrorPos(t, UnexpectedTokenError, "unexpected %s %q, expecting %s", t.TypeName(), t.Text(), expected).
		WithToken(t.Text())
}

func missingDirectiveError(name, t *lexer.Token) *gram.Error {
	return gram.FormatErrorPos(t, MissingDirectiveError, "expecting -> or |> after rule name %q, got %q", name.Text(), t.String()).
		WithRule(name.Text()).WithToken(t.Text())
}

func missingEndError(name, t *lexer.Token) *gram.Error {
	return gram.FormatErrorPos(t, MissingEndError, "missing $ at the end of rule %q declaration", name.Text()).
		WithRule(name.Text()).WithToken(t.Text())
}

func emptyProductionError(name *lexer.Token) *gram.Error {
	return gram.FormatErrorPos(name, EmptyProductionError, "empty declaration of rule %q", name.Text()).
		WithRule(name.Text())
}

func epsilonMisuseError(name, t *lexer.Token) *gram.Error {
	return gram.FormatErrorPos(t, EpsilonMisuseError, "e must be the only symbol of %q production", name.Text()).
		WithRule(name.Text()).WithToken(t.Text())
}

func reservedNameError(name *lexer.Token) *gram.Error {
	return gram.FormatErrorPos(name, ReservedNameError, "cannot declare rule named %q", name.Text()).
		WithRule(name.Text())
}
