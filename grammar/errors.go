package grammar

import (
	"github.com/ava12/gram"
)

// Error codes used by grammar validation:
const (
	// UndefinedRuleError indicates a reference to identifier that is neither a rule, nor a keyword, nor a token class.
	UndefinedRuleError = gram.GrammarSemanticErrors + iota

	// NonTerminatingRuleError indicates a rule having no terminal-only derivation.
	NonTerminatingRuleError

	// PrecedenceCycleError indicates that the chain of expression layers revisits a rule.
	PrecedenceCycleError

	// AmbiguityError indicates malformed matched/open rule pair.
	AmbiguityError

	// EmptyGrammarError indicates a grammar with no rules.
	EmptyGrammarError
)

func undefinedRuleError(s Symbol, rule string) *gram.Error {
	return gram.FormatErrorPos(s.Pos, UndefinedRuleError, "undefined rule %q referenced from %q", s.Name, rule).
		WithRule(s.Name).WithToken(s.Name)
}

func undefinedRootError(name string) *gram.Error {
	return gram.FormatError(UndefinedRuleError, "undefined root rule %q", name).WithRule(name)
}

func nonTerminatingRuleError(r *Rule, reason string) *gram.Error {
	return gram.FormatErrorPos(r.Pos, NonTerminatingRuleError, "rule %q %s", r.Name, reason).WithRule(r.Name)
}

func precedenceCycleError(r *Rule, path []string) *gram.Error {
	return gram.FormatErrorPos(r.Pos, PrecedenceCycleError, "precedence chain revisits rule %q: %v", r.Name, path).WithRule(r.Name)
}

func ambiguityError(r *Rule, msg string, params ...any) *gram.Error {
	e := gram.FormatErrorPos(r.Pos, AmbiguityError, "rule %q: "+msg, append([]any{r.Name}, params...)...)
	return e.WithRule(r.Name)
}

func emptyGrammarError(name string) *gram.Error {
	return gram.FormatError(EmptyGrammarError, "grammar %q has no rules", name)
}
