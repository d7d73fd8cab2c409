// Package grammar defines grammar model used by langdef and parser,
// grammar analysis (nullable rules, FIRST sets) and grammar validation.
package grammar

import (
	"strings"

	"github.com/ava12/gram/internal/ints"
	"github.com/ava12/gram/source"
)

// Token class tags usable as terminals in rule notation.
const (
	IdentClass  = "id"
	IntClass    = "ii"
	FloatClass  = "fi"
	StringClass = "si"
	BoolClass   = "bi"
)

// Classes lists all token class tags.
var Classes = []string{IdentClass, IntClass, FloatClass, StringClass, BoolClass}

// IsClass reports whether name is a token class tag.
func IsClass(name string) bool {
	for _, c := range Classes {
		if c == name {
			return true
		}
	}
	return false
}

// Epsilon is the notation of the empty alternative.
const Epsilon = "e"

type TerminalKind int

const (
	LiteralTerminal TerminalKind = iota
	ClassTerminal
)

// Terminal is an atomic lexeme: literal text (keyword, punctuator) or token class.
type Terminal struct {
	Kind TerminalKind
	Text string
}

func (t Terminal) String() string {
	if t.Kind == ClassTerminal {
		return "<" + t.Text + ">"
	}
	return t.Text
}

// IsWord reports whether t is a literal terminal looking like an identifier (i.e. a keyword).
func (t Terminal) IsWord() bool {
	if t.Kind != LiteralTerminal || t.Text == "" {
		return false
	}
	for i, r := range t.Text {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || i > 0 && r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

type SymbolKind int

const (
	// NameSymbol is an identifier not resolved yet, it exists only before validation.
	NameSymbol SymbolKind = iota
	RuleSymbol
	TerminalSymbol
	EpsilonSymbol
)

// Symbol is an element of production.
type Symbol struct {
	Kind     SymbolKind
	Name     string
	Terminal Terminal
	Pos      source.Pos
}

// NameRef creates unresolved identifier symbol.
func NameRef(name string, pos source.Pos) Symbol {
	return Symbol{Kind: NameSymbol, Name: name, Pos: pos}
}

// RuleRef creates rule reference symbol.
func RuleRef(name string, pos source.Pos) Symbol {
	return Symbol{Kind: RuleSymbol, Name: name, Pos: pos}
}

// Literal creates literal terminal symbol.
func Literal(text string, pos source.Pos) Symbol {
	return Symbol{Kind: TerminalSymbol, Name: text, Terminal: Terminal{LiteralTerminal, text}, Pos: pos}
}

// Class creates token class terminal symbol.
func Class(tag string, pos source.Pos) Symbol {
	return Symbol{Kind: TerminalSymbol, Name: tag, Terminal: Terminal{ClassTerminal, tag}, Pos: pos}
}

// EpsilonSym creates epsilon symbol.
func EpsilonSym(pos source.Pos) Symbol {
	return Symbol{Kind: EpsilonSymbol, Name: Epsilon, Pos: pos}
}

func (s Symbol) String() string {
	switch s.Kind {
	case TerminalSymbol:
		return s.Terminal.String()
	default:
		return s.Name
	}
}

// Origin tells which directive a production comes from.
type Origin int

const (
	// SequenceOrigin marks "name -> a b c $" productions.
	SequenceOrigin Origin = iota
	// AlternationOrigin marks each alternative of "name |> a b c $".
	AlternationOrigin
)

func (o Origin) String() string {
	if o == AlternationOrigin {
		return "|>"
	}
	return "->"
}

// Production is one alternative expansion of a rule.
type Production struct {
	// Rule is the owning rule name.
	Rule string
	// Index is the production number in declaration order across the whole grammar.
	Index   int
	Origin  Origin
	Symbols []Symbol
	Pos     source.Pos
}

// IsRecursiveStep reports whether p is a "->" production starting with its own rule.
func (p *Production) IsRecursiveStep() bool {
	return p.Origin == SequenceOrigin && len(p.Symbols) > 0 &&
		p.Symbols[0].Kind == RuleSymbol && p.Symbols[0].Name == p.Rule
}

// IsBase reports whether p is not a recursive step.
func (p *Production) IsBase() bool {
	return !p.IsRecursiveStep()
}

func (p *Production) IsEpsilon() bool {
	return len(p.Symbols) == 1 && p.Symbols[0].Kind == EpsilonSymbol
}

// IsUnit reports whether p consists of a single rule reference.
func (p *Production) IsUnit() bool {
	return len(p.Symbols) == 1 && p.Symbols[0].Kind == RuleSymbol
}

func (p *Production) String() string {
	parts := make([]string, 0, len(p.Symbols)+2)
	parts = append(parts, p.Rule, p.Origin.String())
	for _, s := range p.Symbols {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, " ")
}

// Rule is a named non-terminal with its productions in declaration order.
type Rule struct {
	Name        string
	Index       int
	Pos         source.Pos
	Productions []*Production
}

// IsRecursive reports whether r has a recursive-step production.
func (r *Rule) IsRecursive() bool {
	for _, p := range r.Productions {
		if p.IsRecursiveStep() {
			return true
		}
	}
	return false
}

// IsOperator reports whether every alternative of r is a single literal terminal.
func (r *Rule) IsOperator() bool {
	if len(r.Productions) == 0 {
		return false
	}
	for _, p := range r.Productions {
		if len(p.Symbols) != 1 || p.Symbols[0].Kind != TerminalSymbol || p.Symbols[0].Terminal.Kind != LiteralTerminal {
			return false
		}
	}
	return true
}

// BaseProductions returns productions that are not recursive steps.
func (r *Rule) BaseProductions() []*Production {
	var res []*Production
	for _, p := range r.Productions {
		if p.IsBase() {
			res = append(res, p)
		}
	}
	return res
}

// Grammar is a set of rules with distinguished root rule.
// Grammar is built by langdef and becomes immutable after Validate.
type Grammar struct {
	Name string
	Root string

	rules       []*Rule
	ruleIndex   map[string]*Rule
	productions []*Production

	validated     bool
	terminals     []Terminal
	terminalIndex map[Terminal]int
	nullable      []bool
	first         []*ints.Set
	unitClosure   []*ints.Set
	leftCorners   []*ints.Set

	// Chain is the precedence chain of expression rules or nil if expression root is not declared.
	Chain *PrecedenceChain
	// DanglingPairs lists detected matched/open rule pairs.
	DanglingPairs []*DanglingPair
	// Conflicts lists alternatives resolved by declaration order only.
	Conflicts []Conflict
}

// New creates empty unvalidated grammar.
func New(name string) *Grammar {
	return &Grammar{Name: name, ruleIndex: make(map[string]*Rule)}
}

// AddProduction appends production to named rule, declaring the rule if needed.
// Must not be called after validation.
func (g *Grammar) AddProduction(rule string, origin Origin, symbols []Symbol, pos source.Pos) *Production {
	r := g.ruleIndex[rule]
	if r == nil {
		r = &Rule{Name: rule, Index: len(g.rules), Pos: pos}
		g.rules = append(g.rules, r)
		g.ruleIndex[rule] = r
	}

	p := &Production{Rule: rule, Index: len(g.productions), Origin: origin, Symbols: symbols, Pos: pos}
	r.Productions = append(r.Productions, p)
	g.productions = append(g.productions, p)
	return p
}

// Rules returns rules in declaration order.
func (g *Grammar) Rules() []*Rule {
	return g.rules
}

// Rule returns named rule or nil.
func (g *Grammar) Rule(name string) *Rule {
	return g.ruleIndex[name]
}

// Productions returns all productions in declaration order.
func (g *Grammar) Productions() []*Production {
	return g.productions
}

// IsValidated reports whether g has passed Validate.
func (g *Grammar) IsValidated() bool {
	return g.validated
}

// Terminals returns terminals in order of first appearance, terminal index is its position.
func (g *Grammar) Terminals() []Terminal {
	return g.terminals
}

// TerminalIndex returns index of t or -1.
func (g *Grammar) TerminalIndex(t Terminal) int {
	i, f := g.terminalIndex[t]
	if !f {
		return -1
	}
	return i
}

// Nullable reports whether named rule derives empty string.
func (g *Grammar) Nullable(rule string) bool {
	r := g.ruleIndex[rule]
	return r != nil && g.nullable != nil && g.nullable[r.Index]
}

// First returns FIRST set (terminal indexes) of named rule. Result must not be modified.
func (g *Grammar) First(rule string) *ints.Set {
	r := g.ruleIndex[rule]
	if r == nil || g.first == nil {
		return ints.NewSet()
	}
	return g.first[r.Index]
}

// FirstOf returns FIRST set of symbol string and reports whether the whole string is nullable.
func (g *Grammar) FirstOf(symbols []Symbol) (*ints.Set, bool) {
	res := ints.NewSet()
	for _, s := range symbols {
		switch s.Kind {
		case EpsilonSymbol:
			continue
		case TerminalSymbol:
			res.Add(g.TerminalIndex(s.Terminal))
			return res, false
		case RuleSymbol:
			r := g.ruleIndex[s.Name]
			res.Union(g.first[r.Index])
			if !g.nullable[r.Index] {
				return res, false
			}
		}
	}
	return res, true
}

// UnitDerives reports whether rule from derives rule to using only single-rule alternatives
// (zero steps included).
func (g *Grammar) UnitDerives(from, to string) bool {
	f, t := g.ruleIndex[from], g.ruleIndex[to]
	return f != nil && t != nil && g.unitClosure != nil && g.unitClosure[f.Index].Contains(t.Index)
}

// UnitClosure returns indexes of rules unit-derived from named rule. Result must not be modified.
func (g *Grammar) UnitClosure(rule string) *ints.Set {
	r := g.ruleIndex[rule]
	if r == nil || g.unitClosure == nil {
		return ints.NewSet()
	}
	return g.unitClosure[r.Index]
}

// TerminalNames converts a set of terminal indexes to sorted readable names.
func (g *Grammar) TerminalNames(set *ints.Set) []string {
	items := set.ToSlice()
	res := make([]string, 0, len(items))
	for _, i := range items {
		if i < len(g.terminals) {
			res = append(res, g.terminals[i].String())
		}
	}
	return res
}

// PrecedenceChain is the sequence of expression layers ordered from lowest to highest binding strength.
type PrecedenceChain struct {
	// Layers contain rules having operator productions.
	Layers []*Rule
	// Primary is the rule terminating the chain.
	Primary *Rule
}

// Names returns layer names followed by the primary rule name.
func (c *PrecedenceChain) Names() []string {
	res := make([]string, 0, len(c.Layers)+1)
	for _, r := range c.Layers {
		res = append(res, r.Name)
	}
	if c.Primary != nil {
		res = append(res, c.Primary.Name)
	}
	return res
}

// DanglingPair describes rules implementing optional terminator, like matched/open if statements:
//
//	matched -> prefix matched terminator matched
//	open -> prefix branch
//	open -> prefix matched terminator open
type DanglingPair struct {
	Matched, Open *Rule
	// Prefix is the common leading symbols, the first one is a terminal.
	Prefix []Symbol
	// Terminator is the optional terminal binding to the nearest opener.
	Terminator Terminal
	// Branch is the rule parsed as branch of both forms.
	Branch *Rule
	// MatchedProduction, OpenProduction, and ChainProduction are the three productions
	// of the pair in the order shown above.
	MatchedProduction, OpenProduction, ChainProduction *Production
}

// Conflict describes alternatives sharing the same lookahead, resolved by declaration order.
type Conflict struct {
	Rule      string
	Preferred *Production
	Shadowed  *Production
	Terminals []string
}

// RuleAt returns rule with given index or nil.
func (g *Grammar) RuleAt(index int) *Rule {
	if index < 0 || index >= len(g.rules) {
		return nil
	}
	return g.rules[index]
}
