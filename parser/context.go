package parser

import (
	"github.com/ava12/gram/ast"
	"github.com/ava12/gram/grammar"
	"github.com/ava12/gram/internal/ints"
	"github.com/ava12/gram/lexer"
	"github.com/ava12/gram/source"
)

type activation struct {
	rule, token int
}

// ParseContext holds the state of a single parse call: token cursor, nesting depth and active rules.
type ParseContext struct {
	parser   *Parser
	scanner  *lexer.Scanner
	token    *lexer.Token
	terminal int
	index    int
	depth    int
	active   map[activation]bool
}

func newParseContext(p *Parser, s *source.Source) (*ParseContext, error) {
	pc := &ParseContext{
		parser:  p,
		scanner: p.lexer.scan(s),
		active:  make(map[activation]bool),
	}
	return pc, pc.next()
}

func (pc *ParseContext) next() error {
	t, e := pc.scanner.Next()
	if e != nil {
		return e
	}

	pc.token = t
	pc.terminal = pc.parser.lexer.terminal(t)
	pc.index++
	return nil
}

func (pc *ParseContext) parse(root *grammar.Rule) (ast.Node, error) {
	v, _, e := pc.parseRule(root.Index)
	if e != nil {
		return nil, e
	}

	if pc.terminal != eofTerminal {
		return nil, unexpectedTokenError(pc.token, root.Name, []string{lexer.EofTokenName})
	}

	if v.IsOp() {
		return &ast.Literal{Span: ast.Span{Start: v.Pos}, Kind: ast.SymbolLiteral, Value: v.Op, Raw: v.Op}, nil
	}
	return v.Node, nil
}

// consume returns current token as a value of terminal t and fetches the next one.
func (pc *ParseContext) consume(t grammar.Terminal) (ast.Value, error) {
	tok := pc.token
	v := ast.OpValue(tok.Text(), tok.Pos())
	if t.Kind == grammar.ClassTerminal {
		n, e := ast.NewLeaf(t.Text, tok.Text(), tok.Pos())
		if e != nil {
			return v, badLiteralError(tok, e)
		}
		v = ast.NodeValue(n)
	}

	return v, pc.next()
}

// parseRule parses rule with given index and returns its value and the category
// (the rule actually reduced last, unit-derivable from the requested one).
func (pc *ParseContext) parseRule(ri int) (ast.Value, int, error) {
	proc := pc.parser.procs[ri]
	if proc.kind == operatorProc {
		if !proc.first.Contains(pc.terminal) {
			return ast.Value{}, ri, pc.noMatch(proc)
		}

		t := pc.token
		return ast.OpValue(t.Text(), t.Pos()), ri, pc.next()
	}

	if pc.depth >= pc.parser.maxDepth {
		return ast.Value{}, ri, stackLimitError(pc.token, proc.rule.Name, pc.parser.maxDepth)
	}

	key := activation{ri, pc.index}
	if pc.active[key] {
		return ast.Value{}, ri, noProgressError(pc.token, proc.rule.Name)
	}

	pc.active[key] = true
	pc.depth++
	defer func() {
		delete(pc.active, key)
		pc.depth--
	}()

	start := pc.token.Pos()
	v, cat, e := pc.seed(proc, start)
	if e != nil {
		return v, cat, e
	}

	return pc.grow(proc, start, v, cat)
}

func (pc *ParseContext) seed(proc *procedure, start source.Pos) (ast.Value, int, error) {
	if s, f := proc.seeds[pc.terminal]; f {
		switch {
		case s.dangling != nil:
			return pc.parseDangling(s.dangling, start)

		case s.op:
			v, e := pc.consume(s.prod.Symbols[0].Terminal)
			return v, s.rule, e

		default:
			values, e := pc.parseSymbols(s.prod.Rule, s.prod.Symbols)
			if e != nil {
				return ast.Value{}, s.rule, e
			}
			return pc.build(s.prod, start, values), s.rule, nil
		}
	}

	for _, ri := range proc.epsilons {
		if pc.parser.units[proc.rule.Index].Contains(ri) || pc.findGrowth(proc, ri) != nil {
			return pc.empty(ri, start), ri, nil
		}
	}

	return ast.Value{}, proc.rule.Index, pc.noMatch(proc)
}

// grow extends value of category cat while a growth step accepts current token.
// Growth steps with nullable tails are applied at most once each between consumed tokens.
func (pc *ParseContext) grow(proc *procedure, start source.Pos, v ast.Value, cat int) (ast.Value, int, error) {
	units := pc.parser.units
	tails := ints.NewSet()
	for {
		if g := pc.findGrowth(proc, cat); g != nil {
			values, e := pc.parseSymbols(g.prod.Rule, g.prod.Symbols[1:])
			if e != nil {
				return v, cat, e
			}

			v = pc.build(g.prod, start, append([]ast.Value{leading(v, cat, g)}, values...))
			cat = g.rule
			tails = ints.NewSet()
			continue
		}

		if units[proc.rule.Index].Contains(cat) {
			return v, cat, nil
		}

		i := pc.findTail(proc, cat, tails)
		if i < 0 {
			return v, cat, pc.unexpected(proc, cat)
		}

		tails.Add(i)
		g := &proc.growths[i]
		values := []ast.Value{leading(v, cat, g)}
		for _, s := range g.prod.Symbols[1:] {
			if s.Kind == grammar.RuleSymbol {
				values = append(values, pc.empty(pc.parser.grammar.Rule(s.Name).Index, pc.token.Pos()))
			}
		}
		v = pc.build(g.prod, start, values)
		cat = g.rule
	}
}

// leading returns v as the first value of growth step g. v keeps its list items
// only when it is a list of the rule being grown.
func leading(v ast.Value, cat int, g *growth) ast.Value {
	if cat != g.rule {
		return v.Element()
	}
	return v
}

func (pc *ParseContext) findGrowth(proc *procedure, cat int) *growth {
	units := pc.parser.units
	for i := range proc.growths {
		g := &proc.growths[i]
		if g.first.Contains(pc.terminal) && units[g.corner].Contains(cat) {
			return g
		}
	}
	return nil
}

func (pc *ParseContext) findTail(proc *procedure, cat int, visited *ints.Set) int {
	units := pc.parser.units
	for i, g := range proc.growths {
		if g.nullable && !visited.Contains(i) && units[g.corner].Contains(cat) {
			return i
		}
	}
	return -1
}

// parseDangling parses merged matched/open productions: prefix, branch, and optional terminator with the other branch.
// The terminator always binds to the innermost prefix.
func (pc *ParseContext) parseDangling(d *danglingSeed, start source.Pos) (ast.Value, int, error) {
	pair := d.pair
	values, e := pc.parseSymbols(pair.Open.Name, pair.Prefix)
	if e != nil {
		return ast.Value{}, d.open, e
	}

	then, thenCat, e := pc.parseRule(d.branch)
	if e != nil {
		return ast.Value{}, d.open, e
	}

	values = append(values, then)
	if pc.terminal != d.terminator {
		return pc.build(pair.OpenProduction, start, values), d.open, nil
	}

	units := pc.parser.units
	if !units[d.matched].Contains(thenCat) {
		return ast.Value{}, d.open, unexpectedTokenError(pc.token, pair.Matched.Name, nil)
	}

	term, e := pc.consume(pair.Terminator)
	if e != nil {
		return ast.Value{}, d.open, e
	}

	other, otherCat, e := pc.parseRule(d.branch)
	if e != nil {
		return ast.Value{}, d.open, e
	}

	values = append(values, term, other)
	if units[d.matched].Contains(otherCat) {
		return pc.build(pair.MatchedProduction, start, values), d.matched, nil
	}
	return pc.build(pair.ChainProduction, start, values), d.open, nil
}

func (pc *ParseContext) parseSymbols(rule string, symbols []grammar.Symbol) ([]ast.Value, error) {
	g := pc.parser.grammar
	values := make([]ast.Value, 0, len(symbols))
	for _, s := range symbols {
		switch s.Kind {
		case grammar.TerminalSymbol:
			if pc.terminal != g.TerminalIndex(s.Terminal) {
				return nil, pc.expected(rule, []string{s.Terminal.String()})
			}

			v, e := pc.consume(s.Terminal)
			if e != nil {
				return nil, e
			}
			values = append(values, v)

		case grammar.RuleSymbol:
			v, _, e := pc.parseRule(g.Rule(s.Name).Index)
			if e != nil {
				return nil, e
			}
			values = append(values, v)
		}
	}
	return values, nil
}

func (pc *ParseContext) build(prod *grammar.Production, pos source.Pos, values []ast.Value) ast.Value {
	return pc.parser.kinds[prod.Index].Build(pos, values)
}

// empty builds value of nullable rule without consuming tokens.
func (pc *ParseContext) empty(ri int, pos source.Pos) ast.Value {
	prod := pc.parser.empties[ri]
	values := make([]ast.Value, 0, len(prod.Symbols))
	for _, s := range prod.Symbols {
		if s.Kind == grammar.RuleSymbol {
			values = append(values, pc.empty(pc.parser.grammar.Rule(s.Name).Index, pos))
		}
	}
	return pc.build(prod, pos, values)
}

func (pc *ParseContext) expected(rule string, expected []string) error {
	if pc.terminal == eofTerminal {
		return unexpectedEofError(pc.token, rule, expected)
	}
	return unexpectedTokenError(pc.token, rule, expected)
}

func (pc *ParseContext) noMatch(proc *procedure) error {
	expected := pc.parser.grammar.TerminalNames(proc.first)
	if pc.terminal == eofTerminal {
		return unexpectedEofError(pc.token, proc.rule.Name, expected)
	}
	return noMatchingAlternativeError(pc.token, proc.rule.Name, expected)
}

// unexpected reports token that neither extends category cat nor completes the rule of proc.
func (pc *ParseContext) unexpected(proc *procedure, cat int) error {
	set := ints.NewSet()
	for _, g := range proc.growths {
		if pc.parser.units[g.corner].Contains(cat) {
			set.Union(g.first)
		}
	}
	return pc.expected(proc.rule.Name, pc.parser.grammar.TerminalNames(set))
}
