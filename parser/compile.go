package parser

import (
	"github.com/ava12/gram/ast"
	"github.com/ava12/gram/grammar"
	"github.com/ava12/gram/internal/ints"
)

type procKind int

const (
	// operatorProc matches a single literal terminal of an operator rule.
	operatorProc procKind = iota
	// cornerProc parses a seed and grows it through left-recursive productions.
	cornerProc
)

// seed starts a parse: a production beginning with a terminal,
// an operator terminal, or a merged dangling pair.
type seed struct {
	prod     *grammar.Production
	rule     int
	op       bool
	dangling *danglingSeed
}

// growth is a production "X β" where X is a rule: once X is parsed, β extends it to the production rule.
type growth struct {
	prod     *grammar.Production
	corner   int
	rule     int
	first    *ints.Set
	nullable bool
}

type danglingSeed struct {
	pair               *grammar.DanglingPair
	matched, open      int
	branch, terminator int
}

type procedure struct {
	kind     procKind
	rule     *grammar.Rule
	first    *ints.Set
	seeds    map[int]seed
	epsilons []int
	growths  []growth
}

func (p *Parser) compile() {
	g := p.grammar
	prods := g.Productions()
	p.kinds = make([]ast.Kind, len(prods))
	for _, prod := range prods {
		p.kinds[prod.Index] = ast.Classify(prod, g)
	}

	rules := g.Rules()
	p.units = make([]*ints.Set, len(rules))
	for _, r := range rules {
		p.units[r.Index] = g.UnitClosure(r.Name)
	}

	p.computeEmpties()

	p.dangling = make(map[*grammar.Production]*danglingSeed)
	for _, pair := range g.DanglingPairs {
		ds := &danglingSeed{
			pair:       pair,
			matched:    pair.Matched.Index,
			open:       pair.Open.Index,
			branch:     pair.Branch.Index,
			terminator: g.TerminalIndex(pair.Terminator),
		}
		p.dangling[pair.MatchedProduction] = ds
		p.dangling[pair.OpenProduction] = ds
		p.dangling[pair.ChainProduction] = ds
	}

	shadowed := make(map[[2]int]bool)
	p.procs = make([]*procedure, len(rules))
	for _, r := range rules {
		p.procs[r.Index] = p.compileRule(r, shadowed)
	}
}

// computeEmpties chooses for each nullable rule the production used to build its empty value.
func (p *Parser) computeEmpties() {
	g := p.grammar
	p.empties = make([]*grammar.Production, len(g.Rules()))
	for changed := true; changed; {
		changed = false
		for _, r := range g.Rules() {
			if p.empties[r.Index] != nil || !g.Nullable(r.Name) {
				continue
			}

			for _, prod := range r.Productions {
				if p.derivesEmpty(prod) {
					p.empties[r.Index] = prod
					changed = true
					break
				}
			}
		}
	}
}

func (p *Parser) derivesEmpty(prod *grammar.Production) bool {
	for _, s := range prod.Symbols {
		switch s.Kind {
		case grammar.TerminalSymbol:
			return false
		case grammar.RuleSymbol:
			if p.empties[p.grammar.Rule(s.Name).Index] == nil {
				return false
			}
		}
	}
	return true
}

func (p *Parser) compileRule(r *grammar.Rule, shadowed map[[2]int]bool) *procedure {
	g := p.grammar
	proc := &procedure{rule: r, first: g.First(r.Name)}
	if r.IsOperator() {
		proc.kind = operatorProc
		return proc
	}

	proc.kind = cornerProc
	proc.seeds = make(map[int]seed)
	scope := g.LeftCorners(r.Name)
	for _, prod := range g.Productions() {
		owner := g.Rule(prod.Rule)
		if !scope.Contains(owner.Index) || len(prod.Symbols) == 0 {
			continue
		}

		first := prod.Symbols[0]
		switch first.Kind {
		case grammar.TerminalSymbol:
			s := seed{prod: prod, rule: owner.Index, op: owner.IsOperator(), dangling: p.dangling[prod]}
			p.addSeed(proc, g.TerminalIndex(first.Terminal), s, shadowed)

		case grammar.RuleSymbol:
			if len(prod.Symbols) < 2 {
				continue
			}
			set, nullable := g.FirstOf(prod.Symbols[1:])
			proc.growths = append(proc.growths, growth{
				prod:     prod,
				corner:   g.Rule(first.Name).Index,
				rule:     owner.Index,
				first:    set,
				nullable: nullable,
			})
		}
	}

	for _, i := range scope.ToSlice() {
		if p.empties[i] != nil {
			proc.epsilons = append(proc.epsilons, i)
		}
	}
	return proc
}

// addSeed registers s for terminal ti, the earlier declared seed wins.
func (p *Parser) addSeed(proc *procedure, ti int, s seed, shadowed map[[2]int]bool) {
	prev, f := proc.seeds[ti]
	if !f {
		proc.seeds[ti] = s
		return
	}
	if s.dangling != nil && prev.dangling == s.dangling {
		return
	}

	key := [2]int{prev.prod.Index, s.prod.Index}
	if shadowed[key] {
		return
	}

	shadowed[key] = true
	c := grammar.Conflict{
		Rule:      proc.rule.Name,
		Preferred: prev.prod,
		Shadowed:  s.prod,
		Terminals: []string{p.grammar.Terminals()[ti].String()},
	}
	p.conflicts = append(p.conflicts, c)
	p.log.Warn("alternative shadowed by earlier declaration",
		"rule", c.Rule, "preferred", c.Preferred.String(), "shadowed", c.Shadowed.String(), "terminal", c.Terminals[0])
}
