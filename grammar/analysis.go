package grammar

import (
	"github.com/ava12/gram/internal/ints"
	"github.com/ava12/gram/internal/queue"
)

// analyze fills terminal table, nullable flags, FIRST sets, and unit closures of resolved grammar.
func (g *Grammar) analyze() {
	g.collectTerminals()
	g.computeNullable()
	g.computeFirst()
	g.computeUnitClosure()
	g.computeLeftCorners()
}

func (g *Grammar) collectTerminals() {
	g.terminals = nil
	g.terminalIndex = make(map[Terminal]int)
	for _, p := range g.productions {
		for _, s := range p.Symbols {
			if s.Kind != TerminalSymbol {
				continue
			}
			if _, f := g.terminalIndex[s.Terminal]; !f {
				g.terminalIndex[s.Terminal] = len(g.terminals)
				g.terminals = append(g.terminals, s.Terminal)
			}
		}
	}
}

func (g *Grammar) computeNullable() {
	g.nullable = make([]bool, len(g.rules))
	for changed := true; changed; {
		changed = false
		for _, r := range g.rules {
			if g.nullable[r.Index] {
				continue
			}
			for _, p := range r.Productions {
				if g.symbolsNullable(p.Symbols) {
					g.nullable[r.Index] = true
					changed = true
					break
				}
			}
		}
	}
}

func (g *Grammar) symbolsNullable(symbols []Symbol) bool {
	for _, s := range symbols {
		switch s.Kind {
		case TerminalSymbol:
			return false
		case RuleSymbol:
			if !g.nullable[g.ruleIndex[s.Name].Index] {
				return false
			}
		}
	}
	return true
}

func (g *Grammar) computeFirst() {
	g.first = make([]*ints.Set, len(g.rules))
	for i := range g.first {
		g.first[i] = ints.NewSet()
	}

	for changed := true; changed; {
		changed = false
		for _, r := range g.rules {
			for _, p := range r.Productions {
				set, _ := g.FirstOf(p.Symbols)
				if g.first[r.Index].Union(set) {
					changed = true
				}
			}
		}
	}
}

func (g *Grammar) computeUnitClosure() {
	edges := make([][]int, len(g.rules))
	for _, r := range g.rules {
		for _, p := range r.Productions {
			if p.IsUnit() {
				edges[r.Index] = append(edges[r.Index], g.ruleIndex[p.Symbols[0].Name].Index)
			}
		}
	}

	g.unitClosure = make([]*ints.Set, len(g.rules))
	for _, r := range g.rules {
		g.unitClosure[r.Index] = closure(r.Index, edges)
	}
}

// closure returns indexes reachable from start via edges, start included.
func closure(start int, edges [][]int) *ints.Set {
	res := ints.NewSet(start)
	q := queue.New(start)
	for !q.IsEmpty() {
		i, _ := q.First()
		for _, j := range edges[i] {
			if !res.Contains(j) {
				res.Add(j)
				q.Append(j)
			}
		}
	}
	return res
}

func (g *Grammar) computeLeftCorners() {
	edges := make([][]int, len(g.rules))
	for _, r := range g.rules {
		for _, p := range r.Productions {
			if len(p.Symbols) > 0 && p.Symbols[0].Kind == RuleSymbol {
				edges[r.Index] = append(edges[r.Index], g.ruleIndex[p.Symbols[0].Name].Index)
			}
		}
	}

	g.leftCorners = make([]*ints.Set, len(g.rules))
	for _, r := range g.rules {
		g.leftCorners[r.Index] = closure(r.Index, edges)
	}
}

// LeftCorners returns indexes of rules reachable from named rule via the leading rule symbol
// of productions, the rule itself included. Result must not be modified.
func (g *Grammar) LeftCorners(rule string) *ints.Set {
	r := g.ruleIndex[rule]
	if r == nil || g.leftCorners == nil {
		return ints.NewSet()
	}
	return g.leftCorners[r.Index]
}

// reachable returns indexes of rules reachable from root via any rule reference.
func (g *Grammar) reachable() *ints.Set {
	edges := make([][]int, len(g.rules))
	for _, r := range g.rules {
		for _, p := range r.Productions {
			for _, s := range p.Symbols {
				if s.Kind == RuleSymbol {
					edges[r.Index] = append(edges[r.Index], g.ruleIndex[s.Name].Index)
				}
			}
		}
	}
	return closure(g.ruleIndex[g.Root].Index, edges)
}
