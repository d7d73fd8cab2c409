package grammar

import (
	"log/slog"
	"strings"

	"github.com/ava12/gram/internal/ints"
	"github.com/ava12/gram/internal/logging"
)

// Validate resolves identifiers of built grammar g, analyzes it and checks its consistency.
// Returns new immutable grammar, g itself is not modified.
// Nil profile means DefaultProfile, nil logger discards warnings.
func Validate(g *Grammar, p *Profile, log *slog.Logger) (*Grammar, error) {
	if p == nil {
		p = DefaultProfile()
	}
	log = logging.OrDiscard(log)

	if len(g.rules) == 0 {
		return nil, emptyGrammarError(g.Name)
	}

	result := g.clone()
	e := resolveNames(result, p, nil)
	e = resolveRoot(result, p, e)
	e = findRecursiveOnlyRules(result, e)
	e = findNonProductiveRules(result, e)
	if e != nil {
		return nil, e
	}

	result.analyze()
	e = buildPrecedenceChain(result, p, e)
	e = findDanglingPairs(result, e)
	if e != nil {
		return nil, e
	}

	warnUnreachableRules(result, log)
	findConflicts(result, log)
	result.validated = true
	log.Debug("grammar validated", "grammar", result.Name, "rules", len(result.rules),
		"productions", len(result.productions), "terminals", len(result.terminals))
	return result, nil
}

func (g *Grammar) clone() *Grammar {
	result := New(g.Name)
	result.Root = g.Root
	for _, r := range g.rules {
		for _, pr := range r.Productions {
			symbols := append([]Symbol(nil), pr.Symbols...)
			result.AddProduction(r.Name, pr.Origin, symbols, pr.Pos)
		}
	}
	return result
}

func resolveNames(g *Grammar, p *Profile, e error) error {
	if e != nil {
		return e
	}

	for _, r := range g.rules {
		for _, pr := range r.Productions {
			for i, s := range pr.Symbols {
				switch s.Kind {
				case NameSymbol:
					switch {
					case g.ruleIndex[s.Name] != nil:
						pr.Symbols[i] = RuleRef(s.Name, s.Pos)
					case IsClass(s.Name):
						pr.Symbols[i] = Class(s.Name, s.Pos)
					case p.IsKeyword(s.Name):
						pr.Symbols[i] = Literal(s.Name, s.Pos)
					default:
						return undefinedRuleError(s, r.Name)
					}

				case RuleSymbol:
					if g.ruleIndex[s.Name] == nil {
						return undefinedRuleError(s, r.Name)
					}
				}
			}
		}
	}

	return nil
}

func resolveRoot(g *Grammar, p *Profile, e error) error {
	if e != nil {
		return e
	}

	switch {
	case g.Root != "":
	case p.Root != "" && g.ruleIndex[p.Root] != nil:
		g.Root = p.Root
	default:
		g.Root = g.rules[0].Name
	}

	if g.ruleIndex[g.Root] == nil {
		return undefinedRootError(g.Root)
	}
	return nil
}

func findRecursiveOnlyRules(g *Grammar, e error) error {
	if e != nil {
		return e
	}

	for _, r := range g.rules {
		if len(r.BaseProductions()) == 0 {
			return nonTerminatingRuleError(r, "has no base alternative")
		}
	}
	return nil
}

func findNonProductiveRules(g *Grammar, e error) error {
	if e != nil {
		return e
	}

	productive := make([]bool, len(g.rules))
	for changed := true; changed; {
		changed = false
		for _, r := range g.rules {
			if productive[r.Index] {
				continue
			}
			for _, pr := range r.Productions {
				if symbolsProductive(g, pr.Symbols, productive) {
					productive[r.Index] = true
					changed = true
					break
				}
			}
		}
	}

	for _, r := range g.rules {
		if !productive[r.Index] {
			return nonTerminatingRuleError(r, "cannot derive terminal-only string")
		}
	}
	return nil
}

func symbolsProductive(g *Grammar, symbols []Symbol, productive []bool) bool {
	for _, s := range symbols {
		if s.Kind == RuleSymbol && !productive[g.ruleIndex[s.Name].Index] {
			return false
		}
	}
	return true
}

// buildPrecedenceChain walks from expression root following single "|>" rule alternatives.
func buildPrecedenceChain(g *Grammar, p *Profile, e error) error {
	if e != nil {
		return e
	}

	r := g.ruleIndex[p.ExpressionRoot]
	if r == nil {
		return nil
	}

	chain := &PrecedenceChain{}
	seen := ints.NewSet()
	var path []string
	for {
		path = append(path, r.Name)
		if seen.Contains(r.Index) {
			return precedenceCycleError(r, path)
		}
		seen.Add(r.Index)

		next := nextLayer(r)
		if next == "" {
			chain.Primary = r
			break
		}

		if len(r.Productions) > 1 {
			chain.Layers = append(chain.Layers, r)
		}
		r = g.ruleIndex[next]
	}

	g.Chain = chain
	return nil
}

// nextLayer returns the only rule alternative of r or empty string.
func nextLayer(r *Rule) string {
	var alts []*Production
	for _, pr := range r.Productions {
		if pr.Origin == AlternationOrigin && !pr.IsEpsilon() {
			alts = append(alts, pr)
		}
	}
	if len(alts) != 1 || !alts[0].IsUnit() {
		return ""
	}
	return alts[0].Symbols[0].Name
}

func sameSymbols(a, b []Symbol) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Name != b[i].Name || a[i].Terminal != b[i].Terminal {
			return false
		}
	}
	return true
}

func findProduction(r *Rule, symbols []Symbol) *Production {
	for _, pr := range r.Productions {
		if sameSymbols(pr.Symbols, symbols) {
			return pr
		}
	}
	return nil
}

// findDanglingPairs detects open rules having "prefix matched terminator open" form
// and checks the rest of the pair structure.
func findDanglingPairs(g *Grammar, e error) error {
	if e != nil {
		return e
	}

	for _, open := range g.rules {
		for _, chain := range open.Productions {
			n := len(chain.Symbols)
			if n < 4 {
				continue
			}

			last, term, mref := chain.Symbols[n-1], chain.Symbols[n-2], chain.Symbols[n-3]
			prefix := chain.Symbols[:n-3]
			if last.Kind != RuleSymbol || last.Name != open.Name ||
				term.Kind != TerminalSymbol || term.Terminal.Kind != LiteralTerminal ||
				mref.Kind != RuleSymbol || mref.Name == open.Name ||
				prefix[0].Kind != TerminalSymbol {
				continue
			}

			pair, e := checkDanglingPair(g, open, chain, prefix, mref, term)
			if e != nil {
				return e
			}
			g.DanglingPairs = append(g.DanglingPairs, pair)
		}
	}

	return nil
}

func checkDanglingPair(g *Grammar, open *Rule, chain *Production, prefix []Symbol, mref, term Symbol) (*DanglingPair, error) {
	matched := g.ruleIndex[mref.Name]
	pattern := append(append([]Symbol(nil), prefix...), mref, term, mref)
	mp := findProduction(matched, pattern)
	if mp == nil {
		return nil, ambiguityError(matched, "no matched form %q for open rule %q", symbolsString(pattern), open.Name)
	}

	var op *Production
	for _, pr := range open.Productions {
		n := len(pr.Symbols)
		if n == len(prefix)+1 && sameSymbols(pr.Symbols[:n-1], prefix) && pr.Symbols[n-1].Kind == RuleSymbol {
			op = pr
			break
		}
	}
	if op == nil {
		return nil, ambiguityError(open, "no form without %q", term.Terminal.Text)
	}

	for _, pr := range matched.Productions {
		n := len(pr.Symbols)
		if n == len(prefix)+1 && sameSymbols(pr.Symbols[:n-1], prefix) {
			return nil, ambiguityError(matched, "matched rule has form without %q", term.Terminal.Text)
		}
	}

	branch := g.ruleIndex[op.Symbols[len(op.Symbols)-1].Name]
	closure := g.unitClosure[branch.Index]
	if !closure.Contains(matched.Index) || !closure.Contains(open.Index) {
		return nil, ambiguityError(open, "branch rule %q must derive both %q and %q", branch.Name, matched.Name, open.Name)
	}

	return &DanglingPair{
		Matched:           matched,
		Open:              open,
		Prefix:            append([]Symbol(nil), prefix...),
		Terminator:        term.Terminal,
		Branch:            branch,
		MatchedProduction: mp,
		OpenProduction:    op,
		ChainProduction:   chain,
	}, nil
}

func symbolsString(symbols []Symbol) string {
	parts := make([]string, len(symbols))
	for i, s := range symbols {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}

func warnUnreachableRules(g *Grammar, log *slog.Logger) {
	reached := g.reachable()
	for _, r := range g.rules {
		if !reached.Contains(r.Index) {
			log.Warn("rule is unreachable from root", "rule", r.Name, "root", g.Root, "line", r.Pos.Line())
		}
	}
}

// inDanglingPair reports whether both productions belong to the same detected pair.
func inDanglingPair(g *Grammar, a, b *Production) bool {
	for _, dp := range g.DanglingPairs {
		ps := []*Production{dp.MatchedProduction, dp.OpenProduction, dp.ChainProduction}
		fa, fb := false, false
		for _, p := range ps {
			fa = fa || p == a
			fb = fb || p == b
		}
		if fa && fb {
			return true
		}
	}
	return false
}

func isPrefix(a, b []Symbol) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	return sameSymbols(a, b[:len(a)])
}

// shareCornerCycle reports whether both productions start with rules deriving each other
// as left corners; such alternatives are told apart by tokens following the common corner.
func shareCornerCycle(g *Grammar, a, b *Production) bool {
	sa, sb := a.Symbols[0], b.Symbols[0]
	if sa.Kind != RuleSymbol || sb.Kind != RuleSymbol {
		return false
	}
	ra, rb := g.ruleIndex[sa.Name], g.ruleIndex[sb.Name]
	return g.leftCorners[ra.Index].Contains(rb.Index) && g.leftCorners[rb.Index].Contains(ra.Index)
}

// findConflicts records base alternatives of one rule sharing the same FIRST set
// while neither of them is a prefix of the other.
func findConflicts(g *Grammar, log *slog.Logger) {
	for _, r := range g.rules {
		base := r.BaseProductions()
		for i, a := range base {
			fa, _ := g.FirstOf(a.Symbols)
			if fa.IsEmpty() {
				continue
			}

			for _, b := range base[i+1:] {
				fb, _ := g.FirstOf(b.Symbols)
				if !fa.Equal(fb) || isPrefix(a.Symbols, b.Symbols) || inDanglingPair(g, a, b) || shareCornerCycle(g, a, b) {
					continue
				}

				c := Conflict{Rule: r.Name, Preferred: a, Shadowed: b, Terminals: g.TerminalNames(fa)}
				g.Conflicts = append(g.Conflicts, c)
				log.Warn("alternatives share lookahead, declaration order wins",
					"rule", r.Name, "preferred", a.String(), "shadowed", b.String(),
					"lookahead", strings.Join(c.Terminals, " "))
			}
		}
	}
}
