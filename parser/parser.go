// Package parser compiles validated grammars into parsing procedures and runs them over sources,
// producing syntax trees.
//
// Every rule compiles once into a procedure. A procedure picks a seed by the current token
// (a production of one of its left-corner rules that starts with that token) and then grows
// the seed through productions whose first symbol is a rule, the way left recursion is eliminated
// into loops. So binary layers fold left, assignment recurses to the right, and the else branch
// of a dangling if binds to the nearest if.
package parser

import (
	"log/slog"

	"github.com/ava12/gram/ast"
	"github.com/ava12/gram/grammar"
	"github.com/ava12/gram/internal/ints"
	"github.com/ava12/gram/internal/logging"
	"github.com/ava12/gram/langdef"
	"github.com/ava12/gram/source"
)

// DefaultMaxDepth is the default limit of rule nesting.
const DefaultMaxDepth = 1000

type options struct {
	maxDepth int
	log      *slog.Logger
	profile  *grammar.Profile
	root     string
}

// Option configures Parser.
type Option func(*options)

// WithMaxDepth sets rule nesting limit, non-positive values select DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithLogger sets logger receiving compilation warnings (shadowed alternatives).
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithProfile sets lexical profile used by Compile to read grammar text.
func WithProfile(p *grammar.Profile) Option {
	return func(o *options) {
		o.profile = p
	}
}

// WithRoot sets grammar root rule used by Compile.
func WithRoot(name string) Option {
	return func(o *options) {
		o.root = name
	}
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxDepth <= 0 {
		o.maxDepth = DefaultMaxDepth
	}
	o.log = logging.OrDiscard(o.log)
	return o
}

// Parser is a compiled grammar. It is immutable and safe for concurrent use.
type Parser struct {
	grammar   *grammar.Grammar
	procs     []*procedure
	kinds     []ast.Kind
	empties   []*grammar.Production
	units     []*ints.Set
	dangling  map[*grammar.Production]*danglingSeed
	lexer     *sourceLexer
	conflicts []grammar.Conflict
	maxDepth  int
	log       *slog.Logger
}

// New compiles validated grammar g.
func New(g *grammar.Grammar, opts ...Option) (*Parser, error) {
	if g == nil || !g.IsValidated() {
		name := ""
		if g != nil {
			name = g.Name
		}
		return nil, unvalidatedGrammarError(name)
	}

	o := newOptions(opts)
	p := &Parser{
		grammar:  g,
		lexer:    newSourceLexer(g),
		maxDepth: o.maxDepth,
		log:      o.log,
	}
	p.compile()
	p.log.Debug("parser compiled", "grammar", g.Name, "rules", len(p.procs), "conflicts", len(p.conflicts))
	return p, nil
}

// Compile reads grammar text and compiles it.
func Compile(name, text string, opts ...Option) (*Parser, error) {
	o := newOptions(opts)
	lopts := []langdef.Option{langdef.WithLogger(o.log), langdef.WithRoot(o.root)}
	if o.profile != nil {
		lopts = append(lopts, langdef.WithProfile(o.profile))
	}

	g, e := langdef.ParseString(name, text, lopts...)
	if e != nil {
		return nil, e
	}

	return New(g, opts...)
}

// Grammar returns compiled grammar.
func (p *Parser) Grammar() *grammar.Grammar {
	return p.grammar
}

// Conflicts returns alternatives shadowed by earlier declared ones sharing the first token.
func (p *Parser) Conflicts() []grammar.Conflict {
	return p.conflicts
}

// Kind returns node builder kind chosen for production.
func (p *Parser) Kind(prod *grammar.Production) ast.Kind {
	if prod == nil || prod.Index < 0 || prod.Index >= len(p.kinds) {
		return ast.PassKind
	}
	return p.kinds[prod.Index]
}

// ParseString parses text. Empty root selects grammar root rule.
func (p *Parser) ParseString(name, text, root string) (ast.Node, error) {
	return p.Parse(source.NewString(name, text), root)
}

// ParseBytes parses content. Empty root selects grammar root rule.
func (p *Parser) ParseBytes(name string, content []byte, root string) (ast.Node, error) {
	return p.Parse(source.New(name, content), root)
}

// Parse parses the whole source starting with root rule (grammar root if empty).
// Errors abort this call only, parser remains usable.
func (p *Parser) Parse(s *source.Source, root string) (ast.Node, error) {
	if root == "" {
		root = p.grammar.Root
	}
	r := p.grammar.Rule(root)
	if r == nil {
		return nil, unknownRuleError(root)
	}

	pc, e := newParseContext(p, s)
	if e != nil {
		return nil, e
	}

	return pc.parse(r)
}
