package langdef

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/ava12/gram/grammar"
	"github.com/ava12/gram/internal/logging"
	"github.com/ava12/gram/lexer"
	"github.com/ava12/gram/source"
)

const (
	nameTok      = "name"
	directiveTok = "directive"
	endTok       = "end"
	quotedTok    = "quoted"
	opTok        = "op"
	wrongTok     = ""
)

const (
	sequenceDir    = "->"
	alternationDir = "|>"
)

type options struct {
	profile *grammar.Profile
	root    string
	log     *slog.Logger
}

// Option configures Parse.
type Option func(*options)

// WithProfile sets lexical profile, DefaultProfile is used by default.
func WithProfile(p *grammar.Profile) Option {
	return func(o *options) {
		o.profile = p
	}
}

// WithRoot sets root rule name.
func WithRoot(name string) Option {
	return func(o *options) {
		o.root = name
	}
}

// WithLogger sets logger receiving grammar warnings.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

var defaultLexer = newLexer(grammar.DefaultProfile())

// newLexer creates rule notation lexer recognizing profile punctuators.
func newLexer(p *grammar.Profile) *lexer.Lexer {
	tokenTypes := []lexer.TokenType{
		{Type: 1, TypeName: directiveTok},
		{Type: 2, TypeName: endTok},
		{Type: 3, TypeName: quotedTok},
		{Type: 4, TypeName: nameTok},
		{Type: 5, TypeName: opTok},
		{Type: lexer.ErrorTokenType, TypeName: wrongTok},
	}

	ops := p.SortedPunctuators()
	for i, op := range ops {
		ops[i] = regexp.QuoteMeta(op)
	}
	opRe := `[^\s\S]`
	if len(ops) > 0 {
		opRe = strings.Join(ops, "|")
	}

	re := regexp.MustCompile(
		`^(?:\s+|//[^\n]*|` +
			`(->|\|>)|` +
			`(\$)|` +
			`('(?:[^'\\\n]|\\.)*'|"(?:[^"\\\n]|\\.)*")|` +
			`([A-Za-z_][^\s$]*)|` +
			`(` + opRe + `)|` +
			`(['"].{0,10}))`)

	return lexer.New(re, tokenTypes)
}

// ParseString parses grammar description contained in string.
func ParseString(name, content string, opts ...Option) (*grammar.Grammar, error) {
	return Parse(source.NewString(name, content), opts...)
}

// ParseBytes parses grammar description contained in byte slice.
func ParseBytes(name string, content []byte, opts ...Option) (*grammar.Grammar, error) {
	return Parse(source.New(name, content), opts...)
}

// Parse converts grammar description to validated grammar.
// Any error is fatal, no partially built grammar is returned.
func Parse(s *source.Source, opts ...Option) (*grammar.Grammar, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	l := defaultLexer
	if o.profile != nil {
		if e := o.profile.Validate(); e != nil {
			return nil, e
		}
		l = newLexer(o.profile)
	}
	log := logging.OrDiscard(o.log)

	g, e := Build(l.Scan(s))
	if e != nil {
		return nil, e
	}

	g.Root = o.root
	log.Debug("grammar built", "source", s.Name(), "rules", len(g.Rules()))
	return grammar.Validate(g, o.profile, log)
}

// tokenSource is the part of lexer.Scanner used by Build.
type tokenSource interface {
	Next() (*lexer.Token, error)
}

// Build groups tokens of rule notation into unvalidated grammar.
// Identifiers are left unresolved.
func Build(ts tokenSource) (*grammar.Grammar, error) {
	name := ""
	if sc, f := ts.(*lexer.Scanner); f {
		name = sc.Source().Name()
	}
	g := grammar.New(name)

	for {
		t, e := ts.Next()
		if e != nil {
			return nil, e
		}

		if t.IsEof() {
			return g, nil
		}

		if t.TypeName() != nameTok {
			return nil, unexpectedTokenError(t, "rule name")
		}

		e = buildDeclaration(g, t, ts)
		if e != nil {
			return nil, e
		}
	}
}

func buildDeclaration(g *grammar.Grammar, name *lexer.Token, ts tokenSource) error {
	if name.Text() == grammar.Epsilon || grammar.IsClass(name.Text()) {
		return reservedNameError(name)
	}

	dir, e := ts.Next()
	if e != nil {
		return e
	}
	if dir.TypeName() != directiveTok {
		return missingDirectiveError(name, dir)
	}

	var symbols []grammar.Symbol
	var epsilon *lexer.Token
	for {
		t, e := ts.Next()
		if e != nil {
			return e
		}

		if t.TypeName() == endTok {
			break
		}

		switch t.TypeName() {
		case directiveTok, lexer.EofTokenName:
			return missingEndError(name, t)

		case nameTok:
			if t.Text() == grammar.Epsilon {
				symbols = append(symbols, grammar.EpsilonSym(t.Pos()))
				epsilon = t
			} else {
				symbols = append(symbols, grammar.NameRef(t.Text(), t.Pos()))
			}

		case quotedTok:
			symbols = append(symbols, grammar.Literal(unquote(t.Text()), t.Pos()))

		case opTok:
			symbols = append(symbols, grammar.Literal(t.Text(), t.Pos()))
		}
	}

	if len(symbols) == 0 {
		return emptyProductionError(name)
	}

	if dir.Text() == sequenceDir {
		if epsilon != nil && len(symbols) > 1 {
			return epsilonMisuseError(name, epsilon)
		}
		g.AddProduction(name.Text(), grammar.SequenceOrigin, symbols, name.Pos())
		return nil
	}

	for _, s := range symbols {
		g.AddProduction(name.Text(), grammar.AlternationOrigin, []grammar.Symbol{s}, name.Pos())
	}
	return nil
}

func unquote(text string) string {
	text = text[1 : len(text)-1]
	if !strings.Contains(text, `\`) {
		return text
	}

	var sb strings.Builder
	escaped := false
	for _, r := range text {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		sb.WriteRune(r)
	}
	return sb.String()
}
