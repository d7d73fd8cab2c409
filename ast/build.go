package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ava12/gram/grammar"
	"github.com/ava12/gram/source"
)

// Value is a matched production element passed to Builder:
// either a node or an operator/marker token text.
type Value struct {
	Node Node
	Op   string
	Pos  source.Pos
	// List marks values of list productions (left-recursive sequences and epsilon),
	// Items holds the list elements.
	List  bool
	Items []Node
}

// NodeValue wraps node.
func NodeValue(n Node) Value {
	if n == nil {
		return Value{}
	}
	return Value{Node: n, Pos: n.Pos()}
}

// OpValue wraps operator or marker token text.
func OpValue(text string, pos source.Pos) Value {
	return Value{Op: text, Pos: pos}
}

// ListValue wraps list items: a single item stands for itself, any other count gives a Sequence.
func ListValue(pos source.Pos, items []Node) Value {
	var n Node
	if len(items) == 1 {
		n = items[0]
	} else {
		n = &Sequence{Span{pos}, items}
	}
	return Value{Node: n, Pos: pos, List: true, Items: items}
}

// Element returns v as a single list element, dropping its list items.
func (v Value) Element() Value {
	v.List = false
	v.Items = nil
	return v
}

// IsOp reports whether v holds token text rather than a node.
func (v Value) IsOp() bool {
	return v.Node == nil && v.Op != ""
}

// Builder constructs a node from matched production values.
// pos is the position of the production start.
type Builder func(pos source.Pos, values []Value) Node

// Kind identifies node builder chosen for a production.
type Kind int

const (
	PassKind Kind = iota
	SequenceKind
	BinaryKind
	AssignKind
	UnaryKind
	CondKind
	FieldKind
	IndexKind
	CallKind
	BlockKind
	WhileKind
	IfKind
	ExprStmtKind
	EmptyKind
)

var kindNames = []string{
	"pass", "sequence", "binary", "assign", "unary", "cond", "field", "index",
	"call", "block", "while", "if", "expr-stmt", "empty",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

var builders = []Builder{
	PassKind:     buildPass,
	SequenceKind: buildSequence,
	BinaryKind:   buildBinary,
	AssignKind:   buildAssignment,
	UnaryKind:    buildUnary,
	CondKind:     buildCond,
	FieldKind:    buildField,
	IndexKind:    buildIndex,
	CallKind:     buildCall,
	BlockKind:    buildBlock,
	WhileKind:    buildWhile,
	IfKind:       buildIf,
	ExprStmtKind: buildExprStmt,
	EmptyKind:    buildEmpty,
}

// Build applies builder of kind k to values. Sequence and empty productions give list values.
func (k Kind) Build(pos source.Pos, values []Value) Value {
	switch k {
	case SequenceKind:
		return ListValue(pos, sequenceItems(values))
	case EmptyKind:
		return ListValue(pos, []Node{})
	}
	return NodeValue(k.Builder()(pos, values))
}

// Builder returns node builder of kind k.
func (k Kind) Builder() Builder {
	if k < 0 || int(k) >= len(builders) {
		return buildPass
	}
	return builders[k]
}

// Shape symbols: "@" is the owning rule, "op" is an operator rule, "_" is any other operand;
// literal terminals are kept as is, "e" is epsilon.
var exactShapes = map[string]Kind{
	"@ _":    SequenceKind,
	"@ op _": BinaryKind,
	"op @":   UnaryKind,
}

var genericShapes = map[string]Kind{
	"_ op _":    BinaryKind,
	"op _":      UnaryKind,
	"_ ? _ : _": CondKind,
	"_ . _":     FieldKind,
	"_ [ _ ]":   IndexKind,
	"_ ( _ )":   CallKind,
	"_ ( )":     CallKind,
	"( _ )":     PassKind,
	"{ _ }":     BlockKind,
	"{ }":       BlockKind,
	"while _ _": WhileKind,
	"_ ;":       ExprStmtKind,
	";":         ExprStmtKind,
	"e":         EmptyKind,
	"_":         PassKind,
}

// Shape returns exact and generic shapes of production p of validated grammar g.
func Shape(p *grammar.Production, g *grammar.Grammar) (exact, generic string) {
	parts := make([]string, len(p.Symbols))
	for i, s := range p.Symbols {
		switch s.Kind {
		case grammar.RuleSymbol:
			r := g.Rule(s.Name)
			switch {
			case s.Name == p.Rule:
				parts[i] = "@"
			case r != nil && r.IsOperator():
				parts[i] = "op"
			default:
				parts[i] = "_"
			}

		case grammar.TerminalSymbol:
			if s.Terminal.Kind == grammar.ClassTerminal {
				parts[i] = "_"
			} else {
				parts[i] = s.Terminal.Text
			}

		default:
			parts[i] = grammar.Epsilon
		}
	}

	exact = strings.Join(parts, " ")
	generic = strings.ReplaceAll(exact, "@", "_")
	return
}

// Classify chooses node builder kind for production p of validated grammar g.
func Classify(p *grammar.Production, g *grammar.Grammar) Kind {
	exact, generic := Shape(p, g)
	if exact == "_ op @" {
		if isAssignOp(g.Rule(p.Symbols[1].Name)) {
			return AssignKind
		}
		return BinaryKind
	}

	if k, f := exactShapes[exact]; f {
		return k
	}

	parts := strings.Split(exact, " ")
	if len(parts) == 3 && parts[0] == "@" && parts[2] == "_" && parts[1] != "op" {
		return SequenceKind
	}
	if parts[0] == "if" {
		return IfKind
	}

	if k, f := genericShapes[generic]; f {
		return k
	}
	return PassKind
}

// BuilderFor returns node builder for production p of validated grammar g.
func BuilderFor(p *grammar.Production, g *grammar.Grammar) Builder {
	return Classify(p, g).Builder()
}

func isAssignOp(r *grammar.Rule) bool {
	if r == nil {
		return false
	}
	for _, p := range r.Productions {
		text := p.Symbols[0].Terminal.Text
		if !strings.HasSuffix(text, "=") {
			return false
		}
		switch text {
		case "==", "!=", "<=", ">=":
			return false
		}
	}
	return true
}

func operands(values []Value) []Node {
	var res []Node
	for _, v := range values {
		if v.Node != nil {
			res = append(res, v.Node)
		}
	}
	return res
}

func firstOp(values []Value) string {
	for _, v := range values {
		if v.IsOp() {
			return v.Op
		}
	}
	return ""
}

func operand(nodes []Node, i int) Node {
	if i < len(nodes) {
		return nodes[i]
	}
	return nil
}

func operandValues(values []Value) []Value {
	var res []Value
	for _, v := range values {
		if v.Node != nil {
			res = append(res, v)
		}
	}
	return res
}

// elements returns list items of v or v itself.
func elements(v Value) []Node {
	switch {
	case v.List:
		return v.Items
	case v.Node != nil:
		return []Node{v.Node}
	default:
		return nil
	}
}

// buildPass returns the only operand; markers-only productions become symbol literals,
// several operands become a Sequence.
func buildPass(pos source.Pos, values []Value) Node {
	nodes := operands(values)
	switch len(nodes) {
	case 0:
		if op := firstOp(values); op != "" {
			return &Literal{Span: Span{pos}, Kind: SymbolLiteral, Value: op, Raw: op}
		}
		return buildEmpty(pos, values)
	case 1:
		return nodes[0]
	default:
		return &Sequence{Span{pos}, nodes}
	}
}

// sequenceItems appends operands to the leading list value. Only a value marked as list is
// extended, any other leading node becomes the first item as is.
func sequenceItems(values []Value) []Node {
	var list []Node
	for i, v := range values {
		switch {
		case i == 0:
			list = append(list, elements(v)...)
		case v.Node != nil:
			list = append(list, v.Node)
		}
	}
	return list
}

// buildSequence appends operands to the leading list, a single item is not wrapped.
func buildSequence(pos source.Pos, values []Value) Node {
	return ListValue(pos, sequenceItems(values)).Node
}

func buildBinary(pos source.Pos, values []Value) Node {
	nodes := operands(values)
	return &BinaryOp{Span{pos}, firstOp(values), operand(nodes, 0), operand(nodes, 1)}
}

func buildAssignment(pos source.Pos, values []Value) Node {
	nodes := operands(values)
	return &Assignment{Span{pos}, firstOp(values), operand(nodes, 0), operand(nodes, 1)}
}

func buildUnary(pos source.Pos, values []Value) Node {
	return &UnaryOp{Span{pos}, firstOp(values), operand(operands(values), 0)}
}

func buildCond(pos source.Pos, values []Value) Node {
	nodes := operands(values)
	return &Cond{Span{pos}, operand(nodes, 0), operand(nodes, 1), operand(nodes, 2)}
}

func buildField(pos source.Pos, values []Value) Node {
	nodes := operands(values)
	name := ""
	switch n := operand(nodes, 1).(type) {
	case *Identifier:
		name = n.Name
	case nil:
	default:
		name = n.String()
	}
	return &FieldAccess{Span{pos}, operand(nodes, 0), name}
}

func buildIndex(pos source.Pos, values []Value) Node {
	nodes := operands(values)
	return &Index{Span{pos}, operand(nodes, 0), operand(nodes, 1)}
}

func buildCall(pos source.Pos, values []Value) Node {
	ops := operandValues(values)
	args := []Node{}
	if len(ops) > 1 {
		args = append(args, elements(ops[1])...)
	}

	var callee Node
	if len(ops) > 0 {
		callee = ops[0].Node
	}
	return &Call{Span{pos}, callee, args}
}

func buildBlock(pos source.Pos, values []Value) Node {
	stmts := []Node{}
	if ops := operandValues(values); len(ops) > 0 {
		stmts = append(stmts, elements(ops[0])...)
	}
	return &Block{Span{pos}, stmts}
}

func buildWhile(pos source.Pos, values []Value) Node {
	nodes := operands(values)
	return &While{Span{pos}, operand(nodes, 0), operand(nodes, 1)}
}

func buildIf(pos source.Pos, values []Value) Node {
	nodes := operands(values)
	return &If{Span{pos}, operand(nodes, 0), operand(nodes, 1), operand(nodes, 2)}
}

func buildExprStmt(pos source.Pos, values []Value) Node {
	return &ExprStmt{Span{pos}, operand(operands(values), 0)}
}

func buildEmpty(pos source.Pos, _ []Value) Node {
	return &Sequence{Span{pos}, []Node{}}
}

// NewLeaf creates node for token of given class: Identifier for id, Literal for the rest.
func NewLeaf(class, text string, pos source.Pos) (Node, error) {
	span := Span{pos}
	switch class {
	case grammar.IdentClass:
		return &Identifier{span, text}, nil

	case grammar.IntClass:
		v, e := strconv.ParseInt(text, 10, 64)
		if e != nil {
			return nil, fmt.Errorf("integer literal %s: %w", text, e)
		}
		return &Literal{span, IntLiteral, v, text}, nil

	case grammar.FloatClass:
		v, e := strconv.ParseFloat(text, 64)
		if e != nil {
			return nil, fmt.Errorf("float literal %s: %w", text, e)
		}
		return &Literal{span, FloatLiteral, v, text}, nil

	case grammar.StringClass:
		v, e := Unquote(text)
		if e != nil {
			return nil, e
		}
		return &Literal{span, StringLiteral, v, text}, nil

	case grammar.BoolClass:
		return &Literal{span, BoolLiteral, text == "true", text}, nil

	default:
		return &Literal{span, SymbolLiteral, text, text}, nil
	}
}

var escapes = map[rune]rune{
	'"':  '"',
	'\\': '\\',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'b':  '\b',
	'f':  '\f',
}

// Unquote decodes double-quoted string literal with escapes \" \\ \n \r \t \b \f.
func Unquote(raw string) (string, error) {
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return "", fmt.Errorf("malformed string literal %s", raw)
	}

	sb := strings.Builder{}
	escaped := false
	for _, r := range raw[1 : len(raw)-1] {
		if escaped {
			c, f := escapes[r]
			if !f {
				return "", fmt.Errorf("unknown escape sequence \\%c in %s", r, raw)
			}
			sb.WriteRune(c)
			escaped = false
			continue
		}

		if r == '\\' {
			escaped = true
		} else {
			sb.WriteRune(r)
		}
	}

	if escaped {
		return "", fmt.Errorf("malformed string literal %s", raw)
	}
	return sb.String(), nil
}
