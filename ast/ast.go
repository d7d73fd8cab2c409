// Package ast defines syntax tree nodes built by parser, node builders, traversal and printing.
package ast

import (
	"strconv"
	"strings"

	"github.com/ava12/gram/source"
)

// Node is a syntax tree node. Every node is owned by its parent, the root is owned by the caller.
type Node interface {
	// Pos returns position of the first token of the node.
	Pos() source.Pos
	// String returns compact S-expression form of the subtree.
	String() string
	node()
}

// Span holds node position.
type Span struct {
	Start source.Pos
}

func (s Span) Pos() source.Pos {
	return s.Start
}

func (Span) node() {}

type LiteralKind int

const (
	IntLiteral LiteralKind = iota
	FloatLiteral
	StringLiteral
	BoolLiteral
	// SymbolLiteral is a bare keyword or punctuator that forms the whole production.
	SymbolLiteral
)

var literalKindNames = []string{"int", "float", "string", "bool", "symbol"}

func (k LiteralKind) String() string {
	if k < 0 || int(k) >= len(literalKindNames) {
		return "literal"
	}
	return literalKindNames[k]
}

// Literal holds decoded literal value: int64, float64, string, or bool.
type Literal struct {
	Span
	Kind  LiteralKind
	Value any
	Raw   string
}

type Identifier struct {
	Span
	Name string
}

type UnaryOp struct {
	Span
	Op      string
	Operand Node
}

type BinaryOp struct {
	Span
	Op          string
	Left, Right Node
}

type Assignment struct {
	Span
	Op     string
	Target Node
	Value  Node
}

// Cond is a conditional (ternary) expression.
type Cond struct {
	Span
	Cond, Then, Else Node
}

type Call struct {
	Span
	Callee Node
	Args   []Node
}

type Index struct {
	Span
	Object, Index Node
}

type FieldAccess struct {
	Span
	Object Node
	Name   string
}

// If is a conditional statement, Else is nil when there is no else branch.
type If struct {
	Span
	Cond, Then, Else Node
}

type While struct {
	Span
	Cond, Body Node
}

type Block struct {
	Span
	Statements []Node
}

// Sequence is a list of statements or expressions; an empty Sequence stands for the empty alternative.
type Sequence struct {
	Span
	Items []Node
}

// ExprStmt is an expression statement, X is nil for the empty statement ";".
type ExprStmt struct {
	Span
	X Node
}

func (n *Literal) String() string {
	switch v := n.Value.(type) {
	case string:
		if n.Kind == StringLiteral {
			return strconv.Quote(v)
		}
	case bool:
		return strconv.FormatBool(v)
	}
	return n.Raw
}

func (n *Identifier) String() string {
	return n.Name
}

func (n *UnaryOp) String() string {
	return sexpr(n.Op, n.Operand)
}

func (n *BinaryOp) String() string {
	return sexpr(n.Op, n.Left, n.Right)
}

func (n *Assignment) String() string {
	return sexpr(n.Op, n.Target, n.Value)
}

func (n *Cond) String() string {
	return sexpr("?", n.Cond, n.Then, n.Else)
}

func (n *Call) String() string {
	return sexpr("call", append([]Node{n.Callee}, n.Args...)...)
}

func (n *Index) String() string {
	return sexpr("index", n.Object, n.Index)
}

func (n *FieldAccess) String() string {
	return "(. " + str(n.Object) + " " + n.Name + ")"
}

func (n *If) String() string {
	if n.Else == nil {
		return sexpr("if", n.Cond, n.Then)
	}
	return sexpr("if", n.Cond, n.Then, n.Else)
}

func (n *While) String() string {
	return sexpr("while", n.Cond, n.Body)
}

func (n *Block) String() string {
	return sexpr("block", n.Statements...)
}

func (n *Sequence) String() string {
	return sexpr("seq", n.Items...)
}

func (n *ExprStmt) String() string {
	if n.X == nil {
		return "(expr)"
	}
	return sexpr("expr", n.X)
}

func str(n Node) string {
	if n == nil {
		return "nil"
	}
	return n.String()
}

func sexpr(head string, items ...Node) string {
	sb := strings.Builder{}
	sb.WriteString("(")
	sb.WriteString(head)
	for _, item := range items {
		sb.WriteString(" ")
		sb.WriteString(str(item))
	}
	sb.WriteString(")")
	return sb.String()
}
