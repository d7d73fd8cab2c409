package ast

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(name string) Node {
	return &Identifier{Name: name}
}

func num(raw string, v int64) Node {
	return &Literal{Kind: IntLiteral, Value: v, Raw: raw}
}

func sampleTree() Node {
	return &Block{Statements: []Node{
		&ExprStmt{X: &Assignment{Op: "=", Target: &FieldAccess{Object: id("a"), Name: "b"},
			Value: &BinaryOp{Op: "+", Left: num("1", 1), Right: &UnaryOp{Op: "-", Operand: id("c")}}}},
		&If{Cond: id("x"), Then: &ExprStmt{}, Else: &While{Cond: id("y"), Body: &ExprStmt{X: &Call{Callee: id("f"), Args: []Node{id("p"), num("2", 2)}}}}},
		&ExprStmt{X: &Cond{Cond: id("q"), Then: &Index{Object: id("arr"), Index: num("0", 0)},
			Else: &Literal{Kind: StringLiteral, Value: "s\n", Raw: `"s\n"`}}},
		&Sequence{Items: []Node{}},
	}}
}

func TestStringForms(t *testing.T) {
	assert.Equal(t,
		`(block (expr (= (. a b) (+ 1 (- c)))) (if x (expr) (while y (expr (call f p 2)))) (expr (? q (index arr 0) "s\n")) (seq))`,
		sampleTree().String())

	assert.Equal(t, "(if x (expr))", (&If{Cond: id("x"), Then: &ExprStmt{}}).String())
	assert.Equal(t, "true", (&Literal{Kind: BoolLiteral, Value: true, Raw: "true"}).String())
	assert.Equal(t, "1.50", (&Literal{Kind: FloatLiteral, Value: 1.5, Raw: "1.50"}).String())
	assert.Equal(t, "break", (&Literal{Kind: SymbolLiteral, Value: "break", Raw: "break"}).String())
	assert.Equal(t, "(+ nil a)", (&BinaryOp{Op: "+", Right: id("a")}).String())
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Literal 1 (int)", Label(num("1", 1)))
	assert.Equal(t, "Call (0 args)", Label(&Call{Callee: id("f")}))
	assert.Equal(t, "ExprStmt (empty)", Label(&ExprStmt{}))
	assert.Equal(t, "If/Else", Label(&If{Else: id("e")}))
	assert.Equal(t, "FieldAccess .b", Label(&FieldAccess{Name: "b"}))
	assert.Equal(t, "<nil>", Label(nil))
}

func TestRender(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Fprint(buf, sampleTree()))
	out := buf.String()
	for _, label := range []string{"Block", "Assignment =", "BinaryOp +", "UnaryOp -", "While", "Identifier arr", "Literal \"s\\n\" (string)"} {
		assert.Contains(t, out, label)
	}
}
