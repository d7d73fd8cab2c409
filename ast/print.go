package ast

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/list"
)

// Label returns one-line description of n without its children.
func Label(n Node) string {
	switch n := n.(type) {
	case nil:
		return "<nil>"
	case *Literal:
		return fmt.Sprintf("Literal %s (%s)", n.String(), n.Kind)
	case *Identifier:
		return "Identifier " + n.Name
	case *UnaryOp:
		return "UnaryOp " + n.Op
	case *BinaryOp:
		return "BinaryOp " + n.Op
	case *Assignment:
		return "Assignment " + n.Op
	case *Cond:
		return "Cond"
	case *Call:
		return fmt.Sprintf("Call (%d args)", len(n.Args))
	case *Index:
		return "Index"
	case *FieldAccess:
		return "FieldAccess ." + n.Name
	case *If:
		if n.Else == nil {
			return "If"
		}
		return "If/Else"
	case *While:
		return "While"
	case *Block:
		return "Block"
	case *Sequence:
		return "Sequence"
	case *ExprStmt:
		if n.X == nil {
			return "ExprStmt (empty)"
		}
		return "ExprStmt"
	default:
		return fmt.Sprintf("%T", n)
	}
}

// Render draws the tree rooted at n as an indented list.
func Render(n Node) string {
	w := list.NewWriter()
	w.SetStyle(list.StyleConnectedLight)
	appendNode(w, n)
	return w.Render()
}

func appendNode(w list.Writer, n Node) {
	w.AppendItem(Label(n))
	children := Children(n)
	if len(children) == 0 {
		return
	}

	w.Indent()
	for _, c := range children {
		appendNode(w, c)
	}
	w.UnIndent()
}

// Fprint writes rendered tree to w.
func Fprint(w io.Writer, n Node) error {
	_, e := fmt.Fprintln(w, Render(n))
	return e
}
