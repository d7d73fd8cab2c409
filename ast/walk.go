package ast

// Children returns non-nil child nodes of n in source order.
func Children(n Node) []Node {
	var res []Node
	add := func(nodes ...Node) {
		for _, c := range nodes {
			if c != nil {
				res = append(res, c)
			}
		}
	}

	switch n := n.(type) {
	case *UnaryOp:
		add(n.Operand)
	case *BinaryOp:
		add(n.Left, n.Right)
	case *Assignment:
		add(n.Target, n.Value)
	case *Cond:
		add(n.Cond, n.Then, n.Else)
	case *Call:
		add(n.Callee)
		add(n.Args...)
	case *Index:
		add(n.Object, n.Index)
	case *FieldAccess:
		add(n.Object)
	case *If:
		add(n.Cond, n.Then, n.Else)
	case *While:
		add(n.Cond, n.Body)
	case *Block:
		add(n.Statements...)
	case *Sequence:
		add(n.Items...)
	case *ExprStmt:
		add(n.X)
	}
	return res
}

// NodeVisitor is called for each visited node, returning false skips its children.
type NodeVisitor func(n Node) (walkChildren bool)

type WalkMode int

const (
	WalkLtr WalkMode = 0
	WalkRtl WalkMode = 1
)

// Walk visits n and its descendants depth-first, parents before children.
func Walk(n Node, mode WalkMode, visitor NodeVisitor) {
	if n == nil || !visitor(n) {
		return
	}

	children := Children(n)
	if mode&WalkRtl != 0 {
		for i := len(children) - 1; i >= 0; i-- {
			Walk(children[i], mode, visitor)
		}
	} else {
		for _, c := range children {
			Walk(c, mode, visitor)
		}
	}
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n Node) int {
	res := 0
	Walk(n, WalkLtr, func(Node) bool {
		res++
		return true
	})
	return res
}

// Depth returns the height of the tree rooted at n, a single node has depth 1.
func Depth(n Node) int {
	if n == nil {
		return 0
	}

	res := 0
	for _, c := range Children(n) {
		res = max(res, Depth(c))
	}
	return res + 1
}

// Collect returns all nodes of type T in the tree rooted at n in left-to-right order.
func Collect[T Node](n Node) []T {
	var res []T
	Walk(n, WalkLtr, func(n Node) bool {
		if t, f := n.(T); f {
			res = append(res, t)
		}
		return true
	})
	return res
}

// Inspect visits the tree rooted at n left to right, f returning false skips children.
func Inspect(n Node, f func(Node) bool) {
	Walk(n, WalkLtr, f)
}
