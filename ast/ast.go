package ast

import (
	"fmt"
	"strings"

	"github.com/gosuda/aeroki/lexer"
)

// NodeID addresses a node inside its Tree. The zero Tree has no nodes, so
// every valid id is >= 0 and NoNode marks an absent child.
type NodeID int32

const NoNode NodeID = -1

type NodeKind int

const (
	Number NodeKind = iota
	VarRef
	Binary
	Unary
	ArrayIndex
	Call
	Len
	Pop
)

// Node is one expression node. Which fields are meaningful depends on Kind:
//
//	Number      Num, Scale
//	VarRef      Name
//	Binary      Op, Left, Right
//	Unary       Op (or Func for math functions), Left
//	ArrayIndex  Name, Left (index)
//	Call        Name, Args
//	Len, Pop    Name
type Node struct {
	Kind  NodeKind
	Op    lexer.Kind
	Func  string
	Name  string
	Num   float64
	Scale int
	Left  NodeID
	Right NodeID
	Args  []NodeID
}

// Tree owns every node of one parsed statement expression. It is built per
// statement and dropped once the statement has been evaluated.
type Tree struct {
	Nodes []Node
	Root  NodeID
}

func (t *Tree) add(n Node) NodeID {
	t.Nodes = append(t.Nodes, n)
	return NodeID(len(t.Nodes) - 1)
}

func (t *Tree) Node(id NodeID) *Node {
	return &t.Nodes[id]
}

func (t *Tree) NewNumber(v float64, scale int) NodeID {
	return t.add(Node{Kind: Number, Num: v, Scale: scale, Left: NoNode, Right: NoNode})
}

func (t *Tree) NewVarRef(name string) NodeID {
	return t.add(Node{Kind: VarRef, Name: name, Left: NoNode, Right: NoNode})
}

func (t *Tree) NewBinary(op lexer.Kind, left, right NodeID) NodeID {
	return t.add(Node{Kind: Binary, Op: op, Left: left, Right: right})
}

func (t *Tree) NewUnary(op lexer.Kind, operand NodeID) NodeID {
	return t.add(Node{Kind: Unary, Op: op, Left: operand, Right: NoNode})
}

func (t *Tree) NewMathCall(fn string, operand NodeID) NodeID {
	return t.add(Node{Kind: Unary, Op: lexer.MATHFN, Func: fn, Left: operand, Right: NoNode})
}

func (t *Tree) NewArrayIndex(name string, index NodeID) NodeID {
	return t.add(Node{Kind: ArrayIndex, Name: name, Left: index, Right: NoNode})
}

func (t *Tree) NewCall(name string, args []NodeID) NodeID {
	return t.add(Node{Kind: Call, Name: name, Args: args, Left: NoNode, Right: NoNode})
}

func (t *Tree) NewLen(name string) NodeID {
	return t.add(Node{Kind: Len, Name: name, Left: NoNode, Right: NoNode})
}

func (t *Tree) NewPop(name string) NodeID {
	return t.add(Node{Kind: Pop, Name: name, Left: NoNode, Right: NoNode})
}

// String renders the tree as an s-expression, used by the inspect tool and
// parser tests.
func (t *Tree) String() string {
	if t == nil || len(t.Nodes) == 0 {
		return "()"
	}
	var b strings.Builder
	t.write(&b, t.Root)
	return b.String()
}

func (t *Tree) write(b *strings.Builder, id NodeID) {
	n := t.Node(id)
	switch n.Kind {
	case Number:
		fmt.Fprintf(b, "%s", formatLiteral(n.Num, n.Scale))
	case VarRef:
		b.WriteString(n.Name)
	case Binary:
		fmt.Fprintf(b, "(%s ", n.Op)
		t.write(b, n.Left)
		b.WriteByte(' ')
		t.write(b, n.Right)
		b.WriteByte(')')
	case Unary:
		if n.Op == lexer.MATHFN {
			fmt.Fprintf(b, "(%s ", n.Func)
		} else {
			fmt.Fprintf(b, "(%s ", n.Op)
		}
		t.write(b, n.Left)
		b.WriteByte(')')
	case ArrayIndex:
		fmt.Fprintf(b, "%s[", n.Name)
		t.write(b, n.Left)
		b.WriteByte(']')
	case Call:
		fmt.Fprintf(b, "(call %s", n.Name)
		for _, a := range n.Args {
			b.WriteByte(' ')
			t.write(b, a)
		}
		b.WriteByte(')')
	case Len:
		fmt.Fprintf(b, "(len %s)", n.Name)
	case Pop:
		fmt.Fprintf(b, "(pop %s)", n.Name)
	}
}

func formatLiteral(v float64, scale int) string {
	return fmt.Sprintf("%.*f", scale, v)
}
