package parser

import (
	"github.com/gosuda/aeroki/ast"
	"github.com/gosuda/aeroki/lexer"
)

// The Parse* helpers below take the tokens of one statement line after its
// leading keyword (including the trailing EOF) and return the parsed header.

type Give struct {
	Name  string
	Index *ast.Tree
	Op    lexer.Kind
	Expr  *ast.Tree
}

func ParseGive(toks []lexer.Token) (Give, error) {
	var g Give
	if len(toks) == 0 || toks[0].Kind != lexer.ID {
		return g, syntaxErr("give requires a variable name")
	}
	g.Name = toks[0].Text
	rest := toks[1:]
	if len(rest) > 0 && rest[0].Kind == lexer.LBRACKET {
		end := matchBracket(rest, lexer.LBRACKET, lexer.RBRACKET)
		if end < 0 {
			return g, syntaxErr("missing ] after %s", g.Name)
		}
		idx, err := ParseExpr(rest[1:end])
		if err != nil {
			return g, err
		}
		g.Index = idx
		rest = rest[end+1:]
	}
	if len(rest) == 0 || (rest[0].Kind != lexer.ASSIGN && !rest[0].Kind.IsCompoundAssign()) {
		return g, syntaxErr("give %s requires = or a compound assignment", g.Name)
	}
	if g.Index != nil && rest[0].Kind != lexer.ASSIGN {
		return g, syntaxErr("array element %s only supports =", g.Name)
	}
	g.Op = rest[0].Kind
	e, err := ParseExpr(rest[1:])
	if err != nil {
		return g, err
	}
	g.Expr = e
	return g, nil
}

type ForHeader struct {
	Var   string
	Start *ast.Tree
	End   *ast.Tree
}

func ParseFor(toks []lexer.Token) (ForHeader, error) {
	var h ForHeader
	if len(toks) < 2 || toks[0].Kind != lexer.ID || toks[1].Kind != lexer.ASSIGN {
		return h, syntaxErr("for requires NAME = start to end")
	}
	h.Var = toks[0].Text
	start, rest, err := parsePrefix(toks[2:])
	if err != nil {
		return h, err
	}
	if len(rest) == 0 || rest[0].Kind != lexer.TO {
		return h, syntaxErr("for %s is missing to", h.Var)
	}
	end, err := ParseExpr(rest[1:])
	if err != nil {
		return h, err
	}
	h.Start, h.End = start, end
	return h, nil
}

type FuncDef struct {
	Name   string
	Params []string
}

func ParseFuncDef(toks []lexer.Token) (FuncDef, error) {
	var d FuncDef
	if len(toks) == 0 || toks[0].Kind != lexer.ID {
		return d, syntaxErr("func requires a name")
	}
	d.Name = toks[0].Text
	rest := toks[1:]
	if len(rest) == 0 || rest[0].Kind == lexer.EOF {
		return d, nil
	}
	if rest[0].Kind != lexer.LPAREN {
		return d, syntaxErr("func %s: expected (", d.Name)
	}
	for i := 1; i < len(rest); i++ {
		switch rest[i].Kind {
		case lexer.ID:
			d.Params = append(d.Params, rest[i].Text)
		case lexer.COMMA:
		case lexer.RPAREN:
			return d, nil
		default:
			return d, syntaxErr("func %s: unexpected %q in parameter list", d.Name, rest[i].Text)
		}
	}
	return d, syntaxErr("func %s: missing )", d.Name)
}

type ArrayDecl struct {
	Name string
	Size *ast.Tree
}

func ParseArrayDecl(toks []lexer.Token) (ArrayDecl, error) {
	var d ArrayDecl
	if len(toks) == 0 || toks[0].Kind != lexer.ID {
		return d, syntaxErr("array requires a name")
	}
	d.Name = toks[0].Text
	rest := toks[1:]
	if len(rest) == 0 || rest[0].Kind == lexer.EOF {
		return d, nil
	}
	if rest[0].Kind == lexer.LBRACKET {
		end := matchBracket(rest, lexer.LBRACKET, lexer.RBRACKET)
		if end < 0 {
			return d, syntaxErr("array %s: missing ]", d.Name)
		}
		rest = rest[1:end]
	}
	size, err := ParseExpr(rest)
	if err != nil {
		return d, err
	}
	d.Size = size
	return d, nil
}

type Push struct {
	Name string
	Expr *ast.Tree
}

func ParsePush(toks []lexer.Token) (Push, error) {
	var p Push
	if len(toks) == 0 || toks[0].Kind != lexer.ID {
		return p, syntaxErr("push requires an array name")
	}
	p.Name = toks[0].Text
	rest := toks[1:]
	if len(rest) > 0 && rest[0].Kind == lexer.COMMA {
		rest = rest[1:]
	}
	e, err := ParseExpr(rest)
	if err != nil {
		return p, err
	}
	p.Expr = e
	return p, nil
}

// ParseName reads a statement whose only operand is a name, such as input
// and pop.
func ParseName(toks []lexer.Token) (string, error) {
	if len(toks) == 0 || toks[0].Kind != lexer.ID {
		return "", syntaxErr("expected a name")
	}
	if len(toks) > 1 && toks[1].Kind != lexer.EOF {
		return "", syntaxErr("unexpected %q after %s", toks[1].Text, toks[0].Text)
	}
	return toks[0].Text, nil
}

type Print struct {
	Text     string
	IsString bool
	Expr     *ast.Tree
}

func ParsePrint(toks []lexer.Token) (Print, error) {
	if len(toks) > 0 && toks[0].Kind == lexer.STRING && (len(toks) == 1 || toks[1].Kind == lexer.EOF) {
		return Print{Text: toks[0].Text, IsString: true}, nil
	}
	if len(toks) == 0 || toks[0].Kind == lexer.EOF {
		return Print{IsString: true}, nil
	}
	e, err := ParseExpr(toks)
	if err != nil {
		return Print{}, err
	}
	return Print{Expr: e}, nil
}

// ParseOptionalExpr returns nil for an empty operand, as in a bare return.
func ParseOptionalExpr(toks []lexer.Token) (*ast.Tree, error) {
	if len(toks) == 0 || toks[0].Kind == lexer.EOF {
		return nil, nil
	}
	return ParseExpr(toks)
}

// ParseCall parses `NAME(args...)`; a bare NAME is a call without
// arguments.
func ParseCall(toks []lexer.Token) (*ast.Tree, error) {
	if len(toks) == 0 || toks[0].Kind != lexer.ID {
		return nil, syntaxErr("call requires a function name")
	}
	if len(toks) == 1 || toks[1].Kind == lexer.EOF {
		t := &ast.Tree{}
		t.Root = t.NewCall(toks[0].Text, nil)
		return t, nil
	}
	tree, err := ParseExpr(toks)
	if err != nil {
		return nil, err
	}
	if tree.Node(tree.Root).Kind != ast.Call {
		return nil, syntaxErr("call %s: expected an argument list", toks[0].Text)
	}
	return tree, nil
}

func matchBracket(toks []lexer.Token, open, close lexer.Kind) int {
	depth := 0
	for i, t := range toks {
		switch t.Kind {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
