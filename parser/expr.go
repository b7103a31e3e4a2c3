package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gosuda/aeroki/ast"
	"github.com/gosuda/aeroki/lexer"
)

const maxExprDepth = 256

// SyntaxError reports a line that could not be parsed. It never stops a
// running script; the evaluator logs it and moves to the next line.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

func syntaxErr(format string, args ...any) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...)}
}

// ParseExpr parses a value expression spanning all of toks.
func ParseExpr(toks []lexer.Token) (*ast.Tree, error) {
	return parseWhole(toks, false)
}

// ParseCond parses a condition: comparisons and and/or/not on top of a
// value expression.
func ParseCond(toks []lexer.Token) (*ast.Tree, error) {
	return parseWhole(toks, true)
}

func parseWhole(toks []lexer.Token, cond bool) (*ast.Tree, error) {
	p := newExprParser(toks, cond)
	tree, err := p.parseTree()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind != lexer.EOF {
		return nil, syntaxErr("unexpected token %q", p.peek().Text)
	}
	return tree, nil
}

// parsePrefix parses one value expression from the front of toks and
// returns the unconsumed tail.
func parsePrefix(toks []lexer.Token) (*ast.Tree, []lexer.Token, error) {
	p := newExprParser(toks, false)
	tree, err := p.parseTree()
	if err != nil {
		return nil, nil, err
	}
	return tree, p.tokens[p.pos:], nil
}

type exprParser struct {
	tokens []lexer.Token
	pos    int
	depth  int
	cond   bool
	tree   *ast.Tree
}

func newExprParser(toks []lexer.Token, cond bool) *exprParser {
	if len(toks) == 0 || toks[len(toks)-1].Kind != lexer.EOF {
		toks = append(append([]lexer.Token(nil), toks...), lexer.Token{Kind: lexer.EOF})
	}
	return &exprParser{tokens: toks, cond: cond, tree: &ast.Tree{}}
}

func (p *exprParser) peek() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Kind: lexer.EOF}
	}
	return p.tokens[p.pos]
}

func (p *exprParser) next() lexer.Token {
	t := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *exprParser) expect(k lexer.Kind) error {
	if t := p.next(); t.Kind != k {
		if t.Kind == lexer.EOF {
			return syntaxErr("missing %s", k)
		}
		return syntaxErr("expected %s, got %q", k, t.Text)
	}
	return nil
}

func (p *exprParser) parseTree() (*ast.Tree, error) {
	if p.peek().Kind == lexer.EOF {
		return nil, syntaxErr("missing expression")
	}
	var root ast.NodeID
	var err error
	if p.cond {
		root, err = p.parseOr()
	} else {
		root, err = p.parseAdditive()
	}
	if err != nil {
		return nil, err
	}
	p.tree.Root = root
	return p.tree, nil
}

func (p *exprParser) enter() error {
	p.depth++
	if p.depth > maxExprDepth {
		return syntaxErr("expression nesting too deep near %q", p.peek().Text)
	}
	return nil
}

func (p *exprParser) leave() {
	p.depth--
}

func (p *exprParser) parseOr() (ast.NodeID, error) {
	left, err := p.parseAnd()
	if err != nil {
		return ast.NoNode, err
	}
	for p.peek().Kind == lexer.OR {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return ast.NoNode, err
		}
		left = p.tree.NewBinary(lexer.OR, left, right)
	}
	return left, nil
}

func (p *exprParser) parseAnd() (ast.NodeID, error) {
	left, err := p.parseNot()
	if err != nil {
		return ast.NoNode, err
	}
	for p.peek().Kind == lexer.AND {
		p.next()
		right, err := p.parseNot()
		if err != nil {
			return ast.NoNode, err
		}
		left = p.tree.NewBinary(lexer.AND, left, right)
	}
	return left, nil
}

func (p *exprParser) parseNot() (ast.NodeID, error) {
	if p.peek().Kind != lexer.NOT {
		return p.parseComparison()
	}
	if err := p.enter(); err != nil {
		return ast.NoNode, err
	}
	defer p.leave()
	p.next()
	operand, err := p.parseNot()
	if err != nil {
		return ast.NoNode, err
	}
	return p.tree.NewUnary(lexer.NOT, operand), nil
}

func (p *exprParser) parseComparison() (ast.NodeID, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return ast.NoNode, err
	}
	if op := p.peek().Kind; op.IsComparison() {
		p.next()
		right, err := p.parseAdditive()
		if err != nil {
			return ast.NoNode, err
		}
		return p.tree.NewBinary(op, left, right), nil
	}
	return left, nil
}

func (p *exprParser) parseAdditive() (ast.NodeID, error) {
	left, err := p.parseTerm()
	if err != nil {
		return ast.NoNode, err
	}
	for {
		op := p.peek().Kind
		if op != lexer.PLUS && op != lexer.MINUS {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return ast.NoNode, err
		}
		left = p.tree.NewBinary(op, left, right)
	}
}

func (p *exprParser) parseTerm() (ast.NodeID, error) {
	left, err := p.parsePower()
	if err != nil {
		return ast.NoNode, err
	}
	for {
		op := p.peek().Kind
		if op != lexer.STAR && op != lexer.SLASH && op != lexer.PERCENT {
			return left, nil
		}
		p.next()
		right, err := p.parsePower()
		if err != nil {
			return ast.NoNode, err
		}
		left = p.tree.NewBinary(op, left, right)
	}
}

// parsePower is left-associative: 2 ** 3 ** 2 is (2 ** 3) ** 2.
func (p *exprParser) parsePower() (ast.NodeID, error) {
	left, err := p.parseUnary()
	if err != nil {
		return ast.NoNode, err
	}
	for p.peek().Kind == lexer.POWER {
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return ast.NoNode, err
		}
		left = p.tree.NewBinary(lexer.POWER, left, right)
	}
	return left, nil
}

func (p *exprParser) parseUnary() (ast.NodeID, error) {
	if err := p.enter(); err != nil {
		return ast.NoNode, err
	}
	defer p.leave()
	switch p.peek().Kind {
	case lexer.MINUS, lexer.PLUS, lexer.NOT:
		op := p.next().Kind
		operand, err := p.parseUnary()
		if err != nil {
			return ast.NoNode, err
		}
		return p.tree.NewUnary(op, operand), nil
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (ast.NodeID, error) {
	t := p.next()
	switch t.Kind {
	case lexer.NUM:
		v, scale, err := ParseNumber(t.Text)
		if err != nil {
			return ast.NoNode, syntaxErr("invalid number %q", t.Text)
		}
		return p.tree.NewNumber(v, scale), nil
	case lexer.ID:
		switch p.peek().Kind {
		case lexer.LBRACKET:
			p.next()
			idx, err := p.parseAdditive()
			if err != nil {
				return ast.NoNode, err
			}
			if err := p.expect(lexer.RBRACKET); err != nil {
				return ast.NoNode, err
			}
			return p.tree.NewArrayIndex(t.Text, idx), nil
		case lexer.LPAREN:
			p.next()
			args, err := p.parseArgs()
			if err != nil {
				return ast.NoNode, err
			}
			return p.tree.NewCall(t.Text, args), nil
		}
		return p.tree.NewVarRef(t.Text), nil
	case lexer.LPAREN:
		var inner ast.NodeID
		var err error
		if p.cond {
			inner, err = p.parseOr()
		} else {
			inner, err = p.parseAdditive()
		}
		if err != nil {
			return ast.NoNode, err
		}
		if err := p.expect(lexer.RPAREN); err != nil {
			return ast.NoNode, err
		}
		return inner, nil
	case lexer.MATHFN:
		operand, err := p.parseUnary()
		if err != nil {
			return ast.NoNode, err
		}
		return p.tree.NewMathCall(t.Text, operand), nil
	case lexer.LEN, lexer.POP:
		name, err := p.parseArrayName()
		if err != nil {
			return ast.NoNode, err
		}
		if t.Kind == lexer.LEN {
			return p.tree.NewLen(name), nil
		}
		return p.tree.NewPop(name), nil
	case lexer.EOF:
		return ast.NoNode, syntaxErr("unexpected end of expression")
	}
	return ast.NoNode, syntaxErr("unexpected token %q", t.Text)
}

// parseArrayName accepts both `len a` and `len(a)`.
func (p *exprParser) parseArrayName() (string, error) {
	paren := p.peek().Kind == lexer.LPAREN
	if paren {
		p.next()
	}
	t := p.next()
	if t.Kind != lexer.ID {
		return "", syntaxErr("expected array name, got %q", t.Text)
	}
	if paren {
		if err := p.expect(lexer.RPAREN); err != nil {
			return "", err
		}
	}
	return t.Text, nil
}

func (p *exprParser) parseArgs() ([]ast.NodeID, error) {
	args := []ast.NodeID{}
	if p.peek().Kind == lexer.RPAREN {
		p.next()
		return args, nil
	}
	for {
		a, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		switch p.next().Kind {
		case lexer.COMMA:
			continue
		case lexer.RPAREN:
			return args, nil
		default:
			return nil, syntaxErr("missing ) in call arguments")
		}
	}
}

// ParseNumber converts a numeric literal or typed input into its value and
// display scale, the count of digits written after the decimal point.
func ParseNumber(text string) (float64, int, error) {
	text = strings.TrimSpace(text)
	if !isDecimalText(text) {
		return 0, 0, fmt.Errorf("not a decimal number: %q", text)
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, 0, err
	}
	scale := 0
	if i := strings.IndexByte(text, '.'); i >= 0 {
		scale = len(text) - i - 1
	}
	return v, scale, nil
}

// isDecimalText accepts an optional sign, digits and at most one decimal
// point. strconv alone would also take exponents, hex and "inf".
func isDecimalText(s string) bool {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")
	digits, dots := 0, 0
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}
