// Package parser builds an operator/operand tree from tagged tokens.
//
// Grammar, lowest to highest precedence:
//
//	expr    := term { ("+" | "-") term }
//	term    := postfix { ("*" | "/") postfix }
//	postfix := unary { "!" }
//	unary   := "-" unary | power
//	power   := primary [ "^" unary ]
//	primary := number | const | func "(" expr ")" | "(" expr ")"
//
// Factorial binds looser than unary minus so "-1!" means (-1)!, matching
// the calculator's input model where the sign is part of the operand.
package parser

import (
	"fmt"

	"github.com/calcdeck/backend/internal/engine/token"
)

// Node is a parsed expression tree node
type Node interface {
	node()
}

// Number is a numeric literal or constant
type Number struct {
	Value float64
}

// Unary is a prefix operator application (only negation)
type Unary struct {
	X Node
}

// Binary is an infix operator application
type Binary struct {
	Op          string
	Left, Right Node
}

// Call is a named function application
type Call struct {
	Name string
	Arg  Node
}

// Factorial is the postfix "!" application
type Factorial struct {
	X Node
}

func (Number) node()    {}
func (Unary) node()     {}
func (Binary) node()    {}
func (Call) node()      {}
func (Factorial) node() {}

type parser struct {
	toks []token.Token
	pos  int
}

// Parse consumes all tokens and returns the expression tree
func Parse(toks []token.Token) (Node, error) {
	p := &parser{toks: toks}
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, fmt.Errorf("unexpected token %q", p.peek().Text)
	}
	return n, nil
}

func (p *parser) parseExpr() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.peekOp("+") || p.peekOp("-") {
		op := p.next().Text
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseTerm() (Node, error) {
	left, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	for p.peekOp("*") || p.peekOp("/") {
		op := p.next().Text
		right, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parsePostfix() (Node, error) {
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for !p.eof() && p.peek().Kind == token.Bang {
		p.next()
		x = Factorial{X: x}
	}
	return x, nil
}

func (p *parser) parseUnary() (Node, error) {
	if p.peekOp("-") {
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Unary{X: x}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.peekOp("^") {
		p.next()
		// Right-associative; the exponent may carry its own sign.
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Binary{Op: "^", Left: base, Right: exp}, nil
	}
	return base, nil
}

func (p *parser) parsePrimary() (Node, error) {
	if p.eof() {
		return nil, fmt.Errorf("unexpected end of expression")
	}

	tok := p.next()
	switch tok.Kind {
	case token.Number, token.Const:
		return Number{Value: tok.Value}, nil

	case token.LParen:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return inner, nil

	case token.Func:
		if err := p.expect(token.LParen); err != nil {
			return nil, err
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return Call{Name: tok.Text, Arg: arg}, nil

	default:
		return nil, fmt.Errorf("unexpected token %q", tok.Text)
	}
}

func (p *parser) expect(kind token.Kind) error {
	if p.eof() {
		return fmt.Errorf("unexpected end of expression")
	}
	if p.peek().Kind != kind {
		return fmt.Errorf("unexpected token %q", p.peek().Text)
	}
	p.next()
	return nil
}

func (p *parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *parser) peekOp(op string) bool {
	return !p.eof() && p.toks[p.pos].Kind == token.Operator && p.toks[p.pos].Text == op
}

func (p *parser) next() token.Token {
	t := p.toks[p.pos]
	p.pos++
	return t
}

func (p *parser) eof() bool {
	return p.pos >= len(p.toks)
}
