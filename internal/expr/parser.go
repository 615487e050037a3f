package expr

import (
	"fmt"
	"math"

	"github.com/san-kum/odesolve/internal/dynamo"
)

type parser struct {
	toks []token
	pos  int
}

// Parse builds the expression tree for src.
func Parse(src string) (Node, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	if len(toks) == 1 {
		return nil, &SyntaxError{Pos: toks[0].pos, Msg: "empty expression"}
	}

	p := &parser{toks: toks}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.unexpected(tok)
	}
	return n, nil
}

// Compile parses src into a right-hand side evaluator. Non-finite results
// are reported as dynamo.ErrNonFiniteValue.
func Compile(src string) (dynamo.RHS, error) {
	root, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return func(x, y float64) (float64, error) {
		v, err := root.Eval(x, y)
		if err != nil {
			return 0, err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, dynamo.ErrNonFiniteValue
		}
		return v, nil
	}, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) unexpected(t token) error {
	if t.kind == tokEOF {
		return &SyntaxError{Pos: t.pos, Msg: "unexpected end of input"}
	}
	return &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("unexpected %q", t.text)}
}

func (p *parser) expect(kind tokenKind) (token, error) {
	t := p.next()
	if t.kind != kind {
		return t, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("expected %s, found %s", kind, describe(t))}
	}
	return t, nil
}

func describe(t token) string {
	if t.kind == tokEOF {
		return t.kind.String()
	}
	return fmt.Sprintf("%q", t.text)
}

func (p *parser) expr() (Node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokPlus && t.kind != tokMinus {
			return left, nil
		}
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: t.text[0], Left: left, Right: right}
	}
}

func (p *parser) term() (Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokStar && t.kind != tokSlash {
			return left, nil
		}
		p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: t.text[0], Left: left, Right: right}
	}
}

func (p *parser) unary() (Node, error) {
	switch p.peek().kind {
	case tokMinus:
		p.next()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Neg{Operand: operand}, nil
	case tokPlus:
		p.next()
		return p.unary()
	}
	return p.power()
}

// power is right-associative and binds tighter than a leading minus,
// so -x**2 is -(x**2) and 2**3**2 is 2**(3**2).
func (p *parser) power() (Node, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokPow {
		return base, nil
	}
	p.next()
	exp, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: '^', Left: base, Right: exp}, nil
}

func (p *parser) primary() (Node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return &Num{Value: t.num}, nil
	case tokLParen:
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return n, nil
	case tokName:
		if p.peek().kind == tokLParen {
			return p.call(t)
		}
		return p.name(t)
	}
	return nil, p.unexpected(t)
}

func (p *parser) name(t token) (Node, error) {
	switch t.text {
	case "x", "y":
		return &Var{Name: t.text}, nil
	}
	if v, ok := constants[t.text]; ok {
		return &Num{Value: v}, nil
	}
	if _, ok := functions[t.text]; ok {
		return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("function %s needs arguments", t.text)}
	}
	return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("unknown name %q", t.text)}
}

func (p *parser) call(t token) (Node, error) {
	fn, ok := functions[t.text]
	if !ok {
		return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("unknown function %q", t.text)}
	}
	p.next() // (

	var args []Node
	for {
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.peek().kind != tokComma {
			break
		}
		p.next()
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}

	if len(args) != fn.arity {
		return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("%s takes %d argument(s), got %d", t.text, fn.arity, len(args))}
	}
	return &Call{Name: t.text, Args: args, fn: fn}, nil
}
