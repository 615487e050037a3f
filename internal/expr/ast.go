package expr

import (
	"math"
	"strconv"
)

// Node is a parsed expression. Eval is safe for concurrent use.
type Node interface {
	Eval(x, y float64) (float64, error)
	String() string
}

type Num struct{ Value float64 }

func (n *Num) Eval(x, y float64) (float64, error) { return n.Value, nil }
func (n *Num) String() string                     { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

// Var is one of the two free variables.
type Var struct{ Name string }

func (v *Var) Eval(x, y float64) (float64, error) {
	if v.Name == "x" {
		return x, nil
	}
	return y, nil
}

func (v *Var) String() string { return v.Name }

type Neg struct{ Operand Node }

func (n *Neg) Eval(x, y float64) (float64, error) {
	v, err := n.Operand.Eval(x, y)
	if err != nil {
		return 0, err
	}
	return -v, nil
}

func (n *Neg) String() string { return "(-" + n.Operand.String() + ")" }

type Binary struct {
	Op          byte
	Left, Right Node
}

func (b *Binary) Eval(x, y float64) (float64, error) {
	l, err := b.Left.Eval(x, y)
	if err != nil {
		return 0, err
	}
	r, err := b.Right.Eval(x, y)
	if err != nil {
		return 0, err
	}

	switch b.Op {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	case '/':
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return l / r, nil
	default:
		return power(l, r)
	}
}

func (b *Binary) String() string {
	return "(" + b.Left.String() + " " + string(b.Op) + " " + b.Right.String() + ")"
}

type Call struct {
	Name string
	Args []Node
	fn   function
}

func (c *Call) Eval(x, y float64) (float64, error) {
	args := make([]float64, len(c.Args))
	for i, a := range c.Args {
		v, err := a.Eval(x, y)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}
	return c.fn.eval(args)
}

func (c *Call) String() string {
	s := c.Name + "("
	for i, a := range c.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ")"
}

func power(base, exp float64) (float64, error) {
	if base == 0 && exp < 0 {
		return 0, ErrDivisionByZero
	}
	if base < 0 && exp != math.Trunc(exp) {
		return 0, domainError("pow", base, exp)
	}
	return math.Pow(base, exp), nil
}
