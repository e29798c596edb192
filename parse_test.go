package formulas

import (
	"errors"
	"testing"
)

func TestOpPrecs(t *testing.T) {
	cases := []struct {
		op    Op
		prec  int
		right bool
		arity int
	}{
		{OpAdd, 1, false, 2},
		{OpSub, 1, false, 2},
		{OpMul, 2, false, 2},
		{OpDiv, 2, false, 2},
		{OpNeg, 3, true, 1},
		{OpPow, 4, true, 2},
	}
	for _, c := range cases {
		if p := c.op.Prec(); p != c.prec {
			t.Errorf("%v: want prec %d, got %d", c.op, c.prec, p)
		}
		if r := c.op.RightAssoc(); r != c.right {
			t.Errorf("%v: want right-assoc %t, got %t", c.op, c.right, r)
		}
		if a := c.op.Arity(); a != c.arity {
			t.Errorf("%v: want arity %d, got %d", c.op, c.arity, a)
		}
	}
}

func TestOpsExist(t *testing.T) {
	for _, s := range []string{"+", "-", "*", "/", "**"} {
		if binop(s).op == opNone {
			t.Errorf("no binary operator for %s", s)
		}
	}
	if unop("-").op != OpNeg {
		t.Errorf("no unary operator for -")
	}
	if unop("+").op != opNone {
		t.Errorf("unexpected unary +")
	}
}

func TestParseRPN(t *testing.T) {
	cases := []struct {
		name string
		src  string
		rpn  string
	}{
		{"empty", "", ""},
		{"num", "1", "1"},
		{"paren", "(1)", "1"},
		{"multi", "((((1))))", "1"},

		{"add", "1+2", "1 2 +"},
		{"sub", "1-2", "1 2 -"},
		{"mul", "1*2", "1 2 *"},
		{"div", "1/2", "1 2 /"},
		{"pow", "1**2", "1 2 **"},
		{"neg", "-1", "1 neg"},
		{"negneg", "--1", "1 neg neg"},

		{"add4", "1+2+3+4", "1 2 + 3 + 4 +"},
		{"sub4", "1-2-3-4", "1 2 - 3 - 4 -"},
		{"mul4", "1*2*3*4", "1 2 * 3 * 4 *"},
		{"div4", "1/2/3/4", "1 2 / 3 / 4 /"},
		{"pow4", "1**2**3**4", "1 2 3 4 ** ** **"},

		{"prec", "2 + 3 * 4", "2 3 4 * +"},
		{"group", "(2 + 3) * 4", "2 3 + 4 *"},
		{"desc", "1**2*3+4", "1 2 ** 3 * 4 +"},
		{"asc", "1+2*3**4", "1 2 3 4 ** * +"},
		{"negpow", "-2 ** 2", "2 2 ** neg"},
		{"negmul", "-2 * 3", "2 neg 3 *"},
		{"neggroup", "-(2+3)", "2 3 + neg"},
		{"negsub", "-1-1", "1 neg 1 -"},
		{"subneg", "1 - -1", "1 1 neg -"},
		{"mulneg", "2 * -3", "2 3 neg *"},
		{"powneg", "2 ** -1", "2 1 neg **"},
		{"pownegpow", "2 ** -3 ** 2", "2 3 2 ** neg **"},
		{"closeminus", "(1) - 2", "1 2 -"},
		{"openminus", "(-1)", "1 neg"},

		// Not rejected here; evaluation finds the missing operands.
		{"trailing", "1 +", "1 +"},
		{"leading", "* 1", "1 *"},
		{"double", "1 + * 2", "1 2 * +"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.src, err)
			}
			if got := a.String(); got != c.rpn {
				t.Errorf("%q: want RPN %q, got %q", c.src, c.rpn, got)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		pos  int
	}{
		{"open", "(2 + 3", 1},
		{"close", "2 + 3)", 6},
		{"nested", "((1)", 1},
		{"backwards", ")(", 1},
		{"lex", "2 + a", 5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			if err == nil {
				t.Fatalf("%q parsed to %v", c.src, a)
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("%v is not ErrInvalid", err)
			}
			var ie InputError
			if !errors.As(err, &ie) {
				t.Fatalf("%#v is not InputError", err)
			}
			if ie.Pos() != c.pos {
				t.Errorf("wrong position: want %d, got %d", c.pos, ie.Pos())
			}
		})
	}
}

func TestParseBracketError(t *testing.T) {
	_, err := ParseString("(1")
	var be *BracketError
	if !errors.As(err, &be) || be.Left != "(" {
		t.Errorf("want unclosed ( error, got %#v", err)
	}
	_, err = ParseString("1)")
	if !errors.As(err, &be) || be.Right != ")" {
		t.Errorf("want unopened ) error, got %#v", err)
	}
}

func TestParseTokensOperatorError(t *testing.T) {
	toks := []Token{
		{Text: "1", Kind: TokenNum, Pos: 1},
		{Text: "%", Kind: TokenOp, Pos: 2},
		{Text: "2", Kind: TokenNum, Pos: 3},
	}
	_, err := ParseTokens(toks)
	var oe *OperatorError
	if !errors.As(err, &oe) {
		t.Fatalf("want *OperatorError, got %#v", err)
	}
	if oe.Operator != "%" || oe.Pos() != 2 {
		t.Errorf("wrong error contents: %+v", oe)
	}
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("%v is not ErrInvalid", err)
	}
}
