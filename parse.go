package formulas

import (
	"io"
	"strings"
)

// Expr = num | Neg | Add | Sub | Mul | Div | Pow | '(' Expr ')'
// Neg = '-' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// Pow = Expr '**' Expr

// Expr is a parsed formula in reverse Polish order. It can be evaluated any
// number of times, with any Context.
type Expr struct {
	prog []step
}

// Parse reads a formula to its end and converts it to RPN. The source must
// already be normalized; see Normalize.
//
// An empty formula parses successfully to an empty program, which evaluates
// to an error. Missing operands are likewise detected only by evaluation.
func Parse(src io.RuneScanner) (*Expr, error) {
	toks, err := tokenize(lex(src))
	if err != nil {
		return nil, err
	}
	return ParseTokens(toks)
}

// ParseString is a shortcut to parse a normalized formula string.
func ParseString(src string) (*Expr, error) {
	return Parse(strings.NewReader(src))
}

// prevKind is the type of the previous token seen by the parser. It decides
// whether a - is negation or subtraction.
type prevKind int8

const (
	prevNone prevKind = iota
	prevNum
	prevOp
	prevOpen
	prevClose
)

// pending is an entry on the parser's operator stack.
type pending struct {
	operator
	// paren indicates an open parenthesis rather than an operator.
	paren bool
	pos   int
}

// ParseTokens converts a token sequence in infix order to an RPN program
// using the shunting-yard algorithm.
func ParseTokens(toks []Token) (*Expr, error) {
	var (
		out   = make([]step, 0, len(toks))
		stack []pending
		prev  prevKind
	)
	for _, tok := range toks {
		switch tok.Kind {
		case TokenNum:
			out = append(out, step{text: tok.Text, pos: tok.Pos})
			prev = prevNum
		case TokenOpen:
			stack = append(stack, pending{paren: true, pos: tok.Pos})
			prev = prevOpen
		case TokenClose:
			for {
				if len(stack) == 0 {
					return nil, &BracketError{Col: tok.Pos, Right: tok.Text}
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.paren {
					break
				}
				out = append(out, step{op: top.op, pos: top.pos})
			}
			prev = prevClose
		case TokenOp:
			// Only - has a prefix form. Any other operator where a value is
			// expected stays binary and underflows during evaluation.
			o := binop(tok.Text)
			unary := false
			if prev == prevNone || prev == prevOp || prev == prevOpen {
				if u := unop(tok.Text); u.op != opNone {
					o, unary = u, true
				}
			}
			if o.op == opNone {
				return nil, &OperatorError{Col: tok.Pos, Operator: tok.Text}
			}
			// A prefix operator has no left operand, so nothing on the stack
			// can be complete yet: x ** -y -> x ** (-y).
			if !unary {
				for len(stack) > 0 {
					top := stack[len(stack)-1]
					if top.paren || !top.pops(o) {
						break
					}
					out = append(out, step{op: top.op, pos: top.pos})
					stack = stack[:len(stack)-1]
				}
			}
			stack = append(stack, pending{operator: o, pos: tok.Pos})
			prev = prevOp
		default:
			panic("formulas: unknown token: " + tok.String())
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.paren {
			return nil, &BracketError{Col: top.pos, Left: "("}
		}
		out = append(out, step{op: top.op, pos: top.pos})
	}
	return &Expr{prog: out}, nil
}

// String renders the RPN program with steps separated by spaces, e.g.
// "2 3 4 * +". Negation is written "neg".
func (e *Expr) String() string {
	var b strings.Builder
	fmtprog(&b, e.prog)
	return b.String()
}

// Len returns the number of steps in the RPN program.
func (e *Expr) Len() int {
	return len(e.prog)
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the RPN instruction to emit when this operator is popped.
	op Op
}

// pops returns whether p, already on the operator stack, must be output before
// in is pushed.
func (p operator) pops(in operator) bool {
	if p.prec != in.prec {
		return p.prec > in.prec
	}
	return !in.right
}

var optable = [...]operator{
	opNone: {},
	OpAdd:  {1, false, OpAdd},
	OpSub:  {1, false, OpSub},
	OpMul:  {2, false, OpMul},
	OpDiv:  {2, false, OpDiv},
	OpNeg:  {3, true, OpNeg},
	OpPow:  {4, true, OpPow},
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of opNone.
func binop(text string) operator {
	switch text {
	case "+":
		return optable[OpAdd]
	case "-":
		return optable[OpSub]
	case "*":
		return optable[OpMul]
	case "/":
		return optable[OpDiv]
	case "**":
		return optable[OpPow]
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of opNone.
func unop(text string) operator {
	if text == "-" {
		return optable[OpNeg]
	}
	return operator{}
}
