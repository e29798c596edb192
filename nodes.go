package formulas

import (
	"strconv"
	"strings"
)

// Op is an arithmetic operator kind. Each kind has a fixed precedence and
// associativity.
type Op int8

const (
	opNone Op = iota

	OpAdd // a + b
	OpSub // a - b
	OpMul // a * b
	OpDiv // a / b
	OpPow // a ** b
	OpNeg // -a
)

func (o Op) String() string {
	switch o {
	case opNone:
		return "none"
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "**"
	case OpNeg:
		return "neg"
	default:
		return "Op(" + strconv.Itoa(int(o)) + ")"
	}
}

// Prec returns the precedence of the operator. Higher binds tighter.
func (o Op) Prec() int {
	return int(optable[o].prec)
}

// RightAssoc returns whether the operator is right-associative.
func (o Op) RightAssoc() bool {
	return optable[o].right
}

// Arity returns the number of operands the operator consumes.
func (o Op) Arity() int {
	switch o {
	case opNone:
		return 0
	case OpNeg:
		return 1
	default:
		return 2
	}
}

// step is one instruction of an RPN program. A step with op opNone pushes the
// number spelled by text.
type step struct {
	op   Op
	text string
	// pos is the column of the source token, for error reporting.
	pos int
}

func (s step) String() string {
	if s.op == opNone {
		return s.text
	}
	return s.op.String()
}

// fmtprog writes an RPN program as space-separated steps.
func fmtprog(b *strings.Builder, prog []step) {
	for i, s := range prog {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s.String())
	}
}
