package formulas

import (
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// Context is a context for evaluating expressions. It is not safe to use a
// Context concurrently.
type Context struct {
	stack []*big.Float
	nums  map[string]*big.Float
	prec  uint
	err   error
	done  bool
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type precopt uint

func (precopt) ctxOption() {}

// Prec sets the precision of calculations in bits.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is 64.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{nums: make(map[string]*big.Float), prec: 64}
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context and applies options to it. The returned
// context has no Result and is safe to use to evaluate an expression.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		stack: make([]*big.Float, 0, cap(ctx.stack)),
		nums:  make(map[string]*big.Float, len(ctx.nums)),
		prec:  ctx.prec,
	}
	// Loop backward so we apply the last precision.
	for i := len(opts) - 1; i >= 0; i-- {
		if p, ok := opts[i].(precopt); ok {
			n.prec = uint(p)
			break
		}
	}
	// Cached literals are only reusable at the same precision.
	if n.prec == ctx.prec {
		for k, v := range ctx.nums {
			n.nums[k] = v
		}
	}
	return &n
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Eval evaluates an expression and returns the result. If the expression is
// invalid, e.g. it divides by zero or an operator lacks operands, then the
// result is nil and ctx.Err returns the error.
func (ctx *Context) Eval(e *Expr) *big.Float {
	ctx.stack = ctx.stack[:0]
	ctx.err = e.eval(ctx)
	ctx.done = true
	return ctx.Result()
}

// Result returns the result obtained after evaluating an expression. Panics if
// ctx has not been used to evaluate an expression. Returns nil if an error
// occurred during evaluation.
func (ctx *Context) Result() *big.Float {
	if !ctx.done {
		panic("formulas: Context.Result called before evaluating any expression")
	}
	if ctx.err != nil {
		return nil
	}
	switch len(ctx.stack) {
	case 1:
		return ctx.stack[0]
	default:
		panic("formulas: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items")
	}
}

// Err returns the error that occurred while evaluating the last expression
// with ctx, if any.
func (ctx *Context) Err() error {
	return ctx.err
}

// Float64 returns the last result as a float64. If evaluation failed, or if
// the result is too large to represent, the result is NaN with an error that
// matches ErrInvalid.
func (ctx *Context) Float64() (float64, error) {
	r := ctx.Result()
	if r == nil {
		return math.NaN(), ctx.err
	}
	f, _ := r.Float64()
	if math.IsInf(f, 0) {
		return math.NaN(), &DomainError{X: new(big.Float).Copy(r)}
	}
	return f, nil
}

// push ensures a settable value on the stack.
func (ctx *Context) push() *big.Float {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(big.Float)
		}
	} else {
		ctx.stack = append(ctx.stack, new(big.Float))
	}
	return ctx.stack[len(ctx.stack)-1].SetPrec(ctx.prec)
}

// pop removes the top from the stack and returns it. The returned value may be
// modified by future pushes.
func (ctx *Context) pop() *big.Float {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *Context) top() *big.Float {
	return ctx.stack[len(ctx.stack)-1]
}

// num gets a possibly cached number from its text.
func (ctx *Context) num(s string) (*big.Float, bool) {
	if r := ctx.nums[s]; r != nil {
		return r, true
	}
	r, _, err := new(big.Float).SetPrec(ctx.prec).Parse(s, 10)
	if err != nil {
		return nil, false
	}
	ctx.nums[s] = r
	return r, true
}

// eval runs the RPN program, leaving its result on the context's stack.
func (e *Expr) eval(ctx *Context) (err error) {
	var cur step
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		// Operations on infinities that overflowed out of range, e.g.
		// inf - inf, panic with big.ErrNaN.
		nan, ok := r.(big.ErrNaN)
		if !ok {
			panic(r)
		}
		err = &DomainError{Col: cur.pos, Op: cur.op, Reason: nan.Error()}
	}()
	for _, cur = range e.prog {
		switch cur.op {
		case opNone:
			v, ok := ctx.num(cur.text)
			if !ok {
				return &NumberError{Col: cur.pos, Text: cur.text}
			}
			ctx.push().Set(v)
		case OpNeg:
			if len(ctx.stack) < 1 {
				return &UnderflowError{Col: cur.pos, Op: cur.op, Have: len(ctx.stack)}
			}
			v := ctx.top()
			v.Neg(v)
		case OpAdd, OpSub, OpMul, OpDiv, OpPow:
			if len(ctx.stack) < 2 {
				return &UnderflowError{Col: cur.pos, Op: cur.op, Have: len(ctx.stack)}
			}
			r := ctx.pop()
			l := ctx.top()
			if err := ctx.binary(cur, l, r); err != nil {
				return err
			}
		default:
			panic("formulas: invalid RPN step " + cur.op.String())
		}
	}
	if len(ctx.stack) != 1 {
		return &ResultError{N: len(ctx.stack)}
	}
	return nil
}

// binary sets l to l op r.
func (ctx *Context) binary(s step, l, r *big.Float) error {
	switch s.op {
	case OpAdd:
		l.Add(l, r)
	case OpSub:
		l.Sub(l, r)
	case OpMul:
		l.Mul(l, r)
	case OpDiv:
		if r.Sign() == 0 {
			return &DivisionError{Col: s.pos}
		}
		l.Quo(l, r)
	case OpPow:
		return ctx.pow(s, l, r)
	default:
		panic("formulas: not a binary operator: " + s.op.String())
	}
	return nil
}

// pow sets l to l ** r.
func (ctx *Context) pow(s step, l, r *big.Float) error {
	if l.IsInf() || r.IsInf() {
		return domain(s, l)
	}
	if r.IsInt() {
		if n, acc := r.Int64(); acc == big.Exact {
			return ctx.powi(s, l, n)
		}
	}
	switch l.Sign() {
	case -1:
		// Negative base with a fractional exponent is NaN.
		return domain(s, l)
	case 0:
		if r.Sign() < 0 {
			return domain(s, l)
		}
		l.SetInt64(0)
		return nil
	}
	// Estimate the binary exponent of the result so that absurd powers fail
	// fast instead of grinding through exp and log.
	lf, _ := l.Float64()
	rf, _ := r.Float64()
	switch e := rf * math.Log2(lf); {
	case math.IsNaN(e):
		// 1 ** inf-ish; the result is 1.
		l.SetInt64(1)
		return nil
	case e > big.MaxExp:
		return domain(s, l)
	case e < big.MinExp:
		l.SetInt64(0)
		return nil
	}
	bigfloat.Pow(l, l, r)
	return nil
}

// powi sets l to l ** n by repeated squaring.
func (ctx *Context) powi(s step, l *big.Float, n int64) error {
	u := uint64(n)
	if n < 0 {
		u = uint64(-(n + 1)) + 1
	}
	base := new(big.Float).SetPrec(ctx.prec).Set(l)
	acc := new(big.Float).SetPrec(ctx.prec).SetInt64(1)
	for u > 0 {
		if u&1 != 0 {
			acc.Mul(acc, base)
		}
		u >>= 1
		if u > 0 {
			base.Mul(base, base)
		}
	}
	if n < 0 {
		if acc.Sign() == 0 {
			return domain(s, l)
		}
		acc.Quo(base.SetInt64(1), acc)
	}
	l.Set(acc)
	return nil
}

// domain creates a DomainError for an operand that stays on the stack.
func domain(s step, x *big.Float) error {
	return &DomainError{Col: s.pos, Op: s.op, X: new(big.Float).Copy(x)}
}

// DomainError is an error indicating an operation whose result is not a finite
// real number, such as a negative number raised to a fractional power or a
// result too large for a float64. It implements InputError.
type DomainError struct {
	// Col is the position of the operator, or 0 if the error concerns the
	// final result.
	Col int
	// Op is the operator, if any.
	Op Op
	// X is the out-of-domain operand or result, if known.
	X *big.Float
	// Reason describes the failure when X is not known.
	Reason string
}

func (err *DomainError) Error() string {
	var r string
	switch {
	case err.X != nil:
		r = err.X.String() + " outside domain"
	case err.Reason != "":
		r = err.Reason
	default:
		r = "not a finite number"
	}
	if err.Op != opNone {
		r += " of " + err.Op.String()
	}
	if err.Col > 0 {
		return errpos(err.Col, r)
	}
	return r
}

func (err *DomainError) Pos() int {
	return err.Col
}

func (err *DomainError) Unwrap() error {
	return ErrInvalid
}

// Eval is a shortcut to parse a normalized formula and return its result.
func Eval(src io.RuneScanner, opts ...ContextOption) (*big.Float, error) {
	ctx := NewContext(opts...)
	a, err := Parse(src)
	if err != nil {
		return nil, err
	}
	ctx.Eval(a)
	return ctx.Result(), ctx.Err()
}

// EvalString normalizes, parses, and evaluates a formula string. On any
// failure, the result is NaN and the error matches ErrInvalid.
func EvalString(src string, opts ...ContextOption) (float64, error) {
	ctx := NewContext(opts...)
	a, err := Parse(strings.NewReader(Normalize(src)))
	if err != nil {
		return math.NaN(), err
	}
	ctx.Eval(a)
	return ctx.Float64()
}
