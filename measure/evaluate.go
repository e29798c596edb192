package measure

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/zephyrtronium/formulas"
)

// MissingPolicy decides what an unresolved field label evaluates to.
type MissingPolicy int8

const (
	// FailOpenToZero resolves missing fields to 0. A live form can then show
	// a result while the user is still filling fields in. This is the
	// default.
	FailOpenToZero MissingPolicy = iota
	// FailClosed makes a missing field an invalid formula.
	FailClosed
)

func (p MissingPolicy) String() string {
	switch p {
	case FailOpenToZero:
		return "fail-open"
	case FailClosed:
		return "fail-closed"
	default:
		return "MissingPolicy(" + strconv.Itoa(int(p)) + ")"
	}
}

// Option is an option for assembling and evaluating formulas.
type Option interface {
	apply(*settings)
}

type settings struct {
	missing MissingPolicy
	log     *slog.Logger
	prec    uint
}

func newSettings(opts []Option) settings {
	var s settings
	for _, o := range opts {
		o.apply(&s)
	}
	return s
}

func (s *settings) debug(msg string, attrs ...slog.Attr) {
	if s.log != nil {
		s.log.LogAttrs(context.Background(), slog.LevelDebug, msg, attrs...)
	}
}

type missingopt MissingPolicy

func (o missingopt) apply(s *settings) { s.missing = MissingPolicy(o) }

// Missing sets the policy for unresolved fields.
func Missing(p MissingPolicy) Option {
	return missingopt(p)
}

type logopt struct{ l *slog.Logger }

func (o logopt) apply(s *settings) { s.log = o.l }

// Logger sets a logger that records unresolved fields and invalid results at
// debug level. By default nothing is logged.
func Logger(l *slog.Logger) Option {
	return logopt{l}
}

type precopt uint

func (o precopt) apply(s *settings) { s.prec = uint(o) }

// Prec sets the precision of evaluation in bits. See formulas.Prec.
func Prec(bits uint) Option {
	return precopt(bits)
}

// NameError is an error indicating a field label that does not resolve while
// missing fields fail closed. It matches formulas.ErrInvalid.
type NameError struct {
	// Index is the position of the item in the formula.
	Index int
	Label string
	// Linked indicates the label was looked up among linked variables.
	Linked bool
}

func (err *NameError) Error() string {
	kind := "field"
	if err.Linked {
		kind = "linked variable"
	}
	return "measure: item " + strconv.Itoa(err.Index) + ": unresolved " + kind + " " + strconv.Quote(err.Label)
}

func (err *NameError) Unwrap() error {
	return formulas.ErrInvalid
}

// Assemble substitutes each field in items with its value on f and returns the
// resulting arithmetic string. Negative values are parenthesized so that they
// keep their sign under **. Operator glyphs are normalized. Literals are
// grouped in parentheses.
//
// Linked fields resolve against f.Linked by label; other fields resolve
// against f.Vars. f may be nil, in which case no field resolves.
func Assemble(items Formula, f *Form, opts ...Option) (string, error) {
	s := newSettings(opts)
	return assemble(items, f, &s)
}

func assemble(items Formula, f *Form, s *settings) (string, error) {
	vars := f.Vars()
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch it.Kind {
		case ItemField:
			var (
				x  float64
				ok bool
			)
			if it.Linked {
				x, ok = f.linked(it.Label)
			} else {
				x, ok = vars.Lookup(it.Label)
			}
			if !ok {
				if s.missing == FailClosed {
					return "", &NameError{Index: i, Label: it.Label, Linked: it.Linked}
				}
				s.debug("unresolved field reads as zero", slog.Int("index", i), slog.String("label", it.Label), slog.Bool("linked", it.Linked))
			}
			writeValue(&b, x)
		case ItemOperator:
			sym, ok := formulas.NormalizeOperator(it.Symbol)
			if !ok {
				// Left for the tokenizer to reject.
				sym = it.Symbol
			}
			b.WriteString(sym)
		case ItemLiteral:
			b.WriteByte('(')
			b.WriteString(formulas.Normalize(it.Symbol))
			b.WriteByte(')')
		default:
			panic("measure: unknown item kind " + it.Kind.String())
		}
	}
	return b.String(), nil
}

func writeValue(b *strings.Builder, x float64) {
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if x < 0 {
		b.WriteByte('(')
		b.WriteString(s)
		b.WriteByte(')')
		return
	}
	b.WriteString(s)
}

// Evaluate assembles items against f, evaluates the result, and applies the
// extension rule. If the formula is invalid, the result is NaN and the error
// matches formulas.ErrInvalid.
func Evaluate(items Formula, f *Form, opts ...Option) (float64, error) {
	s := newSettings(opts)
	src, err := assemble(items, f, &s)
	if err != nil {
		s.debug("invalid formula", slog.String("formula", items.String()), slog.Any("err", err))
		return math.NaN(), err
	}
	var eo []formulas.ContextOption
	if s.prec != 0 {
		eo = append(eo, formulas.Prec(s.prec))
	}
	r, err := formulas.EvalString(src, eo...)
	if err != nil {
		s.debug("invalid formula", slog.String("formula", items.String()), slog.String("arith", src), slog.Any("err", err))
		return math.NaN(), fmt.Errorf("measure: %q: %w", src, err)
	}
	if f.ExtensionApplies() {
		ext, _ := f.Extension()
		r *= ext
		if math.IsInf(r, 0) {
			err := &formulas.DomainError{Reason: "result times extension " + strconv.FormatFloat(ext, 'g', -1, 64) + " overflows"}
			s.debug("invalid formula", slog.String("formula", items.String()), slog.String("arith", src), slog.Any("err", err))
			return math.NaN(), err
		}
	}
	return r, nil
}
