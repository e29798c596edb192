package formulas

import (
	"errors"
	"strconv"
)

// ErrInvalid is the uniform invalid-formula result. Every error produced by
// tokenizing, parsing, or evaluating a formula matches ErrInvalid under
// errors.Is.
var ErrInvalid = errors.New("invalid formula")

// OperatorError is an error indicating an operator token that is not
// understood by the parser. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "unknown operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

func (err *OperatorError) Unwrap() error {
	return ErrInvalid
}

// BracketError is an error indicating unbalanced parentheses in the input. It
// implements InputError.
type BracketError struct {
	// Col is the position of the unmatched parenthesis.
	Col int
	// Left is the opening parenthesis, if it is the unmatched one.
	Left string
	// Right is the closing parenthesis, if it is the unmatched one.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Unwrap() error {
	return ErrInvalid
}

// UnderflowError is an error indicating an operator evaluated with too few
// operands, e.g. a trailing operator. It implements InputError.
type UnderflowError struct {
	// Col is the position of the operator.
	Col int
	// Op is the operator.
	Op Op
	// Have is the number of operands that were available.
	Have int
}

func (err *UnderflowError) Error() string {
	return errpos(err.Col, "operator "+err.Op.String()+" needs "+strconv.Itoa(err.Op.Arity())+
		" operands but has "+strconv.Itoa(err.Have))
}

func (err *UnderflowError) Pos() int {
	return err.Col
}

func (err *UnderflowError) Unwrap() error {
	return ErrInvalid
}

// ResultError is an error indicating that evaluation did not end with exactly
// one value, e.g. because the formula was empty.
type ResultError struct {
	// N is the number of values left after evaluation.
	N int
}

func (err *ResultError) Error() string {
	if err.N == 0 {
		return "no expression"
	}
	return "expression leaves " + strconv.Itoa(err.N) + " values"
}

func (err *ResultError) Unwrap() error {
	return ErrInvalid
}

// DivisionError is an error indicating a division by exactly zero. It
// implements InputError.
type DivisionError struct {
	// Col is the position of the division operator.
	Col int
}

func (err *DivisionError) Error() string {
	return errpos(err.Col, "division by zero")
}

func (err *DivisionError) Pos() int {
	return err.Col
}

func (err *DivisionError) Unwrap() error {
	return ErrInvalid
}

// NumberError is an error indicating a numeric literal that is not a valid
// decimal number, e.g. "1.2.3". It implements InputError.
type NumberError struct {
	// Col is the position of the literal.
	Col int
	// Text is the literal.
	Text string
}

func (err *NumberError) Error() string {
	return errpos(err.Col, "invalid number "+strconv.Quote(err.Text))
}

func (err *NumberError) Pos() int {
	return err.Col
}

func (err *NumberError) Unwrap() error {
	return ErrInvalid
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*UnderflowError)(nil)
	_ InputError = (*DivisionError)(nil)
	_ InputError = (*NumberError)(nil)
	_ InputError = (*DomainError)(nil)
	_ InputError = (*LexError)(nil)
)
