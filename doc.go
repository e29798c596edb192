// Package formulas implements the arithmetic core of a measurement formula
// engine.
//
// Formulas are plain arithmetic over decimal literals with + - * / and **
// (exponentiation, also written ^), grouped by parentheses. "-2 ** 2" is the
// same as "-(2 ** 2)", and "2 ** 3 ** 2" is "2 ** (3 ** 2)". Source text is
// tokenized, converted to reverse Polish notation with the shunting-yard
// algorithm, and evaluated on a stack of arbitrary-precision floats.
//
// Evaluation never panics on bad input. Every failure is reported as an error
// that matches ErrInvalid under errors.Is, so callers can tell an invalid
// formula apart from a formula that evaluates to zero.
//
// Field references, chainage markers, and linked variables live in the
// measure and chainage subpackages.
package formulas
