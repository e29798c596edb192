// Package measure builds measurement formulas from field and operator chips,
// resolves field labels against a form's values, and evaluates the result.
//
// A formula is a sequence of Items as the user clicked them. Evaluate turns it
// into an arithmetic string by substituting each field with its value, hands
// that to the formulas package, and then applies the extension rule: when the
// form measures along a route and asks for it, the result is multiplied by the
// distance between the start and end markers.
package measure

import (
	"strconv"
	"strings"
)

// ItemKind is the kind of a formula item.
type ItemKind int8

const (
	// ItemField is a reference to a field by label.
	ItemField ItemKind = iota
	// ItemOperator is an operator symbol or parenthesis.
	ItemOperator
	// ItemLiteral is a free-form numeric expression.
	ItemLiteral
)

func (k ItemKind) String() string {
	switch k {
	case ItemField:
		return "field"
	case ItemOperator:
		return "operator"
	case ItemLiteral:
		return "literal"
	default:
		return "ItemKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Item is one chip of a formula. It refers to values only by label.
type Item struct {
	Kind ItemKind
	// Label is the field label of a field item.
	Label string
	// Linked indicates that a field item resolves against linked variables
	// rather than the form's own fields.
	Linked bool
	// Symbol is the operator symbol or literal text.
	Symbol string
}

// Field creates a reference to a form field.
func Field(label string) Item {
	return Item{Kind: ItemField, Label: label}
}

// LinkedField creates a reference to a linked variable.
func LinkedField(label string) Item {
	return Item{Kind: ItemField, Label: label, Linked: true}
}

// Operator creates an operator item. Glyph variants such as × and ÷ are
// accepted.
func Operator(sym string) Item {
	return Item{Kind: ItemOperator, Symbol: sym}
}

// Literal creates a free-form numeric expression item. It is evaluated as a
// parenthesized group.
func Literal(text string) Item {
	return Item{Kind: ItemLiteral, Symbol: text}
}

func (it Item) String() string {
	switch it.Kind {
	case ItemField:
		if it.Linked {
			return "{" + it.Label + "}"
		}
		return "[" + it.Label + "]"
	case ItemLiteral:
		return "(" + it.Symbol + ")"
	default:
		return it.Symbol
	}
}

// Formula is an ordered sequence of items. Methods that change a formula
// return a new one and leave the receiver unmodified.
type Formula []Item

// Append returns the formula with items added at the end.
func (f Formula) Append(items ...Item) Formula {
	r := make(Formula, 0, len(f)+len(items))
	r = append(r, f...)
	return append(r, items...)
}

// Remove returns the formula without the item at index i. An index out of
// range returns an unchanged copy.
func (f Formula) Remove(i int) Formula {
	r := make(Formula, 0, len(f))
	r = append(r, f...)
	if i < 0 || i >= len(f) {
		return r
	}
	return append(r[:i], r[i+1:]...)
}

// String renders the formula for display, e.g. "[Width] × [Height]". Linked
// fields are shown in braces.
func (f Formula) String() string {
	var b strings.Builder
	for i, it := range f {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(it.String())
	}
	return b.String()
}

// Fields returns the labels referenced by field items, in order of first
// appearance.
func (f Formula) Fields() []string {
	var r []string
	seen := make(map[string]bool)
	for _, it := range f {
		if it.Kind != ItemField || seen[it.Label] {
			continue
		}
		seen[it.Label] = true
		r = append(r, it.Label)
	}
	return r
}
