package formulas

import "strings"

// glyphs maps caller-facing operator spellings to canonical ASCII.
var glyphs = strings.NewReplacer(
	"×", "*",
	"÷", "/",
	"−", "-", // U+2212 MINUS SIGN
	"–", "-", // U+2013 EN DASH, which some keyboards substitute for minus
	"^", "**",
)

// Normalize rewrites operator glyphs in s to the ASCII operators understood by
// Tokenize: × becomes *, ÷ becomes /, − becomes -, and ^ becomes **. Other text
// is unchanged.
func Normalize(s string) string {
	return glyphs.Replace(s)
}

// NormalizeOperator maps a single operator symbol, as held by a formula chip,
// to its canonical spelling. Parentheses are returned unchanged. The second
// result is false if sym is not an operator or parenthesis.
func NormalizeOperator(sym string) (string, bool) {
	s := Normalize(strings.TrimSpace(sym))
	switch s {
	case "+", "-", "*", "/", "**", "(", ")":
		return s, true
	case "x", "X":
		// Chips typed from a keyboard often use the letter for times.
		return "*", true
	default:
		return "", false
	}
}
