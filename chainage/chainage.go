// Package chainage reads and writes linear positions along a route.
//
// A position is written as "<major>+<minor>", where major counts whole
// segments and minor is the remainder in base length units. Station notation
// uses 20-unit segments, so "12+5,000" is 245 units from the origin; kilometer
// notation uses 1000-unit segments. Numbers use Brazilian separators by
// default: "." groups thousands and "," marks decimals.
//
// Parse is fail-open: empty or malformed text reads as offset 0, which keeps
// a half-typed marker from breaking a live form. That also means a typo reads
// as zero distance without complaint. Callers that must reject bad markers
// use ParseStrict instead.
package chainage

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Notation is a chainage notation, identified by its segment length.
type Notation int8

const (
	// None means no positional fields are active.
	None Notation = iota
	// Station is the 20-unit "estaca" notation.
	Station
	// Kilometer is the 1000-unit notation.
	Kilometer
)

// Segment returns the number of base units in one major step, or 0 for None.
func (n Notation) Segment() float64 {
	switch n {
	case Station:
		return 20
	case Kilometer:
		return 1000
	default:
		return 0
	}
}

// Active returns whether n is a positional notation.
func (n Notation) Active() bool {
	return n.Segment() != 0
}

func (n Notation) String() string {
	switch n {
	case None:
		return "none"
	case Station:
		return "station"
	case Kilometer:
		return "kilometer"
	default:
		return "Notation(" + strconv.Itoa(int(n)) + ")"
	}
}

// ParseNotation parses a notation name. It accepts the names produced by
// String as well as "estaca" and "km".
func ParseNotation(s string) (Notation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "station", "estaca", "est":
		return Station, nil
	case "kilometer", "kilometre", "km":
		return Kilometer, nil
	default:
		return None, &NotationError{Name: s}
	}
}

// MarshalText implements encoding.TextMarshaler.
func (n Notation) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Notation) UnmarshalText(text []byte) error {
	v, err := ParseNotation(string(text))
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// NotationError is an error indicating an unknown notation name.
type NotationError struct {
	Name string
}

func (err *NotationError) Error() string {
	return "chainage: unknown notation " + strconv.Quote(err.Name)
}

// SyntaxError is an error indicating a marker that cannot be read.
type SyntaxError struct {
	// Text is the marker as given.
	Text string
	// Notation is the notation the marker was read in.
	Notation Notation
	// Reason describes the problem.
	Reason string
}

func (err *SyntaxError) Error() string {
	return "chainage: invalid " + err.Notation.String() + " marker " + strconv.Quote(err.Text) + ": " + err.Reason
}

// Codec reads and writes markers in one notation and locale.
type Codec struct {
	notation Notation
	tag      language.Tag
	group    rune
	decimal  rune
}

// defaultTag is the locale of the package-level functions.
var defaultTag = language.BrazilianPortuguese

// NewCodec creates a codec for a notation. Separators for reading are taken
// from how tag formats numbers; language.Und selects Brazilian Portuguese.
func NewCodec(n Notation, tag language.Tag) *Codec {
	if tag == language.Und {
		tag = defaultTag
	}
	c := &Codec{notation: n, tag: tag, group: '.', decimal: ','}
	if tag != defaultTag {
		c.group, c.decimal = separators(tag)
	}
	return c
}

// separators discovers the grouping and decimal separators of a locale by
// formatting a sample number. Locales that don't write ASCII digits fall back
// to the default separators.
func separators(tag language.Tag) (group, decimal rune) {
	s := message.NewPrinter(tag).Sprintf("%v", number.Decimal(1234567.5, number.Scale(1)))
	var seps []rune
	for _, r := range s {
		if r < '0' || r > '9' {
			seps = append(seps, r)
		}
	}
	if len(seps) == 0 || !strings.HasPrefix(s, "1") || !strings.HasSuffix(s, "5") {
		return '.', ','
	}
	decimal = seps[len(seps)-1]
	if len(seps) > 1 {
		group = seps[0]
	}
	return group, decimal
}

// Notation returns the codec's notation.
func (c *Codec) Notation() Notation {
	return c.notation
}

// Parse reads a marker as an offset in base units. Empty or malformed markers
// read as 0.
func (c *Codec) Parse(text string) float64 {
	v, err := c.ParseStrict(text)
	if err != nil {
		return 0
	}
	return v
}

// ParseStrict reads a marker as an offset in base units. Text with a + is
// split at the first + into a segment count and a remainder; text without one
// is a segment count alone, so "12" in station notation is 240.
func (c *Codec) ParseStrict(text string) (float64, error) {
	k := c.notation.Segment()
	if k == 0 {
		return 0, &SyntaxError{Text: text, Notation: c.notation, Reason: "no positional notation"}
	}
	major, minor, split := strings.Cut(text, "+")
	a, err := c.decimalValue(major)
	if err != nil {
		return 0, &SyntaxError{Text: text, Notation: c.notation, Reason: err.Error()}
	}
	if !split {
		return a * k, nil
	}
	b, err := c.decimalValue(minor)
	if err != nil {
		return 0, &SyntaxError{Text: text, Notation: c.notation, Reason: err.Error()}
	}
	return a*k + b, nil
}

// decimalValue parses a locale-formatted decimal number.
func (c *Codec) decimalValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	var b strings.Builder
	digits, points := 0, 0
	for i, r := range s {
		switch {
		case '0' <= r && r <= '9':
			b.WriteRune(r)
			digits++
		case r == c.decimal:
			b.WriteByte('.')
			points++
		case r == c.group:
			// Thousands separators carry no value.
		case r == '-' && i == 0:
			b.WriteRune(r)
		case unicode.IsSpace(r) && unicode.IsSpace(c.group):
			// Locales that group with a no-break space are often typed with
			// a plain one.
		default:
			return 0, errString("unexpected " + strconv.QuoteRune(r) + " in " + strconv.Quote(s))
		}
	}
	switch {
	case digits == 0:
		return 0, errString("missing number")
	case points > 1:
		return 0, errString("more than one decimal separator in " + strconv.Quote(s))
	}
	return strconv.ParseFloat(b.String(), 64)
}

type errString string

func (e errString) Error() string {
	return string(e)
}

// Split divides an offset into whole segments and the remainder, after
// rounding to thousandths. The remainder is always in [0, segment). For None,
// the major part is 0 and the remainder is the rounded offset.
func (c *Codec) Split(offset float64) (major int64, minor float64) {
	offset = math.Round(offset*1000) / 1000
	k := c.notation.Segment()
	if k == 0 {
		return 0, offset
	}
	m := math.Floor(offset / k)
	minor = math.Round((offset-m*k)*1000) / 1000
	if minor >= k {
		m++
		minor -= k
	}
	if minor < 0 {
		m--
		minor += k
	}
	return int64(m), minor
}

// Format writes an offset as "<major> + <minor>" with the minor part to three
// decimals, e.g. 145.5 in station notation is "7 + 5,500". For None, the
// offset is written as a plain number.
func (c *Codec) Format(offset float64) string {
	p := message.NewPrinter(c.tag)
	major, minor := c.Split(offset)
	if !c.notation.Active() {
		return p.Sprintf("%v", number.Decimal(minor, number.Scale(3)))
	}
	return p.Sprintf("%v + %v", number.Decimal(major), number.Decimal(minor, number.Scale(3)))
}

// Distance returns the absolute distance between two markers. It is symmetric
// and never negative. Malformed markers read as 0, as with Parse.
func (c *Codec) Distance(start, end string) float64 {
	return math.Abs(c.Parse(end) - c.Parse(start))
}

// Parse reads a marker in Brazilian number format. See Codec.Parse.
func Parse(text string, n Notation) float64 {
	return NewCodec(n, defaultTag).Parse(text)
}

// ParseStrict reads a marker in Brazilian number format. See Codec.ParseStrict.
func ParseStrict(text string, n Notation) (float64, error) {
	return NewCodec(n, defaultTag).ParseStrict(text)
}

// Format writes an offset in Brazilian number format. See Codec.Format.
func Format(offset float64, n Notation) string {
	return NewCodec(n, defaultTag).Format(offset)
}

// Distance returns the absolute distance between two markers in Brazilian
// number format. See Codec.Distance.
func Distance(start, end string, n Notation) float64 {
	return NewCodec(n, defaultTag).Distance(start, end)
}
