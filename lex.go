package formulas

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Token is a single lexical element of a formula.
type Token struct {
	// Text is the source text of the token. For operators it is always the
	// canonical ASCII spelling.
	Text string
	// Kind is the type of the token.
	Kind TokenKind
	// Pos is the 1-based rune column of the first rune of the token.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the type of a token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// TokenNum is a run of digits and decimal points. The run is not validated
	// until evaluation.
	TokenNum
	// TokenOp is one of + - * / **.
	TokenOp
	// TokenOpen is an open parenthesis.
	TokenOpen
	// TokenClose is a close parenthesis.
	TokenClose
)

func (k TokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case TokenNum:
		return "Num"
	case TokenOp:
		return "Op"
	case TokenOpen:
		return "Open"
	case TokenClose:
		return "Close"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// singleOps contains the operator runes which are always tokens by
// themselves. * is handled separately because of **.
const singleOps = "+-/"

type lexer struct {
	src io.RuneScanner
	buf strings.Builder
	col int
	eof bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (rune, error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.col++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.col--
}

// next scans the next token from the input. The first time the input is
// exhausted, the result is an EOF token with a nil error. Subsequent calls
// return an empty token with io.EOF.
func (l *lexer) next() (Token, error) {
	if l.eof {
		return Token{}, io.EOF
	}
	defer l.buf.Reset()
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				l.eof = true
				return Token{Kind: tokenEOF, Pos: l.col + 1}, nil
			}
			return Token{Pos: l.col}, err
		}
		tok := Token{Pos: l.col}
		switch {
		case unicode.IsSpace(r):
			continue
		case '0' <= r && r <= '9', r == '.':
			l.buf.WriteRune(r)
			if err := l.scanNum(); err != nil {
				return tok, err
			}
			tok.Text = l.buf.String()
			tok.Kind = TokenNum
			return tok, nil
		case r == '*':
			tok.Text = "*"
			tok.Kind = TokenOp
			// ** has to be recognized here, or the parser would see two
			// multiplications in a row.
			s, err := l.readRune()
			switch {
			case err == nil && s == '*':
				tok.Text = "**"
			case err == nil:
				l.unreadRune()
			case !errors.Is(err, io.EOF):
				return tok, err
			}
			return tok, nil
		case strings.ContainsRune(singleOps, r):
			tok.Text = string(r)
			tok.Kind = TokenOp
			return tok, nil
		case r == '(':
			tok.Text = "("
			tok.Kind = TokenOpen
			return tok, nil
		case r == ')':
			tok.Text = ")"
			tok.Kind = TokenClose
			return tok, nil
		default:
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, &LexError{Text: l.buf.String(), Col: l.col}
		}
	}
}

// scanNum consumes digits and dots following the first rune of a number,
// which the caller has already written to buf.
func (l *lexer) scanNum() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if ('0' <= r && r <= '9') || r == '.' {
			l.buf.WriteRune(r)
			continue
		}
		l.unreadRune()
		return nil
	}
}

// Tokenize splits an arithmetic string into tokens. The input may contain
// only digits, decimal points, whitespace, parentheses, and the operators
// + - * / **. Any other rune results in a *LexError. Caller-facing glyphs
// such as × and ÷ must be rewritten with Normalize first.
func Tokenize(src string) ([]Token, error) {
	return tokenize(lex(strings.NewReader(src)))
}

func tokenize(scan *lexer) ([]Token, error) {
	var toks []Token
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == tokenEOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// LexError indicates a rune that cannot begin any token. It implements
// InputError.
type LexError struct {
	// Text is the offending rune.
	Text string
	// Col is the total number of runes scanned by the lexer up to and
	// including this error.
	Col int
}

func (err *LexError) Error() string {
	return errpos(err.Col, "invalid token "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

// Unwrap returns ErrInvalid.
func (err *LexError) Unwrap() error {
	return ErrInvalid
}
