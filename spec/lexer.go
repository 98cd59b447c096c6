package spec

import (
	"strings"

	"github.com/sandialabs/elucidator-go/errs"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIdent
	tokUint
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokColon
	tokComma
	tokSemicolon
)

type token struct {
	kind   tokenKind
	text   string
	offset int
}

// lexer is a byte-offset-tracking scanner over a spec string. It never
// allocates beyond the occasional sub-slice of the input, since identifiers
// and numbers are returned as slices of src rather than copies.
type lexer struct {
	src string
	pos int
}

func newLexer(src string) *lexer {
	return &lexer{src: src}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			l.pos++
			continue
		}

		break
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// next returns the next token in the stream, advancing the lexer past it.
func (l *lexer) next() (token, error) {
	l.skipSpace()

	if l.pos >= len(l.src) {
		return token{kind: tokEOF, offset: l.pos}, nil
	}

	start := l.pos
	c := l.src[l.pos]

	switch {
	case c == '(':
		l.pos++
		return token{kind: tokLParen, text: "(", offset: start}, nil
	case c == ')':
		l.pos++
		return token{kind: tokRParen, text: ")", offset: start}, nil
	case c == '[':
		l.pos++
		return token{kind: tokLBracket, text: "[", offset: start}, nil
	case c == ']':
		l.pos++
		return token{kind: tokRBracket, text: "]", offset: start}, nil
	case c == ':':
		l.pos++
		return token{kind: tokColon, text: ":", offset: start}, nil
	case c == ',':
		l.pos++
		return token{kind: tokComma, text: ",", offset: start}, nil
	case c == ';':
		l.pos++
		return token{kind: tokSemicolon, text: ";", offset: start}, nil
	case isIdentStart(c):
		for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
			l.pos++
		}

		text := l.src[start:l.pos]
		if text[0] == '_' {
			return token{}, parseErr(start, text, errs.ErrInvalidIdent)
		}

		return token{kind: tokIdent, text: text, offset: start}, nil
	case isDigit(c):
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}

		return token{kind: tokUint, text: l.src[start:l.pos], offset: start}, nil
	default:
		return token{}, parseErr(start, string(c), errs.ErrUnexpectedChar)
	}
}

// peekRest returns the unconsumed tail of the input for trailing-garbage
// diagnostics, trimmed of leading whitespace.
func (l *lexer) peekRest() string {
	return strings.TrimLeft(l.src[l.pos:], " \t\r\n")
}
