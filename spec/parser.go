package spec

import (
	"strconv"

	"github.com/sandialabs/elucidator-go/errs"
)

var dtypeByName = func() map[string]DataType {
	m := make(map[string]DataType, len(typeNames))
	for dt, name := range typeNames {
		m[name] = DataType(dt)
	}

	return m
}()

// parser consumes a token stream produced by a lexer and builds a
// Specification. It never panics: every failure path returns a *ParseError.
type parser struct {
	lex  *lexer
	cur  token
	seen map[string]struct{}
}

func newParser(src string) (*parser, error) {
	p := &parser{lex: newLexer(src), seen: make(map[string]struct{})}
	if err := p.advance(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}

	p.cur = tok

	return nil
}

func (p *parser) expect(kind tokenKind, sentinel error) (token, error) {
	if p.cur.kind != kind {
		if p.cur.kind == tokEOF {
			return token{}, parseErr(p.cur.offset, "", errs.ErrUnexpectedEof)
		}

		return token{}, parseErr(p.cur.offset, p.cur.text, sentinel)
	}

	tok := p.cur
	if err := p.advance(); err != nil {
		return token{}, err
	}

	return tok, nil
}

// Parse parses a full specification: designation '(' members ')'
// ( '(' context ')' )? ';'? with nothing but whitespace trailing.
func Parse(src string) (*Specification, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}

	spec, err := p.parseSpecification()
	if err != nil {
		return nil, err
	}

	if p.cur.kind != tokEOF {
		return nil, parseErr(p.cur.offset, p.lex.peekRest(), errs.ErrTrailingGarbage)
	}

	return spec, nil
}

// ParseMembers parses the reduced form: a bare, comma-separated member list
// with no surrounding designation or context, for callers that already know
// the designation out of band (for example, a designation supplied
// separately by a registry lookup).
func ParseMembers(src string) ([]MemberSpec, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}

	members, err := p.parseMemberList()
	if err != nil {
		return nil, err
	}

	if p.cur.kind != tokEOF {
		return nil, parseErr(p.cur.offset, p.lex.peekRest(), errs.ErrTrailingGarbage)
	}

	return members, nil
}

func (p *parser) parseSpecification() (*Specification, error) {
	designationTok, err := p.expect(tokIdent, errs.ErrInvalidIdent)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(tokLParen, errs.ErrUnexpectedChar); err != nil {
		return nil, err
	}

	members, err := p.parseMemberList()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(tokRParen, errs.ErrUnexpectedChar); err != nil {
		return nil, err
	}

	var context string
	if p.cur.kind == tokLParen {
		if err := p.advance(); err != nil {
			return nil, err
		}

		context, err = p.parseContext()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(tokRParen, errs.ErrUnexpectedChar); err != nil {
			return nil, err
		}
	}

	if p.cur.kind == tokSemicolon {
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	return &Specification{
		Designation: designationTok.text,
		Members:     members,
		Context:     context,
	}, nil
}

// parseContext collects the raw source text between the context
// parentheses, trimmed of surrounding whitespace. The text is still
// scanned by the lexer, so it may contain only identifiers, unsigned
// numbers, whitespace, balanced parentheses and the characters ':' ','
// ';' '[' ']'; any other character fails with ErrUnexpectedChar, and a
// word starting with '_' fails with ErrInvalidIdent.
func (p *parser) parseContext() (string, error) {
	start := p.cur.offset
	depth := 1

	for {
		switch p.cur.kind {
		case tokEOF:
			return "", parseErr(p.cur.offset, "", errs.ErrUnexpectedEof)
		case tokLParen:
			depth++
		case tokRParen:
			depth--
			if depth == 0 {
				return trimmedSlice(p.lex.src, start, p.cur.offset), nil
			}
		}

		if err := p.advance(); err != nil {
			return "", err
		}
	}
}

func trimmedSlice(src string, start, end int) string {
	for start < end && isSpaceByte(src[start]) {
		start++
	}

	for end > start && isSpaceByte(src[end-1]) {
		end--
	}

	return src[start:end]
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func (p *parser) parseMemberList() ([]MemberSpec, error) {
	var members []MemberSpec

	// An empty member list (bare "()" or empty input for ParseMembers) is
	// accepted and yields a zero-member specification; no later step
	// rejects it.
	if p.cur.kind != tokIdent {
		return members, nil
	}

	for {
		m, err := p.parseMember()
		if err != nil {
			return nil, err
		}

		if _, dup := p.seen[m.Name]; dup {
			return nil, parseErr(p.cur.offset, m.Name, errs.ErrDuplicateMember)
		}

		p.seen[m.Name] = struct{}{}
		members = append(members, m)

		if p.cur.kind != tokComma {
			break
		}

		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	return members, nil
}

func (p *parser) parseMember() (MemberSpec, error) {
	nameTok, err := p.expect(tokIdent, errs.ErrInvalidIdent)
	if err != nil {
		return MemberSpec{}, err
	}

	if _, err := p.expect(tokColon, errs.ErrUnexpectedChar); err != nil {
		return MemberSpec{}, err
	}

	dtypeTok, err := p.expect(tokIdent, errs.ErrUnknownDtype)
	if err != nil {
		return MemberSpec{}, err
	}

	dt, ok := dtypeByName[dtypeTok.text]
	if !ok {
		return MemberSpec{}, parseErr(dtypeTok.offset, dtypeTok.text, errs.ErrUnknownDtype)
	}

	form := ArrayForm{Kind: Scalar}

	if p.cur.kind == tokLBracket {
		if err := p.advance(); err != nil {
			return MemberSpec{}, err
		}

		if dt == String {
			return MemberSpec{}, parseErr(dtypeTok.offset, dtypeTok.text, errs.ErrStringAsArray)
		}

		if p.cur.kind == tokRBracket {
			form.Kind = Dynamic
		} else {
			lenTok, err := p.expect(tokUint, errs.ErrUnexpectedChar)
			if err != nil {
				return MemberSpec{}, err
			}

			n, convErr := strconv.Atoi(lenTok.text)
			if convErr != nil || n <= 0 {
				return MemberSpec{}, parseErr(lenTok.offset, lenTok.text, errs.ErrZeroOrNegativeArrayLen)
			}

			form.Kind = Fixed
			form.Len = n
		}

		if _, err := p.expect(tokRBracket, errs.ErrUnexpectedChar); err != nil {
			return MemberSpec{}, err
		}
	}

	return MemberSpec{Name: nameTok.text, Type: dt, Array: form}, nil
}
