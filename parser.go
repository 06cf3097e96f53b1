package kleene

import (
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

// The lexer keeps whitespace as tokens so that every byte of the input is accounted for;
// the parser drops them.
var regexpLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Epsilon", Pattern: `ε`},
	{Name: "EmptySet", Pattern: `∅`},
	{Name: "Symbol", Pattern: `\pL`},
	{Name: "Operator", Pattern: `[()+*]`},
})

type tokenType int

const (
	tLParen tokenType = iota // (
	tRParen                  // )
	tUnion                   // +
	tStar                    // *
	tSymbol                  // single letter
	tEpsilon                 // ε
	tEmptySet                // ∅
)

type token struct {
	typ    tokenType
	text   string
	offset int // byte offset into the source
}

var (
	lexWhitespace = regexpLexer.Symbols()["Whitespace"]
	lexEpsilon    = regexpLexer.Symbols()["Epsilon"]
	lexEmptySet   = regexpLexer.Symbols()["EmptySet"]
	lexSymbol     = regexpLexer.Symbols()["Symbol"]
)

var operators = map[string]tokenType{
	"(": tLParen,
	")": tRParen,
	"+": tUnion,
	"*": tStar,
}

func tokenize(src string) ([]token, error) {
	lex, err := regexpLexer.LexString("", src)
	if err != nil {
		return nil, lexicalError(src, 0)
	}

	var tokens []token
	end := 0
	for {
		t, err := lex.Next()
		if err != nil {
			// The lexer stops at the first byte no rule matches, right after the last token.
			return nil, lexicalError(src, end)
		}
		if t.EOF() {
			return tokens, nil
		}
		end = t.Pos.Offset + len(t.Value)

		tok := token{text: t.Value, offset: t.Pos.Offset}
		switch t.Type {
		case lexWhitespace:
			continue
		case lexEpsilon:
			tok.typ = tEpsilon
		case lexEmptySet:
			tok.typ = tEmptySet
		case lexSymbol:
			tok.typ = tSymbol
		default:
			typ, ok := operators[t.Value]
			if !ok {
				return nil, lexicalError(src, t.Pos.Offset)
			}
			tok.typ = typ
		}
		tokens = append(tokens, tok)
	}
}

func lexicalError(src string, offset int) error {
	offset = min(offset, len(src))
	r, _ := utf8.DecodeRuneInString(src[offset:])
	return &SyntaxError{
		Kind:      ErrLexical,
		Token:     string(r),
		Pos:       utf8.RuneCountInString(src[:offset]),
		Remaining: src[offset:],
	}
}

// Parse reads a regular expression in the surface syntax:
//
//	RegExp  := Product ('+' Product)*
//	Product := Factor Factor*
//	Factor  := Atom '*'?
//	Atom    := '(' RegExp ')' | letter | 'ε' | '∅'
//
// Whitespace is ignored. Union and concatenation group to the right, so "abc" is
// a(bc) and "a+b+c" is a+(b+c). On failure the error is a *SyntaxError.
func Parse(s string) (*RegExp, error) {
	tokens, err := tokenize(s)
	if err != nil {
		return nil, err
	}
	p := &parser{src: s, tokens: tokens}
	e, err := p.parseUnionExp()
	if err != nil {
		return nil, err
	}
	if p.more() {
		if p.peek(tRParen) {
			return nil, p.errorAtCurrent(ErrUnmatchedParen)
		}
		return nil, p.errorAtCurrent(ErrUnexpectedToken)
	}
	return e, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) *RegExp {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

type parser struct {
	src    string
	tokens []token
	pos    int
	depth  int // open parentheses
}

func (p *parser) more() bool {
	return p.pos < len(p.tokens)
}

func (p *parser) peek(types ...tokenType) bool {
	if !p.more() {
		return false
	}
	for _, t := range types {
		if p.tokens[p.pos].typ == t {
			return true
		}
	}
	return false
}

func (p *parser) match(t tokenType) bool {
	if p.peek(t) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) errorAtCurrent(kind error) error {
	if !p.more() {
		return &SyntaxError{Kind: ErrUnexpectedEnd, Pos: utf8.RuneCountInString(p.src)}
	}
	tok := p.tokens[p.pos]
	return &SyntaxError{
		Kind:      kind,
		Token:     tok.text,
		Pos:       utf8.RuneCountInString(p.src[:tok.offset]),
		Remaining: p.src[tok.offset:],
	}
}

func (p *parser) parseUnionExp() (*RegExp, error) {
	e, err := p.parseConcatExp()
	if err != nil {
		return nil, err
	}
	if p.match(tUnion) {
		e2, err := p.parseUnionExp()
		if err != nil {
			return nil, err
		}
		e = MakeUnion(e, e2)
	}
	return e, nil
}

func (p *parser) parseConcatExp() (*RegExp, error) {
	e, err := p.parseRepeatExp()
	if err != nil {
		return nil, err
	}
	if p.peek(tLParen, tSymbol, tEpsilon, tEmptySet) {
		e2, err := p.parseConcatExp()
		if err != nil {
			return nil, err
		}
		e = MakeConcat(e, e2)
	}
	return e, nil
}

func (p *parser) parseRepeatExp() (*RegExp, error) {
	e, err := p.parseSimpleExp()
	if err != nil {
		return nil, err
	}
	if p.match(tStar) {
		e = MakeStar(e)
	}
	return e, nil
}

func (p *parser) parseSimpleExp() (*RegExp, error) {
	if !p.more() {
		return nil, p.errorAtCurrent(ErrUnexpectedEnd)
	}
	tok := p.tokens[p.pos]
	switch tok.typ {
	case tSymbol:
		p.pos++
		r, _ := utf8.DecodeRuneInString(tok.text)
		return MakeChar(r), nil
	case tEpsilon:
		p.pos++
		return MakeEpsilon(), nil
	case tEmptySet:
		p.pos++
		return MakeEmptySet(), nil
	case tLParen:
		p.pos++
		p.depth++
		e, err := p.parseUnionExp()
		if err != nil {
			return nil, err
		}
		if !p.match(tRParen) {
			return nil, p.errorAtCurrent(ErrUnexpectedToken)
		}
		p.depth--
		return e, nil
	case tRParen:
		if p.depth == 0 {
			return nil, p.errorAtCurrent(ErrUnmatchedParen)
		}
	}
	return nil, p.errorAtCurrent(ErrUnexpectedToken)
}
