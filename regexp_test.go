package kleene

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func char(c rune) *RegExp { return MakeChar(c) }

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *RegExp
	}{
		{"Char", "a", char('a')},
		{"Epsilon", "ε", MakeEpsilon()},
		{"EmptySet", "∅", MakeEmptySet()},
		{"Concat", "ab", MakeConcat(char('a'), char('b'))},
		{"ConcatGroupsRight", "abc", MakeConcat(char('a'), MakeConcat(char('b'), char('c')))},
		{"UnionGroupsRight", "a+b+c", MakeUnion(char('a'), MakeUnion(char('b'), char('c')))},
		{"StarBindsTightest", "ab*", MakeConcat(char('a'), MakeStar(char('b')))},
		{"ConcatOverUnion", "ab+c", MakeUnion(MakeConcat(char('a'), char('b')), char('c'))},
		{"Group", "(a+b)*", MakeStar(MakeUnion(char('a'), char('b')))},
		{"GroupedStar", "(a*)*", MakeStar(MakeStar(char('a')))},
		{"Whitespace", " a  +\tb ", MakeUnion(char('a'), char('b'))},
		{"NonASCIILetter", "λμ", MakeConcat(char('λ'), char('μ'))},
		{"Scenario", "a(a+b)*b", MakeConcat(char('a'), MakeConcat(MakeStar(MakeUnion(char('a'), char('b'))), char('b')))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equals(got), "want %s, got %s", tt.want, got)
			assert.Equal(t, tt.want.Hash(), got.Hash())
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		kind      error
		token     string
		pos       int
		remaining string
	}{
		{"Empty", "", ErrUnexpectedEnd, "", 0, ""},
		{"DanglingUnion", "a+", ErrUnexpectedEnd, "", 2, ""},
		{"OpenGroup", "(ab", ErrUnexpectedEnd, "", 3, ""},
		{"UnmatchedParen", "ab)c", ErrUnmatchedParen, ")", 2, ")c"},
		{"LeadingParen", ")", ErrUnmatchedParen, ")", 0, ")"},
		{"LeadingStar", "*a", ErrUnexpectedToken, "*", 0, "*a"},
		{"DoubleStar", "a**", ErrUnexpectedToken, "*", 2, "*"},
		{"EmptyGroup", "a()", ErrUnexpectedToken, ")", 2, ")"},
		{"DoubleUnion", "a++b", ErrUnexpectedToken, "+", 2, "+b"},
		{"Digit", "a1", ErrLexical, "1", 1, "1"},
		{"LexicalAfterUnicode", "εδ|", ErrLexical, "|", 2, "|"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			assert.Nil(t, got)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "error %v is not %v", err, tt.kind)

			var syntaxErr *SyntaxError
			require.True(t, errors.As(err, &syntaxErr))
			assert.Equal(t, tt.token, syntaxErr.Token)
			assert.Equal(t, tt.pos, syntaxErr.Pos)
			assert.Equal(t, tt.remaining, syntaxErr.Remaining)
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("(") })
	assert.NotPanics(t, func() { MustParse("(a)") })
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		expr *RegExp
		want string
	}{
		{"Atoms", MakeUnion(MakeEpsilon(), MakeEmptySet()), "ε+∅"},
		{"RightNested", MakeConcat(char('a'), MakeConcat(char('b'), char('c'))), "abc"},
		{"LeftNestedConcat", MakeConcat(MakeConcat(char('a'), char('b')), char('c')), "(ab)c"},
		{"LeftNestedUnion", MakeUnion(MakeUnion(char('a'), char('b')), char('c')), "(a+b)+c"},
		{"UnionInConcat", MakeConcat(MakeUnion(char('a'), char('b')), char('c')), "(a+b)c"},
		{"StarOfConcat", MakeStar(MakeConcat(char('a'), char('b'))), "(ab)*"},
		{"StarOfStar", MakeStar(MakeStar(char('a'))), "(a*)*"},
		{"Variable", MakeConcat(MakeVariable("R"), MakeStar(MakeVariable("R"))), "RR*"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.expr.String())
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{
		"a",
		"a(a+b)*b",
		"((a+b)+c)d",
		"(ab)(cd)",
		"((a*)*)*",
		"ε+∅a+(b+ε)*",
		"a(b(c+d))*e",
	} {
		t.Run(s, func(t *testing.T) {
			r := MustParse(s)
			again, err := Parse(r.String())
			require.NoError(t, err)
			assert.True(t, r.Equals(again), "%s printed as %s", s, r.String())
		})
	}
}

func TestAlphabet(t *testing.T) {
	assert.True(t, Symbols("abc").Equals(Alphabet(MustParse("c(a+b)*a"))))
	assert.True(t, Alphabet(MustParse("ε+∅*")).IsEmpty())
}

func TestRegExpSize(t *testing.T) {
	r := MustParse("a(b+c)*")
	assert.Equal(t, 6, r.Size())
	assert.False(t, r.HasVariables())
	assert.True(t, MakeStar(MakeVariable("R")).HasVariables())
}
