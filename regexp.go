package kleene

import "strings"

type Kind int

const (
	KindEmptySet = Kind(iota) // The empty language ∅
	KindEpsilon               // The empty string ε
	KindChar                  // A single symbol
	KindConcat                // A sequence of two expressions
	KindUnion                 // The union of two expressions
	KindStar                  // Kleene closure of an expression
	KindVariable              // A placeholder inside rewrite rule patterns
)

func (k Kind) String() string {
	switch k {
	case KindEmptySet:
		return "EmptySet"
	case KindEpsilon:
		return "Epsilon"
	case KindChar:
		return "Char"
	case KindConcat:
		return "Concat"
	case KindUnion:
		return "Union"
	case KindStar:
		return "Star"
	case KindVariable:
		return "Variable"
	}
	return "Kind(?)"
}

// RegExp is an immutable regular expression tree. Concat and Union use exp1 and exp2,
// Star uses exp1 only.
type RegExp struct {
	kind       Kind
	exp1, exp2 *RegExp
	c          Sym
	name       string
}

var (
	emptySetNode = &RegExp{kind: KindEmptySet}
	epsilonNode  = &RegExp{kind: KindEpsilon}
)

func MakeEmptySet() *RegExp {
	return emptySetNode
}

func MakeEpsilon() *RegExp {
	return epsilonNode
}

func MakeChar(c rune) *RegExp {
	return &RegExp{kind: KindChar, c: Sym(c)}
}

func MakeConcat(exp1, exp2 *RegExp) *RegExp {
	return &RegExp{kind: KindConcat, exp1: exp1, exp2: exp2}
}

func MakeUnion(exp1, exp2 *RegExp) *RegExp {
	return &RegExp{kind: KindUnion, exp1: exp1, exp2: exp2}
}

func MakeStar(exp *RegExp) *RegExp {
	return &RegExp{kind: KindStar, exp1: exp}
}

// MakeVariable returns a pattern placeholder. Trees containing variables are only
// meaningful to the rewriter.
func MakeVariable(name string) *RegExp {
	return &RegExp{kind: KindVariable, name: name}
}

func (r *RegExp) Kind() Kind {
	return r.kind
}

// Left returns the first operand of a Concat or Union.
func (r *RegExp) Left() *RegExp {
	return r.exp1
}

// Right returns the second operand of a Concat or Union.
func (r *RegExp) Right() *RegExp {
	return r.exp2
}

// Inner returns the operand of a Star.
func (r *RegExp) Inner() *RegExp {
	return r.exp1
}

// Char returns the symbol of a Char node.
func (r *RegExp) Char() Sym {
	return r.c
}

// Name returns the name of a Variable node.
func (r *RegExp) Name() string {
	return r.name
}

// Equals reports structural equality.
func (r *RegExp) Equals(o *RegExp) bool {
	if r == o {
		return true
	}
	if r == nil || o == nil || r.kind != o.kind {
		return false
	}
	switch r.kind {
	case KindEmptySet, KindEpsilon:
		return true
	case KindChar:
		return r.c == o.c
	case KindVariable:
		return r.name == o.name
	case KindStar:
		return r.exp1.Equals(o.exp1)
	case KindConcat, KindUnion:
		return r.exp1.Equals(o.exp1) && r.exp2.Equals(o.exp2)
	}
	panic("kleene: unknown regexp kind " + r.kind.String())
}

// Hash returns a content hash consistent with Equals.
func (r *RegExp) Hash() uint64 {
	switch r.kind {
	case KindChar:
		return combine(uint64(r.kind), uint64(r.c))
	case KindVariable:
		h := uint64(r.kind)
		for i := 0; i < len(r.name); i++ {
			h = combine(h, uint64(r.name[i]))
		}
		return h
	case KindStar:
		return combine(uint64(r.kind), r.exp1.Hash())
	case KindConcat, KindUnion:
		return combine(combine(uint64(r.kind), r.exp1.Hash()), r.exp2.Hash())
	}
	return mix64(uint64(r.kind))
}

// Size returns the number of nodes in the tree.
func (r *RegExp) Size() int {
	switch r.kind {
	case KindStar:
		return 1 + r.exp1.Size()
	case KindConcat, KindUnion:
		return 1 + r.exp1.Size() + r.exp2.Size()
	}
	return 1
}

// HasVariables reports whether r contains a Variable node.
func (r *RegExp) HasVariables() bool {
	switch r.kind {
	case KindVariable:
		return true
	case KindStar:
		return r.exp1.HasVariables()
	case KindConcat, KindUnion:
		return r.exp1.HasVariables() || r.exp2.HasVariables()
	}
	return false
}

// Alphabet returns the symbols occurring in r.
func Alphabet(r *RegExp) Set[Sym] {
	var syms []Sym
	var walk func(*RegExp)
	walk = func(n *RegExp) {
		switch n.kind {
		case KindChar:
			syms = append(syms, n.c)
		case KindStar:
			walk(n.exp1)
		case KindConcat, KindUnion:
			walk(n.exp1)
			walk(n.exp2)
		}
	}
	walk(r)
	return NewSet(syms...)
}

// Binding strength used when printing: union binds loosest, star tightest.
const (
	precUnion = iota + 1
	precConcat
	precStar
	precAtom
)

func (r *RegExp) precedence() int {
	switch r.kind {
	case KindUnion:
		return precUnion
	case KindConcat:
		return precConcat
	case KindStar:
		return precStar
	}
	return precAtom
}

// String renders r in the surface syntax accepted by Parse. Parentheses are added only
// where needed to reparse to the same tree; both binary operators group to the right.
func (r *RegExp) String() string {
	var b strings.Builder
	r.write(&b)
	return b.String()
}

func (r *RegExp) write(b *strings.Builder) {
	switch r.kind {
	case KindEmptySet:
		b.WriteString("∅")
	case KindEpsilon:
		b.WriteString("ε")
	case KindChar:
		b.WriteRune(rune(r.c))
	case KindVariable:
		b.WriteString(r.name)
	case KindStar:
		// Only one postfix star is accepted per atom.
		r.exp1.writeOperand(b, precAtom)
		b.WriteByte('*')
	case KindConcat:
		r.exp1.writeOperand(b, precStar)
		r.exp2.writeOperand(b, precConcat)
	case KindUnion:
		r.exp1.writeOperand(b, precConcat)
		b.WriteByte('+')
		r.exp2.writeOperand(b, precUnion)
	}
}

func (r *RegExp) writeOperand(b *strings.Builder, minPrec int) {
	if r.precedence() >= minPrec {
		r.write(b)
		return
	}
	b.WriteByte('(')
	r.write(b)
	b.WriteByte(')')
}
