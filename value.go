package kleene

import (
	"cmp"
	"strconv"
)

// Hashable 自定义哈希接口
type Hashable interface {
	Hash() uint64
	Equals(other Hashable) bool
}

// Value is an immutable datum compared by content. Hash, Equals and Compare agree:
// a.Equals(b) implies a.Hash() == b.Hash() and a.Compare(b) == 0.
type Value interface {
	Hashable

	// Compare imposes a total order over all values, across kinds.
	Compare(other Value) int

	String() string

	kind() valueKind
}

type valueKind int

// Kinds are ordered; values of a lower kind sort first.
const (
	kindInt valueKind = iota
	kindSym
	kindPair
	kindOptional
	kindSet
)

func compareKinds(a, b Value) int {
	return cmp.Compare(a.kind(), b.kind())
}

var (
	_ Value = Int(0)
	_ Value = Sym(0)
)

// Int is an integer atom, used for NFA states.
type Int int

func (i Int) Hash() uint64 {
	return mix64(uint64(i) ^ seedInt)
}

func (i Int) Equals(other Hashable) bool {
	o, ok := other.(Int)
	return ok && o == i
}

func (i Int) Compare(other Value) int {
	if o, ok := other.(Int); ok {
		return cmp.Compare(i, o)
	}
	return compareKinds(i, other)
}

func (i Int) String() string {
	return strconv.Itoa(int(i))
}

func (Int) kind() valueKind { return kindInt }

// Sym is a single alphabet symbol.
type Sym rune

// EpsilonSym labels ε-edges of an NFA. It never belongs to an alphabet.
const EpsilonSym = Sym(-1)

func (s Sym) Hash() uint64 {
	return mix64(uint64(s) ^ seedSym)
}

func (s Sym) Equals(other Hashable) bool {
	o, ok := other.(Sym)
	return ok && o == s
}

func (s Sym) Compare(other Value) int {
	if o, ok := other.(Sym); ok {
		return cmp.Compare(s, o)
	}
	return compareKinds(s, other)
}

func (s Sym) String() string {
	if s == EpsilonSym {
		return "ε"
	}
	return string(rune(s))
}

func (Sym) kind() valueKind { return kindSym }

// Symbols returns the set of runes in s.
func Symbols(s string) Set[Sym] {
	syms := make([]Sym, 0, len(s))
	for _, r := range s {
		syms = append(syms, Sym(r))
	}
	return NewSet(syms...)
}
