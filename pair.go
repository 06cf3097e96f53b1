package kleene

import "fmt"

var (
	_ Value = Pair[Int, Sym]{}
	_ Value = Optional[Int]{}
)

// Pair is a 2-tuple of values. It keys transition tables as (state, symbol) and names
// product automaton states.
type Pair[A, B Value] struct {
	First  A
	Second B
}

type pairValue interface {
	Value
	first() Value
	second() Value
}

func MakePair[A, B Value](a A, b B) Pair[A, B] {
	return Pair[A, B]{First: a, Second: b}
}

func (p Pair[A, B]) Hash() uint64 {
	return combine(combine(seedPair, p.First.Hash()), p.Second.Hash())
}

func (p Pair[A, B]) Equals(other Hashable) bool {
	o, ok := other.(pairValue)
	return ok && p.First.Equals(o.first()) && p.Second.Equals(o.second())
}

func (p Pair[A, B]) Compare(other Value) int {
	o, ok := other.(pairValue)
	if !ok {
		return compareKinds(p, other)
	}
	if c := p.First.Compare(o.first()); c != 0 {
		return c
	}
	return p.Second.Compare(o.second())
}

func (p Pair[A, B]) String() string {
	return fmt.Sprintf("(%s, %s)", p.First, p.Second)
}

func (Pair[A, B]) kind() valueKind { return kindPair }

func (p Pair[A, B]) first() Value  { return p.First }
func (p Pair[A, B]) second() Value { return p.Second }

// Optional holds either a value or nothing. Nothing stands for the implicit dead state of
// a partial DFA and sorts before every present value.
type Optional[T Value] struct {
	value T
	ok    bool
}

type optionalValue interface {
	Value
	get() (Value, bool)
}

func Some[T Value](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

func None[T Value]() Optional[T] {
	return Optional[T]{}
}

// Get returns the held value and whether there is one.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

func (o Optional[T]) Hash() uint64 {
	if !o.ok {
		return seedOptional
	}
	return combine(seedOptional, o.value.Hash())
}

func (o Optional[T]) Equals(other Hashable) bool {
	x, ok := other.(optionalValue)
	if !ok {
		return false
	}
	v, present := x.get()
	if present != o.ok {
		return false
	}
	return !present || o.value.Equals(v)
}

func (o Optional[T]) Compare(other Value) int {
	x, ok := other.(optionalValue)
	if !ok {
		return compareKinds(o, other)
	}
	v, present := x.get()
	switch {
	case !o.ok && !present:
		return 0
	case !o.ok:
		return -1
	case !present:
		return 1
	}
	return o.value.Compare(v)
}

func (o Optional[T]) String() string {
	if !o.ok {
		return "⊥"
	}
	return o.value.String()
}

func (Optional[T]) kind() valueKind { return kindOptional }

func (o Optional[T]) get() (Value, bool) {
	if !o.ok {
		return nil, false
	}
	return o.value, true
}
