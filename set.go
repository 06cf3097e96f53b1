package kleene

import (
	"cmp"
	"iter"
	"slices"
	"strings"
)

var _ Value = Set[Int]{}

// Set is an immutable set of values kept in canonical (sorted) order with a content hash
// computed once. The zero value is the empty set. Sets are values themselves, so sets of
// sets are ordinary sets.
type Set[T Value] struct {
	elems []T
	hash  uint64
}

// setValue lets sets with different element types be compared by content.
type setValue interface {
	Value
	size() int
	at(i int) Value
}

var emptySetHash = combine(seedSet, 0)

// NewSet returns the set of the given elements; duplicates collapse.
func NewSet[T Value](elems ...T) Set[T] {
	sorted := slices.Clone(elems)
	slices.SortFunc(sorted, func(a, b T) int { return a.Compare(b) })
	sorted = slices.CompactFunc(sorted, func(a, b T) bool { return a.Compare(b) == 0 })
	return newSortedSet(sorted)
}

// newSortedSet takes ownership of elems, which must already be sorted and unique.
func newSortedSet[T Value](elems []T) Set[T] {
	if len(elems) == 0 {
		return Set[T]{}
	}
	h := seedSet
	for _, e := range elems {
		h = combine(h, e.Hash())
	}
	return Set[T]{elems: elems, hash: combine(h, uint64(len(elems)))}
}

func (s Set[T]) Hash() uint64 {
	if len(s.elems) == 0 {
		return emptySetHash
	}
	return s.hash
}

func (s Set[T]) Equals(other Hashable) bool {
	o, ok := other.(setValue)
	if !ok || o.size() != s.size() || o.Hash() != s.Hash() {
		return false
	}
	for i, e := range s.elems {
		if !e.Equals(o.at(i)) {
			return false
		}
	}
	return true
}

func (s Set[T]) Compare(other Value) int {
	o, ok := other.(setValue)
	if !ok {
		return compareKinds(s, other)
	}
	n := min(s.size(), o.size())
	for i := 0; i < n; i++ {
		if c := s.elems[i].Compare(o.at(i)); c != 0 {
			return c
		}
	}
	return cmp.Compare(s.size(), o.size())
}

func (s Set[T]) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range s.elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteByte('}')
	return b.String()
}

func (Set[T]) kind() valueKind { return kindSet }

func (s Set[T]) size() int { return len(s.elems) }

func (s Set[T]) at(i int) Value { return s.elems[i] }

// Len returns the number of elements.
func (s Set[T]) Len() int {
	return len(s.elems)
}

func (s Set[T]) IsEmpty() bool {
	return len(s.elems) == 0
}

// IndexOf returns the position of v in canonical order.
func (s Set[T]) IndexOf(v T) (int, bool) {
	return slices.BinarySearchFunc(s.elems, v, func(e, t T) int { return e.Compare(t) })
}

func (s Set[T]) Contains(v T) bool {
	_, ok := s.IndexOf(v)
	return ok
}

// Any returns an element of s; it is always the smallest one. Panics if s is empty.
func (s Set[T]) Any() T {
	if len(s.elems) == 0 {
		panic("kleene: arbitrary element of an empty set")
	}
	return s.elems[0]
}

// Min returns the smallest element. Panics if s is empty.
func (s Set[T]) Min() T {
	return s.Any()
}

// Max returns the largest element. Panics if s is empty.
func (s Set[T]) Max() T {
	if len(s.elems) == 0 {
		panic("kleene: maximum of an empty set")
	}
	return s.elems[len(s.elems)-1]
}

// All iterates the elements in canonical order.
func (s Set[T]) All() iter.Seq[T] {
	return slices.Values(s.elems)
}

// Slice returns a copy of the elements in canonical order.
func (s Set[T]) Slice() []T {
	return slices.Clone(s.elems)
}

func (s Set[T]) Insert(v T) Set[T] {
	i, ok := s.IndexOf(v)
	if ok {
		return s
	}
	return newSortedSet(slices.Insert(slices.Clone(s.elems), i, v))
}

func (s Set[T]) Remove(v T) Set[T] {
	i, ok := s.IndexOf(v)
	if !ok {
		return s
	}
	return newSortedSet(slices.Delete(slices.Clone(s.elems), i, i+1))
}

func (s Set[T]) Union(o Set[T]) Set[T] {
	if len(o.elems) == 0 {
		return s
	}
	if len(s.elems) == 0 {
		return o
	}
	a, b := s.elems, o.elems
	out := make([]T, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch c := a[i].Compare(b[j]); {
		case c < 0:
			out = append(out, a[i])
			i++
		case c > 0:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return newSortedSet(out)
}

func (s Set[T]) Intersection(o Set[T]) Set[T] {
	a, b := s.elems, o.elems
	out := make([]T, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch c := a[i].Compare(b[j]); {
		case c < 0:
			i++
		case c > 0:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return newSortedSet(out)
}

// Difference returns the elements of s that are not in o.
func (s Set[T]) Difference(o Set[T]) Set[T] {
	if len(o.elems) == 0 {
		return s
	}
	a, b := s.elems, o.elems
	out := make([]T, 0, len(a))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch c := a[i].Compare(b[j]); {
		case c < 0:
			out = append(out, a[i])
			i++
		case c > 0:
			j++
		default:
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return newSortedSet(out)
}

// IsSubset reports whether every element of s is in o.
func (s Set[T]) IsSubset(o Set[T]) bool {
	if len(s.elems) > len(o.elems) {
		return false
	}
	a, b := s.elems, o.elems
	j := 0
	for _, e := range a {
		for j < len(b) && b[j].Compare(e) < 0 {
			j++
		}
		if j == len(b) || b[j].Compare(e) != 0 {
			return false
		}
		j++
	}
	return true
}

// Filter returns the elements of s satisfying keep.
func (s Set[T]) Filter(keep func(T) bool) Set[T] {
	out := make([]T, 0, len(s.elems))
	for _, e := range s.elems {
		if keep(e) {
			out = append(out, e)
		}
	}
	return newSortedSet(out)
}

// CartesianProduct returns a × b. Iterating both operands in canonical order yields the
// pairs in canonical order, so no sort is needed.
func CartesianProduct[A, B Value](a Set[A], b Set[B]) Set[Pair[A, B]] {
	out := make([]Pair[A, B], 0, a.Len()*b.Len())
	for _, x := range a.elems {
		for _, y := range b.elems {
			out = append(out, MakePair(x, y))
		}
	}
	return newSortedSet(out)
}
