package kleene

import "github.com/sirupsen/logrus"

// ToRegExp recovers a regular expression for L(d) by state elimination. The result is
// correct but large; DFAToRegExp also simplifies it.
func ToRegExp[S Value](d *DFA[S]) *RegExp {
	e := &eliminator[S]{
		d:    d,
		memo: NewHashMap[Pair[Pair[S, S], Set[S]], *RegExp](),
	}
	r := MakeEmptySet()
	for f := range d.accepting.All() {
		r = unionOf(r, e.paths(d.start, f, d.states))
	}
	logger.WithFields(logrus.Fields{
		"states":   d.states.Len(),
		"subterms": e.memo.Len(),
	}).Debug("eliminated states")
	return r
}

// DFAToRegExp is ToRegExp followed by Simplify. The expression is returned even if
// simplification stopped early, together with the *IterationLimitError.
func DFAToRegExp[S Value](d *DFA[S]) (*RegExp, error) {
	return Simplify(ToRegExp(d))
}

type eliminator[S Value] struct {
	d    *DFA[S]
	memo *HashMap[Pair[Pair[S, S], Set[S]], *RegExp]
}

// paths returns an expression for the words leading from p to q through intermediate
// states in allowed only.
func (e *eliminator[S]) paths(p, q S, allowed Set[S]) *RegExp {
	key := MakePair(MakePair(p, q), allowed)
	if r, ok := e.memo.Get(key); ok {
		return r
	}

	var r *RegExp
	if allowed.IsEmpty() {
		r = MakeEmptySet()
		for c := range e.d.alphabet.All() {
			if t, ok := e.d.Step(p, c); ok && t.Equals(q) {
				r = unionOf(r, MakeChar(rune(c)))
			}
		}
		if p.Equals(q) {
			r = unionOf(r, MakeEpsilon())
		}
	} else {
		k := allowed.Any()
		rest := allowed.Remove(k)
		r = unionOf(
			e.paths(p, q, rest),
			concatOf(e.paths(p, k, rest), concatOf(starOf(e.paths(k, k, rest)), e.paths(k, q, rest))),
		)
	}

	e.memo.Set(key, r)
	return r
}

// The constructors below absorb ∅ and ε units as the tree is built.

func unionOf(r1, r2 *RegExp) *RegExp {
	switch {
	case r1.kind == KindEmptySet:
		return r2
	case r2.kind == KindEmptySet:
		return r1
	case r1.Equals(r2):
		return r1
	}
	return MakeUnion(r1, r2)
}

func concatOf(r1, r2 *RegExp) *RegExp {
	switch {
	case r1.kind == KindEmptySet || r2.kind == KindEmptySet:
		return MakeEmptySet()
	case r1.kind == KindEpsilon:
		return r2
	case r2.kind == KindEpsilon:
		return r1
	}
	return MakeConcat(r1, r2)
}

func starOf(r *RegExp) *RegExp {
	switch r.kind {
	case KindEmptySet, KindEpsilon:
		return MakeEpsilon()
	case KindStar:
		return r
	}
	return MakeStar(r)
}
