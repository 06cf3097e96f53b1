package kleene

import (
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/sirupsen/logrus"
)

// Difference
// Returns the product automaton recognizing L(d1) \ L(d2), restricted to the pairs
// reachable from (d1.start, d2.start). The second component is None once d2 has no
// transition left, which is the implicit dead state of d2; from there d2 rejects
// everything. A transition exists exactly where d1 has one.
func Difference[S1, S2 Value](d1 *DFA[S1], d2 *DFA[S2]) *DFA[Pair[S1, Optional[S2]]] {
	alphabet := d1.alphabet.Union(d2.alphabet)
	start := MakePair(d1.start, Some(d2.start))

	seen := NewHashMap[Pair[S1, Optional[S2]], struct{}]()
	delta := NewHashMap[Pair[Pair[S1, Optional[S2]], Sym], Pair[S1, Optional[S2]]]()
	states := []Pair[S1, Optional[S2]]{start}
	worklist := []Pair[S1, Optional[S2]]{start}
	seen.Set(start, struct{}{})

	for len(worklist) > 0 {
		s := worklist[0]
		worklist = worklist[1:]

		for c := range alphabet.All() {
			p, ok := d1.Step(s.First, c)
			if !ok {
				continue
			}
			q := None[S2]()
			if cur, live := s.Second.Get(); live {
				if t, ok := d2.Step(cur, c); ok {
					q = Some(t)
				}
			}
			t := MakePair(p, q)
			delta.Set(MakePair(s, c), t)
			if !seen.Has(t) {
				seen.Set(t, struct{}{})
				states = append(states, t)
				worklist = append(worklist, t)
			}
		}
	}

	var accepting []Pair[S1, Optional[S2]]
	for _, s := range states {
		if !d1.IsAccept(s.First) {
			continue
		}
		if q, live := s.Second.Get(); !live || !d2.IsAccept(q) {
			accepting = append(accepting, s)
		}
	}

	return &DFA[Pair[S1, Optional[S2]]]{
		states:    NewSet(states...),
		alphabet:  alphabet,
		delta:     delta,
		start:     start,
		accepting: NewSet(accepting...),
	}
}

// IsEmpty
// Returns true if the given automaton accepts no strings.
func IsEmpty[S Value](d *DFA[S]) bool {
	if d.IsAccept(d.start) {
		// Apparently common case: it accepts the empty string
		return false
	}
	if d.accepting.IsEmpty() {
		return true
	}

	i, ok := d.states.IndexOf(d.start)
	if !ok {
		panic("kleene: start state is not a state of the automaton")
	}
	seen := bitset.New(uint(d.states.Len()))
	seen.Set(uint(i))
	workList := []S{d.start}
	for len(workList) > 0 {
		state := workList[0]
		workList = workList[1:]

		if d.IsAccept(state) {
			return false
		}
		for c := range d.alphabet.All() {
			t, ok := d.Step(state, c)
			if !ok {
				continue
			}
			if j, ok := d.states.IndexOf(t); ok && !seen.Test(uint(j)) {
				seen.Set(uint(j))
				workList = append(workList, t)
			}
		}
	}
	return true
}

// wordStep records the edge a breadth-first search first reached a state by.
type wordStep[S Value] struct {
	from S
	sym  Sym
	root bool
}

// ShortestWord returns a shortest word accepted by d. Symbols are tried in canonical
// order, so among the shortest words the first in that order is returned.
func ShortestWord[S Value](d *DFA[S]) (string, bool) {
	parent := NewHashMap[S, wordStep[S]]()
	parent.Set(d.start, wordStep[S]{root: true})
	workList := []S{d.start}
	for len(workList) > 0 {
		state := workList[0]
		workList = workList[1:]

		if d.IsAccept(state) {
			var syms []Sym
			for s := state; ; {
				p, _ := parent.Get(s)
				if p.root {
					break
				}
				syms = append(syms, p.sym)
				s = p.from
			}
			var b strings.Builder
			for i := len(syms) - 1; i >= 0; i-- {
				b.WriteRune(rune(syms[i]))
			}
			return b.String(), true
		}
		for c := range d.alphabet.All() {
			t, ok := d.Step(state, c)
			if ok && !parent.Has(t) {
				parent.Set(t, wordStep[S]{from: state, sym: c})
				workList = append(workList, t)
			}
		}
	}
	return "", false
}

// RegExpEquiv reports whether r1 and r2 denote the same language over alphabet. Symbols
// used by either expression are added to the alphabet.
func RegExpEquiv(r1, r2 *RegExp, alphabet Set[Sym]) bool {
	d1, d2 := compilePair(r1, r2, alphabet)
	equal := IsEmpty(Difference(d1, d2)) && IsEmpty(Difference(d2, d1))
	logger.WithFields(logrus.Fields{
		"left":  r1.String(),
		"right": r2.String(),
		"equal": equal,
	}).Debug("checked regexp equivalence")
	return equal
}

// Distinguish returns a shortest word in exactly one of L(r1) and L(r2), or false when
// the languages are equal. When both differences have a word of the same length, the word
// in L(r1) is returned.
func Distinguish(r1, r2 *RegExp, alphabet Set[Sym]) (string, bool) {
	d1, d2 := compilePair(r1, r2, alphabet)
	w1, ok1 := ShortestWord(Difference(d1, d2))
	w2, ok2 := ShortestWord(Difference(d2, d1))
	switch {
	case ok1 && ok2:
		if len([]rune(w2)) < len([]rune(w1)) {
			return w2, true
		}
		return w1, true
	case ok1:
		return w1, true
	case ok2:
		return w2, true
	}
	return "", false
}

func compilePair(r1, r2 *RegExp, alphabet Set[Sym]) (*DFA[Set[Int]], *DFA[Set[Int]]) {
	sigma := alphabet.Union(Alphabet(r1)).Union(Alphabet(r2))
	return RegExpToDFA(r1, sigma), RegExpToDFA(r2, sigma)
}
