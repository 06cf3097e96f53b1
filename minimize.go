package kleene

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/sirupsen/logrus"
)

// Minimize
// Minimizes d by Myhill-Nerode refinement. Unreachable states are dropped first; the
// remaining ones are grouped into classes of states no word can tell apart, and the
// classes become the states of the result.
//
// A missing transition is treated as a move into an implicit dead state, so states that
// differ only in whether they reject explicitly or by omission end up in one class.
func Minimize[S Value](d *DFA[S]) *DFA[Set[S]] {
	reach := reachable(d)
	syms := d.alphabet.Slice()

	// States are numbered in canonical order; index n is the implicit dead state.
	index := NewHashMap[S, int](WithCapacity(len(reach)))
	for i, s := range reach {
		index.Set(s, i)
	}
	n := len(reach)
	next := make([][]int, n+1)
	accept := make([]bool, n+1)
	for i, s := range reach {
		accept[i] = d.IsAccept(s)
		next[i] = make([]int, len(syms))
		for j, c := range syms {
			next[i][j] = n
			if t, ok := d.Step(s, c); ok {
				next[i][j], _ = index.Get(t)
			}
		}
	}
	next[n] = make([]int, len(syms))
	for j := range syms {
		next[n][j] = n
	}

	width := uint(n + 1)
	separable := bitset.New(width * width)
	mark := func(p, q int) {
		separable.Set(uint(p)*width + uint(q))
		separable.Set(uint(q)*width + uint(p))
	}
	marked := func(p, q int) bool {
		return separable.Test(uint(p)*width + uint(q))
	}

	for p := 0; p <= n; p++ {
		for q := p + 1; q <= n; q++ {
			if accept[p] != accept[q] {
				mark(p, q)
			}
		}
	}

	passes := 0
	for changed := true; changed; {
		changed = false
		passes++
		for p := 0; p <= n; p++ {
			for q := p + 1; q <= n; q++ {
				if marked(p, q) {
					continue
				}
				for j := range syms {
					a, b := next[p][j], next[q][j]
					if a != b && marked(a, b) {
						mark(p, q)
						changed = true
						break
					}
				}
			}
		}
	}

	// Partition the real states. Iterating in canonical order makes the first member
	// of each class its smallest, which serves as the representative.
	classOf := make([]int, n)
	var classes []Set[S]
	var representatives []int
	assigned := bitset.New(uint(n))
	for p := 0; p < n; p++ {
		if assigned.Test(uint(p)) {
			continue
		}
		members := []S{reach[p]}
		assigned.Set(uint(p))
		classOf[p] = len(classes)
		for q := p + 1; q < n; q++ {
			if !assigned.Test(uint(q)) && !marked(p, q) {
				members = append(members, reach[q])
				assigned.Set(uint(q))
				classOf[q] = len(classes)
			}
		}
		classes = append(classes, newSortedSet(members))
		representatives = append(representatives, p)
	}

	startIndex, ok := index.Get(d.start)
	if !ok {
		panic("kleene: start state vanished during minimization")
	}

	delta := NewHashMap[Pair[Set[S], Sym], Set[S]]()
	var accepting []Set[S]
	for k, class := range classes {
		p := representatives[k]
		if accept[p] {
			accepting = append(accepting, class)
		}
		for j, c := range syms {
			if t := next[p][j]; t != n {
				delta.Set(MakePair(class, c), classes[classOf[t]])
			}
		}
	}

	logger.WithFields(logrus.Fields{
		"states":    d.states.Len(),
		"reachable": n,
		"classes":   len(classes),
		"passes":    passes,
	}).Debug("minimized dfa")

	return &DFA[Set[S]]{
		states:    NewSet(classes...),
		alphabet:  d.alphabet,
		delta:     delta,
		start:     classes[classOf[startIndex]],
		accepting: NewSet(accepting...),
	}
}

// reachable returns the states reachable from the start of d, in canonical order.
func reachable[S Value](d *DFA[S]) []S {
	seen := bitset.New(uint(d.states.Len()))
	i, ok := d.states.IndexOf(d.start)
	if !ok {
		panic("kleene: start state is not a state of the automaton")
	}
	seen.Set(uint(i))
	worklist := []S{d.start}
	for len(worklist) > 0 {
		s := worklist[0]
		worklist = worklist[1:]
		for c := range d.alphabet.All() {
			t, ok := d.Step(s, c)
			if !ok {
				continue
			}
			if j, ok := d.states.IndexOf(t); ok && !seen.Test(uint(j)) {
				seen.Set(uint(j))
				worklist = append(worklist, t)
			}
		}
	}

	out := make([]S, 0, seen.Count())
	for i, ok := seen.NextSet(0); ok; i, ok = seen.NextSet(i + 1) {
		out = append(out, d.states.elems[i])
	}
	return out
}
