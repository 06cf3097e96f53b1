package kleene

import "github.com/sirupsen/logrus"

// NFAToDFA
// Determinizes n with the subset construction. States are ε-closed sets of NFA states,
// discovered breadth-first from the closure of the start state, symbols in canonical
// order. Transitions into the empty set are left out of the table.
// Worst case complexity: exponential in number of states.
func NFAToDFA(n *NFA) *DFA[Set[Int]] {
	start := n.EpsilonClosure(NewSet(n.start))

	seen := NewHashMap[Set[Int], struct{}]()
	delta := NewHashMap[Pair[Set[Int], Sym], Set[Int]]()
	states := []Set[Int]{start}
	worklist := []Set[Int]{start}
	seen.Set(start, struct{}{})

	for len(worklist) > 0 {
		s := worklist[0]
		worklist = worklist[1:]

		for c := range n.alphabet.All() {
			t := n.CapitalDelta(s, c)
			if t.IsEmpty() {
				continue
			}
			delta.Set(MakePair(s, c), t)
			if !seen.Has(t) {
				seen.Set(t, struct{}{})
				states = append(states, t)
				worklist = append(worklist, t)
			}
		}
	}

	var accepting []Set[Int]
	for _, s := range states {
		if !s.Intersection(n.accepting).IsEmpty() {
			accepting = append(accepting, s)
		}
	}

	logger.WithFields(logrus.Fields{
		"nfa_states":  n.states.Len(),
		"dfa_states":  len(states),
		"transitions": delta.Len(),
	}).Debug("determinized nfa")

	return &DFA[Set[Int]]{
		states:    NewSet(states...),
		alphabet:  n.alphabet,
		delta:     delta,
		start:     start,
		accepting: NewSet(accepting...),
	}
}

// RegExpToDFA compiles r and determinizes the result.
func RegExpToDFA(r *RegExp, alphabet Set[Sym]) *DFA[Set[Int]] {
	return NFAToDFA(RegExpToNFA(r, alphabet))
}
