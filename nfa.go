package kleene

import (
	"iter"

	"github.com/bits-and-blooms/bitset"
	"github.com/sirupsen/logrus"
)

// NFA is a nondeterministic automaton over integer states. ε-edges are stored under
// EpsilonSym. States are numbered densely from zero.
type NFA struct {
	states    Set[Int]
	alphabet  Set[Sym]
	delta     *HashMap[Pair[Int, Sym], Set[Int]]
	start     Int
	accepting Set[Int]
}

// RegExpToNFA compiles r with the Thompson construction over alphabet ∪ Alphabet(r).
// The result has exactly one accepting state. r must not contain variables.
func RegExpToNFA(r *RegExp, alphabet Set[Sym]) *NFA {
	a := &Automata{}
	f := a.compile(r)
	accept := f.theAccept()

	delta := NewHashMap[Pair[Int, Sym], Set[Int]](WithCapacity(len(f.edges)))
	for _, e := range f.edges {
		key := MakePair(e.from, e.sym)
		targets, _ := delta.Get(key)
		delta.Set(key, targets.Insert(e.to))
	}

	n := &NFA{
		states:    NewSet(f.states...),
		alphabet:  alphabet.Union(Alphabet(r)),
		delta:     delta,
		start:     f.start,
		accepting: NewSet(accept),
	}
	logger.WithFields(logrus.Fields{
		"states":      n.states.Len(),
		"transitions": len(f.edges),
	}).Debug("compiled regexp to nfa")
	return n
}

func (n *NFA) States() Set[Int] {
	return n.states
}

func (n *NFA) Alphabet() Set[Sym] {
	return n.alphabet
}

func (n *NFA) Start() Int {
	return n.start
}

func (n *NFA) Accepting() Set[Int] {
	return n.accepting
}

// Targets returns δ(s, c); c may be EpsilonSym.
func (n *NFA) Targets(s Int, c Sym) Set[Int] {
	t, _ := n.delta.Get(MakePair(s, c))
	return t
}

// Transitions iterates the relation in canonical (state, symbol) order.
func (n *NFA) Transitions() iter.Seq2[Pair[Int, Sym], Set[Int]] {
	return n.delta.All()
}

// EpsilonClosure returns every state reachable from s through ε-edges alone.
func (n *NFA) EpsilonClosure(s Set[Int]) Set[Int] {
	seen := bitset.New(uint(n.states.Len()))
	stack := make([]Int, 0, s.Len())
	for q := range s.All() {
		if !seen.Test(uint(q)) {
			seen.Set(uint(q))
			stack = append(stack, q)
		}
	}
	for len(stack) > 0 {
		q := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for t := range n.Targets(q, EpsilonSym).All() {
			if !seen.Test(uint(t)) {
				seen.Set(uint(t))
				stack = append(stack, t)
			}
		}
	}
	return setFromBits(seen)
}

// Move returns the union of the direct c-targets of the states in s.
func (n *NFA) Move(s Set[Int], c Sym) Set[Int] {
	seen := bitset.New(uint(n.states.Len()))
	for q := range s.All() {
		for t := range n.Targets(q, c).All() {
			seen.Set(uint(t))
		}
	}
	return setFromBits(seen)
}

// CapitalDelta is the subset-construction step: the ε-closure of Move(s, c).
func (n *NFA) CapitalDelta(s Set[Int], c Sym) Set[Int] {
	return n.EpsilonClosure(n.Move(s, c))
}

// Accepts simulates n on w, tracking the set of live states.
func (n *NFA) Accepts(w string) bool {
	current := n.EpsilonClosure(NewSet(n.start))
	for _, r := range w {
		c := Sym(r)
		if !n.alphabet.Contains(c) {
			return false
		}
		current = n.CapitalDelta(current, c)
		if current.IsEmpty() {
			return false
		}
	}
	return !current.Intersection(n.accepting).IsEmpty()
}

// setFromBits lists the set bits in increasing order, which is already canonical.
func setFromBits(b *bitset.BitSet) Set[Int] {
	out := make([]Int, 0, b.Count())
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		out = append(out, Int(i))
	}
	return newSortedSet(out)
}
