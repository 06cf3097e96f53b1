package kleene

import (
	"iter"

	"github.com/pkg/errors"
)

// DFA is a deterministic automaton whose states are structural values: sets of NFA states
// after determinization, sets of those after minimization. The transition function is
// partial; a missing entry rejects.
type DFA[S Value] struct {
	states    Set[S]
	alphabet  Set[Sym]
	delta     *HashMap[Pair[S, Sym], S]
	start     S
	accepting Set[S]
}

func (d *DFA[S]) States() Set[S] {
	return d.states
}

func (d *DFA[S]) Alphabet() Set[Sym] {
	return d.alphabet
}

func (d *DFA[S]) Start() S {
	return d.start
}

func (d *DFA[S]) Accepting() Set[S] {
	return d.accepting
}

func (d *DFA[S]) IsAccept(s S) bool {
	return d.accepting.Contains(s)
}

// Step returns δ(s, c), or false if there is no such transition.
func (d *DFA[S]) Step(s S, c Sym) (S, bool) {
	return d.delta.Get(MakePair(s, c))
}

// Transitions iterates δ in canonical (state, symbol) order.
func (d *DFA[S]) Transitions() iter.Seq2[Pair[S, Sym], S] {
	return d.delta.All()
}

func (d *DFA[S]) NumTransitions() int {
	return d.delta.Len()
}

// Accepts runs d on w.
func (d *DFA[S]) Accepts(w string) bool {
	state := d.start
	for _, r := range w {
		next, ok := d.Step(state, Sym(r))
		if !ok {
			return false
		}
		state = next
	}
	return d.IsAccept(state)
}

// DFABuilder assembles a DFA one state and transition at a time.
type DFABuilder[S Value] struct {
	alphabet  Set[Sym]
	states    []S
	known     *HashMap[S, struct{}]
	accepting []S
	delta     *HashMap[Pair[S, Sym], S]
	start     S
	hasStart  bool
}

func NewDFABuilder[S Value](alphabet Set[Sym]) *DFABuilder[S] {
	return &DFABuilder[S]{
		alphabet: alphabet,
		known:    NewHashMap[S, struct{}](),
		delta:    NewHashMap[Pair[S, Sym], S](),
	}
}

// AddState adds s; adding a state twice has no effect.
func (b *DFABuilder[S]) AddState(s S) *DFABuilder[S] {
	if !b.known.Has(s) {
		b.known.Set(s, struct{}{})
		b.states = append(b.states, s)
	}
	return b
}

func (b *DFABuilder[S]) SetStart(s S) error {
	if !b.known.Has(s) {
		return errors.Wrapf(ErrUnknownState, "start state %s", s)
	}
	b.start = s
	b.hasStart = true
	return nil
}

func (b *DFABuilder[S]) SetAccept(s S) error {
	if !b.known.Has(s) {
		return errors.Wrapf(ErrUnknownState, "accepting state %s", s)
	}
	b.accepting = append(b.accepting, s)
	return nil
}

// AddTransition adds δ(from, c) = to. Re-adding the same transition is allowed; a
// different target for the same (from, c) is not.
func (b *DFABuilder[S]) AddTransition(from S, c Sym, to S) error {
	if !b.known.Has(from) {
		return errors.Wrapf(ErrUnknownState, "source state %s", from)
	}
	if !b.known.Has(to) {
		return errors.Wrapf(ErrUnknownState, "target state %s", to)
	}
	if !b.alphabet.Contains(c) {
		return errors.Wrapf(ErrUnknownSymbol, "symbol %s", c)
	}
	key := MakePair(from, c)
	if old, ok := b.delta.Get(key); ok && !old.Equals(to) {
		return errors.Wrapf(ErrNotDeterministic, "δ(%s, %s) is already %s, cannot add %s", from, c, old, to)
	}
	b.delta.Set(key, to)
	return nil
}

// Finish returns the automaton. States that cannot be reached are kept.
func (b *DFABuilder[S]) Finish() (*DFA[S], error) {
	if !b.hasStart {
		return nil, errors.Wrap(ErrUnknownState, "no start state")
	}
	return &DFA[S]{
		states:    NewSet(b.states...),
		alphabet:  b.alphabet,
		delta:     b.delta,
		start:     b.start,
		accepting: NewSet(b.accepting...),
	}, nil
}
