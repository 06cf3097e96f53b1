package kleene

// stateCounter mints NFA state ids. One counter is threaded through a whole compilation so
// that fragments never share a state.
type stateCounter struct {
	next Int
}

func (c *stateCounter) fresh() Int {
	s := c.next
	c.next++
	return s
}

// fragment is an NFA under construction with a single start and a single accepting state.
type fragment struct {
	states    []Int
	start     Int
	accepting []Int
	edges     []edge
}

type edge struct {
	from Int
	sym  Sym
	to   Int
}

// theAccept returns the accepting state of f. Combinators wire ε-edges to it, so a
// fragment with any other number of accepting states is a broken construction.
func (f *fragment) theAccept() Int {
	if len(f.accepting) != 1 {
		panic("kleene: thompson fragment must have exactly one accepting state")
	}
	return f.accepting[0]
}

type Automata struct {
	counter stateCounter
}

// MakeEmpty
// Returns a fragment with the empty language: the accepting state is unreachable.
func (a *Automata) MakeEmpty() *fragment {
	q0, q1 := a.counter.fresh(), a.counter.fresh()
	return &fragment{states: []Int{q0, q1}, start: q0, accepting: []Int{q1}}
}

// MakeEmptyString
// Returns a fragment that accepts only the empty string.
func (a *Automata) MakeEmptyString() *fragment {
	q0, q1 := a.counter.fresh(), a.counter.fresh()
	return &fragment{
		states:    []Int{q0, q1},
		start:     q0,
		accepting: []Int{q1},
		edges:     []edge{{q0, EpsilonSym, q1}},
	}
}

// MakeChar
// Returns a fragment that accepts the single symbol c.
func (a *Automata) MakeChar(c Sym) *fragment {
	q0, q1 := a.counter.fresh(), a.counter.fresh()
	return &fragment{
		states:    []Int{q0, q1},
		start:     q0,
		accepting: []Int{q1},
		edges:     []edge{{q0, c, q1}},
	}
}

// MakeConcat links the accepting state of f1 to the start of f2.
func (a *Automata) MakeConcat(f1, f2 *fragment) *fragment {
	f := &fragment{
		states:    append(append([]Int{}, f1.states...), f2.states...),
		start:     f1.start,
		accepting: []Int{f2.theAccept()},
		edges:     append(append([]edge{}, f1.edges...), f2.edges...),
	}
	f.edges = append(f.edges, edge{f1.theAccept(), EpsilonSym, f2.start})
	return f
}

// MakeUnion branches from a new start into both operands and joins them in a new
// accepting state.
func (a *Automata) MakeUnion(f1, f2 *fragment) *fragment {
	q0, q5 := a.counter.fresh(), a.counter.fresh()
	f := &fragment{
		states:    append(append([]Int{q0, q5}, f1.states...), f2.states...),
		start:     q0,
		accepting: []Int{q5},
		edges:     append(append([]edge{}, f1.edges...), f2.edges...),
	}
	f.edges = append(f.edges,
		edge{q0, EpsilonSym, f1.start},
		edge{q0, EpsilonSym, f2.start},
		edge{f1.theAccept(), EpsilonSym, q5},
		edge{f2.theAccept(), EpsilonSym, q5},
	)
	return f
}

// MakeStar wraps f so it can be skipped or repeated.
func (a *Automata) MakeStar(f1 *fragment) *fragment {
	q0, q3 := a.counter.fresh(), a.counter.fresh()
	accept := f1.theAccept()
	f := &fragment{
		states:    append([]Int{q0, q3}, f1.states...),
		start:     q0,
		accepting: []Int{q3},
		edges:     append([]edge{}, f1.edges...),
	}
	f.edges = append(f.edges,
		edge{q0, EpsilonSym, f1.start},
		edge{q0, EpsilonSym, q3},
		edge{accept, EpsilonSym, f1.start},
		edge{accept, EpsilonSym, q3},
	)
	return f
}

// compile builds the fragment of r bottom-up.
func (a *Automata) compile(r *RegExp) *fragment {
	switch r.kind {
	case KindEmptySet:
		return a.MakeEmpty()
	case KindEpsilon:
		return a.MakeEmptyString()
	case KindChar:
		return a.MakeChar(r.c)
	case KindConcat:
		f1 := a.compile(r.exp1)
		f2 := a.compile(r.exp2)
		return a.MakeConcat(f1, f2)
	case KindUnion:
		f1 := a.compile(r.exp1)
		f2 := a.compile(r.exp2)
		return a.MakeUnion(f1, f2)
	case KindStar:
		return a.MakeStar(a.compile(r.exp1))
	case KindVariable:
		panic("kleene: cannot compile pattern variable " + r.name)
	}
	panic("kleene: unknown regexp kind " + r.kind.String())
}
