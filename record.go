package kleene

import "strings"

// AutomatonRecord is the interchange form of an automaton, with every state rendered by
// its String method. Lists are in canonical order.
type AutomatonRecord struct {
	States      []string           `json:"states" yaml:"states"`
	Alphabet    []string           `json:"alphabet" yaml:"alphabet"`
	Transitions []TransitionRecord `json:"transitions" yaml:"transitions"`
	Start       string             `json:"start" yaml:"start"`
	Accepting   []string           `json:"accepting" yaml:"accepting"`
}

// TransitionRecord is one entry of δ. For a DFA To has exactly one element. An NFA
// ε-edge has Symbol "ε".
type TransitionRecord struct {
	From   string   `json:"from" yaml:"from"`
	Symbol string   `json:"symbol" yaml:"symbol"`
	To     []string `json:"to" yaml:"to,flow"`
}

func (n *NFA) Record() AutomatonRecord {
	rec := AutomatonRecord{
		States:    strs(n.states),
		Alphabet:  strs(n.alphabet),
		Start:     n.start.String(),
		Accepting: strs(n.accepting),
	}
	for k, targets := range n.delta.All() {
		rec.Transitions = append(rec.Transitions, TransitionRecord{
			From:   k.First.String(),
			Symbol: k.Second.String(),
			To:     strs(targets),
		})
	}
	return rec
}

func (d *DFA[S]) Record() AutomatonRecord {
	rec := AutomatonRecord{
		States:    strs(d.states),
		Alphabet:  strs(d.alphabet),
		Start:     d.start.String(),
		Accepting: strs(d.accepting),
	}
	for k, t := range d.delta.All() {
		rec.Transitions = append(rec.Transitions, TransitionRecord{
			From:   k.First.String(),
			Symbol: k.Second.String(),
			To:     []string{t.String()},
		})
	}
	return rec
}

// String renders the record as a transition table, one line per entry.
func (r AutomatonRecord) String() string {
	var b strings.Builder
	b.WriteString("states: " + strings.Join(r.States, " ") + "\n")
	b.WriteString("alphabet: " + strings.Join(r.Alphabet, " ") + "\n")
	b.WriteString("start: " + r.Start + "\n")
	b.WriteString("accepting: " + strings.Join(r.Accepting, " ") + "\n")
	for _, t := range r.Transitions {
		b.WriteString(t.From + " --" + t.Symbol + "--> " + strings.Join(t.To, " ") + "\n")
	}
	return b.String()
}

func strs[T Value](s Set[T]) []string {
	out := make([]string, 0, s.Len())
	for v := range s.All() {
		out = append(out, v.String())
	}
	return out
}
