package kleene

import (
	"unicode"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Rule rewrites any subtree matching Pattern into Replacement. Variables in Pattern bind
// to subtrees; a variable used twice must bind to structurally equal subtrees.
type Rule struct {
	Name        string
	Pattern     *RegExp
	Replacement *RegExp
}

// NewRule builds a rule from two templates in the surface syntax, with every upper-case
// letter read as a variable. The replacement may only use variables of the pattern.
func NewRule(pattern, replacement string) (Rule, error) {
	p, err := parseTemplate(pattern)
	if err != nil {
		return Rule{}, errors.Wrapf(err, "rule pattern %q", pattern)
	}
	r, err := parseTemplate(replacement)
	if err != nil {
		return Rule{}, errors.Wrapf(err, "rule replacement %q", replacement)
	}
	bound := make(map[string]struct{})
	collectVariables(p, bound)
	used := make(map[string]struct{})
	collectVariables(r, used)
	for name := range used {
		if _, ok := bound[name]; !ok {
			return Rule{}, errors.Errorf("rule %s -> %s: variable %s is not bound by the pattern",
				pattern, replacement, name)
		}
	}
	return Rule{Name: pattern + " → " + replacement, Pattern: p, Replacement: r}, nil
}

func mustRule(pattern, replacement string) Rule {
	r, err := NewRule(pattern, replacement)
	if err != nil {
		panic(err)
	}
	return r
}

func parseTemplate(s string) (*RegExp, error) {
	e, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return toVariables(e), nil
}

func toVariables(e *RegExp) *RegExp {
	switch e.kind {
	case KindChar:
		if unicode.IsUpper(rune(e.c)) {
			return MakeVariable(string(rune(e.c)))
		}
	case KindStar:
		return MakeStar(toVariables(e.exp1))
	case KindConcat, KindUnion:
		return &RegExp{kind: e.kind, exp1: toVariables(e.exp1), exp2: toVariables(e.exp2)}
	}
	return e
}

func collectVariables(e *RegExp, into map[string]struct{}) {
	switch e.kind {
	case KindVariable:
		into[e.name] = struct{}{}
	case KindStar:
		collectVariables(e.exp1, into)
	case KindConcat, KindUnion:
		collectVariables(e.exp1, into)
		collectVariables(e.exp2, into)
	}
}

// DefaultRules is the identity catalogue used by Simplify. The associativity rules turn
// both operators right-nested, matching the parser.
var DefaultRules = []Rule{
	mustRule("R+∅", "R"),
	mustRule("∅+R", "R"),
	mustRule("R∅", "∅"),
	mustRule("∅R", "∅"),
	mustRule("εR", "R"),
	mustRule("Rε", "R"),
	mustRule("R+R", "R"),
	mustRule("R+(R+S)", "R+S"),
	mustRule("∅*", "ε"),
	mustRule("ε*", "ε"),
	mustRule("(R*)*", "R*"),
	mustRule("(ε+R)*", "R*"),
	mustRule("(R+ε)*", "R*"),
	mustRule("ε+R*", "R*"),
	mustRule("R*+ε", "R*"),
	mustRule("ε+RR*", "R*"),
	mustRule("RR*+ε", "R*"),
	mustRule("R*R*", "R*"),
	mustRule("R*(R*S)", "R*S"),
	mustRule("(R+S)+T", "R+(S+T)"),
	mustRule("(RS)T", "R(ST)"),
}

const defaultMaxPasses = 64

type simplifierOptions struct {
	maxPasses int
	rules     []Rule
	logger    logrus.FieldLogger
}

type SimplifierOption func(*simplifierOptions)

// WithMaxPasses bounds the number of whole-tree passes, and the number of rewrites
// tried at a single node within one pass.
func WithMaxPasses(n int) SimplifierOption {
	return func(o *simplifierOptions) {
		o.maxPasses = n
	}
}

func WithRules(rules []Rule) SimplifierOption {
	return func(o *simplifierOptions) {
		o.rules = rules
	}
}

func WithLogger(l logrus.FieldLogger) SimplifierOption {
	return func(o *simplifierOptions) {
		o.logger = l
	}
}

// Simplifier normalizes trees by rewriting to a fixed point.
type Simplifier struct {
	maxPasses int
	rules     []Rule
	logger    logrus.FieldLogger
}

func NewSimplifier(options ...SimplifierOption) *Simplifier {
	opts := &simplifierOptions{
		maxPasses: defaultMaxPasses,
		rules:     DefaultRules,
	}
	for _, fn := range options {
		fn(opts)
	}
	if opts.maxPasses < 1 {
		opts.maxPasses = 1
	}
	return &Simplifier{
		maxPasses: opts.maxPasses,
		rules:     opts.rules,
		logger:    opts.logger,
	}
}

// Simplify rewrites r with DefaultRules.
func Simplify(r *RegExp) (*RegExp, error) {
	return NewSimplifier().Simplify(r)
}

// Simplify applies the rules bottom-up, retrying the whole rule list at every node,
// and repeats full passes until one changes nothing. If the pass limit is hit first it
// returns the current tree together with an *IterationLimitError.
func (s *Simplifier) Simplify(r *RegExp) (*RegExp, error) {
	log := s.logger
	if log == nil {
		log = logger
	}
	for pass := 1; pass <= s.maxPasses; pass++ {
		next, changed := s.rewrite(r)
		if !changed {
			log.WithFields(logrus.Fields{"passes": pass, "size": r.Size()}).Debug("simplifier reached a fixed point")
			return r, nil
		}
		r = next
	}
	log.WithFields(logrus.Fields{"passes": s.maxPasses, "size": r.Size()}).Warn("simplifier stopped before a fixed point")
	return r, &IterationLimitError{Passes: s.maxPasses}
}

func (s *Simplifier) rewrite(r *RegExp) (*RegExp, bool) {
	changed := false
	switch r.kind {
	case KindStar:
		if inner, ok := s.rewrite(r.exp1); ok {
			r = MakeStar(inner)
			changed = true
		}
	case KindConcat, KindUnion:
		left, okLeft := s.rewrite(r.exp1)
		right, okRight := s.rewrite(r.exp2)
		if okLeft || okRight {
			r = &RegExp{kind: r.kind, exp1: left, exp2: right}
			changed = true
		}
	}
	for attempt := 0; attempt < s.maxPasses; attempt++ {
		next, ok := s.applyFirst(r)
		if !ok {
			break
		}
		r = next
		changed = true
	}
	return r, changed
}

// applyFirst rewrites the root of r with the first rule that matches and changes it.
func (s *Simplifier) applyFirst(r *RegExp) (*RegExp, bool) {
	for _, rule := range s.rules {
		bindings := make(map[string]*RegExp)
		if !match(rule.Pattern, r, bindings) {
			continue
		}
		next := instantiate(rule.Replacement, bindings)
		if !next.Equals(r) {
			return next, true
		}
	}
	return r, false
}

func match(pattern, term *RegExp, bindings map[string]*RegExp) bool {
	if pattern.kind == KindVariable {
		if bound, ok := bindings[pattern.name]; ok {
			return bound.Equals(term)
		}
		bindings[pattern.name] = term
		return true
	}
	if pattern.kind != term.kind {
		return false
	}
	switch pattern.kind {
	case KindChar:
		return pattern.c == term.c
	case KindStar:
		return match(pattern.exp1, term.exp1, bindings)
	case KindConcat, KindUnion:
		return match(pattern.exp1, term.exp1, bindings) && match(pattern.exp2, term.exp2, bindings)
	}
	return true
}

func instantiate(template *RegExp, bindings map[string]*RegExp) *RegExp {
	switch template.kind {
	case KindVariable:
		bound, ok := bindings[template.name]
		if !ok {
			panic("kleene: rule replacement uses unbound variable " + template.name)
		}
		return bound
	case KindStar:
		return MakeStar(instantiate(template.exp1, bindings))
	case KindConcat, KindUnion:
		return &RegExp{
			kind: template.kind,
			exp1: instantiate(template.exp1, bindings),
			exp2: instantiate(template.exp2, bindings),
		}
	}
	return template
}
