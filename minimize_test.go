package kleene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinimize(t *testing.T) {
	sigma := Symbols("ab")
	for _, s := range pipelineInputs {
		t.Run(s, func(t *testing.T) {
			d := RegExpToDFA(MustParse(s), sigma)
			m := Minimize(d)

			assert.LessOrEqual(t, m.States().Len(), d.States().Len())
			for _, w := range allWords(sigma, 6) {
				assert.Equal(t, d.Accepts(w), m.Accepts(w), "word %q", w)
			}

			// Classes partition the states and agree on acceptance.
			var union Set[Set[Int]]
			for class := range m.States().All() {
				require.False(t, class.IsEmpty())
				assert.True(t, union.Intersection(class).IsEmpty())
				union = union.Union(class)
				for member := range class.All() {
					assert.Equal(t, m.IsAccept(class), d.IsAccept(member))
				}
			}
			assert.True(t, union.Equals(d.States()))
			assert.True(t, m.Start().Contains(d.Start()))
		})
	}
}

func TestMinimizeIdempotent(t *testing.T) {
	for _, s := range pipelineInputs {
		t.Run(s, func(t *testing.T) {
			m1 := Minimize(RegExpToDFA(MustParse(s), Symbols("ab")))
			m2 := Minimize(m1)
			assert.Equal(t, m1.States().Len(), m2.States().Len())
			assert.Equal(t, m1.NumTransitions(), m2.NumTransitions())
		})
	}
}

func TestMinimizeKnownSizes(t *testing.T) {
	tests := []struct {
		input  string
		states int
	}{
		{"(a+b)*", 1},
		{"a(a+b)*b", 3},
		{"((a+b)(a+b))*", 2},
		{"a*b*", 2},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m := Minimize(RegExpToDFA(MustParse(tt.input), Symbols("ab")))
			assert.Equal(t, tt.states, m.States().Len())
		})
	}
}

func TestMinimizeDropsUnreachable(t *testing.T) {
	// 3 and 4 cannot be reached; 1 and 2 are equivalent.
	d := buildDFA(t, 5, "ab", []int{1, 2, 4},
		[3]int{0, 'a', 1}, [3]int{0, 'b', 2},
		[3]int{1, 'a', 1}, [3]int{2, 'a', 2},
		[3]int{3, 'a', 4}, [3]int{4, 'b', 0},
	)
	m := Minimize(d)

	require.Equal(t, 2, m.States().Len())
	assert.True(t, NewSet(NewSet(Int(0)), NewSet(Int(1), Int(2))).Equals(m.States()))
	assert.True(t, NewSet(NewSet(Int(1), Int(2))).Equals(m.Accepting()))
	assert.True(t, NewSet(Int(0)).Equals(m.Start()))
}

func TestMinimizeMissingTransitions(t *testing.T) {
	// 1 rejects by omission, 2 through an explicit dead state 3.
	d := buildDFA(t, 4, "ab", []int{1, 2},
		[3]int{0, 'a', 1}, [3]int{0, 'b', 2},
		[3]int{2, 'a', 3}, [3]int{3, 'a', 3}, [3]int{3, 'b', 3},
	)
	m := Minimize(d)

	assert.Equal(t, 3, m.States().Len())
	assert.True(t, m.States().Contains(NewSet(Int(1), Int(2))))
	for _, w := range allWords(Symbols("ab"), 4) {
		assert.Equal(t, d.Accepts(w), m.Accepts(w), "word %q", w)
	}
}

func TestScenario(t *testing.T) {
	sigma := Symbols("ab")
	m := Minimize(NFAToDFA(RegExpToNFA(MustParse("a(a+b)*b"), sigma)))

	for _, w := range []string{"ab", "aab", "aabab"} {
		assert.True(t, m.Accepts(w), w)
	}
	for _, w := range []string{"a", "b", "ba", ""} {
		assert.False(t, m.Accepts(w), w)
	}
}
