package kleene

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNFARecord(t *testing.T) {
	rec := RegExpToNFA(MustParse("a"), Symbols("b")).Record()
	assert.Equal(t, AutomatonRecord{
		States:   []string{"0", "1"},
		Alphabet: []string{"a", "b"},
		Transitions: []TransitionRecord{
			{From: "0", Symbol: "a", To: []string{"1"}},
		},
		Start:     "0",
		Accepting: []string{"1"},
	}, rec)

	eps := RegExpToNFA(MustParse("ε"), Set[Sym]{}).Record()
	require.Len(t, eps.Transitions, 1)
	assert.Equal(t, "ε", eps.Transitions[0].Symbol)
}

func TestDFARecord(t *testing.T) {
	m := Minimize(RegExpToDFA(MustParse("a(a+b)*b"), Symbols("ab")))
	rec := m.Record()

	assert.Len(t, rec.States, 3)
	assert.Equal(t, []string{"a", "b"}, rec.Alphabet)
	assert.Len(t, rec.Accepting, 1)
	assert.Equal(t, m.Start().String(), rec.Start)
	assert.Len(t, rec.Transitions, m.NumTransitions())
	for _, tr := range rec.Transitions {
		assert.Len(t, tr.To, 1)
		assert.Contains(t, rec.States, tr.From)
		assert.Contains(t, rec.States, tr.To[0])
	}
}

func TestRecordEncoding(t *testing.T) {
	rec := RegExpToDFA(MustParse("ab*"), Symbols("ab")).Record()

	t.Run("JSON", func(t *testing.T) {
		data, err := json.Marshal(rec)
		require.NoError(t, err)
		var got AutomatonRecord
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, rec, got)
	})

	t.Run("YAML", func(t *testing.T) {
		data, err := yaml.Marshal(rec)
		require.NoError(t, err)
		assert.Contains(t, string(data), "accepting:")
		var got AutomatonRecord
		require.NoError(t, yaml.Unmarshal(data, &got))
		assert.Equal(t, rec, got)
	})
}

func TestRecordString(t *testing.T) {
	rec := RegExpToNFA(MustParse("a"), Set[Sym]{}).Record()
	assert.Equal(t, "states: 0 1\nalphabet: a\nstart: 0\naccepting: 1\n0 --a--> 1\n", rec.String())
}
