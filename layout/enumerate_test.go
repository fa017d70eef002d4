package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/8051enthusiast/regex2fat-go/dfa"
	"github.com/8051enthusiast/regex2fat-go/layout"
	"github.com/8051enthusiast/regex2fat-go/rexfat"
)

func threeStateCycle() *mockAutomaton {
	s0, s1, s2 := dfa.StateID(0), dfa.StateID(1), dfa.StateID(2)
	return &mockAutomaton{
		start: s0,
		next: map[dfa.StateID]map[byte]dfa.StateID{
			s0: {'a': s1, 'b': s0},
			s1: {'a': s2, 'b': s0},
			s2: {'a': s2, 'b': s2},
		},
		accepts:   map[dfa.StateID]bool{s2: true},
		numStates: 3,
	}
}

func TestEnumerateStartFixedAtZero(t *testing.T) {
	a := threeStateCycle()
	order := layout.Enumerate(a, rexfat.Alphabet("ab"), nil)
	require.Len(t, order, 3)
	assert.Equal(t, a.Start(), order[0])
}

func TestEnumerateNoDuplicatesAndFullCoverage(t *testing.T) {
	a := threeStateCycle()
	order := layout.Enumerate(a, rexfat.Alphabet("ab"), nil)

	seen := map[dfa.StateID]bool{}
	for _, s := range order {
		assert.False(t, seen[s], "state %v visited twice", s)
		seen[s] = true
	}
	assert.True(t, seen[dfa.StateID(0)])
	assert.True(t, seen[dfa.StateID(1)])
	assert.True(t, seen[dfa.StateID(2)])
}

func TestEnumerateShuffleNeverMovesStartState(t *testing.T) {
	a := threeStateCycle()
	reverse := func(s []dfa.StateID) {
		for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
			s[i], s[j] = s[j], s[i]
		}
	}
	order := layout.Enumerate(a, rexfat.Alphabet("ab"), reverse)
	assert.Equal(t, a.Start(), order[0])
}
