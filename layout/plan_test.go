package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/8051enthusiast/regex2fat-go/dfa"
	"github.com/8051enthusiast/regex2fat-go/layout"
)

func TestPlanFirstClusterIsTwo(t *testing.T) {
	a := threeStateCycle()
	order := layout.Enumerate(a, []byte("ab"), nil)
	positions, _, err := layout.Plan(order, a, 2, false)
	require.NoError(t, err)
	assert.Equal(t, uint32(layout.FirstDataCluster), positions[order[0]].FirstCluster)
}

func TestPlanRunsAreContiguousInEnumerationOrder(t *testing.T) {
	a := threeStateCycle()
	order := layout.Enumerate(a, []byte("ab"), nil)
	positions, _, err := layout.Plan(order, a, 2, false)
	require.NoError(t, err)

	for i := 1; i < len(order); i++ {
		prev := positions[order[i-1]]
		cur := positions[order[i]]
		assert.Equal(t, prev.FirstCluster+prev.ClusterRun(), cur.FirstCluster)
	}
}

func TestPlanDistinctRunsAreDisjoint(t *testing.T) {
	a := threeStateCycle()
	order := layout.Enumerate(a, []byte("ab"), nil)
	positions, _, err := layout.Plan(order, a, 2, false)
	require.NoError(t, err)

	occupied := map[uint32]bool{}
	for _, s := range order {
		p := positions[s]
		for c := p.FirstCluster; c < p.FirstCluster+p.ClusterRun(); c++ {
			assert.False(t, occupied[c], "cluster %d double-claimed", c)
			occupied[c] = true
		}
	}
}

func TestPlanAcceptingStateGetsMatchSlot(t *testing.T) {
	s0, s1 := dfa.StateID(0), dfa.StateID(1)
	a := &mockAutomaton{
		start:     s0,
		next:      map[dfa.StateID]map[byte]dfa.StateID{s0: {'a': s1}, s1: {'a': s1}},
		accepts:   map[dfa.StateID]bool{s1: true},
		numStates: 2,
	}
	order := layout.Enumerate(a, []byte("a"), nil)
	positions, _, err := layout.Plan(order, a, 1, false)
	require.NoError(t, err)

	// accepting state: (1 alphabet letter + 1 MATCH slot) * 32 = 64 bytes
	assert.Equal(t, uint32(64), positions[s1].SizeBytes)
	// non-accepting, no nomatch: 1 letter * 32 = 32 bytes
	assert.Equal(t, uint32(32), positions[s0].SizeBytes)
}

func TestPlanNoMatchFlagAddsSlotToRejectingStates(t *testing.T) {
	s0, s1 := dfa.StateID(0), dfa.StateID(1)
	a := &mockAutomaton{
		start:     s0,
		next:      map[dfa.StateID]map[byte]dfa.StateID{s0: {'a': s1}, s1: {'a': s1}},
		accepts:   map[dfa.StateID]bool{s1: true},
		numStates: 2,
	}
	order := layout.Enumerate(a, []byte("a"), nil)
	positions, _, err := layout.Plan(order, a, 1, true)
	require.NoError(t, err)

	assert.Equal(t, uint32(64), positions[s0].SizeBytes)
	assert.Equal(t, uint32(64), positions[s1].SizeBytes)
}
