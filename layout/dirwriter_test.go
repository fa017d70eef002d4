package layout_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/8051enthusiast/regex2fat-go/dfa"
	"github.com/8051enthusiast/regex2fat-go/layout"
	"github.com/8051enthusiast/regex2fat-go/rexfat"
)

func TestWriteDirectoryPointsAtSuccessorClusters(t *testing.T) {
	a := threeStateCycle()
	alphabet := []byte("ab")
	order := layout.Enumerate(a, alphabet, nil)
	positions, total, err := layout.Plan(order, a, len(alphabet), false)
	require.NoError(t, err)

	dir, err := layout.WriteDirectory(order[0], a, alphabet, positions, total, false)
	require.NoError(t, err)
	assert.Equal(t, 0, len(dir)%layout.BytesPerSector)

	for i, b := range alphabet {
		record := dir[i*32 : i*32+32]
		high := binary.LittleEndian.Uint16(record[20:22])
		low := binary.LittleEndian.Uint16(record[26:28])
		got := uint32(high)<<16 | uint32(low)

		want := positions[a.Next(order[0], b)].FirstCluster
		assert.Equal(t, want, got, "byte %q", b)
		assert.Equal(t, uint8(0x11), record[11])
	}
}

func TestWriteDirectoryUnknownStateIsInvalidReference(t *testing.T) {
	s0, s1 := dfa.StateID(0), dfa.StateID(1)
	a := &mockAutomaton{
		start:     s0,
		next:      map[dfa.StateID]map[byte]dfa.StateID{s0: {'a': s1}},
		accepts:   map[dfa.StateID]bool{},
		numStates: 2,
	}
	_, err := layout.WriteDirectory(s0, a, []byte("a"), map[dfa.StateID]layout.Position{}, 0, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, rexfat.ErrInvalidStateReference)
}
