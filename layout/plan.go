package layout

import (
	"math/bits"

	"github.com/8051enthusiast/regex2fat-go/dfa"
	"github.com/8051enthusiast/regex2fat-go/rexfat"
)

// Position records where a state's directory lives: its first cluster and
// its directory's size in bytes.
type Position struct {
	FirstCluster uint32
	SizeBytes    uint32
}

// ClusterRun reports how many contiguous clusters Position occupies.
func (p Position) ClusterRun() uint32 {
	return clustersFor(p.SizeBytes)
}

func clustersFor(sizeBytes uint32) uint32 {
	return (sizeBytes + BytesPerSector - 1) / BytesPerSector
}

// stateSizeBytes computes the directory size for a state:
// 32*(len(alphabet)+1) for an accepting state (the extra slot is MATCH), and
// either 32*len(alphabet) or 32*(len(alphabet)+1) for a non-accepting state
// depending on whether NOMATCH records are requested.
func stateSizeBytes(alphabetLen int, accept, nomatch bool) uint32 {
	n := alphabetLen
	if accept || nomatch {
		n++
	}
	return uint32(n) * 32
}

// Plan assigns each state in order a starting cluster and directory size,
// laying out cluster runs contiguously starting at FirstDataCluster. It
// returns the assignment map and the total number of clusters consumed by
// state directories (excluding trailing padding).
func Plan(order []dfa.StateID, a dfa.Automaton, alphabetLen int, nomatch bool) (map[dfa.StateID]Position, uint32, error) {
	positions := make(map[dfa.StateID]Position, len(order))
	cursor := uint32(FirstDataCluster)

	for _, state := range order {
		size := stateSizeBytes(alphabetLen, a.IsMatch(state), nomatch)
		if size == 0 {
			return nil, 0, rexfat.ErrZeroSizeState
		}
		positions[state] = Position{FirstCluster: cursor, SizeBytes: size}

		next, err := advanceCursor(cursor, clustersFor(size))
		if err != nil {
			return nil, 0, err
		}
		cursor = next
	}

	return positions, cursor - FirstDataCluster, nil
}

// advanceCursor adds run to cursor, reporting rexfat.ErrCapacityExceeded on
// 32-bit unsigned overflow instead of silently wrapping around.
func advanceCursor(cursor, run uint32) (uint32, error) {
	sum, carry := bits.Add32(cursor, run, 0)
	if carry != 0 {
		return 0, rexfat.ErrCapacityExceeded
	}
	return sum, nil
}
