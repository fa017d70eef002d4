package layout

import (
	"github.com/8051enthusiast/regex2fat-go/dfa"
	"github.com/8051enthusiast/regex2fat-go/rexfat"
)

// WriteDirectory renders the directory image for state: one subdirectory
// record per alphabet byte (pointing at the successor state's first
// cluster), followed by a MATCH record if state accepts, or a NOMATCH
// record if nomatch is requested and state does not accept. The result is
// zero-padded to a sector boundary.
func WriteDirectory(
	state dfa.StateID,
	a dfa.Automaton,
	alphabet rexfat.Alphabet,
	positions map[dfa.StateID]Position,
	totalStateClusters uint32,
	nomatch bool,
) ([]byte, error) {
	var buf []byte

	for _, b := range alphabet {
		next := a.Next(state, b)
		pos, ok := positions[next]
		if !ok {
			return nil, rexfat.ErrInvalidStateReference
		}
		buf = append(buf, subdirectoryRecord(b, pos.FirstCluster)...)
	}

	sentinelCluster := totalStateClusters + FirstDataCluster
	switch {
	case a.IsMatch(state):
		buf = append(buf, sentinelFileRecord(matchName, sentinelCluster)...)
	case nomatch:
		buf = append(buf, sentinelFileRecord(nomatchName, sentinelCluster)...)
	}

	if rem := len(buf) % BytesPerSector; rem != 0 {
		buf = append(buf, make([]byte, BytesPerSector-rem)...)
	}
	return buf, nil
}
