package layout

import (
	"encoding/binary"

	"github.com/noxer/bytewriter"

	"github.com/8051enthusiast/regex2fat-go/dfa"
	"github.com/8051enthusiast/regex2fat-go/rexfat"
)

// endOfChain is the FAT32 end-of-chain sentinel (low 28 bits meaningful).
const endOfChain uint32 = 0x0FFFFFFF

// WriteFAT renders the File Allocation Table for order's cluster runs (as
// assigned by Plan), followed by pad end-of-chain entries reserving
// trailing data clusters, zero-padded to a sector boundary.
//
// The buffer is pre-sized and wrapped with noxer/bytewriter to give a
// fixed-size slice an io.Writer for a run of sequential binary.Write calls.
func WriteFAT(order []dfa.StateID, positions map[dfa.StateID]Position, pad uint32) ([]byte, error) {
	totalEntries := uint32(2)
	for _, s := range order {
		pos, ok := positions[s]
		if !ok {
			return nil, rexfat.ErrInvalidStateReference
		}
		run := pos.ClusterRun()
		if run == 0 {
			return nil, rexfat.ErrZeroSizeState
		}
		totalEntries += run
	}
	totalEntries += pad

	byteLen := totalEntries * 4
	if rem := byteLen % BytesPerSector; rem != 0 {
		byteLen += BytesPerSector - rem
	}

	buf := make([]byte, byteLen)
	w := bytewriter.New(buf)

	// Reserved entries 0 and 1.
	_ = binary.Write(w, binary.LittleEndian, endOfChain)
	_ = binary.Write(w, binary.LittleEndian, endOfChain)

	for _, s := range order {
		pos := positions[s]
		run := pos.ClusterRun()
		for i := uint32(0); i < run; i++ {
			if i == run-1 {
				_ = binary.Write(w, binary.LittleEndian, endOfChain)
				continue
			}
			_ = binary.Write(w, binary.LittleEndian, pos.FirstCluster+i+1)
		}
	}

	for i := uint32(0); i < pad; i++ {
		_ = binary.Write(w, binary.LittleEndian, endOfChain)
	}

	return buf, nil
}
