package layout

import (
	"io"

	"github.com/8051enthusiast/regex2fat-go/dfa"
	"github.com/8051enthusiast/regex2fat-go/rexfat"
)

// Options configures Assemble.
type Options struct {
	// NoMatch, when true, emits a NOMATCH sentinel file in every
	// non-accepting state's directory.
	NoMatch bool

	// Shuffle, if non-nil, randomizes cluster layout by permuting the
	// enumerated state order (the start state is never moved). Pass nil for
	// deterministic, enumeration-order layout.
	Shuffle func([]dfa.StateID)
}

// Assemble writes the complete FAT32 volume for a over alphabet to w, in
// the fixed order boot -> FSINFO -> reserved -> backups -> FAT ->
// directories -> trailing pad, composing the whole volume image out of
// sequential writes in a single pass.
func Assemble(w io.Writer, a dfa.Automaton, alphabet rexfat.Alphabet, opts Options) error {
	if err := alphabet.Validate(); err != nil {
		return err
	}

	order := Enumerate(a, alphabet, opts.Shuffle)
	positions, totalStateClusters, err := Plan(order, a, len(alphabet), opts.NoMatch)
	if err != nil {
		return err
	}

	pad := padClusters(totalStateClusters)

	fatBytes, err := WriteFAT(order, positions, pad)
	if err != nil {
		return err
	}
	fatSectors := uint32(len(fatBytes) / BytesPerSector)

	writes := [][]byte{
		buildBootSector(totalStateClusters+pad, fatSectors),
		buildFSInfo(),
		make([]byte, 4*BytesPerSector), // reserved sectors 2-5
		buildBootSector(totalStateClusters+pad, fatSectors), // backup, sector 6
		buildFSInfo(),                                       // backup, sector 7
		fatBytes,
	}
	for _, chunk := range writes {
		if _, err := w.Write(chunk); err != nil {
			return rexfat.ErrIOFailed.WrapError(err)
		}
	}

	for _, state := range order {
		dirBytes, err := WriteDirectory(state, a, alphabet, positions, totalStateClusters, opts.NoMatch)
		if err != nil {
			return err
		}
		if _, err := w.Write(dirBytes); err != nil {
			return rexfat.ErrIOFailed.WrapError(err)
		}
	}

	emptySector := make([]byte, BytesPerSector)
	for i := uint32(0); i < pad; i++ {
		if _, err := w.Write(emptySector); err != nil {
			return rexfat.ErrIOFailed.WrapError(err)
		}
	}
	return nil
}

// padClusters computes pad = max(1, 65536 - total_state_clusters), done in
// 64-bit arithmetic to avoid the unsigned underflow a naive uint32
// subtraction would hit once totalStateClusters exceeds 65536.
func padClusters(totalStateClusters uint32) uint32 {
	pad := int64(65536) - int64(totalStateClusters)
	if pad < 1 {
		pad = 1
	}
	return uint32(pad)
}
