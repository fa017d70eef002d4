package layout

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/boljen/go-bitmap"
	"github.com/hashicorp/go-multierror"

	"github.com/8051enthusiast/regex2fat-go/rexfat"
)

// maxChainLength bounds how many clusters a single FAT chain walk will
// follow before giving up and reporting corruption, guarding against a
// cyclic FAT (which would otherwise hang the validator forever).
const maxChainLength = 1 << 20

// Validate walks a previously-assembled image back through its own FAT and
// directory structure and checks that it's internally consistent, without
// relying on Assemble's own bookkeeping (positions, order) in any way: it
// recomputes everything from the boot sector, FAT, and directory bytes, the
// way an independent reader would.
//
// r must expose the whole image (imageSize bytes) via Seek+Read, the shape
// bytesextra.NewReadWriteSeeker provides. Every violated invariant is
// accumulated into the returned error instead of stopping at the first one.
func Validate(r io.ReadSeeker, imageSize int64, alphabet rexfat.Alphabet) error {
	var result *multierror.Error

	boot, err := readSector(r, 0)
	if err != nil {
		return rexfat.ErrIOFailed.WrapError(err)
	}
	if boot[510] != 0x55 || boot[511] != 0xaa {
		result = multierror.Append(result, fmt.Errorf("boot sector missing 55 AA signature"))
	}

	bytesPerSector := binary.LittleEndian.Uint16(boot[11:13])
	if bytesPerSector != BytesPerSector {
		result = multierror.Append(result, fmt.Errorf("bytes per sector = %d, want %d", bytesPerSector, BytesPerSector))
	}
	rootCluster := binary.LittleEndian.Uint32(boot[44:48])
	if rootCluster != FirstDataCluster {
		result = multierror.Append(result, fmt.Errorf("root cluster = %d, want %d", rootCluster, FirstDataCluster))
	}
	totalSectors := binary.LittleEndian.Uint32(boot[32:36])
	fatSectors := binary.LittleEndian.Uint32(boot[36:40])

	if int64(totalSectors)*BytesPerSector != imageSize {
		result = multierror.Append(result, fmt.Errorf(
			"total sectors field (%d) * %d != image size %d", totalSectors, BytesPerSector, imageSize))
	}

	fsinfo, err := readSector(r, FSInfoSector)
	if err != nil {
		return rexfat.ErrIOFailed.WrapError(err)
	}
	if binary.LittleEndian.Uint32(fsinfo[0:4]) != 0x41615252 {
		result = multierror.Append(result, fmt.Errorf("FSINFO missing leading RRaA signature"))
	}

	backupBoot, err := readSector(r, BackupBootSector)
	if err != nil {
		return rexfat.ErrIOFailed.WrapError(err)
	}
	if string(backupBoot) != string(boot) {
		result = multierror.Append(result, fmt.Errorf("backup boot sector (6) does not match primary"))
	}

	dataAreaSector := uint32(ReservedSectors) + fatSectors
	totalDataClusters := totalSectors - dataAreaSector
	if totalDataClusters < MinDataClusters {
		result = multierror.Append(result, fmt.Errorf(
			"total data clusters %d below FAT32 minimum %d", totalDataClusters, MinDataClusters))
	}

	occupied := bitmap.New(int(totalDataClusters))
	visited := map[uint32]bool{rootCluster: true}
	queue := []uint32{rootCluster}

	markRun := func(chain []uint32) {
		for _, c := range chain {
			idx := int(c - FirstDataCluster)
			if idx < 0 || idx >= int(totalDataClusters) {
				result = multierror.Append(result, fmt.Errorf("cluster %d outside data area", c))
				continue
			}
			if occupied.Get(idx) {
				result = multierror.Append(result, fmt.Errorf("cluster %d claimed by more than one state run", c))
			}
			occupied.Set(idx, true)
		}
	}

	for len(queue) > 0 {
		cluster := queue[0]
		queue = queue[1:]

		chain, terminated, err := followChain(r, cluster)
		if err != nil {
			return rexfat.ErrIOFailed.WrapError(err)
		}
		if !terminated {
			result = multierror.Append(result, fmt.Errorf("FAT chain for cluster %d never reaches end-of-chain", cluster))
		}
		markRun(chain)

		dirBytes, err := readDirectory(r, dataAreaSector, chain)
		if err != nil {
			return rexfat.ErrIOFailed.WrapError(err)
		}

		n := len(dirBytes) / 32
		seenAlphabetEntries := 0
		for i := 0; i < n; i++ {
			entry := dirBytes[i*32 : i*32+32]
			if entry[11]&attrDirectory == 0 {
				// MATCH/NOMATCH sentinel; not a transition, skip.
				continue
			}
			seenAlphabetEntries++
			high := binary.LittleEndian.Uint16(entry[20:22])
			low := binary.LittleEndian.Uint16(entry[26:28])
			target := uint32(high)<<16 | uint32(low)
			if !visited[target] {
				visited[target] = true
				queue = append(queue, target)
			}
		}
		if seenAlphabetEntries != len(alphabet) {
			result = multierror.Append(result, fmt.Errorf(
				"state at cluster %d has %d subdirectory records, want %d", cluster, seenAlphabetEntries, len(alphabet)))
		}
	}

	return result.ErrorOrNil()
}

func readAt(r io.ReadSeeker, offset int64, buf []byte) error {
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	_, err := io.ReadFull(r, buf)
	return err
}

func readSector(r io.ReadSeeker, sector uint32) ([]byte, error) {
	buf := make([]byte, BytesPerSector)
	if err := readAt(r, int64(sector)*BytesPerSector, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// followChain reads the FAT starting at cluster and walks it to end-of-chain,
// returning every cluster in the run in order.
func followChain(r io.ReadSeeker, cluster uint32) ([]uint32, bool, error) {
	var chain []uint32
	current := cluster
	for i := 0; i < maxChainLength; i++ {
		chain = append(chain, current)

		entryBuf := make([]byte, 4)
		offset := int64(ReservedSectors)*BytesPerSector + int64(current)*4
		if err := readAt(r, offset, entryBuf); err != nil {
			return chain, false, err
		}
		entry := binary.LittleEndian.Uint32(entryBuf) & 0x0FFFFFFF
		if entry >= 0x0FFFFFF8 {
			return chain, true, nil
		}
		current = entry
	}
	return chain, false, nil
}

// readDirectory reads the full directory image spanning chain's clusters.
func readDirectory(r io.ReadSeeker, dataAreaSector uint32, chain []uint32) ([]byte, error) {
	var buf []byte
	for _, cluster := range chain {
		sector := dataAreaSector + (cluster - FirstDataCluster)
		sectorBytes, err := readSector(r, sector)
		if err != nil {
			return nil, err
		}
		buf = append(buf, sectorBytes...)
	}
	return buf, nil
}
