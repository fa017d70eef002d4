package layout

import (
	"bytes"
	"encoding/binary"
)

// attrReadOnly and attrDirectory are the FAT attribute byte bits this
// writer needs; the layout writer never needs any of the others (plus the
// zero value for a regular file).
const (
	attrReadOnly  = 1
	attrDirectory = 16
)

// rawDirent is the on-disk representation of a 32-byte short directory
// entry.
type rawDirent struct {
	Name              [8]byte
	Extension         [3]byte
	AttributeFlags    uint8
	NTReserved        uint8
	CreatedTimeMillis uint8
	CreatedTime       uint16
	CreatedDate       uint16
	LastAccessedDate  uint16
	FirstClusterHigh  uint16
	LastModifiedTime  uint16
	LastModifiedDate  uint16
	FirstClusterLow   uint16
	FileSize          uint32
}

// fatEpochDate is 1980-01-01 encoded as a FAT date word.
const fatEpochDate = 0x0021

func (d *rawDirent) bytes() []byte {
	buf := &bytes.Buffer{}
	_ = binary.Write(buf, binary.LittleEndian, d)
	return buf.Bytes()
}

// shortName8Dot3 renders an alphabet byte as an 11-byte 8.3 short name. FAT
// forbids a leading 0xE5 or space byte in a name, so the space character is
// aliased to the literal word SPACE; every other byte is padded on the
// right with spaces.
func shortName8Dot3(b byte) [11]byte {
	var name [11]byte
	if b == ' ' {
		copy(name[:], "SPACE      ")
		return name
	}
	name[0] = b
	for i := 1; i < 11; i++ {
		name[i] = ' '
	}
	return name
}

// subdirectoryRecord builds the directory record for the subdirectory
// reached by transitioning on byte b, pointing at targetCluster.
func subdirectoryRecord(b byte, targetCluster uint32) []byte {
	name := shortName8Dot3(b)
	d := rawDirent{
		AttributeFlags:   attrReadOnly | attrDirectory,
		LastModifiedDate: fatEpochDate,
		FirstClusterHigh: uint16(targetCluster >> 16),
		FirstClusterLow:  uint16(targetCluster & 0xffff),
	}
	copy(d.Name[:], name[:8])
	copy(d.Extension[:], name[8:])
	return d.bytes()
}

// sentinelFileRecord builds the zero-length MATCH/NOMATCH file record.
// name must already be the padded 11-byte 8.3 form (e.g. "MATCH      ").
func sentinelFileRecord(name [11]byte, targetCluster uint32) []byte {
	d := rawDirent{
		FirstClusterHigh: uint16(targetCluster >> 16),
		FirstClusterLow:  uint16(targetCluster & 0xffff),
		LastModifiedDate: fatEpochDate,
	}
	copy(d.Name[:], name[:8])
	copy(d.Extension[:], name[8:])
	return d.bytes()
}

var matchName = [11]byte{'M', 'A', 'T', 'C', 'H', ' ', ' ', ' ', ' ', ' ', ' '}
var nomatchName = [11]byte{'N', 'O', 'M', 'A', 'T', 'C', 'H', ' ', ' ', ' ', ' '}
