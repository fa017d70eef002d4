package layout

import (
	"bytes"
	"encoding/binary"
)

// BytesPerSector and SectorsPerCluster are fixed by this implementation: one
// cluster is exactly one 512-byte sector. A generic FAT driver would leave
// these configurable, but nothing here needs more than one geometry.
const (
	BytesPerSector    = 512
	SectorsPerCluster = 1
	ReservedSectors   = 8
	NumFATs           = 1
	FSInfoSector      = 1
	BackupBootSector  = 6

	// FirstDataCluster is where the root directory (state s0) must land.
	FirstDataCluster = 2

	// MinDataClusters is the FAT32-vs-FAT16 cluster count boundary
	// Microsoft's FAT documentation defines.
	MinDataClusters = 65525
)

// rawFATBootSectorWithBPB is the portion of the boot sector's BIOS Parameter
// Block common to every FAT version. Every field is populated by the
// assembler rather than parsed off an existing disk.
type rawFATBootSectorWithBPB struct {
	JmpBoot           [3]byte
	OEMName           [8]byte
	BytesPerSector    uint16
	SectorsPerCluster uint8
	ReservedSectors   uint16
	NumFATs           uint8
	RootEntryCount    uint16
	TotalSectors16    uint16
	Media             uint8
	SectorsPerFAT16   uint16
	SectorsPerTrack   uint16
	NumHeads          uint16
	HiddenSectors     uint32
	TotalSectors32    uint32
}

// rawFAT32BootSector extends the common BPB with the FAT32-specific fields.
type rawFAT32BootSector struct {
	rawFATBootSectorWithBPB
	FATSize32        uint32
	ExtFlags         uint16
	FSVersionMinor   uint8
	FSVersionMajor   uint8
	RootCluster      uint32
	FSInfoSector     uint16
	BackupBootSector uint16
	Reserved         [12]byte
	DriveNumber      uint8
	NTReserved       uint8
	ExBootSignature  uint8
	VolumeID         uint32
	VolumeLabel      [11]byte
	FileSystemType   [8]byte
}

// rawFSInfo is the on-disk FSINFO sector layout.
type rawFSInfo struct {
	LeadSignature   uint32
	Reserved1       [480]byte
	StructSignature uint32
	FreeCount       uint32
	NextFree        uint32
	Reserved2       [12]byte
	TrailSignature  uint32
}

// buildBootSector renders the 512-byte boot sector for a volume holding
// totalDataClusters data clusters and fatSectors sectors of FAT.
func buildBootSector(totalDataClusters, fatSectors uint32) []byte {
	totalSectors := totalDataClusters + ReservedSectors + NumFATs*fatSectors

	boot := rawFAT32BootSector{
		rawFATBootSectorWithBPB: rawFATBootSectorWithBPB{
			JmpBoot:           [3]byte{0xeb, 0xfe, 0x90},
			OEMName:           [8]byte{'r', 'e', 'g', 'e', 'x', '2', 'f', 'a'},
			BytesPerSector:    BytesPerSector,
			SectorsPerCluster: SectorsPerCluster,
			ReservedSectors:   ReservedSectors,
			NumFATs:           NumFATs,
			Media:             0xf8,
			SectorsPerTrack:   1,
			NumHeads:          1,
			TotalSectors32:    totalSectors,
		},
		FATSize32:        fatSectors,
		RootCluster:      FirstDataCluster,
		FSInfoSector:     FSInfoSector,
		BackupBootSector: BackupBootSector,
		FileSystemType:   [8]byte{'F', 'A', 'T', '3', '2', ' ', ' ', ' '},
	}

	buf := &bytes.Buffer{}
	// binary.Write cannot fail against a bytes.Buffer; every field above is a
	// fixed-size type.
	_ = binary.Write(buf, binary.LittleEndian, &boot)

	sector := make([]byte, BytesPerSector)
	copy(sector, buf.Bytes())
	sector[510] = 0x55
	sector[511] = 0xaa
	return sector
}

// buildFSInfo renders the 512-byte FSINFO sector. Free-cluster accounting is
// left pessimistic (zero free, no known free cluster) since nothing in this
// pipeline ever frees a cluster after allocating it.
func buildFSInfo() []byte {
	info := rawFSInfo{
		LeadSignature:   0x41615252, // "RRaA"
		StructSignature: 0x61417272, // "rrAa"
		FreeCount:       0,
		NextFree:        0xFFFFFFFF,
		TrailSignature:  0xAA550000,
	}

	buf := &bytes.Buffer{}
	_ = binary.Write(buf, binary.LittleEndian, &info)

	sector := make([]byte, BytesPerSector)
	copy(sector, buf.Bytes())
	return sector
}
