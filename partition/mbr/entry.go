package mbr

import (
	"encoding/binary"
)

const (
	entryStatusOffset   = 0
	entryCHSFirstOffset = 1
	entryTypeOffset     = 4
	entryCHSLastOffset  = 5
	entryLBAOffset      = 8
	entrySectorsOffset  = 12
)

// PartitionEntry is one of the four 16-byte primary partition slots of an MBR.
//
// The value is the raw on-disk record. A *PartitionEntry obtained from a GenericMbr
// aliases the buffer the GenericMbr was built from, and must be treated as read-only.
type PartitionEntry [EntrySize]byte

// EntryFromBytes interprets exactly 16 bytes as a single partition entry, without copying.
func EntryFromBytes(b []byte) (*PartitionEntry, error) {
	if len(b) != EntrySize {
		return nil, NewSizeMismatchError("partition entry", len(b), EntrySize)
	}
	return (*PartitionEntry)(b), nil
}

// IsEmpty reports whether the slot is free. This is the case iff the partition type is 0x00;
// no other field is considered.
func (p *PartitionEntry) IsEmpty() bool {
	return p.PartitionType() == 0x00
}

// PartitionType the raw partition type code. See TypeName for a human-readable label.
func (p *PartitionEntry) PartitionType() uint8 {
	return p[entryTypeOffset]
}

// StartSector the first sector of the partition, in logical blocks from the start of the disk
func (p *PartitionEntry) StartSector() uint32 {
	return binary.LittleEndian.Uint32(p[entryLBAOffset : entryLBAOffset+4])
}

// SectorLen the length of the partition in logical blocks
func (p *PartitionEntry) SectorLen() uint32 {
	return binary.LittleEndian.Uint32(p[entrySectorsOffset : entrySectorsOffset+4])
}

// Status the raw status byte. Historically bit 7 marks the active partition.
func (p *PartitionEntry) Status() uint8 {
	return p[entryStatusOffset]
}

// CHSFirst the raw CHS address of the first sector
func (p *PartitionEntry) CHSFirst() [3]byte {
	return [3]byte(p[entryCHSFirstOffset : entryCHSFirstOffset+3])
}

// CHSLast the raw CHS address of the last sector
func (p *PartitionEntry) CHSLast() [3]byte {
	return [3]byte(p[entryCHSLastOffset : entryCHSLastOffset+3])
}

// Bytes the 16 raw bytes of the entry. The slice aliases the entry.
func (p *PartitionEntry) Bytes() []byte {
	return p[:]
}
