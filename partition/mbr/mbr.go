// Package mbr provides a zero-copy view over a Master Boot Record.
//
// A GenericMbr is nothing more than the 512 bytes of sector 0, reinterpreted in place:
//
//	offset  length  field
//	     0     446  bootstrap code, never interpreted
//	   446      16  partition entry 0
//	   462      16  partition entry 1
//	   478      16  partition entry 2
//	   494      16  partition entry 3
//	   510       2  boot signature, conventionally 0x55 0xAA
//
// Integer fields are little-endian and are converted when an accessor is called. No
// validation is done beyond the length check at construction: every 512-byte pattern is
// a structurally valid GenericMbr.
//
// FromBytes borrows the caller's buffer. The view must not outlive that buffer, and the
// buffer must not be modified while the view is being read. Use Copy for a view that
// owns its bytes.
package mbr

import (
	"fmt"
)

const (
	// Size of an MBR sector
	Size = 512
	// EntrySize of a single partition entry
	EntrySize = 16
	// EntryCount of primary partition slots
	EntryCount = 4

	unusedSize          = 446
	partitionEntriesOff = unusedSize
	bootSignatureOff    = partitionEntriesOff + EntryCount*EntrySize
)

// Signature is the conventional boot signature found in the last two bytes of the sector
var Signature = [2]byte{0x55, 0xaa}

// GenericMbr is the raw 512-byte MBR sector
type GenericMbr [Size]byte

// FromBytes interprets exactly 512 bytes as an MBR. The returned view aliases b.
func FromBytes(b []byte) (*GenericMbr, error) {
	if len(b) != Size {
		return nil, NewSizeMismatchError("MBR", len(b), Size)
	}
	return (*GenericMbr)(b), nil
}

// Copy is like FromBytes, but the returned view owns a private copy of the 512 bytes
func Copy(b []byte) (*GenericMbr, error) {
	if len(b) != Size {
		return nil, NewSizeMismatchError("MBR", len(b), Size)
	}
	m := GenericMbr(b)
	return &m, nil
}

// Clone returns a view over a private copy of m
func (m *GenericMbr) Clone() *GenericMbr {
	c := *m
	return &c
}

// PartitionEntries the four partition slots in on-disk order. Each entry aliases m.
func (m *GenericMbr) PartitionEntries() [EntryCount]*PartitionEntry {
	var entries [EntryCount]*PartitionEntry
	for i := range entries {
		start := partitionEntriesOff + i*EntrySize
		entries[i] = (*PartitionEntry)(m[start : start+EntrySize])
	}
	return entries
}

// Entry the partition slot at index i, 0 through 3
func (m *GenericMbr) Entry(i int) (*PartitionEntry, error) {
	if i < 0 || i >= EntryCount {
		return nil, fmt.Errorf("partition entry index %d out of range, must be between 0 and %d", i, EntryCount-1)
	}
	return m.PartitionEntries()[i], nil
}

// Unused the 446 bytes of bootstrap code preceding the partition table
func (m *GenericMbr) Unused() []byte {
	return m[:unusedSize]
}

// BootSignature the raw last two bytes of the sector
func (m *GenericMbr) BootSignature() [2]byte {
	return [2]byte(m[bootSignatureOff:])
}

// HasValidSignature whether the boot signature is 0x55 0xAA. This is informational only;
// FromBytes never checks it.
func (m *GenericMbr) HasValidSignature() bool {
	return m.BootSignature() == Signature
}

// Bytes the whole 512-byte sector. The slice aliases m.
func (m *GenericMbr) Bytes() []byte {
	return m[:]
}
