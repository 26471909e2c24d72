package mbr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func entryWith(status, typ byte, start, length [4]byte) []byte {
	b := make([]byte, EntrySize)
	b[entryStatusOffset] = status
	b[entryTypeOffset] = typ
	copy(b[entryLBAOffset:], start[:])
	copy(b[entrySectorsOffset:], length[:])
	return b
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name     string
		b        []byte
		expected bool
	}{
		{"all zero", make([]byte, EntrySize), true},
		{"zero type with other fields set", entryWith(0x80, 0x00, [4]byte{1, 2, 3, 4}, [4]byte{5, 6, 7, 8}), true},
		{"linux", entryWith(0x00, 0x83, [4]byte{0, 8, 0, 0}, [4]byte{0, 0, 1, 0}), false},
		{"non-zero type with zero length", entryWith(0x00, 0x0c, [4]byte{}, [4]byte{}), false},
		{"type 0xff", entryWith(0xff, 0xff, [4]byte{0xff, 0xff, 0xff, 0xff}, [4]byte{0xff, 0xff, 0xff, 0xff}), false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			e, err := EntryFromBytes(tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if e.IsEmpty() != tt.expected {
				t.Errorf("IsEmpty() %v instead of expected %v", e.IsEmpty(), tt.expected)
			}
		})
	}
}

func TestIsEmptyEveryType(t *testing.T) {
	b := make([]byte, EntrySize)
	for code := 0; code < 256; code++ {
		b[entryTypeOffset] = byte(code)
		e := (*PartitionEntry)(b)
		if e.IsEmpty() != (code == 0) {
			t.Errorf("type %#02x: IsEmpty() returned %v", code, e.IsEmpty())
		}
		if e.PartitionType() != uint8(code) {
			t.Errorf("type %#02x: PartitionType() returned %#02x", code, e.PartitionType())
		}
	}
}

func TestLittleEndianFields(t *testing.T) {
	tests := []struct {
		raw      [4]byte
		expected uint32
	}{
		{[4]byte{0x00, 0x10, 0x00, 0x00}, 4096},
		{[4]byte{0x00, 0x08, 0x00, 0x00}, 2048},
		{[4]byte{0x00, 0x00, 0x01, 0x00}, 65536},
		{[4]byte{0x01, 0x00, 0x00, 0x00}, 1},
		{[4]byte{0x00, 0x00, 0x00, 0x80}, 0x80000000},
		{[4]byte{0xff, 0xff, 0xff, 0xff}, 0xffffffff},
	}
	for _, tt := range tests {
		e := (*PartitionEntry)(entryWith(0, 0x83, tt.raw, tt.raw))
		if e.StartSector() != tt.expected {
			t.Errorf("StartSector() of % x returned %d instead of %d", tt.raw, e.StartSector(), tt.expected)
		}
		if e.SectorLen() != tt.expected {
			t.Errorf("SectorLen() of % x returned %d instead of %d", tt.raw, e.SectorLen(), tt.expected)
		}
	}
}

func TestRawFields(t *testing.T) {
	b := []byte{0x80, 0x01, 0x02, 0x03, 0x07, 0xfe, 0xfd, 0xfc, 0, 0, 0, 0, 0, 0, 0, 0}
	e, err := EntryFromBytes(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Status() != 0x80 {
		t.Errorf("Status() %#x instead of 0x80", e.Status())
	}
	if e.CHSFirst() != [3]byte{0x01, 0x02, 0x03} {
		t.Errorf("CHSFirst() % x", e.CHSFirst())
	}
	if e.CHSLast() != [3]byte{0xfe, 0xfd, 0xfc} {
		t.Errorf("CHSLast() % x", e.CHSLast())
	}
	if &e.Bytes()[0] != &b[0] {
		t.Error("Bytes() does not alias the input")
	}
}

func TestEntryFromBytesSizeMismatch(t *testing.T) {
	for _, size := range []int{0, 15, 17, 512} {
		e, err := EntryFromBytes(make([]byte, size))
		if e != nil {
			t.Errorf("%d bytes: returned an entry", size)
		}
		expected := fmt.Sprintf("data for partition entry was %d bytes instead of expected %d", size, EntrySize)
		if err == nil || !strings.HasPrefix(err.Error(), expected) {
			t.Errorf("%d bytes: error %v instead of expected %s", size, err, expected)
		}
		if !errors.Is(err, ErrSizeMismatch) {
			t.Errorf("%d bytes: error does not match ErrSizeMismatch", size)
		}
	}
}

func TestLayoutOffsets(t *testing.T) {
	if bootSignatureOff != 510 {
		t.Errorf("boot signature at %d instead of 510", bootSignatureOff)
	}
	if bootSignatureOff+2 != Size {
		t.Errorf("layout is %d bytes instead of %d", bootSignatureOff+2, Size)
	}
}
