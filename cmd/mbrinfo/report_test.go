package main

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/require"

	"github.com/diskfs/go-mbrview/disk"
	"github.com/diskfs/go-mbrview/disk/formats"
	"github.com/diskfs/go-mbrview/partition/mbr"
)

const testDiskSize = 100 * 1024 * 1024

type testEntry struct {
	status, ptype  byte
	start, sectors uint32
}

func testSector(entries ...testEntry) []byte {
	b := make([]byte, mbr.Size)
	for i, e := range entries {
		off := 446 + i*mbr.EntrySize
		b[off] = e.status
		b[off+4] = e.ptype
		binary.LittleEndian.PutUint32(b[off+8:], e.start)
		binary.LittleEndian.PutUint32(b[off+12:], e.sectors)
	}
	b[510], b[511] = 0x55, 0xaa
	return b
}

func testDisk(size int64) *disk.Disk {
	return &disk.Disk{
		Type:              disk.DeviceTypeFile,
		Format:            formats.Raw,
		Size:              size,
		LogicalBlocksize:  512,
		PhysicalBlocksize: 512,
	}
}

func TestNewReport(t *testing.T) {
	b := testSector(
		testEntry{status: 0x80, ptype: 0x83, start: 2048, sectors: 65536},
		testEntry{ptype: 0x82, start: 67584, sectors: 4096},
	)
	m, err := mbr.FromBytes(b)
	require.NoError(t, err)

	r := newReport("disk.img", testDisk(testDiskSize), m)
	expected := []Partition{
		{Index: 0, Status: 0x80, Type: 0x83, TypeName: "Linux", Start: 2048, Sectors: 65536, Offset: 2048 * 512, Bytes: 65536 * 512},
		{Index: 1, Type: 0x82, TypeName: "Linux swap / Solaris", Start: 67584, Sectors: 4096, Offset: 67584 * 512, Bytes: 4096 * 512},
		{Index: 2, Empty: true, TypeName: "Empty"},
		{Index: 3, Empty: true, TypeName: "Empty"},
	}
	if diff := deep.Equal(r.Partitions, expected); diff != nil {
		t.Errorf("partitions: %v", diff)
	}
	if r.Signature != "55aa" || !r.Valid {
		t.Errorf("signature %s valid %v, expected 55aa valid", r.Signature, r.Valid)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("unexpected warnings %v", r.Warnings)
	}
	if r.Format != "raw" || r.DeviceType != "file" || r.SectorSize != 512 {
		t.Errorf("mismatched disk details format %s type %s sector size %d", r.Format, r.DeviceType, r.SectorSize)
	}
	if len(r.sector) != mbr.Size {
		t.Errorf("kept %d bytes of sector instead of %d", len(r.sector), mbr.Size)
	}
}

func TestNewReportBadSignature(t *testing.T) {
	b := make([]byte, mbr.Size)
	m, err := mbr.FromBytes(b)
	require.NoError(t, err)

	r := newReport("zero.img", testDisk(testDiskSize), m)
	if r.Valid {
		t.Errorf("all-zero sector reported a valid signature")
	}
	if len(r.Warnings) != 1 || !strings.HasPrefix(r.Warnings[0], "boot signature 0000 is not 55aa") {
		t.Errorf("mismatched warnings %v", r.Warnings)
	}
	for _, p := range r.Partitions {
		if !p.Empty {
			t.Errorf("partition %d of all-zero sector is not empty", p.Index)
		}
	}
}

func TestCheckPartitions(t *testing.T) {
	tests := []struct {
		name     string
		entries  []testEntry
		size     int64
		warnings []string
	}{
		{"clean", []testEntry{{ptype: 0x83, start: 2048, sectors: 2048}, {ptype: 0x83, start: 4096, sectors: 2048}}, testDiskSize, nil},
		{"zero length", []testEntry{{ptype: 0x05, start: 2048}}, testDiskSize, []string{"partition 0 has type 0x05 but zero length"}},
		{"beyond disk", []testEntry{{ptype: 0x83, start: 2048, sectors: 2048}}, 1024 * 1024, []string{"partition 0 ends at byte 2097152, beyond the end of the disk at 1048576"}},
		{"unknown size", []testEntry{{ptype: 0x83, start: 2048, sectors: 1 << 30}}, 0, nil},
		{"overlap", []testEntry{{ptype: 0x83, start: 2048, sectors: 4096}, {ptype: 0x83, start: 4096, sectors: 2048}}, testDiskSize, []string{"partitions 0 and 1 overlap"}},
		{"overlap not adjacent", []testEntry{
			{ptype: 0x83, start: 2048, sectors: 8192},
			{ptype: 0x83, start: 20480, sectors: 2048},
			{ptype: 0x83, start: 4096, sectors: 1024},
		}, testDiskSize, []string{"partitions 0 and 2 overlap"}},
		{"empty slots ignored", []testEntry{{ptype: 0x83, start: 2048, sectors: 4096}, {ptype: 0x00, start: 2048, sectors: 4096}}, testDiskSize, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := mbr.FromBytes(testSector(tt.entries...))
			require.NoError(t, err)
			r := newReport("disk.img", testDisk(tt.size), m)
			if diff := deep.Equal(r.Warnings, tt.warnings); diff != nil {
				t.Errorf("warnings: %v", diff)
			}
		})
	}
}

func TestFileTimes(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := fileTimes("/nonexistent/disk.img")
		if err == nil || !strings.HasPrefix(err.Error(), "could not get timestamps of") {
			t.Errorf("mismatched error %v", err)
		}
	})
	t.Run("valid", func(t *testing.T) {
		ft, err := fileTimes("../../partition/mbr/testdata/mbr.img")
		require.NoError(t, err)
		if ft.Modified.IsZero() {
			t.Errorf("zero modification time")
		}
	})
}

func TestInspectStream(t *testing.T) {
	t.Run("short", func(t *testing.T) {
		_, err := inspectStream(bytes.NewReader(make([]byte, 100)), 0)
		if err == nil || !strings.HasPrefix(err.Error(), "read only 100 bytes of MBR from stream") {
			t.Errorf("mismatched error %v", err)
		}
	})
	t.Run("4k sectors", func(t *testing.T) {
		b := testSector(testEntry{ptype: 0x83, start: 256, sectors: 1024})
		r, err := inspectStream(bytes.NewReader(b), 4096)
		require.NoError(t, err)
		require.Equal(t, stdinImage, r.Path)
		require.Equal(t, "unknown", r.DeviceType)
		require.Equal(t, int64(256*4096), r.Partitions[0].Offset)
		require.Empty(t, r.Warnings)
	})
}
