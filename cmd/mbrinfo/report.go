package main

import (
	"fmt"
	"time"

	"gopkg.in/djherbis/times.v1"

	"github.com/diskfs/go-mbrview/disk"
	"github.com/diskfs/go-mbrview/partition/mbr"
)

// Report is everything mbrinfo prints about one image
type Report struct {
	Path       string      `json:"path" yaml:"path"`
	Format     string      `json:"format" yaml:"format"`
	DeviceType string      `json:"deviceType" yaml:"deviceType"`
	Size       int64       `json:"size,omitempty" yaml:"size,omitempty"`
	SectorSize int64       `json:"sectorSize" yaml:"sectorSize"`
	Times      *FileTimes  `json:"times,omitempty" yaml:"times,omitempty"`
	Signature  string      `json:"signature" yaml:"signature"`
	Valid      bool        `json:"validSignature" yaml:"validSignature"`
	Partitions []Partition `json:"partitions" yaml:"partitions"`
	Warnings   []string    `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	sector []byte
}

// FileTimes are the timestamps of the image file
type FileTimes struct {
	Modified time.Time  `json:"modified" yaml:"modified"`
	Accessed time.Time  `json:"accessed" yaml:"accessed"`
	Changed  *time.Time `json:"changed,omitempty" yaml:"changed,omitempty"`
	Born     *time.Time `json:"born,omitempty" yaml:"born,omitempty"`
}

// Partition is one slot of the partition table
type Partition struct {
	Index    int    `json:"index" yaml:"index"`
	Empty    bool   `json:"empty" yaml:"empty"`
	Status   uint8  `json:"status" yaml:"status"`
	Type     uint8  `json:"type" yaml:"type"`
	TypeName string `json:"typeName" yaml:"typeName"`
	Start    uint32 `json:"start" yaml:"start"`
	Sectors  uint32 `json:"sectors" yaml:"sectors"`
	Offset   int64  `json:"offset" yaml:"offset"`
	Bytes    int64  `json:"bytes" yaml:"bytes"`
}

func fileTimes(path string) (*FileTimes, error) {
	ts, err := times.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("could not get timestamps of %s: %w", path, err)
	}
	ft := &FileTimes{
		Modified: ts.ModTime(),
		Accessed: ts.AccessTime(),
	}
	if ts.HasChangeTime() {
		c := ts.ChangeTime()
		ft.Changed = &c
	}
	if ts.HasBirthTime() {
		b := ts.BirthTime()
		ft.Born = &b
	}
	return ft, nil
}

// newReport describes m, read from d. Semantic problems with the table become warnings.
func newReport(path string, d *disk.Disk, m *mbr.GenericMbr) *Report {
	sig := m.BootSignature()
	r := &Report{
		Path:       path,
		Format:     d.Format.String(),
		DeviceType: d.Type.String(),
		Size:       d.Size,
		SectorSize: d.LogicalBlocksize,
		Signature:  fmt.Sprintf("%02x%02x", sig[0], sig[1]),
		Valid:      m.HasValidSignature(),
		sector:     m.Bytes(),
	}
	if !r.Valid {
		r.Warnings = append(r.Warnings, fmt.Sprintf("boot signature %s is not 55aa, this may not be an MBR", r.Signature))
	}
	for i, e := range m.PartitionEntries() {
		p := Partition{
			Index:    i,
			Empty:    e.IsEmpty(),
			Status:   e.Status(),
			Type:     e.PartitionType(),
			TypeName: mbr.TypeName(e.PartitionType()),
			Start:    e.StartSector(),
			Sectors:  e.SectorLen(),
			Offset:   int64(e.StartSector()) * d.LogicalBlocksize,
			Bytes:    int64(e.SectorLen()) * d.LogicalBlocksize,
		}
		r.Partitions = append(r.Partitions, p)
	}
	r.Warnings = append(r.Warnings, checkPartitions(r.Partitions, d.Size)...)
	return r
}

// checkPartitions finds in-use entries that are zero length, overlap another entry, or extend
// past the end of a disk of known size
func checkPartitions(parts []Partition, diskSize int64) []string {
	var warnings []string
	var used []Partition
	for _, p := range parts {
		if p.Empty {
			continue
		}
		used = append(used, p)
		if p.Sectors == 0 {
			warnings = append(warnings, fmt.Sprintf("partition %d has type 0x%02x but zero length", p.Index, p.Type))
		}
		if diskSize > 0 && p.Offset+p.Bytes > diskSize {
			warnings = append(warnings, fmt.Sprintf("partition %d ends at byte %d, beyond the end of the disk at %d", p.Index, p.Offset+p.Bytes, diskSize))
		}
	}
	for i := 0; i < len(used); i++ {
		for j := i + 1; j < len(used); j++ {
			if overlap(used[i], used[j]) {
				warnings = append(warnings, fmt.Sprintf("partitions %d and %d overlap", used[i].Index, used[j].Index))
			}
		}
	}
	return warnings
}

func overlap(a, b Partition) bool {
	if a.Sectors == 0 || b.Sectors == 0 {
		return false
	}
	aEnd := uint64(a.Start) + uint64(a.Sectors)
	bEnd := uint64(b.Start) + uint64(b.Sectors)
	return uint64(a.Start) < bEnd && uint64(b.Start) < aEnd
}
