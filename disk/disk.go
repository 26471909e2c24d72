// Package disk provides utilities for reading the partition table of a disk
//
// Most of the provided functions are intelligent wrappers around implementations of
// github.com/diskfs/go-mbrview/partition and github.com/diskfs/go-mbrview/partition/mbr
package disk

import (
	"context"
	"fmt"
	"io/fs"

	log "github.com/sirupsen/logrus"

	"github.com/diskfs/go-mbrview/backend"
	"github.com/diskfs/go-mbrview/disk/formats"
	"github.com/diskfs/go-mbrview/partition"
	"github.com/diskfs/go-mbrview/partition/mbr"
)

// Disk is a reference to a single disk block device or image that has been Open()
type Disk struct {
	Backend           backend.Storage
	Info              fs.FileInfo
	Type              DeviceType
	Format            formats.Format
	Size              int64
	LogicalBlocksize  int64
	PhysicalBlocksize int64
	Driver            Driver
}

// Close the underlying backend
func (d *Disk) Close() error {
	return d.Backend.Close()
}

// ReadMBR reads the MBR from the first sector of the disk
//
// The returned view owns a copy of the sector. The context is checked before the
// read is issued; a read in progress on a slow device cannot be interrupted.
func (d *Disk) ReadMBR(ctx context.Context) (*mbr.GenericMbr, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.Driver == nil {
		return nil, fmt.Errorf("disk has no driver")
	}
	log.Debugf("reading MBR from %s disk", d.Format)
	return partition.Read(d.Driver)
}

// PartitionStorage returns the bytes of the in-use partition at slot idx, 0 through 3
//
// The partition's start and length are in units of the disk's logical block size.
// returns an error if the slot is out of range or empty, or if the partition ends beyond
// a disk of known size
func (d *Disk) PartitionStorage(ctx context.Context, idx int) (*backend.SubStorage, error) {
	if idx < 0 || idx >= mbr.EntryCount {
		return nil, NewInvalidPartitionError(idx)
	}
	m, err := d.ReadMBR(ctx)
	if err != nil {
		return nil, err
	}
	entry := m.PartitionEntries()[idx]
	if entry.IsEmpty() {
		return nil, NewEmptyPartitionError(idx)
	}
	start := int64(entry.StartSector()) * d.LogicalBlocksize
	size := int64(entry.SectorLen()) * d.LogicalBlocksize
	if d.Size > 0 && start+size > d.Size {
		return nil, NewPartitionBeyondDiskError(idx, start+size, d.Size)
	}
	return backend.Sub(driverStorage{d.Backend, d.Driver}, start, size), nil
}

// driverStorage exposes the guest bytes of a driver with the file operations of the backend
type driverStorage struct {
	backend.Storage
	driver Driver
}

func (s driverStorage) ReadAt(b []byte, off int64) (int, error) {
	return s.driver.ReadAt(b, off)
}
