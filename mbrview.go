// Package mbrview reads the Master Boot Record partition table of disks and disk images
//
// It never writes to the disk: devices and images are opened read-only, and the partition
// table is exposed as a zero-copy view over the 512 bytes of sector 0. The view itself lives
// in github.com/diskfs/go-mbrview/partition/mbr and can be used on its own with any buffer.
//
// Some examples:
//
// 1. List the partitions of a disk image
//
//	import mbrview "github.com/diskfs/go-mbrview"
//
//	m, err := mbrview.ReadMBR(ctx, "/tmp/disk.img")
//	for i, e := range m.PartitionEntries() {
//	  if e.IsEmpty() {
//	    continue
//	  }
//	  fmt.Printf("%d: type %#02x start %d sectors %d\n", i, e.PartitionType(), e.StartSector(), e.SectorLen())
//	}
//
// 2. Read the contents of the first partition of a block device with 4k sectors
//
//	d, err := mbrview.Open("/dev/sdb", mbrview.WithSectorSize(mbrview.SectorSize4k))
//	defer d.Close()
//	part, err := d.PartitionStorage(ctx, 0)
//	io.Copy(dst, part)
//
// 3. Read the MBR of a compressed image
//
//	m, err := mbrview.ReadMBR(ctx, "/tmp/disk.img.xz")
package mbrview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/diskfs/go-mbrview/backend"
	"github.com/diskfs/go-mbrview/backend/file"
	"github.com/diskfs/go-mbrview/disk"
	"github.com/diskfs/go-mbrview/disk/formats"
	"github.com/diskfs/go-mbrview/disk/formats/qcow2"
	"github.com/diskfs/go-mbrview/partition/mbr"
)

// when we use a disk image, we cannot get the logical sector size from the disk via the kernel
// so we use the default sector size of 512
const (
	defaultBlocksize int64 = 512
)

// SectorSize represents the sector size to use
type SectorSize int

const (
	SectorSizeDefault SectorSize = 0
	SectorSize512     SectorSize = 512
	SectorSize4k      SectorSize = 4096
)

type openOpts struct {
	sectorSize SectorSize
	format     formats.Format
}

func openOptsDefaults() *openOpts {
	return &openOpts{
		sectorSize: SectorSizeDefault,
		format:     formats.Unknown,
	}
}

// OpenOpt func that process Open options
type OpenOpt func(o *openOpts) error

// WithSectorSize opens the disk with the given logical sector size, overriding what the kernel
// reports for a block device
func WithSectorSize(sectorSize SectorSize) OpenOpt {
	return func(o *openOpts) error {
		if sectorSize != SectorSizeDefault && sectorSize != SectorSize512 && sectorSize != SectorSize4k {
			return fmt.Errorf("sector size %d is not supported, use 512 or 4096", sectorSize)
		}
		o.sectorSize = sectorSize
		return nil
	}
}

// WithFormat opens the disk as the given image format instead of detecting it
func WithFormat(format formats.Format) OpenOpt {
	return func(o *openOpts) error {
		o.format = format
		return nil
	}
}

func initDisk(b backend.Storage, opts *openOpts) (*disk.Disk, error) {
	var (
		size     int64
		lblksize = defaultBlocksize
		pblksize = defaultBlocksize
	)

	devInfo, err := b.Stat()
	if err != nil {
		return nil, fmt.Errorf("could not get info for device: %w", err)
	}
	diskType, err := disk.DetermineDeviceType(b)
	if err != nil {
		return nil, err
	}
	switch diskType {
	case disk.DeviceTypeFile:
		size = devInfo.Size()
	case disk.DeviceTypeBlockDevice:
		size, err = b.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, fmt.Errorf("could not get size of device %s: %w", devInfo.Name(), err)
		}
		osFile, err := b.Sys()
		if err != nil {
			return nil, fmt.Errorf("could not get OS file for device %s: %w", devInfo.Name(), err)
		}
		lblksize, pblksize, err = getSectorSizes(osFile)
		if err != nil {
			return nil, fmt.Errorf("unable to get block sizes for device %s: %w", devInfo.Name(), err)
		}
	}
	if size <= 0 {
		return nil, fmt.Errorf("could not get size for device %s", devInfo.Name())
	}
	if opts.sectorSize != SectorSizeDefault {
		lblksize = int64(opts.sectorSize)
	}

	driver, err := disk.GetDriver(b, opts.format)
	if err != nil {
		return nil, err
	}
	format := driver.Format()
	switch d := driver.(type) {
	case *qcow2.Qcow2:
		size = d.Size()
	default:
		if format.Compressed() {
			// the decompressed size is unknown without reading the whole image
			size = 0
		}
	}
	log.Debugf("opened %s %s: format %s, size %d, logical block size %d, physical block size %d",
		diskType, devInfo.Name(), format, size, lblksize, pblksize)

	return &disk.Disk{
		Backend:           b,
		Info:              devInfo,
		Type:              diskType,
		Format:            format,
		Size:              size,
		LogicalBlocksize:  lblksize,
		PhysicalBlocksize: pblksize,
		Driver:            driver,
	}, nil
}

// Open a Disk from a path to a device or image, read-only
// Should pass a path to a block device e.g. /dev/sda or a path to a file /tmp/foo.img
// The provided device must exist at the time you call Open()
func Open(device string, opts ...OpenOpt) (*disk.Disk, error) {
	o := openOptsDefaults()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if device == "" {
		return nil, errors.New("must pass device name")
	}
	b, err := file.OpenFromPath(device)
	if err != nil {
		return nil, err
	}
	d, err := initDisk(b, o)
	if err != nil {
		b.Close()
		return nil, err
	}
	return d, nil
}

// ReadMBR opens device, reads its MBR and closes it again. The returned view owns its bytes.
func ReadMBR(ctx context.Context, device string, opts ...OpenOpt) (*mbr.GenericMbr, error) {
	d, err := Open(device, opts...)
	if err != nil {
		return nil, err
	}
	defer d.Close()
	return d.ReadMBR(ctx)
}

// OpenFile is like Open, but for an already open file, which the Disk takes over
func OpenFile(f *os.File, opts ...OpenOpt) (*disk.Disk, error) {
	o := openOptsDefaults()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return initDisk(file.New(f), o)
}
