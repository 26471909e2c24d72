package disk

import (
	"errors"
	"fmt"
	"io"

	"github.com/diskfs/go-mbrview/disk/formats"
	"github.com/diskfs/go-mbrview/disk/formats/lz4"
	"github.com/diskfs/go-mbrview/disk/formats/qcow2"
	"github.com/diskfs/go-mbrview/disk/formats/raw"
	"github.com/diskfs/go-mbrview/disk/formats/xz"
)

// Driver gives access to the guest bytes of a disk in a particular format
type Driver interface {
	Format() formats.Format
	io.ReaderAt
}

// GetDriver given a format, get a driver for the given format. If the format is
// formats.Unknown, then try to determine it from the first bytes of f.
func GetDriver(f io.ReaderAt, format formats.Format) (Driver, error) {
	if format == formats.Unknown {
		header := make([]byte, formats.HeaderSize)
		n, err := f.ReadAt(header, 0)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("could not read image header: %w", err)
		}
		format = formats.Detect(header[:n])
	}
	switch format {
	case formats.Raw:
		return raw.New(f), nil
	case formats.Qcow2:
		q, err := qcow2.Open(f)
		if err != nil {
			return nil, err
		}
		return q, nil
	case formats.XZ:
		return xz.New(f), nil
	case formats.LZ4:
		return lz4.New(f), nil
	}
	return nil, fmt.Errorf("unknown disk format: %v", format)
}
