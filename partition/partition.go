// Package partition reads the partition table from sector 0 of a disk.
// The table layout itself lives in the mbr subpackage.
package partition

import (
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/diskfs/go-mbrview/partition/mbr"
)

// Read reads the MBR from the first sector of f. The returned view owns its buffer, so it
// remains valid after f is closed.
func Read(f io.ReaderAt) (*mbr.GenericMbr, error) {
	b := make([]byte, mbr.Size)
	n, err := f.ReadAt(b, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error reading MBR from disk: %w", err)
	}
	if n != mbr.Size {
		return nil, fmt.Errorf("read only %d bytes of MBR from disk instead of expected %d", n, mbr.Size)
	}
	log.Debugf("read %d bytes of MBR", n)
	return mbr.FromBytes(b)
}

// ReadFrom reads the MBR from the next 512 bytes of a stream, such as a decompressed image
func ReadFrom(r io.Reader) (*mbr.GenericMbr, error) {
	b := make([]byte, mbr.Size)
	n, err := io.ReadFull(r, b)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return nil, fmt.Errorf("read only %d bytes of MBR from stream instead of expected %d", n, mbr.Size)
	case err != nil:
		return nil, fmt.Errorf("error reading MBR from stream: %w", err)
	}
	return mbr.FromBytes(b)
}
