// Package xz reads raw disk images compressed with xz
package xz

import (
	"io"

	"github.com/ulikunitz/xz"

	"github.com/diskfs/go-mbrview/disk/formats"
)

// New returns a stream over the decompressed contents of an xz image
func New(f io.ReaderAt) *formats.Stream {
	return formats.NewStream(f, formats.XZ, newReader)
}

func newReader(r io.Reader) (io.Reader, error) {
	return xz.NewReader(r)
}
