// Package lz4 reads raw disk images compressed in the lz4 frame format
package lz4

import (
	"io"

	"github.com/pierrec/lz4"

	"github.com/diskfs/go-mbrview/disk/formats"
)

// New returns a stream over the decompressed contents of an lz4 image
func New(f io.ReaderAt) *formats.Stream {
	return formats.NewStream(f, formats.LZ4, newReader)
}

func newReader(r io.Reader) (io.Reader, error) {
	return lz4.NewReader(r), nil
}
