package formats

import (
	"bytes"
)

// Format represents the on-disk encoding of a disk image
type Format int

const (
	// Unknown format, to be detected
	Unknown Format = iota
	// Raw disk format for basic raw disk or block device
	Raw
	// Qcow2 QEMU copy-on-write image
	Qcow2
	// XZ raw image compressed with xz
	XZ
	// LZ4 raw image compressed with the lz4 frame format
	LZ4
)

// HeaderSize is enough bytes from the start of an image for Detect to recognize every format
const HeaderSize = 8

var (
	qcow2Magic = []byte{'Q', 'F', 'I', 0xfb}
	xzMagic    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	lz4Magic   = []byte{0x04, 0x22, 0x4d, 0x18}
)

func (f Format) String() string {
	switch f {
	case Raw:
		return "raw"
	case Qcow2:
		return "qcow2"
	case XZ:
		return "xz"
	case LZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// Compressed whether the format can only be read sequentially
func (f Format) Compressed() bool {
	return f == XZ || f == LZ4
}

// Detect determines the format from the first bytes of an image. Anything without a
// recognized magic number is Raw; an empty header is Unknown.
func Detect(header []byte) Format {
	switch {
	case len(header) == 0:
		return Unknown
	case bytes.HasPrefix(header, qcow2Magic):
		return Qcow2
	case bytes.HasPrefix(header, xzMagic):
		return XZ
	case bytes.HasPrefix(header, lz4Magic):
		return LZ4
	default:
		return Raw
	}
}
