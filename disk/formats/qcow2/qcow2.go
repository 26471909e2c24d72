package qcow2

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/diskfs/go-mbrview/disk/formats"
)

const (
	tableEntrySize = 8
	// bits 9-55 of L1 and standard L2 entries
	offsetMask     uint64 = 0x00fffffffffffe00
	l2Compressed   uint64 = 1 << 62
	l2ZeroCluster  uint64 = 1
	readHeaderSize        = 112
)

// ErrCompressedCluster the requested bytes live in a compressed cluster
var ErrCompressedCluster = errors.New("compressed qcow2 clusters are not supported")

// Qcow2 a read-only qcow2 image
type Qcow2 struct {
	source io.ReaderAt
	header *header
}

// Open reads the qcow2 header from source and checks that the image can be read
func Open(source io.ReaderAt) (*Qcow2, error) {
	b := make([]byte, readHeaderSize)
	n, err := source.ReadAt(b, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unable to read qcow2 header: %w", err)
	}
	h, err := parseHeader(b[:n])
	if err != nil {
		return nil, fmt.Errorf("invalid qcow2 header: %w", err)
	}
	if err := h.readable(); err != nil {
		return nil, err
	}
	log.Debugf("qcow2 v%d image, %d bytes, cluster size %d, %d L1 entries", h.version, h.size, h.clusterSize, h.l1Size)
	return &Qcow2{source: source, header: h}, nil
}

func (q *Qcow2) Format() formats.Format {
	return formats.Qcow2
}

// Size the virtual size of the guest disk
func (q *Qcow2) Size() int64 {
	return int64(q.header.size)
}

// ReadAt read guest bytes at the given offset, translating into the clusters of the image
func (q *Qcow2) ReadAt(b []byte, offset int64) (int, error) {
	if offset < 0 {
		return 0, fmt.Errorf("negative offset %d", offset)
	}
	size := int64(q.header.size)
	if offset >= size {
		return 0, io.EOF
	}
	var eof bool
	if remaining := size - offset; int64(len(b)) > remaining {
		b = b[:remaining]
		eof = true
	}

	clusterSize := int64(q.header.clusterSize)
	read := 0
	for read < len(b) {
		pos := offset + int64(read)
		inCluster := pos % clusterSize
		chunk := clusterSize - inCluster
		if rest := int64(len(b) - read); chunk > rest {
			chunk = rest
		}
		dst := b[read : read+int(chunk)]
		host, err := q.clusterLocation(pos)
		if err != nil {
			return read, err
		}
		if host == 0 {
			clear(dst)
		} else if n, err := q.source.ReadAt(dst, int64(host)+inCluster); err != nil && n < len(dst) {
			return read + n, fmt.Errorf("error reading cluster at %d: %w", host, err)
		}
		read += int(chunk)
	}
	if eof {
		return read, io.EOF
	}
	return read, nil
}

// clusterLocation the host offset of the cluster holding guest offset pos, or 0 if the cluster
// reads as zeros
func (q *Qcow2) clusterLocation(pos int64) (uint64, error) {
	h := q.header
	cluster := uint64(pos) >> h.clusterBits
	l2Entries := h.clusterSize / tableEntrySize
	l1Index := cluster / l2Entries
	l2Index := cluster % l2Entries
	if l1Index >= uint64(h.l1Size) {
		return 0, nil
	}
	l1Entry, err := q.readEntry(h.l1Offset + l1Index*tableEntrySize)
	if err != nil {
		return 0, fmt.Errorf("unable to read L1 entry %d: %w", l1Index, err)
	}
	l2Offset := l1Entry & offsetMask
	if l2Offset == 0 {
		return 0, nil
	}
	l2Entry, err := q.readEntry(l2Offset + l2Index*tableEntrySize)
	if err != nil {
		return 0, fmt.Errorf("unable to read L2 entry %d of table at %d: %w", l2Index, l2Offset, err)
	}
	switch {
	case l2Entry&l2Compressed != 0:
		return 0, ErrCompressedCluster
	case l2Entry&l2ZeroCluster != 0:
		return 0, nil
	}
	return l2Entry & offsetMask, nil
}

func (q *Qcow2) readEntry(offset uint64) (uint64, error) {
	b := make([]byte, tableEntrySize)
	n, err := q.source.ReadAt(b, int64(offset))
	if n != tableEntrySize {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}
