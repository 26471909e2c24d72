package qcow2

import (
	"encoding/binary"
	"fmt"

	log "github.com/sirupsen/logrus"
)

const (
	headerMagic uint32 = 0x514649fb
)

const (
	header2Size    = 72
	header3MinSize = 104

	minClusterBits = 9
	maxClusterBits = 21
)

// incompatible feature bits
const (
	featureDirty        = 1 << 0
	featureCorrupt      = 1 << 1
	featureExternalData = 1 << 2
	featureCompression  = 1 << 3
	featureExtendedL2   = 1 << 4
)

// compression types of a v3 header with featureCompression set
const (
	compressionZlib uint8 = 0
	compressionZstd uint8 = 1
)

// offset of the compression type byte in a v3 header longer than header3MinSize
const compressionTypeOffset = 104

type header struct {
	version           uint32
	backingFileOffset uint64
	backingFileSize   uint32
	clusterBits       uint32
	clusterSize       uint64
	size              uint64
	encryptMethod     uint32
	l1Size            uint32
	l1Offset          uint64
	headerSize        uint32
	incompatible      uint64
	compressionType   uint8
}

func parseHeader(b []byte) (*header, error) {
	if len(b) < header2Size {
		return nil, fmt.Errorf("header had %d bytes instead of minimum %d", len(b), header2Size)
	}
	magic := binary.BigEndian.Uint32(b[0:4])
	if magic != headerMagic {
		return nil, fmt.Errorf("header had magic of %#x instead of expected %#x", magic, headerMagic)
	}
	version := binary.BigEndian.Uint32(b[4:8])
	if version != 2 && version != 3 {
		return nil, fmt.Errorf("version number %d incompatible, supporting only versions %v", version, []int{2, 3})
	}
	clusterBits := binary.BigEndian.Uint32(b[20:24])
	if clusterBits < minClusterBits || clusterBits > maxClusterBits {
		return nil, fmt.Errorf("cluster bits %d outside of supported range %d-%d", clusterBits, minClusterBits, maxClusterBits)
	}
	h := &header{
		version:           version,
		backingFileOffset: binary.BigEndian.Uint64(b[8:16]),
		backingFileSize:   binary.BigEndian.Uint32(b[16:20]),
		clusterBits:       clusterBits,
		clusterSize:       1 << clusterBits,
		size:              binary.BigEndian.Uint64(b[24:32]),
		encryptMethod:     binary.BigEndian.Uint32(b[32:36]),
		l1Size:            binary.BigEndian.Uint32(b[36:40]),
		l1Offset:          binary.BigEndian.Uint64(b[40:48]),
		headerSize:        header2Size,
	}
	if version == 3 && len(b) >= header3MinSize {
		h.incompatible = binary.BigEndian.Uint64(b[72:80])
		h.headerSize = binary.BigEndian.Uint32(b[100:104])
		if h.headerSize > compressionTypeOffset && len(b) > compressionTypeOffset {
			h.compressionType = b[compressionTypeOffset]
		}
	}
	return h, nil
}

// readable returns an error describing the first feature of the image this package cannot read
func (h *header) readable() error {
	switch {
	case h.encryptMethod != 0:
		return fmt.Errorf("encrypted images are not supported, encryption method %d", h.encryptMethod)
	case h.backingFileOffset != 0:
		return fmt.Errorf("images with a backing file are not supported")
	case h.incompatible&featureCorrupt != 0:
		return fmt.Errorf("image is marked corrupt")
	case h.incompatible&featureExternalData != 0:
		return fmt.Errorf("images with an external data file are not supported")
	case h.incompatible&featureExtendedL2 != 0:
		return fmt.Errorf("images with extended L2 entries are not supported")
	case h.incompatible&featureCompression != 0 && h.compressionType != compressionZlib && h.compressionType != compressionZstd:
		return fmt.Errorf("unknown compression type %d", h.compressionType)
	}
	// stale refcounts do not matter for reads, and compressed clusters fail when they are read
	if h.incompatible&featureDirty != 0 {
		log.Debugf("qcow2 image is marked dirty, refcounts may be stale")
	}
	if h.incompatible&featureCompression != 0 {
		log.Debugf("qcow2 image uses compression type %d", h.compressionType)
	}
	return nil
}
