package formats

import (
	"errors"
	"fmt"
	"io"
)

// Decompressor wraps a compressed stream in a reader of the decompressed bytes
type Decompressor func(r io.Reader) (io.Reader, error)

// Stream gives random access to a compressed image by decompressing from the start of the
// image on every ReadAt. That is cheap for the first sectors, which is all an MBR needs,
// and gets linearly slower further into the image.
type Stream struct {
	source     io.ReaderAt
	format     Format
	decompress Decompressor
}

// NewStream creates a Stream reading compressed bytes from source
func NewStream(source io.ReaderAt, format Format, decompress Decompressor) *Stream {
	return &Stream{
		source:     source,
		format:     format,
		decompress: decompress,
	}
}

func (s *Stream) Format() Format {
	return s.format
}

// ReadAt reads decompressed bytes at offset off
func (s *Stream) ReadAt(b []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative offset %d", off)
	}
	r, err := s.decompress(io.NewSectionReader(s.source, 0, 1<<63-1))
	if err != nil {
		return 0, fmt.Errorf("could not start %s decompression: %w", s.format, err)
	}
	skipped, err := io.CopyN(io.Discard, r, off)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("error decompressing %s image after %d bytes: %w", s.format, skipped, err)
	}
	n, err := io.ReadFull(r, b)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}
	return n, err
}
