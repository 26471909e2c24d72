package backend

import (
	"io"
	"io/fs"
	"os"
)

// SubStorage is a window of size bytes, starting at offset, onto an underlying Storage.
// Reads never extend past the window.
type SubStorage struct {
	underlying Storage
	offset     int64
	size       int64
	pos        int64
}

// Sub returns a Storage covering [offset, offset+size) of u
func Sub(u Storage, offset, size int64) *SubStorage {
	return &SubStorage{
		underlying: u,
		offset:     offset,
		size:       size,
	}
}

// Offset of the window within the underlying storage
func (s *SubStorage) Offset() int64 {
	return s.offset
}

// Size of the window
func (s *SubStorage) Size() int64 {
	return s.size
}

func (s *SubStorage) Stat() (fs.FileInfo, error) {
	return s.underlying.Stat()
}

func (s *SubStorage) Read(b []byte) (int, error) {
	n, err := s.ReadAt(b, s.pos)
	s.pos += int64(n)
	return n, err
}

func (s *SubStorage) Close() error {
	return s.underlying.Close()
}

func (s *SubStorage) ReadAt(p []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, ErrNotSuitable
	}
	if off >= s.size {
		return 0, io.EOF
	}
	if remaining := s.size - off; int64(len(p)) > remaining {
		n, err = s.underlying.ReadAt(p[:remaining], s.offset+off)
		if err == nil {
			err = io.EOF
		}
		return n, err
	}
	return s.underlying.ReadAt(p, s.offset+off)
}

func (s *SubStorage) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = s.pos + offset
	case io.SeekEnd:
		pos = s.size + offset
	default:
		return -1, ErrNotSuitable
	}
	if pos < 0 {
		return -1, ErrNotSuitable
	}
	s.pos = pos
	return pos, nil
}

func (s *SubStorage) Sys() (*os.File, error) {
	return s.underlying.Sys()
}
