package testhelper

import (
	"fmt"
	"io/fs"
)

type reader func(b []byte, offset int64) (int, error)

// FileImpl implements github.com/diskfs/go-mbrview/backend.File
// used for testing to enable stubbing out reads
type FileImpl struct {
	Reader reader
	Info   fs.FileInfo
}

func (f *FileImpl) Stat() (fs.FileInfo, error) {
	if f.Info == nil {
		return nil, fmt.Errorf("FileImpl has no FileInfo")
	}
	return f.Info, nil
}

func (f *FileImpl) Read(b []byte) (int, error) {
	return f.Reader(b, 0)
}

func (f *FileImpl) Close() error {
	return nil
}

// ReadAt read at a particular offset
func (f *FileImpl) ReadAt(b []byte, offset int64) (int, error) {
	return f.Reader(b, offset)
}

// Seek seek a particular offset - does not actually work
//
//nolint:revive // to implement the interface
func (f *FileImpl) Seek(offset int64, whence int) (int64, error) {
	return 0, fmt.Errorf("FileImpl does not implement Seek()")
}
