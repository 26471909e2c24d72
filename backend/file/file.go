// Package file provides a backend.Storage over an image file or a block device
package file

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/diskfs/go-mbrview/backend"
)

type rawBackend struct {
	storage fs.File
}

// New create a backend.Storage from provided fs.File. The file is only ever read.
func New(f fs.File) backend.Storage {
	return rawBackend{
		storage: f,
	}
}

// OpenFromPath create a backend.Storage from a path to a device or image.
// Should pass a path to a block device e.g. /dev/sda or a path to a file /tmp/foo.img
// The provided device/file must exist at the time you call OpenFromPath(). It is opened read-only.
func OpenFromPath(pathName string) (backend.Storage, error) {
	if pathName == "" {
		return nil, errors.New("must pass device or file name")
	}

	if _, err := os.Stat(pathName); os.IsNotExist(err) {
		return nil, fmt.Errorf("provided device/file %s does not exist", pathName)
	}

	f, err := os.OpenFile(pathName, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("could not open device %s read-only: %w", pathName, err)
	}
	log.Debugf("opened %s read-only", pathName)

	return rawBackend{
		storage: f,
	}, nil
}

// backend.Storage interface guard
var _ backend.Storage = (*rawBackend)(nil)

// OS-specific file for ioctl calls via fd
func (f rawBackend) Sys() (*os.File, error) {
	if osFile, ok := f.storage.(*os.File); ok {
		return osFile, nil
	}
	return nil, backend.ErrNotSuitable
}

func (f rawBackend) Stat() (fs.FileInfo, error) {
	return f.storage.Stat()
}

func (f rawBackend) Read(b []byte) (int, error) {
	return f.storage.Read(b)
}

func (f rawBackend) Close() error {
	return f.storage.Close()
}

func (f rawBackend) ReadAt(p []byte, off int64) (n int, err error) {
	if readerAt, ok := f.storage.(io.ReaderAt); ok {
		return readerAt.ReadAt(p, off)
	}
	return -1, backend.ErrNotSuitable
}

func (f rawBackend) Seek(offset int64, whence int) (int64, error) {
	if seeker, ok := f.storage.(io.Seeker); ok {
		return seeker.Seek(offset, whence)
	}
	return -1, backend.ErrNotSuitable
}
