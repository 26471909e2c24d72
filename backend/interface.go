// Package backend abstracts the byte source an MBR is read from: an image file, a block device,
// or a window onto either.
package backend

import (
	"errors"
	"io"
	"io/fs"
	"os"
)

var (
	ErrNotSuitable = errors.New("backing file is not suitable")
)

// File is a read-only random access byte source
type File interface {
	fs.File
	io.ReaderAt
	io.Seeker
}

type Storage interface {
	File
	// OS-specific file for ioctl calls via fd
	Sys() (*os.File, error)
}
