// raw package represents a raw disk. Everything pretty much is pass-through.
package raw

import (
	"io"

	"github.com/diskfs/go-mbrview/disk/formats"
)

// Raw a raw disk
type Raw struct {
	source io.ReaderAt
}

func New(source io.ReaderAt) *Raw {
	return &Raw{source: source}
}

func (r *Raw) Format() formats.Format {
	return formats.Raw
}

func (r *Raw) ReadAt(b []byte, offset int64) (int, error) {
	return r.source.ReadAt(b, offset)
}
