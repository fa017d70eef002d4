// Package testsupport provides small helpers shared by this module's test
// files: build an image in memory, then hand back a stream a real reader
// would use instead of re-reading the byte slice directly.
package testsupport

import (
	"bytes"
	"io"

	"github.com/xaionaro-go/bytesextra"
)

// BuildImage runs build against an in-memory buffer and returns both the raw
// bytes (for size/offset assertions) and an io.ReadWriteSeeker over the same
// bytes, the shape layout.Validate and a real FAT32 reader consume.
func BuildImage(build func(w io.Writer) error) ([]byte, io.ReadWriteSeeker, error) {
	buf := &bytes.Buffer{}
	if err := build(buf); err != nil {
		return nil, nil, err
	}
	data := buf.Bytes()
	return data, bytesextra.NewReadWriteSeeker(data), nil
}
