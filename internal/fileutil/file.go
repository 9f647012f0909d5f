package fileutil

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/viant/afs"
)

var fileSystem = afs.New()

// ReadFileBytes reads the whole file behind path into memory. The path can be
// a plain OS path or any URL scheme the afs service understands.
func ReadFileBytes(path string) (data []byte, err error) {
	file, err := fileSystem.OpenURL(context.Background(), path)
	if err != nil {
		return nil, err
	}
	defer func(file io.Closer) {
		err = errors.Join(err, file.Close())
	}(file)

	buf := &bytes.Buffer{}
	if _, readErr := io.Copy(buf, file); readErr != nil {
		return nil, readErr
	}
	return buf.Bytes(), err
}
