package fs

import (
	"errors"
	"io"
	"os"
)

// File is the read-only view of an inspected file.
type File interface {
	io.ReadCloser
	io.ReaderAt
	Stat() (os.FileInfo, error)
}

func Open(path string) (File, error) {
	return os.Open(path)
}

// ReadHead returns up to n bytes from the start of path along with the
// total file size. Short files are not an error.
func ReadHead(path string, n int) ([]byte, int64, error) {
	f, err := Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, 0, err
	}

	buf := make([]byte, min(int64(n), info.Size()))
	m, err := f.ReadAt(buf, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, 0, err
	}
	return buf[:m], info.Size(), nil
}
