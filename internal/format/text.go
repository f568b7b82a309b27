package format

import (
	"github.com/ostafen/meshcheck/internal/mmap"
)

// loadText reads the whole file at path and decodes it with policy.
// It also returns the size of the file in bytes.
func loadText(path string, policy DecodePolicy) (string, int, error) {
	mf, err := mmap.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer mf.Close()

	if mf.FileSize == 0 {
		return "", 0, nil
	}

	content, err := policy.Decode(mf.Data)
	if err != nil {
		return "", mf.FileSize, err
	}
	return content, mf.FileSize, nil
}
