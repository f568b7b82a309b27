//go:build unix

package mmap

import (
	"os"

	"golang.org/x/sys/unix"
)

func mapFile(f *os.File, length int) ([]byte, bool, error) {
	data, err := unix.Mmap(
		int(f.Fd()),
		0,
		length,
		unix.PROT_READ,
		unix.MAP_SHARED,
	)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func unmap(data []byte) error {
	return unix.Munmap(data)
}
