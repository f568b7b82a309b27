package mmap

import (
	"fmt"
	"os"
)

type MmapFile struct {
	Data     []byte   // The file contents, memory mapped where supported
	File     *os.File // The underlying opened file
	FileSize int      // Total size of the underlying file

	mapped bool
}

// Open maps the whole file at filePath for reading. Empty files are not
// mapped and expose a nil Data slice.
func Open(filePath string) (*MmapFile, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", filePath, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to get file info for %q: %w", filePath, err)
	}
	if fi.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%q is a directory", filePath)
	}

	fileSize := int(fi.Size())
	mf := &MmapFile{
		File:     f,
		FileSize: fileSize,
	}
	if fileSize == 0 {
		return mf, nil
	}

	data, mapped, err := mapFile(f, fileSize)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to mmap file %q with length %d: %w", filePath, fileSize, err)
	}
	mf.Data = data
	mf.mapped = mapped
	return mf, nil
}

// ReadFile returns a copy of the contents of filePath.
func ReadFile(filePath string) ([]byte, error) {
	mf, err := Open(filePath)
	if err != nil {
		return nil, err
	}
	defer mf.Close()

	out := make([]byte, len(mf.Data))
	copy(out, mf.Data)
	return out, nil
}

func (mr *MmapFile) Close() error {
	var err error
	if mr.Data != nil && mr.mapped {
		err = unmap(mr.Data)
		if err != nil {
			return fmt.Errorf("failed to munmap: %w", err)
		}
	}
	mr.Data = nil

	if mr.File != nil {
		closeErr := mr.File.Close()
		if closeErr != nil {
			return fmt.Errorf("failed to close file: %w", closeErr)
		}
		mr.File = nil
	}
	return nil
}
