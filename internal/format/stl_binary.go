// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package format

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/ostafen/meshcheck/internal/fs"
)

const (
	// STLHeaderSize is the size of the free-form binary STL header.
	STLHeaderSize = 80
	// STLPreambleSize covers the header and the little-endian uint32 triangle count.
	STLPreambleSize = STLHeaderSize + 4
	// STLTriangleSize is the size of one triangle record: a normal and three
	// vertices as float32 triples, followed by a uint16 attribute byte count.
	STLTriangleSize = 12 + 36 + 2
)

// BinarySTLSize returns the exact size of a binary STL file declaring
// count triangles.
func BinarySTLSize(count uint32) uint64 {
	return STLPreambleSize + uint64(count)*STLTriangleSize
}

// ValidateBinarySTL checks that the file at path has the size implied by the
// triangle count stored in its preamble. Triangle records are not inspected.
func ValidateBinarySTL(path string) Verdict {
	f, err := fs.Open(path)
	if err != nil {
		return ioFailure(err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return ioFailure(err)
	}
	return CheckBinarySTL(f, info.Size())
}

// CheckBinarySTL validates the binary STL layout of r, whose total size is size.
func CheckBinarySTL(r io.ReaderAt, size int64) Verdict {
	// The header is read but never interpreted: a short header simply
	// leaves no room for the triangle count.
	var preamble [STLPreambleSize]byte
	n, err := r.ReadAt(preamble[:], 0)
	if n < STLPreambleSize {
		if err != nil && !errors.Is(err, io.EOF) {
			return ioFailure(err)
		}
		return invalid("Incomplete file: unable to read triangle count.")
	}

	count := binary.LittleEndian.Uint32(preamble[STLHeaderSize:])

	expectedSize := BinarySTLSize(count)
	if size < 0 || uint64(size) != expectedSize {
		return invalidf("Size mismatch: expected %d bytes, got %d bytes.", expectedSize, size)
	}

	return Verdict{
		Valid:   true,
		Message: "Valid binary STL file.",
		Count:   uint64(count),
	}
}
