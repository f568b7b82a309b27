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
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ostafen/meshcheck/internal/fs"
)

const (
	BinarySTL = "stl-binary"
	ASCIISTL  = "stl-ascii"
	OBJ       = "obj"
)

var ErrUnknownFormat = errors.New("unknown file format")

// FileFormat describes a validator and the extensions it applies to.
type FileFormat struct {
	Name        string   // Registry key, e.g. "stl-ascii"
	Exts        []string // File extensions without the leading dot
	Description string
	Validate    func(path string, opts ...Option) Verdict
}

var DefaultFormats = []FileFormat{
	{
		Name:        BinarySTL,
		Exts:        []string{"stl"},
		Description: "Binary STL mesh (80-byte header, triangle count, 50-byte records)",
		Validate: func(path string, _ ...Option) Verdict {
			return ValidateBinarySTL(path)
		},
	},
	{
		Name:        ASCIISTL,
		Exts:        []string{"stl"},
		Description: "ASCII STL mesh (solid/facet/vertex keywords)",
		Validate:    ValidateASCIISTL,
	},
	{
		Name:        OBJ,
		Exts:        []string{"obj"},
		Description: "Wavefront OBJ model (keyword presence only)",
		Validate:    ValidateOBJ,
	},
}

// FormatRegistry indexes file formats by name and extension.
type FormatRegistry struct {
	formats []FileFormat
	byName  map[string]FileFormat
	byExt   map[string][]FileFormat
}

func NewFormatRegistry() *FormatRegistry {
	return &FormatRegistry{
		byName: make(map[string]FileFormat),
		byExt:  make(map[string][]FileFormat),
	}
}

// BuildRegistry returns a registry holding the default formats registered
// for any of exts, or all of them when exts is empty.
func BuildRegistry(exts ...string) (*FormatRegistry, error) {
	r := NewFormatRegistry()
	if len(exts) == 0 {
		for _, f := range DefaultFormats {
			r.Add(f)
		}
		return r, nil
	}

	for _, ext := range exts {
		ext = normalizeExt(ext)

		found := false
		for _, f := range DefaultFormats {
			if hasExt(f, ext) {
				r.Add(f)
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: no validator for extension %q", ErrUnknownFormat, ext)
		}
	}
	return r, nil
}

func (r *FormatRegistry) Add(f FileFormat) {
	if _, exists := r.byName[f.Name]; exists {
		return
	}

	r.formats = append(r.formats, f)
	r.byName[f.Name] = f
	for _, ext := range f.Exts {
		ext = normalizeExt(ext)
		r.byExt[ext] = append(r.byExt[ext], f)
	}
}

func (r *FormatRegistry) Formats() []FileFormat {
	return append([]FileFormat(nil), r.formats...)
}

func (r *FormatRegistry) Exts() []string {
	exts := make([]string, 0, len(r.byExt))
	for _, f := range r.formats {
		for _, ext := range f.Exts {
			ext = normalizeExt(ext)
			if !slices.Contains(exts, ext) {
				exts = append(exts, ext)
			}
		}
	}
	return exts
}

func (r *FormatRegistry) Lookup(name string) (FileFormat, error) {
	f, ok := r.byName[name]
	if !ok {
		return FileFormat{}, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return f, nil
}

// Detect picks the validator for the file at path. The extension narrows the
// candidates; STL files are told apart by sniffing, since binary STL headers
// may themselves begin with "solid". Files with an unknown extension are
// sniffed against every registered format.
func (r *FormatRegistry) Detect(path string) (FileFormat, error) {
	head, size, err := fs.ReadHead(path, asciiSniffSize)
	if err != nil {
		return FileFormat{}, err
	}

	ext := normalizeExt(filepath.Ext(path))
	if candidates := r.byExt[ext]; len(candidates) == 1 {
		return candidates[0], nil
	}

	name := sniff(head, size, ext == "stl")
	if name == "" {
		return FileFormat{}, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	return r.Lookup(name)
}

func sniff(head []byte, size int64, isSTL bool) string {
	if looksLikeBinarySTL(head, size) {
		return BinarySTL
	}

	text := strings.ToLower(strings.TrimLeft(string(head), " \t\r\n\ufeff"))
	if strings.HasPrefix(text, "solid") {
		return ASCIISTL
	}
	if isSTL {
		// let the binary validator explain what is wrong
		return BinarySTL
	}

	for _, line := range splitLines(text) {
		l := strings.TrimSpace(line)
		if l == "" {
			continue
		}
		if _, _, ok := objTable.Match(l); ok {
			return OBJ
		}
		break
	}
	return ""
}

func looksLikeBinarySTL(head []byte, size int64) bool {
	if len(head) < STLPreambleSize || size < STLPreambleSize {
		return false
	}
	count := binary.LittleEndian.Uint32(head[STLHeaderSize:STLPreambleSize])
	return BinarySTLSize(count) == uint64(size)
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

func hasExt(f FileFormat, ext string) bool {
	for _, e := range f.Exts {
		if normalizeExt(e) == ext {
			return true
		}
	}
	return false
}
