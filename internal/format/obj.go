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
	"strings"

	"github.com/ostafen/meshcheck/pkg/table"
)

// objKeywords are the leading tokens accepted as evidence of an OBJ file.
// Lines are matched by prefix, so "vp" or "of" count as well.
var objKeywords = []string{"o", "#", "vn", "s", "mtllib", "f", "vt", "v", "usemtl"}

var objTable = buildKeywordTable(objKeywords)

func buildKeywordTable(keywords []string) *table.PrefixTable[string] {
	t := table.New[string]()
	for _, kw := range keywords {
		t.Insert(kw, kw)
	}
	return t
}

// ValidateOBJ reports whether the file at path looks like an OBJ model:
// it is valid as soon as one non-blank line starts with an OBJ keyword.
// A file made only of comments is accepted.
func ValidateOBJ(path string, opts ...Option) Verdict {
	o := buildOptions(opts)

	content, size, err := loadText(path, o.decode)
	if err != nil {
		return ioFailure(err)
	}
	if size == 0 {
		return invalid("File is empty.")
	}
	return CheckOBJ(content)
}

// CheckOBJ applies the OBJ keyword check to already decoded content.
func CheckOBJ(content string) Verdict {
	for _, line := range splitLines(content) {
		l := strings.TrimSpace(line)
		if l == "" {
			continue
		}
		if _, _, ok := objTable.Match(l); ok {
			return Verdict{
				Valid:   true,
				Message: "Valid OBJ file structure detected.",
			}
		}
	}
	return invalid("No valid OBJ keywords found. This may not be a valid OBJ file.")
}
