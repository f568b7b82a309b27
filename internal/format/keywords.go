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
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ExtractKeywords returns, sorted, the distinct first tokens of the non-blank
// lines of the text file at path. Tokens keep their original case.
func ExtractKeywords(path string, policy DecodePolicy) ([]string, error) {
	content, _, err := loadText(path, policy)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	return CollectKeywords(content), nil
}

func CollectKeywords(content string) []string {
	keywords := make(map[string]struct{})
	for _, line := range splitLines(content) {
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		keywords[tokens[0]] = struct{}{}
	}
	return slices.Sorted(maps.Keys(keywords))
}
