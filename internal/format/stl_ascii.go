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
	"maps"
	"slices"
	"strconv"
	"strings"
)

// asciiSniffSize is the number of leading characters searched for the
// required keywords before the full scan starts.
const asciiSniffSize = 4096

var (
	requiredASCIIKeywords = []string{
		"facet normal",
		"outer loop",
		"vertex",
		"endloop",
		"endfacet",
	}

	asciiVocabulary = []string{
		"solid",
		"endsolid",
		"facet normal",
		"outer loop",
		"vertex",
		"endloop",
		"endfacet",
	}
)

// ValidateASCIISTL checks the keyword structure of the ASCII STL file at path.
//
// A structurally valid file produces a valid verdict carrying the facet count;
// leading tokens outside the STL vocabulary are reported in
// Verdict.Unrecognized without failing the file.
func ValidateASCIISTL(path string, opts ...Option) Verdict {
	o := buildOptions(opts)

	content, size, err := loadText(path, o.decode)
	if err != nil {
		return ioFailure(err)
	}
	if size == 0 {
		return invalid("File is empty.")
	}
	return CheckASCIISTL(content, o.extraKeywords...)
}

// CheckASCIISTL validates already decoded ASCII STL content.
func CheckASCIISTL(content string, extraKeywords ...string) Verdict {
	head := strings.ToLower(headRunes(content, asciiSniffSize))

	var missing []string
	for _, kw := range requiredASCIIKeywords {
		if !strings.Contains(head, kw) {
			missing = append(missing, kw)
		}
	}
	if len(missing) > 0 {
		return invalid("Missing keywords in the first chunk: " + strings.Join(missing, ", "))
	}

	lines := splitLines(content)
	if len(lines) == 0 {
		return invalid("File has no content.")
	}

	if !strings.HasPrefix(normalizeLine(lines[0]), "solid") {
		return invalid("File does not start with 'solid' keyword.")
	}
	if !strings.HasPrefix(normalizeLine(lines[len(lines)-1]), "endsolid") {
		return invalid("File does not end with 'endsolid'.")
	}

	facets, vertices := countFacets(lines)
	if facets == 0 {
		return invalid("No 'facet normal' keywords found; not a valid STL.")
	}
	if vertices != facets*3 {
		return invalidf("Mismatch: Expected %d vertices, found %d.", facets*3, vertices)
	}

	return Verdict{
		Valid:        true,
		Message:      validASCIIMessage(facets),
		Count:        facets,
		Unrecognized: unrecognizedKeywords(lines, extraKeywords),
	}
}

func validASCIIMessage(facets uint64) string {
	return "Valid ASCII STL file with " + strconv.FormatUint(facets, 10) + " facets."
}

// countFacets counts "facet normal" lines and the "vertex" lines that occur
// between a facet start and its "endfacet".
func countFacets(lines []string) (facets, vertices uint64) {
	insideFacet := false
	for _, line := range lines {
		l := normalizeLine(line)
		switch {
		case strings.HasPrefix(l, "facet normal"):
			facets++
			insideFacet = true
		case strings.HasPrefix(l, "vertex") && insideFacet:
			vertices++
		case strings.HasPrefix(l, "endfacet"):
			insideFacet = false
		}
	}
	return facets, vertices
}

func unrecognizedKeywords(lines []string, extra []string) []string {
	recognized := make(map[string]struct{}, len(asciiVocabulary)+len(extra))
	for _, kw := range asciiVocabulary {
		recognized[kw] = struct{}{}
	}
	for _, kw := range extra {
		recognized[strings.ToLower(kw)] = struct{}{}
	}

	unrecognized := make(map[string]struct{})
	for _, line := range lines {
		l := normalizeLine(line)
		if l == "" || isNumericRow(l) {
			continue
		}

		tokens := strings.Fields(l)
		first := tokens[0]
		phrase := first
		if len(tokens) >= 2 {
			phrase = first + " " + tokens[1]
		}

		_, firstOK := recognized[first]
		_, phraseOK := recognized[phrase]
		if !firstOK && !phraseOK {
			unrecognized[first] = struct{}{}
		}
	}

	if len(unrecognized) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(unrecognized))
}
