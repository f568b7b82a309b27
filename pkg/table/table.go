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
package table

const (
	// TableSize represents the fixed size of the internal marker table.
	// Prefix hashes are computed in uint16, so every hash is a valid index.
	TableSize = 1 << 16
)

// PrefixTable answers "which stored keys are a prefix of this string" without
// probing the key map for every prefix length.
type PrefixTable[T any] struct {
	// table marks, for every prefix hash, whether some key passes through
	// that prefix (presentMarker) or ends there (elemMarker).
	table [TableSize]byte
	elems map[string]T
}

const (
	none = iota
	presentMarker
	elemMarker
)

func New[T any]() *PrefixTable[T] {
	return &PrefixTable[T]{
		elems: make(map[string]T),
	}
}

func (t *PrefixTable[T]) Insert(key string, v T) {
	if key == "" {
		return
	}

	var h uint16
	for i := 0; i < len(key); i++ {
		h = (h << 2) + uint16(key[i])
		// never downgrade an elemMarker set by a shorter key
		t.table[h] = max(t.table[h], presentMarker)
	}
	t.table[h] = elemMarker
	t.elems[key] = v
}

func (t *PrefixTable[T]) Get(key string) (T, bool) {
	v, found := t.elems[key]
	return v, found
}

// Walk calls onMatch, shortest first, for every stored key that is a prefix
// of s. Walking stops as soon as onMatch returns true.
func (t *PrefixTable[T]) Walk(s string, onMatch func(key string, v T) bool) {
	var h uint16
	for i := 0; i < len(s); i++ {
		h = (h << 2) + uint16(s[i])

		marker := t.table[h]
		if marker == none {
			// no key continues with this prefix
			return
		}

		if marker == elemMarker {
			// hashes collide, so confirm against the key map
			if v, ok := t.elems[s[:i+1]]; ok && onMatch(s[:i+1], v) {
				return
			}
		}
	}
}

// Match returns the shortest stored key that prefixes s.
func (t *PrefixTable[T]) Match(s string) (key string, v T, ok bool) {
	t.Walk(s, func(k string, val T) bool {
		key, v, ok = k, val, true
		return true
	})
	return key, v, ok
}

func (t *PrefixTable[T]) Size() int {
	return len(t.elems)
}
