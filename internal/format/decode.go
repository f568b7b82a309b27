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
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// DecodePolicy controls how file bytes that are not valid UTF-8 are turned
// into text. Decoding never fails because of malformed input.
type DecodePolicy int

const (
	// DecodeIgnore drops invalid byte sequences.
	DecodeIgnore DecodePolicy = iota
	// DecodeReplace replaces every invalid sequence with U+FFFD.
	DecodeReplace
	// DecodeLatin1 reads the content as ISO-8859-1.
	DecodeLatin1
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseDecodePolicy maps a policy name to a DecodePolicy. The empty string
// selects DecodeIgnore.
func ParseDecodePolicy(s string) (DecodePolicy, error) {
	switch strings.ToLower(s) {
	case "", "ignore":
		return DecodeIgnore, nil
	case "replace":
		return DecodeReplace, nil
	case "latin1", "iso-8859-1":
		return DecodeLatin1, nil
	}
	return DecodeIgnore, fmt.Errorf("unknown decode policy %q", s)
}

func (p DecodePolicy) String() string {
	switch p {
	case DecodeIgnore:
		return "ignore"
	case DecodeReplace:
		return "replace"
	case DecodeLatin1:
		return "latin1"
	default:
		return "unknown"
	}
}

// Decode converts data to a string according to the policy. The returned
// string never aliases data.
func (p DecodePolicy) Decode(data []byte) (string, error) {
	switch p {
	case DecodeLatin1:
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	case DecodeReplace:
		out, _, err := transform.Bytes(runes.ReplaceIllFormed(), bytes.TrimPrefix(data, utf8BOM))
		if err != nil {
			return "", err
		}
		return string(out), nil
	default:
		return strings.ToValidUTF8(string(bytes.TrimPrefix(data, utf8BOM)), ""), nil
	}
}
