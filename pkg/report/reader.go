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
package report

import (
	"encoding/xml"
	"errors"
	"io"
)

var ErrNotReport = errors.New("not an inspection report")

// Read decodes a report produced by Writer.
func Read(r io.Reader) (*Header, []FileObject, error) {
	dec := xml.NewDecoder(r)

	var (
		hdr         *Header
		fileObjects []FileObject
	)
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, nil, err
		}

		startElem, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch startElem.Name.Local {
		case "inspection":
			hdr = &Header{}
			for _, attr := range startElem.Attr {
				if attr.Name.Local == "outputversion" {
					hdr.OutputVersion = attr.Value
				}
			}
		case "header":
			if hdr == nil {
				hdr = &Header{}
			}
			version := hdr.OutputVersion
			if err := dec.DecodeElement(hdr, &startElem); err != nil {
				return nil, nil, err
			}
			hdr.OutputVersion = version
		case "fileobject":
			var fo FileObject
			if err := dec.DecodeElement(&fo, &startElem); err != nil {
				return nil, nil, err
			}
			fileObjects = append(fileObjects, fo)
		}
	}
	if hdr == nil {
		return nil, nil, ErrNotReport
	}
	return hdr, fileObjects, nil
}
