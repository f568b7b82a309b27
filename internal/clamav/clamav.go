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
package clamav

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
)

var ErrScannerFailed = errors.New("antivirus scan failed")

// Scanner scans a file or directory for malware.
type Scanner interface {
	Scan(ctx context.Context, path string) (*Report, error)
}

type Status string

const (
	StatusOK    Status = "OK"
	StatusFound Status = "FOUND"
	StatusError Status = "ERROR"
)

// FileResult is one per-file row of a scan.
type FileResult struct {
	Path   string
	Status Status
	// Signature is the detected malware name for FOUND rows and the
	// error text for ERROR rows.
	Signature string
	// Fields is the raw row split on ':'.
	Fields []string
}

func (r FileResult) Infected() bool {
	return r.Status == StatusFound
}

// Summary maps statistic names, as printed by the scanner, to their values.
type Summary map[string]string

// Int returns the named statistic if it is a non-negative integer.
func (s Summary) Int(name string) (int64, bool) {
	v, ok := s[name]
	if !ok || !isDigits(v) {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

type Report struct {
	Files   []FileResult
	Summary Summary
}

func (r *Report) Infected() []FileResult {
	var infected []FileResult
	for _, f := range r.Files {
		if f.Infected() {
			infected = append(infected, f)
		}
	}
	return infected
}

// Clean reports whether no file was flagged, either by a FOUND row or by a
// non-zero "Infected files" statistic.
func (r *Report) Clean() bool {
	if n, ok := r.Summary.Int("Infected files"); ok && n > 0 {
		return false
	}
	return len(r.Infected()) == 0
}

// Status returns the status of the row for path, if any.
func (r *Report) Status(path string) (FileResult, bool) {
	for _, f := range r.Files {
		if f.Path == path {
			return f, true
		}
	}
	return FileResult{}, false
}

const summaryMarker = "SUMMARY"

// ParseOutput parses the standard output of clamscan. Rows printed before
// the "SCAN SUMMARY" banner are per-file results; every non-blank line after
// it is a "name: value" statistic split on its first colon.
func ParseOutput(r io.Reader) (*Report, error) {
	report := &Report{Summary: Summary{}}

	inSummary := false

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case !inSummary && strings.Contains(line, summaryMarker):
			inSummary = true
		case !inSummary:
			if line == "" {
				continue
			}
			report.Files = append(report.Files, parseFileRow(line))
		default:
			if strings.TrimSpace(line) == "" {
				continue
			}
			name, value, _ := strings.Cut(line, ":")
			report.Summary[strings.TrimSpace(name)] = strings.TrimSpace(value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return report, nil
}

func parseFileRow(line string) FileResult {
	res := FileResult{
		Path:   line,
		Fields: strings.Split(line, ":"),
	}

	idx := strings.LastIndex(line, ": ")
	if idx < 0 {
		return res
	}

	res.Path = line[:idx]
	result := strings.TrimSpace(line[idx+2:])

	switch {
	case result == string(StatusOK):
		res.Status = StatusOK
	case strings.HasSuffix(result, " "+string(StatusFound)):
		res.Status = StatusFound
		res.Signature = strings.TrimSuffix(result, " "+string(StatusFound))
	case strings.HasSuffix(result, string(StatusError)):
		res.Status = StatusError
		res.Signature = strings.TrimSpace(strings.TrimSuffix(result, string(StatusError)))
	default:
		// e.g. "Empty file" or "Symbolic link"
		res.Status = Status(result)
	}
	return res
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
