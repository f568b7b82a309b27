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
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// clamscan exits with 1 when it completes and finds malware.
const exitInfected = 1

const DefaultClamscanPath = "/usr/bin/clamscan"

// ExecScanner runs the clamscan binary at Path and parses its output.
type ExecScanner struct {
	Path string
	Args []string // extra arguments placed before the scanned path
}

func NewExecScanner(path string, args ...string) *ExecScanner {
	if path == "" {
		path = DefaultClamscanPath
	}
	return &ExecScanner{Path: path, Args: args}
}

func (s *ExecScanner) Scan(ctx context.Context, path string) (*Report, error) {
	args := append(append([]string(nil), s.Args...), path)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.Path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || exitErr.ExitCode() != exitInfected {
			return nil, fmt.Errorf("%w: %s %s: %v: %s", ErrScannerFailed, s.Path, path, err, strings.TrimSpace(stderr.String()))
		}
	}
	return ParseOutput(&stdout)
}
