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
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/dutchcoders/go-clamd"
)

// DaemonScanner asks a running clamd, reachable at an address such as
// "unix:///var/run/clamav/clamd.ctl" or "tcp://127.0.0.1:3310", to scan
// files. The daemon must be able to read the scanned path.
type DaemonScanner struct {
	address string
	client  *clamd.Clamd
}

func NewDaemonScanner(address string) *DaemonScanner {
	return &DaemonScanner{
		address: address,
		client:  clamd.NewClamd(address),
	}
}

func (s *DaemonScanner) Ping() error {
	if err := s.client.Ping(); err != nil {
		return fmt.Errorf("%w: clamd %s: %v", ErrScannerFailed, s.address, err)
	}
	return nil
}

func (s *DaemonScanner) Scan(ctx context.Context, path string) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	results, err := s.client.ScanFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("%w: clamd %s: %v", ErrScannerFailed, s.address, err)
	}

	report := &Report{Summary: Summary{}}
	for {
		select {
		case <-ctx.Done():
			go drain(results)
			return nil, ctx.Err()
		case res, ok := <-results:
			if !ok {
				report.Summary["Scanned files"] = strconv.Itoa(len(report.Files))
				report.Summary["Infected files"] = strconv.Itoa(len(report.Infected()))
				return report, nil
			}
			report.Files = append(report.Files, fromClamd(res))
		}
	}
}

func fromClamd(res *clamd.ScanResult) FileResult {
	fr := FileResult{
		Path:   res.Path,
		Fields: []string{res.Path, res.Raw},
	}

	switch res.Status {
	case clamd.RES_OK:
		fr.Status = StatusOK
	case clamd.RES_FOUND:
		fr.Status = StatusFound
		fr.Signature = res.Description
	default:
		fr.Status = StatusError
		fr.Signature = res.Description
	}
	return fr
}

func drain(results chan *clamd.ScanResult) {
	for range results {
	}
}
