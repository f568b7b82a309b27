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
package pbar

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ostafen/meshcheck/pkg/util/format"
)

const MinRefreshRate = time.Millisecond * 500

// ProgressBarState holds all the data needed to render the progress bar
type ProgressBarState struct {
	Out                io.Writer
	TotalFiles         int
	TotalBytes         int64
	ProcessedFiles     int
	ProcessedBytes     int64
	InvalidFiles       int
	StartTime          time.Time
	LastUpdateTime     time.Time
	LastProcessedBytes int64
}

// NewProgressBarState initializes a new ProgressBarState writing to stdout
func NewProgressBarState(totalFiles int, totalBytes int64) *ProgressBarState {
	return &ProgressBarState{
		Out:        os.Stdout,
		TotalFiles: totalFiles,
		TotalBytes: totalBytes,
		StartTime:  time.Now(),
	}
}

// Add records a checked file of the given size.
func (pbs *ProgressBarState) Add(size int64, valid bool) {
	pbs.ProcessedFiles++
	pbs.ProcessedBytes += size
	if !valid {
		pbs.InvalidFiles++
	}
}

func (pbs *ProgressBarState) Percentage() float64 {
	if pbs.TotalFiles == 0 {
		return 100
	}
	return float64(pbs.ProcessedFiles) / float64(pbs.TotalFiles) * 100
}

// Render updates and prints the progress bar line
func (pbs *ProgressBarState) Render(force bool) {
	if !force && !pbs.LastUpdateTime.IsZero() && time.Since(pbs.LastUpdateTime) < MinRefreshRate {
		return
	}

	percentage := pbs.Percentage()

	barLength := 20
	filledLen := int(float64(barLength) * percentage / 100)
	var bar string
	if filledLen >= barLength {
		bar = strings.Repeat("=", barLength)
	} else {
		bar = strings.Repeat("=", filledLen) + ">" + strings.Repeat(" ", barLength-filledLen-1)
	}

	since := pbs.LastUpdateTime
	if since.IsZero() {
		since = pbs.StartTime
	}

	var speedMBps float64
	if elapsed := time.Since(since).Seconds(); elapsed > 0 {
		speedMBps = float64(pbs.ProcessedBytes-pbs.LastProcessedBytes) / elapsed / format.MB
	}

	pbs.LastUpdateTime = time.Now()
	pbs.LastProcessedBytes = pbs.ProcessedBytes

	// \r moves the cursor to the beginning of the line, trailing spaces
	// clear leftovers of a previous longer line
	fmt.Fprintf(pbs.Out, "\r[INFO] Progress: [%s] %3.0f%% (%d/%d files, %s) | Invalid: %d | @ %.2fMB/s    ",
		bar,
		percentage,
		pbs.ProcessedFiles,
		pbs.TotalFiles,
		format.FormatBytes(pbs.ProcessedBytes),
		pbs.InvalidFiles,
		speedMBps)

	if f, ok := pbs.Out.(*os.File); ok {
		f.Sync()
	}
}

// Finish moves to the next line after the bar is done
func (pbs *ProgressBarState) Finish() {
	fmt.Fprintln(pbs.Out)
}
