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
package sysinfo

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

var SysUnknown = SysInfo{
	Name:    runtime.GOOS,
	Release: "unknown",
	Version: "unknown",
}

type SysInfo struct {
	Name    string // The operating system (e.g., "linux", "darwin", "windows").
	Release string // Marketing name or release (e.g., "Ubuntu", "macOS").
	Version string // Build or release version.
}

func (s SysInfo) String() string {
	return s.Name + " " + s.Release + " " + s.Version
}

func Stat() (*SysInfo, error) {
	info := SysUnknown

	switch runtime.GOOS {
	case "linux":
		info.Release, info.Version = getLinuxInfo()
	case "darwin":
		info.Release, info.Version = getDarwinInfo()
	case "windows":
		info.Release, info.Version = getWindowsInfo()
	}
	return &info, nil
}

// ScanPairs reads "key<sep>value" lines from r and returns the values of the
// requested keys, trimmed of spaces and double quotes. Missing keys map to "".
func ScanPairs(r io.Reader, sep string, keys ...string) map[string]string {
	values := make(map[string]string, len(keys))
	for _, k := range keys {
		values[k] = ""
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), sep)
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if _, wanted := values[key]; wanted {
			values[key] = strings.Trim(strings.TrimSpace(value), `"`)
		}
	}
	return values
}

func getLinuxInfo() (string, string) {
	f, err := os.Open("/etc/os-release")
	if err != nil {
		return "unknown", "unknown"
	}
	defer f.Close()

	v := ScanPairs(f, "=", "NAME", "VERSION")
	return v["NAME"], v["VERSION"]
}

func getDarwinInfo() (string, string) {
	output, err := exec.Command("sw_vers").Output()
	if err != nil {
		return "macOS", "unknown"
	}

	v := ScanPairs(bytes.NewReader(output), ":", "ProductName", "ProductVersion")
	return v["ProductName"], v["ProductVersion"]
}

func getWindowsInfo() (string, string) {
	output, err := exec.Command("cmd", "/c", "ver").Output()
	if err != nil {
		return "Windows", "unknown"
	}
	return "Windows", strings.TrimSpace(string(output))
}
