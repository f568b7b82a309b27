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
	"os"
	"os/user"
	"runtime"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/ostafen/meshcheck/pkg/sysinfo"
)

const OutputVersion = "1.0"

type Header struct {
	XMLName       xml.Name `xml:"header"`
	OutputVersion string   `xml:"outputversion,attr,omitempty"` // Report format version, kept on the root element.
	RunID         string   `xml:"run_id"`                       // Unique identifier of the run.
	Creator       Creator  `xml:"creator"`                      // The software that produced the report.
	Source        Source   `xml:"source"`                       // What was inspected.
}

type Creator struct {
	Package              string  `xml:"package"`
	Version              string  `xml:"version"`
	ExecutionEnvironment ExecEnv `xml:"execution_environment"`
}

type ExecEnv struct {
	OS      string `xml:"os_sysname"` // Operating system name (e.g., "linux").
	Release string `xml:"os_release"` // Operating system release.
	Version string `xml:"os_version"` // Operating system version.
	Host    string `xml:"host"`
	Arch    string `xml:"arch"`
	UID     int    `xml:"uid"`
	Start   string `xml:"start_time"` // UTC, RFC 3339.
}

type Source struct {
	Inputs []string `xml:"input"`
}

// FileObject describes the outcome for one inspected file.
type FileObject struct {
	XMLName      xml.Name   `xml:"fileobject"`
	Filename     string     `xml:"filename"`
	FileSize     uint64     `xml:"filesize"`
	Format       string     `xml:"format,omitempty"`
	Valid        bool       `xml:"valid"`
	Message      string     `xml:"message"`
	Count        uint64     `xml:"count"`
	Unrecognized []string   `xml:"unrecognized>keyword,omitempty"`
	Checksum     string     `xml:"xxhash64,omitempty"`
	Antivirus    *AVOutcome `xml:"antivirus,omitempty"`
}

type AVOutcome struct {
	Status    string `xml:"status,attr"`
	Signature string `xml:"signature,attr,omitempty"`
}

func NewRunID() string {
	return uuid.NewString()
}

func GetExecEnv() ExecEnv {
	sinfo, err := sysinfo.Stat()
	if err != nil {
		sinfo = &sysinfo.SysUnknown
	}

	host, err := os.Hostname()
	if err != nil {
		host = "unknown_host"
	}

	uid := 0
	currentUser, err := user.Current()
	if err == nil {
		if uidInt, parseErr := strconv.Atoi(currentUser.Uid); parseErr == nil {
			uid = uidInt
		}
	}

	return ExecEnv{
		OS:      sinfo.Name,
		Release: sinfo.Release,
		Version: sinfo.Version,
		Host:    host,
		Arch:    runtime.GOARCH,
		UID:     uid,
		Start:   time.Now().UTC().Format(time.RFC3339),
	}
}
