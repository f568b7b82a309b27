package sysinfo_test

import (
	"runtime"
	"strings"
	"testing"

	"github.com/ostafen/meshcheck/pkg/sysinfo"
	"github.com/stretchr/testify/require"
)

func TestScanPairs(t *testing.T) {
	osRelease := `NAME="Ubuntu"
VERSION="24.04 LTS (Noble Numbat)"
ID=ubuntu
`
	v := sysinfo.ScanPairs(strings.NewReader(osRelease), "=", "NAME", "VERSION", "BUILD_ID")
	require.Equal(t, map[string]string{
		"NAME":     "Ubuntu",
		"VERSION":  "24.04 LTS (Noble Numbat)",
		"BUILD_ID": "",
	}, v)

	swVers := "ProductName:\t\tmacOS\nProductVersion:\t\t14.5\nBuildVersion:\t\t23F79\n"
	v = sysinfo.ScanPairs(strings.NewReader(swVers), ":", "ProductName", "ProductVersion")
	require.Equal(t, "macOS", v["ProductName"])
	require.Equal(t, "14.5", v["ProductVersion"])
}

func TestStat(t *testing.T) {
	info, err := sysinfo.Stat()
	require.NoError(t, err)
	require.Equal(t, runtime.GOOS, info.Name)
}
