package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ostafen/meshcheck/cmd/cmd"
	"github.com/ostafen/meshcheck/pkg/report"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := cmd.NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestFormatsCommand(t *testing.T) {
	out, err := execute(t, "formats")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	require.True(t, strings.HasPrefix(lines[0], "NAME"))
	require.True(t, strings.HasPrefix(lines[1], "stl-binary"))
	require.True(t, strings.HasPrefix(lines[2], "stl-ascii"))
	require.True(t, strings.HasPrefix(lines[3], "obj"))
}

func TestKeywordsCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "part.stl")
	require.NoError(t, os.WriteFile(path, []byte("solid x\n  color 1 0 0\nendsolid x\n"), 0644))

	out, err := execute(t, "keywords", path)
	require.NoError(t, err)
	require.Equal(t, "color\nendsolid\nsolid\n", out)

	_, err = execute(t, "keywords", "--decode", "utf-16", path)
	require.Error(t, err)
}

func TestValidateAndReportCommands(t *testing.T) {
	t.Setenv("MESHCHECK_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.obj"), []byte("v 0 0 0\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.obj"), []byte("hello\n"), 0644))

	reportPath := filepath.Join(t.TempDir(), "report.xml")

	_, err := execute(t, "validate", "--no-log", "-o", reportPath, dir)
	require.EqualError(t, err, "1 invalid and 0 infected files")

	out, err := execute(t, "report", "--invalid-only", reportPath)
	require.NoError(t, err)
	require.Contains(t, out, "bad.obj")
	require.NotContains(t, out, "good.obj")

	out, err = execute(t, "report", reportPath)
	require.NoError(t, err)
	require.Contains(t, out, "good.obj")
	require.Contains(t, out, "Creator: meshcheck")
}

func TestReportCommand_NotAReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.xml")
	require.NoError(t, os.WriteFile(path, []byte("<other/>"), 0644))

	_, err := execute(t, "report", path)
	require.ErrorIs(t, err, report.ErrNotReport)

	empty := filepath.Join(t.TempDir(), "empty.xml")
	require.NoError(t, os.WriteFile(empty, nil, 0644))

	_, err = execute(t, "report", empty)
	require.ErrorIs(t, err, report.ErrNotReport)
}
