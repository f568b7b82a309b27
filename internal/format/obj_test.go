package format_test

import (
	"os"
	"strings"
	"testing"

	"github.com/ostafen/meshcheck/internal/format"
	"github.com/stretchr/testify/require"
)

func TestValidateOBJ(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		valid   bool
	}{
		{"single vertex", "v 0 0 0", true},
		{"comments only", "# exported model\n# no geometry\n", true},
		{"face after blank lines", "\n\n   \n\tf 1 2 3\n", true},
		{"material library", "mtllib cube.mtl\n", true},
		{"texture coordinate", "vt 0.5 0.5\n", true},
		{"object name", "o Cube\n", true},
		{"smoothing group", "s off\n", true},
		{"usemtl", "usemtl red\n", true},
		{"prefix match", "vp 0.1 0.2\n", true},
		{"no keywords", "hello world\n123 456\n", false},
		{"only whitespace", "   \n\t\n", false},
		{"leading numbers", "1 2 3\n-4 5 6\n", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, "model.obj", []byte(tc.content))

			v := format.ValidateOBJ(path)
			require.Equal(t, tc.valid, v.Valid)
			require.Zero(t, v.Count)
			if tc.valid {
				require.Equal(t, "Valid OBJ file structure detected.", v.Message)
			} else {
				require.Equal(t, "No valid OBJ keywords found. This may not be a valid OBJ file.", v.Message)
			}
		})
	}
}

func TestValidateOBJ_Empty(t *testing.T) {
	path := writeFile(t, "model.obj", nil)

	v := format.ValidateOBJ(path)
	require.False(t, v.Valid)
	require.Equal(t, "File is empty.", v.Message)
}

func TestValidateOBJ_MissingFile(t *testing.T) {
	v := format.ValidateOBJ(t.TempDir() + "/missing.obj")
	require.False(t, v.Valid)
	require.True(t, strings.HasPrefix(v.Message, "Error processing file: "))
	require.ErrorIs(t, v.Err, os.ErrNotExist)
}

func TestCheckOBJ_InvalidBytes(t *testing.T) {
	v := format.CheckOBJ("\xff\xfe\n")
	require.False(t, v.Valid)

	path := writeFile(t, "model.obj", []byte("\xff\xfev 1 2 3\n"))
	v = format.ValidateOBJ(path)
	require.True(t, v.Valid)
}
