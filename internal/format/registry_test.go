package format_test

import (
	"testing"

	"github.com/ostafen/meshcheck/internal/format"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	r, err := format.BuildRegistry()
	require.NoError(t, err)

	testCases := []struct {
		name string
		file string
		data []byte
		want string
	}{
		{"binary stl", "mesh.stl", binarySTL("", 2, 2), format.BinarySTL},
		{"binary stl with solid header", "mesh.STL", binarySTL("solid part", 2, 2), format.BinarySTL},
		{"ascii stl", "mesh.stl", []byte(asciiSTL(1, 3)), format.ASCIISTL},
		{"ascii stl with leading blanks", "mesh.stl", []byte("\n  " + asciiSTL(1, 3)), format.ASCIISTL},
		{"broken stl", "mesh.stl", []byte("garbage"), format.BinarySTL},
		{"obj", "model.obj", []byte("garbage"), format.OBJ},
		{"sniffed binary", "mesh.bin", binarySTL("", 1, 1), format.BinarySTL},
		{"sniffed ascii", "mesh.txt", []byte(asciiSTL(1, 3)), format.ASCIISTL},
		{"sniffed obj", "model.dat", []byte("\n# comment\nv 0 0 0\n"), format.OBJ},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, tc.file, tc.data)

			f, err := r.Detect(path)
			require.NoError(t, err)
			require.Equal(t, tc.want, f.Name)
		})
	}
}

func TestDetect_Unknown(t *testing.T) {
	r, err := format.BuildRegistry()
	require.NoError(t, err)

	path := writeFile(t, "notes.txt", []byte("1 2 3\n"))
	_, err = r.Detect(path)
	require.ErrorIs(t, err, format.ErrUnknownFormat)

	_, err = r.Detect(t.TempDir() + "/missing.stl")
	require.Error(t, err)
	require.NotErrorIs(t, err, format.ErrUnknownFormat)
}

func TestDetect_FilteredRegistry(t *testing.T) {
	r, err := format.BuildRegistry("obj")
	require.NoError(t, err)

	path := writeFile(t, "mesh.txt", []byte(asciiSTL(1, 3)))
	_, err = r.Detect(path)
	require.ErrorIs(t, err, format.ErrUnknownFormat)
}

func TestBuildRegistry(t *testing.T) {
	r, err := format.BuildRegistry()
	require.NoError(t, err)
	require.Len(t, r.Formats(), 3)
	require.Equal(t, []string{"stl", "obj"}, r.Exts())

	r, err = format.BuildRegistry(".STL")
	require.NoError(t, err)
	require.Len(t, r.Formats(), 2)
	require.Equal(t, []string{"stl"}, r.Exts())

	r, err = format.BuildRegistry("obj", "obj")
	require.NoError(t, err)
	require.Len(t, r.Formats(), 1)

	_, err = format.BuildRegistry("png")
	require.ErrorIs(t, err, format.ErrUnknownFormat)
}

func TestFormatRegistry_Lookup(t *testing.T) {
	r, err := format.BuildRegistry()
	require.NoError(t, err)

	f, err := r.Lookup(format.ASCIISTL)
	require.NoError(t, err)

	path := writeFile(t, "mesh.stl", []byte(asciiSTL(2, 3, "color 1 0 0")))
	v := f.Validate(path, format.WithExtraKeywords("color"))
	require.True(t, v.Clean())
	require.Equal(t, uint64(2), v.Count)

	f, err = r.Lookup(format.BinarySTL)
	require.NoError(t, err)
	v = f.Validate(writeFile(t, "mesh.stl", binarySTL("", 1, 1)))
	require.True(t, v.Valid)

	_, err = r.Lookup("gltf")
	require.ErrorIs(t, err, format.ErrUnknownFormat)
}
