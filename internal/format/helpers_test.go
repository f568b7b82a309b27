package format_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

// binarySTL builds a binary STL image declaring count triangles and
// holding records triangle records.
func binarySTL(header string, count uint32, records int) []byte {
	data := make([]byte, 84+records*50)
	copy(data[:80], header)
	binary.LittleEndian.PutUint32(data[80:84], count)
	return data
}

// asciiSTL builds an ASCII STL body with facets facets of verticesPerFacet
// vertices each. extra lines are placed before the closing endsolid.
func asciiSTL(facets, verticesPerFacet int, extra ...string) string {
	var sb strings.Builder
	sb.WriteString("solid cube\n")
	for i := 0; i < facets; i++ {
		sb.WriteString("  facet normal 0 0 1\n")
		sb.WriteString("    outer loop\n")
		for j := 0; j < verticesPerFacet; j++ {
			sb.WriteString("      vertex 0 0 0\n")
		}
		sb.WriteString("    endloop\n")
		sb.WriteString("  endfacet\n")
	}
	for _, line := range extra {
		sb.WriteString(line + "\n")
	}
	sb.WriteString("endsolid cube\n")
	return sb.String()
}
