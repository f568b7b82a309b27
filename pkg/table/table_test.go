package table_test

import (
	"testing"

	"github.com/ostafen/meshcheck/pkg/table"
	"github.com/stretchr/testify/require"
)

func TestPrefixTable_Walk(t *testing.T) {
	tb := table.New[int]()
	tb.Insert("v", 1)
	tb.Insert("vt", 2)
	tb.Insert("vn", 3)
	tb.Insert("usemtl", 4)
	tb.Insert("", 5)

	require.Equal(t, 4, tb.Size())

	var keys []string
	tb.Walk("vt 0.5 0.5", func(key string, v int) bool {
		keys = append(keys, key)
		return false
	})
	require.Equal(t, []string{"v", "vt"}, keys)

	keys = nil
	tb.Walk("vt 0.5 0.5", func(key string, v int) bool {
		keys = append(keys, key)
		return true
	})
	require.Equal(t, []string{"v"}, keys)
}

func TestPrefixTable_Match(t *testing.T) {
	tb := table.New[string]()
	for _, kw := range []string{"o", "#", "mtllib", "usemtl"} {
		tb.Insert(kw, kw)
	}

	testCases := []struct {
		line  string
		key   string
		found bool
	}{
		{"o cube", "o", true},
		{"# comment", "#", true},
		{"mtllib cube.mtl", "mtllib", true},
		{"usemtl red", "usemtl", true},
		{"use red", "", false},
		{"mtl", "", false},
		{"", "", false},
		{"facet normal 0 0 1", "", false},
	}

	for _, tc := range testCases {
		key, v, ok := tb.Match(tc.line)
		require.Equal(t, tc.found, ok, tc.line)
		require.Equal(t, tc.key, key, tc.line)
		require.Equal(t, tc.key, v, tc.line)
	}
}

func TestPrefixTable_Get(t *testing.T) {
	tb := table.New[int]()
	tb.Insert("solid", 1)

	v, ok := tb.Get("solid")
	require.True(t, ok)
	require.Equal(t, 1, v)

	_, ok = tb.Get("sol")
	require.False(t, ok)
}
