package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitLines(t *testing.T) {
	testCases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\n\n", []string{"a", ""}},
		{"a\r\nb\rc\nd", []string{"a", "b", "c", "d"}},
		{"\n", []string{""}},
		{"a\r\n", []string{"a"}},
		{"a\vb\fc", []string{"a", "b", "c"}},
		{"a\x1cb\x1dc\x1ed", []string{"a", "b", "c", "d"}},
		{"a\u0085b\u2028c\u2029", []string{"a", "b", "c"}},
		{"a\n\r\nb", []string{"a", "", "b"}},
		{"a\tb", []string{"a\tb"}},
	}

	for _, tc := range testCases {
		require.Equal(t, tc.want, splitLines(tc.in), "%q", tc.in)
	}
}

func TestHeadRunes(t *testing.T) {
	require.Equal(t, "abc", headRunes("abcdef", 3))
	require.Equal(t, "héé", headRunes("héééé", 3))
	require.Equal(t, "ab", headRunes("ab", 10))
	require.Equal(t, "", headRunes("ab", 0))
}

func TestIsNumericRow(t *testing.T) {
	for _, s := range []string{"1.0 2.0", "-1", "+2", ".5", "٣", "²5", "₀", "①", "❶"} {
		require.True(t, isNumericRow(s), s)
	}
	for _, s := range []string{"", "color", "e10", "#", "½", "Ⅳ"} {
		require.False(t, isNumericRow(s), s)
	}
}
