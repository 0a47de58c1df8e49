package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDescription_Empty(t *testing.T) {
	assert.Nil(t, FormatDescription(""))
	assert.Nil(t, FormatDescription("  \r\n  "))
}

func TestFormatDescription_CollapsesNewlines(t *testing.T) {
	got := FormatDescription("\r\nFirst line.\r\nSecond line.\nThird.\n")
	assert.Equal(t, []string{"First line. Second line. Third."}, got)
}

func TestFormatDescription_WrapRoundTrip(t *testing.T) {
	text := strings.Repeat("abcdefghi ", 24) + "abcdefghij"
	require.Equal(t, 250, len(text))

	lines := FormatDescription(text)
	require.Len(t, lines, 3)

	for _, l := range lines {
		assert.LessOrEqual(t, utf8.RuneCountInString(l), DescriptionWidth)
		assert.Equal(t, strings.TrimSpace(l), l)
	}
	assert.Equal(t, text, strings.Join(lines, " "))
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"Fits", "one two", 10, []string{"one two"}},
		{"Exact Width", "abc def", 7, []string{"abc def"}},
		{"Breaks", "abc def ghi", 7, []string{"abc def", "ghi"}},
		{"Long Word Kept Whole", "a supercalifragilistic b", 5, []string{"a", "supercalifragilistic", "b"}},
		{"Collapses Spaces", "a    b\t c", 20, []string{"a b c"}},
		{"Unicode Width", "ナルト ナルト", 7, []string{"ナルト ナルト"}},
		{"Empty", "   ", 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(tt.text, tt.width))
		})
	}
}
