package utils

import (
	"strings"
	"unicode/utf8"
)

// DescriptionWidth is the maximum line width of formatted descriptions.
const DescriptionWidth = 100

var newlineReplacer = strings.NewReplacer("\r", " ", "\n", " ")

// FormatDescription prepares a stored description for output.
// Carriage returns and newlines become spaces, the text is trimmed and wrapped
// to DescriptionWidth. Empty or blank input yields nil, never an empty slice.
func FormatDescription(raw string) []string {
	clean := strings.TrimSpace(newlineReplacer.Replace(raw))
	if clean == "" {
		return nil
	}
	return Wrap(clean, DescriptionWidth)
}

// Wrap splits text into lines of at most width characters, breaking only
// between words. Runs of whitespace collapse to one space. A word longer than
// width is kept whole on its own line.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{strings.Join(words, " ")}
	}

	var (
		lines   []string
		line    strings.Builder
		lineLen int
	)

	for _, w := range words {
		wl := utf8.RuneCountInString(w)
		if lineLen > 0 && lineLen+1+wl > width {
			lines = append(lines, line.String())
			line.Reset()
			lineLen = 0
		}
		if lineLen > 0 {
			line.WriteByte(' ')
			lineLen++
		}
		line.WriteString(w)
		lineLen += wl
	}
	if lineLen > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
