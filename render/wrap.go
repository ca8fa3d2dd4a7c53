package render

import (
	"strings"

	"golang.org/x/image/font"
)

// wrapText breaks text into lines no wider than maxWidth pixels. Newlines in
// the input start new lines and words wider than a line are split between
// characters.
func wrapText(face font.Face, text string, maxWidth int) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(face, paragraph, maxWidth)...)
	}
	return lines
}

func wrapParagraph(face font.Face, paragraph string, maxWidth int) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []string{""}
	}

	var (
		lines   []string
		current string
	)
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if width(face, candidate) <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
		if width(face, word) <= maxWidth {
			current = word
			continue
		}
		pieces := breakWord(face, word, maxWidth)
		lines = append(lines, pieces[:len(pieces)-1]...)
		current = pieces[len(pieces)-1]
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

func breakWord(face font.Face, word string, maxWidth int) []string {
	var (
		pieces []string
		cur    []rune
	)
	for _, r := range word {
		next := append(cur, r)
		if len(cur) > 0 && width(face, string(next)) > maxWidth {
			pieces = append(pieces, string(cur))
			cur = []rune{r}
			continue
		}
		cur = next
	}
	return append(pieces, string(cur))
}

func width(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}
