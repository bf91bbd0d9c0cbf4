package studyplan

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapIndented wraps text to width, prefixing the first line and indenting the rest to match.
func wrapIndented(prefix, text string, width int) string {
	indent := strings.Repeat(" ", runewidth.StringWidth(prefix))
	lines := wrapWords(text, width-runewidth.StringWidth(prefix))
	for i := range lines {
		if i == 0 {
			lines[i] = prefix + lines[i]
		} else {
			lines[i] = indent + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

// wrapWords breaks text at spaces so no line exceeds width display cells.
// Words wider than width are hard-broken. width <= 0 returns a single line.
func wrapWords(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	if width <= 0 {
		return []string{strings.Join(words, " ")}
	}
	var lines []string
	var line strings.Builder
	lineWidth := 0
	for _, word := range words {
		wordWidth := runewidth.StringWidth(word)
		if lineWidth > 0 && lineWidth+1+wordWidth > width {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		for wordWidth > width {
			head := runewidth.Truncate(word, width-lineWidth, "")
			if head == "" {
				break
			}
			line.WriteString(head)
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
			word = strings.TrimPrefix(word, head)
			wordWidth = runewidth.StringWidth(word)
		}
		if lineWidth > 0 {
			line.WriteByte(' ')
			lineWidth++
		}
		line.WriteString(word)
		lineWidth += wordWidth
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
