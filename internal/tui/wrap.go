package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuispell/internal/session"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledRunes lays words out with single spaces between them. The caret
// is underlined only while its letter is still untyped.
func buildStyledRunes(words [][]rune, statuses [][]session.Status, caret session.Cursor) []styledRune {
	out := make([]styledRune, 0, len(words)*6)
	for w, word := range words {
		if w > 0 {
			out = append(out, styledRune{s: " ", width: 1, isSpace: true})
		}
		for l, r := range word {
			status := session.StatusDefault
			if w < len(statuses) && l < len(statuses[w]) {
				status = statuses[w][l]
			}
			style := pendingStyle
			switch {
			case status == session.StatusCorrect:
				style = correctStyle
			case status == session.StatusIncorrect:
				style = incorrectStyle
			case w == caret.Word:
				style = currentWordStyle
			}
			if w == caret.Word && l == caret.Letter && status == session.StatusDefault {
				style = cursorStyle
			}
			out = append(out, styledRune{
				s:     style.Render(string(r)),
				width: runewidth.RuneWidth(r),
			})
		}
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
