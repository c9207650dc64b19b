package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/tuispell/internal/session"
)

func layout(words ...string) ([][]rune, [][]session.Status) {
	runes := make([][]rune, len(words))
	statuses := make([][]session.Status, len(words))
	for i, w := range words {
		runes[i] = []rune(w)
		statuses[i] = make([]session.Status, len(runes[i]))
	}
	return runes, statuses
}

func TestBuildStyledRunesCursor(t *testing.T) {
	words, statuses := layout("ab")
	statuses[0][0] = session.StatusCorrect

	runes := buildStyledRunes(words, statuses, session.Cursor{Word: 0, Letter: 1})
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != cursorStyle.Render("b") {
		t.Fatalf("expected cursor style for second rune")
	}
}

func TestBuildStyledRunesNoCursorOnTypedLetter(t *testing.T) {
	words, statuses := layout("a")
	statuses[0][0] = session.StatusCorrect

	runes := buildStyledRunes(words, statuses, session.Cursor{Word: 0, Letter: 0})
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for completed rune")
	}
}

func TestBuildStyledRunesKeepsTargetOnMistype(t *testing.T) {
	words, statuses := layout("ab")
	statuses[0][0] = session.StatusCorrect
	statuses[0][1] = session.StatusIncorrect

	runes := buildStyledRunes(words, statuses, session.Cursor{Word: 0, Letter: 1})
	if runes[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected incorrect style showing the expected letter")
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	words, statuses := layout("one", "two")
	statuses[0][0] = session.StatusCorrect

	runes := buildStyledRunes(words, statuses, session.Cursor{Word: 0, Letter: 1})
	if len(runes) != 7 {
		t.Fatalf("expected words joined by one space, got %d runes", len(runes))
	}
	if !runes[3].isSpace {
		t.Fatalf("expected separator at index 3")
	}
	if runes[2].s != currentWordStyle.Render("e") {
		t.Fatalf("expected current word style for untyped in current word")
	}
	if runes[4].s != pendingStyle.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestWrapStyledRunesBreaksAtSpaces(t *testing.T) {
	words, statuses := layout("alpha", "beta", "gamma")
	runes := buildStyledRunes(words, statuses, session.Cursor{Word: 5})
	out := wrapStyledRunes(runes, 11)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", lines)
	}
	if lineWidthOf(runes[:10]) != 10 {
		t.Fatalf("unexpected width accounting")
	}
}
