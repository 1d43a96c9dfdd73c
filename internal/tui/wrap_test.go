package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/taipu/internal/match"
)

func TestBuildStyledRunesCursor(t *testing.T) {
	runes := buildStyledRunes(match.Marks([]rune("ab"), 1))
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != doneStyle.Render("a") {
		t.Fatalf("expected done style for first rune")
	}
	if runes[1].s != cursorStyle.Render("b") {
		t.Fatalf("expected cursor style for second rune")
	}
}

func TestBuildStyledRunesNoCursorWhenComplete(t *testing.T) {
	runes := buildStyledRunes(match.Marks([]rune("a"), 1))
	if len(runes) != 1 {
		t.Fatalf("expected 1 rune, got %d", len(runes))
	}
	if runes[0].s != doneStyle.Render("a") {
		t.Fatalf("expected done style for completed rune")
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	runes := buildStyledRunes(match.Marks([]rune("one two"), 1))
	if runes[0].s != doneStyle.Render("o") {
		t.Fatalf("expected done style for typed rune")
	}
	if runes[1].s != cursorStyle.Render("n") {
		t.Fatalf("expected cursor style at cursor")
	}
	if runes[2].s != currentWordStyle.Render("e") {
		t.Fatalf("expected current word style for pending rune in current word")
	}
	if runes[4].s != pendingStyle.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
	if runes[6].s != pendingStyle.Render("o") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestBuildStyledRunesWideChars(t *testing.T) {
	runes := buildStyledRunes(match.Marks([]rune("ねこ"), 0))
	if runes[0].width != 2 || runes[1].width != 2 {
		t.Fatalf("expected double width for kana, got %d and %d", runes[0].width, runes[1].width)
	}
}

func TestWrapStyledRunesBreaksAtSpace(t *testing.T) {
	runes := buildStyledRunes(match.Marks([]rune("ohayou gozaimasu"), 0))
	out := wrapStyledRunes(runes, 10)
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("expected one line break, got %q", out)
	}
	if unwrapped := wrapStyledRunes(runes, 0); strings.Contains(unwrapped, "\n") {
		t.Fatalf("zero width must not wrap")
	}
}
