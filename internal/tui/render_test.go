package tui

import (
	"strings"
	"testing"
)

func TestFormatProgress(t *testing.T) {
	tests := []struct {
		cursor int
		total  int
		want   string
	}{
		{50, 200, "50/200 · 25.00000%"},
		{0, 4, "0/4 · 0.00000%"},
		{4, 4, "4/4 · 100.00000%"},
		// Truncated, not rounded: 2/3 is 66.666...%.
		{2, 3, "2/3 · 66.66666%"},
		{1, 3, "1/3 · 33.33333%"},
	}
	for _, tt := range tests {
		if got := formatProgress(tt.cursor, tt.total); got != tt.want {
			t.Errorf("formatProgress(%d, %d) = %q; want %q", tt.cursor, tt.total, got, tt.want)
		}
	}
}

func TestRenderFocusLineColumn(t *testing.T) {
	line := renderFocusLine("example", 10)
	// Midpoint of "example" is "m"; "exa" is 3 cells wide, so 7 spaces put
	// the focus rune at column 10.
	want := strings.Repeat(" ", 7) + wordStyle.Render("exa") + focusStyle.Render("m") + wordStyle.Render("ple")
	if line != want {
		t.Fatalf("focus line = %q; want %q", line, want)
	}
}

func TestRenderFocusLineWideRunes(t *testing.T) {
	line := renderFocusLine("日本語", 10)
	// "日" occupies two cells, so 8 spaces put the focus rune at column 10.
	want := strings.Repeat(" ", 8) + wordStyle.Render("日") + focusStyle.Render("本") + wordStyle.Render("語")
	if line != want {
		t.Fatalf("focus line = %q; want %q", line, want)
	}
}

func TestRenderFocusLineSingleRune(t *testing.T) {
	line := renderFocusLine("a", 5)
	want := strings.Repeat(" ", 5) + focusStyle.Render("a")
	if line != want {
		t.Fatalf("focus line = %q; want %q", line, want)
	}
}

func TestRenderFocusLineClampsPad(t *testing.T) {
	line := renderFocusLine("extraordinarily", 2)
	if strings.HasPrefix(line, "   ") {
		t.Fatalf("pad not clamped: %q", line)
	}
}

func TestWrapStyledWords(t *testing.T) {
	words := buildStyledWords([]string{"one", "two", "three"}, 1)
	wrapped := wrapStyledWords(words, 7)
	lines := strings.Split(wrapped, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), wrapped)
	}
	if !strings.Contains(lines[0], currentWordStyle.Render("two")) {
		t.Fatalf("current word not highlighted on first line: %q", lines[0])
	}
	if !strings.Contains(lines[1], chunkStyle.Render("three")) {
		t.Fatalf("expected three on its own line: %q", lines[1])
	}
}

func TestWrapStyledWordsOversizedWord(t *testing.T) {
	words := buildStyledWords([]string{"tiny", "enormousword"}, 0)
	wrapped := wrapStyledWords(words, 5)
	lines := strings.Split(wrapped, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), wrapped)
	}
}
