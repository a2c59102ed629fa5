package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Source", "Sessions", "Words"}
	rows := [][]string{
		{"book.txt", "3", "1200"},
		{"日記.txt", "12", "90"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Source   Sessions Words" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "book.txt        3  1200" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	// 日 and 記 occupy two cells each, so the source column stays aligned.
	if lines[2] != "日記.txt       12    90" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}
