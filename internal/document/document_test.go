package document

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadSplitsOnWhitespace(t *testing.T) {
	input := "The quick\nbrown\tfox.\n\n  jumps  \n"
	words, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"The", "quick", "brown", "fox.", "jumps"}
	if len(words) != len(want) {
		t.Fatalf("expected %d words, got %d: %v", len(want), len(words), words)
	}
	for i, w := range want {
		if words[i] != w {
			t.Fatalf("word %d: expected %q, got %q", i, w, words[i])
		}
	}
}

func TestLoadPreservesOrderAndPunctuation(t *testing.T) {
	words, err := Load(strings.NewReader("a! b? c; d: e."))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"a!", "b?", "c;", "d:", "e."}
	for i, w := range want {
		if words[i] != w {
			t.Fatalf("word %d: expected %q, got %q", i, w, words[i])
		}
	}
}

func TestLoadEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t \n"} {
		_, err := Load(strings.NewReader(input))
		if !errors.Is(err, ErrEmpty) {
			t.Fatalf("input %q: expected ErrEmpty, got %v", input, err)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("one two three"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	words, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if len(words) != 3 {
		t.Fatalf("expected 3 words, got %d", len(words))
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.txt"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}
