// Package window tracks the reading cursor over a fixed word sequence and
// projects a bounded contextual view around it.
package window

import "errors"

// ErrNoWords reports an attempt to build a window over an empty document.
var ErrNoWords = errors.New("window: document has no words")

// Window owns the full word sequence and the current-position cursor. The
// word sequence is never mutated; the cursor never leaves [0, total-1].
type Window struct {
	words  []string
	cursor int
	moves  int
}

// New builds a window over words positioned at start. An empty word sequence
// is an error; start is clamped into the valid index range.
func New(words []string, start int) (*Window, error) {
	if len(words) == 0 {
		return nil, ErrNoWords
	}
	if start < 0 {
		start = 0
	}
	if start > len(words)-1 {
		start = len(words) - 1
	}
	return &Window{words: words, cursor: start}, nil
}

// Current returns the word under the cursor.
func (w *Window) Current() string {
	return w.words[w.cursor]
}

// Advance moves the cursor one word toward the end, clamped to the last
// index, and returns the new current word. At the last index it is a no-op.
func (w *Window) Advance() string {
	if w.cursor < len(w.words)-1 {
		w.cursor++
		w.moves++
	}
	return w.words[w.cursor]
}

// Retreat moves the cursor one word toward the start, clamped to index 0,
// and returns the new current word. At index 0 it is a no-op.
func (w *Window) Retreat() string {
	if w.cursor > 0 {
		w.cursor--
		w.moves++
	}
	return w.words[w.cursor]
}

// Progress returns the cursor position and the total word count.
func (w *Window) Progress() (int, int) {
	return w.cursor, len(w.words)
}

// Moves returns how many advance/retreat calls actually moved the cursor,
// i.e. how many distinct word transitions the reader has been shown.
func (w *Window) Moves() int {
	return w.moves
}

// WindowAround returns at most chunkSize contiguous words containing the
// cursor, plus the cursor's offset within that slice. Window starts sit on a
// fixed grid spaced 2/3 of the chunk size apart so the view shifts only when
// the cursor has moved well past the previous window, rather than every
// advance. The chosen start is the largest grid point still at least
// chunkSize/6 words before the cursor, clamped to the document bounds.
func (w *Window) WindowAround(chunkSize int) ([]string, int) {
	total := len(w.words)
	if chunkSize < 1 {
		chunkSize = 1
	}
	if chunkSize >= total {
		return w.words, w.cursor
	}

	step := 2 * chunkSize / 3
	if step < 1 {
		step = 1
	}
	start := 0
	if limit := w.cursor - chunkSize/6; limit > 0 {
		start = limit / step * step
	}
	if start > total-chunkSize {
		start = total - chunkSize
	}
	return w.words[start : start+chunkSize], w.cursor - start
}
