// Package document loads and tokenizes the text to be read.
package document

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrEmpty reports input that produced no words at all.
var ErrEmpty = errors.New("document is empty")

// Load reads the full text from r and splits it into words. Tokens are
// separated by any whitespace (newlines included), order is preserved and
// empty tokens are discarded.
func Load(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	var words []string
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	if len(words) == 0 {
		return nil, ErrEmpty
	}
	return words, nil
}

// LoadFile reads and tokenizes the file at path.
func LoadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only input.
			_ = cerr
		}
	}()
	return Load(file)
}
