package workload

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// CorpusName is the distribution name reported for corpus-backed cases.
const CorpusName = "file"

// Corpus copies elements from an externally supplied ordered sequence.
// Requests larger than the corpus are truncated to its length.
type Corpus[T any] struct {
	items []T
}

// NewCorpus wraps items. The slice is not copied.
func NewCorpus[T any](items []T) *Corpus[T] {
	return &Corpus[T]{items: items}
}

func (c *Corpus[T]) Name() string { return CorpusName }

func (c *Corpus[T]) Generate(buf []T) int {
	return copy(buf, c.items)
}

// Len returns the number of elements available.
func (c *Corpus[T]) Len() int { return len(c.items) }

// ReadLines returns the non-empty lines of r.
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var lines []string

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		lines = append(lines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan lines: %w", err)
	}

	return lines, nil
}

// LoadCorpus reads the non-empty lines of the file at path.
func LoadCorpus(path string) (*Corpus[string], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus %s: %w", path, err)
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}

	return NewCorpus(lines), nil
}
