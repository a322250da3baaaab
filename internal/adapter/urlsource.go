// Package adapter connects the mutation pipeline to the outside world,
// currently by streaming URL inputs from files and standard input.
package adapter

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// URLSource yields URL strings one at a time. Next returns io.EOF once the
// source is exhausted so callers can stream arbitrarily large inputs without
// loading them whole.
type URLSource interface {
	// Next returns the next URL from the source, or io.EOF when done.
	Next() (string, error)
}

// LineSource reads newline separated URLs from a reader, one URL per line.
// Blank lines are skipped and a trailing line without a newline still counts.
type LineSource struct {
	r *bufio.Reader
}

// NewLineSource wraps r in a line-by-line URLSource.
func NewLineSource(r io.Reader) *LineSource {
	return &LineSource{r: bufio.NewReader(r)}
}

// Next returns the next non-blank line with its line ending stripped.
func (s *LineSource) Next() (string, error) {
	for {
		line, err := s.r.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("failed to read URL line: %w", err)
		}

		done := err == io.EOF

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		if line != "" {
			return line, nil
		}

		if done {
			return "", io.EOF
		}
	}
}
