package source

import (
	"bufio"
	"io"
)

// TextExtractor handles plain text files.
type TextExtractor struct{}

func (e *TextExtractor) Extract(r io.Reader, filename string) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var out lines
	for scanner.Scan() {
		out.add(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return out.String(), nil
}
