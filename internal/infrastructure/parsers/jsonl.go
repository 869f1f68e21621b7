package parsers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// maxLineSize bounds a single record; some oracle texts are long.
const maxLineSize = 1 << 20

// JSONLinesParser parses one card record per line. Blank lines are skipped.
type JSONLinesParser struct{}

// Parse reads JSON lines from the reader and returns parsed cards.
func (p *JSONLinesParser) Parse(r io.Reader) ([]RawCard, error) {
	return collect(p, r)
}

// Stream calls fn for each line's record.
func (p *JSONLinesParser) Stream(r io.Reader, fn func(RawCard) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	index := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		index++
		var card RawCard
		if err := json.Unmarshal([]byte(text), &card); err != nil {
			return fmt.Errorf("parsing line %d: %w", line, err)
		}
		card.Index = index
		if err := fn(card); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading lines: %w", err)
	}
	return nil
}
