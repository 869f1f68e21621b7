package parsers

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses a JSON array of card records, as served by the
// Scryfall bulk data endpoints.
type JSONParser struct{}

// Parse reads JSON from the reader and returns parsed cards.
func (p *JSONParser) Parse(r io.Reader) ([]RawCard, error) {
	return collect(p, r)
}

// Stream decodes the array element by element so whole dumps are never
// held in memory as a single value.
func (p *JSONParser) Stream(r io.Reader, fn func(RawCard) error) error {
	decoder := json.NewDecoder(r)

	tok, err := decoder.Token()
	if err != nil {
		return fmt.Errorf("parsing JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return fmt.Errorf("parsing JSON: expected array, got %v", tok)
	}

	index := 0
	for decoder.More() {
		index++
		var card RawCard
		if err := decoder.Decode(&card); err != nil {
			return fmt.Errorf("parsing JSON record %d: %w", index, err)
		}
		card.Index = index
		if err := fn(card); err != nil {
			return err
		}
	}

	if _, err := decoder.Token(); err != nil {
		return fmt.Errorf("parsing JSON: %w", err)
	}
	return nil
}
