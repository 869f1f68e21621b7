// Package parsers decodes Scryfall-shaped card dumps into raw records.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// RawFace is one face of a multi-faced card record.
type RawFace struct {
	Name       string  `json:"name"`
	TypeLine   string  `json:"type_line"`
	OracleText *string `json:"oracle_text,omitempty"`
	Power      *string `json:"power,omitempty"` // Pointer to distinguish "0" from unset
	Toughness  *string `json:"toughness,omitempty"`
	Loyalty    *string `json:"loyalty,omitempty"`
	ManaCost   *string `json:"mana_cost,omitempty"`
}

// RawCard is one record of the external feed, before validation.
// Unknown fields in the source are ignored.
type RawCard struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Layout      string    `json:"layout,omitempty"`
	TypeLine    string    `json:"type_line"`
	OracleText  *string   `json:"oracle_text,omitempty"`
	Power       *string   `json:"power,omitempty"`
	Toughness   *string   `json:"toughness,omitempty"`
	Loyalty     *string   `json:"loyalty,omitempty"`
	ManaCost    *string   `json:"mana_cost,omitempty"`
	SetType     string    `json:"set_type,omitempty"`
	ScryfallURI string    `json:"scryfall_uri,omitempty"`
	CardFaces   []RawFace `json:"card_faces,omitempty"`
	Index       int       `json:"-"` // Position in the source (1-indexed, set by parser)
}

// Parser decodes card records from a stream.
type Parser interface {
	// Parse reads every record into memory.
	Parse(r io.Reader) ([]RawCard, error)

	// Stream calls fn for each record in source order, stopping at the first error.
	Stream(r io.Reader, fn func(RawCard) error) error
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "jsonl".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "jsonl", "ndjson":
		return &JSONLinesParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return &JSONParser{}
	case ".jsonl", ".ndjson":
		return &JSONLinesParser{}
	default:
		return nil
	}
}

func collect(p Parser, r io.Reader) ([]RawCard, error) {
	cards := []RawCard{}
	err := p.Stream(r, func(c RawCard) error {
		cards = append(cards, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}
