package mocks

import (
	"context"
	"strings"

	"github.com/magic-finder/magic-finder/internal/domain/entities"
	"github.com/magic-finder/magic-finder/internal/domain/ports"
)

var likeUnescaper = strings.NewReplacer(`\\`, `\`, `\%`, `%`, `\_`, `_`)

// CatalogStore is an in-memory mock implementation of ports.CatalogStore.
type CatalogStore struct {
	Cards []entities.Card
	Words []string
	Err   error

	// PopulatedErr is returned by CheckPopulated (separate from Err for fine-grained control)
	PopulatedErr error

	// Call tracking
	RebuildCallCount  int
	RebuildLastCorpus *entities.Corpus
	SearchCallCount   int
	AllWordsCallCount int
}

// NewCatalogStore creates a mock store holding corpus.
func NewCatalogStore(corpus *entities.Corpus) *CatalogStore {
	m := &CatalogStore{}
	if corpus != nil {
		m.Cards = append(m.Cards, corpus.Cards...)
		m.Words = append(m.Words, corpus.Words...)
	}
	return m
}

// CheckPopulated returns PopulatedErr.
func (m *CatalogStore) CheckPopulated(_ context.Context) error {
	return m.PopulatedErr
}

// GetByExactName finds a card by display name.
func (m *CatalogStore) GetByExactName(_ context.Context, name string) (*entities.Card, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Cards {
		if m.Cards[i].Name == name {
			card := m.Cards[i]
			return &card, nil
		}
	}
	return nil, nil
}

// GetByExactLowercaseName finds a card by normalized name.
func (m *CatalogStore) GetByExactLowercaseName(_ context.Context, lowercaseName string) (*entities.Card, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Cards {
		if m.Cards[i].LowercaseName == lowercaseName {
			card := m.Cards[i]
			return &card, nil
		}
	}
	return nil, nil
}

// FindByAllTokensSubstring supports only "%text%" patterns.
func (m *CatalogStore) FindByAllTokensSubstring(_ context.Context, patterns []string) ([]entities.Card, error) {
	m.SearchCallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	if len(patterns) == 0 {
		return nil, ports.ErrNoSearchTokens
	}

	needles := make([]string, len(patterns))
	for i, p := range patterns {
		p = strings.TrimSuffix(strings.TrimPrefix(p, "%"), "%")
		needles[i] = likeUnescaper.Replace(p)
	}

	var result []entities.Card
	for _, card := range m.Cards {
		matched := true
		for _, n := range needles {
			if !strings.Contains(card.LowercaseName, n) {
				matched = false
				break
			}
		}
		if matched {
			result = append(result, card)
		}
	}
	return result, nil
}

// AllWords returns the word index.
func (m *CatalogStore) AllWords(_ context.Context) ([]string, error) {
	m.AllWordsCallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Words, nil
}

// AllNames returns every display name.
func (m *CatalogStore) AllNames(_ context.Context) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	names := make([]string, len(m.Cards))
	for i, c := range m.Cards {
		names[i] = c.Name
	}
	return names, nil
}

// AllLowercaseNames returns every normalized name.
func (m *CatalogStore) AllLowercaseNames(_ context.Context) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	names := make([]string, len(m.Cards))
	for i, c := range m.Cards {
		names[i] = c.LowercaseName
	}
	return names, nil
}

// Counts returns the number of cards and words held.
func (m *CatalogStore) Counts(_ context.Context) (ports.CatalogCounts, error) {
	if m.Err != nil {
		return ports.CatalogCounts{}, m.Err
	}
	return ports.CatalogCounts{Cards: len(m.Cards), Words: len(m.Words)}, nil
}

// Rebuild replaces the held corpus.
func (m *CatalogStore) Rebuild(_ context.Context, corpus *entities.Corpus) error {
	m.RebuildCallCount++
	m.RebuildLastCorpus = corpus
	if m.Err != nil {
		return m.Err
	}
	m.Cards = append([]entities.Card(nil), corpus.Cards...)
	m.Words = append([]string(nil), corpus.Words...)
	return nil
}

// Close closes the store.
func (m *CatalogStore) Close() error {
	return nil
}
