// Package ports defines interfaces for external service communication.
package ports

import (
	"context"
	"errors"

	"github.com/magic-finder/magic-finder/internal/domain/entities"
)

// Population errors returned by CatalogStore.CheckPopulated.
var (
	ErrStoreMissing      = errors.New("catalog store does not exist")
	ErrStoreEmptyOfCards = errors.New("catalog store has no cards")
	ErrStoreEmptyOfWords = errors.New("catalog store has no words")
	ErrNoSearchTokens    = errors.New("at least one search pattern is required")
)

// CatalogCounts summarizes the size of a stored corpus.
type CatalogCounts struct {
	Cards int
	Words int
}

// CatalogStore holds the card entities and the word index.
// Rebuild is the only mutator; callers must not query during a rebuild.
type CatalogStore interface {
	// CheckPopulated returns nil or one of the population errors.
	CheckPopulated(ctx context.Context) error

	// GetByExactName finds a card by its case-sensitive display name.
	// Returns nil, nil when absent.
	GetByExactName(ctx context.Context, name string) (*entities.Card, error)

	// GetByExactLowercaseName finds a card by its normalized name.
	GetByExactLowercaseName(ctx context.Context, lowercaseName string) (*entities.Card, error)

	// FindByAllTokensSubstring returns every card whose normalized name
	// matches all of the LIKE patterns. Patterns use '\' as the escape character.
	FindByAllTokensSubstring(ctx context.Context, patterns []string) ([]entities.Card, error)

	// AllWords returns the word index in insertion order.
	AllWords(ctx context.Context) ([]string, error)

	// AllNames returns every display name in insertion order.
	AllNames(ctx context.Context) ([]string, error)

	// AllLowercaseNames returns every normalized name in insertion order.
	AllLowercaseNames(ctx context.Context) ([]string, error)

	// Counts returns the number of stored cards and words.
	Counts(ctx context.Context) (CatalogCounts, error)

	// Rebuild replaces the whole corpus. On failure the old corpus is kept.
	Rebuild(ctx context.Context, corpus *entities.Corpus) error

	// Close closes the store.
	Close() error
}
