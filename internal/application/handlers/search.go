package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/magic-finder/magic-finder/internal/domain/entities"
	"github.com/magic-finder/magic-finder/internal/domain/ports"
	"github.com/magic-finder/magic-finder/internal/domain/services"
)

// SearchOutcome classifies a search.
type SearchOutcome int

// Search outcomes.
const (
	OutcomeExact SearchOutcome = iota
	OutcomeNoExact
	OutcomeAmbiguous
	OutcomeDidYouMean
)

// SearchHandler runs one-shot searches.
type SearchHandler struct {
	store    ports.CatalogStore
	resolver *services.ResolverService
	display  *services.DisplayService
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(store ports.CatalogStore, resolver *services.ResolverService, display *services.DisplayService) *SearchHandler {
	return &SearchHandler{
		store:    store,
		resolver: resolver,
		display:  display,
	}
}

// SearchResult contains the result of a search.
type SearchResult struct {
	Outcome     SearchOutcome
	Query       string
	Card        *entities.Card  // Set for OutcomeExact
	Text        string          // Display string for Card
	Cards       []entities.Card // Set for OutcomeAmbiguous, sorted by name
	Words       []string        // Set for OutcomeDidYouMean
	Passthrough []string
}

// Handle resolves tokens. With exact set, the tokens joined by spaces must
// be a display name.
func (h *SearchHandler) Handle(ctx context.Context, tokens []string, exact bool) (*SearchResult, error) {
	query := strings.Join(tokens, " ")
	if strings.TrimSpace(query) == "" {
		return nil, services.ErrEmptyQuery
	}

	if err := h.store.CheckPopulated(ctx); err != nil {
		return nil, err
	}

	if exact {
		card, err := h.resolver.ResolveExact(ctx, tokens)
		if errors.Is(err, services.ErrNoExactMatch) {
			return &SearchResult{Outcome: OutcomeNoExact, Query: query}, nil
		}
		if err != nil {
			return nil, err
		}
		return h.exactResult(ctx, query, card)
	}

	match, err := h.resolver.Resolve(ctx, tokens)
	if err != nil {
		return nil, err
	}

	switch m := match.(type) {
	case entities.ExactMatch:
		return h.exactResult(ctx, query, &m.Card)
	case entities.Ambiguous:
		return &SearchResult{Outcome: OutcomeAmbiguous, Query: query, Cards: m.Cards}, nil
	case entities.Suggestions:
		return &SearchResult{
			Outcome:     OutcomeDidYouMean,
			Query:       query,
			Words:       m.Words,
			Passthrough: m.Passthrough,
		}, nil
	default:
		return nil, fmt.Errorf("unexpected match result %T", match)
	}
}

func (h *SearchHandler) exactResult(ctx context.Context, query string, card *entities.Card) (*SearchResult, error) {
	text, err := h.display.Compose(ctx, card)
	if err != nil {
		return nil, fmt.Errorf("composing card: %w", err)
	}
	return &SearchResult{Outcome: OutcomeExact, Query: query, Card: card, Text: text}, nil
}
