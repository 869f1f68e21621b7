package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magic-finder/magic-finder/internal/domain/entities"
	"github.com/magic-finder/magic-finder/internal/domain/ports"
	"github.com/magic-finder/magic-finder/internal/domain/services"
)

// Prompts shown by the interactive flow.
const (
	PromptCardName   = "Input card name"
	PromptDidYouMean = "Did you mean"
)

// InteractiveHandler runs the prompt, pick and show loop against a Presenter.
type InteractiveHandler struct {
	store     ports.CatalogStore
	resolver  *services.ResolverService
	display   *services.DisplayService
	presenter ports.Presenter
	logger    *slog.Logger
}

// NewInteractiveHandler creates a new interactive handler.
func NewInteractiveHandler(store ports.CatalogStore, resolver *services.ResolverService, display *services.DisplayService, presenter ports.Presenter, logger *slog.Logger) *InteractiveHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &InteractiveHandler{
		store:     store,
		resolver:  resolver,
		display:   display,
		presenter: presenter,
		logger:    logger,
	}
}

// Handle asks for a card name and shows the card the user settles on.
// Closing a prompt returns ports.ErrSelectionCancelled.
func (h *InteractiveHandler) Handle(ctx context.Context) (*entities.Card, error) {
	if err := h.store.CheckPopulated(ctx); err != nil {
		if msg := StoreErrorMessage(err); msg != "" {
			h.showError(ctx, msg)
		}
		return nil, err
	}

	input, err := h.presenter.RenderSingleChoice(ctx, PromptCardName)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input) == "" {
		h.showError(ctx, "You need to put a search string in")
		return nil, services.ErrEmptyQuery
	}

	match, err := h.resolver.Resolve(ctx, []string{input})
	if err != nil {
		return nil, err
	}
	return h.handleMatch(ctx, match, true)
}

func (h *InteractiveHandler) handleMatch(ctx context.Context, match entities.MatchResult, allowRequery bool) (*entities.Card, error) {
	switch m := match.(type) {
	case entities.ExactMatch:
		return h.show(ctx, &m.Card)

	case entities.Ambiguous:
		labels := make([]string, len(m.Cards))
		for i := range m.Cards {
			labels[i] = m.Cards[i].Label()
		}
		selected, err := h.presenter.RenderList(ctx, PromptDidYouMean, labels)
		if err != nil {
			return nil, err
		}
		card, err := h.resolver.ResolveSelection(ctx, selected)
		if err != nil {
			return nil, err
		}
		return h.show(ctx, card)

	case entities.Suggestions:
		if len(m.Words) == 0 {
			h.showError(ctx, "There are no cards with that word")
			return nil, ErrNothingFound
		}
		if !allowRequery {
			return nil, ErrNothingFound
		}

		selected, err := h.presenter.RenderList(ctx, PromptDidYouMean, m.Words)
		if err != nil {
			return nil, err
		}
		tokens := services.Requery(selected, m.Passthrough)
		h.logger.Debug("re-querying with suggestion", "tokens", tokens)

		next, err := h.resolver.Resolve(ctx, tokens)
		if err != nil {
			return nil, err
		}
		if _, ok := next.(entities.Suggestions); ok {
			h.showError(ctx, fmt.Sprintf("Couldn't find any cards with the strings %q.", strings.Join(tokens, " ")))
			return nil, ErrNothingFound
		}
		return h.handleMatch(ctx, next, false)

	default:
		return nil, fmt.Errorf("unexpected match result %T", match)
	}
}

func (h *InteractiveHandler) show(ctx context.Context, card *entities.Card) (*entities.Card, error) {
	text, err := h.display.Compose(ctx, card)
	if err != nil {
		return nil, fmt.Errorf("composing card: %w", err)
	}
	if err := h.presenter.ShowCard(ctx, text); err != nil {
		return nil, fmt.Errorf("showing card: %w", err)
	}
	return card, nil
}

func (h *InteractiveHandler) showError(ctx context.Context, message string) {
	if err := h.presenter.ShowError(ctx, message); err != nil {
		h.logger.Warn("failed to show error", "message", message, "error", err)
	}
}
