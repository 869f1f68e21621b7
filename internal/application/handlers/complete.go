package handlers

import (
	"context"
	"fmt"
	"sync"

	"github.com/magic-finder/magic-finder/internal/domain/ports"
	"github.com/magic-finder/magic-finder/internal/infrastructure/completion"
)

// CompleteHandler answers name completions from an index built on first use.
type CompleteHandler struct {
	store ports.CatalogStore

	mu    sync.Mutex
	index *completion.Index
}

// NewCompleteHandler creates a new completion handler.
func NewCompleteHandler(store ports.CatalogStore) *CompleteHandler {
	return &CompleteHandler{store: store}
}

// Handle returns up to limit card names completing prefix.
func (h *CompleteHandler) Handle(ctx context.Context, prefix string, limit int) ([]string, error) {
	idx, err := h.loadIndex(ctx)
	if err != nil {
		return nil, err
	}
	return idx.Complete(prefix, limit), nil
}

// Invalidate drops the index so the next call rebuilds it.
func (h *CompleteHandler) Invalidate() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.index = nil
}

func (h *CompleteHandler) loadIndex(ctx context.Context) (*completion.Index, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index != nil {
		return h.index, nil
	}
	if err := h.store.CheckPopulated(ctx); err != nil {
		return nil, err
	}
	names, err := h.store.AllNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading names: %w", err)
	}
	h.index = completion.NewIndex(names)
	return h.index, nil
}
