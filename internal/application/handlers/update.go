package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/magic-finder/magic-finder/internal/domain/ports"
	"github.com/magic-finder/magic-finder/internal/domain/services"
	"github.com/magic-finder/magic-finder/internal/infrastructure/parsers"
)

// UpdateHandler rebuilds the catalog from a bulk data file.
type UpdateHandler struct {
	normalizer *services.NormalizerService
	store      ports.CatalogStore
	resolver   *services.ResolverService
	logger     *slog.Logger
}

// NewUpdateHandler creates a new update handler.
func NewUpdateHandler(normalizer *services.NormalizerService, store ports.CatalogStore, resolver *services.ResolverService, logger *slog.Logger) *UpdateHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &UpdateHandler{
		normalizer: normalizer,
		store:      store,
		resolver:   resolver,
		logger:     logger,
	}
}

// UpdateOptions controls update behavior.
type UpdateOptions struct {
	Format string // "json", "jsonl", or "auto"
}

// UpdateResult contains the result of an update.
type UpdateResult struct {
	Records    int
	Cards      int
	Words      int
	Filtered   int
	Duplicates int
}

// Handle parses filePath and replaces the catalog with its contents. Any
// malformed record aborts the update and leaves the old catalog in place.
func (h *UpdateHandler) Handle(ctx context.Context, filePath string, opts UpdateOptions) (*UpdateResult, error) {
	var parser parsers.Parser
	if opts.Format == "" || opts.Format == "auto" {
		parser = parsers.ForFile(filePath)
	} else {
		parser = parsers.ForFormat(opts.Format)
	}

	if parser == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	builder := h.normalizer.NewBuilder()
	err = parser.Stream(file, func(rec parsers.RawCard) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return builder.Add(rec)
	})
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	normalized := builder.Result()
	if err := h.store.Rebuild(ctx, normalized.Corpus); err != nil {
		return nil, fmt.Errorf("rebuilding catalog: %w", err)
	}
	if h.resolver != nil {
		h.resolver.ResetCache()
	}

	result := &UpdateResult{
		Records:    normalized.Records,
		Cards:      len(normalized.Corpus.Cards),
		Words:      len(normalized.Corpus.Words),
		Filtered:   normalized.Filtered,
		Duplicates: normalized.Duplicates,
	}
	h.logger.Info("catalog updated",
		"file", filePath,
		"records", result.Records,
		"cards", result.Cards,
		"words", result.Words,
		"filtered", result.Filtered,
		"duplicates", result.Duplicates,
	)
	return result, nil
}
