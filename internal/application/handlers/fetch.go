package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/magic-finder/magic-finder/internal/domain/ports"
)

// FetchHandler downloads bulk card data into the data directory.
type FetchHandler struct {
	source  ports.BulkDataSource
	dataDir string
	logger  *slog.Logger
}

// NewFetchHandler creates a new fetch handler.
func NewFetchHandler(source ports.BulkDataSource, dataDir string, logger *slog.Logger) *FetchHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FetchHandler{
		source:  source,
		dataDir: dataDir,
		logger:  logger,
	}
}

// FetchResult contains the result of a download.
type FetchResult struct {
	Type  string
	Path  string
	Bytes int64
}

// Handle downloads the dump of bulkType to <dataDir>/<bulkType>.json. The
// previous download is replaced only once the new one is complete.
func (h *FetchHandler) Handle(ctx context.Context, bulkType string) (*FetchResult, error) {
	data, err := h.source.Lookup(ctx, bulkType)
	if err != nil {
		return nil, fmt.Errorf("looking up bulk data: %w", err)
	}

	if err := os.MkdirAll(h.dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	tmp, err := os.CreateTemp(h.dataDir, ".download-*.json")
	if err != nil {
		return nil, fmt.Errorf("creating download file: %w", err)
	}
	tmpPath := tmp.Name()

	n, err := h.source.Download(ctx, data, tmp)
	closeErr := tmp.Close()
	if err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("downloading bulk data: %w", err)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("closing download file: %w", closeErr)
	}

	dest := filepath.Join(h.dataDir, bulkType+".json")
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("saving download: %w", err)
	}

	h.logger.Info("bulk data downloaded", "type", bulkType, "path", dest, "bytes", n)
	return &FetchResult{Type: bulkType, Path: dest, Bytes: n}, nil
}
