package ports

import (
	"context"
	"io"
)

// BulkData describes a downloadable catalog dump.
type BulkData struct {
	Type        string
	DownloadURI string
	Size        int64
}

// BulkDataSource locates and downloads catalog dumps.
type BulkDataSource interface {
	// Lookup resolves a bulk data type (e.g. "default_cards") to its download.
	Lookup(ctx context.Context, bulkType string) (*BulkData, error)

	// Download streams the dump to w and returns the bytes written.
	Download(ctx context.Context, data *BulkData, w io.Writer) (int64, error)
}
