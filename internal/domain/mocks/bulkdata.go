package mocks

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/magic-finder/magic-finder/internal/domain/ports"
)

// BulkDataSource is a mock implementation of ports.BulkDataSource serving
// Payload for every bulk type.
type BulkDataSource struct {
	Payload string
	Err     error

	// Call tracking
	LookupCallCount   int
	DownloadCallCount int
}

// Lookup returns a fixed BulkData for bulkType.
func (m *BulkDataSource) Lookup(_ context.Context, bulkType string) (*ports.BulkData, error) {
	m.LookupCallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return &ports.BulkData{
		Type:        bulkType,
		DownloadURI: fmt.Sprintf("https://example.invalid/%s.json", bulkType),
		Size:        int64(len(m.Payload)),
	}, nil
}

// Download writes Payload to w.
func (m *BulkDataSource) Download(_ context.Context, _ *ports.BulkData, w io.Writer) (int64, error) {
	m.DownloadCallCount++
	if m.Err != nil {
		return 0, m.Err
	}
	return io.Copy(w, strings.NewReader(m.Payload))
}
