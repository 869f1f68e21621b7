// Package scryfall downloads bulk card data from the Scryfall API.
package scryfall

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/magic-finder/magic-finder/internal/domain/ports"
	"github.com/magic-finder/magic-finder/internal/infrastructure/config"
)

// ErrUnknownBulkType is returned when the API has no dump of the requested type.
var ErrUnknownBulkType = errors.New("unknown bulk data type")

// Client implements ports.BulkDataSource over HTTP.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
	retries   int
	backoff   time.Duration
	logger    *slog.Logger
}

var _ ports.BulkDataSource = (*Client)(nil)

// NewClient creates a Client from configuration.
func NewClient(cfg config.ScryfallConfig, logger *slog.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	retries := cfg.Retries
	if retries < 1 {
		retries = 1
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		retries:   retries,
		backoff:   time.Second,
		logger:    logger,
	}
}

// WithBackoff sets the base delay between attempts.
func (c *Client) WithBackoff(d time.Duration) *Client {
	c.backoff = d
	return c
}

type bulkDataResponse struct {
	Object      string `json:"object"`
	Type        string `json:"type"`
	DownloadURI string `json:"download_uri"`
	Size        int64  `json:"size"`
	// Populated for "error" objects
	Details string `json:"details"`
}

// Lookup resolves bulkType to its current download location.
func (c *Client) Lookup(ctx context.Context, bulkType string) (*ports.BulkData, error) {
	reqURL := fmt.Sprintf("%s/bulk-data/%s", c.baseURL, url.PathEscape(bulkType))

	resp, err := c.get(ctx, reqURL, "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBulkType, bulkType)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scryfall API returned status %d", resp.StatusCode)
	}

	var body bulkDataResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode bulk data response: %w", err)
	}
	if body.DownloadURI == "" {
		return nil, fmt.Errorf("bulk data %s has no download_uri", bulkType)
	}

	return &ports.BulkData{
		Type:        body.Type,
		DownloadURI: body.DownloadURI,
		Size:        body.Size,
	}, nil
}

// Download streams the dump to w. Attempts are retried only until the first
// byte reaches w.
func (c *Client) Download(ctx context.Context, data *ports.BulkData, w io.Writer) (int64, error) {
	c.logger.Info("downloading bulk data", "type", data.Type, "uri", data.DownloadURI, "size", data.Size)

	resp, err := c.get(ctx, data.DownloadURI, "application/json")
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP %d for %s", resp.StatusCode, data.DownloadURI)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("copying bulk data: %w", err)
	}
	return n, nil
}

// get issues a GET, retrying transport errors and 5xx/429 responses with
// exponential backoff.
func (c *Client) get(ctx context.Context, reqURL, accept string) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt < c.retries; attempt++ {
		if attempt > 0 {
			backoff := c.backoff * time.Duration(1<<uint(attempt-1))
			c.logger.Debug("retrying request", "url", reqURL, "attempt", attempt+1, "backoff", backoff)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", accept)
		if c.userAgent != "" {
			req.Header.Set("User-Agent", c.userAgent)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d for %s", resp.StatusCode, reqURL)
			continue
		}
		return resp, nil
	}
	return nil, fmt.Errorf("request %s failed after %d attempts: %w", reqURL, c.retries, lastErr)
}
