package scryfall

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magic-finder/magic-finder/internal/domain/ports"
	"github.com/magic-finder/magic-finder/internal/infrastructure/config"
)

func newTestClient(baseURL string, retries int) *Client {
	return NewClient(config.ScryfallConfig{
		BaseURL:        baseURL,
		UserAgent:      "magic-finder-test",
		TimeoutSeconds: 5,
		Retries:        retries,
	}, nil).WithBackoff(time.Millisecond)
}

func TestClient_Lookup(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "magic-finder-test", r.Header.Get("User-Agent"))
		switch r.URL.Path {
		case "/bulk-data/default_cards":
			fmt.Fprintf(w, `{"object":"bulk_data","type":"default_cards","download_uri":"%s/dump.json","size":42}`, server.URL)
		case "/bulk-data/empty":
			fmt.Fprint(w, `{"object":"bulk_data","type":"empty"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"object":"error","details":"not found"}`)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL, 1)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		data, err := client.Lookup(ctx, "default_cards")
		require.NoError(t, err)
		assert.Equal(t, "default_cards", data.Type)
		assert.Equal(t, server.URL+"/dump.json", data.DownloadURI)
		assert.Equal(t, int64(42), data.Size)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := client.Lookup(ctx, "nope")
		assert.ErrorIs(t, err, ErrUnknownBulkType)
	})

	t.Run("missing download uri", func(t *testing.T) {
		_, err := client.Lookup(ctx, "empty")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no download_uri")
	})
}

func TestClient_Download(t *testing.T) {
	payload := `[{"id":"1","name":"Shock"}]`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, payload)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 1)

	var buf bytes.Buffer
	n, err := client.Download(context.Background(), bulk(server.URL), &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), n)
	assert.Equal(t, payload, buf.String())
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, "[]")
	}))
	defer server.Close()

	var buf bytes.Buffer
	_, err := newTestClient(server.URL, 3).Download(context.Background(), bulk(server.URL), &buf)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, "[]", buf.String())
}

func TestClient_GivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 2).Download(context.Background(), bulk(server.URL), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_ClientErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 3).Download(context.Background(), bulk(server.URL), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 403")
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(server.URL, 3).Lookup(ctx, "default_cards")
	assert.ErrorIs(t, err, context.Canceled)
}

func bulk(baseURL string) *ports.BulkData {
	return &ports.BulkData{Type: "default_cards", DownloadURI: baseURL + "/dump.json"}
}
