package pagespeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchSendsQueryParams(t *testing.T) {
	const payload = `{"lighthouseResult":{"audits":{}}}`

	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)
	raw, err := client.Fetch(context.Background(), "https://example.com", "mobile")
	require.NoError(t, err)
	require.JSONEq(t, payload, string(raw))

	require.Equal(t, []string{"https://example.com"}, gotQuery["url"])
	require.Equal(t, []string{"test-key"}, gotQuery["key"])
	require.Equal(t, []string{"mobile"}, gotQuery["strategy"])
}

func TestFetchPassthroughIsVerbatim(t *testing.T) {
	const payload = `{"b":2,"a":1}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer server.Close()

	client := NewClient("k", server.URL)
	raw, err := client.Fetch(context.Background(), "https://example.com", "desktop")
	require.NoError(t, err)
	require.Equal(t, payload, string(raw))
}

func TestFetchUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("k", server.URL)
	_, err := client.Fetch(context.Background(), "https://example.com", "desktop")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=429")
}
