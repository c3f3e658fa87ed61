package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "test-cx", r.URL.Query().Get("cx"))
		assert.Equal(t, "Sample Inc.", r.URL.Query().Get("q"))
		assert.Equal(t, "5", r.URL.Query().Get("num"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(searchResponse{
			Items: []Result{
				{Title: "Sample Inc. — Home", Link: "https://sample.com/home", Snippet: "Official site"},
				{Title: "Sample Inc. on Amazon", Link: "https://amazon.com/sample-page", Snippet: "Shop products"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient("test-key", "test-cx", WithBaseURL(srv.URL))
	results, err := client.Search(context.Background(), "Sample Inc.", 5)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "https://sample.com/home", results[0].Link)
	assert.Equal(t, "Sample Inc. — Home", results[0].Title)
	assert.Equal(t, "Shop products", results[1].Snippet)
}

func TestSearch_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// A success response with no items carries no items key at all.
		_, _ = w.Write([]byte(`{"kind": "customsearch#search"}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", "test-cx", WithBaseURL(srv.URL))
	results, err := client.Search(context.Background(), "Nonexistent Corp", 5)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": "invalid API key"}`))
	}))
	defer srv.Close()

	client := NewClient("bad-key", "test-cx", WithBaseURL(srv.URL))
	results, err := client.Search(context.Background(), "test query", 5)

	assert.Error(t, err)
	assert.Nil(t, results)
	assert.Contains(t, err.Error(), "403")
}

func TestSearch_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient("test-key", "test-cx", WithBaseURL(srv.URL))
	results, err := client.Search(ctx, "test", 5)

	assert.Error(t, err)
	assert.Nil(t, results)
}
