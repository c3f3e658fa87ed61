package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<html>
<head>
<title>Sample Inc.</title>
<style>body { color: red; }</style>
<script>var tracking = "ignore me";</script>
</head>
<body>
<h1>  Sample Inc.  </h1>
<script>console.log("also ignored");</script>
<p>We manufacture <b>widgets</b> in-house.</p>
<div>
	<span>Contact us</span>
</div>
</body>
</html>`

func TestFlattenHTML(t *testing.T) {
	text, err := FlattenHTML([]byte(samplePage))
	require.NoError(t, err)

	// Document order, trimmed, single-space joined, script/style excluded.
	assert.Equal(t, "Sample Inc. We manufacture widgets in-house. Contact us", text)
}

func TestFlattenHTML_EmptyBody(t *testing.T) {
	text, err := FlattenHTML([]byte(`<html><body></body></html>`))
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestFetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "CompanyInfoBot")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	f := NewHTTPFetcher()
	text, err := f.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, text, "We manufacture widgets in-house.")
	assert.NotContains(t, text, "ignore me")
	assert.NotContains(t, text, "color: red")
}

func TestFetch_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewHTTPFetcher()
	_, err := f.Fetch(context.Background(), srv.URL)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetch_Unreachable(t *testing.T) {
	f := NewHTTPFetcher()
	_, err := f.Fetch(context.Background(), "http://127.0.0.1:1/nope")
	assert.Error(t, err)
}
