// Package fetch retrieves a web page and flattens it to visible text.
package fetch

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"golang.org/x/net/html"
)

// maxBodyBytes caps how much of a page is read before parsing.
const maxBodyBytes = 512 * 1024

// Fetcher fetches a single URL and returns its flattened visible text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher implements Fetcher over net/http.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher with sensible defaults.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

// Fetch retrieves targetURL and reduces the document to one string of visible
// text: every text node in document order, script and style content excluded,
// trimmed, non-empty pieces joined with single spaces.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return "", eris.Wrap(err, "fetch: create request")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; CompanyInfoBot/1.0)")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "fetch: get")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return "", eris.Errorf("fetch: status %d for %s", resp.StatusCode, targetURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", eris.Wrap(err, "fetch: read body")
	}

	return FlattenHTML(body)
}

// FlattenHTML parses an HTML document and joins its visible text nodes.
func FlattenHTML(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", eris.Wrap(err, "fetch: parse html")
	}

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	var parts []string
	for _, n := range root.Nodes {
		collectText(n, &parts)
	}

	return strings.Join(parts, " "), nil
}

// collectText walks the node tree in document order, skipping script and
// style subtrees entirely.
func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style":
			return
		}
	}
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, t)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}
