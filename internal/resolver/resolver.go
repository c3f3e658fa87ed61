// Package resolver maps a company name to candidate URLs via web search.
package resolver

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/companyinfo-cli/pkg/google"
)

// DefaultMaxResults is the number of results requested per search.
const DefaultMaxResults = 5

// Resolver resolves company names to an ordered list of search results.
type Resolver struct {
	client google.Client
}

// New creates a Resolver backed by a search client.
func New(client google.Client) *Resolver {
	return &Resolver{client: client}
}

// Resolve searches for companyName and returns results best match first. An
// empty slice with a nil error means the search succeeded but found nothing;
// the caller decides how to handle that. One attempt per call, no retries.
func (r *Resolver) Resolve(ctx context.Context, companyName string, maxResults int) ([]google.Result, error) {
	if companyName == "" {
		return nil, eris.New("resolver: empty company name")
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	results, err := r.client.Search(ctx, companyName, maxResults)
	if err != nil {
		return nil, eris.Wrap(err, "resolver: search")
	}
	return results, nil
}
