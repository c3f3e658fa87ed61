// Package pipeline orchestrates the per-company flow: resolve a URL set,
// fetch and accumulate page text, run extraction once, emit the record.
package pipeline

import (
	"context"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/companyinfo-cli/internal/fetch"
	"github.com/sells-group/companyinfo-cli/internal/model"
	"github.com/sells-group/companyinfo-cli/pkg/google"
)

// Skip reasons. Callers log these as warnings; they never abort a batch.
var (
	// ErrMissingInput marks a row with neither company name nor domain.
	ErrMissingInput = eris.New("pipeline: row has neither company_name nor domain")
	// ErrNoResults marks a company whose search returned nothing.
	ErrNoResults = eris.New("pipeline: no search results")
)

// Resolver resolves a company name to an ordered list of search results.
type Resolver interface {
	Resolve(ctx context.Context, companyName string, maxResults int) ([]google.Result, error)
}

// Extractor fills a record's structured fields from its accumulated text.
type Extractor interface {
	Extract(ctx context.Context, rec *model.CompanyRecord) error
}

// Options tunes URL selection.
type Options struct {
	// MaxSearchResults is the result count requested per search.
	MaxSearchResults int
	// MarketplaceDomains lists third-party marketplace hosts whose pages are
	// fetched alongside the official site.
	MarketplaceDomains []string
}

// DefaultMarketplaceDomains is the built-in marketplace allowlist.
var DefaultMarketplaceDomains = []string{"amazon.com", "walmart.com"}

// Pipeline drives one company row from input to emitted record.
type Pipeline struct {
	resolver  Resolver
	fetcher   fetch.Fetcher
	extractor Extractor
	opts      Options
}

// New creates a Pipeline. Zero-value options fall back to defaults.
func New(resolver Resolver, fetcher fetch.Fetcher, extractor Extractor, opts Options) *Pipeline {
	if opts.MaxSearchResults <= 0 {
		opts.MaxSearchResults = 5
	}
	if len(opts.MarketplaceDomains) == 0 {
		opts.MarketplaceDomains = DefaultMarketplaceDomains
	}
	return &Pipeline{
		resolver:  resolver,
		fetcher:   fetcher,
		extractor: extractor,
		opts:      opts,
	}
}

// target is one page selected for fetching.
type target struct {
	url    string
	source model.PageSource
}

// Run processes a single input row. It returns ErrMissingInput or
// ErrNoResults for skipped rows and a finished record otherwise. Fetch
// failures for individual pages are logged and do not fail the company;
// extraction runs exactly once, after every selected page has been fetched.
func (p *Pipeline) Run(ctx context.Context, row InputRow) (*model.CompanyRecord, error) {
	rec, targets, err := p.plan(ctx, row)
	if err != nil {
		return nil, err
	}

	for _, t := range targets {
		text, err := p.fetcher.Fetch(ctx, t.url)
		if err != nil {
			zap.L().Warn("pipeline: page fetch failed",
				zap.String("domain", rec.Domain),
				zap.String("url", t.url),
				zap.String("source", string(t.source)),
				zap.Error(err),
			)
			continue
		}
		rec.AppendText(text)
	}

	if err := p.extractor.Extract(ctx, rec); err != nil {
		// The record still carries its identity and raw text; emit it rather
		// than dropping the company.
		zap.L().Error("pipeline: extraction call failed",
			zap.String("domain", rec.Domain),
			zap.Error(err),
		)
	}

	return rec, nil
}

// plan creates the record and selects the pages to fetch for one row. A
// provided domain bypasses search entirely; otherwise the top result is the
// official page and results 2-5 contribute marketplace pages.
func (p *Pipeline) plan(ctx context.Context, row InputRow) (*model.CompanyRecord, []target, error) {
	if row.Domain != "" {
		pageURL := ensureScheme(row.Domain)
		host, err := hostOf(pageURL)
		if err != nil {
			return nil, nil, eris.Wrapf(err, "pipeline: bad domain %q", row.Domain)
		}
		name := row.CompanyName
		if name == "" {
			name = host
		}
		rec := model.NewCompanyRecord(host, name)
		return rec, []target{{url: pageURL, source: model.SourceProvided}}, nil
	}

	if row.CompanyName == "" {
		return nil, nil, ErrMissingInput
	}

	results, err := p.resolver.Resolve(ctx, row.CompanyName, p.opts.MaxSearchResults)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "pipeline: resolve %q", row.CompanyName)
	}
	if len(results) == 0 {
		return nil, nil, eris.Wrapf(ErrNoResults, "pipeline: %q", row.CompanyName)
	}

	topURL := results[0].Link
	host, err := hostOf(topURL)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "pipeline: bad top result %q", topURL)
	}

	rec := model.NewCompanyRecord(host, row.CompanyName)
	targets := []target{{url: topURL, source: model.SourceOfficial}}

	// Marketplace pages among the next four results corroborate the official
	// site; their text merges into the same record.
	for _, res := range rest(results, 1, 5) {
		if res.Link == "" {
			continue
		}
		resHost, err := hostOf(res.Link)
		if err != nil {
			continue
		}
		if p.isMarketplace(resHost) {
			targets = append(targets, target{url: res.Link, source: model.SourceThirdParty})
		}
	}

	return rec, targets, nil
}

// isMarketplace reports whether host belongs to a configured marketplace.
func (p *Pipeline) isMarketplace(host string) bool {
	for _, m := range p.opts.MarketplaceDomains {
		if strings.Contains(host, m) {
			return true
		}
	}
	return false
}

// rest returns results[lo:hi] clamped to the slice bounds.
func rest(results []google.Result, lo, hi int) []google.Result {
	if lo >= len(results) {
		return nil
	}
	if hi > len(results) {
		hi = len(results)
	}
	return results[lo:hi]
}

// ensureScheme prepends https:// to bare hosts.
func ensureScheme(raw string) string {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

// hostOf extracts the host component of an absolute URL.
func hostOf(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", eris.Wrapf(err, "pipeline: parse url %q", rawURL)
	}
	if u.Host == "" {
		return "", eris.Errorf("pipeline: url %q has no host", rawURL)
	}
	return u.Host, nil
}
