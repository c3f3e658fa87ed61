package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/companyinfo-cli/internal/extract"
	"github.com/sells-group/companyinfo-cli/internal/fetch"
	"github.com/sells-group/companyinfo-cli/internal/model"
	"github.com/sells-group/companyinfo-cli/internal/pipeline"
	"github.com/sells-group/companyinfo-cli/internal/resolver"
	"github.com/sells-group/companyinfo-cli/internal/store"
	"github.com/sells-group/companyinfo-cli/pkg/anthropic"
	"github.com/sells-group/companyinfo-cli/pkg/google"
)

var (
	crawlInput       string
	crawlOutJSON     string
	crawlOutCSV      string
	crawlLimit       int
	crawlConcurrency int
	crawlDryRun      bool
	crawlStorePath   string
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Run the research pipeline over an input company CSV",
	Long: `Reads a CSV with company_name and domain columns, resolves each company
to a URL set, gathers page text, runs structured extraction, and writes the
finished records as JSON and CSV.

Examples:
  # Dry run — parse the CSV only, no network calls
  companyinfo crawl --input input/input.csv --dry-run

  # Full run, first 10 companies
  companyinfo crawl --input input/input.csv --limit 10

  # Persist emitted records to SQLite alongside the file outputs
  companyinfo crawl --input input/input.csv --store records.db`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		rows, err := pipeline.ParseInputCSV(crawlInput)
		if err != nil {
			return eris.Wrap(err, "crawl: parse input")
		}
		zap.L().Info("parsed input csv", zap.Int("rows", len(rows)))

		if crawlLimit > 0 && crawlLimit < len(rows) {
			rows = rows[:crawlLimit]
		}

		if crawlDryRun {
			return printRowsJSON(rows)
		}

		// Fail fast on missing credentials before any network call.
		if err := cfg.Validate(); err != nil {
			return err
		}

		searchClient := google.NewClient(cfg.Google.APIKey, cfg.Google.EngineID)
		llmClient := anthropic.NewClient(cfg.Anthropic.Key)

		p := pipeline.New(
			resolver.New(searchClient),
			fetch.NewHTTPFetcher(),
			extract.New(llmClient, cfg.Anthropic.Model),
			pipeline.Options{
				MaxSearchResults:   cfg.Crawl.MaxSearchResults,
				MarketplaceDomains: cfg.Crawl.MarketplaceDomains,
			},
		)

		records, skipped := runBatch(ctx, p, rows)

		zap.L().Info("crawl: batch complete",
			zap.Int("total", len(rows)),
			zap.Int("emitted", len(records)),
			zap.Int64("skipped", skipped),
		)

		if err := pipeline.WriteJSON(records, crawlOutJSON); err != nil {
			return err
		}
		if err := pipeline.WriteCSV(records, crawlOutCSV); err != nil {
			return err
		}

		if crawlStorePath != "" {
			if err := persistRecords(ctx, crawlStorePath, records); err != nil {
				return err
			}
		}

		return nil
	},
}

// runBatch processes rows concurrently across companies. Per-company errors
// are logged and never abort the batch; output order matches input order.
func runBatch(ctx context.Context, p *pipeline.Pipeline, rows []pipeline.InputRow) ([]*model.CompanyRecord, int64) {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(crawlConcurrency)

	byIndex := make([]*model.CompanyRecord, len(rows))
	var skipped atomic.Int64

	for i, row := range rows {
		g.Go(func() error {
			zap.L().Info("crawl: processing company",
				zap.Int("index", i+1),
				zap.Int("total", len(rows)),
				zap.String("company_name", row.CompanyName),
				zap.String("domain", row.Domain),
			)

			rec, err := p.Run(gCtx, row)
			if err != nil {
				skipped.Add(1)
				if eris.Is(err, pipeline.ErrMissingInput) || eris.Is(err, pipeline.ErrNoResults) {
					zap.L().Warn("crawl: company skipped",
						zap.String("company_name", row.CompanyName),
						zap.Error(err),
					)
				} else {
					zap.L().Error("crawl: company failed",
						zap.String("company_name", row.CompanyName),
						zap.Error(err),
					)
				}
				return nil
			}

			byIndex[i] = rec
			return nil
		})
	}

	_ = g.Wait()

	records := make([]*model.CompanyRecord, 0, len(rows))
	for _, rec := range byIndex {
		if rec != nil {
			records = append(records, rec)
		}
	}
	return records, skipped.Load()
}

// persistRecords saves emitted records to the SQLite store.
func persistRecords(ctx context.Context, path string, records []*model.CompanyRecord) error {
	st, err := store.NewSQLite(path)
	if err != nil {
		return eris.Wrap(err, "crawl: open store")
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return err
	}

	for _, rec := range records {
		id, err := st.SaveRecord(ctx, rec)
		if err != nil {
			return eris.Wrapf(err, "crawl: save record %s", rec.Domain)
		}
		zap.L().Debug("crawl: record persisted",
			zap.String("id", id),
			zap.String("domain", rec.Domain),
		)
	}
	return nil
}

func printRowsJSON(rows []pipeline.InputRow) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return eris.Wrap(err, "crawl: marshal rows")
	}
	fmt.Println(string(data))
	return nil
}

func init() {
	crawlCmd.Flags().StringVar(&crawlInput, "input", "input/input.csv", "input CSV path (company_name, domain columns)")
	crawlCmd.Flags().StringVar(&crawlOutJSON, "out-json", "output/company_data.json", "JSON output path")
	crawlCmd.Flags().StringVar(&crawlOutCSV, "out-csv", "output/company_data.csv", "CSV output path")
	crawlCmd.Flags().IntVar(&crawlLimit, "limit", 0, "process at most N rows (0 = all)")
	crawlCmd.Flags().IntVar(&crawlConcurrency, "concurrency", 3, "companies processed concurrently")
	crawlCmd.Flags().BoolVar(&crawlDryRun, "dry-run", false, "parse the input CSV and exit")
	crawlCmd.Flags().StringVar(&crawlStorePath, "store", "", "optional SQLite path for persisting emitted records")

	rootCmd.AddCommand(crawlCmd)
}
