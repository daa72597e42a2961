// =============================================================================
// CAPPS Converter - Pipeline Orchestration
// =============================================================================
//
// Runs the conversion pipeline for one batch:
//
//   serials export  -> detail lookup table (eager, once)
//   purchases export -> per row: join -> filter -> brand/article/color -> item
//   surviving items -> CAPPS document
//
// The run is single-threaded and a pure function of (inputs, configuration,
// now). Fatal input errors abort before any output exists; everything else
// degrades and is accounted for in the summary. The returned document is
// all-or-nothing: callers only see bytes from a completed run.
//
// =============================================================================

package converter

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/storeops/capps-converter/internal/brand"
	"github.com/storeops/capps-converter/internal/capps"
	"github.com/storeops/capps-converter/internal/config"
	"github.com/storeops/capps-converter/internal/csvreader"
	"github.com/storeops/capps-converter/internal/filter"
	"github.com/storeops/capps-converter/internal/join"
	"github.com/storeops/capps-converter/internal/mapping"
	"github.com/storeops/capps-converter/internal/types"
)

// Converter runs the pipeline with a fixed configuration and resolver.
type Converter struct {
	cfg      *config.Config
	resolver *brand.Resolver
	log      zerolog.Logger

	// now is injectable so the recency window is testable.
	now func() time.Time
}

// Result is the outcome of one completed run.
type Result struct {
	// Document is the serialized CAPPS upload, ready to write or upload.
	Document []byte

	// Summary is the per-run accounting surfaced to the operator.
	Summary *types.Summary

	// ResolverStats counts how brands were resolved during the run.
	ResolverStats brand.Stats
}

// New creates a converter. The resolver carries the brand cache and
// fallback chain; the configuration carries everything else.
func New(cfg *config.Config, resolver *brand.Resolver, log zerolog.Logger) *Converter {
	return &Converter{
		cfg:      cfg,
		resolver: resolver,
		log:      log,
		now:      time.Now,
	}
}

// WithClock overrides the run's notion of "now". Used by tests.
func (c *Converter) WithClock(now func() time.Time) *Converter {
	c.now = now
	return c
}

// Run converts one purchases/serials export pair into a CAPPS document.
func (c *Converter) Run(ctx context.Context, purchasesPath, serialsPath string) (*Result, error) {
	summary := types.NewSummary()

	// Detail table first: a broken serials file must fail before any
	// output-side work happens.
	details, err := csvreader.ReadDetails(serialsPath)
	if err != nil {
		return nil, fmt.Errorf("loading serials data: %w", err)
	}
	table := join.NewTable(details)
	summary.DetailRows = table.Len()
	c.log.Info().Int("serials", table.Len()).Str("file", serialsPath).Msg("loaded serials data")

	primaries, rowErrs, err := csvreader.ReadPurchases(purchasesPath)
	if err != nil {
		return nil, fmt.Errorf("loading purchases data: %w", err)
	}
	summary.PrimaryRows = len(primaries) + len(rowErrs)
	summary.MalformedRows = len(rowErrs)
	for _, re := range rowErrs {
		c.log.Warn().Int("row", re.Row).Str("reason", re.Message).Msg("skipping malformed purchase row")
	}

	now := c.now()
	var items []types.OutputItem

	for _, primary := range primaries {
		rec := table.Join(primary)

		ok, reason := filter.Accept(rec, c.cfg.Filters, now)
		if !ok {
			summary.Reject(reason)
			c.log.Debug().
				Str("transaction", primary.TransactionNumber).
				Str("reason", string(reason)).
				Msg("filtered out")
			continue
		}

		items = append(items, c.buildItem(ctx, rec))
		summary.Included++
	}

	doc := capps.BuildDocument(items, capps.Header{
		LicenseNumber: c.cfg.LicenseNumber,
		EmployeeName:  c.cfg.EmployeeName,
	})

	result := &Result{
		Document:      capps.Marshal(doc),
		Summary:       summary,
		ResolverStats: c.resolver.Stats(),
	}

	c.logSummary(result)
	return result, nil
}

// buildItem enriches one accepted record into its output form. Brand and
// article resolution cannot fail; their worst cases are defined fallbacks.
func (c *Converter) buildItem(ctx context.Context, rec types.EnrichedRecord) types.OutputItem {
	description := rec.Detail.Description

	article := mapping.ArticleType(rec.Primary.CategoryID, rec.Detail.SubcategoryID)
	if article == mapping.FallbackArticle {
		c.log.Debug().
			Str("category", rec.Primary.CategoryID).
			Str("subcategory", rec.Detail.SubcategoryID).
			Msg("no article mapping, using fallback")
	}

	return types.OutputItem{
		TransactionTime: capps.FormatTransactionTime(rec.Primary.Time),
		TransactionType: "BUY",
		LoanBuyNumber:   rec.Primary.TransactionNumber,
		Amount:          rec.Primary.RawAmount,
		Article:         article,
		Brand:           c.resolver.Resolve(ctx, description),
		Model:           description,
		SerialNumber:    rec.Primary.SerialNumber,
		Description:     description,
		Color:           mapping.Color(description),
	}
}

func (c *Converter) logSummary(result *Result) {
	event := c.log.Info().
		Int("included", result.Summary.Included).
		Int("filtered", result.Summary.TotalFiltered()).
		Int("malformed", result.Summary.MalformedRows).
		Int("brand_cache_hits", result.ResolverStats.CacheHits).
		Int("brand_unresolved", result.ResolverStats.Unresolved)
	for name, n := range result.ResolverStats.ByStrategy {
		event = event.Int("brand_"+name, n)
	}
	event.Msg("conversion complete")

	for reason, n := range result.Summary.Filtered {
		c.log.Info().Str("reason", string(reason)).Int("count", n).Msg("filtered")
	}
}
