package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"brickdeals/internal/catalog"
	"brickdeals/internal/models"
	"brickdeals/internal/notify"
	"brickdeals/internal/pricing"
	"brickdeals/internal/providers"
	"brickdeals/internal/services"
	"brickdeals/internal/store"
	"brickdeals/internal/structures"
)

// RunSummary is what a pipeline run reports back: counts only, never the
// datasets themselves.
type RunSummary struct {
	RunID        string  `json:"run_id"`
	Job          string  `json:"job"`
	Products     int     `json:"products"`
	Observations int     `json:"observations"`
	Deals        int     `json:"deals"`
	HotDeals     int     `json:"hot_deals"`
	Notified     int     `json:"notified"`
	Pruned       int     `json:"pruned"`
	DurationSec  float64 `json:"duration_seconds"`
}

type RunnerInterface interface {
	RunCatalogRefresh(ctx context.Context) (*RunSummary, error)
	RunPriceRefresh(ctx context.Context, maxProducts int) (*RunSummary, error)
}

// Runner executes the two pipelines as single-flow batch runs: no parallel
// fan-out across products or retailers, only a rate limiter pacing the
// iterations. Overlapping runs are serialized by the scheduler's mutex for
// scheduled jobs; a manual trigger racing a scheduled run stays safe for
// data (idempotent upserts) but can double-send notifications, a known
// gap, see DESIGN.md.
type Runner struct {
	conf      *structures.Config
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
	ingestor  catalog.IngestorInterface
	snapshot  *SnapshotManager
	catalog   store.CatalogStoreInterface
	prices    store.PriceStoreInterface
	deals     services.DealServiceInterface
	generator pricing.GeneratorInterface
	notifier  notify.NotifierInterface
	limiter   *rate.Limiter
}

func NewRunner(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface,
	ingestor catalog.IngestorInterface, snapshot *SnapshotManager, catalogStore store.CatalogStoreInterface,
	prices store.PriceStoreInterface, deals services.DealServiceInterface,
	generator pricing.GeneratorInterface, notifier notify.NotifierInterface) RunnerInterface {
	return &Runner{
		conf:      conf,
		logger:    logger,
		metrics:   metrics,
		ingestor:  ingestor,
		snapshot:  snapshot,
		catalog:   catalogStore,
		prices:    prices,
		deals:     deals,
		generator: generator,
		notifier:  notifier,
		limiter:   rate.NewLimiter(rate.Limit(conf.Pricing.IterRate), 1),
	}
}

// RunCatalogRefresh ingests the external catalog and persists it. Any batch
// failure fails the whole run; earlier batches stay committed and the next
// run's upserts converge the state.
func (r *Runner) RunCatalogRefresh(ctx context.Context) (*RunSummary, error) {
	start := time.Now()
	summary := &RunSummary{RunID: uuid.NewString(), Job: "catalog_refresh"}

	year := time.Now().Year()
	products := r.ingestor.Ingest(ctx, year-r.conf.Catalog.YearsBack, year, r.conf.Catalog.MaxPages)
	summary.Products = len(products)

	if len(products) == 0 {
		r.finish(summary, start, false)
		return summary, fmt.Errorf("catalog refresh: source returned no products")
	}

	if err := r.catalog.SaveAll(ctx, products); err != nil {
		r.finish(summary, start, false)
		return summary, fmt.Errorf("catalog refresh: %w", err)
	}

	if err := r.snapshot.Save(r.conf.Catalog.SnapshotPath, products); err != nil {
		// The database save already succeeded; a stale snapshot only costs
		// a slower cold start.
		r.logger.Warnf(providers.TypePipeline, "Snapshot save failed: %s", err)
	}

	r.finish(summary, start, true)
	return summary, nil
}

// RunPriceRefresh walks the first maxProducts catalog entries crossed with
// the fixed retailer list: observe, derive, fan out, then prune. Iterations
// are paced by the rate limiter to bound the external call rate.
func (r *Runner) RunPriceRefresh(ctx context.Context, maxProducts int) (*RunSummary, error) {
	start := time.Now()
	summary := &RunSummary{RunID: uuid.NewString(), Job: "price_refresh"}

	products, err := r.catalog.First(ctx, maxProducts)
	if err != nil {
		r.finish(summary, start, false)
		return summary, fmt.Errorf("price refresh: load catalog slice: %w", err)
	}
	summary.Products = len(products)

	for _, product := range products {
		for _, retailer := range models.Retailers {
			if err := r.limiter.Wait(ctx); err != nil {
				r.finish(summary, start, false)
				return summary, fmt.Errorf("price refresh: %w", err)
			}

			obs := r.generator.Observe(product, retailer, time.Now())
			if err := r.prices.Upsert(ctx, obs); err != nil {
				r.finish(summary, start, false)
				return summary, fmt.Errorf("price refresh: persist observation: %w", err)
			}
			summary.Observations++

			deal, err := r.deals.Derive(ctx, obs)
			if err != nil {
				r.finish(summary, start, false)
				return summary, fmt.Errorf("price refresh: %w", err)
			}
			if deal == nil {
				continue
			}
			summary.Deals++
			r.metrics.IncDealsDerived(string(deal.Retailer))

			if deal.PercentOff >= r.deals.HotThreshold() {
				summary.HotDeals++
				summary.Notified += r.notifier.NotifyHotDeal(ctx, deal)
			}
		}
	}

	pruned, err := r.deals.PruneStale(ctx)
	if err != nil {
		r.finish(summary, start, false)
		return summary, fmt.Errorf("price refresh: prune: %w", err)
	}
	summary.Pruned = pruned

	r.finish(summary, start, true)
	return summary, nil
}

func (r *Runner) finish(summary *RunSummary, start time.Time, success bool) {
	summary.DurationSec = time.Since(start).Seconds()
	r.metrics.IncPipelineRuns(summary.Job, success)
	r.metrics.ObservePipelineDuration(summary.Job, time.Since(start))
}
