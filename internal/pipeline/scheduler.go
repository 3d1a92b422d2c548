package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron"

	"brickdeals/internal/pipeline/interfaces"
	"brickdeals/internal/providers"
	"brickdeals/internal/store"
	"brickdeals/internal/structures"
)

// Scheduler owns the two recurring jobs: the daily catalog refresh and the
// hourly price-and-deal refresh. One mutex serializes scheduled runs so a
// slow catalog ingest never interleaves with a pricing cycle.
type Scheduler struct {
	config   *structures.Config
	logger   providers.Logger
	runner   RunnerInterface
	snapshot *SnapshotManager
	catalog  store.CatalogStoreInterface
	cron     *cron.Cron
	opsMu    sync.Mutex
}

func NewScheduler(config *structures.Config, logger providers.Logger, runner RunnerInterface, snapshot *SnapshotManager, catalogStore store.CatalogStoreInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:   config,
		logger:   logger,
		runner:   runner,
		snapshot: snapshot,
		catalog:  catalogStore,
	}
}

func (s *Scheduler) Init() {
	s.cron = cron.New()

	_ = s.cron.AddFunc(fmt.Sprintf("@every %s", s.config.Catalog.Interval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), s.config.Catalog.RunTimeout)
		defer cancel()

		summary, err := s.runner.RunCatalogRefresh(ctx)
		if err != nil {
			s.logger.Errorf(providers.TypePipeline, "Catalog refresh %s failed: %s", summary.RunID, err)
			return
		}
		s.logger.Infof(providers.TypePipeline, "Catalog refresh %s: %d products in %.1fs", summary.RunID, summary.Products, summary.DurationSec)
	})

	_ = s.cron.AddFunc(fmt.Sprintf("@every %s", s.config.Pricing.Interval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), s.config.Pricing.Timeout)
		defer cancel()

		summary, err := s.runner.RunPriceRefresh(ctx, s.config.Pricing.MaxProducts)
		if err != nil {
			s.logger.Errorf(providers.TypePipeline, "Price refresh %s failed: %s", summary.RunID, err)
			return
		}
		s.logger.Infof(providers.TypePipeline, "Price refresh %s: %d observations, %d deals (%d hot), %d notified, %d pruned in %.1fs",
			summary.RunID, summary.Observations, summary.Deals, summary.HotDeals, summary.Notified, summary.Pruned, summary.DurationSec)
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Restore seeds an empty catalog from the last ingest snapshot, so a fresh
// deployment can start pricing before the first daily refresh fires.
func (s *Scheduler) Restore() error {
	ctx := context.Background()

	count, err := s.catalog.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products, err := s.snapshot.Load(s.config.Catalog.SnapshotPath)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return nil
	}

	if err := s.catalog.SaveAll(ctx, products); err != nil {
		return err
	}
	s.logger.Infof(providers.TypePipeline, "Restored %d products from snapshot", len(products))
	return nil
}
