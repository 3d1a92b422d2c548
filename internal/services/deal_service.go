package services

import (
	"context"
	"fmt"
	"time"

	"brickdeals/internal/models"
	"brickdeals/internal/store"
	"brickdeals/internal/structures"
)

type DealServiceInterface interface {
	Derive(ctx context.Context, obs *models.PriceObservation) (*models.Deal, error)
	PruneStale(ctx context.Context) (int, error)
	HotThreshold() int
}

// DealService turns price observations into persisted deals and prunes the
// ones no cycle has refreshed within the retention window.
type DealService struct {
	deals       store.DealStoreInterface
	minDiscount int
	hot         int
	retention   time.Duration
}

func NewDealService(conf *structures.Config, deals store.DealStoreInterface) DealServiceInterface {
	return &DealService{
		deals:       deals,
		minDiscount: conf.Deals.MinDiscount,
		hot:         conf.Deals.HotThreshold,
		retention:   conf.Deals.Retention,
	}
}

// Derive gates an observation on minimum discount and stock. It returns nil
// without error when the observation does not qualify; otherwise the deal is
// upserted under the observation's composite key and returned so the caller
// can decide about notification fanout.
func (ds *DealService) Derive(ctx context.Context, obs *models.PriceObservation) (*models.Deal, error) {
	percentOff := models.PercentOff(obs.RetailPrice, obs.Price)
	if percentOff < ds.minDiscount || !obs.InStock {
		return nil, nil
	}

	deal := &models.Deal{
		PriceObservation: *obs,
		PercentOff:       percentOff,
		Savings:          models.Savings(obs.RetailPrice, obs.Price),
	}
	if err := ds.deals.Upsert(ctx, deal); err != nil {
		return nil, fmt.Errorf("persist deal %s/%s: %w", obs.Number, obs.Retailer, err)
	}
	return deal, nil
}

func (ds *DealService) PruneStale(ctx context.Context) (int, error) {
	return ds.deals.PruneStale(ctx, time.Now().Add(-ds.retention))
}

// HotThreshold is the fanout gate; it is distinct from (and higher than) the
// persistence threshold.
func (ds *DealService) HotThreshold() int {
	return ds.hot
}
