package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brickdeals/internal/models"
	"brickdeals/internal/store"
	"brickdeals/internal/structures"
)

type mockDealStore struct {
	upserts     []*models.Deal
	pruneCutoff time.Time
	pruned      int
}

func (m *mockDealStore) Upsert(_ context.Context, deal *models.Deal) error {
	m.upserts = append(m.upserts, deal)
	return nil
}

func (m *mockDealStore) Query(_ context.Context, _ store.DealQuery) ([]*models.Deal, error) {
	return nil, nil
}

func (m *mockDealStore) PruneStale(_ context.Context, cutoff time.Time) (int, error) {
	m.pruneCutoff = cutoff
	return m.pruned, nil
}

func (m *mockDealStore) Count(_ context.Context) (int, error) {
	return len(m.upserts), nil
}

func dealConfig() *structures.Config {
	return &structures.Config{
		Deals: structures.DealsConfig{
			MinDiscount:  10,
			HotThreshold: 40,
			Retention:    24 * time.Hour,
		},
	}
}

func observation(retail, price float64, inStock bool) *models.PriceObservation {
	return &models.PriceObservation{
		Number:      "75192",
		Retailer:    models.RetailerAmazon,
		Price:       price,
		RetailPrice: retail,
		InStock:     inStock,
		UpdatedAt:   time.Now(),
	}
}

func TestDerive_BelowThresholdIsNoDeal(t *testing.T) {
	ds := &mockDealStore{}
	svc := NewDealService(dealConfig(), ds)

	deal, err := svc.Derive(context.Background(), observation(100, 95, true))

	require.NoError(t, err)
	assert.Nil(t, deal)
	assert.Empty(t, ds.upserts)
}

func TestDerive_PersistsQualifyingDeal(t *testing.T) {
	ds := &mockDealStore{}
	svc := NewDealService(dealConfig(), ds)

	deal, err := svc.Derive(context.Background(), observation(100, 80, true))

	require.NoError(t, err)
	require.NotNil(t, deal)
	assert.Equal(t, 20, deal.PercentOff)
	assert.Equal(t, 20.0, deal.Savings)
	require.Len(t, ds.upserts, 1)
	assert.Same(t, deal, ds.upserts[0])
}

func TestDerive_ExactThresholdQualifies(t *testing.T) {
	svc := NewDealService(dealConfig(), &mockDealStore{})

	deal, err := svc.Derive(context.Background(), observation(100, 90, true))

	require.NoError(t, err)
	require.NotNil(t, deal)
	assert.Equal(t, 10, deal.PercentOff)
}

func TestDerive_OutOfStockIsNoDeal(t *testing.T) {
	ds := &mockDealStore{}
	svc := NewDealService(dealConfig(), ds)

	deal, err := svc.Derive(context.Background(), observation(100, 50, false))

	require.NoError(t, err)
	assert.Nil(t, deal)
	assert.Empty(t, ds.upserts)
}

func TestPruneStale_UsesRetentionCutoff(t *testing.T) {
	ds := &mockDealStore{pruned: 3}
	svc := NewDealService(dealConfig(), ds)

	n, err := svc.PruneStale(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.WithinDuration(t, time.Now().Add(-24*time.Hour), ds.pruneCutoff, time.Minute)
}

func TestHotThreshold(t *testing.T) {
	svc := NewDealService(dealConfig(), &mockDealStore{})
	assert.Equal(t, 40, svc.HotThreshold())
}
