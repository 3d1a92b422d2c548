package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brickdeals/internal/models"
	"brickdeals/internal/store"
	"brickdeals/internal/testutil"
)

type stubDealStore struct {
	lastQuery store.DealQuery
	queries   int
	deals     []*models.Deal
}

func (s *stubDealStore) Upsert(_ context.Context, _ *models.Deal) error { return nil }
func (s *stubDealStore) PruneStale(_ context.Context, _ time.Time) (int, error) {
	return 0, nil
}
func (s *stubDealStore) Count(_ context.Context) (int, error) { return len(s.deals), nil }

func (s *stubDealStore) Query(_ context.Context, q store.DealQuery) ([]*models.Deal, error) {
	s.lastQuery = q
	s.queries++
	return s.deals, nil
}

type memCache struct {
	data map[string][]byte
}

func (c *memCache) Get(key string) ([]byte, bool) {
	v, ok := c.data[key]
	return v, ok
}

func (c *memCache) Set(key string, value []byte) {
	if c.data == nil {
		c.data = map[string][]byte{}
	}
	c.data[key] = value
}

func getDeals(dc *DealController, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	dc.GetDeals(w, req)
	return w
}

func TestGetDeals_DefaultsAndFilters(t *testing.T) {
	ds := &stubDealStore{}
	dc := NewDealController(&testutil.MockLogger{}, ds, &memCache{})

	w := getDeals(dc, "/deals?minDiscount=25&theme=City&limit=10")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 25, ds.lastQuery.MinPercentOff)
	assert.Equal(t, "City", ds.lastQuery.Theme)
	assert.Equal(t, 10, ds.lastQuery.Limit)
}

func TestGetDeals_EmptyResultIsJSONArray(t *testing.T) {
	dc := NewDealController(&testutil.MockLogger{}, &stubDealStore{}, &memCache{})

	w := getDeals(dc, "/deals")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestGetDeals_BadParamsAre400(t *testing.T) {
	dc := NewDealController(&testutil.MockLogger{}, &stubDealStore{}, &memCache{})

	assert.Equal(t, http.StatusBadRequest, getDeals(dc, "/deals?minDiscount=abc").Code)
	assert.Equal(t, http.StatusBadRequest, getDeals(dc, "/deals?minDiscount=150").Code)
	assert.Equal(t, http.StatusBadRequest, getDeals(dc, "/deals?limit=0").Code)
	assert.Equal(t, http.StatusBadRequest, getDeals(dc, "/deals?limit=9999").Code)
}

func TestGetDeals_SecondCallHitsCache(t *testing.T) {
	ds := &stubDealStore{deals: []*models.Deal{
		{PriceObservation: models.PriceObservation{Number: "75192"}, PercentOff: 45},
	}}
	dc := NewDealController(&testutil.MockLogger{}, ds, &memCache{})

	first := getDeals(dc, "/deals?minDiscount=40")
	second := getDeals(dc, "/deals?minDiscount=40")

	assert.Equal(t, 1, ds.queries)
	assert.Equal(t, first.Body.String(), second.Body.String())

	var deals []*models.Deal
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &deals))
	require.Len(t, deals, 1)
	assert.Equal(t, "75192", deals[0].Number)
}
