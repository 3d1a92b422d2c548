package controllers

import (
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"

	"brickdeals/internal/models"
	"brickdeals/internal/providers"
	"brickdeals/internal/store"
)

// DealController is the query interface the (out-of-scope) mobile client
// reads persisted deals through. Responses are cached for one pricing cycle.
type DealController struct {
	logger providers.Logger
	deals  store.DealStoreInterface
	cache  providers.CacheProviderInterface
}

func NewDealController(logger providers.Logger, deals store.DealStoreInterface, cache providers.CacheProviderInterface) *DealController {
	return &DealController{logger: logger, deals: deals, cache: cache}
}

func (dc *DealController) GetDeals(w http.ResponseWriter, r *http.Request) {
	q := store.DealQuery{Limit: 100}
	if v := r.URL.Query().Get("minDiscount"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 100 {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		q.MinPercentOff = n
	}
	q.Theme = r.URL.Query().Get("theme")
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		q.Limit = n
	}

	cacheKey := "deals:" + strconv.Itoa(q.MinPercentOff) + ":" + q.Theme + ":" + strconv.Itoa(q.Limit)
	if data, ok := dc.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	deals, err := dc.deals.Query(r.Context(), q)
	if err != nil {
		dc.logger.Errorf(providers.TypeGet, "Deal query failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if deals == nil {
		deals = []*models.Deal{}
	}

	gson, err := json.Marshal(deals)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	dc.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}
