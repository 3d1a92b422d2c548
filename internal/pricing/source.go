package pricing

import (
	"math/rand"
	"sync"
	"time"

	"brickdeals/internal/models"
)

// Quote is one retailer's answer for one product.
type Quote struct {
	Price   float64
	InStock bool
}

// PriceSourceInterface abstracts where prices come from, so the synthetic
// generator can later be swapped for a real retailer API or scraper without
// touching deal derivation or notification logic.
type PriceSourceInterface interface {
	Quote(product *models.Product, retailer models.Retailer) Quote
}

// SyntheticSource is a placeholder price source. The canonical storefront
// always quotes retail price; other retailers roll a 70% chance of a
// 10-40% discount and an independent 10% chance of a deeper 40-60% one,
// the deeper roll overwriting the first. Stock flips off with 15%
// probability even for available products. The distribution itself is a
// stand-in, not a business rule.
type SyntheticSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSyntheticSource(seed int64) *SyntheticSource {
	return &SyntheticSource{rng: rand.New(rand.NewSource(seed))}
}

// NewDefaultSource is the injector entry point: a time-seeded synthetic source.
func NewDefaultSource() PriceSourceInterface {
	return NewSyntheticSource(time.Now().UnixNano())
}

func (s *SyntheticSource) Quote(product *models.Product, retailer models.Retailer) Quote {
	s.mu.Lock()
	defer s.mu.Unlock()

	price := product.RetailPrice
	if retailer != models.RetailerLego {
		discount := 0
		if s.rng.Float64() < 0.7 {
			discount = 10 + s.rng.Intn(31) // [10,40]
		}
		if s.rng.Float64() < 0.1 {
			discount = 40 + s.rng.Intn(21) // [40,60]
		}
		price = models.RoundCents(price * (1 - float64(discount)/100))
	}

	inStock := product.Availability == models.AvailabilityAvailable
	if inStock && s.rng.Float64() < 0.15 {
		inStock = false
	}

	return Quote{Price: price, InStock: inStock}
}
