package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"brickdeals/internal/models"
)

type fixedSource struct {
	quote Quote
}

func (f *fixedSource) Quote(*models.Product, models.Retailer) Quote {
	return f.quote
}

func TestObserve_BuildsObservation(t *testing.T) {
	gen := NewGenerator(&fixedSource{quote: Quote{Price: 79.99, InStock: true}})
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	obs := gen.Observe(testProduct(), models.RetailerAmazon, now)

	assert.Equal(t, "75192", obs.Number)
	assert.Equal(t, models.RetailerAmazon, obs.Retailer)
	assert.Equal(t, 79.99, obs.Price)
	assert.Equal(t, 100.0, obs.RetailPrice)
	assert.Equal(t, "https://www.amazon.com/s?k=lego+75192", obs.URL)
	assert.True(t, obs.InStock)
	assert.Equal(t, now, obs.UpdatedAt)
	assert.Equal(t, "Millennium Falcon", obs.Name)
	assert.Equal(t, "Star Wars", obs.Theme)
	assert.Equal(t, 7541, obs.Pieces)
}

func TestObserve_CanonicalStorefrontURL(t *testing.T) {
	gen := NewGenerator(&fixedSource{quote: Quote{Price: 100.0, InStock: true}})

	obs := gen.Observe(testProduct(), models.RetailerLego, time.Now())

	assert.Equal(t, "https://www.lego.com/en-us/product/75192", obs.URL)
}
