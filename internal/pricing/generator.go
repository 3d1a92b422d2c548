package pricing

import (
	"fmt"
	"time"

	"brickdeals/internal/models"
)

var retailerURLs = map[models.Retailer]string{
	models.RetailerLego:    "https://www.lego.com/en-us/product/%s",
	models.RetailerAmazon:  "https://www.amazon.com/s?k=lego+%s",
	models.RetailerWalmart: "https://www.walmart.com/search?q=lego+%s",
	models.RetailerTarget:  "https://www.target.com/s?searchTerm=lego+%s",
}

type GeneratorInterface interface {
	Observe(product *models.Product, retailer models.Retailer, now time.Time) *models.PriceObservation
}

// Generator builds one PriceObservation per (product, retailer) pair from
// whatever the configured price source answers. Shape is deterministic,
// values are up to the source.
type Generator struct {
	source PriceSourceInterface
}

func NewGenerator(source PriceSourceInterface) GeneratorInterface {
	return &Generator{source: source}
}

func (g *Generator) Observe(product *models.Product, retailer models.Retailer, now time.Time) *models.PriceObservation {
	quote := g.source.Quote(product, retailer)

	return &models.PriceObservation{
		Number:      product.Number,
		Retailer:    retailer,
		Price:       quote.Price,
		RetailPrice: product.RetailPrice,
		URL:         fmt.Sprintf(retailerURLs[retailer], product.Number),
		InStock:     quote.InStock,
		UpdatedAt:   now,
		Name:        product.Name,
		ImageURL:    product.ImageURL,
		Theme:       product.Theme,
		Pieces:      product.Pieces,
	}
}
