package catalog

import (
	"context"
	"strings"
	"time"

	"brickdeals/internal/models"
	"brickdeals/internal/providers"
	"brickdeals/internal/structures"
)

type IngestorInterface interface {
	Ingest(ctx context.Context, yearFrom, yearTo, maxPages int) []*models.Product
}

// Ingestor pulls the paginated catalog source and normalizes the records
// into Products. It accumulates in memory only; persistence is the caller's
// separate step.
type Ingestor struct {
	client       ClientInterface
	themes       *ThemeTable
	logger       providers.Logger
	minPieces    int
	pricePerUnit float64
	minPrice     float64
}

func NewIngestor(conf *structures.Config, client ClientInterface, themes *ThemeTable, logger providers.Logger) IngestorInterface {
	return &Ingestor{
		client:       client,
		themes:       themes,
		logger:       logger,
		minPieces:    conf.Catalog.MinPieces,
		pricePerUnit: conf.Catalog.PricePerUnit,
		minPrice:     conf.Catalog.MinPrice,
	}
}

// Ingest walks pages until one comes back empty, the page limit is hit or
// the source signals no further pages. A failed page fetch logs and stops
// pagination; the partial result is returned and the caller decides whether
// a short run is fatal.
func (ing *Ingestor) Ingest(ctx context.Context, yearFrom, yearTo, maxPages int) []*models.Product {
	var products []*models.Product
	now := time.Now()

	for page := 1; page <= maxPages; page++ {
		result, err := ing.client.FetchPage(ctx, page, yearFrom, yearTo)
		if err != nil {
			ing.logger.Errorf(providers.TypePipeline, "Catalog fetch stopped at page %d: %s", page, err)
			break
		}
		if len(result.Results) == 0 {
			break
		}

		for i := range result.Results {
			if p := ing.normalize(&result.Results[i], now); p != nil {
				products = append(products, p)
			}
		}

		if !result.HasNext {
			break
		}
	}

	ing.logger.Infof(providers.TypePipeline, "Ingested %d products", len(products))
	return products
}

func (ing *Ingestor) normalize(rec *SetRecord, now time.Time) *models.Product {
	if rec.Number == "" || rec.ImageURL == "" {
		return nil
	}
	if rec.Pieces < ing.minPieces {
		return nil
	}
	if nonBuildable(rec.Name, rec.Pieces) {
		return nil
	}

	return &models.Product{
		Number:       rec.Number,
		Name:         rec.Name,
		RetailPrice:  ing.estimateRetailPrice(rec.Pieces),
		ImageURL:     rec.ImageURL,
		Theme:        ing.themes.Name(rec.ThemeID),
		ThemeID:      rec.ThemeID,
		Pieces:       rec.Pieces,
		Year:         rec.Year,
		Availability: normalizeAvailability(rec.Availability),
		UpdatedAt:    now,
	}
}

// estimateRetailPrice is a linear piece-count model, floored at a minimum.
// It stands in for a real baseline price feed.
func (ing *Ingestor) estimateRetailPrice(pieces int) float64 {
	price := ing.pricePerUnit * float64(pieces)
	if price < ing.minPrice {
		price = ing.minPrice
	}
	return models.RoundCents(price)
}

var nonBuildableMarkers = []string{
	"key chain", "keychain", "magnet", "pen ", "plush", "notebook",
	"storage", "watch", "gift card", "poster",
}

// nonBuildable is a heuristic for merch that shows up in the catalog feed
// with a set number but is not a buildable set.
func nonBuildable(name string, pieces int) bool {
	if pieces >= 50 {
		return false
	}
	lower := strings.ToLower(name)
	for _, marker := range nonBuildableMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func normalizeAvailability(s string) models.Availability {
	switch models.Availability(strings.ToLower(strings.TrimSpace(s))) {
	case models.AvailabilityComingSoon:
		return models.AvailabilityComingSoon
	case models.AvailabilitySoldOut:
		return models.AvailabilitySoldOut
	case models.AvailabilityRetiringSoon:
		return models.AvailabilityRetiringSoon
	default:
		return models.AvailabilityAvailable
	}
}
