package store

import (
	"context"

	"brickdeals/internal/models"
)

type PriceStoreInterface interface {
	Upsert(ctx context.Context, obs *models.PriceObservation) error
	Get(ctx context.Context, number string, retailer models.Retailer) (*models.PriceObservation, error)
	Count(ctx context.Context) (int, error)
}

// PriceStore holds the current observation per (product, retailer). Every
// pricing cycle overwrites the previous row; no history is kept.
type PriceStore struct {
	db *DB
}

func NewPriceStore(db *DB) PriceStoreInterface {
	return &PriceStore{db: db}
}

const upsertObservationSQL = `
INSERT INTO price_observations (number, retailer, price, retail_price, url, in_stock, updated_at, name, image_url, theme, pieces)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(number, retailer) DO UPDATE SET
	price = excluded.price,
	retail_price = excluded.retail_price,
	url = excluded.url,
	in_stock = excluded.in_stock,
	updated_at = excluded.updated_at,
	name = excluded.name,
	image_url = excluded.image_url,
	theme = excluded.theme,
	pieces = excluded.pieces`

func (s *PriceStore) Upsert(ctx context.Context, obs *models.PriceObservation) error {
	_, err := s.db.conn.ExecContext(ctx, upsertObservationSQL,
		obs.Number, string(obs.Retailer), obs.Price, obs.RetailPrice, obs.URL,
		obs.InStock, obs.UpdatedAt.UTC(), obs.Name, obs.ImageURL, obs.Theme, obs.Pieces)
	return err
}

func (s *PriceStore) Get(ctx context.Context, number string, retailer models.Retailer) (*models.PriceObservation, error) {
	var obs models.PriceObservation
	var ret string
	err := s.db.conn.QueryRowContext(ctx,
		`SELECT number, retailer, price, retail_price, url, in_stock, updated_at, name, image_url, theme, pieces
		 FROM price_observations WHERE number = ? AND retailer = ?`, number, string(retailer)).
		Scan(&obs.Number, &ret, &obs.Price, &obs.RetailPrice, &obs.URL, &obs.InStock,
			&obs.UpdatedAt, &obs.Name, &obs.ImageURL, &obs.Theme, &obs.Pieces)
	if err != nil {
		return nil, err
	}
	obs.Retailer = models.Retailer(ret)
	return &obs, nil
}

func (s *PriceStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM price_observations`).Scan(&n)
	return n, err
}
