package store

import (
	"context"
	"fmt"

	"brickdeals/internal/models"
	"brickdeals/internal/structures"
)

type CatalogStoreInterface interface {
	SaveAll(ctx context.Context, products []*models.Product) error
	First(ctx context.Context, n int) ([]*models.Product, error)
	Get(ctx context.Context, number string) (*models.Product, error)
	Count(ctx context.Context) (int, error)
}

type CatalogStore struct {
	db    *DB
	batch int
}

func NewCatalogStore(db *DB, conf *structures.Config) CatalogStoreInterface {
	return &CatalogStore{db: db, batch: batchSize(conf.Database.BatchSize)}
}

const upsertProductSQL = `
INSERT INTO products (number, name, retail_price, image_url, theme, theme_id, pieces, year, availability, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(number) DO UPDATE SET
	name = excluded.name,
	retail_price = excluded.retail_price,
	image_url = excluded.image_url,
	theme = excluded.theme,
	theme_id = excluded.theme_id,
	pieces = excluded.pieces,
	year = excluded.year,
	availability = excluded.availability,
	updated_at = excluded.updated_at`

// SaveAll upserts products in fixed-size batches, one transaction per batch.
// Batches are independent sub-transactions: an error aborts the current batch
// and the whole save is reported failed, but earlier batches stay committed.
func (s *CatalogStore) SaveAll(ctx context.Context, products []*models.Product) error {
	for start := 0; start < len(products); start += s.batch {
		end := min(start+s.batch, len(products))
		if err := s.saveBatch(ctx, products[start:end]); err != nil {
			return fmt.Errorf("catalog batch %d-%d: %w", start, end, err)
		}
	}
	return nil
}

func (s *CatalogStore) saveBatch(ctx context.Context, products []*models.Product) error {
	tx, err := s.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertProductSQL)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range products {
		_, err := stmt.ExecContext(ctx, p.Number, p.Name, p.RetailPrice, p.ImageURL,
			p.Theme, p.ThemeID, p.Pieces, p.Year, string(p.Availability), p.UpdatedAt.UTC())
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

const selectProductSQL = `SELECT number, name, retail_price, image_url, theme, theme_id, pieces, year, availability, updated_at FROM products`

func (s *CatalogStore) First(ctx context.Context, n int) ([]*models.Product, error) {
	rows, err := s.db.conn.QueryContext(ctx, selectProductSQL+` ORDER BY number LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		var p models.Product
		var availability string
		err := rows.Scan(&p.Number, &p.Name, &p.RetailPrice, &p.ImageURL, &p.Theme,
			&p.ThemeID, &p.Pieces, &p.Year, &availability, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		p.Availability = models.Availability(availability)
		products = append(products, &p)
	}
	return products, rows.Err()
}

func (s *CatalogStore) Get(ctx context.Context, number string) (*models.Product, error) {
	var p models.Product
	var availability string
	err := s.db.conn.QueryRowContext(ctx, selectProductSQL+` WHERE number = ?`, number).
		Scan(&p.Number, &p.Name, &p.RetailPrice, &p.ImageURL, &p.Theme,
			&p.ThemeID, &p.Pieces, &p.Year, &availability, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Availability = models.Availability(availability)
	return &p, nil
}

func (s *CatalogStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}
