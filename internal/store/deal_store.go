package store

import (
	"context"
	"time"

	"brickdeals/internal/models"
	"brickdeals/internal/structures"
)

// DealQuery narrows a deal listing. Zero values mean "no filter".
type DealQuery struct {
	MinPercentOff int
	Theme         string
	Since         time.Time
	Limit         int
}

type DealStoreInterface interface {
	Upsert(ctx context.Context, deal *models.Deal) error
	Query(ctx context.Context, q DealQuery) ([]*models.Deal, error)
	PruneStale(ctx context.Context, cutoff time.Time) (int, error)
	Count(ctx context.Context) (int, error)
}

type DealStore struct {
	db    *DB
	batch int
}

func NewDealStore(db *DB, conf *structures.Config) DealStoreInterface {
	return &DealStore{db: db, batch: batchSize(conf.Database.BatchSize)}
}

const upsertDealSQL = `
INSERT INTO deals (number, retailer, price, retail_price, url, in_stock, updated_at, name, image_url, theme, pieces, percent_off, savings)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(number, retailer) DO UPDATE SET
	price = excluded.price,
	retail_price = excluded.retail_price,
	url = excluded.url,
	in_stock = excluded.in_stock,
	updated_at = excluded.updated_at,
	name = excluded.name,
	image_url = excluded.image_url,
	theme = excluded.theme,
	pieces = excluded.pieces,
	percent_off = excluded.percent_off,
	savings = excluded.savings`

func (s *DealStore) Upsert(ctx context.Context, deal *models.Deal) error {
	_, err := s.db.conn.ExecContext(ctx, upsertDealSQL,
		deal.Number, string(deal.Retailer), deal.Price, deal.RetailPrice, deal.URL,
		deal.InStock, deal.UpdatedAt.UTC(), deal.Name, deal.ImageURL, deal.Theme,
		deal.Pieces, deal.PercentOff, deal.Savings)
	return err
}

func (s *DealStore) Query(ctx context.Context, q DealQuery) ([]*models.Deal, error) {
	sqlStr := `SELECT number, retailer, price, retail_price, url, in_stock, updated_at, name, image_url, theme, pieces, percent_off, savings FROM deals WHERE 1=1`
	var args []any
	if q.MinPercentOff > 0 {
		sqlStr += ` AND percent_off >= ?`
		args = append(args, q.MinPercentOff)
	}
	if q.Theme != "" {
		sqlStr += ` AND theme = ?`
		args = append(args, q.Theme)
	}
	if !q.Since.IsZero() {
		sqlStr += ` AND updated_at >= ?`
		args = append(args, q.Since.UTC())
	}
	sqlStr += ` ORDER BY percent_off DESC, updated_at DESC`
	if q.Limit > 0 {
		sqlStr += ` LIMIT ?`
		args = append(args, q.Limit)
	}

	rows, err := s.db.conn.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deals []*models.Deal
	for rows.Next() {
		var d models.Deal
		var ret string
		err := rows.Scan(&d.Number, &ret, &d.Price, &d.RetailPrice, &d.URL, &d.InStock,
			&d.UpdatedAt, &d.Name, &d.ImageURL, &d.Theme, &d.Pieces, &d.PercentOff, &d.Savings)
		if err != nil {
			return nil, err
		}
		d.Retailer = models.Retailer(ret)
		deals = append(deals, &d)
	}
	return deals, rows.Err()
}

// PruneStale deletes deals last refreshed before cutoff, in fixed-size
// batches. Deals refreshed by the current cycle carry a fresh updated_at and
// are never touched.
func (s *DealStore) PruneStale(ctx context.Context, cutoff time.Time) (int, error) {
	total := 0
	for {
		res, err := s.db.conn.ExecContext(ctx,
			`DELETE FROM deals WHERE rowid IN (SELECT rowid FROM deals WHERE updated_at < ? LIMIT ?)`,
			cutoff.UTC(), s.batch)
		if err != nil {
			return total, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return total, err
		}
		total += int(n)
		if int(n) < s.batch {
			return total, nil
		}
	}
}

func (s *DealStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM deals`).Scan(&n)
	return n, err
}
