package store

import (
	"context"
	"database/sql"
	"errors"

	json "github.com/goccy/go-json"

	"brickdeals/internal/models"
)

type SubscriberStoreInterface interface {
	Upsert(ctx context.Context, sub *models.Subscriber) error
	Get(ctx context.Context, token string) (*models.Subscriber, error)
	Delete(ctx context.Context, token string) error
	FindEligible(ctx context.Context, percentOff int) ([]*models.Subscriber, error)
	Count(ctx context.Context) (int, error)
}

type SubscriberStore struct {
	db *DB
}

func NewSubscriberStore(db *DB) SubscriberStoreInterface {
	return &SubscriberStore{db: db}
}

const upsertSubscriberSQL = `
INSERT INTO subscribers (token, platform, enabled, min_discount, watched_themes, watched_sets, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(token) DO UPDATE SET
	platform = excluded.platform,
	enabled = excluded.enabled,
	min_discount = excluded.min_discount,
	watched_themes = excluded.watched_themes,
	watched_sets = excluded.watched_sets,
	updated_at = excluded.updated_at`

func (s *SubscriberStore) Upsert(ctx context.Context, sub *models.Subscriber) error {
	themes, err := json.Marshal(sub.WatchedThemes)
	if err != nil {
		return err
	}
	sets, err := json.Marshal(sub.WatchedSets)
	if err != nil {
		return err
	}
	_, err = s.db.conn.ExecContext(ctx, upsertSubscriberSQL,
		sub.Token, string(sub.Platform), sub.Enabled, sub.MinDiscount,
		string(themes), string(sets), sub.UpdatedAt.UTC())
	return err
}

func scanSubscriber(scan func(dest ...any) error) (*models.Subscriber, error) {
	var sub models.Subscriber
	var platform, themes, sets string
	err := scan(&sub.Token, &platform, &sub.Enabled, &sub.MinDiscount, &themes, &sets, &sub.UpdatedAt)
	if err != nil {
		return nil, err
	}
	sub.Platform = models.Platform(platform)
	if err := json.Unmarshal([]byte(themes), &sub.WatchedThemes); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(sets), &sub.WatchedSets); err != nil {
		return nil, err
	}
	return &sub, nil
}

const selectSubscriberSQL = `SELECT token, platform, enabled, min_discount, watched_themes, watched_sets, updated_at FROM subscribers`

// Get returns nil (and no error) when the token is unknown.
func (s *SubscriberStore) Get(ctx context.Context, token string) (*models.Subscriber, error) {
	row := s.db.conn.QueryRowContext(ctx, selectSubscriberSQL+` WHERE token = ?`, token)
	sub, err := scanSubscriber(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *SubscriberStore) Delete(ctx context.Context, token string) error {
	_, err := s.db.conn.ExecContext(ctx, `DELETE FROM subscribers WHERE token = ?`, token)
	return err
}

// FindEligible narrows by the store-side predicate only (enabled and
// threshold); theme/set matching happens in application logic.
func (s *SubscriberStore) FindEligible(ctx context.Context, percentOff int) ([]*models.Subscriber, error) {
	rows, err := s.db.conn.QueryContext(ctx,
		selectSubscriberSQL+` WHERE enabled = 1 AND min_discount <= ?`, percentOff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*models.Subscriber
	for rows.Next() {
		sub, err := scanSubscriber(rows.Scan)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (s *SubscriberStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM subscribers`).Scan(&n)
	return n, err
}
