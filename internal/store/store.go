package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"brickdeals/internal/providers"
	"brickdeals/internal/structures"
)

// MaxBatchRows is the hard ceiling on rows per write transaction. Larger
// logical saves are split into independent sub-transactions; a failure
// midway leaves earlier batches committed (at-least-once, not exactly-once).
const MaxBatchRows = 450

const schema = `
CREATE TABLE IF NOT EXISTS products (
	number        TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	retail_price  REAL NOT NULL,
	image_url     TEXT NOT NULL,
	theme         TEXT NOT NULL,
	theme_id      INTEGER NOT NULL,
	pieces        INTEGER NOT NULL,
	year          INTEGER NOT NULL,
	availability  TEXT NOT NULL,
	updated_at    TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS price_observations (
	number        TEXT NOT NULL,
	retailer      TEXT NOT NULL,
	price         REAL NOT NULL,
	retail_price  REAL NOT NULL,
	url           TEXT NOT NULL,
	in_stock      BOOLEAN NOT NULL,
	updated_at    TIMESTAMP NOT NULL,
	name          TEXT NOT NULL,
	image_url     TEXT NOT NULL,
	theme         TEXT NOT NULL,
	pieces        INTEGER NOT NULL,
	PRIMARY KEY (number, retailer)
);

CREATE TABLE IF NOT EXISTS deals (
	number        TEXT NOT NULL,
	retailer      TEXT NOT NULL,
	price         REAL NOT NULL,
	retail_price  REAL NOT NULL,
	url           TEXT NOT NULL,
	in_stock      BOOLEAN NOT NULL,
	updated_at    TIMESTAMP NOT NULL,
	name          TEXT NOT NULL,
	image_url     TEXT NOT NULL,
	theme         TEXT NOT NULL,
	pieces        INTEGER NOT NULL,
	percent_off   INTEGER NOT NULL,
	savings       REAL NOT NULL,
	PRIMARY KEY (number, retailer)
);
CREATE INDEX IF NOT EXISTS idx_deals_percent_off ON deals(percent_off);
CREATE INDEX IF NOT EXISTS idx_deals_updated_at ON deals(updated_at);

CREATE TABLE IF NOT EXISTS subscribers (
	token           TEXT PRIMARY KEY,
	platform        TEXT NOT NULL,
	enabled         BOOLEAN NOT NULL,
	min_discount    INTEGER NOT NULL,
	watched_themes  TEXT NOT NULL,
	watched_sets    TEXT NOT NULL,
	updated_at      TIMESTAMP NOT NULL
);
`

type DB struct {
	conn *sql.DB
}

func NewDB(conf *structures.Config, logger providers.Logger) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on", conf.Database.Path)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	logger.Infof(providers.TypeApp, "Database ready at %s", conf.Database.Path)
	return &DB{conn: conn}, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

// batchSize clamps a configured batch size to the transaction ceiling.
func batchSize(configured int) int {
	if configured <= 0 || configured > MaxBatchRows {
		return MaxBatchRows
	}
	return configured
}
