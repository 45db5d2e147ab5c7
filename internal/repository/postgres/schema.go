package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS menu_items (
	id          BIGSERIAL PRIMARY KEY,
	name        TEXT NOT NULL,
	category    TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	price       INTEGER NOT NULL,
	image       TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS orders (
	id                        BIGSERIAL PRIMARY KEY,
	customer_name             TEXT NOT NULL,
	customer_contact          TEXT NOT NULL,
	delivery_address          TEXT NOT NULL DEFAULT '',
	delivery_date             TEXT NOT NULL,
	comments                  TEXT NOT NULL DEFAULT '',
	order_items               JSONB NOT NULL,
	items_subtotal            INTEGER NOT NULL DEFAULT 0,
	delivery_fee              INTEGER NOT NULL DEFAULT 0,
	total_price               INTEGER NOT NULL DEFAULT 0,
	promo_code                TEXT NOT NULL DEFAULT '',
	original_price            INTEGER NOT NULL DEFAULT 0,
	discount_amount           INTEGER NOT NULL DEFAULT 0,
	confirmed_after_creation  BOOLEAN NOT NULL DEFAULT FALSE,
	confirmed_before_delivery BOOLEAN NOT NULL DEFAULT FALSE,
	created_at                TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at                TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_orders_delivery_date ON orders (delivery_date);

CREATE TABLE IF NOT EXISTS promo_codes (
	code       TEXT PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS banners (
	id            BIGSERIAL PRIMARY KEY,
	name          TEXT NOT NULL,
	item_link     TEXT NOT NULL DEFAULT '',
	image_url     TEXT NOT NULL DEFAULT '',
	display_order INTEGER NOT NULL DEFAULT 0,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// InitSchema creates all tables if they do not exist yet. The statements run
// in one transaction so a partial schema never survives a failed run.
func (db *DB) InitSchema(ctx context.Context) error {
	err := db.WithTx(ctx, func(tx *sql.Tx) error {
		_, execErr := tx.ExecContext(ctx, schema)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("could not initialize schema: %w", err)
	}
	return nil
}
