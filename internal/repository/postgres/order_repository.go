package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/foodikal/ny-backend/internal/domain"
)

type orderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) *orderRepository {
	return &orderRepository{db: db}
}

// orderRow mirrors the orders table. The line items live in a single JSONB
// column, matching how the storefront submits them.
type orderRow struct {
	domain.Order
	ItemsJSON []byte `db:"order_items"`
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode order items: %w", err)
	}

	query := `
		INSERT INTO orders (
			customer_name, customer_contact, delivery_address, delivery_date,
			comments, order_items, items_subtotal, delivery_fee, total_price,
			promo_code, original_price, discount_amount, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	// Inserts go through WithTx so checkout bursts stay under the
	// connection cap.
	err = r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, query,
			order.CustomerName, order.CustomerContact, order.DeliveryAddress, order.DeliveryDate,
			order.Comments, items, order.ItemsSubtotal, order.DeliveryFee, order.TotalPrice,
			order.PromoCode, order.OriginalPrice, order.DiscountAmount,
		).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	})
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

const orderColumns = `
	id, customer_name, customer_contact, delivery_address, delivery_date,
	comments, order_items, items_subtotal, delivery_fee, total_price,
	promo_code, original_price, discount_amount,
	confirmed_after_creation, confirmed_before_delivery, created_at, updated_at
`

func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	return r.selectOrders(ctx, query)
}

func (r *orderRepository) ListForDateRange(ctx context.Context, from, to string) ([]domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE delivery_date >= $1 AND delivery_date <= $2
		ORDER BY customer_name, created_at
	`
	return r.selectOrders(ctx, query, from, to)
}

func (r *orderRepository) selectOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	var rows []orderRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		order, err := row.toOrder()
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var row orderRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}
	return row.toOrder()
}

func (r *orderRepository) UpdateConfirmations(ctx context.Context, id int64, afterCreation, beforeDelivery bool) error {
	query := `
		UPDATE orders
		SET confirmed_after_creation = $1, confirmed_before_delivery = $2, updated_at = NOW()
		WHERE id = $3
	`

	res, err := r.db.ExecContext(ctx, query, afterCreation, beforeDelivery, id)
	if err != nil {
		return fmt.Errorf("failed to update order %d confirmations: %w", id, err)
	}
	return requireRowAffected(res)
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order %d: %w", id, err)
	}
	return requireRowAffected(res)
}

func (row orderRow) toOrder() (*domain.Order, error) {
	order := row.Order
	if len(row.ItemsJSON) > 0 {
		if err := json.Unmarshal(row.ItemsJSON, &order.Items); err != nil {
			return nil, fmt.Errorf("failed to decode items of order %d: %w", order.ID, err)
		}
	}
	return &order, nil
}
