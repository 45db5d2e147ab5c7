package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/foodikal/ny-backend/internal/domain"
)

type promoRepository struct {
	db *DB
}

func NewPromoRepository(db *DB) *promoRepository {
	return &promoRepository{db: db}
}

func (r *promoRepository) List(ctx context.Context) ([]domain.PromoCode, error) {
	query := `SELECT code, created_at FROM promo_codes ORDER BY created_at DESC`

	var codes []domain.PromoCode
	if err := sqlx.SelectContext(ctx, r.db, &codes, query); err != nil {
		return nil, fmt.Errorf("failed to list promo codes: %w", err)
	}
	return codes, nil
}

func (r *promoRepository) Exists(ctx context.Context, code string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM promo_codes WHERE code = $1)`
	if err := r.db.GetContext(ctx, &exists, query, code); err != nil {
		return false, fmt.Errorf("failed to check promo code: %w", err)
	}
	return exists, nil
}

func (r *promoRepository) Create(ctx context.Context, code string) error {
	query := `INSERT INTO promo_codes (code, created_at) VALUES ($1, NOW()) ON CONFLICT (code) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, code); err != nil {
		return fmt.Errorf("failed to create promo code: %w", err)
	}
	return nil
}

func (r *promoRepository) Delete(ctx context.Context, code string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM promo_codes WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("failed to delete promo code: %w", err)
	}
	return requireRowAffected(res)
}
