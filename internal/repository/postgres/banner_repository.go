package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/foodikal/ny-backend/internal/domain"
)

type bannerRepository struct {
	db *DB
}

func NewBannerRepository(db *DB) *bannerRepository {
	return &bannerRepository{db: db}
}

func (r *bannerRepository) List(ctx context.Context) ([]domain.Banner, error) {
	query := `
		SELECT id, name, item_link, image_url, display_order, created_at
		FROM banners
		ORDER BY display_order, id
	`

	var banners []domain.Banner
	if err := sqlx.SelectContext(ctx, r.db, &banners, query); err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	return banners, nil
}

func (r *bannerRepository) Create(ctx context.Context, banner *domain.Banner) error {
	query := `
		INSERT INTO banners (name, item_link, image_url, display_order, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		banner.Name, banner.ItemLink, banner.ImageURL, banner.DisplayOrder,
	).Scan(&banner.ID, &banner.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create banner: %w", err)
	}
	return nil
}

func (r *bannerRepository) Update(ctx context.Context, banner *domain.Banner) error {
	query := `
		UPDATE banners
		SET name = $1, item_link = $2, image_url = $3, display_order = $4
		WHERE id = $5
	`

	res, err := r.db.ExecContext(ctx, query,
		banner.Name, banner.ItemLink, banner.ImageURL, banner.DisplayOrder, banner.ID)
	if err != nil {
		return fmt.Errorf("failed to update banner %d: %w", banner.ID, err)
	}
	return requireRowAffected(res)
}

func (r *bannerRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete banner %d: %w", id, err)
	}
	return requireRowAffected(res)
}
