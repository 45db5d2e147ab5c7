package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/foodikal/ny-backend/internal/domain"
)

type menuRepository struct {
	db *DB
}

func NewMenuRepository(db *DB) *menuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) List(ctx context.Context) ([]domain.MenuItem, error) {
	query := `
		SELECT id, name, category, description, price, image, created_at
		FROM menu_items
		ORDER BY category, id
	`

	var items []domain.MenuItem
	if err := sqlx.SelectContext(ctx, r.db, &items, query); err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	return items, nil
}

func (r *menuRepository) ListByCategory(ctx context.Context, category string) ([]domain.MenuItem, error) {
	query := `
		SELECT id, name, category, description, price, image, created_at
		FROM menu_items
		WHERE category = $1
		ORDER BY id
	`

	var items []domain.MenuItem
	if err := sqlx.SelectContext(ctx, r.db, &items, query, category); err != nil {
		return nil, fmt.Errorf("failed to list %q menu items: %w", category, err)
	}
	return items, nil
}

func (r *menuRepository) GetByID(ctx context.Context, id int64) (*domain.MenuItem, error) {
	query := `
		SELECT id, name, category, description, price, image, created_at
		FROM menu_items
		WHERE id = $1
	`

	var item domain.MenuItem
	if err := sqlx.GetContext(ctx, r.db, &item, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get menu item %d: %w", id, err)
	}
	return &item, nil
}

func (r *menuRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.MenuItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, name, category, description, price, image, created_at
		FROM menu_items
		WHERE id IN (?)
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build menu lookup query: %w", err)
	}
	query = r.db.Rebind(query)

	var items []domain.MenuItem
	if err := sqlx.SelectContext(ctx, r.db, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get menu items by ids: %w", err)
	}
	return items, nil
}

func (r *menuRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	query := `
		INSERT INTO menu_items (name, category, description, price, image, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		item.Name, item.Category, item.Description, item.Price, item.Image,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}
	return nil
}

func (r *menuRepository) Update(ctx context.Context, item *domain.MenuItem) error {
	query := `
		UPDATE menu_items
		SET name = $1, category = $2, description = $3, price = $4, image = $5
		WHERE id = $6
	`

	res, err := r.db.ExecContext(ctx, query,
		item.Name, item.Category, item.Description, item.Price, item.Image, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update menu item %d: %w", item.ID, err)
	}
	return requireRowAffected(res)
}

func (r *menuRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item %d: %w", id, err)
	}
	return requireRowAffected(res)
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
