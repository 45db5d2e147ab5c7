package repository

import (
	"context"

	"github.com/foodikal/ny-backend/internal/domain"
)

type MenuRepository interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	ListByCategory(ctx context.Context, category string) ([]domain.MenuItem, error)
	GetByID(ctx context.Context, id int64) (*domain.MenuItem, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.MenuItem, error)
	Create(ctx context.Context, item *domain.MenuItem) error
	Update(ctx context.Context, item *domain.MenuItem) error
	Delete(ctx context.Context, id int64) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	List(ctx context.Context) ([]domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListForDateRange(ctx context.Context, from, to string) ([]domain.Order, error)
	UpdateConfirmations(ctx context.Context, id int64, afterCreation, beforeDelivery bool) error
	Delete(ctx context.Context, id int64) error
}

type PromoRepository interface {
	List(ctx context.Context) ([]domain.PromoCode, error)
	Exists(ctx context.Context, code string) (bool, error)
	Create(ctx context.Context, code string) error
	Delete(ctx context.Context, code string) error
}

type BannerRepository interface {
	List(ctx context.Context) ([]domain.Banner, error)
	Create(ctx context.Context, banner *domain.Banner) error
	Update(ctx context.Context, banner *domain.Banner) error
	Delete(ctx context.Context, id int64) error
}
