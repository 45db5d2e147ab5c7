package service

import (
	"context"
	"fmt"

	"github.com/foodikal/ny-backend/internal/domain"
	"github.com/foodikal/ny-backend/internal/repository"
)

type MenuService struct {
	repo repository.MenuRepository
}

func NewMenuService(repo repository.MenuRepository) *MenuService {
	return &MenuService{repo: repo}
}

func (s *MenuService) List(ctx context.Context) ([]domain.MenuItem, error) {
	return s.repo.List(ctx)
}

// ListGrouped returns the storefront view: items bucketed by category in the
// fixed category order.
func (s *MenuService) ListGrouped(ctx context.Context) (map[string][]domain.MenuItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.GroupMenuByCategory(items), nil
}

// ListByCategory returns the items of one category. A category outside the
// fixed list is reported as not found, not as an empty result.
func (s *MenuService) ListByCategory(ctx context.Context, category string) ([]domain.MenuItem, error) {
	if !domain.ValidCategory(category) {
		return nil, domain.ErrNotFound
	}
	return s.repo.ListByCategory(ctx, category)
}

func (s *MenuService) Create(ctx context.Context, item *domain.MenuItem) error {
	if err := validateMenuItem(item); err != nil {
		return err
	}
	return s.repo.Create(ctx, item)
}

func (s *MenuService) Update(ctx context.Context, item *domain.MenuItem) error {
	if err := validateMenuItem(item); err != nil {
		return err
	}
	return s.repo.Update(ctx, item)
}

func (s *MenuService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func validateMenuItem(item *domain.MenuItem) error {
	if item.Name == "" {
		return fmt.Errorf("menu item name is required")
	}
	if !domain.ValidCategory(item.Category) {
		return fmt.Errorf("unknown category %q", item.Category)
	}
	if item.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return nil
}
