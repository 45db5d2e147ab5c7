package service

import (
	"errors"
	"testing"

	"github.com/foodikal/ny-backend/internal/domain"
)

func newMenuService() *MenuService {
	return NewMenuService(&fakeMenuRepo{items: []domain.MenuItem{
		{ID: 1, Name: "Канапе с сыром", Category: "Канапе", Price: 190},
		{ID: 2, Name: "Канапе с лососем", Category: "Канапе", Price: 260},
		{ID: 3, Name: "Салат Оливье", Category: "Салат", Price: 450},
	}})
}

func TestListByCategory(t *testing.T) {
	svc := newMenuService()

	items, err := svc.ListByCategory(t.Context(), "Канапе")
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	for _, item := range items {
		if item.Category != "Канапе" {
			t.Errorf("item %q leaked from category %q", item.Name, item.Category)
		}
	}
}

func TestListByCategoryUnknown(t *testing.T) {
	svc := newMenuService()

	if _, err := svc.ListByCategory(t.Context(), "Десерты"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown category error = %v, want ErrNotFound", err)
	}
}

func TestListByCategoryEmpty(t *testing.T) {
	svc := newMenuService()

	// A real category with no items is an empty list, not an error.
	items, err := svc.ListByCategory(t.Context(), "Горячее")
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %d items, want none", len(items))
	}
}
