package service

import (
	"context"

	"github.com/mbalagam/marketplace/internal/activity"
	"github.com/mbalagam/marketplace/internal/models"
	"github.com/mbalagam/marketplace/internal/store"
)

type CatalogService struct {
	Store    *store.Store
	Activity *activity.Logger
}

// ListItems returns every listing in insertion order.
func (s *CatalogService) ListItems(ctx context.Context) ([]models.Item, error) {
	items, err := s.Store.LoadItems()
	if err != nil {
		return nil, err
	}
	s.Activity.Event(ctx, "list_items", "", map[string]any{"count": len(items)})
	return items, nil
}

// CreateItem validates the listing, assigns the next id and appends it to the
// catalog. The owner must be a registered user.
func (s *CatalogService) CreateItem(ctx context.Context, username, name string, quantity int, price float64, description *string) (*models.Item, error) {
	user, err := requireUser(s.Store, username)
	if err != nil {
		return nil, err
	}

	if name == "" {
		return nil, &ValidationError{Detail: "name must not be empty"}
	}
	if quantity < 0 {
		return nil, &ValidationError{Detail: "quantity must not be negative"}
	}
	if price < 0 {
		return nil, &ValidationError{Detail: "price must not be negative"}
	}

	var created models.Item
	err = s.Store.UpdateItems(func(items []models.Item) ([]models.Item, error) {
		created = models.Item{
			ID:          nextItemID(items),
			Name:        name,
			Quantity:    quantity,
			Price:       price,
			Description: description,
			UserID:      &user.ID,
		}
		return append(items, created), nil
	})
	if err != nil {
		return nil, err
	}

	s.Activity.Event(ctx, "create_item", user.Username, map[string]any{
		"item":     created,
		"user_id":  user.ID,
		"username": user.Username,
	})
	return &created, nil
}

func nextItemID(items []models.Item) int {
	next := 1
	for _, it := range items {
		if it.ID >= next {
			next = it.ID + 1
		}
	}
	return next
}
