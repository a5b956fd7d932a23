package service

import (
	"context"
	"errors"
	"math"

	"github.com/mbalagam/marketplace/internal/activity"
	"github.com/mbalagam/marketplace/internal/models"
	"github.com/mbalagam/marketplace/internal/store"
)

type PurchaseService struct {
	Store    *store.Store
	Activity *activity.Logger
}

// Purchase decrements stock and appends a purchase record. The stock check and
// decrement run inside one locked items update, so concurrent purchases can
// never oversell. If the process dies between the two file writes the stock is
// lost without a compensating record; acceptable for a single-writer demo
// store.
func (s *PurchaseService) Purchase(ctx context.Context, username string, itemID, quantity int, buyer string) (*models.Purchase, error) {
	user, err := requireUser(s.Store, username)
	if err != nil {
		return nil, err
	}
	if buyer == "" {
		buyer = username
	}

	var bought models.Item
	err = s.Store.UpdateItems(func(items []models.Item) ([]models.Item, error) {
		idx := -1
		for i := range items {
			if items[i].ID == itemID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, &NotFoundError{Detail: "Item not found"}
		}
		if quantity < 1 {
			return nil, &ValidationError{Detail: "quantity must be at least 1"}
		}
		if items[idx].Quantity < quantity {
			return nil, &ConflictError{Detail: "Not enough stock"}
		}
		items[idx].Quantity -= quantity
		bought = items[idx]
		return items, nil
	})
	if err != nil {
		s.logFailure(ctx, err, username, itemID, quantity)
		return nil, err
	}

	total := round2(bought.Price * float64(quantity))

	var created models.Purchase
	err = s.Store.UpdatePurchases(func(purchases []models.Purchase) ([]models.Purchase, error) {
		created = models.Purchase{
			ID:         nextPurchaseID(purchases),
			ItemID:     bought.ID,
			Quantity:   quantity,
			Buyer:      buyer,
			TotalPrice: total,
			UserID:     &user.ID,
		}
		return append(purchases, created), nil
	})
	if err != nil {
		return nil, err
	}

	s.Activity.Event(ctx, "purchase_item", user.Username, map[string]any{
		"purchase": created,
		"user_id":  user.ID,
		"username": user.Username,
	})
	return &created, nil
}

// ListPurchases returns the whole ledger, or only the named user's purchases.
func (s *PurchaseService) ListPurchases(ctx context.Context, username string) ([]models.Purchase, error) {
	purchases, err := s.Store.LoadPurchases()
	if err != nil {
		return nil, err
	}

	if username == "" {
		s.Activity.Event(ctx, "list_purchases", "", map[string]any{"count": len(purchases)})
		return purchases, nil
	}

	user, err := requireUser(s.Store, username)
	if err != nil {
		return nil, err
	}
	filtered := []models.Purchase{}
	for _, p := range purchases {
		if p.UserID != nil && *p.UserID == user.ID {
			filtered = append(filtered, p)
		}
	}
	s.Activity.Event(ctx, "list_purchases_user", user.Username, map[string]any{
		"user_id": user.ID,
		"count":   len(filtered),
	})
	return filtered, nil
}

func (s *PurchaseService) logFailure(ctx context.Context, err error, username string, itemID, quantity int) {
	detail := map[string]any{
		"item_id":  itemID,
		"quantity": quantity,
		"username": username,
	}
	var nf *NotFoundError
	var cf *ConflictError
	switch {
	case errors.As(err, &nf):
		s.Activity.Event(ctx, "purchase_failed_item_not_found", username, detail)
	case errors.As(err, &cf):
		s.Activity.Event(ctx, "purchase_failed_insufficient_stock", username, detail)
	}
}

func nextPurchaseID(purchases []models.Purchase) int {
	next := 1
	for _, p := range purchases {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return next
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
