package service

import (
	"context"

	"github.com/mbalagam/marketplace/internal/activity"
	"github.com/mbalagam/marketplace/internal/models"
	"github.com/mbalagam/marketplace/internal/store"
)

type ActivityService struct {
	Store    *store.Store
	Activity *activity.Logger
}

// UserActivity aggregates a user's listings and purchases. A user with no
// activity gets all-zero counters, not an error.
func (s *ActivityService) UserActivity(ctx context.Context, username string) (*models.UserActivity, error) {
	user, err := requireUser(s.Store, username)
	if err != nil {
		return nil, err
	}

	items, err := s.Store.LoadItems()
	if err != nil {
		return nil, err
	}
	purchases, err := s.Store.LoadPurchases()
	if err != nil {
		return nil, err
	}

	summary := &models.UserActivity{
		UserID:   user.ID,
		Username: user.Username,
	}
	for _, it := range items {
		if it.UserID != nil && *it.UserID == user.ID {
			summary.ListingsCount++
			summary.TotalItemsListed += it.Quantity
		}
	}
	var spent float64
	for _, p := range purchases {
		if p.UserID != nil && *p.UserID == user.ID {
			summary.PurchasesCount++
			summary.TotalItemsPurchased += p.Quantity
			spent += p.TotalPrice
		}
	}
	summary.TotalSpent = round2(spent)

	s.Activity.Event(ctx, "get_user_activity", user.Username, map[string]any{
		"user_id":         user.ID,
		"listings_count":  summary.ListingsCount,
		"purchases_count": summary.PurchasesCount,
		"username":        user.Username,
	})
	return summary, nil
}
