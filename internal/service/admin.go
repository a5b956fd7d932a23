package service

import (
	"context"

	"github.com/mbalagam/marketplace/internal/activity"
	"github.com/mbalagam/marketplace/internal/models"
	"github.com/mbalagam/marketplace/internal/store"
)

type AdminService struct {
	Store    *store.Store
	Activity *activity.Logger
}

// Reset truncates listings and purchases. Users survive. Irreversible, meant
// for local demo use.
func (s *AdminService) Reset(ctx context.Context) error {
	if err := s.Store.SaveItems([]models.Item{}); err != nil {
		return err
	}
	if err := s.Store.SavePurchases([]models.Purchase{}); err != nil {
		return err
	}
	s.Activity.Event(ctx, "reset_data", "", nil)
	return nil
}
