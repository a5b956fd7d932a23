package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mbalagam/marketplace/internal/activity"
	"github.com/mbalagam/marketplace/internal/models"
	"github.com/mbalagam/marketplace/internal/store"
	"github.com/mbalagam/marketplace/internal/token"
)

type testEnv struct {
	Store     *store.Store
	Catalog   *CatalogService
	Purchases *PurchaseService
	Users     *UserService
	Activity  *ActivityService
	Admin     *AdminService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := store.Open(t.TempDir())
	require.NoError(t, err)

	alog, err := activity.NewLogger(t.TempDir(), zap.NewNop(), nil, nil)
	require.NoError(t, err)

	issuer := &token.Issuer{Secret: []byte("test-secret"), TTL: time.Minute}

	return &testEnv{
		Store:     st,
		Catalog:   &CatalogService{Store: st, Activity: alog},
		Purchases: &PurchaseService{Store: st, Activity: alog},
		Users:     &UserService{Store: st, Activity: alog, Tokens: issuer},
		Activity:  &ActivityService{Store: st, Activity: alog},
		Admin:     &AdminService{Store: st, Activity: alog},
	}
}

// seedUser inserts a user directly, skipping the bcrypt cost of Signup.
func (env *testEnv) seedUser(t *testing.T, username string) models.User {
	t.Helper()
	var created models.User
	err := env.Store.UpdateUsers(func(users []models.User) ([]models.User, error) {
		created = models.User{
			ID:           nextUserID(users),
			Username:     username,
			Email:        username + "@example.com",
			PasswordHash: "not-a-real-hash",
		}
		return append(users, created), nil
	})
	require.NoError(t, err)
	return created
}
