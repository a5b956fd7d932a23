package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// The scenario from the demo data: Widget with stock 5 at 10.0, bought 3 at a
// time.
func TestPurchaseScenario(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice")
	env.seedUser(t, "bob")
	ctx := context.Background()

	item, err := env.Catalog.CreateItem(ctx, "alice", "Widget", 5, 10.0, nil)
	require.NoError(t, err)
	require.Equal(t, 1, item.ID)

	purchase, err := env.Purchases.Purchase(ctx, "bob", 1, 3, "")
	require.NoError(t, err)
	require.Equal(t, 1, purchase.ID)
	require.Equal(t, 1, purchase.ItemID)
	require.Equal(t, 3, purchase.Quantity)
	require.Equal(t, "bob", purchase.Buyer)
	require.Equal(t, 30.0, purchase.TotalPrice)

	items, err := env.Catalog.ListItems(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, items[0].Quantity)

	_, err = env.Purchases.Purchase(ctx, "bob", 1, 3, "")
	var cf *ConflictError
	require.ErrorAs(t, err, &cf)

	items, err = env.Catalog.ListItems(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, items[0].Quantity)

	purchases, err := env.Purchases.ListPurchases(ctx, "")
	require.NoError(t, err)
	require.Len(t, purchases, 1)
}

func TestPurchaseItemNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "bob")

	_, err := env.Purchases.Purchase(context.Background(), "bob", 42, 1, "")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestPurchaseUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Purchases.Purchase(context.Background(), "ghost", 1, 1, "")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestPurchaseRejectsNonPositiveQuantity(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice")
	ctx := context.Background()

	_, err := env.Catalog.CreateItem(ctx, "alice", "Widget", 5, 10.0, nil)
	require.NoError(t, err)

	for _, q := range []int{0, -3} {
		_, err := env.Purchases.Purchase(ctx, "alice", 1, q, "")
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
	}

	items, err := env.Catalog.ListItems(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, items[0].Quantity)
}

func TestPurchaseBuyerDefaultsToUsername(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice")
	env.seedUser(t, "bob")
	ctx := context.Background()

	_, err := env.Catalog.CreateItem(ctx, "alice", "Widget", 5, 10.0, nil)
	require.NoError(t, err)

	p1, err := env.Purchases.Purchase(ctx, "bob", 1, 1, "")
	require.NoError(t, err)
	require.Equal(t, "bob", p1.Buyer)

	p2, err := env.Purchases.Purchase(ctx, "bob", 1, 1, "robert")
	require.NoError(t, err)
	require.Equal(t, "robert", p2.Buyer)
}

func TestPurchaseTotalRoundedToCents(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice")
	ctx := context.Background()

	_, err := env.Catalog.CreateItem(ctx, "alice", "Widget", 10, 0.1, nil)
	require.NoError(t, err)

	p, err := env.Purchases.Purchase(ctx, "alice", 1, 3, "")
	require.NoError(t, err)
	require.Equal(t, 0.3, p.TotalPrice)
}

func TestListPurchasesFiltersByUser(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice")
	env.seedUser(t, "bob")
	ctx := context.Background()

	_, err := env.Catalog.CreateItem(ctx, "alice", "Widget", 10, 1.0, nil)
	require.NoError(t, err)

	_, err = env.Purchases.Purchase(ctx, "alice", 1, 1, "")
	require.NoError(t, err)
	_, err = env.Purchases.Purchase(ctx, "bob", 1, 2, "")
	require.NoError(t, err)

	all, err := env.Purchases.ListPurchases(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	bobs, err := env.Purchases.ListPurchases(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, bobs, 1)
	require.Equal(t, 2, bobs[0].Quantity)

	_, err = env.Purchases.ListPurchases(ctx, "ghost")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

// Concurrent purchases of the same item must never drive stock negative; the
// losers get a conflict instead.
func TestConcurrentPurchasesNeverOversell(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice")
	env.seedUser(t, "bob")
	ctx := context.Background()

	const stock = 10
	_, err := env.Catalog.CreateItem(ctx, "alice", "Widget", stock, 1.0, nil)
	require.NoError(t, err)

	const buyers = 25
	var wg sync.WaitGroup
	errs := make([]error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.Purchases.Purchase(ctx, "bob", 1, 1, "")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			var cf *ConflictError
			require.ErrorAs(t, err, &cf)
		}
	}
	require.Equal(t, stock, succeeded)

	items, err := env.Catalog.ListItems(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, items[0].Quantity)

	purchases, err := env.Purchases.ListPurchases(ctx, "")
	require.NoError(t, err)
	require.Len(t, purchases, stock)
}
