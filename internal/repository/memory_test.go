package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onecheckout/checkout-demo/internal/model"
)

func newOrder(id string) *model.Order {
	now := time.Now()
	return &model.Order{
		ID:        id,
		Status:    model.StatusPending,
		Subtotal:  5,
		Amount:    5,
		Currency:  "usd",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestMemoryStore_PutAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	order := newOrder("ord_1")
	require.NoError(t, store.Put(ctx, order))
	assert.Equal(t, int64(1), order.Version)

	got, err := store.Get(ctx, "ord_1")
	require.NoError(t, err)
	assert.Equal(t, order, got)

	// the stored copy is isolated from later caller mutation
	order.Status = model.StatusFailed
	got, err = store.Get(ctx, "ord_1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status)
}

func TestMemoryStore_GetNotFound(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "ord_missing")

	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

func TestMemoryStore_PutBumpsVersion(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	order := newOrder("ord_1")
	require.NoError(t, store.Put(ctx, order))
	require.NoError(t, store.Put(ctx, order))

	assert.Equal(t, int64(2), order.Version)
}

func TestMemoryStore_ListAllPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, id := range []string{"ord_b", "ord_a", "ord_c"} {
		require.NoError(t, store.Put(ctx, newOrder(id)))
	}

	orders, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "ord_b", orders[0].ID)
	assert.Equal(t, "ord_a", orders[1].ID)
	assert.Equal(t, "ord_c", orders[2].ID)
}

func TestMemoryStore_CompareAndSwap(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	order := newOrder("ord_1")
	require.NoError(t, store.Put(ctx, order))

	updated := *order
	updated.Status = model.StatusSuccess
	require.NoError(t, store.CompareAndSwap(ctx, 1, &updated))
	assert.Equal(t, int64(2), updated.Version)

	// stale version loses
	stale := *order
	stale.Status = model.StatusFailed
	err := store.CompareAndSwap(ctx, 1, &stale)
	assert.ErrorIs(t, err, model.ErrVersionConflict)

	got, err := store.Get(ctx, "ord_1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusSuccess, got.Status)
}

func TestMemoryStore_CompareAndSwapMissing(t *testing.T) {
	store := NewMemoryStore()

	err := store.CompareAndSwap(context.Background(), 0, newOrder("ord_missing"))

	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

func TestMemoryStore_ConcurrentCASExactlyOneWinner(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, newOrder("ord_1")))

	const workers = 16
	var wg sync.WaitGroup
	wins := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			next := *newOrder("ord_1")
			next.Status = model.StatusSuccess
			if store.CompareAndSwap(ctx, 1, &next) == nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	count := 0
	for range wins {
		count++
	}
	assert.Equal(t, 1, count)
}
