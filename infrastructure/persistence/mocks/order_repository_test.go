package mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"storefront/domain/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeOrder(t *testing.T, id, userID string) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		id,
		userID,
		[]order.ItemRequest{{Name: "Item A", Price: 10, Quantity: 2}},
		30,
		json.RawMessage(`{}`),
		order.MethodCOD,
		"24-Jul-2025 07:45 PM",
	)
	require.NoError(t, err)
	return o
}

func TestSaveAndFind(t *testing.T) {
	repo := NewMockOrderRepository()
	ctx := context.Background()

	o := makeOrder(t, "order-1", "user-1")
	require.NoError(t, repo.Save(ctx, o))

	found, err := repo.FindByID(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, "order-1", found.ID())
	assert.Len(t, found.Items(), 1)

	_, err = repo.FindByID(ctx, "order-2")
	assert.True(t, errors.Is(err, order.ErrOrderNotFound))
}

func TestFindAllPreservesInsertionOrder(t *testing.T) {
	repo := NewMockOrderRepository()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		id := fmt.Sprintf("order-%d", i)
		require.NoError(t, repo.Save(ctx, makeOrder(t, id, "user-1")))
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, o := range all {
		assert.Equal(t, fmt.Sprintf("order-%d", i+1), o.ID())
	}
}

func TestFindByUserID(t *testing.T) {
	repo := NewMockOrderRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, makeOrder(t, "order-1", "user-1")))
	require.NoError(t, repo.Save(ctx, makeOrder(t, "order-2", "user-2")))
	require.NoError(t, repo.Save(ctx, makeOrder(t, "order-3", "user-1")))

	mine, err := repo.FindByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	none, err := repo.FindByUserID(ctx, "user-3")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReadsAreSnapshots(t *testing.T) {
	repo := NewMockOrderRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, makeOrder(t, "order-1", "user-1")))

	// Mutating a read copy must not leak into the store.
	read, err := repo.FindByID(ctx, "order-1")
	require.NoError(t, err)
	require.NoError(t, read.ConfirmPayment())

	stored, err := repo.FindByID(ctx, "order-1")
	require.NoError(t, err)
	assert.True(t, stored.IsPending())
}

func TestConfirmPaymentGuard(t *testing.T) {
	repo := NewMockOrderRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, makeOrder(t, "order-1", "user-1")))

	require.NoError(t, repo.ConfirmPayment(ctx, "order-1"))

	err := repo.ConfirmPayment(ctx, "order-1")
	assert.True(t, errors.Is(err, order.ErrOrderAlreadyResolved))

	err = repo.ConfirmPayment(ctx, "order-2")
	assert.True(t, errors.Is(err, order.ErrOrderNotFound))
}

func TestConfirmPaymentConcurrent(t *testing.T) {
	repo := NewMockOrderRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, makeOrder(t, "order-1", "user-1")))

	const callers = 16
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.ConfirmPayment(ctx, "order-1")
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.True(t, errors.Is(err, order.ErrOrderAlreadyResolved))
		}
	}
	assert.Equal(t, 1, winners)
}

func TestAttachCheckoutSession(t *testing.T) {
	repo := NewMockOrderRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, makeOrder(t, "order-1", "user-1")))
	require.NoError(t, repo.AttachCheckoutSession(ctx, "order-1", "cs_123"))

	o, err := repo.FindByID(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, "cs_123", o.CheckoutSessionID())

	// A second session on the same order is rejected.
	assert.Error(t, repo.AttachCheckoutSession(ctx, "order-1", "cs_456"))

	err = repo.AttachCheckoutSession(ctx, "order-2", "cs_789")
	assert.True(t, errors.Is(err, order.ErrOrderNotFound))
}

func TestUpdateStatusAndRemove(t *testing.T) {
	repo := NewMockOrderRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, makeOrder(t, "order-1", "user-1")))

	require.NoError(t, repo.UpdateStatus(ctx, "order-1", order.StatusShipped))
	o, err := repo.FindByID(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, o.Status())

	err = repo.UpdateStatus(ctx, "order-2", order.StatusShipped)
	assert.True(t, errors.Is(err, order.ErrOrderNotFound))

	require.NoError(t, repo.Remove(ctx, "order-1"))
	_, err = repo.FindByID(ctx, "order-1")
	assert.True(t, errors.Is(err, order.ErrOrderNotFound))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	err = repo.Remove(ctx, "order-1")
	assert.True(t, errors.Is(err, order.ErrOrderNotFound))
}
