package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketshop/backend/internal/models"
	"github.com/pocketshop/backend/internal/transport"
)

func TestPlaceOrder_QuantityBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		quantity int
		wantErr  bool
	}{
		{name: "zero rejected", quantity: 0, wantErr: true},
		{name: "minimum accepted", quantity: 1},
		{name: "maximum accepted", quantity: 1000},
		{name: "above maximum rejected", quantity: 1001},
		{name: "negative rejected", quantity: -3, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t)
			ctx := context.Background()

			order, err := env.Orders.PlaceOrder(ctx, env.CustomerID, transport.PlaceOrderRequest{
				ProductID: env.P1.ID,
				Quantity:  tt.quantity,
			})
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.StatusAccepted, order.Status)
			assert.Equal(t, tt.quantity, order.Products[0].Quantity)
		})
	}
}

func TestPlaceOrder_ComputesTotal(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	order, err := env.Orders.PlaceOrder(ctx, env.CustomerID, transport.PlaceOrderRequest{
		ProductID: env.P1.ID,
		Quantity:  2,
		Choices: []models.OptionChoice{
			{Description: "pearls", Cost: 0.5},
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, 3.5*2+0.5, order.Total, 1e-9)
	assert.Equal(t, env.Shop.Name, order.ShopName)
	require.Len(t, order.Products, 1)
	assert.Equal(t, env.P1.Name, order.Products[0].ProductName)
}

func TestPlaceOrder_ShopClosed(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.Repo.SetShopClosed(ctx, env.Shop.ID, true))

	_, err := env.Orders.PlaceOrder(ctx, env.CustomerID, transport.PlaceOrderRequest{
		ProductID: env.P1.ID,
		Quantity:  1,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShopClosed)
}

func TestPlaceOrder_OutOfStock(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	outOfStock := true
	_, err := env.Vendor.EditProduct(ctx, env.VendorID, env.Shop.ID, env.P1.ID, transport.EditProductRequest{
		IsOutOfStock: &outOfStock,
	})
	require.NoError(t, err)

	_, err = env.Orders.PlaceOrder(ctx, env.CustomerID, transport.PlaceOrderRequest{
		ProductID: env.P1.ID,
		Quantity:  1,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	_, err := env.Orders.PlaceOrder(context.Background(), env.CustomerID, transport.PlaceOrderRequest{
		ProductID: "no-such-product",
		Quantity:  1,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlaceOrder_CollectionNumbersAreSequential(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	seen := make(map[int]bool)
	for i := 1; i <= 3; i++ {
		order, err := env.Orders.PlaceOrder(ctx, env.CustomerID, transport.PlaceOrderRequest{
			ProductID: env.P1.ID,
			Quantity:  1,
		})
		require.NoError(t, err)
		assert.Equal(t, i, order.CollectionNo)
		assert.False(t, seen[order.CollectionNo], "collection numbers must be unique per shop")
		seen[order.CollectionNo] = true
	}
}

func TestCancelOrder(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	order, err := env.Orders.PlaceOrder(ctx, env.CustomerID, transport.PlaceOrderRequest{
		ProductID: env.P1.ID,
		Quantity:  1,
	})
	require.NoError(t, err)

	cancelled, err := env.Orders.CancelOrder(ctx, env.CustomerID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
}

func TestCancelOrder_TerminalFails(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	order, err := env.Orders.PlaceOrder(ctx, env.CustomerID, transport.PlaceOrderRequest{
		ProductID: env.P1.ID,
		Quantity:  1,
	})
	require.NoError(t, err)

	for _, next := range []models.OrderStatus{models.StatusPreparing, models.StatusReady, models.StatusCollected} {
		_, err = env.Repo.UpdateOrderStatus(ctx, order.ID, next)
		require.NoError(t, err)
	}

	_, err = env.Orders.CancelOrder(ctx, env.CustomerID, order.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	stored, err := env.Repo.OrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCollected, stored.Status, "failed cancel must leave status unchanged")
}

func TestCancelOrder_NotOwner(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	order, err := env.Orders.PlaceOrder(ctx, env.CustomerID, transport.PlaceOrderRequest{
		ProductID: env.P1.ID,
		Quantity:  1,
	})
	require.NoError(t, err)

	_, err = env.Orders.CancelOrder(ctx, "someone-else", order.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	stored, err := env.Repo.OrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, stored.Status)
}

func TestOrderSurvivesProductDeletion(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	order, err := env.Orders.PlaceOrder(ctx, env.CustomerID, transport.PlaceOrderRequest{
		ProductID: env.P1.ID,
		Quantity:  2,
	})
	require.NoError(t, err)

	require.NoError(t, env.Vendor.DeleteProduct(ctx, env.VendorID, env.Shop.ID, env.P1.ID))

	shop, err := env.Repo.ShopByID(ctx, env.Shop.ID)
	require.NoError(t, err)
	for _, p := range shop.SoldProducts {
		assert.NotEqual(t, env.P1.ID, p.ID)
	}

	stored, err := env.Repo.OrderByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, stored.Products, 1)
	assert.Equal(t, env.P1.Name, stored.Products[0].ProductName)
	assert.InDelta(t, env.P1.Price, stored.Products[0].Price, 1e-9)
	assert.InDelta(t, env.P1.Price*2, stored.Total, 1e-9)
}
