package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketshop/backend/internal/models"
	"github.com/pocketshop/backend/internal/transport"
)

func TestCreateShop(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.Vendor.CreateShop(ctx, env.VendorID, transport.CreateShopRequest{Name: ""})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	shop, err := env.Vendor.CreateShop(ctx, env.VendorID, transport.CreateShopRequest{
		Name:        "Liho",
		Description: "more tea",
		LocationID:  "loc-2",
	})
	require.NoError(t, err)
	assert.False(t, shop.IsClosed)
	assert.Empty(t, shop.Categories)
	assert.Empty(t, shop.SoldProducts)
	assert.Equal(t, env.VendorID, shop.OwnerID)
}

func TestEditShop_ValidationOrder(t *testing.T) {
	t.Parallel()

	valid := transport.EditShopRequest{
		Name:        "Gong Cha",
		Description: "bubble tea",
		LocationID:  "loc-1",
		Categories:  []string{"Drinks", "Snacks"},
	}

	tests := []struct {
		name    string
		mutate  func(*transport.EditShopRequest)
		wantMsg string
	}{
		{
			name:    "empty name",
			mutate:  func(r *transport.EditShopRequest) { r.Name = "" },
			wantMsg: "shop name cannot be empty",
		},
		{
			name:    "empty description",
			mutate:  func(r *transport.EditShopRequest) { r.Description = "" },
			wantMsg: "shop description cannot be empty",
		},
		{
			name:    "empty location",
			mutate:  func(r *transport.EditShopRequest) { r.LocationID = "" },
			wantMsg: "shop location cannot be empty",
		},
		{
			name:    "blank category",
			mutate:  func(r *transport.EditShopRequest) { r.Categories = []string{"Drinks", ""} },
			wantMsg: "shop category cannot be blank",
		},
		{
			name:    "duplicate category",
			mutate:  func(r *transport.EditShopRequest) { r.Categories = []string{"Drinks", "Drinks"} },
			wantMsg: "shop category cannot be repeated",
		},
		{
			name:    "no categories",
			mutate:  func(r *transport.EditShopRequest) { r.Categories = nil },
			wantMsg: "shop must have at least 1 category",
		},
		{
			name:    "oversized image",
			mutate:  func(r *transport.EditShopRequest) { r.Image = make([]byte, MaxImageBytes+1) },
			wantMsg: "less than 5MB",
		},
		{
			name: "name checked before categories",
			mutate: func(r *transport.EditShopRequest) {
				r.Name = ""
				r.Categories = []string{"Drinks", "Drinks"}
			},
			wantMsg: "shop name cannot be empty",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t)
			ctx := context.Background()

			req := valid
			tt.mutate(&req)

			_, err := env.Vendor.EditShop(ctx, env.VendorID, env.Shop.ID, req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.ErrorContains(t, err, tt.wantMsg)

			// failed validation must not touch the stored shop
			stored, err := env.Repo.ShopByID(ctx, env.Shop.ID)
			require.NoError(t, err)
			assert.Equal(t, env.Shop.Name, stored.Name)
			require.Len(t, stored.Categories, 2)
			assert.Equal(t, "Drinks", stored.Categories[0].Title)
			assert.Equal(t, "Snacks", stored.Categories[1].Title)
		})
	}
}

func TestEditShop_ReplacesCategories(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	shop, err := env.Vendor.EditShop(ctx, env.VendorID, env.Shop.ID, transport.EditShopRequest{
		Name:        "Gong Cha 2",
		Description: "new description",
		LocationID:  "loc-9",
		Categories:  []string{"Teas", "Coffees", "Bites"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Gong Cha 2", shop.Name)
	require.Len(t, shop.Categories, 3)
	for i, title := range []string{"Teas", "Coffees", "Bites"} {
		assert.Equal(t, title, shop.Categories[i].Title)
		assert.Equal(t, i, shop.Categories[i].OrderingIndex)
	}
	// sold products untouched by a shop edit
	assert.Len(t, shop.SoldProducts, 3)
}

func TestEditShop_NotOwner(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	_, err := env.Vendor.EditShop(context.Background(), "other-vendor", env.Shop.ID, transport.EditShopRequest{
		Name:        "Taken Over",
		Description: "d",
		LocationID:  "l",
		Categories:  []string{"Drinks"},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateProduct(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.Vendor.CreateProduct(ctx, env.VendorID, env.Shop.ID, transport.CreateProductRequest{
		Name:  "Oolong",
		Price: -1,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	product, err := env.Vendor.CreateProduct(ctx, env.VendorID, env.Shop.ID, transport.CreateProductRequest{
		Name:                  "Oolong",
		Price:                 3,
		CategoryOrderingIndex: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, env.Shop.Name, product.ShopName)

	shop, err := env.Repo.ShopByID(ctx, env.Shop.ID)
	require.NoError(t, err)
	require.Len(t, shop.SoldProducts, 4)
	assert.Equal(t, "Oolong", shop.SoldProducts[3].Name, "new product appends to the sold products sequence")
}

func TestCreateProduct_NoShop(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	_, err := env.Vendor.CreateProduct(context.Background(), env.VendorID, "no-such-shop", transport.CreateProductRequest{
		Name:  "Oolong",
		Price: 3,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEditProduct(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	newPrice := 4.5
	product, err := env.Vendor.EditProduct(ctx, env.VendorID, env.Shop.ID, env.P1.ID, transport.EditProductRequest{
		Price: &newPrice,
	})
	require.NoError(t, err)
	assert.InDelta(t, 4.5, product.Price, 1e-9)
	assert.Equal(t, env.P1.Name, product.Name, "unset fields keep their values")

	badPrice := -0.5
	_, err = env.Vendor.EditProduct(ctx, env.VendorID, env.Shop.ID, env.P1.ID, transport.EditProductRequest{
		Price: &badPrice,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteProduct(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.Vendor.DeleteProduct(ctx, env.VendorID, env.Shop.ID, env.P2.ID))

	err := env.Vendor.DeleteProduct(ctx, env.VendorID, env.Shop.ID, env.P2.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	shop, err := env.Repo.ShopByID(ctx, env.Shop.ID)
	require.NoError(t, err)
	assert.Len(t, shop.SoldProducts, 2)
}

func TestMoveProduct(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	// Drinks currently [P1, P3]; move P3 to the front
	require.NoError(t, env.Vendor.MoveProduct(ctx, env.VendorID, env.Shop.ID, transport.MoveProductRequest{
		ProductID:  env.P3.ID,
		ToPosition: 0,
	}))

	shop, err := env.Repo.ShopByID(ctx, env.Shop.ID)
	require.NoError(t, err)
	groups := GroupCatalog(*shop)

	require.Len(t, groups, 2)
	require.Len(t, groups[0].Products, 2)
	assert.Equal(t, env.P3.ID, groups[0].Products[0].ID)
	assert.Equal(t, env.P1.ID, groups[0].Products[1].ID)

	// Snacks unaffected
	require.Len(t, groups[1].Products, 1)
	assert.Equal(t, env.P2.ID, groups[1].Products[0].ID)
}

func TestAdvanceOrder(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	order, err := env.Orders.PlaceOrder(ctx, env.CustomerID, transport.PlaceOrderRequest{
		ProductID: env.P1.ID,
		Quantity:  1,
	})
	require.NoError(t, err)

	want := []models.OrderStatus{models.StatusPreparing, models.StatusReady, models.StatusCollected}
	for _, status := range want {
		advanced, err := env.Vendor.AdvanceOrder(ctx, env.VendorID, order.ID)
		require.NoError(t, err)
		assert.Equal(t, status, advanced.Status)
	}

	_, err = env.Vendor.AdvanceOrder(ctx, env.VendorID, order.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestAdvanceOrder_NotShopOwner(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	order, err := env.Orders.PlaceOrder(ctx, env.CustomerID, transport.PlaceOrderRequest{
		ProductID: env.P1.ID,
		Quantity:  1,
	})
	require.NoError(t, err)

	_, err = env.Vendor.AdvanceOrder(ctx, "other-vendor", order.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
