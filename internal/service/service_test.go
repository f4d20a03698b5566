package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	dbpkg "github.com/pocketshop/backend/internal/db"
	"github.com/pocketshop/backend/internal/models"
	"github.com/pocketshop/backend/internal/repo"
)

type testEnv struct {
	Repo   *repo.GormRepo
	Vendor *VendorService
	Orders *OrderService
	Favs   *FavouriteService

	VendorID   string
	CustomerID string
	Shop       models.Shop
	P1, P2, P3 models.Product
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))
	return db
}

// newTestEnv seeds a vendor with one shop carrying the Drinks/Snacks
// categories and three products, plus one customer.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	r := repo.NewGormRepo(db)

	env := &testEnv{
		Repo:       r,
		Vendor:     &VendorService{Repo: r},
		Orders:     &OrderService{Repo: r},
		Favs:       &FavouriteService{Repo: r},
		VendorID:   "vendor-1",
		CustomerID: "customer-1",
	}

	require.NoError(t, db.Create(&models.Account{
		ID: env.VendorID, Username: "vendor", PasswordHash: "x", Role: models.RoleVendor,
	}).Error)
	require.NoError(t, db.Create(&models.Account{
		ID: env.CustomerID, Username: "customer", PasswordHash: "x", Role: models.RoleCustomer,
	}).Error)

	shop := models.Shop{
		ID:          "shop-1",
		Name:        "Gong Cha",
		Description: "bubble tea",
		LocationID:  "loc-1",
		OwnerID:     env.VendorID,
		Categories: []models.ShopCategory{
			{Title: "Drinks", OrderingIndex: 0},
			{Title: "Snacks", OrderingIndex: 1},
		},
	}
	require.NoError(t, db.Create(&shop).Error)

	env.P1 = models.Product{
		ID: "p1", ShopID: shop.ID, ShopName: shop.Name, Name: "Milk Tea",
		Price: 3.5, CategoryOrderingIndex: 0, ShopPosition: 0,
	}
	env.P2 = models.Product{
		ID: "p2", ShopID: shop.ID, ShopName: shop.Name, Name: "Egg Tart",
		Price: 2, CategoryOrderingIndex: 1, ShopPosition: 1,
	}
	env.P3 = models.Product{
		ID: "p3", ShopID: shop.ID, ShopName: shop.Name, Name: "Green Tea",
		Price: 2.5, CategoryOrderingIndex: 0, ShopPosition: 2,
	}
	require.NoError(t, db.Create(&env.P1).Error)
	require.NoError(t, db.Create(&env.P2).Error)
	require.NoError(t, db.Create(&env.P3).Error)

	loaded, err := r.ShopByID(context.Background(), shop.ID)
	require.NoError(t, err)
	env.Shop = *loaded

	return env
}
