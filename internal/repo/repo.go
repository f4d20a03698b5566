package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/pocketshop/backend/internal/logging"
)

// GormRepo is the persistence gateway. Every mutation rebroadcasts the
// affected collections as full snapshots through the hub.
type GormRepo struct {
	DB  *gorm.DB
	hub *Hub
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db, hub: NewHub()}
}

func (r *GormRepo) notifyShops(ctx context.Context, ownerID string) {
	shops, err := r.ShopsByOwner(ctx, ownerID)
	if err != nil {
		logging.FromContext(ctx).Error("shop_snapshot_error", "owner_id", ownerID, "error", err)
		return
	}
	r.hub.PublishShops(ownerID, shops)
}

func (r *GormRepo) notifyCustomerOrders(ctx context.Context, customerID string) {
	orders, err := r.OrdersByCustomer(ctx, customerID)
	if err != nil {
		logging.FromContext(ctx).Error("order_snapshot_error", "customer_id", customerID, "error", err)
		return
	}
	r.hub.PublishOrders("customer:"+customerID, orders)
}

func (r *GormRepo) notifyShopOrders(ctx context.Context, shopID string) {
	orders, err := r.OrdersByShop(ctx, shopID)
	if err != nil {
		logging.FromContext(ctx).Error("order_snapshot_error", "shop_id", shopID, "error", err)
		return
	}
	r.hub.PublishOrders("shop:"+shopID, orders)
}
