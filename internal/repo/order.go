package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pocketshop/backend/internal/models"
	"github.com/pocketshop/backend/internal/transport"
)

// CreateOrder persists the order and assigns its collection number from the
// shop's counter inside the same transaction. The counter bump is a single
// UPDATE, never a read-modify-write from client state.
func (r *GormRepo) CreateOrder(ctx context.Context, order models.Order) (models.Order, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Shop{}).Where("id = ?", order.ShopID).
			UpdateColumn("next_collection_no", gorm.Expr("next_collection_no + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var shop models.Shop
		if err := tx.Select("next_collection_no").First(&shop, "id = ?", order.ShopID).Error; err != nil {
			return err
		}
		order.CollectionNo = shop.NextCollectionNo

		rec, err := transport.NewOrderSchema(order).ToRecord()
		if err != nil {
			return err
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return models.Order{}, err
	}

	r.notifyCustomerOrders(ctx, order.CustomerID)
	r.notifyShopOrders(ctx, order.ShopID)
	order.Total = order.ComputeTotal()
	return order, nil
}

// UpdateOrderStatus applies a state machine transition atomically. The check
// runs against the stored status inside the transaction, so a concurrent
// transition cannot slip an order out of a terminal state.
func (r *GormRepo) UpdateOrderStatus(ctx context.Context, orderID string, next models.OrderStatus) (models.Order, error) {
	var updated models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec models.OrderRecord
		if err := tx.First(&rec, "id = ?", orderID).Error; err != nil {
			return err
		}

		schema, err := transport.SchemaFromRecord(rec)
		if err != nil {
			return err
		}
		order := schema.ToOrder()
		if err := order.TransitionTo(next); err != nil {
			return err
		}

		rec, err = transport.NewOrderSchema(order).ToRecord()
		if err != nil {
			return err
		}
		if err := tx.Save(&rec).Error; err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}

	r.notifyCustomerOrders(ctx, updated.CustomerID)
	r.notifyShopOrders(ctx, updated.ShopID)
	return updated, nil
}

// CancelOrder is the customer-side transition: only the owning customer may
// cancel, and only while the order is still active.
func (r *GormRepo) CancelOrder(ctx context.Context, orderID, customerID string) (models.Order, error) {
	order, err := r.OrderByID(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}
	if order.CustomerID != customerID {
		return models.Order{}, gorm.ErrRecordNotFound
	}
	return r.UpdateOrderStatus(ctx, orderID, models.StatusCancelled)
}

func (r *GormRepo) OrderByID(ctx context.Context, orderID string) (models.Order, error) {
	var rec models.OrderRecord
	if err := r.DB.WithContext(ctx).First(&rec, "id = ?", orderID).Error; err != nil {
		return models.Order{}, err
	}
	schema, err := transport.SchemaFromRecord(rec)
	if err != nil {
		return models.Order{}, err
	}
	return schema.ToOrder(), nil
}

func (r *GormRepo) OrdersByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	var recs []models.OrderRecord
	if err := r.DB.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("date DESC").
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return decodeOrders(recs)
}

func (r *GormRepo) OrdersByShop(ctx context.Context, shopID string) ([]models.Order, error) {
	var recs []models.OrderRecord
	if err := r.DB.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("date DESC").
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return decodeOrders(recs)
}

func (r *GormRepo) WatchOrdersByCustomer(ctx context.Context, customerID string) (<-chan []models.Order, func(), error) {
	ch, cancel := r.hub.SubscribeOrders("customer:" + customerID)
	r.notifyCustomerOrders(ctx, customerID)
	return ch, cancel, nil
}

func (r *GormRepo) WatchOrdersByShop(ctx context.Context, shopID string) (<-chan []models.Order, func(), error) {
	ch, cancel := r.hub.SubscribeOrders("shop:" + shopID)
	r.notifyShopOrders(ctx, shopID)
	return ch, cancel, nil
}

func decodeOrders(recs []models.OrderRecord) ([]models.Order, error) {
	orders := make([]models.Order, 0, len(recs))
	for _, rec := range recs {
		schema, err := transport.SchemaFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", rec.ID, err)
		}
		orders = append(orders, schema.ToOrder())
	}
	return orders, nil
}
