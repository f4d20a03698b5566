package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pocketshop/backend/internal/events"
	"github.com/pocketshop/backend/internal/logging"
	"github.com/pocketshop/backend/internal/models"
	"github.com/pocketshop/backend/internal/repo"
	"github.com/pocketshop/backend/internal/transport"
)

const (
	MinOrderQuantity = 1
	MaxOrderQuantity = 1000
)

type OrderService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
}

func (s *OrderService) publish(ctx context.Context, key string, event map[string]any) {
	if s.Producer == nil {
		return
	}
	if err := s.Producer.PublishEvent(ctx, events.TopicOrderEvents, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "topic", events.TopicOrderEvents, "error", err)
	}
}

// PlaceOrder builds a single-line order snapshotting the product's current
// name and price, and enters the state machine at accepted.
func (s *OrderService) PlaceOrder(ctx context.Context, customerID string, req transport.PlaceOrderRequest) (*models.Order, error) {
	if req.Quantity < MinOrderQuantity || req.Quantity > MaxOrderQuantity {
		return nil, fmt.Errorf("%w: quantity must be between %d and %d", ErrValidation, MinOrderQuantity, MaxOrderQuantity)
	}

	product, err := s.Repo.ProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if product.IsOutOfStock {
		return nil, fmt.Errorf("%w: product is out of stock", ErrValidation)
	}

	shop, err := s.Repo.ShopByID(ctx, product.ShopID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if shop.IsClosed {
		return nil, fmt.Errorf("%w: %s", ErrShopClosed, shop.Name)
	}

	line := models.OrderProduct{
		ID:          uuid.NewString(),
		ProductID:   product.ID,
		ProductName: product.Name,
		Price:       product.Price,
		Quantity:    req.Quantity,
		Choices:     req.Choices,
		Status:      models.StatusAccepted,
	}
	order := models.Order{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		ShopID:     shop.ID,
		ShopName:   shop.Name,
		Status:     models.StatusAccepted,
		Date:       time.Now().UTC(),
		Products:   []models.OrderProduct{line},
	}

	created, err := s.Repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, mapNotFound(err)
	}

	s.publish(ctx, created.ID, map[string]any{
		"type":         "order_placed",
		"orderID":      created.ID,
		"shopID":       created.ShopID,
		"collectionNo": created.CollectionNo,
	})
	return &created, nil
}

// CancelOrder rejects loudly when the order is already terminal; the stored
// status is left untouched in that case.
func (s *OrderService) CancelOrder(ctx context.Context, customerID, orderID string) (*models.Order, error) {
	cancelled, err := s.Repo.CancelOrder(ctx, orderID, customerID)
	if err != nil {
		if errors.Is(err, models.ErrInvalidTransition) {
			return nil, err
		}
		return nil, mapNotFound(err)
	}

	s.publish(ctx, orderID, map[string]any{
		"type":    "order_cancelled",
		"orderID": orderID,
	})
	return &cancelled, nil
}

func (s *OrderService) OrdersByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	return s.Repo.OrdersByCustomer(ctx, customerID)
}
