package service

import (
	"context"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"

	"github.com/pocketshop/backend/internal/events"
	"github.com/pocketshop/backend/internal/logging"
	"github.com/pocketshop/backend/internal/models"
	"github.com/pocketshop/backend/internal/repo"
	"github.com/pocketshop/backend/internal/service/search"
	"github.com/pocketshop/backend/internal/transport"
)

// MaxImageBytes caps uploaded shop and product images at 5 MB.
const MaxImageBytes = 5 << 20

type VendorService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
	ES       *elasticsearch.Client
}

func (s *VendorService) indexProduct(ctx context.Context, product models.Product) {
	if s.ES == nil {
		return
	}
	if err := search.IndexProduct(ctx, s.ES, search.ProductIndex, product); err != nil {
		logging.FromContext(ctx).Error("es_index_error", "product_id", product.ID, "error", err)
	}
}

func (s *VendorService) unindexProduct(ctx context.Context, productID string) {
	if s.ES == nil {
		return
	}
	if err := search.DeleteProduct(ctx, s.ES, search.ProductIndex, productID); err != nil {
		logging.FromContext(ctx).Error("es_delete_error", "product_id", productID, "error", err)
	}
}

func (s *VendorService) publish(ctx context.Context, topic, key string, event map[string]any) {
	if s.Producer == nil {
		return
	}
	if err := s.Producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "topic", topic, "error", err)
	}
}

func (s *VendorService) CreateShop(ctx context.Context, vendorID string, req transport.CreateShopRequest) (*models.Shop, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: shop name cannot be empty", ErrValidation)
	}
	if len(req.Image) > MaxImageBytes {
		return nil, fmt.Errorf("%w: uploaded image size must be less than 5MB", ErrValidation)
	}

	shop := models.Shop{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		LocationID:  req.LocationID,
		IsClosed:    false,
		OwnerID:     vendorID,
	}
	if err := s.Repo.CreateShop(ctx, shop, req.Image); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TopicShopEvents, shop.ID, map[string]any{
		"type":   "shop_created",
		"shopID": shop.ID,
		"name":   shop.Name,
	})
	return &shop, nil
}

// EditShop validates field by field and reports the first failing rule only.
func (s *VendorService) EditShop(ctx context.Context, vendorID, shopID string, req transport.EditShopRequest) (*models.Shop, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: shop name cannot be empty", ErrValidation)
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: shop description cannot be empty", ErrValidation)
	}
	if req.LocationID == "" {
		return nil, fmt.Errorf("%w: shop location cannot be empty", ErrValidation)
	}
	seen := make(map[string]bool, len(req.Categories))
	for _, title := range req.Categories {
		if title == "" {
			return nil, fmt.Errorf("%w: shop category cannot be blank", ErrValidation)
		}
		if seen[title] {
			return nil, fmt.Errorf("%w: shop category cannot be repeated", ErrValidation)
		}
		seen[title] = true
	}
	if len(req.Categories) == 0 {
		return nil, fmt.Errorf("%w: shop must have at least 1 category", ErrValidation)
	}
	if len(req.Image) > MaxImageBytes {
		return nil, fmt.Errorf("%w: uploaded image size must be less than 5MB", ErrValidation)
	}

	current, err := s.ownedShop(ctx, vendorID, shopID)
	if err != nil {
		return nil, err
	}

	categories := make([]models.ShopCategory, len(req.Categories))
	for i, title := range req.Categories {
		categories[i] = models.ShopCategory{ShopID: shopID, Title: title, OrderingIndex: i}
	}
	edited := models.Shop{
		ID:          shopID,
		Name:        req.Name,
		Description: req.Description,
		LocationID:  req.LocationID,
		ImageURL:    current.ImageURL,
		IsClosed:    current.IsClosed,
		OwnerID:     current.OwnerID,
		Categories:  categories,
	}
	if err := s.Repo.EditShop(ctx, edited, req.Image); err != nil {
		return nil, mapNotFound(err)
	}

	s.publish(ctx, events.TopicShopEvents, shopID, map[string]any{
		"type":   "shop_updated",
		"shopID": shopID,
		"name":   edited.Name,
	})
	return s.Repo.ShopByID(ctx, shopID)
}

func (s *VendorService) SetShopClosed(ctx context.Context, vendorID, shopID string, closed bool) error {
	if _, err := s.ownedShop(ctx, vendorID, shopID); err != nil {
		return err
	}
	if err := s.Repo.SetShopClosed(ctx, shopID, closed); err != nil {
		return mapNotFound(err)
	}
	s.publish(ctx, events.TopicShopEvents, shopID, map[string]any{
		"type":   "shop_closed_changed",
		"shopID": shopID,
		"closed": closed,
	})
	return nil
}

func (s *VendorService) CreateProduct(ctx context.Context, vendorID, shopID string, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}

	shop, err := s.ownedShop(ctx, vendorID, shopID)
	if err != nil {
		return nil, err
	}

	product := models.Product{
		ID:                    uuid.NewString(),
		ShopID:                shop.ID,
		ShopName:              shop.Name,
		Name:                  req.Name,
		Description:           req.Description,
		Price:                 req.Price,
		ImageURL:              req.ImageURL,
		EstimatedPrepTime:     req.EstimatedPrepTime,
		CategoryOrderingIndex: req.CategoryOrderingIndex,
	}
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TopicProductEvents, product.ID, map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
	})
	s.indexProduct(ctx, product)
	return &product, nil
}

func (s *VendorService) EditProduct(ctx context.Context, vendorID, shopID, productID string, req transport.EditProductRequest) (*models.Product, error) {
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if _, err := s.ownedShop(ctx, vendorID, shopID); err != nil {
		return nil, err
	}

	product, err := s.Repo.ProductByID(ctx, productID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if product.ShopID != shopID {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.EstimatedPrepTime != nil {
		product.EstimatedPrepTime = *req.EstimatedPrepTime
	}
	if req.CategoryOrderingIndex != nil {
		product.CategoryOrderingIndex = *req.CategoryOrderingIndex
	}
	if req.IsOutOfStock != nil {
		product.IsOutOfStock = *req.IsOutOfStock
	}

	if err := s.Repo.EditProduct(ctx, *product); err != nil {
		return nil, mapNotFound(err)
	}

	s.publish(ctx, events.TopicProductEvents, product.ID, map[string]any{
		"type":      "product_updated",
		"productID": product.ID,
		"name":      product.Name,
	})
	s.indexProduct(ctx, *product)
	return product, nil
}

func (s *VendorService) DeleteProduct(ctx context.Context, vendorID, shopID, productID string) error {
	if _, err := s.ownedShop(ctx, vendorID, shopID); err != nil {
		return err
	}
	if err := s.Repo.DeleteProduct(ctx, shopID, productID); err != nil {
		return mapNotFound(err)
	}
	s.publish(ctx, events.TopicProductEvents, productID, map[string]any{
		"type":      "product_deleted",
		"productID": productID,
	})
	s.unindexProduct(ctx, productID)
	return nil
}

func (s *VendorService) MoveProduct(ctx context.Context, vendorID, shopID string, req transport.MoveProductRequest) error {
	if _, err := s.ownedShop(ctx, vendorID, shopID); err != nil {
		return err
	}
	return mapNotFound(s.Repo.MoveProduct(ctx, shopID, req.ProductID, req.ToPosition))
}

// AdvanceOrder moves an order of the vendor's shop one step further along the
// preparation chain.
func (s *VendorService) AdvanceOrder(ctx context.Context, vendorID, orderID string) (*models.Order, error) {
	order, err := s.Repo.OrderByID(ctx, orderID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if _, err := s.ownedShop(ctx, vendorID, order.ShopID); err != nil {
		return nil, err
	}

	next, ok := order.Status.Next()
	if !ok {
		return nil, fmt.Errorf("%w: %s has no next stage", models.ErrInvalidTransition, order.Status)
	}
	updated, err := s.Repo.UpdateOrderStatus(ctx, orderID, next)
	if err != nil {
		return nil, mapNotFound(err)
	}

	s.publish(ctx, events.TopicOrderEvents, orderID, map[string]any{
		"type":    "order_status_changed",
		"orderID": orderID,
		"status":  string(updated.Status),
	})
	return &updated, nil
}

func (s *VendorService) ownedShop(ctx context.Context, vendorID, shopID string) (*models.Shop, error) {
	shop, err := s.Repo.ShopByID(ctx, shopID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if shop.OwnerID != vendorID {
		return nil, ErrNotFound
	}
	return shop, nil
}
