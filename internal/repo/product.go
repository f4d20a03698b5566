package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/pocketshop/backend/internal/models"
)

func (r *GormRepo) CreateProduct(ctx context.Context, product models.Product) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var max int
		row := tx.Model(&models.Product{}).
			Where("shop_id = ?", product.ShopID).
			Select("COALESCE(MAX(shop_position), -1)").
			Row()
		if err := row.Scan(&max); err != nil {
			return err
		}
		product.ShopPosition = max + 1
		return tx.Create(&product).Error
	})
	if err != nil {
		return err
	}
	r.notifyProductChange(ctx, product.ShopID)
	return nil
}

func (r *GormRepo) EditProduct(ctx context.Context, product models.Product) error {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND shop_id = ?", product.ID, product.ShopID).
		Updates(map[string]any{
			"name":                    product.Name,
			"description":             product.Description,
			"price":                   product.Price,
			"image_url":               product.ImageURL,
			"estimated_prep_time":     product.EstimatedPrepTime,
			"is_out_of_stock":         product.IsOutOfStock,
			"category_ordering_index": product.CategoryOrderingIndex,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.notifyProductChange(ctx, product.ShopID)
	return nil
}

// DeleteProduct drops the product from the shop's sold products. Orders that
// already snapshotted it are untouched.
func (r *GormRepo) DeleteProduct(ctx context.Context, shopID, productID string) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND shop_id = ?", productID, shopID).
		Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.notifyProductChange(ctx, shopID)
	return nil
}

func (r *GormRepo) ProductByID(ctx context.Context, productID string) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, "id = ?", productID).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// MoveProduct reorders a product within its category. The category's products
// keep their existing position slots; only the order of products across those
// slots changes, so other categories are unaffected.
func (r *GormRepo) MoveProduct(ctx context.Context, shopID, productID string, toPos int) error {
	var shopOwner string
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var moved models.Product
		if err := tx.First(&moved, "id = ? AND shop_id = ?", productID, shopID).Error; err != nil {
			return err
		}

		var siblings []models.Product
		if err := tx.Where("shop_id = ? AND category_ordering_index = ?", shopID, moved.CategoryOrderingIndex).
			Order("shop_position ASC").
			Find(&siblings).Error; err != nil {
			return err
		}

		slots := make([]int, len(siblings))
		from := -1
		for i, p := range siblings {
			slots[i] = p.ShopPosition
			if p.ID == moved.ID {
				from = i
			}
		}
		if toPos < 0 {
			toPos = 0
		}
		if toPos >= len(siblings) {
			toPos = len(siblings) - 1
		}
		if from == toPos {
			return nil
		}

		reordered := make([]models.Product, 0, len(siblings))
		for i, p := range siblings {
			if i != from {
				reordered = append(reordered, p)
			}
		}
		reordered = append(reordered[:toPos], append([]models.Product{siblings[from]}, reordered[toPos:]...)...)

		for i, p := range reordered {
			if err := tx.Model(&models.Product{}).Where("id = ?", p.ID).
				Update("shop_position", slots[i]).Error; err != nil {
				return err
			}
		}

		var shop models.Shop
		if err := tx.Select("owner_id").First(&shop, "id = ?", shopID).Error; err != nil {
			return err
		}
		shopOwner = shop.OwnerID
		return nil
	})
	if err != nil {
		return err
	}
	if shopOwner != "" {
		r.notifyShops(ctx, shopOwner)
	}
	return nil
}

func (r *GormRepo) notifyProductChange(ctx context.Context, shopID string) {
	var shop models.Shop
	if err := r.DB.WithContext(ctx).Select("owner_id").First(&shop, "id = ?", shopID).Error; err != nil {
		return
	}
	r.notifyShops(ctx, shop.OwnerID)
}
