package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/pocketshop/backend/internal/models"
)

func withOrderedAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("ordering_index ASC")
		}).
		Preload("SoldProducts", func(db *gorm.DB) *gorm.DB {
			return db.Order("shop_position ASC")
		})
}

func (r *GormRepo) CreateShop(ctx context.Context, shop models.Shop, image []byte) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&shop).Error; err != nil {
			return err
		}
		if len(image) > 0 {
			img := models.ShopImage{ShopID: shop.ID, Data: image}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.notifyShops(ctx, shop.OwnerID)
	return nil
}

// EditShop replaces the shop row and its category set wholesale. Sold
// products are left untouched.
func (r *GormRepo) EditShop(ctx context.Context, shop models.Shop, image []byte) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Shop{}).Where("id = ?", shop.ID).Updates(map[string]any{
			"name":        shop.Name,
			"description": shop.Description,
			"location_id": shop.LocationID,
			"image_url":   shop.ImageURL,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("shop_id = ?", shop.ID).Delete(&models.ShopCategory{}).Error; err != nil {
			return err
		}
		for i := range shop.Categories {
			shop.Categories[i].ID = 0
			shop.Categories[i].ShopID = shop.ID
		}
		if len(shop.Categories) > 0 {
			if err := tx.Create(&shop.Categories).Error; err != nil {
				return err
			}
		}

		if len(image) > 0 {
			img := models.ShopImage{ShopID: shop.ID, Data: image}
			if err := tx.Save(&img).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.notifyShops(ctx, shop.OwnerID)
	return nil
}

func (r *GormRepo) SetShopClosed(ctx context.Context, shopID string, closed bool) error {
	res := r.DB.WithContext(ctx).Model(&models.Shop{}).Where("id = ?", shopID).
		Update("is_closed", closed)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	shop, err := r.ShopByID(ctx, shopID)
	if err == nil {
		r.notifyShops(ctx, shop.OwnerID)
	}
	return nil
}

func (r *GormRepo) ShopByID(ctx context.Context, shopID string) (*models.Shop, error) {
	var shop models.Shop
	if err := withOrderedAssociations(r.DB.WithContext(ctx)).First(&shop, "id = ?", shopID).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *GormRepo) ShopsByOwner(ctx context.Context, ownerID string) ([]models.Shop, error) {
	var shops []models.Shop
	if err := withOrderedAssociations(r.DB.WithContext(ctx)).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

func (r *GormRepo) Shops(ctx context.Context) ([]models.Shop, error) {
	var shops []models.Shop
	if err := withOrderedAssociations(r.DB.WithContext(ctx)).
		Order("name ASC").
		Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

// WatchShopsByOwner pushes a full snapshot immediately and again after every
// committed mutation of the owner's shops.
func (r *GormRepo) WatchShopsByOwner(ctx context.Context, ownerID string) (<-chan []models.Shop, func(), error) {
	ch, cancel := r.hub.SubscribeShops(ownerID)
	r.notifyShops(ctx, ownerID)
	return ch, cancel, nil
}

func (r *GormRepo) SaveShopImage(ctx context.Context, shopID string, data []byte) error {
	img := models.ShopImage{ShopID: shopID, Data: data}
	return r.DB.WithContext(ctx).Save(&img).Error
}

func (r *GormRepo) ShopImage(ctx context.Context, shopID string) ([]byte, error) {
	var img models.ShopImage
	if err := r.DB.WithContext(ctx).First(&img, "shop_id = ?", shopID).Error; err != nil {
		return nil, err
	}
	return img.Data, nil
}
