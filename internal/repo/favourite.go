package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/pocketshop/backend/internal/models"
)

// ToggleFavourite flips membership and reports the new state. Running it
// twice always restores the original set.
func (r *GormRepo) ToggleFavourite(ctx context.Context, customerID, productID string) (bool, error) {
	var saved bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("customer_id = ? AND product_id = ?", customerID, productID).
			Delete(&models.Favourite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			saved = false
			return nil
		}
		saved = true
		return tx.Create(&models.Favourite{CustomerID: customerID, ProductID: productID}).Error
	})
	return saved, err
}

func (r *GormRepo) FavouriteIDs(ctx context.Context, customerID string) ([]string, error) {
	var ids []string
	if err := r.DB.WithContext(ctx).Model(&models.Favourite{}).
		Where("customer_id = ?", customerID).
		Order("id ASC").
		Pluck("product_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
