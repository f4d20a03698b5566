package service

import (
	"context"

	"github.com/pocketshop/backend/internal/models"
	"github.com/pocketshop/backend/internal/repo"
)

type FavouriteService struct {
	Repo *repo.GormRepo
}

// Toggle flips membership for the product and reports whether it is now a
// favourite. Toggling twice restores the original set.
func (s *FavouriteService) Toggle(ctx context.Context, customerID, productID string) (bool, error) {
	if _, err := s.Repo.ProductByID(ctx, productID); err != nil {
		return false, mapNotFound(err)
	}
	return s.Repo.ToggleFavourite(ctx, customerID, productID)
}

func (s *FavouriteService) List(ctx context.Context, customerID string) ([]models.Product, error) {
	ids, err := s.Repo.FavouriteIDs(ctx, customerID)
	if err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.Repo.ProductByID(ctx, id)
		if err != nil {
			// the product may have been deleted since it was favourited
			continue
		}
		products = append(products, *p)
	}
	return products, nil
}

func (s *FavouriteService) IDs(ctx context.Context, customerID string) ([]string, error) {
	return s.Repo.FavouriteIDs(ctx, customerID)
}
