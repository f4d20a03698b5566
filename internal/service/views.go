package service

import (
	"context"
	"sort"

	"github.com/pocketshop/backend/internal/models"
	"github.com/pocketshop/backend/internal/repo"
)

// OrderBoard partitions an order set by terminal status. Current and History
// are disjoint and together cover the input exactly; both are date-descending.
type OrderBoard struct {
	Current []models.Order `json:"current"`
	History []models.Order `json:"history"`
}

func BuildOrderBoard(orders []models.Order) OrderBoard {
	board := OrderBoard{
		Current: []models.Order{},
		History: []models.Order{},
	}
	for _, o := range orders {
		if o.Status.Terminal() {
			board.History = append(board.History, o)
		} else {
			board.Current = append(board.Current, o)
		}
	}
	byDateDesc(board.Current)
	byDateDesc(board.History)
	return board
}

func byDateDesc(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Date.After(orders[j].Date)
	})
}

type CategoryGroup struct {
	Category models.ShopCategory `json:"category"`
	Products []models.Product    `json:"products"`
}

// GroupCatalog groups a shop's products by category ordering index. Category
// order follows the declared indices; products keep their insertion order
// within each category.
func GroupCatalog(shop models.Shop) []CategoryGroup {
	categories := append([]models.ShopCategory(nil), shop.Categories...)
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].OrderingIndex < categories[j].OrderingIndex
	})

	products := append([]models.Product(nil), shop.SoldProducts...)
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].ShopPosition < products[j].ShopPosition
	})

	groups := make([]CategoryGroup, len(categories))
	for i, cat := range categories {
		group := CategoryGroup{Category: cat, Products: []models.Product{}}
		for _, p := range products {
			if p.CategoryOrderingIndex == cat.OrderingIndex {
				group.Products = append(group.Products, p)
			}
		}
		groups[i] = group
	}
	return groups
}

// ShopFeed streams snapshots of a vendor's shops. The subscription ends when
// the context is cancelled.
type ShopFeed struct {
	Repo *repo.GormRepo
}

func (f *ShopFeed) WatchOwner(ctx context.Context, ownerID string) (<-chan []models.Shop, func(), error) {
	snapshots, cancel, err := f.Repo.WatchShopsByOwner(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return snapshots, cancel, nil
}

// OrderFeed turns raw order snapshots into immutable boards. Consumers get a
// freshly built board per notification and must treat it as replacing the
// previous one.
type OrderFeed struct {
	Repo *repo.GormRepo
}

func (f *OrderFeed) WatchCustomer(ctx context.Context, customerID string) (<-chan OrderBoard, func(), error) {
	snapshots, cancel, err := f.Repo.WatchOrdersByCustomer(ctx, customerID)
	if err != nil {
		return nil, nil, err
	}
	return f.pump(ctx, snapshots, cancel), cancel, nil
}

func (f *OrderFeed) WatchShop(ctx context.Context, shopID string) (<-chan OrderBoard, func(), error) {
	snapshots, cancel, err := f.Repo.WatchOrdersByShop(ctx, shopID)
	if err != nil {
		return nil, nil, err
	}
	return f.pump(ctx, snapshots, cancel), cancel, nil
}

func (f *OrderFeed) pump(ctx context.Context, snapshots <-chan []models.Order, cancel func()) <-chan OrderBoard {
	out := make(chan OrderBoard, 1)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				cancel()
				return
			case snap, ok := <-snapshots:
				if !ok {
					return
				}
				board := BuildOrderBoard(snap)
				select {
				case out <- board:
				default:
					select {
					case <-out:
					default:
					}
					select {
					case out <- board:
					default:
					}
				}
			}
		}
	}()
	return out
}
