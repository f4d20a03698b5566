package transport

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/pocketshop/backend/internal/models"
)

type OrderProductSchema struct {
	ID          string                `json:"id"`
	ProductID   string                `json:"productId"`
	ProductName string                `json:"productName"`
	Price       float64               `json:"price"`
	Quantity    int                   `json:"quantity"`
	Choices     []models.OptionChoice `json:"choices,omitempty"`
	Status      models.OrderStatus    `json:"status"`
}

func (s OrderProductSchema) ToOrderProduct() models.OrderProduct {
	return models.OrderProduct{
		ID:          s.ID,
		ProductID:   s.ProductID,
		ProductName: s.ProductName,
		Price:       s.Price,
		Quantity:    s.Quantity,
		Choices:     s.Choices,
		Status:      s.Status,
	}
}

// OrderSchema is the wire shape of an order. Lines are keyed by insertion
// index; the total is never part of the schema and is recomputed in ToOrder.
type OrderSchema struct {
	ID                  string                        `json:"id"`
	OrderProductSchemas map[string]OrderProductSchema `json:"orderProductSchemas"`
	Status              models.OrderStatus            `json:"status"`
	CustomerID          string                        `json:"customerId"`
	ShopID              string                        `json:"shopId"`
	ShopName            string                        `json:"shopName"`
	Date                time.Time                     `json:"date"`
	CollectionNo        int                           `json:"collectionNo"`
}

func NewOrderSchema(o models.Order) OrderSchema {
	lines := make(map[string]OrderProductSchema, len(o.Products))
	for i, p := range o.Products {
		lines[strconv.Itoa(i)] = OrderProductSchema{
			ID:          p.ID,
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			Price:       p.Price,
			Quantity:    p.Quantity,
			Choices:     p.Choices,
			Status:      p.Status,
		}
	}
	return OrderSchema{
		ID:                  o.ID,
		OrderProductSchemas: lines,
		Status:              o.Status,
		CustomerID:          o.CustomerID,
		ShopID:              o.ShopID,
		ShopName:            o.ShopName,
		Date:                o.Date,
		CollectionNo:        o.CollectionNo,
	}
}

func (s OrderSchema) ToOrder() models.Order {
	keys := make([]int, 0, len(s.OrderProductSchemas))
	for k := range s.OrderProductSchemas {
		if i, err := strconv.Atoi(k); err == nil {
			keys = append(keys, i)
		}
	}
	sort.Ints(keys)

	products := make([]models.OrderProduct, 0, len(keys))
	for _, k := range keys {
		products = append(products, s.OrderProductSchemas[strconv.Itoa(k)].ToOrderProduct())
	}
	order := models.Order{
		ID:           s.ID,
		CustomerID:   s.CustomerID,
		ShopID:       s.ShopID,
		ShopName:     s.ShopName,
		Status:       s.Status,
		Date:         s.Date,
		CollectionNo: s.CollectionNo,
		Products:     products,
	}
	order.Total = order.ComputeTotal()
	return order
}

func (s OrderSchema) ToRecord() (models.OrderRecord, error) {
	lines, err := json.Marshal(s.OrderProductSchemas)
	if err != nil {
		return models.OrderRecord{}, fmt.Errorf("encode order lines: %w", err)
	}
	return models.OrderRecord{
		ID:           s.ID,
		CustomerID:   s.CustomerID,
		ShopID:       s.ShopID,
		ShopName:     s.ShopName,
		Status:       string(s.Status),
		Date:         s.Date,
		CollectionNo: s.CollectionNo,
		Lines:        string(lines),
	}, nil
}

func SchemaFromRecord(rec models.OrderRecord) (OrderSchema, error) {
	lines := map[string]OrderProductSchema{}
	if rec.Lines != "" {
		if err := json.Unmarshal([]byte(rec.Lines), &lines); err != nil {
			return OrderSchema{}, fmt.Errorf("decode order lines: %w", err)
		}
	}
	return OrderSchema{
		ID:                  rec.ID,
		OrderProductSchemas: lines,
		Status:              models.OrderStatus(rec.Status),
		CustomerID:          rec.CustomerID,
		ShopID:              rec.ShopID,
		ShopName:            rec.ShopName,
		Date:                rec.Date,
		CollectionNo:        rec.CollectionNo,
	}, nil
}
