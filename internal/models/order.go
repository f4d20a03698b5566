package models

import (
	"errors"
	"fmt"
	"time"
)

type OrderStatus string

const (
	StatusAccepted  OrderStatus = "accepted"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCollected OrderStatus = "collected"
	StatusCancelled OrderStatus = "cancelled"
)

var ErrInvalidTransition = errors.New("invalid status transition")

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusAccepted, StatusPreparing, StatusReady, StatusCollected, StatusCancelled:
		return true
	}
	return false
}

// Terminal statuses are absorbing: no transition may leave them.
func (s OrderStatus) Terminal() bool {
	return s == StatusCollected || s == StatusCancelled
}

func (s OrderStatus) Active() bool {
	return s.Valid() && !s.Terminal()
}

// Next returns the following preparation stage, false at the end of the chain.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case StatusAccepted:
		return StatusPreparing, true
	case StatusPreparing:
		return StatusReady, true
	case StatusReady:
		return StatusCollected, true
	}
	return "", false
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.Terminal() || !next.Valid() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	n, ok := s.Next()
	return ok && n == next
}

type OptionChoice struct {
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
}

// OrderProduct snapshots the product's name and price at order time, so the
// order stays valid after the product is edited or deleted.
type OrderProduct struct {
	ID          string         `json:"id"`
	ProductID   string         `json:"productId"`
	ProductName string         `json:"productName"`
	Price       float64        `json:"price"`
	Quantity    int            `json:"quantity"`
	Choices     []OptionChoice `json:"choices,omitempty"`
	Status      OrderStatus    `json:"status"`
}

func (p OrderProduct) Total() float64 {
	total := p.Price * float64(p.Quantity)
	for _, c := range p.Choices {
		total += c.Cost
	}
	return total
}

type Order struct {
	ID           string         `json:"id"`
	CustomerID   string         `json:"customerId"`
	ShopID       string         `json:"shopId"`
	ShopName     string         `json:"shopName"`
	Status       OrderStatus    `json:"status"`
	Date         time.Time      `json:"date"`
	CollectionNo int            `json:"collectionNo"`
	Products     []OrderProduct `json:"orderProducts"`

	// derived from Products, never read back from storage
	Total float64 `json:"total"`
}

func (o Order) ComputeTotal() float64 {
	var total float64
	for _, p := range o.Products {
		total += p.Total()
	}
	return total
}

// OrderRecord is the persisted shape of an order. Lines holds the index-keyed
// line schemas as JSON; the total is absent on purpose and recomputed on load.
type OrderRecord struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)"`
	CustomerID   string    `gorm:"index;not null"`
	ShopID       string    `gorm:"uniqueIndex:idx_shop_collection;not null"`
	ShopName     string    `gorm:"not null"`
	Status       string    `gorm:"not null"`
	Date         time.Time `gorm:"not null"`
	CollectionNo int       `gorm:"uniqueIndex:idx_shop_collection;not null"`
	Lines        string    `gorm:"type:text"`
}

func (OrderRecord) TableName() string {
	return "orders"
}

// TransitionTo validates the move against the state machine and applies it to
// the order and all of its lines.
func (o *Order) TransitionTo(next OrderStatus) error {
	if !o.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, next)
	}
	o.Status = next
	for i := range o.Products {
		o.Products[i].Status = next
	}
	return nil
}
