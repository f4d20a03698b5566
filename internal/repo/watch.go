package repo

import (
	"sync"

	"github.com/pocketshop/backend/internal/models"
)

// Hub fans full snapshots out to subscribers. Every notification replaces
// whatever the consumer knew before, so slow consumers only ever lose stale
// snapshots, never the latest one.
type Hub struct {
	mu        sync.Mutex
	shopSubs  map[string]map[chan []models.Shop]struct{}
	orderSubs map[string]map[chan []models.Order]struct{}
}

func NewHub() *Hub {
	return &Hub{
		shopSubs:  make(map[string]map[chan []models.Shop]struct{}),
		orderSubs: make(map[string]map[chan []models.Order]struct{}),
	}
}

func (h *Hub) SubscribeShops(ownerID string) (<-chan []models.Shop, func()) {
	ch := make(chan []models.Shop, 1)
	h.mu.Lock()
	subs, ok := h.shopSubs[ownerID]
	if !ok {
		subs = make(map[chan []models.Shop]struct{})
		h.shopSubs[ownerID] = subs
	}
	subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.shopSubs[ownerID], ch)
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *Hub) SubscribeOrders(key string) (<-chan []models.Order, func()) {
	ch := make(chan []models.Order, 1)
	h.mu.Lock()
	subs, ok := h.orderSubs[key]
	if !ok {
		subs = make(map[chan []models.Order]struct{})
		h.orderSubs[key] = subs
	}
	subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.orderSubs[key], ch)
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *Hub) PublishShops(ownerID string, snapshot []models.Shop) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.shopSubs[ownerID] {
		replaceShops(ch, snapshot)
	}
}

func (h *Hub) PublishOrders(key string, snapshot []models.Order) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.orderSubs[key] {
		replaceOrders(ch, snapshot)
	}
}

func replaceShops(ch chan []models.Shop, snapshot []models.Shop) {
	select {
	case ch <- snapshot:
	default:
		// drop the stale snapshot the consumer never read
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snapshot:
		default:
		}
	}
}

func replaceOrders(ch chan []models.Order, snapshot []models.Order) {
	select {
	case ch <- snapshot:
	default:
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snapshot:
		default:
		}
	}
}
