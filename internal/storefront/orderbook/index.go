// Package orderbook keeps the client's deduplicated view of the current
// user's orders and reconciles it against the backend.
package orderbook

import (
	"sort"
	"sync"

	"github.com/avivros/bookme/internal/storefront/client"
)

// Index is a set of orders keyed by order ID. No two entries ever share an
// ID, so repeated merges of the same server list are idempotent.
type Index struct {
	mu     sync.RWMutex
	orders map[string]client.Order
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{orders: make(map[string]client.Order)}
}

// Insert adds the order unless an entry with the same ID is already present.
// It reports whether the order was actually added.
func (i *Index) Insert(o client.Order) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, exists := i.orders[o.OrderID]; exists {
		return false
	}
	i.orders[o.OrderID] = o
	return true
}

// Remove deletes the entry with the given ID, if present.
func (i *Index) Remove(orderID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.orders, orderID)
}

// Contains reports whether an order with the given ID is known locally.
func (i *Index) Contains(orderID string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	_, ok := i.orders[orderID]
	return ok
}

// Len returns the number of known orders.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.orders)
}

// Orders returns the known orders, newest first.
func (i *Index) Orders() []client.Order {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make([]client.Order, 0, len(i.orders))
	for _, o := range i.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].OrderDate.Equal(out[b].OrderDate) {
			return out[a].OrderID < out[b].OrderID
		}
		return out[a].OrderDate.After(out[b].OrderDate)
	})
	return out
}

// Clear drops all entries, used when the identity changes.
func (i *Index) Clear() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.orders = make(map[string]client.Order)
}
