// Package events provides an in-process publish/subscribe channel for
// change notifications. Every mutating backend operation publishes a typed
// event consumed by UI subscribers for live refresh.
//
// Delivery is fire-and-forget: a missed notification only causes a stale
// display, never a consistency defect — the store stays authoritative.
package events

import (
	"sync"
)

// Entity identifies the table/aggregate an event refers to.
type Entity string

const (
	EntityProduct         Entity = "products"
	EntityCounterparty    Entity = "counterparties"
	EntityStockMovement   Entity = "stock_movements"
	EntitySale            Entity = "sales"
	EntitySupplierOrder   Entity = "supplier_orders"
	EntityPurchaseOrder   Entity = "purchase_orders"
	EntityCreditNote      Entity = "credit_notes"
	EntityReceptionNote   Entity = "reception_notes"
	EntityDeliveryReceipt Entity = "delivery_receipts"
)

// Action identifies what happened to the entity.
type Action string

const (
	ActionCreated       Action = "created"
	ActionUpdated       Action = "updated"
	ActionDeleted       Action = "deleted"
	ActionStatusChanged Action = "status_changed"
)

// Event is one typed change notification.
type Event struct {
	Entity  Entity `json:"entity"`
	Action  Action `json:"action"`
	Payload any    `json:"payload,omitempty"`
}

// Bus fans events out to subscribers. Publish never blocks: subscribers
// with a full buffer miss the event rather than stalling the writer.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]chan Event
	closed bool
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe registers a subscriber with the given buffer size and returns
// its channel plus an unsubscribe function. The channel is closed on
// unsubscribe or bus close.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	subID := b.nextID
	b.nextID++
	b.subs[subID] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[subID]; ok {
				delete(b.subs, subID)
				close(ch)
			}
		})
	}
	return ch, cancel
}

// Publish delivers the event to all current subscribers without blocking.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			// Subscriber buffer full: drop. No delivery guarantee.
		}
	}
}

// Close shuts the bus down and closes all subscriber channels.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for subID, ch := range b.subs {
		delete(b.subs, subID)
		close(ch)
	}
}
