// Package cart holds the in-memory order ledger: line items keyed by
// product identity with derived totals.
package cart

import "github.com/nochelabs/botilleria/internal/domain"

// Item is a product plus a quantity. Quantity is always >= 1; adjustments
// that would drop it to zero are ignored.
type Item struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Subtotal is price times quantity for this line.
func (i Item) Subtotal() int64 {
	return i.Product.Price * int64(i.Quantity)
}

// Ledger keeps cart entries in insertion order. No two entries share a
// product identifier. The zero value is ready to use.
type Ledger struct {
	items []Item
}

// Add inserts the product with quantity 1, or bumps the existing entry's
// quantity. Entry order is preserved; new entries append.
func (l *Ledger) Add(p domain.Product) {
	for i := range l.items {
		if l.items[i].Product.ID == p.ID {
			l.items[i].Quantity++
			return
		}
	}
	l.items = append(l.items, Item{Product: p, Quantity: 1})
}

// Remove deletes the entry with the given identifier. No-op when absent.
func (l *Ledger) Remove(id string) {
	for i := range l.items {
		if l.items[i].Product.ID == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return
		}
	}
}

// AdjustQuantity applies delta to the entry's quantity. A result of zero or
// below leaves the entry unchanged; removal is a separate explicit action.
func (l *Ledger) AdjustQuantity(id string, delta int) {
	for i := range l.items {
		if l.items[i].Product.ID == id {
			if q := l.items[i].Quantity + delta; q > 0 {
				l.items[i].Quantity = q
			}
			return
		}
	}
}

// Total sums price times quantity across entries.
func (l *Ledger) Total() int64 {
	var sum int64
	for _, it := range l.items {
		sum += it.Subtotal()
	}
	return sum
}

// ItemCount sums quantities across entries.
func (l *Ledger) ItemCount() int {
	var n int
	for _, it := range l.items {
		n += it.Quantity
	}
	return n
}

// Items returns a copy of the entries in cart order.
func (l *Ledger) Items() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// Len is the number of distinct entries.
func (l *Ledger) Len() int {
	return len(l.items)
}

// Clear abandons the cart.
func (l *Ledger) Clear() {
	l.items = nil
}
