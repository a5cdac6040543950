package game

import "slices"

// DefaultInventoryCapacity is the number of items a pymon can carry unless configured otherwise.
const DefaultInventoryCapacity = 10

// Inventory holds the items carried by a pymon, in pickup order.
type Inventory struct {
	capacity int
	items    []*Item
}

// NewInventory creates an empty inventory. A capacity below one falls back to
// DefaultInventoryCapacity.
func NewInventory(capacity int) *Inventory {
	if capacity < 1 {
		capacity = DefaultInventoryCapacity
	}
	return &Inventory{capacity: capacity}
}

// Capacity returns the maximum number of items.
func (inv *Inventory) Capacity() int {
	return inv.capacity
}

// Len returns the number of items carried.
func (inv *Inventory) Len() int {
	return len(inv.items)
}

// Full reports whether another item can be added.
func (inv *Inventory) Full() bool {
	return len(inv.items) >= inv.capacity
}

// Add appends an item. Returns ErrInventoryFull when at capacity and
// ErrDuplicatePlacement when the same instance is already carried.
func (inv *Inventory) Add(item *Item) error {
	if inv.Contains(item) {
		return ErrDuplicatePlacement
	}
	if inv.Full() {
		return ErrInventoryFull
	}
	inv.items = append(inv.items, item)
	return nil
}

// Remove removes the given instance. Returns false if it is not carried.
func (inv *Inventory) Remove(item *Item) bool {
	idx := slices.Index(inv.items, item)
	if idx < 0 {
		return false
	}
	inv.items = slices.Delete(inv.items, idx, idx+1)
	return true
}

// Find returns the first carried item with the given name, or nil.
func (inv *Inventory) Find(name string) *Item {
	for _, it := range inv.items {
		if it.name == name {
			return it
		}
	}
	return nil
}

// Contains checks if an item instance is in the inventory.
func (inv *Inventory) Contains(item *Item) bool {
	return slices.Contains(inv.items, item)
}

// Items returns a snapshot of the carried items.
func (inv *Inventory) Items() []ItemView {
	views := make([]ItemView, 0, len(inv.items))
	for _, it := range inv.items {
		views = append(views, it.View())
	}
	return views
}
