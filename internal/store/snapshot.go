// Package store holds every entity behind a single copy-on-write snapshot.
// Mutations go through the store's operations, never through direct field
// writes, so the phone-identity and denormalized-name invariants stay in
// one place. Each mutation builds new slices and swaps the snapshot;
// readers keep whatever snapshot value they took and never observe a
// partial write.
package store

import "github.com/sudepo/sudepo/internal/domain"

// Collection names used by the persistence backend and the realtime feed.
const (
	CollectionOrders     = "orders"
	CollectionCustomers  = "customers"
	CollectionCouriers   = "couriers"
	CollectionInventory  = "inventory"
	CollectionCategories = "categories"
)

// Collections lists every collection the backend persists.
func Collections() []string {
	return []string{
		CollectionOrders,
		CollectionCustomers,
		CollectionCouriers,
		CollectionInventory,
		CollectionCategories,
	}
}

// Snapshot is one immutable view of the whole entity set. Orders are kept
// newest-first; new orders are always prepended.
type Snapshot struct {
	Orders     []domain.Order
	Customers  []domain.Customer
	Couriers   []domain.Courier
	Inventory  []domain.InventoryItem
	Categories []domain.Category
}

// FindOrder returns the order with the given id.
func (s Snapshot) FindOrder(id string) (domain.Order, bool) {
	for _, o := range s.Orders {
		if o.ID == id {
			return o, true
		}
	}
	return domain.Order{}, false
}

// FindCourier returns the courier with the given id.
func (s Snapshot) FindCourier(id string) (domain.Courier, bool) {
	for _, c := range s.Couriers {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Courier{}, false
}

// FindCustomer returns the customer with the given id.
func (s Snapshot) FindCustomer(id string) (domain.Customer, bool) {
	for _, c := range s.Customers {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Customer{}, false
}

// FindInventoryItem returns the inventory item with the given id.
func (s Snapshot) FindInventoryItem(id string) (domain.InventoryItem, bool) {
	for _, it := range s.Inventory {
		if it.ID == id {
			return it, true
		}
	}
	return domain.InventoryItem{}, false
}

// FindCategory returns the category with the given id.
func (s Snapshot) FindCategory(id string) (domain.Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Category{}, false
}
