package domain

import (
	"strings"
	"time"
)

// DefaultNeighborhood is the bucket used when an address carries no
// recognizable neighborhood segment.
const DefaultNeighborhood = "Merkez"

// NeighborhoodFromAddress splits a formatted address on commas and returns
// the trimmed second segment. Addresses are composed as
// "district, neighborhood, street detail".
func NeighborhoodFromAddress(address string) string {
	parts := strings.Split(address, ",")
	if len(parts) < 2 {
		return DefaultNeighborhood
	}
	n := strings.TrimSpace(parts[1])
	if n == "" {
		return DefaultNeighborhood
	}
	return n
}

// Customer is a delivery recipient profile. Identity is the last ten
// digits of the phone number, not the id; the id only keys storage.
type Customer struct {
	ID            string    `json:"id"`
	Phone         string    `json:"phone"`
	Name          string    `json:"name"`
	District      string    `json:"district"`
	Neighborhood  string    `json:"neighborhood"`
	Street        string    `json:"street"`
	BuildingNo    string    `json:"buildingNo"`
	ApartmentNo   string    `json:"apartmentNo"`
	LastNote      string    `json:"lastNote,omitempty"`
	OrderCount    int       `json:"orderCount"`
	LastOrderDate time.Time `json:"lastOrderDate"`
}

// CourierStatus is the manually reported availability of a courier.
type CourierStatus string

const (
	CourierActive  CourierStatus = "active"
	CourierBusy    CourierStatus = "busy"
	CourierOffline CourierStatus = "offline"
)

// IsValid reports whether the status is a known courier state.
func (s CourierStatus) IsValid() bool {
	return s == CourierActive || s == CourierBusy || s == CourierOffline
}

// Courier is a delivery agent. FullInventory and EmptyInventory are
// carried stock counts reported by the courier, not derived from orders.
// ServiceRegion is free text matched case-insensitively against delivery
// neighborhoods.
type Courier struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Phone          string        `json:"phone"`
	Status         CourierStatus `json:"status"`
	FullInventory  int           `json:"fullInventory"`
	EmptyInventory int           `json:"emptyInventory"`
	ServiceRegion  string        `json:"serviceRegion"`
}

// InventoryItem is a sellable product or a stock-tracked core asset.
// Core items (reusable bottles and the like) refuse deletion.
type InventoryItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Unit      string  `json:"unit"`
	CostPrice float64 `json:"costPrice"`
	SalePrice float64 `json:"salePrice"`
	IsActive  bool    `json:"isActive"`
	IsCore    bool    `json:"isCore"`
	Category  string  `json:"category"`
	ImageURL  string  `json:"imageUrl,omitempty"`
}

// Category is a label/icon grouping for inventory items. Inventory
// references it by name only; deleting a category with live references
// is blocked instead of cascading.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}
