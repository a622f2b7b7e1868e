// Package inventory manages sellable products and stock-tracked core
// assets (the reusable bottle pool).
package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/sudepo/sudepo/internal/domain"
	"github.com/sudepo/sudepo/internal/platform/httpx"
	"github.com/sudepo/sudepo/internal/store"
)

// Service owns inventory master data.
type Service struct {
	store *store.Store
}

// NewService constructs a Service.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// List returns inventory items; activeOnly restricts to the
// customer-visible catalogue.
func (s *Service) List(ctx context.Context, activeOnly bool) []domain.InventoryItem {
	items := s.store.Snapshot().Inventory
	if !activeOnly {
		return items
	}
	var out []domain.InventoryItem
	for _, it := range items {
		if it.IsActive {
			out = append(out, it)
		}
	}
	return out
}

// Get returns one item by id.
func (s *Service) Get(ctx context.Context, id string) (domain.InventoryItem, error) {
	if it, ok := s.store.Snapshot().FindInventoryItem(id); ok {
		return it, nil
	}
	return domain.InventoryItem{}, httpx.ErrNotFound
}

// Resolve finds the inventory item backing an order line: by product id
// first, falling back to an exact name match. Reporting uses the same
// lookup for cost of goods sold.
func (s *Service) Resolve(ctx context.Context, productID, productName string) (domain.InventoryItem, bool) {
	return ResolveIn(s.store.Snapshot().Inventory, productID, productName)
}

// ResolveIn is the lookup itself, usable against any snapshot.
func ResolveIn(items []domain.InventoryItem, productID, productName string) (domain.InventoryItem, bool) {
	for _, it := range items {
		if productID != "" && it.ID == productID {
			return it, true
		}
	}
	for _, it := range items {
		if productName != "" && it.Name == productName {
			return it, true
		}
	}
	return domain.InventoryItem{}, false
}

// Create adds a new item.
func (s *Service) Create(ctx context.Context, it domain.InventoryItem) (domain.InventoryItem, error) {
	if strings.TrimSpace(it.Name) == "" {
		return domain.InventoryItem{}, fmt.Errorf("%w: item name required", httpx.ErrValidation)
	}
	it.ID = ""
	return s.store.PutInventoryItem(it), nil
}

// Update overwrites an existing item. Orders keep the product name and
// price they captured at creation; edits here do not rewrite history.
func (s *Service) Update(ctx context.Context, id string, it domain.InventoryItem) (domain.InventoryItem, error) {
	if _, ok := s.store.Snapshot().FindInventoryItem(id); !ok {
		return domain.InventoryItem{}, httpx.ErrNotFound
	}
	it.ID = id
	return s.store.PutInventoryItem(it), nil
}

// Delete removes an item. Core assets refuse deletion.
func (s *Service) Delete(ctx context.Context, id string) error {
	existing, ok := s.store.Snapshot().FindInventoryItem(id)
	if !ok {
		return httpx.ErrNotFound
	}
	if existing.IsCore {
		return fmt.Errorf("%w: core inventory cannot be deleted", httpx.ErrForbidden)
	}
	s.store.DeleteInventoryItem(id)
	return nil
}
