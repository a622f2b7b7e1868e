// Package categories manages the label/icon groupings inventory items
// reference by name.
package categories

import (
	"context"
	"fmt"
	"strings"

	"github.com/sudepo/sudepo/internal/domain"
	"github.com/sudepo/sudepo/internal/platform/httpx"
	"github.com/sudepo/sudepo/internal/store"
)

// Service owns category master data.
type Service struct {
	store *store.Store
}

// NewService constructs a Service.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// List returns every category.
func (s *Service) List(ctx context.Context) []domain.Category {
	return s.store.Snapshot().Categories
}

// Create adds a new category.
func (s *Service) Create(ctx context.Context, c domain.Category) (domain.Category, error) {
	if strings.TrimSpace(c.Name) == "" {
		return domain.Category{}, fmt.Errorf("%w: category name required", httpx.ErrValidation)
	}
	c.ID = ""
	return s.store.PutCategory(c), nil
}

// Update renames a category. Inventory references are by name and are not
// rewritten; items keep pointing at the old label until edited.
func (s *Service) Update(ctx context.Context, id string, c domain.Category) (domain.Category, error) {
	if _, ok := s.store.Snapshot().FindCategory(id); !ok {
		return domain.Category{}, httpx.ErrNotFound
	}
	c.ID = id
	return s.store.PutCategory(c), nil
}

// Delete removes a category unless any inventory item still references it.
// There is no cascade: the caller must first move or delete the items.
func (s *Service) Delete(ctx context.Context, id string) error {
	snap := s.store.Snapshot()
	category, ok := snap.FindCategory(id)
	if !ok {
		return httpx.ErrNotFound
	}
	for _, it := range snap.Inventory {
		if it.Category == category.Name {
			return fmt.Errorf("%w: category %q still has inventory items", httpx.ErrConflict, category.Name)
		}
	}
	s.store.DeleteCategory(id)
	return nil
}
