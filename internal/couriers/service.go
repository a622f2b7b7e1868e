package couriers

import (
	"context"
	"fmt"

	"github.com/sudepo/sudepo/internal/domain"
	"github.com/sudepo/sudepo/internal/platform/httpx"
	"github.com/sudepo/sudepo/internal/store"
)

// Service owns courier master data and the ranked listing.
type Service struct {
	store *store.Store
}

// NewService constructs a Service.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// List returns every courier in stored order.
func (s *Service) List(ctx context.Context) []domain.Courier {
	return s.store.Snapshot().Couriers
}

// Ranked returns the couriers best-first for the given neighborhood. An
// empty neighborhood ranks by availability and load alone.
func (s *Service) Ranked(ctx context.Context, neighborhood string) []domain.Courier {
	snap := s.store.Snapshot()
	return Rank(snap.Couriers, snap.Orders, neighborhood)
}

// Get returns one courier by id.
func (s *Service) Get(ctx context.Context, id string) (domain.Courier, error) {
	if c, ok := s.store.Snapshot().FindCourier(id); ok {
		return c, nil
	}
	return domain.Courier{}, httpx.ErrNotFound
}

// Create registers a new courier. Status defaults to offline until the
// courier reports in.
func (s *Service) Create(ctx context.Context, c domain.Courier) (domain.Courier, error) {
	if !c.Status.IsValid() {
		c.Status = domain.CourierOffline
	}
	c.ID = ""
	return s.store.PutCourier(c), nil
}

// Update overwrites an existing courier's fields. Orders keep the courier
// name they captured at assignment; a rename here does not rewrite them.
func (s *Service) Update(ctx context.Context, id string, c domain.Courier) (domain.Courier, error) {
	if _, ok := s.store.Snapshot().FindCourier(id); !ok {
		return domain.Courier{}, httpx.ErrNotFound
	}
	if !c.Status.IsValid() {
		return domain.Courier{}, fmt.Errorf("%w: unknown courier status %q", httpx.ErrValidation, c.Status)
	}
	c.ID = id
	return s.store.PutCourier(c), nil
}

// SetStatus updates only the availability of a courier.
func (s *Service) SetStatus(ctx context.Context, id string, status domain.CourierStatus) (domain.Courier, error) {
	if !status.IsValid() {
		return domain.Courier{}, fmt.Errorf("%w: unknown courier status %q", httpx.ErrValidation, status)
	}
	existing, ok := s.store.Snapshot().FindCourier(id)
	if !ok {
		return domain.Courier{}, httpx.ErrNotFound
	}
	existing.Status = status
	return s.store.PutCourier(existing), nil
}

// ReportInventory records the carried stock counts a courier phoned in.
func (s *Service) ReportInventory(ctx context.Context, id string, full, empty int) (domain.Courier, error) {
	existing, ok := s.store.Snapshot().FindCourier(id)
	if !ok {
		return domain.Courier{}, httpx.ErrNotFound
	}
	existing.FullInventory = full
	existing.EmptyInventory = empty
	return s.store.PutCourier(existing), nil
}
