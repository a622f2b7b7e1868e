package customers

import (
	"context"
	"strings"
	"time"

	"github.com/sudepo/sudepo/internal/domain"
	"github.com/sudepo/sudepo/internal/platform/httpx"
	"github.com/sudepo/sudepo/internal/store"
)

// Draft carries the customer data attached to an incoming order.
type Draft struct {
	Phone        string
	Name         string
	District     string
	Neighborhood string
	Street       string
	BuildingNo   string
	ApartmentNo  string
	Note         string
}

// Service owns customer reads and the order-time upsert.
type Service struct {
	store *store.Store
}

// NewService constructs a Service.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Upsert applies the phone-identity rule: when the draft's normalized
// phone matches an existing customer, that record's name and address
// fields are overwritten with the draft's data and its order count is
// incremented; otherwise a new record starts at order count 1. Two
// near-simultaneous orders from a number never seen before can both take
// the miss path; last write wins and the duplicate stays. Accepted at
// this scale.
func (s *Service) Upsert(ctx context.Context, draft Draft, orderedAt time.Time) domain.Customer {
	c := domain.Customer{
		Phone:         draft.Phone,
		Name:          draft.Name,
		District:      draft.District,
		Neighborhood:  draft.Neighborhood,
		Street:        draft.Street,
		BuildingNo:    draft.BuildingNo,
		ApartmentNo:   draft.ApartmentNo,
		LastNote:      draft.Note,
		OrderCount:    1,
		LastOrderDate: orderedAt,
	}

	snap := s.store.Snapshot()
	for _, existing := range snap.Customers {
		if SamePhone(existing.Phone, draft.Phone) {
			c.ID = existing.ID
			c.OrderCount = existing.OrderCount + 1
			break
		}
	}
	return s.store.PutCustomer(c)
}

// List returns every customer, optionally filtered by a search term
// matched against the name (case-insensitive) or the phone suffix.
func (s *Service) List(ctx context.Context, search string) []domain.Customer {
	snap := s.store.Snapshot()
	if search == "" {
		return snap.Customers
	}

	needle := strings.ToLower(strings.TrimSpace(search))
	digits := NormalizePhone(search)
	var out []domain.Customer
	for _, c := range snap.Customers {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			out = append(out, c)
			continue
		}
		if digits != "" && strings.Contains(NormalizePhone(c.Phone), digits) {
			out = append(out, c)
		}
	}
	return out
}

// Get returns one customer by id.
func (s *Service) Get(ctx context.Context, id string) (domain.Customer, error) {
	if c, ok := s.store.Snapshot().FindCustomer(id); ok {
		return c, nil
	}
	return domain.Customer{}, httpx.ErrNotFound
}
