package orders

import (
	"context"
	"log/slog"
	"time"

	"github.com/sudepo/sudepo/internal/customers"
	"github.com/sudepo/sudepo/internal/domain"
	"github.com/sudepo/sudepo/internal/platform/httpx"
	"github.com/sudepo/sudepo/internal/store"
)

// Notifier announces newly created orders to the office. Delivery of the
// notification is best-effort; order creation never fails because of it.
type Notifier interface {
	NotifyNewOrder(ctx context.Context, order domain.Order) error
}

// Service owns the order lifecycle: creation with the correlated customer
// upsert, status transitions and courier reassignment. It stays
// deliberately permissive: item lists and totals are stored as given, and
// any status can follow any status. Validation belongs to the callers.
type Service struct {
	store     *store.Store
	customers *customers.Service
	notifier  Notifier
	logger    *slog.Logger
	now       func() time.Time
}

// NewService constructs a Service. notifier may be nil.
func NewService(st *store.Store, customerSvc *customers.Service, notifier Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:     st,
		customers: customerSvc,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

// Create stores a new order at the head of the list and upserts the
// customer by the phone-identity rule. The draft's items and total are
// taken as given. A courier id that does not resolve is dropped rather
// than stored with an unresolved name.
func (s *Service) Create(ctx context.Context, draft domain.Order, customerDraft customers.Draft) domain.Order {
	now := s.now()

	customer := s.customers.Upsert(ctx, customerDraft, now)

	order := draft
	order.ID = ""
	order.CustomerID = customer.ID
	order.CustomerName = customer.Name
	order.Phone = customer.Phone
	order.Status = domain.OrderStatusPending
	order.CreatedAt = now
	order.UpdatedAt = now
	if order.Source == "" {
		order.Source = domain.SourceWeb
	}

	if order.CourierID != "" {
		if courier, ok := s.store.Snapshot().FindCourier(order.CourierID); ok {
			order.CourierName = courier.Name
		} else {
			order.CourierID = ""
			order.CourierName = ""
		}
	} else {
		order.CourierName = ""
	}

	stored := s.store.InsertOrder(order)

	if s.notifier != nil {
		if err := s.notifier.NotifyNewOrder(ctx, stored); err != nil {
			s.logger.Warn("new order notification failed",
				slog.String("order_id", stored.ID),
				slog.Any("error", err))
		}
	}
	return stored
}

// UpdateStatus sets the order's status and refreshes updatedAt. There is
// no transition guard: any status may follow any other, including moves
// out of Teslim Edildi and İptal. An unknown id is a silent no-op; the
// second return value only tells the caller whether anything was written.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, bool) {
	now := s.now()
	return s.store.UpdateOrder(id, func(o domain.Order) domain.Order {
		o.Status = status
		o.UpdatedAt = now
		return o
	})
}

// ReassignCourier points the order at another courier, copying the
// courier's current name onto the order. An empty courier id unassigns.
// An id that does not resolve leaves the order completely untouched.
func (s *Service) ReassignCourier(ctx context.Context, id, courierID string) (domain.Order, bool) {
	var name string
	if courierID != "" {
		courier, ok := s.store.Snapshot().FindCourier(courierID)
		if !ok {
			existing, found := s.store.Snapshot().FindOrder(id)
			return existing, found
		}
		name = courier.Name
	}

	now := s.now()
	return s.store.UpdateOrder(id, func(o domain.Order) domain.Order {
		o.CourierID = courierID
		o.CourierName = name
		o.UpdatedAt = now
		return o
	})
}

// SetPayment records how the courier collected payment.
func (s *Service) SetPayment(ctx context.Context, id string, method domain.PaymentMethod) (domain.Order, bool) {
	now := s.now()
	return s.store.UpdateOrder(id, func(o domain.Order) domain.Order {
		o.PaymentMethod = method
		o.UpdatedAt = now
		return o
	})
}

// List returns orders newest-first, optionally filtered by status and
// source.
func (s *Service) List(ctx context.Context, status domain.OrderStatus, source domain.OrderSource) []domain.Order {
	snap := s.store.Snapshot()
	if status == "" && source == "" {
		return snap.Orders
	}
	var out []domain.Order
	for _, o := range snap.Orders {
		if status != "" && o.Status != status {
			continue
		}
		if source != "" && o.Source != source {
			continue
		}
		out = append(out, o)
	}
	return out
}

// Get returns one order by id.
func (s *Service) Get(ctx context.Context, id string) (domain.Order, error) {
	if o, ok := s.store.Snapshot().FindOrder(id); ok {
		return o, nil
	}
	return domain.Order{}, httpx.ErrNotFound
}
