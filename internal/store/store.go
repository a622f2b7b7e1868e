package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sudepo/sudepo/internal/domain"
)

// Store is the shared entity store. All mutations are synchronous against
// the in-memory snapshot; the backend write and the feed publish happen on
// their own goroutine with their own timeout. A crash between the two can
// lose the write; that trade-off is deliberate at this scale.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot

	backend Backend
	feed    Feed
	logger  *slog.Logger
	timeout time.Duration

	// onRemoteOrder fires when a genuinely remote order insert is applied,
	// i.e. the order count actually increased. Echoes of local writes are
	// filtered out by the id dedupe.
	onRemoteOrder func(domain.Order)
}

// Option configures a Store.
type Option func(*Store)

// WithPersistTimeout bounds each fire-and-forget backend write.
func WithPersistTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithRemoteOrderHook registers a callback for applied remote order inserts.
func WithRemoteOrderHook(fn func(domain.Order)) Option {
	return func(s *Store) { s.onRemoteOrder = fn }
}

// New constructs a Store. Backend and feed may be nil; the store then runs
// purely in memory, which the tests rely on.
func New(backend Backend, feed Feed, logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		backend: backend,
		feed:    feed,
		logger:  logger,
		timeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the snapshot with the backend's current contents.
func (s *Store) Load(ctx context.Context) error {
	if s.backend == nil {
		return nil
	}
	snap, err := s.backend.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("store: load: %w", err)
	}
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	return nil
}

// Seed replaces the snapshot wholesale. Used at boot without a backend and
// by tests.
func (s *Store) Seed(snap Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// Snapshot returns the current immutable view.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// InsertOrder prepends a new order, assigning an id when the draft carries
// the empty sentinel. Returns the stored order.
func (s *Store) InsertOrder(o domain.Order) domain.Order {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	s.mu.Lock()
	orders := make([]domain.Order, 0, len(s.snap.Orders)+1)
	orders = append(orders, o)
	orders = append(orders, s.snap.Orders...)
	s.snap.Orders = orders
	s.mu.Unlock()

	s.persist(ChangeInsert, CollectionOrders, o.ID, o)
	return o
}

// UpdateOrder applies mutate to the order with the given id and swaps in
// the result. Returns false, leaving everything untouched, when the id is
// unknown.
func (s *Store) UpdateOrder(id string, mutate func(domain.Order) domain.Order) (domain.Order, bool) {
	s.mu.Lock()
	idx := -1
	for i, o := range s.snap.Orders {
		if o.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return domain.Order{}, false
	}
	updated := mutate(s.snap.Orders[idx])
	updated.ID = id
	orders := make([]domain.Order, len(s.snap.Orders))
	copy(orders, s.snap.Orders)
	orders[idx] = updated
	s.snap.Orders = orders
	s.mu.Unlock()

	s.persist(ChangeUpdate, CollectionOrders, id, updated)
	return updated, true
}

// PutCustomer upserts a customer by id, assigning one when empty. New
// customers are prepended.
func (s *Store) PutCustomer(c domain.Customer) domain.Customer {
	kind := ChangeUpdate
	s.mu.Lock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	idx := -1
	for i, existing := range s.snap.Customers {
		if existing.ID == c.ID {
			idx = i
			break
		}
	}
	customers := make([]domain.Customer, 0, len(s.snap.Customers)+1)
	if idx < 0 {
		kind = ChangeInsert
		customers = append(customers, c)
		customers = append(customers, s.snap.Customers...)
	} else {
		customers = append(customers, s.snap.Customers...)
		customers[idx] = c
	}
	s.snap.Customers = customers
	s.mu.Unlock()

	s.persist(kind, CollectionCustomers, c.ID, c)
	return c
}

// PutCourier upserts a courier by id, assigning one when empty.
func (s *Store) PutCourier(c domain.Courier) domain.Courier {
	kind := ChangeUpdate
	s.mu.Lock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	idx := -1
	for i, existing := range s.snap.Couriers {
		if existing.ID == c.ID {
			idx = i
			break
		}
	}
	couriers := make([]domain.Courier, 0, len(s.snap.Couriers)+1)
	couriers = append(couriers, s.snap.Couriers...)
	if idx < 0 {
		kind = ChangeInsert
		couriers = append(couriers, c)
	} else {
		couriers[idx] = c
	}
	s.snap.Couriers = couriers
	s.mu.Unlock()

	s.persist(kind, CollectionCouriers, c.ID, c)
	return c
}

// PutInventoryItem upserts an inventory item by id, assigning one when empty.
func (s *Store) PutInventoryItem(it domain.InventoryItem) domain.InventoryItem {
	kind := ChangeUpdate
	s.mu.Lock()
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	idx := -1
	for i, existing := range s.snap.Inventory {
		if existing.ID == it.ID {
			idx = i
			break
		}
	}
	inventory := make([]domain.InventoryItem, 0, len(s.snap.Inventory)+1)
	inventory = append(inventory, s.snap.Inventory...)
	if idx < 0 {
		kind = ChangeInsert
		inventory = append(inventory, it)
	} else {
		inventory[idx] = it
	}
	s.snap.Inventory = inventory
	s.mu.Unlock()

	s.persist(kind, CollectionInventory, it.ID, it)
	return it
}

// DeleteInventoryItem removes an item by id. Returns false when unknown.
func (s *Store) DeleteInventoryItem(id string) bool {
	s.mu.Lock()
	idx := -1
	for i, existing := range s.snap.Inventory {
		if existing.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	inventory := make([]domain.InventoryItem, 0, len(s.snap.Inventory)-1)
	inventory = append(inventory, s.snap.Inventory[:idx]...)
	inventory = append(inventory, s.snap.Inventory[idx+1:]...)
	s.snap.Inventory = inventory
	s.mu.Unlock()

	s.delete(CollectionInventory, id)
	return true
}

// PutCategory upserts a category by id, assigning one when empty.
func (s *Store) PutCategory(c domain.Category) domain.Category {
	kind := ChangeUpdate
	s.mu.Lock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	idx := -1
	for i, existing := range s.snap.Categories {
		if existing.ID == c.ID {
			idx = i
			break
		}
	}
	categories := make([]domain.Category, 0, len(s.snap.Categories)+1)
	categories = append(categories, s.snap.Categories...)
	if idx < 0 {
		kind = ChangeInsert
		categories = append(categories, c)
	} else {
		categories[idx] = c
	}
	s.snap.Categories = categories
	s.mu.Unlock()

	s.persist(kind, CollectionCategories, c.ID, c)
	return c
}

// DeleteCategory removes a category by id. Returns false when unknown.
// Reference checks against inventory belong to the category service.
func (s *Store) DeleteCategory(id string) bool {
	s.mu.Lock()
	idx := -1
	for i, existing := range s.snap.Categories {
		if existing.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	categories := make([]domain.Category, 0, len(s.snap.Categories)-1)
	categories = append(categories, s.snap.Categories[:idx]...)
	categories = append(categories, s.snap.Categories[idx+1:]...)
	s.snap.Categories = categories
	s.mu.Unlock()

	s.delete(CollectionCategories, id)
	return true
}

// Run consumes the realtime feed until ctx is cancelled, merging remote
// changes into the snapshot.
func (s *Store) Run(ctx context.Context) error {
	if s.feed == nil {
		<-ctx.Done()
		return ctx.Err()
	}
	changes, err := s.feed.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("store: subscribe: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			s.ApplyRemote(change)
		}
	}
}

// ApplyRemote merges one realtime event into the snapshot. Inserts are
// deduplicated by id before prepending; updates are merged by id lookup
// and silently dropped when the row is unknown. Last write wins; there is
// no version or sequence check.
func (s *Store) ApplyRemote(change Change) {
	switch change.Collection {
	case CollectionOrders:
		var o domain.Order
		if err := json.Unmarshal(change.Row, &o); err != nil {
			s.logger.Warn("store: bad remote order row", slog.Any("error", err))
			return
		}
		if s.applyRemoteOrder(change.Kind, o) && change.Kind == ChangeInsert && s.onRemoteOrder != nil {
			s.onRemoteOrder(o)
		}
	case CollectionCustomers:
		var c domain.Customer
		if err := json.Unmarshal(change.Row, &c); err != nil {
			s.logger.Warn("store: bad remote customer row", slog.Any("error", err))
			return
		}
		s.mu.Lock()
		s.snap.Customers = mergeCustomer(s.snap.Customers, change.Kind, c)
		s.mu.Unlock()
	case CollectionCouriers:
		var c domain.Courier
		if err := json.Unmarshal(change.Row, &c); err != nil {
			s.logger.Warn("store: bad remote courier row", slog.Any("error", err))
			return
		}
		s.mu.Lock()
		s.snap.Couriers = mergeCourier(s.snap.Couriers, change.Kind, c)
		s.mu.Unlock()
	case CollectionInventory:
		var it domain.InventoryItem
		if err := json.Unmarshal(change.Row, &it); err != nil {
			s.logger.Warn("store: bad remote inventory row", slog.Any("error", err))
			return
		}
		s.mu.Lock()
		s.snap.Inventory = mergeInventory(s.snap.Inventory, change.Kind, it)
		s.mu.Unlock()
	case CollectionCategories:
		var c domain.Category
		if err := json.Unmarshal(change.Row, &c); err != nil {
			s.logger.Warn("store: bad remote category row", slog.Any("error", err))
			return
		}
		s.mu.Lock()
		s.snap.Categories = mergeCategory(s.snap.Categories, change.Kind, c)
		s.mu.Unlock()
	default:
		s.logger.Warn("store: unknown collection in remote change", slog.String("collection", change.Collection))
	}
}

// applyRemoteOrder reports whether the snapshot actually changed.
func (s *Store) applyRemoteOrder(kind ChangeKind, o domain.Order) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, existing := range s.snap.Orders {
		if existing.ID == o.ID {
			idx = i
			break
		}
	}
	switch kind {
	case ChangeInsert:
		if idx >= 0 {
			return false
		}
		orders := make([]domain.Order, 0, len(s.snap.Orders)+1)
		orders = append(orders, o)
		orders = append(orders, s.snap.Orders...)
		s.snap.Orders = orders
		return true
	case ChangeUpdate:
		if idx < 0 {
			return false
		}
		orders := make([]domain.Order, len(s.snap.Orders))
		copy(orders, s.snap.Orders)
		orders[idx] = o
		s.snap.Orders = orders
		return true
	default:
		return false
	}
}

func (s *Store) persist(kind ChangeKind, collection, id string, row any) {
	if s.backend == nil && s.feed == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if s.backend != nil {
			var err error
			switch kind {
			case ChangeInsert:
				err = s.backend.Upsert(ctx, collection, id, row)
			case ChangeUpdate:
				err = s.backend.UpdateByID(ctx, collection, id, row)
			}
			if err != nil {
				s.logger.Error("store: persist failed",
					slog.String("collection", collection),
					slog.String("id", id),
					slog.Any("error", err))
			}
		}

		if s.feed != nil {
			raw, err := json.Marshal(row)
			if err != nil {
				s.logger.Error("store: marshal change failed", slog.Any("error", err))
				return
			}
			change := Change{Collection: collection, Kind: kind, Row: raw}
			if err := s.feed.Publish(ctx, change); err != nil {
				s.logger.Error("store: publish change failed",
					slog.String("collection", collection),
					slog.Any("error", err))
			}
		}
	}()
}

func (s *Store) delete(collection, id string) {
	if s.backend == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := s.backend.DeleteByID(ctx, collection, id); err != nil {
			s.logger.Error("store: delete failed",
				slog.String("collection", collection),
				slog.String("id", id),
				slog.Any("error", err))
		}
	}()
}

func mergeCustomer(list []domain.Customer, kind ChangeKind, c domain.Customer) []domain.Customer {
	idx := -1
	for i, existing := range list {
		if existing.ID == c.ID {
			idx = i
			break
		}
	}
	switch kind {
	case ChangeInsert:
		if idx >= 0 {
			return list
		}
		out := make([]domain.Customer, 0, len(list)+1)
		out = append(out, c)
		return append(out, list...)
	case ChangeUpdate:
		if idx < 0 {
			return list
		}
		out := make([]domain.Customer, len(list))
		copy(out, list)
		out[idx] = c
		return out
	}
	return list
}

func mergeCourier(list []domain.Courier, kind ChangeKind, c domain.Courier) []domain.Courier {
	idx := -1
	for i, existing := range list {
		if existing.ID == c.ID {
			idx = i
			break
		}
	}
	switch kind {
	case ChangeInsert:
		if idx >= 0 {
			return list
		}
		out := make([]domain.Courier, 0, len(list)+1)
		out = append(out, list...)
		return append(out, c)
	case ChangeUpdate:
		if idx < 0 {
			return list
		}
		out := make([]domain.Courier, len(list))
		copy(out, list)
		out[idx] = c
		return out
	}
	return list
}

func mergeInventory(list []domain.InventoryItem, kind ChangeKind, it domain.InventoryItem) []domain.InventoryItem {
	idx := -1
	for i, existing := range list {
		if existing.ID == it.ID {
			idx = i
			break
		}
	}
	switch kind {
	case ChangeInsert:
		if idx >= 0 {
			return list
		}
		out := make([]domain.InventoryItem, 0, len(list)+1)
		out = append(out, list...)
		return append(out, it)
	case ChangeUpdate:
		if idx < 0 {
			return list
		}
		out := make([]domain.InventoryItem, len(list))
		copy(out, list)
		out[idx] = it
		return out
	}
	return list
}

func mergeCategory(list []domain.Category, kind ChangeKind, c domain.Category) []domain.Category {
	idx := -1
	for i, existing := range list {
		if existing.ID == c.ID {
			idx = i
			break
		}
	}
	switch kind {
	case ChangeInsert:
		if idx >= 0 {
			return list
		}
		out := make([]domain.Category, 0, len(list)+1)
		out = append(out, list...)
		return append(out, c)
	case ChangeUpdate:
		if idx < 0 {
			return list
		}
		out := make([]domain.Category, len(list))
		copy(out, list)
		out[idx] = c
		return out
	}
	return list
}
