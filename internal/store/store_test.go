package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudepo/sudepo/internal/domain"
)

func mustRow(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestInsertOrderAssignsIDAndPrepends(t *testing.T) {
	s := New(nil, nil, nil)

	first := s.InsertOrder(domain.Order{CustomerName: "Ayşe"})
	require.NotEmpty(t, first.ID)

	second := s.InsertOrder(domain.Order{CustomerName: "Mehmet"})
	assert.NotEqual(t, first.ID, second.ID)

	snap := s.Snapshot()
	require.Len(t, snap.Orders, 2)
	assert.Equal(t, second.ID, snap.Orders[0].ID)
	assert.Equal(t, first.ID, snap.Orders[1].ID)
}

func TestInsertOrderKeepsGivenID(t *testing.T) {
	s := New(nil, nil, nil)
	o := s.InsertOrder(domain.Order{ID: "fixed"})
	assert.Equal(t, "fixed", o.ID)
}

func TestSnapshotIsolation(t *testing.T) {
	s := New(nil, nil, nil)
	s.InsertOrder(domain.Order{ID: "o1", CustomerName: "Ayşe"})

	before := s.Snapshot()
	s.InsertOrder(domain.Order{ID: "o2"})
	s.UpdateOrder("o1", func(o domain.Order) domain.Order {
		o.CustomerName = "Değişti"
		return o
	})

	// The earlier snapshot never sees later writes.
	require.Len(t, before.Orders, 1)
	assert.Equal(t, "Ayşe", before.Orders[0].CustomerName)

	after := s.Snapshot()
	require.Len(t, after.Orders, 2)
	assert.Equal(t, "Değişti", after.Orders[1].CustomerName)
}

func TestUpdateOrderUnknownID(t *testing.T) {
	s := New(nil, nil, nil)
	_, ok := s.UpdateOrder("missing", func(o domain.Order) domain.Order { return o })
	assert.False(t, ok)
}

func TestUpdateOrderCannotChangeID(t *testing.T) {
	s := New(nil, nil, nil)
	s.InsertOrder(domain.Order{ID: "o1"})

	updated, ok := s.UpdateOrder("o1", func(o domain.Order) domain.Order {
		o.ID = "hijacked"
		return o
	})
	require.True(t, ok)
	assert.Equal(t, "o1", updated.ID)
}

func TestPutCustomerUpsert(t *testing.T) {
	s := New(nil, nil, nil)

	c := s.PutCustomer(domain.Customer{Name: "Ayşe"})
	require.NotEmpty(t, c.ID)

	c.Name = "Ayşe Yılmaz"
	s.PutCustomer(c)

	snap := s.Snapshot()
	require.Len(t, snap.Customers, 1)
	assert.Equal(t, "Ayşe Yılmaz", snap.Customers[0].Name)

	// New customers are prepended.
	s.PutCustomer(domain.Customer{Name: "Mehmet"})
	snap = s.Snapshot()
	require.Len(t, snap.Customers, 2)
	assert.Equal(t, "Mehmet", snap.Customers[0].Name)
}

func TestDeleteInventoryItem(t *testing.T) {
	s := New(nil, nil, nil)
	it := s.PutInventoryItem(domain.InventoryItem{Name: "Damacana"})

	assert.True(t, s.DeleteInventoryItem(it.ID))
	assert.False(t, s.DeleteInventoryItem(it.ID))
	assert.Empty(t, s.Snapshot().Inventory)
}

func TestDeleteCategory(t *testing.T) {
	s := New(nil, nil, nil)
	c := s.PutCategory(domain.Category{Name: "Su"})

	assert.True(t, s.DeleteCategory(c.ID))
	assert.False(t, s.DeleteCategory("missing"))
}

func TestApplyRemoteOrderInsertDedupe(t *testing.T) {
	var notified []domain.Order
	s := New(nil, nil, nil, WithRemoteOrderHook(func(o domain.Order) {
		notified = append(notified, o)
	}))
	local := s.InsertOrder(domain.Order{ID: "o1", CustomerName: "Ayşe"})

	// Echo of the local write: already present, no hook fire.
	s.ApplyRemote(Change{Collection: CollectionOrders, Kind: ChangeInsert, Row: mustRow(t, local)})
	assert.Len(t, s.Snapshot().Orders, 1)
	assert.Empty(t, notified)

	// Genuinely remote insert: prepended and announced.
	remote := domain.Order{ID: "o2", CustomerName: "Mehmet"}
	s.ApplyRemote(Change{Collection: CollectionOrders, Kind: ChangeInsert, Row: mustRow(t, remote)})
	snap := s.Snapshot()
	require.Len(t, snap.Orders, 2)
	assert.Equal(t, "o2", snap.Orders[0].ID)
	require.Len(t, notified, 1)
	assert.Equal(t, "o2", notified[0].ID)
}

func TestApplyRemoteOrderUpdate(t *testing.T) {
	s := New(nil, nil, nil)
	s.InsertOrder(domain.Order{ID: "o1", Status: domain.OrderStatusPending})

	updated := domain.Order{ID: "o1", Status: domain.OrderStatusDelivered}
	s.ApplyRemote(Change{Collection: CollectionOrders, Kind: ChangeUpdate, Row: mustRow(t, updated)})
	got, ok := s.Snapshot().FindOrder("o1")
	require.True(t, ok)
	assert.Equal(t, domain.OrderStatusDelivered, got.Status)

	// Update for an unknown row is dropped.
	s.ApplyRemote(Change{Collection: CollectionOrders, Kind: ChangeUpdate, Row: mustRow(t, domain.Order{ID: "ghost"})})
	assert.Len(t, s.Snapshot().Orders, 1)
}

func TestApplyRemoteOtherCollections(t *testing.T) {
	s := New(nil, nil, nil)

	s.ApplyRemote(Change{Collection: CollectionCouriers, Kind: ChangeInsert, Row: mustRow(t, domain.Courier{ID: "c1", Name: "Mehmet"})})
	s.ApplyRemote(Change{Collection: CollectionInventory, Kind: ChangeInsert, Row: mustRow(t, domain.InventoryItem{ID: "p1", Name: "Damacana"})})
	s.ApplyRemote(Change{Collection: CollectionCategories, Kind: ChangeInsert, Row: mustRow(t, domain.Category{ID: "k1", Name: "Su"})})
	s.ApplyRemote(Change{Collection: CollectionCustomers, Kind: ChangeInsert, Row: mustRow(t, domain.Customer{ID: "m1", Name: "Ayşe"})})

	snap := s.Snapshot()
	assert.Len(t, snap.Couriers, 1)
	assert.Len(t, snap.Inventory, 1)
	assert.Len(t, snap.Categories, 1)
	assert.Len(t, snap.Customers, 1)

	// Remote update merges by id.
	s.ApplyRemote(Change{Collection: CollectionCouriers, Kind: ChangeUpdate, Row: mustRow(t, domain.Courier{ID: "c1", Name: "Mehmet Ak", Status: domain.CourierBusy})})
	courier, ok := s.Snapshot().FindCourier("c1")
	require.True(t, ok)
	assert.Equal(t, "Mehmet Ak", courier.Name)
}

func TestApplyRemoteBadPayloadIgnored(t *testing.T) {
	s := New(nil, nil, nil)
	s.ApplyRemote(Change{Collection: CollectionOrders, Kind: ChangeInsert, Row: json.RawMessage(`{broken`)})
	s.ApplyRemote(Change{Collection: "unknown", Kind: ChangeInsert, Row: json.RawMessage(`{}`)})
	assert.Empty(t, s.Snapshot().Orders)
}

func TestSeedReplacesSnapshot(t *testing.T) {
	s := New(nil, nil, nil)
	s.InsertOrder(domain.Order{ID: "old"})

	s.Seed(Snapshot{Orders: []domain.Order{{ID: "seeded"}}})
	snap := s.Snapshot()
	require.Len(t, snap.Orders, 1)
	assert.Equal(t, "seeded", snap.Orders[0].ID)
}
