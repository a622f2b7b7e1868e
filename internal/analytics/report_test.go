package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudepo/sudepo/internal/domain"
	"github.com/sudepo/sudepo/internal/store"
)

var reportNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func deliveredOrder(id string, total float64, items ...domain.OrderItem) domain.Order {
	return domain.Order{
		ID:          id,
		Status:      domain.OrderStatusDelivered,
		Source:      domain.SourceWeb,
		TotalAmount: total,
		Items:       items,
		CreatedAt:   reportNow.Add(-time.Hour),
	}
}

func TestBuildEmptySnapshot(t *testing.T) {
	report := Build(store.Snapshot{}, Window{Kind: WindowAll}, reportNow)

	assert.Zero(t, report.TotalOrders)
	assert.Zero(t, report.TotalRevenue)
	assert.Zero(t, report.NetProfit)
	// No division by zero on an empty window.
	assert.Zero(t, report.MarginPercent)
	assert.Empty(t, report.Couriers)
	assert.Empty(t, report.TopRegions)
	// Source rows exist even with nothing sold.
	require.Len(t, report.SourceStats, len(domain.KnownSources()))
	for _, stat := range report.SourceStats {
		assert.Zero(t, stat.Orders)
	}
}

func TestBuildRevenueCostMargin(t *testing.T) {
	snap := store.Snapshot{
		Inventory: []domain.InventoryItem{
			{ID: "p1", Name: "Damacana 19L", CostPrice: 20, SalePrice: 50, Category: "Su"},
		},
		Orders: []domain.Order{
			deliveredOrder("o1", 100, domain.OrderItem{ProductID: "p1", ProductName: "Damacana 19L", Quantity: 2, Price: 50}),
			{
				ID:          "o2",
				Status:      domain.OrderStatusPending,
				Source:      domain.SourceWeb,
				TotalAmount: 999,
				CreatedAt:   reportNow.Add(-time.Hour),
			},
		},
	}

	report := Build(snap, Window{Kind: WindowAll}, reportNow)

	assert.Equal(t, 2, report.TotalOrders)
	assert.Equal(t, 1, report.DeliveredOrders)
	// Pending orders never count toward revenue.
	assert.InDelta(t, 100, report.TotalRevenue, 1e-9)
	assert.InDelta(t, 40, report.TotalCost, 1e-9)
	assert.InDelta(t, 60, report.NetProfit, 1e-9)
	assert.InDelta(t, 60, report.MarginPercent, 1e-9)
}

func TestBuildCostLookupFallsBackToName(t *testing.T) {
	snap := store.Snapshot{
		Inventory: []domain.InventoryItem{
			{ID: "p9", Name: "Damacana 19L", CostPrice: 20, Category: "Su"},
		},
		Orders: []domain.Order{
			// Stale product id, but the name still resolves.
			deliveredOrder("o1", 50, domain.OrderItem{ProductID: "gone", ProductName: "Damacana 19L", Quantity: 1, Price: 50}),
			// Neither id nor name resolves; the line is skipped for cost.
			deliveredOrder("o2", 30, domain.OrderItem{ProductID: "x", ProductName: "Bilinmeyen", Quantity: 3, Price: 10}),
		},
	}

	report := Build(snap, Window{Kind: WindowAll}, reportNow)

	assert.InDelta(t, 20, report.TotalCost, 1e-9)
	assert.InDelta(t, 80, report.TotalRevenue, 1e-9)

	// Unresolvable lines land in the fallback category bucket.
	require.Len(t, report.CategorySales, 2)
	assert.Equal(t, "Su", report.CategorySales[0].Category)
	assert.InDelta(t, 50, report.CategorySales[0].Revenue, 1e-9)
	assert.Equal(t, OtherCategory, report.CategorySales[1].Category)
	assert.InDelta(t, 30, report.CategorySales[1].Revenue, 1e-9)
}

func TestBuildCourierLeaderboard(t *testing.T) {
	orders := []domain.Order{
		deliveredOrder("o1", 100),
		deliveredOrder("o2", 70),
		deliveredOrder("o3", 50),
	}
	orders[0].CourierID, orders[0].CourierName = "c1", "Mehmet"
	orders[1].CourierID, orders[1].CourierName = "c2", "Ali"
	orders[2].CourierID, orders[2].CourierName = "c2", "Ali"

	report := Build(store.Snapshot{Orders: orders}, Window{Kind: WindowAll}, reportNow)

	require.Len(t, report.Couriers, 2)
	assert.Equal(t, "c2", report.Couriers[0].CourierID)
	assert.Equal(t, 2, report.Couriers[0].Delivered)
	assert.InDelta(t, 120, report.Couriers[0].Revenue, 1e-9)
	assert.Equal(t, "c1", report.Couriers[1].CourierID)
}

func TestBuildCourierNamePrefersCurrent(t *testing.T) {
	o := deliveredOrder("o1", 100)
	o.CourierID, o.CourierName = "c1", "Eski Ad"
	snap := store.Snapshot{
		Orders:   []domain.Order{o},
		Couriers: []domain.Courier{{ID: "c1", Name: "Yeni Ad"}},
	}

	report := Build(snap, Window{Kind: WindowAll}, reportNow)
	require.Len(t, report.Couriers, 1)
	assert.Equal(t, "Yeni Ad", report.Couriers[0].CourierName)
}

func TestBuildTopRegions(t *testing.T) {
	var orders []domain.Order
	addresses := []string{
		"Çankaya, Kültür, No:1",
		"Çankaya, Kültür, No:2",
		"Çankaya, Bahçeli, No:3",
		"tek-segment-adres",
		"Keçiören, Etlik, No:4",
		"Çankaya, Ayrancı, No:5",
		"Çankaya, Emek, No:6",
		"Çankaya, Birlik, No:7",
	}
	for i, addr := range addresses {
		orders = append(orders, domain.Order{
			ID:        string(rune('a' + i)),
			Address:   addr,
			Status:    domain.OrderStatusPending,
			Source:    domain.SourceWeb,
			CreatedAt: reportNow.Add(-time.Hour),
		})
	}

	report := Build(store.Snapshot{Orders: orders}, Window{Kind: WindowAll}, reportNow)

	// Seven distinct neighborhoods, capped to five rows.
	require.Len(t, report.TopRegions, 5)
	assert.Equal(t, "Kültür", report.TopRegions[0].Neighborhood)
	assert.Equal(t, 2, report.TopRegions[0].Orders)
	// Single-count rows follow alphabetically.
	assert.Equal(t, "Ayrancı", report.TopRegions[1].Neighborhood)

	assert.Equal(t, 8, report.TotalOrders)
}

func TestBuildDefaultRegionBucket(t *testing.T) {
	orders := []domain.Order{
		{ID: "1", Address: "adres virgülsüz", Status: domain.OrderStatusPending, Source: domain.SourceWeb, CreatedAt: reportNow.Add(-time.Hour)},
		{ID: "2", Address: "", Status: domain.OrderStatusPending, Source: domain.SourceWeb, CreatedAt: reportNow.Add(-time.Hour)},
	}
	report := Build(store.Snapshot{Orders: orders}, Window{Kind: WindowAll}, reportNow)
	require.Len(t, report.TopRegions, 1)
	assert.Equal(t, domain.DefaultNeighborhood, report.TopRegions[0].Neighborhood)
	assert.Equal(t, 2, report.TopRegions[0].Orders)
}

func TestBuildSourceStats(t *testing.T) {
	getir := deliveredOrder("o1", 80)
	getir.Source = domain.SourceGetir
	unknown := deliveredOrder("o2", 40)
	unknown.Source = "pazaryeri-x"

	report := Build(store.Snapshot{Orders: []domain.Order{getir, unknown}}, Window{Kind: WindowAll}, reportNow)

	require.Len(t, report.SourceStats, len(domain.KnownSources())+1)
	bySource := make(map[domain.OrderSource]SourceStat)
	for _, stat := range report.SourceStats {
		bySource[stat.Source] = stat
	}
	assert.Equal(t, 1, bySource[domain.SourceGetir].Orders)
	assert.InDelta(t, 80, bySource[domain.SourceGetir].Revenue, 1e-9)
	assert.Zero(t, bySource[domain.SourceWhatsApp].Orders)

	// Unknown channels are appended after the known list.
	last := report.SourceStats[len(report.SourceStats)-1]
	assert.Equal(t, domain.OrderSource("pazaryeri-x"), last.Source)
	assert.Equal(t, 1, last.Orders)
}

func TestBuildWindowFiltering(t *testing.T) {
	inside := deliveredOrder("in", 100)
	outside := deliveredOrder("out", 900)
	outside.CreatedAt = reportNow.AddDate(0, 0, -3)

	report := Build(store.Snapshot{Orders: []domain.Order{inside, outside}}, Window{Kind: WindowToday}, reportNow)

	assert.Equal(t, 1, report.TotalOrders)
	assert.InDelta(t, 100, report.TotalRevenue, 1e-9)
}
