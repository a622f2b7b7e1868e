package analytics

import (
	"sort"
	"time"

	"github.com/sudepo/sudepo/internal/domain"
	"github.com/sudepo/sudepo/internal/inventory"
	"github.com/sudepo/sudepo/internal/store"
)

// OtherCategory is the bucket for delivered items whose product cannot be
// resolved to an inventory category.
const OtherCategory = "Diğer"

// topRegionLimit caps the regional breakdown.
const topRegionLimit = 5

// CourierStat is one row of the courier leaderboard.
type CourierStat struct {
	CourierID   string  `json:"courierId"`
	CourierName string  `json:"courierName"`
	Delivered   int     `json:"delivered"`
	Revenue     float64 `json:"revenue"`
}

// RegionStat counts filtered orders per delivery neighborhood.
type RegionStat struct {
	Neighborhood string `json:"neighborhood"`
	Orders       int    `json:"orders"`
}

// CategoryStat sums delivered item revenue per inventory category.
type CategoryStat struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

// SourceStat breaks filtered orders down per origin channel. Every known
// channel appears, including those with zero orders.
type SourceStat struct {
	Source    domain.OrderSource `json:"source"`
	Orders    int                `json:"orders"`
	Delivered int                `json:"delivered"`
	Revenue   float64            `json:"revenue"`
}

// Report is the dashboard snapshot for one window. Consistent only within
// the single call that produced it.
type Report struct {
	Window          WindowKind     `json:"window"`
	GeneratedAt     time.Time      `json:"generatedAt"`
	TotalOrders     int            `json:"totalOrders"`
	DeliveredOrders int            `json:"deliveredOrders"`
	TotalRevenue    float64        `json:"totalRevenue"`
	TotalCost       float64        `json:"totalCost"`
	NetProfit       float64        `json:"netProfit"`
	MarginPercent   float64        `json:"marginPercent"`
	Couriers        []CourierStat  `json:"courierPerformance"`
	TopRegions      []RegionStat   `json:"topRegions"`
	CategorySales   []CategoryStat `json:"categorySales"`
	SourceStats     []SourceStat   `json:"sourceStats"`
}

// Build computes the report for the snapshot and window at the given
// evaluation instant.
func Build(snap store.Snapshot, window Window, now time.Time) Report {
	report := Report{
		Window:      window.Kind,
		GeneratedAt: now,
	}

	categoryByItem := func(item domain.OrderItem) string {
		it, ok := inventory.ResolveIn(snap.Inventory, item.ProductID, item.ProductName)
		if !ok || it.Category == "" {
			return OtherCategory
		}
		return it.Category
	}

	courierStats := make(map[string]*CourierStat)
	regionCounts := make(map[string]int)
	categoryRevenue := make(map[string]float64)
	sourceStats := make(map[domain.OrderSource]*SourceStat)
	for _, source := range domain.KnownSources() {
		sourceStats[source] = &SourceStat{Source: source}
	}

	for _, o := range snap.Orders {
		if !window.Contains(o.CreatedAt, now) {
			continue
		}
		report.TotalOrders++
		regionCounts[o.Neighborhood()]++

		stat, known := sourceStats[o.Source]
		if !known {
			stat = &SourceStat{Source: o.Source}
			sourceStats[o.Source] = stat
		}
		stat.Orders++

		if o.Status != domain.OrderStatusDelivered {
			continue
		}
		report.DeliveredOrders++
		report.TotalRevenue += o.TotalAmount
		stat.Delivered++
		stat.Revenue += o.TotalAmount

		if o.CourierID != "" {
			cs, ok := courierStats[o.CourierID]
			if !ok {
				name := o.CourierName
				if courier, found := snap.FindCourier(o.CourierID); found {
					name = courier.Name
				}
				cs = &CourierStat{CourierID: o.CourierID, CourierName: name}
				courierStats[o.CourierID] = cs
			}
			cs.Delivered++
			cs.Revenue += o.TotalAmount
		}

		for _, item := range o.Items {
			if it, ok := inventory.ResolveIn(snap.Inventory, item.ProductID, item.ProductName); ok {
				report.TotalCost += it.CostPrice * float64(item.Quantity)
			}
			categoryRevenue[categoryByItem(item)] += item.Price * float64(item.Quantity)
		}
	}

	report.NetProfit = report.TotalRevenue - report.TotalCost
	if report.TotalRevenue > 0 {
		report.MarginPercent = report.NetProfit / report.TotalRevenue * 100
	}

	for _, cs := range courierStats {
		report.Couriers = append(report.Couriers, *cs)
	}
	sort.SliceStable(report.Couriers, func(i, j int) bool {
		return report.Couriers[i].Revenue > report.Couriers[j].Revenue
	})

	for neighborhood, count := range regionCounts {
		report.TopRegions = append(report.TopRegions, RegionStat{Neighborhood: neighborhood, Orders: count})
	}
	sort.SliceStable(report.TopRegions, func(i, j int) bool {
		if report.TopRegions[i].Orders != report.TopRegions[j].Orders {
			return report.TopRegions[i].Orders > report.TopRegions[j].Orders
		}
		return report.TopRegions[i].Neighborhood < report.TopRegions[j].Neighborhood
	})
	if len(report.TopRegions) > topRegionLimit {
		report.TopRegions = report.TopRegions[:topRegionLimit]
	}

	for category, revenue := range categoryRevenue {
		report.CategorySales = append(report.CategorySales, CategoryStat{Category: category, Revenue: revenue})
	}
	sort.SliceStable(report.CategorySales, func(i, j int) bool {
		if report.CategorySales[i].Revenue != report.CategorySales[j].Revenue {
			return report.CategorySales[i].Revenue > report.CategorySales[j].Revenue
		}
		return report.CategorySales[i].Category < report.CategorySales[j].Category
	})

	for _, source := range domain.KnownSources() {
		report.SourceStats = append(report.SourceStats, *sourceStats[source])
		delete(sourceStats, source)
	}
	// Unknown channels tail the known ones in name order.
	var extras []SourceStat
	for _, stat := range sourceStats {
		extras = append(extras, *stat)
	}
	sort.SliceStable(extras, func(i, j int) bool { return extras[i].Source < extras[j].Source })
	report.SourceStats = append(report.SourceStats, extras...)

	return report
}
