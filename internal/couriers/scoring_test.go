package couriers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudepo/sudepo/internal/domain"
)

func TestScoreStatusOrdering(t *testing.T) {
	active := domain.Courier{ID: "a", Status: domain.CourierActive}
	busy := domain.Courier{ID: "b", Status: domain.CourierBusy}
	offline := domain.Courier{ID: "c", Status: domain.CourierOffline}

	assert.Less(t, Score(active, 0, ""), Score(busy, 0, ""))
	assert.Less(t, Score(busy, 0, ""), Score(offline, 0, ""))

	// An offline courier in the right region still scores worse than any
	// active courier with a realistic load.
	offline.ServiceRegion = "Merkez"
	assert.Greater(t, Score(offline, 0, "Merkez"), Score(active, 20, "elsewhere"))
}

func TestScoreLoadAndRegion(t *testing.T) {
	c := domain.Courier{ID: "a", Status: domain.CourierActive, ServiceRegion: "Kültür"}

	assert.Equal(t, 0, Score(c, 0, "Başka"))
	assert.Equal(t, 300, Score(c, 3, "Başka"))
	assert.Equal(t, -2000, Score(c, 0, "Kültür"))
	assert.Equal(t, -1700, Score(c, 3, "Kültür"))
}

func TestScoreScenario(t *testing.T) {
	// Active courier with two deliveries underway in the matching region
	// beats an idle busy courier with no match.
	a := domain.Courier{ID: "a", Status: domain.CourierActive, ServiceRegion: "Yenimahalle"}
	b := domain.Courier{ID: "b", Status: domain.CourierBusy, ServiceRegion: "Merkez"}

	orders := []domain.Order{
		{ID: "1", CourierID: "a", Status: domain.OrderStatusPending},
		{ID: "2", CourierID: "a", Status: domain.OrderStatusOnWay},
		{ID: "3", CourierID: "a", Status: domain.OrderStatusDelivered},
		{ID: "4", CourierID: "b", Status: domain.OrderStatusCancelled},
	}

	require.Equal(t, 2, ActiveLoad(orders, "a"))
	require.Equal(t, 0, ActiveLoad(orders, "b"))

	assert.Equal(t, -1800, Score(a, ActiveLoad(orders, "a"), "Yenimahalle"))
	assert.Equal(t, 5000, Score(b, ActiveLoad(orders, "b"), "Yenimahalle"))

	// 30 unmatched busy couriers would still rank below b only once their
	// load pushes past the busy penalty gap; the bonus never flips status.
	assert.Equal(t, 8000, Score(b, 30, "Yenimahalle"))
}

func TestRegionMatches(t *testing.T) {
	tests := []struct {
		name         string
		region       string
		neighborhood string
		want         bool
	}{
		{"exact", "Kültür", "Kültür", true},
		{"region contains neighborhood", "Kültür ve Atatürk Mah.", "Kültür", true},
		{"neighborhood contains region", "Atatürk", "Atatürk Mahallesi", true},
		{"turkish dotted capital", "İSTİKLAL", "istiklal", true},
		{"ascii case fold", "merkez", "MERKEZ", true},
		{"no overlap", "Kültür", "Çamlıca", false},
		{"empty region", "", "Kültür", false},
		{"empty neighborhood", "Kültür", "", false},
		{"whitespace only", "   ", "Kültür", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RegionMatches(tt.region, tt.neighborhood))
		})
	}
}

func TestActiveLoadEmptyCourier(t *testing.T) {
	orders := []domain.Order{
		{ID: "1", CourierID: "", Status: domain.OrderStatusPending},
	}
	assert.Equal(t, 0, ActiveLoad(orders, ""))
}

func TestRankOrderingAndStability(t *testing.T) {
	list := []domain.Courier{
		{ID: "offline-match", Status: domain.CourierOffline, ServiceRegion: "Merkez"},
		{ID: "busy", Status: domain.CourierBusy},
		{ID: "first-idle", Status: domain.CourierActive},
		{ID: "second-idle", Status: domain.CourierActive},
		{ID: "active-match", Status: domain.CourierActive, ServiceRegion: "Merkez"},
	}

	ranked := Rank(list, nil, "Merkez")
	require.Len(t, ranked, 5)

	assert.Equal(t, "active-match", ranked[0].ID)
	// Equal-score idle couriers keep their registration order.
	assert.Equal(t, "first-idle", ranked[1].ID)
	assert.Equal(t, "second-idle", ranked[2].ID)
	assert.Equal(t, "busy", ranked[3].ID)
	assert.Equal(t, "offline-match", ranked[4].ID)

	// Input slice is untouched.
	assert.Equal(t, "offline-match", list[0].ID)
}

func TestRankEmpty(t *testing.T) {
	assert.Empty(t, Rank(nil, nil, "Merkez"))
}
