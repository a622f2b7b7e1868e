package couriers

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sudepo/sudepo/internal/domain"
)

// Weighted penalties for the greedy assignment heuristic. Lower total is a
// better candidate. The region bonus is sized so availability dominates:
// an offline regional match (10000-2000) still loses to any active
// courier.
const (
	penaltyOffline = 10000
	penaltyBusy    = 5000
	penaltyPerLoad = 100
	bonusRegion    = 2000
)

// Service region text is Turkish; ASCII lowering would fold dotted and
// dotless I incorrectly.
var lowerTR = cases.Lower(language.Turkish)

// Score computes a courier's penalty for delivering to the given
// neighborhood: status penalty, plus 100 per active order, minus the
// region bonus on a textual match.
func Score(c domain.Courier, activeLoad int, neighborhood string) int {
	score := 0
	switch c.Status {
	case domain.CourierOffline:
		score += penaltyOffline
	case domain.CourierBusy:
		score += penaltyBusy
	}
	score += penaltyPerLoad * activeLoad
	if RegionMatches(c.ServiceRegion, neighborhood) {
		score -= bonusRegion
	}
	return score
}

// RegionMatches reports whether a courier's declared service region and a
// delivery neighborhood refer to the same area: case-insensitive substring
// containment, checked in both directions so multi-word regions match
// regardless of which side carries the extra words.
func RegionMatches(serviceRegion, neighborhood string) bool {
	region := strings.TrimSpace(serviceRegion)
	target := strings.TrimSpace(neighborhood)
	if region == "" || target == "" {
		return false
	}
	region = lowerTR.String(region)
	target = lowerTR.String(target)
	return strings.Contains(region, target) || strings.Contains(target, region)
}

// ActiveLoad counts the orders currently assigned to the courier in
// Bekliyor or Yolda status.
func ActiveLoad(orders []domain.Order, courierID string) int {
	if courierID == "" {
		return 0
	}
	load := 0
	for _, o := range orders {
		if o.CourierID == courierID && o.Status.Active() {
			load++
		}
	}
	return load
}

// Rank returns the couriers sorted best-first for the given neighborhood.
// The sort is stable, so couriers with equal scores keep their original
// order. The input slice is not modified. Rank is pure and recomputed per
// call; callers must re-rank after any order or courier change.
func Rank(list []domain.Courier, orders []domain.Order, neighborhood string) []domain.Courier {
	ranked := make([]domain.Courier, len(list))
	copy(ranked, list)

	scores := make(map[string]int, len(ranked))
	for _, c := range ranked {
		scores[c.ID] = Score(c, ActiveLoad(orders, c.ID), neighborhood)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i].ID] < scores[ranked[j].ID]
	})
	return ranked
}
