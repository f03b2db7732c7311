package match

import (
	"sort"

	"github.com/arsfamsss/mobil-bekas-monitor/internal/domain"
)

// Match runs one listing through the filter chain. The order is fixed
// and short-circuits on the first failure, so rejected listings are
// never enriched: model, year, price, km, transmission. The color
// check (ColorMatches) is intentionally not in the chain.
func (m *Matcher) Match(l domain.Listing) (domain.Match, bool) {
	if !m.IsTargetModel(l.Title, l.Description) {
		return domain.Match{}, false
	}
	if !m.YearInRange(l.Year) {
		return domain.Match{}, false
	}
	if !m.PriceInRange(l.Price) {
		return domain.Match{}, false
	}
	if !m.KmWithinLimit(l.Km) {
		return domain.Match{}, false
	}
	if !m.TransmissionMatches(l.Transmission) {
		return domain.Match{}, false
	}

	mt := domain.Match{Listing: l}
	mt.PlateRegion = m.DetectPlateRegion(l.Title, l.Description)
	mt.Score = m.Score(mt)
	return mt, true
}

// Filter returns the listings that pass every criterion, enriched and
// sorted by score descending. The sort is stable: ties keep their
// input order.
func (m *Matcher) Filter(listings []domain.Listing) []domain.Match {
	var matched []domain.Match
	for _, l := range listings {
		if mt, ok := m.Match(l); ok {
			matched = append(matched, mt)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Score > matched[j].Score
	})
	return matched
}
