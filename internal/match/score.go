package match

import "github.com/arsfamsss/mobil-bekas-monitor/internal/domain"

// Score computes the priority score for an enriched listing. It starts
// at the configured base and applies independent additive adjustments;
// at most one tier fires per dimension and missing fields contribute
// nothing. The result is clamped to [0,100]. This is a ranking signal,
// not a filter.
func (m *Matcher) Score(mt domain.Match) int {
	w := m.weights
	score := w.Base

	if mt.PlateRegion == m.criteria.PriorityPlate {
		score += w.PriorityPlateBonus
	}

	if mt.Km != nil {
		switch km := *mt.Km; {
		case km < 20_000:
			score += w.KmUnder20K
		case km < 40_000:
			score += w.KmUnder40K
		case km < 60_000:
			score += w.KmUnder60K
		}
	}

	if mt.Year != nil {
		switch *mt.Year {
		case m.criteria.YearMax:
			score += w.NewestYearBonus
		case m.criteria.YearMax - 1:
			score += w.SecondYearBonus
		}
	}

	if mt.Price != 0 {
		if mt.Price > w.HighPriceOver {
			score += w.HighPricePenalty
		} else if mt.Price < w.LowPriceUnder {
			score += w.LowPriceBonus
		}
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
