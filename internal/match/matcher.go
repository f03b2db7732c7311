package match

import (
	"strings"

	"github.com/arsfamsss/mobil-bekas-monitor/internal/config"
)

// Matcher filters listings against the configured buyer criteria and
// enriches survivors with a plate region and priority score. Construct
// one at startup and share it; it is immutable after New.
type Matcher struct {
	criteria config.Criteria
	weights  config.ScoringWeights
	include  []string
	exclude  []string
}

func New(cfg config.Config) *Matcher {
	return &Matcher{
		criteria: cfg.Criteria,
		weights:  cfg.Scoring,
		include:  lowerAll(cfg.Keywords.Include),
		exclude:  lowerAll(cfg.Keywords.Exclude),
	}
}

func lowerAll(xs []string) []string {
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		x = strings.ToLower(strings.TrimSpace(x))
		if x != "" {
			out = append(out, x)
		}
	}
	return out
}

// YearInRange rejects listings without a year: year and price are the
// two hard requirements, an ad that states neither is unverifiable.
func (m *Matcher) YearInRange(year *int) bool {
	if year == nil {
		return false
	}
	return m.criteria.YearMin <= *year && *year <= m.criteria.YearMax
}

// PriceInRange treats 0 as "price not parsed" and rejects it.
func (m *Matcher) PriceInRange(price int) bool {
	if price == 0 {
		return false
	}
	return m.criteria.PriceMin <= price && price <= m.criteria.PriceMax
}

// KmWithinLimit passes listings without an odometer reading. Mileage
// is routinely missing from scraped cards, so absence must not discard
// an otherwise good candidate.
func (m *Matcher) KmWithinLimit(km *int) bool {
	if km == nil {
		return true
	}
	return 0 <= *km && *km <= m.criteria.MaxKm
}

// TransmissionMatches passes unknown transmissions, same rationale as
// KmWithinLimit.
func (m *Matcher) TransmissionMatches(transmission string) bool {
	if transmission == "" {
		return true
	}
	return strings.EqualFold(transmission, m.criteria.Transmission)
}

// ColorMatches is evaluable but deliberately not applied by Filter:
// the search URLs already constrain color, and card colors are too
// unreliable to re-check. Kept so the pipeline can opt back in.
func (m *Matcher) ColorMatches(color string) bool {
	if color == "" {
		return true
	}
	return strings.Contains(strings.ToLower(color), m.criteria.Color)
}
