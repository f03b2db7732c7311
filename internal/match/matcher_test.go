package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arsfamsss/mobil-bekas-monitor/internal/config"
	"github.com/arsfamsss/mobil-bekas-monitor/internal/domain"
)

func defaultMatcher() *Matcher {
	return New(config.Default())
}

func TestYearInRange(t *testing.T) {
	m := defaultMatcher()

	tests := []struct {
		name string
		year *int
		want bool
	}{
		{"absent year rejected", nil, false},
		{"below min", domain.IntPtr(2018), false},
		{"at min", domain.IntPtr(2019), true},
		{"at max", domain.IntPtr(2021), true},
		{"above max", domain.IntPtr(2022), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.YearInRange(tt.year))
		})
	}
}

func TestPriceInRange(t *testing.T) {
	m := defaultMatcher()

	tests := []struct {
		name  string
		price int
		want  bool
	}{
		{"unknown price rejected", 0, false},
		{"below min", 100_000_000, false},
		{"at min", 120_000_000, true},
		{"mid range", 160_000_000, true},
		{"at max", 190_000_000, true},
		{"above max", 200_000_000, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.PriceInRange(tt.price))
		})
	}
}

func TestKmWithinLimit(t *testing.T) {
	m := defaultMatcher()

	assert.True(t, m.KmWithinLimit(nil), "absent odometer passes")
	assert.True(t, m.KmWithinLimit(domain.IntPtr(0)))
	assert.True(t, m.KmWithinLimit(domain.IntPtr(60_000)))
	assert.False(t, m.KmWithinLimit(domain.IntPtr(60_001)))
	assert.False(t, m.KmWithinLimit(domain.IntPtr(-1)))
}

func TestTransmissionMatches(t *testing.T) {
	m := defaultMatcher()

	assert.True(t, m.TransmissionMatches(""), "unknown transmission passes")
	assert.True(t, m.TransmissionMatches("manual"))
	assert.True(t, m.TransmissionMatches("Manual"))
	assert.False(t, m.TransmissionMatches("automatic"))
}

func TestColorMatches(t *testing.T) {
	m := defaultMatcher()

	assert.True(t, m.ColorMatches(""))
	assert.True(t, m.ColorMatches("Putih"))
	assert.True(t, m.ColorMatches("putih metalik"))
	assert.False(t, m.ColorMatches("hitam"))
}
