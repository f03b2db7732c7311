package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arsfamsss/mobil-bekas-monitor/internal/domain"
)

func TestMatchEnrichesPassingListing(t *testing.T) {
	m := defaultMatcher()

	l := domain.Listing{
		ListingID:    "abc123",
		Source:       domain.SourceOLX,
		Title:        "Toyota Avanza Veloz 1.5 MT 2020 Putih",
		Description:  "plat F Bogor",
		Price:        160_000_000,
		Year:         domain.IntPtr(2020),
		Km:           domain.IntPtr(35_000),
		Transmission: domain.TransmissionManual,
	}

	mt, ok := m.Match(l)
	require.True(t, ok)
	assert.Equal(t, "F", mt.PlateRegion)
	// 50 base +30 plate +10 km band +5 second-newest year.
	assert.Equal(t, 95, mt.Score)
	assert.GreaterOrEqual(t, mt.Score, 80)
	assert.Equal(t, l.ListingID, mt.ListingID)
}

func TestMatchRejections(t *testing.T) {
	m := defaultMatcher()

	base := domain.Listing{
		Title:        "Toyota Avanza G",
		Price:        150_000_000,
		Year:         domain.IntPtr(2020),
		Km:           domain.IntPtr(30_000),
		Transmission: domain.TransmissionManual,
	}

	tests := []struct {
		name string
		mut  func(*domain.Listing)
	}{
		{"wrong model despite matching numbers", func(l *domain.Listing) { l.Title = "Toyota Innova 2020 Manual" }},
		{"missing year", func(l *domain.Listing) { l.Year = nil }},
		{"year out of range", func(l *domain.Listing) { l.Year = domain.IntPtr(2018) }},
		{"missing price", func(l *domain.Listing) { l.Price = 0 }},
		{"price out of range", func(l *domain.Listing) { l.Price = 200_000_000 }},
		{"km over limit", func(l *domain.Listing) { l.Km = domain.IntPtr(80_000) }},
		{"transmission mismatch", func(l *domain.Listing) { l.Transmission = domain.TransmissionAutomatic }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := base
			tt.mut(&l)
			_, ok := m.Match(l)
			assert.False(t, ok)
		})
	}
}

func TestMatchPassesWithMissingSoftFields(t *testing.T) {
	m := defaultMatcher()

	l := domain.Listing{
		Title: "Toyota Avanza 2020",
		Price: 150_000_000,
		Year:  domain.IntPtr(2020),
		// no km, no transmission
	}
	_, ok := m.Match(l)
	assert.True(t, ok)
}

func TestMatchIgnoresColorMismatch(t *testing.T) {
	m := defaultMatcher()

	l := domain.Listing{
		Title: "Toyota Avanza 2020",
		Price: 150_000_000,
		Year:  domain.IntPtr(2020),
		Color: "hitam",
	}
	_, ok := m.Match(l)
	assert.True(t, ok, "color is not part of the filter chain")
}

func TestFilterReferenceSet(t *testing.T) {
	m := defaultMatcher()

	listings := []domain.Listing{
		{
			ListingID: "1", Title: "Toyota Avanza G 2020 Manual",
			Price: 150_000_000, Year: domain.IntPtr(2020),
			Km: domain.IntPtr(30_000), Transmission: domain.TransmissionManual,
		},
		{
			ListingID: "2", Title: "Toyota Innova 2020 Manual",
			Price: 150_000_000, Year: domain.IntPtr(2020),
			Transmission: domain.TransmissionManual,
		},
		{
			ListingID: "3", Title: "Toyota Avanza 2018 Manual",
			Price: 140_000_000, Year: domain.IntPtr(2018),
			Transmission: domain.TransmissionManual,
		},
		{
			ListingID: "4", Title: "Toyota Avanza 2021 Automatic",
			Price: 160_000_000, Year: domain.IntPtr(2021),
			Transmission: domain.TransmissionAutomatic,
		},
		{
			ListingID: "5", Title: "Toyota Avanza 2019 Manual",
			Price: 135_000_000, Year: domain.IntPtr(2019),
			Km: domain.IntPtr(50_000), Transmission: domain.TransmissionManual,
		},
	}

	matches := m.Filter(listings)
	require.Len(t, matches, 2)
	assert.Equal(t, "1", matches[0].ListingID)
	assert.Equal(t, "5", matches[1].ListingID)
	assert.GreaterOrEqual(t, matches[0].Score, matches[1].Score)
}

func TestFilterStableOnTies(t *testing.T) {
	m := defaultMatcher()

	// Identical listings score identically; stable sort keeps input order.
	mk := func(id string) domain.Listing {
		return domain.Listing{
			ListingID: id, Title: "Toyota Avanza 2020 Manual",
			Price: 150_000_000, Year: domain.IntPtr(2020),
			Transmission: domain.TransmissionManual,
		}
	}
	matches := m.Filter([]domain.Listing{mk("a"), mk("b"), mk("c")})
	require.Len(t, matches, 3)
	assert.Equal(t, []string{"a", "b", "c"},
		[]string{matches[0].ListingID, matches[1].ListingID, matches[2].ListingID})
}

func TestFilterEmptyInput(t *testing.T) {
	m := defaultMatcher()
	assert.Empty(t, m.Filter(nil))
}
