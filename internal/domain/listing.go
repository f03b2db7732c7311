package domain

// Source identifiers. A listing's identity is (ListingID, Source);
// ListingID alone is only unique within one site.
const (
	SourceOLX      = "olx"
	SourceMobil123 = "mobil123"
	SourceCarmudi  = "carmudi"
	SourceJualo    = "jualo"
)

const (
	TransmissionManual    = "manual"
	TransmissionAutomatic = "automatic"
)

// PlateUnknown is the sentinel for listings where no plate region
// could be extracted from the text.
const PlateUnknown = "unknown"

// Listing is one normalized classified ad as produced by a fetcher.
// Scraped cards are frequently incomplete: Year and Km are nil when
// the site didn't expose them, Transmission and Color are empty
// strings, and Price 0 means the price couldn't be parsed.
type Listing struct {
	ListingID    string
	Source       string
	Title        string
	Description  string
	Price        int // whole rupiah, 0 = unknown
	Year         *int
	Km           *int
	Transmission string
	Color        string
	Location     string
	URL          string
	ImageURL     string
}

// Match is a listing that passed every filter, enriched with the
// extracted plate region and a priority score in [0,100].
type Match struct {
	Listing
	PlateRegion string
	Score       int
}

// IntPtr is a convenience for building optional fields in tests and
// adapters.
func IntPtr(v int) *int { return &v }
