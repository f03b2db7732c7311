// Package carmudi scrapes Carmudi.co.id. Carmudi reworks its card
// markup more often than the other sites, so every field is read
// through a selector cascade.
package carmudi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/arsfamsss/mobil-bekas-monitor/internal/domain"
	"github.com/arsfamsss/mobil-bekas-monitor/internal/fetch"
	"github.com/arsfamsss/mobil-bekas-monitor/internal/fetch/util"
)

const baseURL = "https://www.carmudi.co.id"

var (
	cardSelectors = []string{
		"article[data-id]",
		".listing-item",
		".car-listing-card",
		".card-listing",
		`a[href*="/dijual/"]`,
		".listing-card",
	}
	titleSelectors = []string{
		"h2.title a",
		".card-title a",
		"a[title]",
		".listing-title a",
		"h3 a",
	}
	priceSelectors = []string{
		".price",
		".card-price",
		".listing-price",
		`[class*="price"]`,
	}
	locSelectors = []string{
		".location",
		".card-location",
		".listing-location",
		`[class*="location"]`,
	}
	detailSelectors = []string{
		".features",
		".card-features",
		".listing-specs",
		".car-details",
	}
)

type Fetcher struct {
	searchURL string
	userAgent string
	hc        *http.Client
	limiter   *util.HostLimiter
	log       *logrus.Entry
}

func New(searchURL, userAgent string, hc *http.Client, limiter *util.HostLimiter) *Fetcher {
	return &Fetcher{
		searchURL: searchURL,
		userAgent: userAgent,
		hc:        hc,
		limiter:   limiter,
		log:       logrus.WithField("source", domain.SourceCarmudi),
	}
}

func (f *Fetcher) Name() string { return domain.SourceCarmudi }

func (f *Fetcher) Fetch(ctx context.Context) ([]domain.Listing, error) {
	doc, err := fetch.GetDocument(ctx, f.hc, f.limiter, f.searchURL, f.userAgent)
	if err != nil {
		return nil, fmt.Errorf("carmudi fetch: %w", err)
	}

	var out []domain.Listing
	util.SelectAll(doc.Selection, cardSelectors...).Each(func(_ int, card *goquery.Selection) {
		if l, ok := parseCard(card); ok {
			out = append(out, l)
		}
	})

	f.log.WithField("count", len(out)).Debug("parsed cards")
	return out, nil
}

func parseCard(card *goquery.Selection) (domain.Listing, bool) {
	titleLink := util.SelectFirst(card, titleSelectors...)
	if titleLink == nil {
		titleLink = util.SelectFirst(card, "a[href]")
	}
	var title, href string
	if titleLink != nil {
		title = util.CleanText(titleLink.Text())
		href, _ = titleLink.Attr("href")
	}
	// The card itself may be the anchor.
	if href == "" {
		href, _ = card.Attr("href")
	}
	if title == "" {
		title = util.CleanText(card.AttrOr("title", ""))
	}
	if title == "" {
		return domain.Listing{}, false
	}
	rawURL := util.AbsoluteURL(baseURL, href)

	details := util.TextFirst(card, detailSelectors...)
	blob := title + " " + details

	price := util.ParseRupiah(util.TextFirst(card, priceSelectors...))

	l := domain.Listing{
		ListingID:    util.ListingIDFromURL(rawURL, title),
		Source:       domain.SourceCarmudi,
		Title:        title,
		Price:        price,
		Location:     util.TextFirst(card, locSelectors...),
		URL:          rawURL,
		ImageURL:     util.AttrFirst(card, []string{"src", "data-src"}, "img"),
		Year:         util.ParseYear(blob),
		Km:           util.ParseKm(details),
		Transmission: util.ParseTransmission(details),
	}
	return l, true
}
