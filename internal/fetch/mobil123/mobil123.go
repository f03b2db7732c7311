// Package mobil123 scrapes Mobil123.com listing cards.
package mobil123

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

const baseURL = "https://www.mobil123.com"

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
		log:       logrus.WithField("source", domain.SourceMobil123),
	}
}

func (f *Fetcher) Name() string { return domain.SourceMobil123 }

func (f *Fetcher) Fetch(ctx context.Context) ([]domain.Listing, error) {
	doc, err := fetch.GetDocument(ctx, f.hc, f.limiter, f.searchURL, f.userAgent)
	if err != nil {
		return nil, fmt.Errorf("mobil123 fetch: %w", err)
	}

	var out []domain.Listing
	doc.Find("article.listing-item").Each(func(_ int, card *goquery.Selection) {
		if l, ok := parseCard(card); ok {
			out = append(out, l)
		}
	})

	f.log.WithField("count", len(out)).Debug("parsed cards")
	return out, nil
}

func parseCard(card *goquery.Selection) (domain.Listing, bool) {
	titleLink := util.SelectFirst(card, ".listing-item-title a", "a[href]")
	if titleLink == nil {
		return domain.Listing{}, false
	}
	title := util.CleanText(titleLink.Text())
	if title == "" {
		return domain.Listing{}, false
	}
	href, _ := titleLink.Attr("href")
	rawURL := util.AbsoluteURL(baseURL, href)

	details := util.TextFirst(card, ".listing-item-info")
	blob := title + " " + details

	l := domain.Listing{
		ListingID:    util.ListingIDFromURL(rawURL, title),
		Source:       domain.SourceMobil123,
		Title:        title,
		Price:        util.ParseRupiah(util.TextFirst(card, ".price")),
		Location:     util.TextFirst(card, ".listing-item-location"),
		URL:          rawURL,
		ImageURL:     util.AttrFirst(card, []string{"src", "data-src"}, "img.listing-item-img", "img"),
		Year:         util.ParseYear(blob),
		Km:           util.ParseKm(details),
		Transmission: util.ParseTransmission(details),
	}
	return l, true
}
