// Package jualo scrapes Jualo.com. Jualo cards carry very little
// structured data; year and transmission are best-effort guesses from
// the title.
package jualo

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

const baseURL = "https://www.jualo.com"

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
		log:       logrus.WithField("source", domain.SourceJualo),
	}
}

func (f *Fetcher) Name() string { return domain.SourceJualo }

func (f *Fetcher) Fetch(ctx context.Context) ([]domain.Listing, error) {
	doc, err := fetch.GetDocument(ctx, f.hc, f.limiter, f.searchURL, f.userAgent)
	if err != nil {
		return nil, fmt.Errorf("jualo fetch: %w", err)
	}

	var out []domain.Listing
	doc.Find(".post-card, .col-6").Each(func(_ int, card *goquery.Selection) {
		if l, ok := parseCard(card); ok {
			out = append(out, l)
		}
	})

	f.log.WithField("count", len(out)).Debug("parsed cards")
	return out, nil
}

func parseCard(card *goquery.Selection) (domain.Listing, bool) {
	link := util.SelectFirst(card, "a")
	if link == nil {
		return domain.Listing{}, false
	}
	href, _ := link.Attr("href")
	rawURL := util.AbsoluteURL(baseURL, href)

	title := util.TextFirst(card, ".post-card__title", "h4")
	if title == "" {
		title = util.CleanText(link.Text())
	}
	if title == "" {
		return domain.Listing{}, false
	}

	l := domain.Listing{
		ListingID:    util.ListingIDFromURL(rawURL, title),
		Source:       domain.SourceJualo,
		Title:        title,
		Price:        util.ParseRupiah(util.TextFirst(card, ".post-card__price", ".price")),
		Location:     util.TextFirst(card, ".post-card__location"),
		URL:          rawURL,
		ImageURL:     util.AttrFirst(card, []string{"src", "data-src"}, "img"),
		Year:         util.ParseYear(title),
		Transmission: util.ParseTransmission(title),
	}
	return l, true
}
