// Package olx scrapes OLX Indonesia. The listing data ships inside a
// __PRELOADED_STATE__ JSON blob in a script tag, which survives markup
// churn much better than the rendered HTML; the HTML card parser is
// only the fallback.
package olx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/arsfamsss/mobil-bekas-monitor/internal/domain"
	"github.com/arsfamsss/mobil-bekas-monitor/internal/fetch"
	"github.com/arsfamsss/mobil-bekas-monitor/internal/fetch/util"
)

const baseURL = "https://www.olx.co.id"

var preloadedStateRe = regexp.MustCompile(`(?s)window\.__PRELOADED_STATE__\s*=\s*(\{.+?\});?\s*</script>`)

// HTML fallback selectors, primary first.
var (
	cardSelectors  = []string{`li[data-aut-id="itemBox"]`, `li[class*="EIR5N"]`}
	titleSelectors = []string{`[data-aut-id="itemTitle"]`}
	priceSelectors = []string{`[data-aut-id="itemPrice"]`, `span[class*="Price"]`}
	locSelectors   = []string{`[data-aut-id="item-location"]`}
	imgSelectors   = []string{`img[data-aut-id="itemImage"]`, `img`}
	descSelectors  = []string{`[data-aut-id="itemDetails"]`}
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
		log:       logrus.WithField("source", domain.SourceOLX),
	}
}

func (f *Fetcher) Name() string { return domain.SourceOLX }

func (f *Fetcher) Fetch(ctx context.Context) ([]domain.Listing, error) {
	body, err := fetch.GetHTML(ctx, f.hc, f.limiter, f.searchURL, f.userAgent)
	if err != nil {
		return nil, fmt.Errorf("olx fetch: %w", err)
	}

	if state := extractPreloadedState(body); state != nil {
		if listings := parseStateListings(state); len(listings) > 0 {
			f.log.WithField("count", len(listings)).Debug("parsed preloaded state")
			return listings, nil
		}
	}

	f.log.Debug("no preloaded state, falling back to HTML cards")
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("olx parse: %w", err)
	}
	return parseHTMLListings(doc), nil
}

func extractPreloadedState(html []byte) map[string]any {
	m := preloadedStateRe.FindSubmatch(html)
	if m == nil {
		return nil
	}
	var state map[string]any
	if err := json.Unmarshal(m[1], &state); err != nil {
		return nil
	}
	return state
}

// parseStateListings walks the known item locations inside the state
// blob; OLX has moved them between releases.
func parseStateListings(state map[string]any) []domain.Listing {
	paths := [][]string{
		{"search", "items"},
		{"listing", "items"},
		{"data", "items"},
		{"items"},
	}

	var items []any
	for _, path := range paths {
		var cur any = state
		ok := true
		for _, key := range path {
			m, isMap := cur.(map[string]any)
			if !isMap {
				ok = false
				break
			}
			cur, ok = m[key]
			if !ok {
				break
			}
		}
		if list, isList := cur.([]any); ok && isList {
			items = list
			break
		}
	}

	var out []domain.Listing
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if l, ok := parseStateItem(item); ok {
			out = append(out, l)
		}
	}
	return out
}

func parseStateItem(item map[string]any) (domain.Listing, bool) {
	id := stringOf(item["id"])
	if id == "" {
		return domain.Listing{}, false
	}

	l := domain.Listing{
		ListingID: id,
		Source:    domain.SourceOLX,
		Title:     stringOf(item["title"]),
		URL:       util.AbsoluteURL(baseURL, stringOf(item["url"])),
	}

	switch price := item["price"].(type) {
	case map[string]any:
		if v, ok := price["value"].(map[string]any); ok {
			l.Price = intOf(v["raw"])
		}
	default:
		l.Price = intOf(price)
	}

	if loc, ok := item["locations_resolved"].(map[string]any); ok {
		l.Location = stringOf(loc["ADMIN_LEVEL_3_name"])
		if l.Location == "" {
			l.Location = stringOf(loc["ADMIN_LEVEL_1_name"])
		}
	}

	if images, ok := item["images"].([]any); ok && len(images) > 0 {
		switch img := images[0].(type) {
		case map[string]any:
			l.ImageURL = stringOf(img["url"])
		case string:
			l.ImageURL = img
		}
	}

	if params, ok := item["parameters"].([]any); ok {
		for _, raw := range params {
			p, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			key := strings.ToLower(stringOf(p["key"]))
			value := stringOf(p["value"])
			valueName := stringOf(p["value_name"])
			if valueName == "" {
				valueName = value
			}

			switch {
			case strings.Contains(key, "year") || strings.Contains(key, "tahun"):
				if y, err := strconv.Atoi(value); err == nil {
					l.Year = &y
				}
			case strings.Contains(key, "mileage") || strings.Contains(key, "kilometer"):
				if km := util.DigitsOnly(value); km > 0 {
					l.Km = &km
				}
			case strings.Contains(key, "transmission") || strings.Contains(key, "transmisi"):
				l.Transmission = util.ParseTransmission(valueName)
			case strings.Contains(key, "color") || strings.Contains(key, "warna"):
				l.Color = strings.ToLower(valueName)
			}
		}
	}

	return l, true
}

func parseHTMLListings(doc *goquery.Document) []domain.Listing {
	var out []domain.Listing

	util.SelectAll(doc.Selection, cardSelectors...).Each(func(_ int, card *goquery.Selection) {
		link := util.SelectFirst(card, `a[data-aut-id="itemTitle"]`, "a")
		if link == nil {
			return
		}
		href, _ := link.Attr("href")
		rawURL := util.AbsoluteURL(baseURL, href)

		title := util.TextFirst(card, titleSelectors...)
		if title == "" {
			title = util.CleanText(link.Text())
		}
		if title == "" {
			return
		}

		details := util.TextFirst(card, descSelectors...)
		blob := title + " " + details

		l := domain.Listing{
			ListingID:    util.ListingIDFromURL(rawURL, title),
			Source:       domain.SourceOLX,
			Title:        title,
			Price:        util.ParseRupiah(util.TextFirst(card, priceSelectors...)),
			Location:     util.TextFirst(card, locSelectors...),
			URL:          rawURL,
			ImageURL:     util.AttrFirst(card, []string{"src", "data-src"}, imgSelectors...),
			Year:         util.ParseYear(blob),
			Km:           util.ParseKm(blob),
			Transmission: util.ParseTransmission(blob),
		}
		out = append(out, l)
	})

	return out
}

func stringOf(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		// JSON numbers decode as float64; IDs are integral.
		return strconv.FormatInt(int64(x), 10)
	default:
		return ""
	}
}

func intOf(v any) int {
	switch x := v.(type) {
	case float64:
		return int(x)
	case string:
		return util.DigitsOnly(x)
	default:
		return 0
	}
}
