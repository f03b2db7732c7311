// Package fetch defines the listing-source contract and the shared
// plumbing the per-site adapters build on.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/arsfamsss/mobil-bekas-monitor/internal/domain"
	"github.com/arsfamsss/mobil-bekas-monitor/internal/fetch/util"
)

// Fetcher is one classified-ad site. Fetch returns the normalized
// listings currently visible for the configured search. An empty slice
// with a nil error means "nothing to process this cycle"; only an
// error triggers an operator alert.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.Listing, error)
}

// NewHTTPClient builds the client the adapters share settings for.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Headers a mobile browser would send; some of the sites serve a
// stripped page (or a block page) to obvious bots.
func BrowserHeaders(req *http.Request, userAgent string) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "id-ID,id;q=0.9,en-US;q=0.8,en;q=0.7")
	req.Header.Set("Cache-Control", "no-cache")
}

// GetHTML fetches one page through the shared per-host limiter and
// returns the raw body.
func GetHTML(ctx context.Context, hc *http.Client, limiter *util.HostLimiter, rawURL, userAgent string) ([]byte, error) {
	if limiter != nil {
		if err := limiter.WaitURL(ctx, rawURL); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	BrowserHeaders(req, userAgent)

	res, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", rawURL, err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("get %s: status %d", rawURL, res.StatusCode)
	}

	return io.ReadAll(res.Body)
}

// GetDocument is GetHTML parsed into a goquery document.
func GetDocument(ctx context.Context, hc *http.Client, limiter *util.HostLimiter, rawURL, userAgent string) (*goquery.Document, error) {
	body, err := GetHTML(ctx, hc, limiter, rawURL, userAgent)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rawURL, err)
	}
	return doc, nil
}
