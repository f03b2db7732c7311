package util

import (
	"fmt"
	"hash/fnv"
	"net/url"
	"strings"
)

// ListingIDFromURL derives a stable per-site listing ID from the ad's
// URL tail, falling back to a hash of the title when no URL is
// available. The hash fallback is best effort: two distinct ads with
// identical titles collide, and a retitled ad gets a fresh identity.
// Dedup correctness therefore depends on the sites keeping their URLs
// stable, which they do in practice.
func ListingIDFromURL(rawURL, title string) string {
	if rawURL != "" {
		tail := rawURL
		if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
			tail = u.Path
		}
		tail = strings.Trim(tail, "/")
		if i := strings.LastIndex(tail, "/"); i >= 0 {
			tail = tail[i+1:]
		}
		tail = strings.TrimSuffix(tail, ".html")
		if tail != "" {
			return tail
		}
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(title))
	return fmt.Sprintf("t%x", h.Sum64())
}

// AbsoluteURL resolves href against the site base when the card links
// relatively.
func AbsoluteURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	h, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(h).String()
}
