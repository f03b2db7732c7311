package util

import "github.com/PuerkitoBio/goquery"

// The sites rework their markup regularly, so every adapter carries an
// ordered list of fallback selectors per field. These helpers implement
// the first-match-wins cascade once instead of per site.

// SelectFirst returns the first node produced by the first selector in
// the cascade that matches anything, or nil.
func SelectFirst(s *goquery.Selection, selectors ...string) *goquery.Selection {
	for _, sel := range selectors {
		if found := s.Find(sel); found.Length() > 0 {
			return found.First()
		}
	}
	return nil
}

// SelectAll returns every node from the first selector in the cascade
// that matches anything, or an empty selection.
func SelectAll(s *goquery.Selection, selectors ...string) *goquery.Selection {
	for _, sel := range selectors {
		if found := s.Find(sel); found.Length() > 0 {
			return found
		}
	}
	// No selector matched; hand back an empty selection.
	return s.Slice(0, 0)
}

// TextFirst is SelectFirst followed by cleaned text extraction.
func TextFirst(s *goquery.Selection, selectors ...string) string {
	found := SelectFirst(s, selectors...)
	if found == nil {
		return ""
	}
	return CleanText(found.Text())
}

// AttrFirst is SelectFirst followed by attribute extraction, trying
// each attribute name in order (src then data-src for lazy images).
func AttrFirst(s *goquery.Selection, attrs []string, selectors ...string) string {
	found := SelectFirst(s, selectors...)
	if found == nil {
		return ""
	}
	for _, a := range attrs {
		if v, ok := found.Attr(a); ok && v != "" {
			return v
		}
	}
	return ""
}
