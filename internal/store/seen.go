package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SeenListing is the dedup row for one listing identity. The identity
// key is (ListingID, Source); the same physical ad must resolve to the
// same pair across polling cycles, which is a precondition on the
// fetchers' ID extraction, not something the store can enforce.
type SeenListing struct {
	ListingID string
	Source    string
	URL       string
	Title     string
	Price     int
	FirstSeen time.Time
}

// IsSeen reports whether the listing identity has been recorded.
func (s *Store) IsSeen(ctx context.Context, listingID, source string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM seen_listings WHERE listing_id = ? AND source = ? LIMIT 1;`,
		listingID, source,
	).Scan(&one)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return false, fmt.Errorf("query seen: %w", err)
}

// MarkSeen records the listing identity, once. Duplicate calls for the
// same (listing_id, source) are no-ops, not errors: the insert is a
// single INSERT OR IGNORE against the unique index, so the
// at-most-once-seen invariant holds even under concurrent callers.
func (s *Store) MarkSeen(ctx context.Context, l SeenListing) error {
	firstSeen := l.FirstSeen
	if firstSeen.IsZero() {
		firstSeen = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT OR IGNORE INTO seen_listings (listing_id, source, url, title, price, first_seen)
VALUES (?, ?, ?, ?, ?, ?);`,
		l.ListingID, l.Source, l.URL, l.Title, l.Price,
		firstSeen.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("mark seen: %w", err)
	}
	return nil
}
