package store

import (
	"context"
	"fmt"
	"time"
)

// Cleanup deletes notification-log and error-log rows older than
// retentionDays and returns the number of rows removed. seen_listings
// is deliberately untouched: dedup memory is long-lived, pruning it
// would re-notify old ads that get reposted.
func (s *Store) Cleanup(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays).Format(time.RFC3339)

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM notification_log WHERE sent_at < ?;`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup notification_log: %w", err)
	}
	deleted, _ := res.RowsAffected()

	res, err = s.db.ExecContext(ctx,
		`DELETE FROM error_log WHERE notified_at < ?;`, cutoff)
	if err != nil {
		return deleted, fmt.Errorf("cleanup error_log: %w", err)
	}
	n, _ := res.RowsAffected()

	return deleted + n, nil
}
