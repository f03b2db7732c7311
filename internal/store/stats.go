package store

import (
	"context"
	"fmt"
	"time"
)

type Stats struct {
	TotalListings         int
	BySource              map[string]int
	NotificationsToday    int
	NotificationsLastHour int
}

// GetStats summarizes the store for the periodic stats log line.
func (s *Store) GetStats(ctx context.Context) (Stats, error) {
	st := Stats{BySource: make(map[string]int)}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM seen_listings;`).Scan(&st.TotalListings); err != nil {
		return st, fmt.Errorf("stats total: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT source, COUNT(*) FROM seen_listings GROUP BY source;`)
	if err != nil {
		return st, fmt.Errorf("stats by source: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var source string
		var n int
		if err := rows.Scan(&source, &n); err != nil {
			return st, err
		}
		st.BySource[source] = n
	}
	if err := rows.Err(); err != nil {
		return st, err
	}

	midnight := time.Now().UTC().Truncate(24 * time.Hour).Format(time.RFC3339)
	if err := s.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM notification_log WHERE sent_at > ?;`,
		midnight).Scan(&st.NotificationsToday); err != nil {
		return st, fmt.Errorf("stats today: %w", err)
	}

	st.NotificationsLastHour, err = s.NotificationCountLastHour(ctx)
	if err != nil {
		return st, err
	}

	return st, nil
}
