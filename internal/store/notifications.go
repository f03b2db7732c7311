package store

import (
	"context"
	"fmt"
	"time"
)

// NotificationCountLastHour counts successful sends in the trailing 60
// minutes. Failed sends are logged but excluded, so a transient
// Telegram outage doesn't burn the quota.
func (s *Store) NotificationCountLastHour(ctx context.Context) (int, error) {
	cutoff := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)

	var n int
	err := s.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM notification_log
WHERE sent_at > ? AND success = 1;`, cutoff).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count notifications: %w", err)
	}
	return n, nil
}

// CanNotify reports whether another notification fits under the hourly
// cap (strictly less than maxPerHour successes in the last hour).
func (s *Store) CanNotify(ctx context.Context, maxPerHour int) (bool, error) {
	n, err := s.NotificationCountLastHour(ctx)
	if err != nil {
		return false, err
	}
	return n < maxPerHour, nil
}

// LogNotification appends one entry to the notification log, whether
// or not the send succeeded.
func (s *Store) LogNotification(ctx context.Context, listingID string, success bool) error {
	sentAt := time.Now().UTC().Format(time.RFC3339)
	ok := 0
	if success {
		ok = 1
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO notification_log (sent_at, listing_id, success)
VALUES (?, ?, ?);`, sentAt, listingID, ok)
	if err != nil {
		return fmt.Errorf("log notification: %w", err)
	}
	return nil
}

// CanNotifyError gates operator error alerts: at most maxPerHour (in
// practice one) per distinct error type per trailing hour, so a
// sustained outage doesn't become an alert storm.
func (s *Store) CanNotifyError(ctx context.Context, errorType string, maxPerHour int) (bool, error) {
	cutoff := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)

	var n int
	err := s.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM error_log
WHERE error_type = ? AND notified_at > ?;`, errorType, cutoff).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("count error notifications: %w", err)
	}
	return n < maxPerHour, nil
}

// LogErrorNotification records that an error alert was sent.
func (s *Store) LogErrorNotification(ctx context.Context, errorType, message string) error {
	notifiedAt := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
INSERT INTO error_log (error_type, error_message, notified_at)
VALUES (?, ?, ?);`, errorType, message, notifiedAt)
	if err != nil {
		return fmt.Errorf("log error notification: %w", err)
	}
	return nil
}
