package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestMarkSeenIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	l := SeenListing{ListingID: "abc", Source: "olx", URL: "https://example.com/abc", Title: "Avanza", Price: 150_000_000}
	require.NoError(t, s.MarkSeen(ctx, l))
	require.NoError(t, s.MarkSeen(ctx, l))

	var n int
	require.NoError(t, s.db.QueryRow(
		`SELECT COUNT(*) FROM seen_listings WHERE listing_id = 'abc' AND source = 'olx';`).Scan(&n))
	assert.Equal(t, 1, n, "duplicate MarkSeen must not add a row")

	seen, err := s.IsSeen(ctx, "abc", "olx")
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestIsSeenScopedBySource(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.MarkSeen(ctx, SeenListing{ListingID: "abc", Source: "olx", URL: "u"}))

	seen, err := s.IsSeen(ctx, "abc", "mobil123")
	require.NoError(t, err)
	assert.False(t, seen, "same ID on another source is a different listing")

	seen, err = s.IsSeen(ctx, "never", "olx")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestCanNotifyHourlyCap(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	const limit = 3

	for i := 0; i < limit; i++ {
		ok, err := s.CanNotify(ctx, limit)
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, s.LogNotification(ctx, "l", true))
	}

	ok, err := s.CanNotify(ctx, limit)
	require.NoError(t, err)
	assert.False(t, ok, "cap reached")
}

func TestCanNotifyIgnoresFailedSends(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.LogNotification(ctx, "l", false))
	}

	n, err := s.NotificationCountLastHour(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	ok, err := s.CanNotify(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok, "failed sends must not burn the quota")
}

func TestCanNotifyIgnoresOldSends(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	old := time.Now().UTC().Add(-2 * time.Hour).Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO notification_log (sent_at, listing_id, success) VALUES (?, 'l', 1);`, old)
	require.NoError(t, err)

	ok, err := s.CanNotify(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok, "sends older than an hour roll off")
}

func TestErrorAlertGatePerType(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ok, err := s.CanNotifyError(ctx, "fetch_olx", 1)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, s.LogErrorNotification(ctx, "fetch_olx", "status 503"))

	ok, err = s.CanNotifyError(ctx, "fetch_olx", 1)
	require.NoError(t, err)
	assert.False(t, ok, "one alert per type per hour")

	ok, err = s.CanNotifyError(ctx, "fetch_carmudi", 1)
	require.NoError(t, err)
	assert.True(t, ok, "other error types are gated independently")
}

func TestCleanupSparesSeenListings(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ancient := time.Now().UTC().AddDate(0, 0, -60).Format(time.RFC3339)

	require.NoError(t, s.MarkSeen(ctx, SeenListing{
		ListingID: "old", Source: "olx", URL: "u",
		FirstSeen: time.Now().UTC().AddDate(0, 0, -60),
	}))
	_, err := s.db.Exec(
		`INSERT INTO notification_log (sent_at, listing_id, success) VALUES (?, 'old', 1);`, ancient)
	require.NoError(t, err)
	_, err = s.db.Exec(
		`INSERT INTO error_log (error_type, error_message, notified_at) VALUES ('fetch_olx', 'x', ?);`, ancient)
	require.NoError(t, err)
	require.NoError(t, s.LogNotification(ctx, "fresh", true))

	deleted, err := s.Cleanup(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	var n int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM notification_log;`).Scan(&n))
	assert.Equal(t, 1, n, "recent log rows survive")
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM error_log;`).Scan(&n))
	assert.Equal(t, 0, n)

	seen, err := s.IsSeen(ctx, "old", "olx")
	require.NoError(t, err)
	assert.True(t, seen, "dedup memory outlives the retention window")
}

func TestTimestampDefaultsAreRFC3339(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Rows landing via the column defaults must compare consistently
	// against the RFC3339 cutoffs the queries use.
	_, err := s.db.Exec(`INSERT INTO notification_log (listing_id, success) VALUES ('d', 1);`)
	require.NoError(t, err)
	_, err = s.db.Exec(`INSERT INTO error_log (error_type, error_message) VALUES ('fetch_olx', 'x');`)
	require.NoError(t, err)

	var sentAt string
	require.NoError(t, s.db.QueryRow(
		`SELECT sent_at FROM notification_log WHERE listing_id = 'd';`).Scan(&sentAt))
	_, err = time.Parse(time.RFC3339, sentAt)
	assert.NoError(t, err, "default sent_at %q is not RFC3339", sentAt)

	n, err := s.NotificationCountLastHour(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "a default-timestamped row counts toward the trailing hour")

	ok, err := s.CanNotifyError(ctx, "fetch_olx", 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.MarkSeen(ctx, SeenListing{ListingID: "a", Source: "olx", URL: "u"}))
	require.NoError(t, s.MarkSeen(ctx, SeenListing{ListingID: "b", Source: "olx", URL: "u"}))
	require.NoError(t, s.MarkSeen(ctx, SeenListing{ListingID: "c", Source: "jualo", URL: "u"}))
	require.NoError(t, s.LogNotification(ctx, "a", true))

	st, err := s.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, st.TotalListings)
	assert.Equal(t, 2, st.BySource["olx"])
	assert.Equal(t, 1, st.BySource["jualo"])
	assert.Equal(t, 1, st.NotificationsLastHour)
}
