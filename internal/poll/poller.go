// Package poll runs the monitoring loop: fetch every enabled site,
// filter, notify, record.
package poll

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/arsfamsss/mobil-bekas-monitor/internal/config"
	"github.com/arsfamsss/mobil-bekas-monitor/internal/domain"
	"github.com/arsfamsss/mobil-bekas-monitor/internal/fetch"
	"github.com/arsfamsss/mobil-bekas-monitor/internal/match"
	"github.com/arsfamsss/mobil-bekas-monitor/internal/store"
)

// Notifier is the outbound alert channel. The bool results report
// whether the send went through; delivery failures are not errors at
// this level, they only affect the hourly accounting.
type Notifier interface {
	NotifyListing(ctx context.Context, m domain.Match) bool
	NotifyError(ctx context.Context, errType, msg string) bool
}

// Poller owns one monitoring loop. All collaborators are injected so
// tests can swap the notifier and fetchers.
type Poller struct {
	cfg      config.Config
	store    *store.Store
	matcher  *match.Matcher
	notifier Notifier
	fetchers []fetch.Fetcher
	log      *logrus.Entry

	cycles int
}

func New(cfg config.Config, st *store.Store, m *match.Matcher, n Notifier, fetchers []fetch.Fetcher) *Poller {
	return &Poller{
		cfg:      cfg,
		store:    st,
		matcher:  m,
		notifier: n,
		fetchers: fetchers,
		log:      logrus.WithField("component", "poll"),
	}
}

// Run executes cycles at the configured interval until ctx is
// cancelled. Cancellation is only observed between cycles, so a cycle
// in flight finishes its bookkeeping before the loop exits.
func (p *Poller) Run(ctx context.Context) error {
	interval := time.Duration(p.cfg.Polling.IntervalSeconds) * time.Second
	p.log.WithField("interval", interval).Info("monitor started")

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		if err := p.RunOnce(ctx); err != nil {
			p.log.WithError(err).Error("cycle aborted")
		}

		p.cycles++
		if p.cycles%10 == 0 {
			p.logStats(ctx)
		}

		select {
		case <-ctx.Done():
			p.log.Info("monitor stopped")
			return ctx.Err()
		case <-t.C:
		}
	}
}

func (p *Poller) logStats(ctx context.Context) {
	stats, err := p.store.GetStats(ctx)
	if err != nil {
		p.log.WithError(err).Warn("stats unavailable")
		return
	}
	p.log.WithFields(logrus.Fields{
		"cycles":           p.cycles,
		"listings_seen":    stats.TotalListings,
		"notified_today":   stats.NotificationsToday,
		"notified_last_1h": stats.NotificationsLastHour,
	}).Info("monitor stats")
}
