package poll

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/arsfamsss/mobil-bekas-monitor/internal/domain"
	"github.com/arsfamsss/mobil-bekas-monitor/internal/store"
)

const fetchTimeout = 2 * time.Minute

type fetchResult struct {
	source   string
	listings []domain.Listing
}

// RunOnce executes a single cycle: all sources are fetched in
// parallel, then the results are filtered and notified sequentially in
// source order. A store failure aborts the cycle immediately; a fetch
// or send failure only affects that source or listing.
func (p *Poller) RunOnce(ctx context.Context) error {
	results := make([]fetchResult, len(p.fetchers))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range p.fetchers {
		i, f := i, f
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(gctx, fetchTimeout)
			defer cancel()

			listings, err := f.Fetch(fctx)
			if err != nil {
				p.log.WithField("source", f.Name()).WithError(err).Warn("fetch failed")
				p.reportFetchError(ctx, f.Name(), err)
				return nil
			}
			results[i] = fetchResult{source: f.Name(), listings: listings}
			return nil
		})
	}
	_ = g.Wait()

	for _, res := range results {
		if res.source == "" {
			continue
		}
		if err := p.processSource(ctx, res); err != nil {
			return err
		}
	}
	return nil
}

func (p *Poller) processSource(ctx context.Context, res fetchResult) error {
	matches := p.matcher.Filter(res.listings)
	log := p.log.WithField("source", res.source)
	log.WithFields(map[string]any{
		"fetched": len(res.listings),
		"matched": len(matches),
	}).Debug("cycle source done")

	for _, m := range matches {
		seen, err := p.store.IsSeen(ctx, m.ListingID, m.Source)
		if err != nil {
			return fmt.Errorf("seen lookup: %w", err)
		}
		if seen {
			continue
		}

		allowed, err := p.store.CanNotify(ctx, p.cfg.Limits.MaxNotificationsPerHour)
		if err != nil {
			return fmt.Errorf("notify quota: %w", err)
		}
		if !allowed {
			log.Warn("hourly notification cap reached, deferring remaining matches")
			break
		}

		sent := p.notifier.NotifyListing(ctx, m)

		// Once a send has been attempted the bookkeeping must land
		// even if shutdown starts mid-cycle; a half-recorded
		// notification would be re-sent after restart. So the writes
		// run on a context that survives cancellation.
		bctx := context.WithoutCancel(ctx)

		// Mark regardless of delivery so a flapping Telegram API
		// cannot spam the same listing on later cycles.
		seenRow := store.SeenListing{
			ListingID: m.ListingID,
			Source:    m.Source,
			URL:       m.URL,
			Title:     m.Title,
			Price:     m.Price,
		}
		if err := p.store.MarkSeen(bctx, seenRow); err != nil {
			return fmt.Errorf("mark seen: %w", err)
		}
		if err := p.store.LogNotification(bctx, m.ListingID, sent); err != nil {
			return fmt.Errorf("log notification: %w", err)
		}

		log.WithFields(map[string]any{
			"listing": m.ListingID,
			"score":   m.Score,
			"sent":    sent,
		}).Info("new match")

		if d := p.cfg.Polling.NotifyDelayMS; d > 0 {
			select {
			case <-time.After(time.Duration(d) * time.Millisecond):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

// reportFetchError forwards a fetch failure to the operator, rate
// limited to one alert per error type per hour.
func (p *Poller) reportFetchError(ctx context.Context, source string, fetchErr error) {
	errType := "fetch_" + source

	allowed, err := p.store.CanNotifyError(ctx, errType, p.cfg.Limits.MaxErrorNotificationsPerHour)
	if err != nil {
		p.log.WithError(err).Error("error-alert quota lookup failed")
		return
	}
	if !allowed {
		return
	}

	if p.notifier.NotifyError(ctx, errType, fetchErr.Error()) {
		if err := p.store.LogErrorNotification(ctx, errType, fetchErr.Error()); err != nil {
			p.log.WithError(err).Error("error-alert log failed")
		}
	}
}
