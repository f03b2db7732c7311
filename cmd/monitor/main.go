package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/arsfamsss/mobil-bekas-monitor/internal/config"
	"github.com/arsfamsss/mobil-bekas-monitor/internal/fetch"
	"github.com/arsfamsss/mobil-bekas-monitor/internal/fetch/carmudi"
	"github.com/arsfamsss/mobil-bekas-monitor/internal/fetch/jualo"
	"github.com/arsfamsss/mobil-bekas-monitor/internal/fetch/mobil123"
	"github.com/arsfamsss/mobil-bekas-monitor/internal/fetch/olx"
	"github.com/arsfamsss/mobil-bekas-monitor/internal/fetch/util"
	"github.com/arsfamsss/mobil-bekas-monitor/internal/match"
	"github.com/arsfamsss/mobil-bekas-monitor/internal/notify"
	"github.com/arsfamsss/mobil-bekas-monitor/internal/poll"
	"github.com/arsfamsss/mobil-bekas-monitor/internal/secrets"
	"github.com/arsfamsss/mobil-bekas-monitor/internal/store"
)

func main() {
	setToken := flag.String("set-token", "", "store the Telegram bot token in the OS keychain and exit")
	deleteToken := flag.Bool("delete-token", false, "remove the stored Telegram bot token and exit")
	flag.Parse()

	// Optional .env next to the binary, mainly for TELEGRAM_BOT_TOKEN
	// on machines without a keyring.
	_ = godotenv.Load()

	dataDir := os.Getenv("MOBIL_MONITOR_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		logrus.WithError(err).Fatal("data dir")
	}

	cfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		logrus.WithError(err).Fatal("config bootstrap")
	}
	rawCfg, err := config.Load(cfgPath)
	if err != nil {
		logrus.WithError(err).Fatalf("config load (%s)", cfgPath)
	}
	cfg, v := config.NormalizeAndValidate(rawCfg)
	for _, w := range v.Warnings {
		logrus.Warn(w)
	}
	if !v.OK() {
		for _, e := range v.Errors {
			logrus.Error(e)
		}
		logrus.Fatalf("invalid config: %s", cfgPath)
	}

	if lvl, err := logrus.ParseLevel(cfg.App.LogLevel); err == nil {
		logrus.SetLevel(lvl)
	}

	if *setToken != "" {
		if err := secrets.SetBotToken(cfg.Telegram.KeyringAccount, *setToken); err != nil {
			logrus.WithError(err).Fatal("store token")
		}
		logrus.Info("bot token stored in the keychain")
		return
	}
	if *deleteToken {
		if err := secrets.DeleteBotToken(cfg.Telegram.KeyringAccount); err != nil {
			logrus.WithError(err).Fatal("delete token")
		}
		logrus.Info("bot token removed from the keychain")
		return
	}

	// One monitor per data dir; two would double-notify before the
	// second marks anything seen.
	lock := flock.New(filepath.Join(dataDir, "monitor.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		logrus.WithError(err).Fatal("lock file")
	}
	if !locked {
		logrus.Fatal("another monitor instance is already running in this data dir")
	}
	defer lock.Unlock()

	st, err := store.Open(filepath.Join(dataDir, "monitor.db"))
	if err != nil {
		logrus.WithError(err).Fatal("store open")
	}
	defer st.Close()

	token, err := secrets.GetBotToken(cfg.Telegram.KeyringAccount)
	if err != nil || token == "" {
		logrus.WithError(err).Fatalf(
			"telegram bot token missing: store it in the keyring or set %s", secrets.EnvBotToken)
	}

	timeout := time.Duration(cfg.Request.TimeoutSeconds) * time.Second
	notifier := notify.NewTelegram(token, cfg.Telegram.ChatID, timeout)
	matcher := match.New(cfg)

	hc := fetch.NewHTTPClient(timeout)
	limiter := util.NewHostLimiter(1.0, 2)
	fetchers := buildFetchers(cfg, hc, limiter)
	if len(fetchers) == 0 {
		logrus.Fatal("no sources enabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Daily retention sweep for the notification and error logs.
	c := cron.New()
	_, err = c.AddFunc("@daily", func() {
		n, err := st.Cleanup(context.Background(), cfg.Limits.RetentionDays)
		if err != nil {
			logrus.WithError(err).Error("cleanup failed")
			return
		}
		logrus.WithField("deleted", n).Info("retention sweep done")
	})
	if err != nil {
		logrus.WithError(err).Fatal("cron setup")
	}
	c.Start()
	defer c.Stop()

	notifier.NotifyStartup(ctx, startupSummary(cfg, fetchers))

	p := poll.New(cfg, st, matcher, notifier, fetchers)
	if err := p.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logrus.WithError(err).Fatal("monitor exited")
	}
}

func buildFetchers(cfg config.Config, hc *http.Client, limiter *util.HostLimiter) []fetch.Fetcher {
	var out []fetch.Fetcher
	if s := cfg.Sources.OLX; s.Enabled {
		out = append(out, olx.New(s.SearchURL, cfg.Request.UserAgent, hc, limiter))
	}
	if s := cfg.Sources.Mobil123; s.Enabled {
		out = append(out, mobil123.New(s.SearchURL, cfg.Request.UserAgent, hc, limiter))
	}
	if s := cfg.Sources.Carmudi; s.Enabled {
		out = append(out, carmudi.New(s.SearchURL, cfg.Request.UserAgent, hc, limiter))
	}
	if s := cfg.Sources.Jualo; s.Enabled {
		out = append(out, jualo.New(s.SearchURL, cfg.Request.UserAgent, hc, limiter))
	}
	return out
}

func startupSummary(cfg config.Config, fetchers []fetch.Fetcher) string {
	names := make([]string, 0, len(fetchers))
	for _, f := range fetchers {
		names = append(names, f.Name())
	}
	return fmt.Sprintf("Memantau %s setiap %d detik: tahun %d-%d, harga %d-%d, maks %d km.",
		strings.Join(names, ", "), cfg.Polling.IntervalSeconds,
		cfg.Criteria.YearMin, cfg.Criteria.YearMax,
		cfg.Criteria.PriceMin, cfg.Criteria.PriceMax,
		cfg.Criteria.MaxKm)
}
