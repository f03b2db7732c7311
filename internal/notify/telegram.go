// Package notify sends chat notifications through the Telegram Bot
// API. The poll loop owns dedup and rate limiting; this package only
// formats and sends.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/arsfamsss/mobil-bekas-monitor/internal/domain"
)

const apiBase = "https://api.telegram.org/bot"

type Telegram struct {
	token  string
	chatID string
	hc     *http.Client
	log    *logrus.Entry
}

func NewTelegram(token, chatID string, timeout time.Duration) *Telegram {
	return &Telegram{
		token:  token,
		chatID: chatID,
		hc:     &http.Client{Timeout: timeout},
		log:    logrus.WithField("component", "telegram"),
	}
}

func (t *Telegram) post(ctx context.Context, method string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", method, err)
	}

	url := apiBase + t.token + "/" + method
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := t.hc.Do(req)
	if err != nil {
		return fmt.Errorf("telegram %s: %w", method, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("telegram %s status %d: %s", method, res.StatusCode, string(b))
	}
	return nil
}

// SendMessage sends a Markdown text message to the configured chat.
func (t *Telegram) SendMessage(ctx context.Context, text string) error {
	if t.token == "" || t.chatID == "" {
		return fmt.Errorf("telegram token or chat_id not set")
	}
	return t.post(ctx, "sendMessage", map[string]any{
		"chat_id":    t.chatID,
		"text":       text,
		"parse_mode": "Markdown",
	})
}

// SendPhoto sends a photo by URL with a Markdown caption, falling back
// to a plain text message when the photo send fails (bad image URLs
// are common on scraped cards).
func (t *Telegram) SendPhoto(ctx context.Context, photoURL, caption string) error {
	if t.token == "" || t.chatID == "" {
		return fmt.Errorf("telegram token or chat_id not set")
	}
	err := t.post(ctx, "sendPhoto", map[string]any{
		"chat_id":    t.chatID,
		"photo":      photoURL,
		"caption":    caption,
		"parse_mode": "Markdown",
	})
	if err == nil {
		return nil
	}
	t.log.WithError(err).Warn("photo send failed, falling back to text")
	return t.SendMessage(ctx, caption)
}

// NotifyListing sends one matched listing, with photo when available.
// Returns whether the send succeeded; the caller records the outcome.
func (t *Telegram) NotifyListing(ctx context.Context, m domain.Match) bool {
	msg := FormatListing(m)

	var err error
	if m.ImageURL != "" {
		err = t.SendPhoto(ctx, m.ImageURL, msg)
	} else {
		err = t.SendMessage(ctx, msg)
	}
	if err != nil {
		t.log.WithError(err).WithField("listing_id", m.ListingID).Error("listing notification failed")
		return false
	}
	return true
}

// NotifyError sends a rate-limit-exempt operator alert; the caller is
// responsible for the per-error-type gate.
func (t *Telegram) NotifyError(ctx context.Context, errorType, message string) bool {
	msg := fmt.Sprintf(
		"⚠️ *Error pada Bot Monitor*\n\nTipe: `%s`\nPesan: %s\n\nBot akan terus berjalan dan retry otomatis.",
		errorType, message,
	)
	if err := t.SendMessage(ctx, msg); err != nil {
		t.log.WithError(err).WithField("error_type", errorType).Error("error notification failed")
		return false
	}
	return true
}

// NotifyStartup announces the monitor is live with its key settings.
func (t *Telegram) NotifyStartup(ctx context.Context, summary string) bool {
	if err := t.SendMessage(ctx, "🚀 *Bot Monitor Mobil Bekas Aktif*\n\n"+summary); err != nil {
		t.log.WithError(err).Error("startup notification failed")
		return false
	}
	return true
}
