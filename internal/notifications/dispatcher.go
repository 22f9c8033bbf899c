// Package notifications delivers account emails through a webhook, so the
// server never talks to a mail provider directly.
package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// resetTTL mirrors how long auth keeps a reset token valid.
const resetTTL = time.Hour

// Dispatcher posts notifications to a single webhook.
type Dispatcher struct {
	webhookURL string
	publicURL  string
	client     *http.Client
	now        func() time.Time
}

// NewDispatcher creates a Dispatcher. publicURL is the externally visible
// base URL of the server, used to build links.
func NewDispatcher(webhookURL, publicURL string) *Dispatcher {
	return &Dispatcher{
		webhookURL: webhookURL,
		publicURL:  strings.TrimRight(publicURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		now: time.Now,
	}
}

// Dispatch stamps n and sends it to the webhook.
func (d *Dispatcher) Dispatch(ctx context.Context, n Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = d.now().UTC()
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encoding notification: %w", err)
	}
	return d.SendWebhook(ctx, d.webhookURL, payload)
}

// ResetLink is the page a reset token is redeemed on.
func (d *Dispatcher) ResetLink(token string) string {
	return d.publicURL + "/?reset=" + url.QueryEscape(token)
}

// ResetNotifier adapts the dispatcher to the auth reset hook. Delivery
// failures are logged without the token.
func (d *Dispatcher) ResetNotifier() func(email, token string) {
	return func(email, token string) {
		ctx, cancel := context.WithTimeout(context.Background(), d.client.Timeout)
		defer cancel()
		now := d.now().UTC()
		err := d.Dispatch(ctx, Notification{
			Type:      TypePasswordReset,
			Email:     email,
			Link:      d.ResetLink(token),
			ExpiresAt: now.Add(resetTTL),
			CreatedAt: now,
		})
		if err != nil {
			log.Printf("notifications: password reset for %s: %v", email, err)
		}
	}
}

// SendWebhook POSTs payload to the given URL.
func (d *Dispatcher) SendWebhook(ctx context.Context, url string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
