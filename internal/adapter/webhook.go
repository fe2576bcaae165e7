package adapter

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/photark/albumsync/models"
)

// WebhookConfig configures the outbound progress webhook.
type WebhookConfig struct {
	// URL is the endpoint receiving JSON progress snapshots. Empty
	// disables the notifier entirely.
	URL string

	// Token, when non-empty, is sent as a bearer token.
	Token string

	// Timeout bounds a single POST.
	Timeout time.Duration
}

// webhookNotifier POSTs run snapshots to a configured endpoint. Pushes are
// de-duplicated: a snapshot identical to the last delivered one is dropped,
// so a stalled run does not spam the consumer.
type webhookNotifier struct {
	client *resty.Client

	mu   sync.Mutex
	last models.RunState
	sent bool
}

// NewWebhookNotifier constructs a [ProgressNotifier] for cfg. An empty URL
// yields a no-op notifier, so callers never need a nil check.
func NewWebhookNotifier(cfg WebhookConfig) ProgressNotifier {
	if cfg.URL == "" {
		return noopNotifier{}
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/")).
		SetTimeout(cfg.Timeout)
	if cfg.Token != "" {
		cli.SetAuthToken(cfg.Token)
	}

	return &webhookNotifier{client: cli}
}

// Notify delivers state unless it matches the previously delivered
// snapshot. A non-2xx response is reported as an error; the caller only
// logs it.
func (n *webhookNotifier) Notify(ctx context.Context, state models.RunState) error {
	n.mu.Lock()
	if n.sent && state == n.last {
		n.mu.Unlock()
		return nil
	}
	n.mu.Unlock()

	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(state).
		Post("")
	if err != nil {
		return fmt.Errorf("pushing progress snapshot: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("progress webhook returned status %d", resp.StatusCode())
	}

	n.mu.Lock()
	n.last = state
	n.sent = true
	n.mu.Unlock()

	return nil
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, models.RunState) error { return nil }
