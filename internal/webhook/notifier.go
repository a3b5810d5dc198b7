// Package webhook handles asynchronous notifications to registered webhook
// URLs when a batch analysis produces fraud alerts.
//
// Notifications are sent in a goroutine so they never block the HTTP
// response. Failed deliveries are logged but not retried (a production
// system would use a persistent queue with exponential backoff).
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"subtrack/nlp-api/internal/domain"
	"subtrack/nlp-api/internal/store"
)

// Notifier sends webhook payloads to all registered, active endpoints.
type Notifier struct {
	store  *store.Store
	client *http.Client
}

// New creates a Notifier with a sensible default HTTP client timeout.
func New(s *store.Store) *Notifier {
	return &Notifier{
		store: s,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// NotifyAsync fires webhook calls in the background for each fraud alert.
// Every active webhook is checked; it triggers for alerts whose confidence
// meets the webhook's threshold.
func (n *Notifier) NotifyAsync(alerts []domain.FraudAlert) {
	hooks := n.store.ListActiveWebhooks()
	for _, wh := range hooks {
		for i := range alerts {
			if alerts[i].Confidence >= wh.Threshold {
				go n.send(wh, alerts[i])
			}
		}
	}
}

// send delivers a single webhook call and logs the outcome.
func (n *Notifier) send(wh *domain.WebhookConfig, alert domain.FraudAlert) {
	payload := domain.WebhookPayload{
		Event:       "fraud_alert",
		TriggeredAt: time.Now().UTC(),
		Alert:       alert,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("webhook: failed to marshal payload", "webhook_id", wh.ID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, wh.URL, bytes.NewReader(body))
	if err != nil {
		slog.Error("webhook: failed to build request", "webhook_id", wh.ID, "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Subtrack-Event", "fraud_alert")

	resp, err := n.client.Do(req)
	if err != nil {
		slog.Warn("webhook: delivery failed", "webhook_id", wh.ID, "url", wh.URL, "error", err)
		return
	}
	defer resp.Body.Close()

	slog.Info("webhook: delivered",
		"webhook_id", wh.ID,
		"url", wh.URL,
		"status", resp.StatusCode,
		"alert_id", alert.ID,
		"confidence", alert.Confidence,
	)
}
