package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"subtrack/nlp-api/internal/analyze"
	"subtrack/nlp-api/internal/domain"
	"subtrack/nlp-api/internal/extract"
	"subtrack/nlp-api/internal/fraud"
	"subtrack/nlp-api/internal/store"
	"subtrack/nlp-api/internal/webhook"
)

// Handler holds the dependencies shared across all HTTP handlers.
type Handler struct {
	processor *extract.Processor
	detector  *fraud.Detector
	analyzer  *analyze.Analyzer
	store     *store.Store
	notifier  *webhook.Notifier
}

// NewHandler creates a Handler wired to the given dependencies.
func NewHandler(p *extract.Processor, d *fraud.Detector, a *analyze.Analyzer, s *store.Store, n *webhook.Notifier) *Handler {
	return &Handler{processor: p, detector: d, analyzer: a, store: s, notifier: n}
}

// ─── POST /api/v1/extract ─────────────────────────────────────────────────────

// ExtractTransaction extracts structured fields from a single notification
// text and returns the full record synchronously.
func (h *Handler) ExtractTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text *string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "INVALID_JSON", "request body must be valid JSON")
		return
	}
	if req.Text == nil {
		badRequest(w, "MISSING_TEXT", "text is required")
		return
	}

	tx, err := h.processor.Process(*req.Text)
	if err != nil {
		badRequest(w, "EXTRACTION_FAILED", err.Error())
		return
	}
	ok(w, tx)
}

// ─── POST /api/v1/fraud/assess ────────────────────────────────────────────────

// AssessFraud scores an already-extracted transaction, optionally against
// the user's transaction history supplied in the same request.
func (h *Handler) AssessFraud(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Transaction *domain.Transaction    `json:"transaction"`
		UserHistory []domain.HistoryRecord `json:"user_history,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "INVALID_JSON", "request body must be valid JSON")
		return
	}
	if req.Transaction == nil {
		badRequest(w, "MISSING_TRANSACTION", "transaction is required")
		return
	}

	assessment := h.detector.Assess(req.Transaction, req.UserHistory)
	ok(w, assessment)
}

// ─── POST /api/v1/classify-subscription ──────────────────────────────────────

// ClassifySubscription extracts a single text and reports whether it is a
// subscription, alongside the category, confidence, merchant, and amount.
func (h *Handler) ClassifySubscription(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text *string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "INVALID_JSON", "request body must be valid JSON")
		return
	}
	if req.Text == nil {
		badRequest(w, "MISSING_TEXT", "text is required")
		return
	}

	tx, err := h.processor.Process(*req.Text)
	if err != nil {
		badRequest(w, "EXTRACTION_FAILED", err.Error())
		return
	}

	ok(w, map[string]any{
		"is_subscription":  tx.Category == domain.CategorySubscription,
		"transaction_type": tx.Category,
		"confidence":       tx.Confidence,
		"merchant":         tx.Merchant,
		"amount":           tx.Amount,
	})
}

// ─── POST /api/v1/analyze ─────────────────────────────────────────────────────

// AnalyzeBatch runs the full pipeline over a list of raw transactions,
// persists the partitioned result, and fires webhook notifications for any
// fraud alerts found.
//
// A batch-level failure returns empty buckets annotated with the error,
// never partial output.
func (h *Handler) AnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Transactions *[]domain.RawTransaction `json:"transactions"`
		UserID       string                   `json:"user_id,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "INVALID_JSON", "request body must be valid JSON")
		return
	}
	if req.Transactions == nil {
		badRequest(w, "MISSING_TRANSACTIONS", "transactions is required and must be a list")
		return
	}

	result, err := h.analyzer.Analyze(*req.Transactions, req.UserID)
	if err != nil {
		ok(w, &domain.AnalysisResult{
			Subscriptions: []domain.Subscription{},
			FraudAlerts:   []domain.FraudAlert{},
			Error:         err.Error(),
		})
		return
	}

	h.store.SaveAnalysis(result)
	h.notifier.NotifyAsync(result.FraudAlerts)

	ok(w, result)
}

// ─── GET /api/v1/subscriptions ───────────────────────────────────────────────

// ListSubscriptions returns detected subscriptions, optionally filtered by
// the user_id query parameter.
func (h *Handler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs := h.store.ListSubscriptions(r.URL.Query().Get("user_id"))
	if subs == nil {
		subs = []*domain.Subscription{}
	}
	sort.Slice(subs, func(i, j int) bool {
		return subs[i].Name < subs[j].Name
	})
	ok(w, subs)
}

// ─── GET /api/v1/alerts ──────────────────────────────────────────────────────

// ListAlerts returns fraud alerts, newest first, optionally filtered by the
// user_id query parameter.
func (h *Handler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts := h.store.ListAlerts(r.URL.Query().Get("user_id"))
	if alerts == nil {
		alerts = []*domain.FraudAlert{}
	}
	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].CreatedAt.After(alerts[j].CreatedAt)
	})
	ok(w, alerts)
}

// ─── PATCH /api/v1/alerts/{id} ───────────────────────────────────────────────

// UpdateAlert transitions an alert's lifecycle status (resolve or ignore).
func (h *Handler) UpdateAlert(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "INVALID_JSON", "request body must be valid JSON")
		return
	}

	switch req.Status {
	case domain.AlertActive, domain.AlertResolved, domain.AlertIgnored:
	default:
		badRequest(w, "INVALID_STATUS", "status must be one of: active, resolved, ignored")
		return
	}

	if !h.store.UpdateAlertStatus(id, req.Status) {
		notFound(w, fmt.Sprintf("alert '%s' not found", id))
		return
	}

	alert, _ := h.store.GetAlert(id)
	ok(w, alert)
}

// ─── Webhooks ─────────────────────────────────────────────────────────────────

// RegisterWebhook adds a new webhook endpoint notified about fraud alerts.
func (h *Handler) RegisterWebhook(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL       string  `json:"url"`
		Threshold float64 `json:"threshold"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "INVALID_JSON", "request body must be valid JSON")
		return
	}
	if req.URL == "" {
		badRequest(w, "MISSING_URL", "url is required")
		return
	}
	if req.Threshold < 0 || req.Threshold > 1 {
		badRequest(w, "INVALID_THRESHOLD", "threshold must be between 0 and 1")
		return
	}
	if req.Threshold == 0 {
		req.Threshold = 0.8 // default: only high-confidence alerts
	}

	wh := &domain.WebhookConfig{
		ID:        uuid.NewString(),
		URL:       req.URL,
		Threshold: req.Threshold,
		CreatedAt: time.Now().UTC(),
		Active:    true,
	}
	h.store.SaveWebhook(wh)
	created(w, wh)
}

// DeleteWebhook deactivates and removes a webhook.
func (h *Handler) DeleteWebhook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.store.DeleteWebhook(id) {
		notFound(w, fmt.Sprintf("webhook '%s' not found", id))
		return
	}
	noContent(w)
}
