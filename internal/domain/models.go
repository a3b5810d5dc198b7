// Package domain contains all core types used across the application.
// Keeping domain types in one place makes the extraction pipeline and the
// fraud heuristics easy to reason about.
package domain

import (
	"errors"
	"time"
)

// ─── Constants ───────────────────────────────────────────────────────────────

// Supported currencies. Declaration order matters: amount extraction probes
// currencies in exactly this order, so ambiguous text resolves to the first
// currency whose pattern matches. INR leads because it is the default.
const (
	INR = "INR" // Indian Rupee (default)
	USD = "USD" // US Dollar
	EUR = "EUR" // Euro
	GBP = "GBP" // British Pound
)

// Currencies lists the supported currency codes in extraction priority order.
var Currencies = []string{INR, USD, EUR, GBP}

// Transaction categories. Mutually exclusive; classification checks
// subscription keywords first, then fraud, then one-time.
const (
	CategorySubscription = "subscription"
	CategoryFraud        = "fraud"
	CategoryOneTime      = "one_time"
	CategoryUnknown      = "unknown"
)

// UnknownMerchant is the sentinel merchant name used when no synonym or
// fallback pattern matched.
const UnknownMerchant = "Unknown Merchant"

// Fraud scoring thresholds.
const (
	// FraudThreshold is the score a transaction must strictly exceed to be
	// flagged as fraud. Exactly 0.5 is NOT fraud.
	FraudThreshold = 0.5

	// HighAmountThreshold flags transactions above this value in the record's
	// native currency units.
	HighAmountThreshold = 10000.0
)

// Alert severity labels derived from fraud confidence.
const (
	SeverityMedium   = "medium"   // confidence <= 0.7
	SeverityHigh     = "high"     // 0.7 < confidence <= 0.9
	SeverityCritical = "critical" // confidence > 0.9
)

// Alert lifecycle statuses.
const (
	AlertActive   = "active"
	AlertResolved = "resolved"
	AlertIgnored  = "ignored"
)

// ─── Errors ──────────────────────────────────────────────────────────────────

// ErrMalformedText is returned when extraction is handed input that is not
// valid UTF-8 and therefore cannot be pattern-matched. Empty text or text
// with no extractable fields is NOT an error; it produces a sentinel-valued
// record instead.
var ErrMalformedText = errors.New("text is not valid UTF-8")

// BatchError wraps an unexpected failure inside the batch analyzer.
// Per the fail-fast batch contract, the caller receives empty buckets and
// this error rather than partial output.
type BatchError struct {
	Err error
}

func (e *BatchError) Error() string { return "batch analysis failed: " + e.Err.Error() }

func (e *BatchError) Unwrap() error { return e.Err }

// ─── Core domain types ────────────────────────────────────────────────────────

// Transaction is the structured record extracted from a single notification
// text. Immutable once built.
type Transaction struct {
	Amount     float64 `json:"amount"`         // 0.0 = no amount found
	Currency   string  `json:"currency"`       // defaults to INR
	Merchant   string  `json:"merchant"`       // UnknownMerchant when unmatched
	Date       string  `json:"date,omitempty"` // ISO-8601 date, empty when unparseable
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"` // [0.0, 1.0]
	RawText    string  `json:"raw_text"`   // original untouched input
}

// HistoryRecord is one entry of a user's prior transaction history, supplied
// per call for the outlier check. Only Amount participates in scoring;
// records with Amount <= 0 are excluded from the mean/stddev computation.
type HistoryRecord struct {
	Amount   float64 `json:"amount"`
	Merchant string  `json:"merchant,omitempty"`
	Date     string  `json:"date,omitempty"`
}

// RawTransaction is one batch-analysis input: the notification text plus the
// user's optional transaction history for outlier detection.
type RawTransaction struct {
	Text        string          `json:"text"`
	UserHistory []HistoryRecord `json:"user_history,omitempty"`
}

// FraudAssessment is the outcome of scoring a Transaction against the fraud
// heuristics.
type FraudAssessment struct {
	IsFraud    bool     `json:"is_fraud"`    // fraud_score strictly > FraudThreshold
	FraudScore float64  `json:"fraud_score"` // raw sum of triggered signal weights
	Reasons    []string `json:"reasons"`     // in signal evaluation order
	Confidence float64  `json:"confidence"`  // fraud_score capped at 1.0
}

// ─── Analysis output ─────────────────────────────────────────────────────────

// Subscription is a recurring-payment record detected by the batch analyzer.
type Subscription struct {
	ID         string  `json:"id,omitempty"`
	UserID     string  `json:"user_id,omitempty"`
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	Renewal    string  `json:"renewal,omitempty"`
	Confidence float64 `json:"confidence"`
	RawText    string  `json:"raw_text"`
}

// FraudAlert is a fraud-flagged record produced by the batch analyzer.
// Severity and status follow the alert lifecycle of the dashboard consumer.
type FraudAlert struct {
	ID         string    `json:"id,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	Merchant   string    `json:"merchant"`
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency"`
	Date       string    `json:"date,omitempty"`
	Reason     string    `json:"reason"` // triggered signals joined with ", "
	Confidence float64   `json:"confidence"`
	RawText    string    `json:"raw_text"`
	Severity   string    `json:"severity,omitempty"`
	Status     string    `json:"status,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

// AnalysisResult is the batch analyzer's partitioned output. A record never
// appears in both buckets: fraud takes precedence over subscription.
type AnalysisResult struct {
	Subscriptions      []Subscription `json:"subscriptions"`
	FraudAlerts        []FraudAlert   `json:"fraud_alerts"`
	TotalProcessed     int            `json:"total_processed"`
	SubscriptionsFound int            `json:"subscriptions_found"`
	FraudAlertsFound   int            `json:"fraud_alerts_found"`

	// Error annotates a failed batch: buckets are empty and counts zero.
	Error string `json:"error,omitempty"`
}

// ─── Webhooks ─────────────────────────────────────────────────────────────────

// WebhookConfig is a registered callback notified when a batch analysis
// produces fraud alerts at or above the confidence threshold.
type WebhookConfig struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Threshold float64   `json:"threshold"` // fire when alert confidence >= this value
	CreatedAt time.Time `json:"created_at"`
	Active    bool      `json:"active"`
}

// WebhookPayload is the body sent to registered webhook URLs.
type WebhookPayload struct {
	Event       string     `json:"event"` // always "fraud_alert"
	TriggeredAt time.Time  `json:"triggered_at"`
	Alert       FraudAlert `json:"alert"`
}

// SeverityFor maps a fraud confidence to an alert severity band.
func SeverityFor(confidence float64) string {
	switch {
	case confidence > 0.9:
		return SeverityCritical
	case confidence > 0.7:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}
