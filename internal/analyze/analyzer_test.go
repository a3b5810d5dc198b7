package analyze_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subtrack/nlp-api/internal/analyze"
	"subtrack/nlp-api/internal/domain"
	"subtrack/nlp-api/internal/extract"
	"subtrack/nlp-api/internal/fraud"
	"subtrack/nlp-api/internal/patterns"
)

func newAnalyzer() *analyze.Analyzer {
	catalog := patterns.NewCatalog()
	return analyze.New(extract.NewProcessor(catalog), fraud.NewDetector(catalog))
}

// fraudulentText reliably crosses the fraud threshold: suspicious merchant
// name ("fake", 0.3) + high amount (0.1) + embedded URL (0.2) = 0.6.
const fraudulentText = "Suspicious charge of ₹25,000.00 from fake store, verify at http://refund.example.com"

const subscriptionText = "Payment of ₹649.00 for Netflix subscription"

func TestAnalyze_PartitionsBuckets(t *testing.T) {
	a := newAnalyzer()

	result, err := a.Analyze([]domain.RawTransaction{
		{Text: subscriptionText},
		{Text: fraudulentText},
		{Text: "just a note with nothing in it"},
	}, "user-1")
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalProcessed)
	assert.Equal(t, 1, result.SubscriptionsFound)
	assert.Equal(t, 1, result.FraudAlertsFound)

	require.Len(t, result.Subscriptions, 1)
	sub := result.Subscriptions[0]
	assert.Equal(t, "Netflix", sub.Name)
	assert.InDelta(t, 649.0, sub.Amount, 1e-9)
	assert.Equal(t, domain.INR, sub.Currency)
	assert.Equal(t, "user-1", sub.UserID)
	assert.NotEmpty(t, sub.ID)

	require.Len(t, result.FraudAlerts, 1)
	alert := result.FraudAlerts[0]
	assert.Equal(t, "Fake", alert.Merchant)
	assert.InDelta(t, 25000.0, alert.Amount, 1e-9)
	assert.Equal(t, "user-1", alert.UserID)
	assert.Equal(t, domain.AlertActive, alert.Status)
	assert.NotEmpty(t, alert.ID)
	assert.NotEmpty(t, alert.Reason)
}

// A record that classifies as a subscription but scores as fraud must land
// in the fraud bucket only: fraud takes precedence.
func TestAnalyze_FraudWinsOverSubscription(t *testing.T) {
	a := newAnalyzer()

	text := "Suspicious recurring charge of ₹25,000.00 from fake store, details http://refund.example.com"
	result, err := a.Analyze([]domain.RawTransaction{{Text: text}}, "user-1")
	require.NoError(t, err)

	assert.Equal(t, 0, result.SubscriptionsFound)
	assert.Equal(t, 1, result.FraudAlertsFound)
}

func TestAnalyze_ReasonsJoined(t *testing.T) {
	a := newAnalyzer()

	result, err := a.Analyze([]domain.RawTransaction{{Text: fraudulentText}}, "")
	require.NoError(t, err)

	require.Len(t, result.FraudAlerts, 1)
	assert.Equal(t,
		"Suspicious merchant name, High transaction amount, Suspicious text patterns",
		result.FraudAlerts[0].Reason)
}

func TestAnalyze_HistoryFlowsIntoOutlierCheck(t *testing.T) {
	a := newAnalyzer()

	// Without history this text scores 0.5 (unknown merchant + high amount +
	// email) and stays below the threshold; the outlier signal tips it over.
	text := "Debited ₹15,000.00, helpdesk billing@example.com"
	hist := []domain.HistoryRecord{
		{Amount: 100}, {Amount: 105}, {Amount: 98}, {Amount: 110}, {Amount: 102},
	}

	without, err := a.Analyze([]domain.RawTransaction{{Text: text}}, "")
	require.NoError(t, err)
	assert.Equal(t, 0, without.FraudAlertsFound)

	with, err := a.Analyze([]domain.RawTransaction{{Text: text, UserHistory: hist}}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, with.FraudAlertsFound)
}

func TestAnalyze_MalformedRecordSkipped(t *testing.T) {
	a := newAnalyzer()

	result, err := a.Analyze([]domain.RawTransaction{
		{Text: string([]byte{0xff, 0xfe})},
		{Text: subscriptionText},
	}, "")
	require.NoError(t, err)

	// The bad record is dropped, not fatal, but still counted as input.
	assert.Equal(t, 2, result.TotalProcessed)
	assert.Equal(t, 1, result.SubscriptionsFound)
	assert.Equal(t, 0, result.FraudAlertsFound)
}

func TestAnalyze_EmptyBatch(t *testing.T) {
	a := newAnalyzer()

	result, err := a.Analyze(nil, "")
	require.NoError(t, err)

	assert.Equal(t, 0, result.TotalProcessed)
	assert.NotNil(t, result.Subscriptions)
	assert.NotNil(t, result.FraudAlerts)
}

func TestAnalyze_BucketsNeverOverlap(t *testing.T) {
	a := newAnalyzer()

	inputs := []domain.RawTransaction{
		{Text: subscriptionText},
		{Text: fraudulentText},
		{Text: "Your Spotify membership of $9.99 renewed"},
		{Text: "one-time purchase of €20.00 at corner shop"},
		{Text: "nothing to see"},
	}
	result, err := a.Analyze(inputs, "u")
	require.NoError(t, err)

	assert.LessOrEqual(t,
		result.SubscriptionsFound+result.FraudAlertsFound,
		result.TotalProcessed)

	seen := make(map[string]bool)
	for _, s := range result.Subscriptions {
		seen[s.RawText] = true
	}
	for _, f := range result.FraudAlerts {
		assert.False(t, seen[f.RawText], "record %q appears in both buckets", f.RawText)
	}
}
