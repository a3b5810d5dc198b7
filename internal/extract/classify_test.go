package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"subtrack/nlp-api/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"subscription keyword", "your netflix subscription renewed", domain.CategorySubscription},
		{"recurring keyword", "recurring charge applied", domain.CategorySubscription},
		{"fraud keyword", "unauthorized charge detected", domain.CategoryFraud},
		{"multi word fraud keyword", "you did not authorize this", domain.CategoryFraud},
		{"one time keyword", "your order has shipped", domain.CategoryOneTime},
		{"purchase keyword", "purchase complete", domain.CategoryOneTime},
		{"no keywords", "hello there", domain.CategoryUnknown},
		{"empty text", "", domain.CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(catalog, tt.text))
		})
	}
}

// Subscription keywords are checked before fraud keywords: text carrying
// both is classified as a subscription. This is documented behaviour, not an
// accident — the fraud detector scores such records independently.
func TestClassify_SubscriptionBeatsFraud(t *testing.T) {
	assert.Equal(t, domain.CategorySubscription,
		Classify(catalog, "unauthorized recurring charge on your card"))
}

// Fraud keywords are checked before one-time keywords.
func TestClassify_FraudBeatsOneTime(t *testing.T) {
	assert.Equal(t, domain.CategoryFraud,
		Classify(catalog, "fraudulent purchase reported"))
}

func TestConfidence(t *testing.T) {
	longText := "payment of 1500 processed successfully for your account today ok"

	tests := []struct {
		name     string
		text     string
		amount   float64
		merchant string
		want     float64
	}{
		{"nothing extracted", "short note", 0, domain.UnknownMerchant, 0.0},
		{"amount only", "x", 100, domain.UnknownMerchant, 0.4},
		{"merchant only", "x", 0, "Netflix", 0.3},
		{"payment keyword only", "payment received", 0, domain.UnknownMerchant, 0.2},
		{"charged keyword only", "charged yesterday", 0, domain.UnknownMerchant, 0.2},
		{"amount and merchant", "x", 100, "Netflix", 0.7},
		{"all evidence capped at one", longText, 100, "Netflix", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Confidence(catalog, tt.text, tt.amount, tt.merchant)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}
