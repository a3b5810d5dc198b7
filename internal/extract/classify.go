package extract

import (
	"math"
	"strings"
	"unicode/utf8"

	"subtrack/nlp-api/internal/domain"
	"subtrack/nlp-api/internal/patterns"
)

// Classify labels normalized text with exactly one category. Keyword sets
// are checked in a fixed priority with early exit: subscription indicators
// first, then fraud indicators, then one-time indicators.
//
// The ordering means text containing both a subscription keyword and a fraud
// keyword is classified as a subscription. This is documented behaviour the
// downstream consumers rely on; such a record can still be flagged by the
// fraud detector, which scores independently of the category.
func Classify(c *patterns.Catalog, text string) string {
	if containsAny(text, c.SubscriptionKeywords) {
		return domain.CategorySubscription
	}
	if containsAny(text, c.FraudKeywords) {
		return domain.CategoryFraud
	}
	if containsAny(text, c.OneTimeKeywords) {
		return domain.CategoryOneTime
	}
	return domain.CategoryUnknown
}

// Confidence accumulates independent evidence weights for the extraction:
// +0.4 when an amount was found, +0.3 when the merchant is known, +0.1 when
// the normalized text is longer than 50 characters, and +0.2 when a payment
// verb appears. The sum is capped at 1.0.
func Confidence(c *patterns.Catalog, text string, amount float64, merchant string) float64 {
	confidence := 0.0

	if amount > 0 {
		confidence += 0.4
	}
	if merchant != domain.UnknownMerchant {
		confidence += 0.3
	}
	if utf8.RuneCountInString(text) > 50 {
		confidence += 0.1
	}
	if containsAny(text, c.PaymentKeywords) {
		confidence += 0.2
	}

	return math.Min(confidence, 1.0)
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
