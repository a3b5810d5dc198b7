// Package fraud implements the rule-based fraud likelihood scorer.
//
// Scoring philosophy:
//
//	Each signal contributes a fixed, non-negative weight to the total score.
//	Weights are additive configuration constants, not tuned parameters;
//	they are preserved as-is for output compatibility. Signals are evaluated
//	independently and always in the same order, which fixes the order of the
//	reported reasons. A transaction is fraud when the raw sum strictly
//	exceeds the 0.5 threshold; the reported confidence is the sum capped
//	at 1.0.
//
// The detector is stateless. Historical context for the outlier signal is
// supplied by the caller on every call and is never stored.
package fraud

import (
	"math"
	"strings"

	"subtrack/nlp-api/internal/domain"
	"subtrack/nlp-api/internal/patterns"
)

// Signal weights. Summing every signal yields exactly 1.0.
const (
	weightSuspiciousMerchant = 0.3
	weightUnusualAmount      = 0.2
	weightUnknownMerchant    = 0.2
	weightHighAmount         = 0.1
	weightSuspiciousContent  = 0.2
)

// Minimum history needed before the outlier check participates:
// at least 5 records supplied, of which at least 3 have a positive amount.
const (
	minHistoryRecords  = 5
	minPositiveAmounts = 3
)

// Detector is the stateless fraud scorer.
type Detector struct {
	catalog *patterns.Catalog
}

// NewDetector creates a Detector over the given pattern catalog.
func NewDetector(c *patterns.Catalog) *Detector {
	return &Detector{catalog: c}
}

// signal checks one fraud heuristic and reports its weight and reason label
// when triggered.
type signal func(tx *domain.Transaction, history []domain.HistoryRecord) (weight float64, reason string, hit bool)

// Assess scores a transaction, optionally against the user's history.
// Reasons appear in evaluation order, never sorted by magnitude.
func (d *Detector) Assess(tx *domain.Transaction, history []domain.HistoryRecord) domain.FraudAssessment {
	signals := []signal{
		d.suspiciousMerchantName,
		d.unusualAmount,
		d.unknownMerchant,
		d.highAmount,
		d.suspiciousTextPatterns,
	}

	score := 0.0
	var reasons []string
	for _, sig := range signals {
		if weight, reason, hit := sig(tx, history); hit {
			score += weight
			reasons = append(reasons, reason)
		}
	}

	return domain.FraudAssessment{
		IsFraud:    score > domain.FraudThreshold,
		FraudScore: score,
		Reasons:    reasons,
		Confidence: math.Min(score, 1.0),
	}
}

// ─── Signal 1: Suspicious merchant name ──────────────────────────────────────

// suspiciousMerchantName flags real merchant names containing a fraud-style
// keyword. The UnknownMerchant sentinel is excluded here: it contains
// "unknown" but is scored once, by its own dedicated signal.
func (d *Detector) suspiciousMerchantName(tx *domain.Transaction, _ []domain.HistoryRecord) (float64, string, bool) {
	if tx.Merchant == domain.UnknownMerchant {
		return 0, "", false
	}
	merchant := strings.ToLower(tx.Merchant)
	for _, keyword := range d.catalog.SuspiciousMerchantKeywords {
		if strings.Contains(merchant, keyword) {
			return weightSuspiciousMerchant, "Suspicious merchant name", true
		}
	}
	return 0, "", false
}

// ─── Signal 2: Statistical outlier vs user history ───────────────────────────

// unusualAmount flags amounts more than two standard deviations from the
// mean of the user's positive historical amounts. Population (not sample)
// standard deviation. With too little history the signal is skipped
// entirely and contributes nothing.
func (d *Detector) unusualAmount(tx *domain.Transaction, history []domain.HistoryRecord) (float64, string, bool) {
	if len(history) < minHistoryRecords {
		return 0, "", false
	}

	var amounts []float64
	for _, h := range history {
		if h.Amount > 0 {
			amounts = append(amounts, h.Amount)
		}
	}
	if len(amounts) < minPositiveAmounts {
		return 0, "", false
	}

	mean, stddev := meanStddev(amounts)
	if math.Abs(tx.Amount-mean) > 2*stddev {
		return weightUnusualAmount, "Unusual transaction amount", true
	}
	return 0, "", false
}

// ─── Signal 3: Unknown merchant ──────────────────────────────────────────────

func (d *Detector) unknownMerchant(tx *domain.Transaction, _ []domain.HistoryRecord) (float64, string, bool) {
	if tx.Merchant == domain.UnknownMerchant {
		return weightUnknownMerchant, "Unknown merchant", true
	}
	return 0, "", false
}

// ─── Signal 4: High amount ───────────────────────────────────────────────────

func (d *Detector) highAmount(tx *domain.Transaction, _ []domain.HistoryRecord) (float64, string, bool) {
	if tx.Amount > domain.HighAmountThreshold {
		return weightHighAmount, "High transaction amount", true
	}
	return 0, "", false
}

// ─── Signal 5: Suspicious raw-text patterns ──────────────────────────────────

// suspiciousTextPatterns inspects the original untouched text (not the
// normalized form, which strips the characters these patterns rely on) for
// embedded email addresses, URLs, or 16-digit card numbers.
func (d *Detector) suspiciousTextPatterns(tx *domain.Transaction, _ []domain.HistoryRecord) (float64, string, bool) {
	for _, re := range d.catalog.SuspiciousContent {
		if re.MatchString(tx.RawText) {
			return weightSuspiciousContent, "Suspicious text patterns", true
		}
	}
	return 0, "", false
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// meanStddev returns the mean and population standard deviation.
func meanStddev(vals []float64) (mean, stddev float64) {
	n := float64(len(vals))
	var sum float64
	for _, v := range vals {
		sum += v
	}
	mean = sum / n

	var sq float64
	for _, v := range vals {
		d := v - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / n)
}
