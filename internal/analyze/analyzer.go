// Package analyze is the batch orchestrator: it runs the extraction pipeline
// and the fraud detector over a list of raw notification texts and partitions
// the results into subscriptions and fraud alerts.
//
// Partitioning rules:
//   - a fraud-positive record becomes a fraud alert, even when its category
//     is "subscription" — fraud always wins the bucket;
//   - otherwise a record categorised as a subscription becomes a
//     subscription entry;
//   - all other categories are processed but reported in neither bucket.
//
// Failure contract: a record whose text cannot be extracted is silently
// skipped (recoverable, per-record). Any other internal error aborts the
// whole batch with a BatchError and empty buckets — never partial output.
package analyze

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"subtrack/nlp-api/internal/domain"
	"subtrack/nlp-api/internal/extract"
	"subtrack/nlp-api/internal/fraud"
)

// Analyzer runs the extraction pipeline and fraud detector over batches.
type Analyzer struct {
	processor *extract.Processor
	detector  *fraud.Detector
}

// New creates an Analyzer from the pipeline components.
func New(p *extract.Processor, d *fraud.Detector) *Analyzer {
	return &Analyzer{processor: p, detector: d}
}

// Analyze processes each input in order. Records are independent: the
// outcome of one never affects another, so inputs may equally be analyzed
// across concurrent calls.
//
// TotalProcessed counts every input, including skipped records;
// SubscriptionsFound and FraudAlertsFound count the bucket sizes.
func (a *Analyzer) Analyze(inputs []domain.RawTransaction, userID string) (*domain.AnalysisResult, error) {
	result := &domain.AnalysisResult{
		Subscriptions: []domain.Subscription{},
		FraudAlerts:   []domain.FraudAlert{},
	}

	for _, in := range inputs {
		tx, err := a.processor.Process(in.Text)
		if err != nil {
			if errors.Is(err, domain.ErrMalformedText) {
				// Per-record failure: drop the record and keep going.
				continue
			}
			return nil, &domain.BatchError{Err: err}
		}

		assessment := a.detector.Assess(tx, in.UserHistory)

		switch {
		case assessment.IsFraud:
			result.FraudAlerts = append(result.FraudAlerts, domain.FraudAlert{
				ID:         uuid.NewString(),
				UserID:     userID,
				Merchant:   tx.Merchant,
				Amount:     tx.Amount,
				Currency:   tx.Currency,
				Date:       tx.Date,
				Reason:     strings.Join(assessment.Reasons, ", "),
				Confidence: assessment.Confidence,
				RawText:    tx.RawText,
				Severity:   domain.SeverityFor(assessment.Confidence),
				Status:     domain.AlertActive,
				CreatedAt:  time.Now().UTC(),
			})
		case tx.Category == domain.CategorySubscription:
			result.Subscriptions = append(result.Subscriptions, domain.Subscription{
				ID:         uuid.NewString(),
				UserID:     userID,
				Name:       tx.Merchant,
				Amount:     tx.Amount,
				Currency:   tx.Currency,
				Renewal:    tx.Date,
				Confidence: tx.Confidence,
				RawText:    tx.RawText,
			})
		}
	}

	result.TotalProcessed = len(inputs)
	result.SubscriptionsFound = len(result.Subscriptions)
	result.FraudAlertsFound = len(result.FraudAlerts)
	return result, nil
}
