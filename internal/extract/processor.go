// Package extract implements the text-to-structured-data pipeline: text
// normalization, field extraction (amount, merchant, date), category
// classification, and confidence scoring.
//
// Every function here is a pure computation over the immutable pattern
// catalog; there is no shared state and concurrent use needs no coordination.
package extract

import (
	"unicode/utf8"

	"subtrack/nlp-api/internal/domain"
	"subtrack/nlp-api/internal/patterns"
)

// Processor turns one raw notification text into a structured Transaction.
type Processor struct {
	catalog *patterns.Catalog
}

// NewProcessor creates a Processor over the given pattern catalog.
func NewProcessor(c *patterns.Catalog) *Processor {
	return &Processor{catalog: c}
}

// Process runs the full pipeline: normalize, extract fields, classify, and
// score. It never panics. The only error condition is input that is not
// valid UTF-8 (ErrMalformedText); text that simply yields no fields is not
// an error and produces a record with sentinel values instead (amount 0.0,
// currency INR, merchant "Unknown Merchant", category "unknown", no date).
func (p *Processor) Process(text string) (*domain.Transaction, error) {
	if !utf8.ValidString(text) {
		return nil, domain.ErrMalformedText
	}

	normalized := Normalize(text)

	amount, currency := ExtractAmount(p.catalog, normalized)
	merchant := ExtractMerchant(p.catalog, normalized)
	date := ExtractDate(p.catalog, normalized)
	category := Classify(p.catalog, normalized)
	confidence := Confidence(p.catalog, normalized, amount, merchant)

	return &domain.Transaction{
		Amount:     amount,
		Currency:   currency,
		Merchant:   merchant,
		Date:       date,
		Category:   category,
		Confidence: confidence,
		RawText:    text,
	}, nil
}
