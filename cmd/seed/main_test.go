package main

import (
	"math/rand"
	"testing"

	"subtrack/nlp-api/internal/extract"
	"subtrack/nlp-api/internal/patterns"
)

// Generated dates must survive the normalizer and parse through the
// extraction pipeline, so seeded subscriptions carry a renewal date.
func TestRandomDate_SurvivesExtraction(t *testing.T) {
	p := extract.NewProcessor(patterns.NewCatalog())
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		date := randomDate(rng)
		tx, err := p.Process("Payment of ₹649.00 for Netflix subscription on " + date)
		if err != nil {
			t.Fatalf("process: %v", err)
		}
		if tx.Date == "" {
			t.Fatalf("date %q lost during extraction", date)
		}
	}
}

func TestSubscriptionText_CarriesDate(t *testing.T) {
	p := extract.NewProcessor(patterns.NewCatalog())
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 20; i++ {
		text := subscriptionText(rng)
		tx, err := p.Process(text)
		if err != nil {
			t.Fatalf("process: %v", err)
		}
		if tx.Date == "" {
			t.Errorf("seed text %q produced no date", text)
		}
	}
}
