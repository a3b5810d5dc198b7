package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"subtrack/nlp-api/internal/domain"
	"subtrack/nlp-api/internal/patterns"
)

var catalog = patterns.NewCatalog()

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantAmount   float64
		wantCurrency string
	}{
		{"rupee symbol with separators", "paid ₹1,500.00 for netflix", 1500.00, domain.INR},
		{"dollar symbol", "charged $250 at store", 250, domain.USD},
		{"dollar symbol with decimals", "charged $10.50", 10.50, domain.USD},
		{"euro symbol", "payment of €99.99", 99.99, domain.EUR},
		{"pound symbol", "debited £12.00", 12.00, domain.GBP},
		{"currency word singular", "sent 1 rupee", 1, domain.INR},
		{"currency word plural", "paid 500 rupees today", 500, domain.INR},
		{"dollars word", "spent 45 dollars", 45, domain.USD},
		{"euros word", "transferred 30 euros", 30, domain.EUR},
		{"pounds word", "paid 20 pounds", 20, domain.GBP},
		{"large amount with separators", "charged ₹1,25,000 invalid grouping", 1, domain.INR},
		{"bare number defaults to no amount", "paid 500 for lunch", 0, domain.INR},
		{"no amount at all", "thank you for shopping", 0, domain.INR},
		{"empty text", "", 0, domain.INR},
		{"inr checked before usd", "exchange ₹100 or 5 dollars", 100, domain.INR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, currency := ExtractAmount(catalog, tt.text)
			assert.InDelta(t, tt.wantAmount, amount, 1e-9)
			assert.Equal(t, tt.wantCurrency, currency)
		})
	}
}

func TestExtractMerchant_SynonymTable(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"direct synonym", "your netflix subscription renewed", "Netflix"},
		{"alternate synonym", "charged for prime video today", "Amazon Prime"},
		{"multi word display name", "nytimes monthly billing", "New York Times"},
		{"plus sign stripped by normalizer still matches", "disney plus renewal", "Disney Plus"},
		{"earlier table entry wins", "switched from netflix to spotify", "Netflix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMerchant(catalog, tt.text))
		})
	}
}

func TestExtractMerchant_FallbackPatterns(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"to pattern", "sent money to acme on friday", "Acme"},
		{"from pattern", "unauthorized charge of $250 from xyz corp", "Xyz"},
		{"at pattern", "purchase at localmart yesterday", "Localmart"},
		{"too short rejected, later template tried", "paid to ab from vendorname today", "Vendorname"},
		{"no pattern at all", "monthly billing cycle complete", domain.UnknownMerchant},
		{"empty text", "", domain.UnknownMerchant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMerchant(catalog, tt.text))
		})
	}
}

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"slash day first", "charged on 15/01/2026", "2026-01-15"},
		{"dash day first", "charged on 15-01-2026", "2026-01-15"},
		{"day-first layout preferred for ambiguous dates", "on 01/02/2026", "2026-02-01"},
		{"month-first rescues invalid day-first", "on 01/28/2026", "2026-01-28"},
		{"textual month matches but no layout parses it", "renewal on 15 jan 2026", ""},
		{"impossible date", "on 32/01/2026", ""},
		{"no date", "thank you for your payment", ""},
		{"empty text", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractDate(catalog, tt.text))
		})
	}
}
