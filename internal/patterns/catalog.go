// Package patterns holds the static, read-only tables that drive extraction
// and fraud scoring: merchant synonym groups, keyword lists, per-currency
// amount patterns, date patterns, and suspicious-content patterns.
//
// The catalog is built once at startup and passed by reference into every
// component. Nothing mutates it afterwards, so concurrent use needs no
// locking.
//
// Ordering is behaviourally significant throughout this package. Merchant
// entries, currency patterns, fallback templates, and keyword lists are all
// iterated first-match-wins, so they are declared as ordered slices rather
// than maps.
package patterns

import (
	"regexp"
	"strings"
)

// MerchantEntry maps a canonical merchant display name to the text synonyms
// that identify it.
type MerchantEntry struct {
	Name     string   // display name, e.g. "Amazon Prime"
	Synonyms []string // lowercase substrings matched against normalized text
}

// AmountPattern is a compiled amount matcher for one currency.
// The pattern carries two capture groups: symbol-prefixed amounts and
// word-suffixed amounts ("1,500.00 rupees"). The first non-empty group wins.
type AmountPattern struct {
	Currency string
	Re       *regexp.Regexp
}

// Catalog is the immutable bundle of every static table the pipeline needs.
type Catalog struct {
	// Merchants is checked in declaration order; the first entry with a
	// synonym contained in the text wins.
	Merchants []MerchantEntry

	// AmountPatterns is ordered by currency priority: INR first, so bare
	// ambiguous text defaults to INR.
	AmountPatterns []AmountPattern

	// MerchantFallbacks are tried in order when no synonym matched:
	// "to X", "from X", "at X", "payment to X", "charged by X".
	MerchantFallbacks []*regexp.Regexp

	// DatePatterns are tried in order: numeric D/M/Y, textual "D mon Y",
	// numeric Y/M/D.
	DatePatterns []*regexp.Regexp

	// DateLayouts are attempted in order against the first date match.
	DateLayouts []string

	// Category keyword sets, checked in this priority:
	// subscription, then fraud, then one-time.
	SubscriptionKeywords []string
	FraudKeywords        []string
	OneTimeKeywords      []string

	// PaymentKeywords contribute to extraction confidence when present.
	PaymentKeywords []string

	// SuspiciousMerchantKeywords flag a merchant name as a fraud signal.
	SuspiciousMerchantKeywords []string

	// SuspiciousContent matches raw text for embedded email addresses,
	// URLs, and card numbers.
	SuspiciousContent []*regexp.Regexp
}

// merchantTable lists known services in priority order. Keys use underscores
// for multi-word names; display names are derived at build time.
var merchantTable = []struct {
	key      string
	synonyms []string
}{
	{"netflix", []string{"netflix", "nflx"}},
	{"spotify", []string{"spotify", "spotify premium"}},
	{"amazon_prime", []string{"amazon prime", "prime video", "amazon prime video"}},
	{"disney_plus", []string{"disney+", "disney plus", "hotstar", "disney hotstar"}},
	{"adobe", []string{"adobe", "creative cloud", "adobe creative cloud"}},
	{"microsoft", []string{"microsoft", "office 365", "microsoft 365"}},
	{"google", []string{"google", "google drive", "google one", "youtube premium"}},
	{"apple", []string{"apple", "apple music", "icloud", "apple tv"}},
	{"dropbox", []string{"dropbox"}},
	{"zoom", []string{"zoom"}},
	{"slack", []string{"slack"}},
	{"notion", []string{"notion"}},
	{"canva", []string{"canva"}},
	{"grammarly", []string{"grammarly"}},
	{"lastpass", []string{"lastpass"}},
	{"nordvpn", []string{"nordvpn", "nord vpn"}},
	{"expressvpn", []string{"expressvpn", "express vpn"}},
	{"surfshark", []string{"surfshark"}},
	{"linkedin", []string{"linkedin premium"}},
	{"medium", []string{"medium"}},
	{"new_york_times", []string{"new york times", "nytimes"}},
	{"wall_street_journal", []string{"wall street journal", "wsj"}},
	{"the_guardian", []string{"the guardian"}},
	{"bloomberg", []string{"bloomberg"}},
	{"economist", []string{"the economist"}},
}

// amountTable pairs each currency with its symbol and currency word.
// Order is the currency detection priority.
var amountTable = []struct {
	currency string
	symbol   string
	word     string
}{
	{"INR", "₹", "rupee"},
	{"USD", `\$`, "dollar"},
	{"EUR", "€", "euro"},
	{"GBP", "£", "pound"},
}

// NewCatalog builds the full pattern catalog. All regexes are compiled here;
// a bad pattern is a programming error and panics at startup.
func NewCatalog() *Catalog {
	c := &Catalog{
		DateLayouts: []string{
			"2/1/2006", // day first, the dominant format in source data
			"1/2/2006",
			"2006-1-2",
			"2-1-2006",
		},
		SubscriptionKeywords: []string{
			"subscription", "renewal", "monthly", "annual", "yearly",
			"recurring", "auto-renew", "billing", "membership",
		},
		FraudKeywords: []string{
			"unauthorized", "fraudulent", "suspicious", "unknown", "unrecognized",
			"did not authorize", "not authorized", "fraud", "scam", "phishing",
			"identity theft", "card stolen", "account compromised",
		},
		OneTimeKeywords: []string{
			"one-time", "single payment", "purchase", "buy", "order",
		},
		PaymentKeywords: []string{
			"payment", "charged", "debited", "transaction",
		},
		SuspiciousMerchantKeywords: []string{
			"unknown", "unrecognized", "suspicious", "fraud", "scam",
			"phishing", "fake", "illegal", "unauthorized",
		},
	}

	for _, m := range merchantTable {
		c.Merchants = append(c.Merchants, MerchantEntry{
			Name:     displayName(m.key),
			Synonyms: m.synonyms,
		})
	}

	for _, a := range amountTable {
		// Either "<symbol>1,500.00" or "1,500.00 rupees" — two capture groups.
		expr := `(?i)` + a.symbol + `\s*(\d+(?:,\d{3})*(?:\.\d{2})?)|(\d+(?:,\d{3})*(?:\.\d{2})?)\s*` + a.word + `s?`
		c.AmountPatterns = append(c.AmountPatterns, AmountPattern{
			Currency: a.currency,
			Re:       regexp.MustCompile(expr),
		})
	}

	for _, expr := range []string{
		`to\s+([a-zA-Z\s]+?)(?:\s|$|\.|,)`,
		`from\s+([a-zA-Z\s]+?)(?:\s|$|\.|,)`,
		`at\s+([a-zA-Z\s]+?)(?:\s|$|\.|,)`,
		`payment\s+to\s+([a-zA-Z\s]+?)(?:\s|$|\.|,)`,
		`charged\s+by\s+([a-zA-Z\s]+?)(?:\s|$|\.|,)`,
	} {
		c.MerchantFallbacks = append(c.MerchantFallbacks, regexp.MustCompile(expr))
	}

	for _, expr := range []string{
		`(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`,
		`(?i)(\d{1,2}\s+(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{2,4})`,
		`(\d{4}[/\-]\d{1,2}[/\-]\d{1,2})`,
	} {
		c.DatePatterns = append(c.DatePatterns, regexp.MustCompile(expr))
	}

	for _, expr := range []string{
		`(?i)[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`,                                 // email address
		`(?i)http[s]?://(?:[a-zA-Z]|[0-9]|[$-_@.&+]|[!*\\(),]|(?:%[0-9a-fA-F][0-9a-fA-F]))+`, // URL
		`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`,                                // 16-digit card number
	} {
		c.SuspiciousContent = append(c.SuspiciousContent, regexp.MustCompile(expr))
	}

	return c
}

// displayName turns a table key like "new_york_times" into "New York Times".
func displayName(key string) string {
	return TitleWords(strings.ReplaceAll(key, "_", " "))
}

// TitleWords upper-cases the first letter of each space-separated word and
// lower-cases the rest, matching how merchant names are presented.
func TitleWords(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
