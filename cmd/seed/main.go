// Command seed generates a JSON file of realistic transaction-notification
// texts for demo environments.
//
// The output mixes subscription renewals, one-time purchases, and
// fraud-styled messages across the supported currencies, so a freshly
// seeded server has both buckets populated.
//
// Usage:
//
//	go run ./cmd/seed [-out data/seed.json] [-count 60]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
)

type seedRecord struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

var users = []string{
	"demo-user-1",
	"demo-user-2",
	"demo-user-3",
}

// subscriptionTemplates produce texts the classifier labels as subscriptions.
var subscriptionTemplates = []string{
	"Your %s subscription of %s%s has been charged on %s",
	"Payment of %s%s for %s monthly membership debited on %s",
	"%s annual renewal: %s%s charged to your account on %s",
	"Auto-renew billing: %s%s paid to %s on %s",
}

var services = []string{
	"Netflix", "Spotify", "Amazon Prime", "Disney+", "Adobe Creative Cloud",
	"Microsoft 365", "YouTube Premium", "Apple Music", "Dropbox", "Zoom",
	"Notion", "Grammarly", "NordVPN", "LinkedIn Premium", "The Economist",
}

// oneTimeTemplates produce texts labelled as one-time purchases.
var oneTimeTemplates = []string{
	"Purchase of %s%s at %s on %s",
	"One-time payment of %s%s to %s completed on %s",
	"Your order at %s for %s%s was debited on %s",
}

var shops = []string{
	"Fresh Mart", "City Electronics", "Corner Bakery", "Metro Fuel",
	"Green Grocers", "Urban Outfitters", "Book Barn",
}

// fraudTemplates produce texts that trip multiple fraud signals: fraud
// keywords, unknown merchants, embedded emails/URLs, and high amounts.
var fraudTemplates = []string{
	"Unauthorized charge of %s%s detected. Verify at http://secure-refund.example.com immediately",
	"Suspicious transaction of %s%s from unrecognized merchant. Contact support@refund-center.example now",
	"Your card was charged %s%s by an unknown merchant on %s. Card 4532 1111 2222 3333",
	"Fraud alert: payment of %s%s did not authorize. Click http://verify-account.example/now",
}

var currencies = []struct {
	symbol string
	low    float64
	high   float64
}{
	{"₹", 99, 2999},
	{"$", 4.99, 49.99},
	{"€", 4.99, 39.99},
	{"£", 3.99, 29.99},
}

func main() {
	out := flag.String("out", "data/seed.json", "output file path")
	count := flag.Int("count", 60, "number of texts to generate")
	seed := flag.Int64("rand-seed", 42, "PRNG seed for reproducible output")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	records := make([]seedRecord, 0, *count)
	for i := 0; i < *count; i++ {
		user := users[rng.Intn(len(users))]

		var text string
		switch pick := rng.Intn(10); {
		case pick < 5:
			text = subscriptionText(rng)
		case pick < 8:
			text = oneTimeText(rng)
		default:
			text = fraudText(rng)
		}

		records = append(records, seedRecord{UserID: user, Text: text})
	}

	if err := writeJSON(*out, records); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d seed texts to %s\n", len(records), *out)
}

func subscriptionText(rng *rand.Rand) string {
	cur := currencies[rng.Intn(len(currencies))]
	amount := fmt.Sprintf("%.2f", cur.low+rng.Float64()*(cur.high-cur.low))
	service := services[rng.Intn(len(services))]
	tmpl := subscriptionTemplates[rng.Intn(len(subscriptionTemplates))]
	date := randomDate(rng)

	// Template argument order differs between variants.
	switch tmpl {
	case subscriptionTemplates[0]:
		return fmt.Sprintf(tmpl, service, cur.symbol, amount, date)
	case subscriptionTemplates[1]:
		return fmt.Sprintf(tmpl, cur.symbol, amount, service, date)
	case subscriptionTemplates[2]:
		return fmt.Sprintf(tmpl, service, cur.symbol, amount, date)
	default:
		return fmt.Sprintf(tmpl, cur.symbol, amount, service, date)
	}
}

func oneTimeText(rng *rand.Rand) string {
	cur := currencies[rng.Intn(len(currencies))]
	amount := fmt.Sprintf("%.2f", cur.low+rng.Float64()*(cur.high-cur.low))
	shop := shops[rng.Intn(len(shops))]
	tmpl := oneTimeTemplates[rng.Intn(len(oneTimeTemplates))]
	date := randomDate(rng)

	if tmpl == oneTimeTemplates[2] {
		return fmt.Sprintf(tmpl, shop, cur.symbol, amount, date)
	}
	return fmt.Sprintf(tmpl, cur.symbol, amount, shop, date)
}

func fraudText(rng *rand.Rand) string {
	cur := currencies[rng.Intn(len(currencies))]
	// Fraud texts skew high so the high-amount signal fires often.
	amount := fmt.Sprintf("%.2f", 5000+rng.Float64()*20000)
	tmpl := fraudTemplates[rng.Intn(len(fraudTemplates))]

	if tmpl == fraudTemplates[2] {
		return fmt.Sprintf(tmpl, cur.symbol, amount, randomDate(rng))
	}
	return fmt.Sprintf(tmpl, cur.symbol, amount)
}

// randomDate emits dash-separated dates: the normalizer strips slashes, so
// a slash date would never make it through extraction.
func randomDate(rng *rand.Rand) string {
	day := 1 + rng.Intn(28)
	month := 1 + rng.Intn(12)
	return fmt.Sprintf("%02d-%02d-2026", day, month)
}

func writeJSON(path string, records []seedRecord) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
