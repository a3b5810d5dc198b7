package extract

import (
	"strconv"
	"strings"
	"time"

	"subtrack/nlp-api/internal/domain"
	"subtrack/nlp-api/internal/patterns"
)

// ─── Amount ───────────────────────────────────────────────────────────────────

// ExtractAmount scans normalized text for a monetary amount. Currencies are
// probed in catalog order (INR, USD, EUR, GBP); the first currency whose
// pattern matches wins. Within that currency only the first match is
// considered: its first non-empty capture group is stripped of thousands
// separators and parsed. A parse failure moves on to the next currency.
//
// When nothing matches, the result is 0.0 with the default currency INR.
// Bare numbers without a symbol or currency word never match, so they also
// fall through to the default.
func ExtractAmount(c *patterns.Catalog, text string) (float64, string) {
	for _, ap := range c.AmountPatterns {
		m := ap.Re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		if raw == "" {
			continue
		}
		raw = strings.ReplaceAll(raw, ",", "")
		raw = strings.ReplaceAll(raw, " ", "")
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		return amount, ap.Currency
	}
	return 0.0, domain.INR
}

// ─── Merchant ─────────────────────────────────────────────────────────────────

// ExtractMerchant resolves the merchant in two stages. First the canonical
// synonym table, in declaration order: the first entry with any synonym
// contained in the text wins and its display name is returned. Otherwise the
// fallback templates ("to X", "from X", "at X", "payment to X",
// "charged by X") are tried in order; the first template's first match is
// accepted when its trimmed length is strictly between 2 and 50 characters.
//
// When neither stage produces a name, the UnknownMerchant sentinel is
// returned.
func ExtractMerchant(c *patterns.Catalog, text string) string {
	for _, entry := range c.Merchants {
		for _, syn := range entry.Synonyms {
			if strings.Contains(text, syn) {
				return entry.Name
			}
		}
	}

	for _, re := range c.MerchantFallbacks {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if len(name) > 2 && len(name) < 50 {
			return patterns.TitleWords(name)
		}
	}

	return domain.UnknownMerchant
}

// ─── Date ─────────────────────────────────────────────────────────────────────

// ExtractDate finds the first date-looking substring and parses it against
// the catalog's layouts in order. The first successful parse is returned as
// an ISO-8601 date. If the first matching pattern cannot be parsed by any
// layout, or nothing matched at all, the empty string is returned.
func ExtractDate(c *patterns.Catalog, text string) string {
	for _, re := range c.DatePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		for _, layout := range c.DateLayouts {
			if t, err := time.Parse(layout, m[1]); err == nil {
				return t.Format("2006-01-02")
			}
		}
		return ""
	}
	return ""
}
