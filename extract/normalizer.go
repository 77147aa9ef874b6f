package extract

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// currencyStripper removes currency symbols and codes before separator
// analysis. Longer markers come first so "Rs." is not left as a dangling
// period.
var currencyStripper = strings.NewReplacer(
	"USD", "", "EUR", "", "GBP", "", "INR", "",
	"Rs.", "", "Rs", "",
	"$", "", "€", "", "£", "", "₹", "",
)

// normalizeAmount converts a raw amount candidate into a canonical decimal
// string with "." as the decimal point and no grouping separators.
// Separator roles follow one rule: when both "," and "." appear, the
// rightmost of the two is the decimal separator; a lone separator is
// decimal unless it is followed by exactly three digits and preceded by at
// least one digit group, which marks thousands grouping ("1.234" -> 1234,
// "1.23" -> 1.23).
func normalizeAmount(raw string) (string, decimal.Decimal, bool) {
	s := currencyStripper.Replace(raw)
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return "", decimal.Decimal{}, false
	}

	lastComma := strings.LastIndexByte(s, ',')
	lastDot := strings.LastIndexByte(s, '.')

	var intPart, fracPart string
	switch {
	case lastComma >= 0 && lastDot >= 0:
		dec := lastDot
		if lastComma > lastDot {
			dec = lastComma
		}
		intPart = dropSeparators(s[:dec])
		fracPart = s[dec+1:]
	case lastComma >= 0 || lastDot >= 0:
		sep := lastComma
		if lastDot >= 0 {
			sep = lastDot
		}
		frac := s[sep+1:]
		if len(frac) == 3 && sep > 0 {
			// thousands grouping, no decimal part
			intPart = dropSeparators(s)
		} else {
			intPart = dropSeparators(s[:sep])
			fracPart = frac
		}
	default:
		intPart = s
	}

	if intPart == "" || !isDigits(intPart) || (fracPart != "" && !isDigits(fracPart)) {
		return "", decimal.Decimal{}, false
	}
	intPart = strings.TrimLeft(intPart, "0")
	if intPart == "" {
		intPart = "0"
	}

	canonical := intPart
	if fracPart != "" {
		canonical += "." + fracPart
	}
	// the canonical string keeps trailing zeros; the decimal value is for
	// validation and magnitude comparison only
	value, err := decimal.NewFromString(canonical)
	if err != nil {
		return "", decimal.Decimal{}, false
	}
	return canonical, value, true
}

func dropSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ',' || r == '.' {
			return -1
		}
		return r
	}, s)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// dateLayouts is tried in order: ISO first, then day-first international
// numeric forms, then month-first US forms, then long-form month names.
// The first layout producing a valid calendar date wins, so an ambiguous
// "05/06/2024" reads day-first while "12/30/2024" falls through to the US
// form.
var dateLayouts = []struct {
	Locale string
	Layout string
}{
	{LocaleISO, "2006-01-02"},
	{LocaleIntl, "2/1/2006"},
	{LocaleIntl, "2-1-2006"},
	{LocaleIntl, "2/1/06"},
	{LocaleIntl, "2-1-06"},
	{LocaleUS, "1/2/2006"},
	{LocaleUS, "1-2-2006"},
	{LocaleUS, "1/2/06"},
	{LocaleUS, "1-2-06"},
	{LocaleUS, "January 2, 2006"},
	{LocaleUS, "January 2 2006"},
	{LocaleIntl, "2 January 2006"},
	{LocaleIntl, "2 January, 2006"},
}

// normalizeDate parses a raw date candidate into ISO 8601 YYYY-MM-DD.
// Impossible calendar dates (month 13, day 45) fail every layout and are
// rejected.
func normalizeDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	for _, l := range dateLayouts {
		if t, err := time.Parse(l.Layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

const (
	vendorMinLength = 3
	vendorMaxLength = 100
)

// vendorStopWords are document vocabulary, not company names. A candidate
// whose first word is one of these is rejected.
var vendorStopWords = map[string]bool{
	"invoice": true, "receipt": true, "total": true, "subtotal": true,
	"date": true, "tax": true, "bill": true, "billing": true,
	"statement": true, "page": true, "amount": true, "due": true,
	"balance": true, "item": true, "items": true, "description": true,
	"quantity": true, "shipping": true, "payment": true, "terms": true,
	"thank": true, "thanks": true,
	"january": true, "february": true, "march": true, "april": true,
	"may": true, "june": true, "july": true, "august": true,
	"september": true, "october": true, "november": true, "december": true,
}

// normalizeVendor trims whitespace and punctuation and rejects candidates
// that cannot plausibly be a vendor name: too short, made of digits and
// symbols, or starting with document vocabulary.
func normalizeVendor(raw string) (string, bool) {
	name := strings.TrimSpace(raw)
	name = strings.Trim(name, ".,:;*#|-_")
	name = strings.TrimSpace(name)
	if len(name) < vendorMinLength {
		return "", false
	}

	letters := 0
	for _, r := range name {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if letters < 2 {
		return "", false
	}

	first := strings.ToLower(strings.Trim(strings.Fields(name)[0], ".,:"))
	if vendorStopWords[first] {
		return "", false
	}

	if len(name) > vendorMaxLength {
		name = strings.TrimSpace(name[:vendorMaxLength])
	}
	return name, true
}

// normalizeCandidates runs the field-appropriate normalizer over detected
// candidates. Candidates that cannot be normalized are dropped silently;
// they never reach selection and never appear in the detected sequences.
func normalizeCandidates(cands []FieldCandidate) []FieldCandidate {
	out := make([]FieldCandidate, 0, len(cands))
	for _, c := range cands {
		switch c.Field {
		case FieldAmount:
			canonical, value, ok := normalizeAmount(c.Raw)
			if !ok {
				continue
			}
			c.Normalized = canonical
			c.value = value
		case FieldDate:
			iso, ok := normalizeDate(c.Raw)
			if !ok {
				continue
			}
			c.Normalized = iso
		case FieldVendor:
			name, ok := normalizeVendor(c.Raw)
			if !ok {
				continue
			}
			c.Normalized = name
		default:
			continue
		}
		out = append(out, c)
	}
	return out
}
