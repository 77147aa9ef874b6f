package extract

// FieldType identifies which target field a pattern proposes candidates for.
type FieldType string

const (
	FieldAmount FieldType = "amount"
	FieldDate   FieldType = "date"
	FieldVendor FieldType = "vendor"
)

// Locale tags for pattern definitions. Intl covers day-first numeric dates
// and dot-grouped amounts; US covers month-first dates and comma-grouped
// amounts.
const (
	LocaleUS   = "US"
	LocaleIntl = "INTL"
	LocaleISO  = "ISO"
	LocaleAny  = "ANY"
)

// PatternDef is one entry of the pattern library. Patterns are data:
// supporting a new locale or field means adding rows here, not code.
// Expressions must stay free of catastrophic backtracking; the regexp
// package guarantees linear-time matching, but patterns should still be
// anchored tightly enough not to flood the detector with noise.
type PatternDef struct {
	ID       string
	Field    FieldType
	Locale   string
	Priority int
	Expr     string
}

const currencyMarker = `(?:USD|EUR|GBP|INR|Rs\.?|[$€£₹])`

// patternTable is the full pattern library. Patterns with a capture group
// propose the group as the candidate; otherwise the whole match is used.
var patternTable = []PatternDef{
	// Amounts. Grouped patterns outrank the plain decimal so that
	// "1.234,56" is read as one value, not as a bare "234,56".
	{ID: "amount_us_grouped", Field: FieldAmount, Locale: LocaleUS, Priority: 3,
		Expr: `(?:` + currencyMarker + `\s?)?\b\d{1,3}(?:,\d{3})+(?:\.\d{1,2})?\b`},
	{ID: "amount_intl_grouped", Field: FieldAmount, Locale: LocaleIntl, Priority: 3,
		Expr: `(?:` + currencyMarker + `\s?)?\b\d{1,3}(?:\.\d{3})+(?:,\d{1,2})?\b`},
	{ID: "amount_plain_decimal", Field: FieldAmount, Locale: LocaleAny, Priority: 2,
		Expr: `(?:` + currencyMarker + `\s?)?\b\d+[.,]\d{1,2}\b`},
	{ID: "amount_currency_integer", Field: FieldAmount, Locale: LocaleAny, Priority: 1,
		Expr: currencyMarker + `\s?\d+\b`},

	// Dates.
	{ID: "date_iso", Field: FieldDate, Locale: LocaleISO, Priority: 4,
		Expr: `\b\d{4}-\d{2}-\d{2}\b`},
	{ID: "date_numeric", Field: FieldDate, Locale: LocaleAny, Priority: 3,
		Expr: `\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`},
	{ID: "date_month_first", Field: FieldDate, Locale: LocaleUS, Priority: 3,
		Expr: `(?i)\b` + monthName + `\s+\d{1,2},?\s+\d{4}\b`},
	{ID: "date_day_first", Field: FieldDate, Locale: LocaleIntl, Priority: 3,
		Expr: `(?i)\b\d{1,2}\s+` + monthName + `,?\s+\d{4}\b`},

	// Vendor names. The labeled form wins over the letterhead heuristic.
	{ID: "vendor_labeled", Field: FieldVendor, Locale: LocaleAny, Priority: 3,
		Expr: `(?im)^[ \t]*(?:vendor|from|sold\s+by|billed\s+from|merchant|supplier)\s*:\s*(\S[^\r\n]*)$`},
	{ID: "vendor_letterhead", Field: FieldVendor, Locale: LocaleAny, Priority: 1,
		Expr: `(?m)^[ \t]*([A-Z][A-Za-z&.,'\- ]{2,80})[ \t]*$`},
}

const monthName = `(?:January|February|March|April|May|June|July|August|September|October|November|December)`

// Label expressions are matched against a short window of text ending
// where a candidate begins. A trailing currency marker is tolerated since
// amount candidates may start at the digit rather than the symbol.
const (
	labelWindow = 24

	totalLabelExpr = `(?i)\b(?:grand\s+total|total\s+due|amount\s+due|balance\s+due|total)\b[\s:]*` +
		currencyMarker + `?\s*$`
	dueDateLabelExpr = `(?i)\b(?:due\s+date|payment\s+due|due\s+by|due)\b[\s:]*$`
)
