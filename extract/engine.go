// Package extract implements the field extraction and normalization engine:
// a deterministic, rule-based classifier that turns raw document text into
// structured invoice fields with a confidence score. The engine performs no
// I/O and holds no mutable state after construction, so a single instance
// is safe for concurrent use across documents.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/psanchez-dev/document-intelligence/dto"
)

type compiledPattern struct {
	def PatternDef
	re  *regexp.Regexp
}

// Engine holds the compiled pattern library and scoring configuration.
// Construct once at startup; construction fails fast on a malformed
// pattern so a broken library is never served.
type Engine struct {
	patterns   map[FieldType][]compiledPattern
	totalLabel *regexp.Regexp
	dueLabel   *regexp.Regexp
	scoring    ScoringConfig
}

// NewEngine compiles the pattern library. Any compilation failure is a
// startup error, not a per-request condition.
func NewEngine(scoring ScoringConfig) (*Engine, error) {
	e := &Engine{
		patterns: make(map[FieldType][]compiledPattern),
		scoring:  scoring,
	}
	for _, def := range patternTable {
		re, err := regexp.Compile(def.Expr)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %s: %w", def.ID, err)
		}
		e.patterns[def.Field] = append(e.patterns[def.Field], compiledPattern{def: def, re: re})
	}

	var err error
	if e.totalLabel, err = regexp.Compile(totalLabelExpr); err != nil {
		return nil, fmt.Errorf("compile total label pattern: %w", err)
	}
	if e.dueLabel, err = regexp.Compile(dueDateLabelExpr); err != nil {
		return nil, fmt.Errorf("compile due date label pattern: %w", err)
	}
	return e, nil
}

// Extract runs the full pipeline over the text: detect candidates per
// field, normalize them, select the best per field, and assemble the
// result. Unparseable candidates are dropped silently; empty or
// whitespace-only input yields a well-formed all-null result with
// confidence 0.0 alongside dto.ErrEmptyInput.
func (e *Engine) Extract(text string, docType dto.DocumentType) (dto.ExtractionResult, error) {
	result := dto.ExtractionResult{
		DocumentType:    docType,
		DetectedAmounts: []string{},
		DetectedDates:   []string{},
		RawTextLength:   len(text),
	}
	if strings.TrimSpace(text) == "" {
		return result, dto.ErrEmptyInput
	}

	amounts := normalizeCandidates(e.detect(text, FieldAmount))
	dates := normalizeCandidates(e.detect(text, FieldDate))
	vendors := normalizeCandidates(e.detect(text, FieldVendor))

	for _, c := range amounts {
		result.DetectedAmounts = append(result.DetectedAmounts, c.Normalized)
	}
	for _, c := range dates {
		result.DetectedDates = append(result.DetectedDates, c.Normalized)
	}

	result.Vendor = selectVendor(vendors)
	result.TotalAmount = e.selectAmount(text, amounts)
	result.InvoiceDate = e.selectDate(text, dates)

	resolved, unused := 0, 0
	if result.Vendor != nil {
		resolved++
		unused += len(vendors) - 1
	}
	if result.TotalAmount != nil {
		resolved++
		unused += len(amounts) - 1
	}
	if result.InvoiceDate != nil {
		resolved++
		unused += len(dates) - 1
	}
	result.Confidence = e.score(resolved, unused)

	return result, nil
}
