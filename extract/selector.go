package extract

import "regexp"

// ScoringConfig holds the confidence penalties. The magnitudes are
// heuristic defaults, not derived constants, so they are configuration
// rather than code.
type ScoringConfig struct {
	// MissingFieldPenalty is subtracted for each of the three target
	// fields that resolves to null.
	MissingFieldPenalty float64 `yaml:"missing_field_penalty"`
	// AmbiguityPenalty is subtracted for each unused competing candidate
	// of a resolved field.
	AmbiguityPenalty float64 `yaml:"ambiguity_penalty"`
}

// DefaultScoring returns the default confidence penalties.
func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		MissingFieldPenalty: 0.2,
		AmbiguityPenalty:    0.05,
	}
}

// hasLabelBefore reports whether the text immediately preceding pos ends
// with the given label, e.g. "Total Due:" right before an amount.
func hasLabelBefore(text string, pos int, label *regexp.Regexp) bool {
	start := pos - labelWindow
	if start < 0 {
		start = 0
	}
	return label.MatchString(text[start:pos])
}

// selectVendor picks the candidate nearest the top of the document, on the
// heuristic that vendor identity appears in the letterhead.
func selectVendor(cands []FieldCandidate) *string {
	if len(cands) == 0 {
		return nil
	}
	v := cands[0].Normalized
	return &v
}

// selectAmount picks the total. A candidate adjacent to a total label
// always outranks magnitude; otherwise the largest normalized value wins,
// covering documents that list line items plus a total.
func (e *Engine) selectAmount(text string, cands []FieldCandidate) *string {
	if len(cands) == 0 {
		return nil
	}
	pool := cands
	var labeled []FieldCandidate
	for _, c := range cands {
		if hasLabelBefore(text, c.Position, e.totalLabel) {
			labeled = append(labeled, c)
		}
	}
	if len(labeled) > 0 {
		pool = labeled
	}
	best := pool[0]
	for _, c := range pool[1:] {
		if c.value.GreaterThan(best.value) {
			best = c
		}
	}
	v := best.Normalized
	return &v
}

// selectDate picks the first date candidate, skipping any adjacent to a
// due-date label: a due date is never the issue date.
func (e *Engine) selectDate(text string, cands []FieldCandidate) *string {
	for _, c := range cands {
		if hasLabelBefore(text, c.Position, e.dueLabel) {
			continue
		}
		v := c.Normalized
		return &v
	}
	return nil
}

// score computes the overall confidence: start at 1.0, subtract the
// missing-field penalty per unresolved field and the ambiguity penalty per
// unused competitor of a resolved field, clamped to [0,1]. Deterministic.
func (e *Engine) score(resolved, unused int) float64 {
	c := 1.0
	c -= float64(3-resolved) * e.scoring.MissingFieldPenalty
	c -= float64(unused) * e.scoring.AmbiguityPenalty
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
