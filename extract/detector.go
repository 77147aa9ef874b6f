package extract

import (
	"sort"

	"github.com/shopspring/decimal"
)

// FieldCandidate is a substring matched by a library pattern, proposed as
// a possible value for a target field. Candidates are never mutated after
// creation; normalization produces fresh copies.
type FieldCandidate struct {
	Field      FieldType
	Raw        string
	Normalized string
	Position   int
	End        int
	PatternID  string

	priority int
	value    decimal.Decimal // magnitude, amounts only
}

// detect applies every pattern registered for the field against the full
// text and returns the surviving candidates in order of position. It is a
// pure function of its inputs.
func (e *Engine) detect(text string, field FieldType) []FieldCandidate {
	var all []FieldCandidate
	for _, p := range e.patterns[field] {
		for _, m := range p.re.FindAllStringSubmatchIndex(text, -1) {
			start, end := m[0], m[1]
			if len(m) >= 4 && m[2] >= 0 {
				// patterns with a capture group propose the group
				start, end = m[2], m[3]
			}
			all = append(all, FieldCandidate{
				Field:     field,
				Raw:       text[start:end],
				Position:  start,
				End:       end,
				PatternID: p.def.ID,
				priority:  p.def.Priority,
			})
		}
	}
	return resolveOverlaps(all)
}

// resolveOverlaps keeps at most one candidate per span of text. Candidates
// are ordered by start position; at the same start the longest match wins,
// with ties broken by pattern priority. A candidate overlapping an already
// accepted span is dropped.
func resolveOverlaps(cands []FieldCandidate) []FieldCandidate {
	if len(cands) == 0 {
		return nil
	}
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		if la, lb := a.End-a.Position, b.End-b.Position; la != lb {
			return la > lb
		}
		return a.priority > b.priority
	})

	out := make([]FieldCandidate, 0, len(cands))
	lastEnd := -1
	for _, c := range cands {
		if c.Position < lastEnd {
			continue
		}
		out = append(out, c)
		lastEnd = c.End
	}
	return out
}
