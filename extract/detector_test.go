package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(DefaultScoring())
	require.NoError(t, err)
	return engine
}

func TestDetectReturnsCandidatesInPositionOrder(t *testing.T) {
	engine := newTestEngine(t)

	text := "Widget 10.00\nGadget 25.00\nFee 5.00\n"
	cands := engine.detect(text, FieldAmount)

	require.Len(t, cands, 3)
	assert.Equal(t, "10.00", cands[0].Raw)
	assert.Equal(t, "25.00", cands[1].Raw)
	assert.Equal(t, "5.00", cands[2].Raw)
	assert.Less(t, cands[0].Position, cands[1].Position)
	assert.Less(t, cands[1].Position, cands[2].Position)
}

func TestDetectResolvesOverlappingMatches(t *testing.T) {
	engine := newTestEngine(t)

	// the grouped pattern and the plain decimal both match inside this
	// value; only the full span survives
	cands := engine.detect("Amount: 1.234,56", FieldAmount)

	require.Len(t, cands, 1)
	assert.Equal(t, "1.234,56", cands[0].Raw)
	assert.Equal(t, "amount_intl_grouped", cands[0].PatternID)
}

func TestDetectLabeledVendorUsesCaptureGroup(t *testing.T) {
	engine := newTestEngine(t)

	text := "Sold by: Acme Ltd\nSomething else\n"
	cands := engine.detect(text, FieldVendor)

	require.NotEmpty(t, cands)
	assert.Equal(t, "Acme Ltd", cands[0].Raw)
	assert.Equal(t, "vendor_labeled", cands[0].PatternID)
	assert.Equal(t, strings.Index(text, "Acme"), cands[0].Position)
}

func TestDetectIsPure(t *testing.T) {
	engine := newTestEngine(t)

	text := "Invoice Total: 99.95 due 2024-05-01"
	first := engine.detect(text, FieldDate)
	second := engine.detect(text, FieldDate)

	assert.Equal(t, first, second)
}
