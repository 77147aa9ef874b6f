package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psanchez-dev/document-intelligence/dto"
)

func TestExtractInvoiceScenario(t *testing.T) {
	engine := newTestEngine(t)

	text := "Acme Corp\nInvoice Date: 2024-12-30\nTotal: 1,245.50\n"
	result, err := engine.Extract(text, dto.DocTypeInvoice)
	require.NoError(t, err)

	require.NotNil(t, result.Vendor)
	assert.Equal(t, "Acme Corp", *result.Vendor)
	require.NotNil(t, result.InvoiceDate)
	assert.Equal(t, "2024-12-30", *result.InvoiceDate)
	require.NotNil(t, result.TotalAmount)
	assert.Equal(t, "1245.50", *result.TotalAmount)

	assert.Equal(t, []string{"1245.50"}, result.DetectedAmounts)
	assert.Equal(t, []string{"2024-12-30"}, result.DetectedDates)
	assert.Equal(t, 1.0, result.Confidence)
	assert.Equal(t, dto.DocTypeInvoice, result.DocumentType)
	assert.Equal(t, len(text), result.RawTextLength)
}

func TestExtractEmptyInput(t *testing.T) {
	engine := newTestEngine(t)

	for _, text := range []string{"", "   \n\t  "} {
		result, err := engine.Extract(text, dto.DocTypeInvoice)
		assert.ErrorIs(t, err, dto.ErrEmptyInput)

		assert.Nil(t, result.Vendor)
		assert.Nil(t, result.InvoiceDate)
		assert.Nil(t, result.TotalAmount)
		assert.NotNil(t, result.DetectedAmounts)
		assert.Empty(t, result.DetectedAmounts)
		assert.NotNil(t, result.DetectedDates)
		assert.Empty(t, result.DetectedDates)
		assert.Equal(t, 0.0, result.Confidence)
		assert.Equal(t, len(text), result.RawTextLength)
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	engine := newTestEngine(t)

	text := "Globex Inc\nDate: 15/03/2024\nSubtotal: 90.00\nTotal Due: 110.00\n"
	first, err1 := engine.Extract(text, dto.DocTypeInvoice)
	second, err2 := engine.Extract(text, dto.DocTypeInvoice)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestLabelAdjacencyOutranksMagnitude(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Extract("Subtotal: 100.00\nTotal Due: 150.00\n", dto.DocTypeInvoice)
	require.NoError(t, err)

	require.NotNil(t, result.TotalAmount)
	assert.Equal(t, "150.00", *result.TotalAmount)
	assert.Equal(t, []string{"100.00", "150.00"}, result.DetectedAmounts)

	// the labeled amount wins even against a larger line item
	result, err = engine.Extract("Total Due: 80.00\nHandling: 100.00\n", dto.DocTypeInvoice)
	require.NoError(t, err)
	require.NotNil(t, result.TotalAmount)
	assert.Equal(t, "80.00", *result.TotalAmount)
}

func TestLargestAmountWinsWithoutLabels(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Extract("Widget 10.00\nGadget 25.00\nFee 5.00\n", dto.DocTypeInvoice)
	require.NoError(t, err)

	require.NotNil(t, result.TotalAmount)
	assert.Equal(t, "25.00", *result.TotalAmount)
}

func TestDueDateExcludedFromInvoiceDate(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Extract("Due Date: 2025-01-15\nInvoice Date: 2024-12-01\n", dto.DocTypeInvoice)
	require.NoError(t, err)

	require.NotNil(t, result.InvoiceDate)
	assert.Equal(t, "2024-12-01", *result.InvoiceDate)
	// the due date still appears in the detected sequence, in text order
	assert.Equal(t, []string{"2025-01-15", "2024-12-01"}, result.DetectedDates)
}

func TestVendorNearestTopWins(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Extract("Acme Corp\nGlobex Inc\nTotal: 50.00\n", dto.DocTypeInvoice)
	require.NoError(t, err)

	require.NotNil(t, result.Vendor)
	assert.Equal(t, "Acme Corp", *result.Vendor)
}

func TestDetectedSequencesPreserveTextOrder(t *testing.T) {
	engine := newTestEngine(t)

	text := "Issued 2024-01-01\nShipped 2024-02-02\nPaid 2024-03-03\n"
	result, err := engine.Extract(text, dto.DocTypeInvoice)
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-01-01", "2024-02-02", "2024-03-03"}, result.DetectedDates)
}

func TestSelectedValuesComeFromDetectedSequences(t *testing.T) {
	engine := newTestEngine(t)

	text := "Initech Supplies\nDate: 05/11/2024\nItem 12.00\nItem 30.00\nTotal: 42.00\n"
	result, err := engine.Extract(text, dto.DocTypeInvoice)
	require.NoError(t, err)

	require.NotNil(t, result.TotalAmount)
	assert.Contains(t, result.DetectedAmounts, *result.TotalAmount)
	require.NotNil(t, result.InvoiceDate)
	assert.Contains(t, result.DetectedDates, *result.InvoiceDate)
}

func TestConfidenceStaysWithinBounds(t *testing.T) {
	engine := newTestEngine(t)

	texts := []string{
		"Acme Corp\nInvoice Date: 2024-12-30\nTotal: 1,245.50\n",
		"Subtotal: 100.00\nTotal Due: 150.00\n",
		"no structured data here at all",
		"10.00 20.00 30.00 40.00 50.00 60.00 70.00 80.00",
		"2024-01-01 2024-02-02 2024-03-03 2024-04-04 2024-05-05",
	}
	for _, text := range texts {
		result, err := engine.Extract(text, dto.DocTypeInvoice)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Confidence, 0.0, "text %q", text)
		assert.LessOrEqual(t, result.Confidence, 1.0, "text %q", text)
	}
}

func TestConfidenceDropsWithMissingFieldsAndAmbiguity(t *testing.T) {
	engine := newTestEngine(t)

	// vendor and date missing, one unused amount competitor
	result, err := engine.Extract("Subtotal: 100.00\nTotal Due: 150.00\n", dto.DocTypeInvoice)
	require.NoError(t, err)
	assert.InDelta(t, 0.55, result.Confidence, 1e-9)

	// everything missing except nothing: all three null
	result, err = engine.Extract("nothing useful here", dto.DocTypeInvoice)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, result.Confidence, 1e-9)
}

func TestExtractReceiptUsesSameEngine(t *testing.T) {
	engine := newTestEngine(t)

	text := "Corner Cafe\nDate: 2024-06-10\nCoffee 4.50\nBagel 3.25\nTotal: 7.75\n"
	result, err := engine.Extract(text, dto.DocTypeReceipt)
	require.NoError(t, err)

	assert.Equal(t, dto.DocTypeReceipt, result.DocumentType)
	summary := result.ReceiptSummary()
	require.NotNil(t, summary.Merchant)
	assert.Equal(t, "Corner Cafe", *summary.Merchant)
	require.NotNil(t, summary.Total)
	assert.Equal(t, "7.75", *summary.Total)
	assert.Equal(t, 3, summary.ItemsDetected)
	assert.Equal(t, result.Confidence, summary.Confidence)
}
