package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractionResultRendersNullsExplicitly(t *testing.T) {
	result := ExtractionResult{
		DocumentType:    DocTypeInvoice,
		DetectedAmounts: []string{},
		DetectedDates:   []string{},
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	// unresolved fields must be present as null, never absent
	for _, key := range []string{"vendor", "invoice_date", "total_amount"} {
		v, ok := decoded[key]
		assert.True(t, ok, "key %s missing", key)
		assert.Nil(t, v, "key %s should be null", key)
	}
	assert.Equal(t, []any{}, decoded["detected_amounts"])
	assert.Equal(t, []any{}, decoded["detected_dates"])
	assert.Equal(t, float64(0), decoded["confidence"])
}

func TestReceiptSummary(t *testing.T) {
	vendor := "Corner Cafe"
	date := "2024-06-10"
	total := "7.75"

	result := ExtractionResult{
		DocumentType:    DocTypeReceipt,
		Vendor:          &vendor,
		InvoiceDate:     &date,
		TotalAmount:     &total,
		DetectedAmounts: []string{"4.50", "3.25", "7.75"},
		DetectedDates:   []string{"2024-06-10"},
		Confidence:      0.9,
	}

	summary := result.ReceiptSummary()

	assert.Equal(t, DocTypeReceipt, summary.DocumentType)
	assert.Equal(t, &vendor, summary.Merchant)
	assert.Equal(t, &date, summary.PurchaseDate)
	assert.Equal(t, &total, summary.Total)
	assert.Equal(t, 3, summary.ItemsDetected)
	assert.Equal(t, 0.9, summary.Confidence)
}
