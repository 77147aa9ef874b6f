package dto

type DocumentType string

const (
	DocTypeInvoice DocumentType = "invoice"
	DocTypeReceipt DocumentType = "receipt"
)

// ExtractionResult is the structured output of a single extraction run.
// The JSON field names and their nullability are a compatibility contract
// with downstream consumers: unresolved fields serialize as explicit null,
// never as absent keys, and the detected_* sequences keep the order in
// which the values appeared in the source text.
type ExtractionResult struct {
	DocumentType    DocumentType `json:"document_type"`
	Vendor          *string      `json:"vendor"`
	InvoiceDate     *string      `json:"invoice_date"`
	TotalAmount     *string      `json:"total_amount"`
	DetectedAmounts []string     `json:"detected_amounts"`
	DetectedDates   []string     `json:"detected_dates"`
	Confidence      float64      `json:"confidence"`
	RawTextLength   int          `json:"raw_text_length"`
}

// ReceiptSummary is the condensed response shape served for receipt documents.
type ReceiptSummary struct {
	DocumentType  DocumentType `json:"document_type"`
	Merchant      *string      `json:"merchant"`
	PurchaseDate  *string      `json:"purchase_date"`
	Total         *string      `json:"total"`
	ItemsDetected int          `json:"items_detected"`
	Confidence    float64      `json:"confidence"`
}

// ReceiptSummary condenses an extraction result into the receipt shape.
// Every detected amount is counted as a line item.
func (r ExtractionResult) ReceiptSummary() ReceiptSummary {
	return ReceiptSummary{
		DocumentType:  r.DocumentType,
		Merchant:      r.Vendor,
		PurchaseDate:  r.InvoiceDate,
		Total:         r.TotalAmount,
		ItemsDetected: len(r.DetectedAmounts),
		Confidence:    r.Confidence,
	}
}
