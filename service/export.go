package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/psanchez-dev/document-intelligence/dto"
)

var exportHeaders = []string{
	"document_type",
	"vendor",
	"invoice_date",
	"total_amount",
	"detected_amounts",
	"detected_dates",
	"confidence",
	"raw_text_length",
}

// BuildCSV renders extraction results as a CSV report. Multi-valued
// columns are joined with ";" so the row stays one record per document.
func BuildCSV(results []dto.ExtractionResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeaders); err != nil {
		return nil, err
	}
	for _, r := range results {
		if err := w.Write(exportRow(r)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildXLSX renders extraction results as an XLSX workbook.
func BuildXLSX(results []dto.ExtractionResult) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Extractions"

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for col, h := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, r := range results {
		for col, v := range exportRow(r) {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func exportRow(r dto.ExtractionResult) []string {
	return []string{
		string(r.DocumentType),
		deref(r.Vendor),
		deref(r.InvoiceDate),
		deref(r.TotalAmount),
		strings.Join(r.DetectedAmounts, ";"),
		strings.Join(r.DetectedDates, ";"),
		strconv.FormatFloat(r.Confidence, 'f', 2, 64),
		strconv.Itoa(r.RawTextLength),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
