package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/psanchez-dev/document-intelligence/client"
	"github.com/psanchez-dev/document-intelligence/dto"
	"github.com/psanchez-dev/document-intelligence/extract"
)

// minTextLength is the threshold below which a PDF is treated as scanned
// and routed through the OCR fallback.
const minTextLength = 20

// ExtractionService orchestrates the document pipeline: PDF text
// extraction, the OCR fallback for scanned documents, and the field
// extraction engine. Per-document failures degrade the result instead of
// failing the request; only unreadable input surfaces as an error.
type ExtractionService struct {
	pdfProcessor    PDFProcessor
	tesseractClient *client.TesseractClient
	qrDecoder       *client.QRDecoder
	engine          *extract.Engine
	logger          *zap.Logger
}

func NewExtractionService(
	pdfProcessor PDFProcessor,
	tesseractClient *client.TesseractClient,
	qrDecoder *client.QRDecoder,
	engine *extract.Engine,
	logger *zap.Logger,
) *ExtractionService {
	return &ExtractionService{
		pdfProcessor:    pdfProcessor,
		tesseractClient: tesseractClient,
		qrDecoder:       qrDecoder,
		engine:          engine,
		logger:          logger,
	}
}

// ExtractFromPDF extracts the text of a PDF document and runs the field
// extraction engine over it. Sparse or empty documents yield a well-formed
// zero-confidence result, never a hard failure.
func (s *ExtractionService) ExtractFromPDF(ctx context.Context, pdfData []byte, docType dto.DocumentType) (dto.ExtractionResult, error) {
	text, err := s.pdfProcessor.ExtractText(pdfData)
	if err != nil {
		s.logger.Warn("pdf text extraction failed", zap.Error(err))
	}

	if len(strings.TrimSpace(text)) < minTextLength {
		s.logger.Info("minimal embedded text, attempting image-based OCR")
		ocrText, ocrErr := s.ocrScannedPDF(ctx, pdfData)
		if ocrErr != nil {
			s.logger.Warn("scanned document OCR failed", zap.Error(ocrErr))
		} else if strings.TrimSpace(ocrText) != "" {
			text = ocrText
		}
	}

	result, err := s.engine.Extract(text, docType)
	if errors.Is(err, dto.ErrEmptyInput) {
		s.logger.Warn("document produced no text, returning empty result",
			zap.String("document_type", string(docType)))
		return result, nil
	}
	return result, err
}

// ocrScannedPDF extracts page images and OCRs each one. QR codes found on
// a page are decoded and their payload appended to the corpus.
func (s *ExtractionService) ocrScannedPDF(ctx context.Context, pdfData []byte) (string, error) {
	images, err := s.pdfProcessor.ExtractImages(pdfData)
	if err != nil {
		return "", err
	}
	if len(images) == 0 {
		return "", errors.New("no page images found")
	}

	var combined strings.Builder
	var pages int
	for _, img := range images {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		tempImg, err := saveImageToTempFile(img)
		if err != nil {
			s.logger.Warn("failed to save page image", zap.Error(err))
			continue
		}

		pageText, conf, err := s.tesseractClient.ExtractTextAndQuality(tempImg)
		os.Remove(tempImg)
		if err != nil {
			s.logger.Warn("page OCR failed", zap.Error(err))
		} else if strings.TrimSpace(pageText) != "" {
			combined.WriteString(pageText)
			combined.WriteString("\n")
			pages++
			s.logger.Debug("page OCR complete", zap.Float64("confidence", conf))
		}

		if payload, err := s.qrDecoder.Decode(img); err == nil && strings.TrimSpace(payload) != "" {
			combined.WriteString(payload)
			combined.WriteString("\n")
		}
	}

	if pages == 0 && combined.Len() == 0 {
		return "", errors.New("OCR produced no text")
	}
	return combined.String(), nil
}

// BatchDocument is one uploaded file of a batch request.
type BatchDocument struct {
	Filename string
	Data     []byte
}

// ExtractBatch processes documents concurrently; each document gets its
// own result slot, so failures stay local to their file.
func (s *ExtractionService) ExtractBatch(ctx context.Context, docs []BatchDocument) dto.BatchResponse {
	results := make([]dto.BatchItemResult, len(docs))

	var wg sync.WaitGroup
	for i, doc := range docs {
		wg.Add(1)
		go func(i int, doc BatchDocument) {
			defer wg.Done()

			result, err := s.ExtractFromPDF(ctx, doc.Data, InferDocumentType(doc.Filename))
			if err != nil {
				results[i] = dto.BatchItemResult{
					Filename: doc.Filename,
					Status:   "error",
					Error:    err.Error(),
				}
				return
			}
			results[i] = dto.BatchItemResult{
				Filename: doc.Filename,
				Status:   "success",
				Data:     &result,
			}
		}(i, doc)
	}
	wg.Wait()

	return dto.BatchResponse{Results: results, Total: len(docs)}
}

// InferDocumentType guesses the document type from the filename; anything
// not recognizably an invoice is treated as a receipt.
func InferDocumentType(filename string) dto.DocumentType {
	if strings.Contains(strings.ToLower(filename), "invoice") {
		return dto.DocTypeInvoice
	}
	return dto.DocTypeReceipt
}

// saveImageToTempFile saves an image.Image to a temporary PNG file.
func saveImageToTempFile(img image.Image) (string, error) {
	tempFile, err := os.CreateTemp("", "ocr-img-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp image file: %w", err)
	}
	defer tempFile.Close()

	if err := png.Encode(tempFile, img); err != nil {
		os.Remove(tempFile.Name())
		return "", fmt.Errorf("failed to encode image to PNG: %w", err)
	}

	return tempFile.Name(), nil
}
