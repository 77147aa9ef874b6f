package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/psanchez-dev/document-intelligence/dto"
	"github.com/psanchez-dev/document-intelligence/service"
)

type ExtractHandler struct {
	extractionService *service.ExtractionService
	maxFileSize       int64
	maxBatchSize      int
	logger            *zap.Logger
}

func NewExtractHandler(extractionService *service.ExtractionService, maxFileSize int64, maxBatchSize int, logger *zap.Logger) *ExtractHandler {
	return &ExtractHandler{
		extractionService: extractionService,
		maxFileSize:       maxFileSize,
		maxBatchSize:      maxBatchSize,
		logger:            logger,
	}
}

// ExtractInvoice handles POST /api/v1/extract/invoice
func (h *ExtractHandler) ExtractInvoice(c *gin.Context) {
	h.extractSingle(c, dto.DocTypeInvoice)
}

// ExtractReceipt handles POST /api/v1/extract/receipt
func (h *ExtractHandler) ExtractReceipt(c *gin.Context) {
	h.extractSingle(c, dto.DocTypeReceipt)
}

func (h *ExtractHandler) extractSingle(c *gin.Context, docType dto.DocumentType) {
	requestID := uuid.NewString()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "No file provided", err)
		return
	}
	if err := h.validatePDF(fileHeader); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	data, err := readFile(fileHeader)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to read uploaded file", err)
		return
	}

	h.logger.Info("processing document",
		zap.String("request_id", requestID),
		zap.String("filename", fileHeader.Filename),
		zap.String("document_type", string(docType)))

	result, err := h.extractionService.ExtractFromPDF(c.Request.Context(), data, docType)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Processing error", err)
		return
	}

	var payload any = result
	if docType == dto.DocTypeReceipt {
		payload = result.ReceiptSummary()
	}

	c.JSON(http.StatusOK, dto.ExtractionResponse{
		Status:     "success",
		RequestID:  requestID,
		Data:       payload,
		Confidence: result.Confidence,
	})
}

// ExtractBatch handles POST /api/v1/extract/batch. Document type is
// inferred per file from its name. The optional format query parameter
// switches the response to a CSV or XLSX report of the batch.
func (h *ExtractHandler) ExtractBatch(c *gin.Context) {
	requestID := uuid.NewString()

	form, err := c.MultipartForm()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to parse multipart form", err)
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		h.sendError(c, http.StatusBadRequest, "No files provided", nil)
		return
	}
	if len(files) > h.maxBatchSize {
		h.sendError(c, http.StatusBadRequest,
			fmt.Sprintf("Maximum %d files per batch", h.maxBatchSize), nil)
		return
	}

	docs := make([]service.BatchDocument, 0, len(files))
	for _, fileHeader := range files {
		if err := h.validatePDF(fileHeader); err != nil {
			h.sendError(c, http.StatusBadRequest,
				fmt.Sprintf("%s: %s", fileHeader.Filename, err.Error()), nil)
			return
		}
		data, err := readFile(fileHeader)
		if err != nil {
			h.sendError(c, http.StatusBadRequest,
				fmt.Sprintf("Failed to read %s", fileHeader.Filename), err)
			return
		}
		docs = append(docs, service.BatchDocument{Filename: fileHeader.Filename, Data: data})
	}

	h.logger.Info("processing batch",
		zap.String("request_id", requestID),
		zap.Int("files", len(docs)))

	response := h.extractionService.ExtractBatch(c.Request.Context(), docs)

	switch strings.ToLower(c.Query("format")) {
	case "csv":
		h.sendReport(c, response, "text/csv", "extractions.csv", service.BuildCSV)
	case "xlsx":
		h.sendReport(c, response,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			"extractions.xlsx", service.BuildXLSX)
	default:
		c.JSON(http.StatusOK, response)
	}
}

func (h *ExtractHandler) sendReport(c *gin.Context, response dto.BatchResponse, contentType, filename string, build func([]dto.ExtractionResult) ([]byte, error)) {
	results := make([]dto.ExtractionResult, 0, len(response.Results))
	for _, item := range response.Results {
		if item.Data != nil {
			results = append(results, *item.Data)
		}
	}

	report, err := build(results)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to build report", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, report)
}

func (h *ExtractHandler) validatePDF(fileHeader *multipart.FileHeader) error {
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		return fmt.Errorf("only PDF files are supported")
	}
	if fileHeader.Size > h.maxFileSize {
		return fmt.Errorf("file exceeds maximum size of %d bytes", h.maxFileSize)
	}
	return nil
}

func readFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// sendError sends a structured error response
func (h *ExtractHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	if err != nil {
		h.logger.Error("request failed", zap.String("message", message), zap.Error(err))
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "EXTRACTION_FAILED",
		Message: message,
		Code:    statusCode,
	})
}
