package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/psanchez-dev/document-intelligence/client"
	"github.com/psanchez-dev/document-intelligence/config"
	"github.com/psanchez-dev/document-intelligence/dto"
	"github.com/psanchez-dev/document-intelligence/extract"
	"github.com/psanchez-dev/document-intelligence/handler"
	"github.com/psanchez-dev/document-intelligence/service"
)

const version = "1.0.0"

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// A malformed pattern must kill the process before any request is served.
	engine, err := extract.NewEngine(cfg.Scoring)
	if err != nil {
		logger.Fatal("Pattern compilation failed", zap.Error(err))
	}

	tesseractClient := client.NewTesseractClient(cfg.TessdataPrefix)
	qrDecoder := client.NewQRDecoder()
	pdfProcessor := service.NewPDFProcessor()

	extractionService := service.NewExtractionService(pdfProcessor, tesseractClient, qrDecoder, engine, logger)
	extractHandler := handler.NewExtractHandler(extractionService, cfg.MaxFileSize, cfg.MaxBatchSize, logger)

	router := gin.Default()

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Document Intelligence API",
			"version": version,
			"endpoints": gin.H{
				"health":          "/health",
				"extract_invoice": "/api/v1/extract/invoice",
				"extract_receipt": "/api/v1/extract/receipt",
				"extract_batch":   "/api/v1/extract/batch",
			},
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.HealthResponse{
			Status:  "healthy",
			Version: version,
			Message: "Document Intelligence API is running",
		})
	})

	api := router.Group("/api/v1")
	{
		ext := api.Group("/extract")
		{
			ext.POST("/invoice", extractHandler.ExtractInvoice)
			ext.POST("/receipt", extractHandler.ExtractReceipt)
			ext.POST("/batch", extractHandler.ExtractBatch)
		}
	}

	logger.Info("Starting Document Intelligence Service", zap.String("port", cfg.ServerPort))
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
