package client

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// TesseractClient wraps tesseract OCR for scanned-document fallback.
type TesseractClient struct {
	dataPath string
}

func NewTesseractClient(dataPath string) *TesseractClient {
	return &TesseractClient{
		dataPath: dataPath,
	}
}

// ExtractTextAndQuality runs OCR on an image file and returns the text
// plus the average word confidence (0-100).
func (tc *TesseractClient) ExtractTextAndQuality(filePath string) (string, float64, error) {
	client := gosseract.NewClient()
	defer client.Close()

	client.SetTessdataPrefix(tc.dataPath)
	if err := client.SetLanguage("eng"); err != nil {
		return "", 0, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(filePath); err != nil {
		return "", 0, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", 0, fmt.Errorf("failed to extract text: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return text, 0, nil
	}

	var totalConf float64
	for _, box := range boxes {
		totalConf += box.Confidence
	}
	avgConf := 0.0
	if len(boxes) > 0 {
		avgConf = totalConf / float64(len(boxes))
	}

	return text, avgConf, nil
}
