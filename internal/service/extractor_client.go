package service

import (
	"context"
	"errors"
	"fmt"

	"medikeep/config"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// ErrExtractionFailed wraps any failure of the external extraction service.
var ErrExtractionFailed = errors.New("document extraction failed")

// ExtractedInventoryItem is one line item from an analyzed inventory
// document. Defaults (1 box, 1 unit, expiry one year out) are applied by the
// extraction service, not here.
type ExtractedInventoryItem struct {
	Name             string `json:"name"`
	Boxes            int    `json:"boxes"`
	UnitsPerBox      int    `json:"unitsPerBox"`
	MedicinesPerUnit int    `json:"medicinesPerUnit"`
	ExpiryDate       string `json:"expiryDate"`
}

// ExtractedMedicine is one line item from an analyzed personal prescription
// or medicine list.
type ExtractedMedicine struct {
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	ExpiryDate string `json:"expiryDate"`
}

type inventoryAnalysisResponse struct {
	Inventory []ExtractedInventoryItem `json:"inventory"`
}

type medicineAnalysisResponse struct {
	Medicines []ExtractedMedicine `json:"medicines"`
}

type analysisRequest struct {
	DocumentDataURI string `json:"documentDataUri"`
	Schema          string `json:"schema"`
}

// ExtractorClient is a thin pass-through to the external AI
// document-extraction service. It performs no local parsing beyond shape
// checks; interpretation of the document is entirely the service's job.
type ExtractorClient struct {
	client *resty.Client
	log    *logrus.Logger
}

func NewExtractorClient(cfg config.ExtractorConfig, log *logrus.Logger) *ExtractorClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	}
	return &ExtractorClient{client: client, log: log}
}

// dataURI assembles the payload format the extraction service expects:
// data:<mimetype>;base64,<encoded_data>.
func dataURI(documentBase64, mimeType string) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, documentBase64)
}

// AnalyzeInventoryDocument extracts inventory line items from an encoded
// document.
func (c *ExtractorClient) AnalyzeInventoryDocument(ctx context.Context, documentBase64, mimeType string) ([]ExtractedInventoryItem, error) {
	var result inventoryAnalysisResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(analysisRequest{DocumentDataURI: dataURI(documentBase64, mimeType), Schema: "inventory"}).
		SetResult(&result).
		Post("/v1/analyze")
	if err != nil {
		c.log.Warnf("Extraction service call failed: %+v", err)
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	if resp.IsError() {
		c.log.Warnf("Extraction service returned status %d: %s", resp.StatusCode(), resp.String())
		return nil, fmt.Errorf("%w: status %d", ErrExtractionFailed, resp.StatusCode())
	}
	if result.Inventory == nil {
		return nil, fmt.Errorf("%w: response missing inventory list", ErrExtractionFailed)
	}
	return result.Inventory, nil
}

// AnalyzeMedicineDocument extracts personal medicines from an encoded
// document.
func (c *ExtractorClient) AnalyzeMedicineDocument(ctx context.Context, documentBase64, mimeType string) ([]ExtractedMedicine, error) {
	var result medicineAnalysisResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(analysisRequest{DocumentDataURI: dataURI(documentBase64, mimeType), Schema: "medicines"}).
		SetResult(&result).
		Post("/v1/analyze")
	if err != nil {
		c.log.Warnf("Extraction service call failed: %+v", err)
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	if resp.IsError() {
		c.log.Warnf("Extraction service returned status %d: %s", resp.StatusCode(), resp.String())
		return nil, fmt.Errorf("%w: status %d", ErrExtractionFailed, resp.StatusCode())
	}
	if result.Medicines == nil {
		return nil, fmt.Errorf("%w: response missing medicines list", ErrExtractionFailed)
	}
	return result.Medicines, nil
}
