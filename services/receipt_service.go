// services/receipt_service.go
package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fadhlanhapp/billsplit-backend/models"
	"github.com/fadhlanhapp/billsplit-backend/utils"
)

const claudeURL = "https://api.anthropic.com/v1/messages"

// structuringPrompt turns raw OCR text into the canonical bill JSON.
const structuringPrompt = `You are a helpful assistant that extracts structured data from OCR-detected receipt text.

Given the raw receipt text below, extract and format the data according to these specifications:

1. Generate a bill_id with format "BILL" + current date (YYYYMMDD) + "-001"
2. Extract restaurant/store name, date, and time
3. Classify the receipt into one of these categories: "Food", "Education", "Transportation", "Clothing", "Entertainment", or "Other"
4. Calculate tax_rate and service_charge_rate from range (0.00 to 1.00 representing percentage).
   If there is no service charge or tax (GST/SST) then return 0.00 for each respectively.
5. Assign tax_amount and service_charge_amount as listed on the bill respectively.
   If a rate is not mentioned, its amount must be 0.00.
6. Extract all items with details; prices are per unit
7. Set "split_method" to "not_set"
8. Record any rounding adjustment line as "rounding_adj"

Return ONLY valid JSON in exactly this shape. No explanations or formatting:
{
  "bill_id": "BILL20250606-001",
  "name": "Restaurant Name",
  "date": "YYYY-MM-DD",
  "time": "HH:MM",
  "category": "Food",
  "tax_rate": 0.00,
  "service_charge_rate": 0.00,
  "subtotal_amount": 0.00,
  "tax_amount": 0.00,
  "service_charge_amount": 0.00,
  "rounding_adj": 0.00,
  "nett_amount": 0.00,
  "items": [
    {"id": 1, "name": "Item Name", "price": 0.00, "quantity": 1}
  ],
  "split_method": "not_set",
  "notes": "Brief description of any special charges or notes"
}

Raw text:
---
%s
---`

// ReceiptService turns a receipt image into a canonical, reconciled bill
type ReceiptService struct {
	store      BillStore
	reconciler *ReconcileService
}

// NewReceiptService creates a new receipt service
func NewReceiptService(store BillStore, reconciler *ReconcileService) *ReceiptService {
	return &ReceiptService{store: store, reconciler: reconciler}
}

// ExtractText transcribes the receipt image. An empty transcription is an
// error: downstream structuring has nothing to work with.
func (s *ReceiptService) ExtractText(imageBytes []byte, format string) (string, error) {
	text, err := callClaude([]map[string]interface{}{
		{
			"type": "text",
			"text": "Transcribe all text on this receipt exactly as printed, line by line. Return only the transcription.",
		},
		{
			"type": "image",
			"source": map[string]interface{}{
				"type":       "base64",
				"media_type": "image/" + format,
				"data":       base64.StdEncoding.EncodeToString(imageBytes),
			},
		},
	})
	if err != nil {
		return "", utils.NewOcrError(err.Error())
	}
	if text == "" {
		return "", utils.NewOcrError("no text detected on receipt")
	}
	return text, nil
}

// StructureReceipt converts OCR text into a bill document. Malformed
// model output surfaces as a structuring error with the raw text kept
// for diagnostics.
func (s *ReceiptService) StructureReceipt(receiptText string) (*models.Bill, string, error) {
	raw, err := callClaude([]map[string]interface{}{
		{"type": "text", "text": fmt.Sprintf(structuringPrompt, receiptText)},
	})
	if err != nil {
		return nil, "", utils.NewOcrError(err.Error())
	}

	cleaned := utils.CleanJSONResponse(raw)

	var bill models.Bill
	if err := json.Unmarshal([]byte(cleaned), &bill); err != nil {
		return nil, raw, utils.NewStructuringError(err, raw)
	}
	if bill.BillID == "" {
		bill.BillID = utils.GenerateBillID()
	}
	return &bill, raw, nil
}

// RegisterBill seeds the participant list, reconciles the extracted
// totals, and persists the canonical bill. The first participant starts
// out holding every item at 100%; everyone else starts empty.
func (s *ReceiptService) RegisterBill(bill *models.Bill, participantEmails []string) (*models.Bill, error) {
	if err := utils.ValidateNotEmpty(participantEmails, "participants"); err != nil {
		return nil, err
	}
	if err := utils.ValidateParticipantEmails(participantEmails); err != nil {
		return nil, err
	}

	s.reconciler.PropagateSurcharges(bill)
	s.reconciler.CloseBill(bill)

	emails := utils.NormalizeEmails(participantEmails)
	bill.PaidBy = emails[0]
	bill.Participants = make([]models.Participant, 0, len(emails))

	for i, email := range emails {
		participant := models.Participant{Email: email}
		if i == 0 {
			for _, item := range bill.Items {
				value := utils.Round(item.NettPrice * float64(item.Quantity))
				participant.ItemsPaid = append(participant.ItemsPaid, models.ItemShare{
					ID:            item.ID,
					Value:         value,
					Percentage:    100,
					SplitType:     utils.SplitTypePercentage,
					OriginalPrice: item.NettPrice,
				})
				participant.TotalPaid += value
			}
			participant.TotalPaid = utils.Round(participant.TotalPaid)
		}
		bill.Participants = append(bill.Participants, participant)
	}

	bill.SplitMethod = utils.SplitMethodNotSet

	if err := s.store.StoreBill(bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// callClaude sends one user message to the Claude API and returns the
// first text block of the response.
func callClaude(content []map[string]interface{}) (string, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
	}

	requestBody := map[string]interface{}{
		"model":      "claude-sonnet-4-20250514",
		"max_tokens": 4000,
		"messages": []map[string]interface{}{
			{"role": "user", "content": content},
		},
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal Claude API request: %v", err)
	}

	req, err := http.NewRequest("POST", claudeURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create Claude API request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request to Claude API: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Claude API returned non-200 status: %d - %s", resp.StatusCode, string(bodyBytes))
	}

	var claudeResp struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&claudeResp); err != nil {
		return "", fmt.Errorf("failed to decode Claude API response: %v", err)
	}

	for _, block := range claudeResp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", nil
}
