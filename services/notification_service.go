// services/notification_service.go
package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/fadhlanhapp/billsplit-backend/models"
	"github.com/fadhlanhapp/billsplit-backend/utils"
)

// NotificationService sends a templated WhatsApp message through Twilio
// telling a participant what they owe. Delivery is independent of bill
// correctness; a failure here never touches the bill.
type NotificationService struct{}

// NewNotificationService creates a new notification service
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyShare sends the bill-split template to one participant and
// returns the provider message SID.
func (s *NotificationService) NotifyShare(bill *models.Bill, email, phoneNumber, payLink string) (string, error) {
	participant := bill.FindParticipant(utils.NormalizeEmail(email))
	if participant == nil {
		return "", utils.NewNotFoundError("Participant")
	}

	accountSID := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	senderID := os.Getenv("TWILIO_SENDER_ID")
	templateSID := os.Getenv("TWILIO_BILL_SPLIT_TEMPLATE")
	if accountSID == "" || authToken == "" {
		return "", utils.NewInternalError("Twilio credentials not configured")
	}

	variables, err := json.Marshal(map[string]string{
		"1": participant.Email,
		"2": bill.PaidBy,
		"3": payLink,
		"4": fmt.Sprintf("%.2f", participant.TotalPaid),
	})
	if err != nil {
		return "", utils.NewInternalError(fmt.Sprintf("failed to build template variables: %v", err))
	}

	if !strings.HasPrefix(phoneNumber, "whatsapp:") {
		phoneNumber = "whatsapp:" + phoneNumber
	}

	form := url.Values{}
	form.Set("To", phoneNumber)
	form.Set("From", senderID)
	form.Set("ContentSid", templateSID)
	form.Set("ContentVariables", string(variables))
	form.Set("Body", fmt.Sprintf("Hello %s! You owe $%.2f to %s. Visit %s to pay.",
		participant.Email, participant.TotalPaid, bill.PaidBy, payLink))

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", accountSID)
	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", utils.NewInternalError(fmt.Sprintf("failed to create Twilio request: %v", err))
	}
	req.SetBasicAuth(accountSID, authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", utils.NewInternalError(fmt.Sprintf("failed to send Twilio request: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", utils.NewInternalError(fmt.Sprintf("Twilio returned status %d", resp.StatusCode))
	}

	var parsed struct {
		SID string `json:"sid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", utils.NewInternalError(fmt.Sprintf("failed to decode Twilio response: %v", err))
	}
	return parsed.SID, nil
}
