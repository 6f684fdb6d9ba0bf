// models/models.go
package models

// Bill is the root document for one purchase event: its totals, items,
// and participants. It is created once from a scanned receipt and then
// rewritten in place by split/transfer operations.
type Bill struct {
	BillID              string        `json:"bill_id"`
	Name                string        `json:"name"`
	Date                string        `json:"date"`
	Time                string        `json:"time"`
	Category            string        `json:"category"`
	TaxRate             float64       `json:"tax_rate"`
	ServiceChargeRate   float64       `json:"service_charge_rate"`
	SubtotalAmount      float64       `json:"subtotal_amount"`
	TaxAmount           float64       `json:"tax_amount"`
	ServiceChargeAmount float64       `json:"service_charge_amount"`
	RoundingAdj         float64       `json:"rounding_adj"`
	NettAmount          float64       `json:"nett_amount"`
	PaidBy              string        `json:"paid_by"`
	SplitMethod         string        `json:"split_method"`
	Items               []Item        `json:"items"`
	Participants        []Participant `json:"participants"`
	Notes               string        `json:"notes,omitempty"`
}

// Item is one purchased line. Price is the per-unit price before
// surcharges; NettPrice is the per-unit price after the combined
// tax+service surcharge has been applied. RoundingAdj and ErrorDiff are
// only ever set on the first item, by reconciliation.
type Item struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	TaxAmount   float64 `json:"tax_amount"`
	NettPrice   float64 `json:"nett_price"`
	Quantity    int     `json:"quantity"`
	RoundingAdj float64 `json:"rounding_adj,omitempty"`
	ErrorDiff   float64 `json:"error_diff,omitempty"`
}

// Participant is one person sharing the bill. Email is the identity key
// throughout; TotalPaid must equal the sum of ItemsPaid values after
// every mutating operation.
type Participant struct {
	Email     string      `json:"email"`
	TotalPaid float64     `json:"total_paid"`
	ItemsPaid []ItemShare `json:"items_paid"`
}

// ItemShare is a participant's claim on a portion of one item. ID refers
// to an Item id; transfers can merge two shares of the same item, so IDs
// are not unique within a participant's list.
type ItemShare struct {
	ID            int     `json:"id"`
	Value         float64 `json:"value"`
	Percentage    float64 `json:"percentage"`
	SplitType     string  `json:"split_type"`
	OriginalPrice float64 `json:"original_price"`
}

// FindParticipant returns the participant with the given email, or nil.
func (b *Bill) FindParticipant(email string) *Participant {
	for i := range b.Participants {
		if b.Participants[i].Email == email {
			return &b.Participants[i]
		}
	}
	return nil
}

// ParticipantEmails returns all participant emails in bill order.
func (b *Bill) ParticipantEmails() []string {
	emails := make([]string, len(b.Participants))
	for i, p := range b.Participants {
		emails[i] = p.Email
	}
	return emails
}

// ItemsNettTotal returns the sum of nett_price * quantity over all items.
func (b *Bill) ItemsNettTotal() float64 {
	var total float64
	for _, item := range b.Items {
		total += item.NettPrice * float64(item.Quantity)
	}
	return total
}

// ParticipantsTotal returns the sum of total_paid over all participants.
func (b *Bill) ParticipantsTotal() float64 {
	var total float64
	for _, p := range b.Participants {
		total += p.TotalPaid
	}
	return total
}

// ChatRequest is the conversational agent request
type ChatRequest struct {
	BillID  string `json:"billId" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// ChatResponse carries the agent's reply plus the current bill state
type ChatResponse struct {
	Response string `json:"response"`
	Status   string `json:"status"`
	Data     *Bill  `json:"data,omitempty"`
}

// MoveItemRequest request model
type MoveItemRequest struct {
	SourceEmail      string `json:"sourceEmail" binding:"required"`
	DestinationEmail string `json:"destinationEmail" binding:"required"`
	ItemIDs          []int  `json:"itemIds" binding:"required,min=1"`
}

// DivideItemsRequest request model. Percentages uses the wire format
// "email1:XX%,email2:YY%".
type DivideItemsRequest struct {
	Percentages string `json:"percentages" binding:"required"`
}

// SplitEquallyRequest request model. NumWays 0 means all participants.
type SplitEquallyRequest struct {
	NumWays int `json:"numWays"`
}

// NotifyRequest request model for share notifications
type NotifyRequest struct {
	Email       string `json:"email" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	PayLink     string `json:"payLink"`
}

// BillSummary is the condensed view returned by the summary endpoint
type BillSummary struct {
	Items        []string             `json:"items"`
	Participants []ParticipantBalance `json:"participants"`
	TotalBill    float64              `json:"total_bill"`
	SplitMethod  string               `json:"split_method"`
}

// ParticipantBalance is one row of a bill summary
type ParticipantBalance struct {
	Email      string  `json:"email"`
	TotalPaid  float64 `json:"total_paid"`
	ItemsCount int     `json:"items_count"`
}
