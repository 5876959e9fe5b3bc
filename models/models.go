// models/models.go
package models

import (
	"encoding/json"
	"strconv"
	"time"
)

// Amount is a monetary value in minor units (paise). It is rendered in JSON
// as major units with two decimals.
type Amount int64

// Major returns the amount in major units
func (a Amount) Major() float64 {
	return float64(a) / 100
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(a.Major(), 'f', 2, 64)), nil
}

// Trust represents an organization that raises money through bills
type Trust struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ContactEmail string `json:"contact_email"`
	CreatedAt    int64  `json:"created_at"`
}

// Bill represents a fundraising target owned by a trust
type Bill struct {
	ID              string `json:"id"`
	TrustID         string `json:"trust_id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	AmountRequired  Amount `json:"amount_required"`
	AmountCollected Amount `json:"amount_collected"`
	Status          string `json:"status"`
	DueDate         string `json:"due_date,omitempty"`
	InvoiceURL      string `json:"invoice_url,omitempty"`
	CreatedAt       int64  `json:"created_at"`
}

// Remaining returns how much is still needed to fully pay the bill
func (b *Bill) Remaining() Amount {
	if b.AmountCollected >= b.AmountRequired {
		return 0
	}
	return b.AmountRequired - b.AmountCollected
}

// Transaction is an immutable ledger entry for one captured payment
type Transaction struct {
	ID            int64           `json:"id"`
	BillID        string          `json:"bill_id"`
	TrustID       string          `json:"trust_id"`
	PaymentID     string          `json:"payment_id"`
	OrderID       string          `json:"order_id,omitempty"`
	DonorEmail    string          `json:"-"`
	Amount        Amount          `json:"amount"`
	Currency      string          `json:"currency"`
	CanonicalHash string          `json:"canonical_hash"`
	RawMeta       json.RawMessage `json:"-"`
	CreatedAt     int64           `json:"created_at"`
}

// AuditLog is an append-only record describing something that happened
type AuditLog struct {
	ID        int64           `json:"id"`
	EventType string          `json:"event_type"`
	RefTable  string          `json:"ref_table"`
	RefID     string          `json:"ref_id"`
	Data      json.RawMessage `json:"data"`
	CreatedAt int64           `json:"created_at"`
}

// CapturedPayment is a verified payment event handed to the ledger
type CapturedPayment struct {
	PaymentID     string
	OrderID       string
	BillID        string
	Amount        Amount
	Currency      string
	Email         string
	Contact       string
	Method        string
	CreatedAtUnix int64
	Raw           json.RawMessage
}

// TransactionMeta is the fingerprinted description of a recorded payment
type TransactionMeta struct {
	PaymentID     string  `json:"razorpay_payment_id"`
	OrderID       string  `json:"razorpay_order_id"`
	BillID        string  `json:"bill_id"`
	TrustID       string  `json:"trust_id"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Email         string  `json:"email"`
	Contact       string  `json:"contact"`
	Method        string  `json:"method"`
	CreatedAtUnix int64   `json:"created_at_unix"`
}

// NewTrust creates a new Trust instance
func NewTrust(id, name, description, contactEmail string) *Trust {
	return &Trust{
		ID:           id,
		Name:         name,
		Description:  description,
		ContactEmail: contactEmail,
		CreatedAt:    time.Now().UnixMilli(),
	}
}

// NewBill creates a new open Bill with nothing collected
func NewBill(id, trustID, title, description string, amountRequired Amount) *Bill {
	return &Bill{
		ID:             id,
		TrustID:        trustID,
		Title:          title,
		Description:    description,
		AmountRequired: amountRequired,
		Status:         "OPEN",
		CreatedAt:      time.Now().UnixMilli(),
	}
}
