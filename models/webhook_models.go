package models

import (
	"bytes"
	"encoding/json"
)

// WebhookEnvelope is the outer shape of every gateway event
type WebhookEnvelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// PaymentPayload carries the payment entity of a payment.* event
type PaymentPayload struct {
	Payment struct {
		Entity json.RawMessage `json:"entity"`
	} `json:"payment"`
}

// PaymentEntity holds the fields of a gateway payment the ledger relies on
type PaymentEntity struct {
	ID        string          `json:"id" binding:"required"`
	OrderID   string          `json:"order_id"`
	Amount    int64           `json:"amount" binding:"required,gt=0"`
	Currency  string          `json:"currency" binding:"required"`
	Email     string          `json:"email"`
	Contact   string          `json:"contact"`
	Method    string          `json:"method"`
	CreatedAt int64           `json:"created_at"`
	Notes     json.RawMessage `json:"notes"`
}

// BillID reads notes.bill_id. The gateway sends an empty array instead of an
// object when no notes were attached.
func (p *PaymentEntity) BillID() string {
	if len(p.Notes) == 0 || !bytes.HasPrefix(bytes.TrimSpace(p.Notes), []byte("{")) {
		return ""
	}
	var notes struct {
		BillID string `json:"bill_id"`
	}
	if err := json.Unmarshal(p.Notes, &notes); err != nil {
		return ""
	}
	return notes.BillID
}

// WebhookResponse is returned to the gateway
type WebhookResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate,omitempty"`
}
