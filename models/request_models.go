package models

// CreateTrustRequest request model
type CreateTrustRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	ContactEmail string `json:"contact_email"`
}

// CreateBillRequest request model
type CreateBillRequest struct {
	TrustID        string  `json:"trust_id" binding:"required"`
	Title          string  `json:"title" binding:"required"`
	AmountRequired float64 `json:"amount_required"`
	Description    string  `json:"description"`
	DueDate        string  `json:"due_date"`
	InvoiceURL     string  `json:"invoice_url"`
}

// CreateOrderRequest request model
type CreateOrderRequest struct {
	BillID string  `json:"bill_id" binding:"required"`
	Amount float64 `json:"amount"`
}

// CreateOrderResponse response model
type CreateOrderResponse struct {
	OrderID       string `json:"order_id"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	RazorpayKeyID string `json:"razorpay_key_id"`
}

// BillDetail bundles a bill with its ledger entries, newest first
type BillDetail struct {
	Bill         *Bill         `json:"bill"`
	Transactions []Transaction `json:"transactions"`
}

// Verification describes a recorded payment for public lookup
type Verification struct {
	PaymentID     string `json:"payment_id"`
	BillID        string `json:"bill_id"`
	TrustID       string `json:"trust_id"`
	Amount        Amount `json:"amount"`
	Currency      string `json:"currency"`
	CanonicalHash string `json:"canonical_hash"`
	HashValid     bool   `json:"hash_valid"`
	CreatedAt     int64  `json:"created_at"`
}

// PaymentRecordedEvent is pushed to live feed subscribers
type PaymentRecordedEvent struct {
	Type            string `json:"type"`
	PaymentID       string `json:"payment_id"`
	BillID          string `json:"bill_id"`
	TrustID         string `json:"trust_id"`
	Amount          Amount `json:"amount"`
	Currency        string `json:"currency"`
	AmountCollected Amount `json:"amount_collected"`
	Status          string `json:"status"`
}
