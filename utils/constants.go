package utils

const (
	// Bill statuses
	BillStatusOpen          = "OPEN"
	BillStatusPartiallyPaid = "PARTIALLY_PAID"
	BillStatusPaid          = "PAID"

	// Audit event types
	AuditPaymentRecorded       = "PAYMENT_RECORDED"
	AuditPaymentForUnknownBill = "PAYMENT_FOR_UNKNOWN_BILL"
	AuditPaymentDuplicate      = "PAYMENT_DUPLICATE"

	// Audit reference tables
	RefTableGateway      = "razorpay"
	RefTableTransactions = "transactions"

	// Gateway webhook
	EventPaymentCaptured = "payment.captured"
	SignatureHeader      = "x-razorpay-signature"
	AdminTokenHeader     = "X-Admin-Token"
	DefaultCurrency      = "INR"

	// Webhook response statuses
	WebhookStatusIgnored      = "ignored"
	WebhookStatusBillNotFound = "bill_not_found"
	WebhookStatusOK           = "ok"

	// HTTP status messages
	ErrInvalidRequest     = "Invalid request"
	ErrMissingSignature   = "Missing signature"
	ErrInvalidSignature   = "Invalid signature"
	ErrInvalidPayload     = "Invalid webhook payload"
	ErrTrustNotFound      = "Trust not found"
	ErrBillNotFound       = "Bill not found"
	ErrBillAlreadyPaid    = "Bill already fully paid"
	ErrInvalidAmount      = "Invalid amount"
	ErrTxnNotFound        = "Transaction not found"
	ErrUnauthorized       = "Unauthorized"
	ErrFailedToStore      = "Failed to store data"
	ErrFailedToRetrieve   = "Failed to retrieve data"
	ErrGatewayUnavailable = "Payment gateway unavailable"

	// Minor units per major unit of currency
	MoneyPrecision = 100.0
)
