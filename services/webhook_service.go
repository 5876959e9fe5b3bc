package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin/binding"

	"github.com/fadhlanhapp/trust-ledger/metrics"
	"github.com/fadhlanhapp/trust-ledger/models"
	"github.com/fadhlanhapp/trust-ledger/utils"
)

// PaymentRecorder records captured payments. *LedgerService satisfies it.
type PaymentRecorder interface {
	RecordPayment(ctx context.Context, payment models.CapturedPayment) (LedgerOutcome, error)
}

// WebhookService authenticates and dispatches gateway webhook deliveries
type WebhookService struct {
	ledger  PaymentRecorder
	secret  string
	metrics *metrics.Metrics
}

// NewWebhookService creates a new webhook service
func NewWebhookService(ledger PaymentRecorder, secret string, m *metrics.Metrics) *WebhookService {
	return &WebhookService{
		ledger:  ledger,
		secret:  secret,
		metrics: m,
	}
}

// Handle processes one webhook delivery. body must be the exact bytes the
// gateway signed.
func (s *WebhookService) Handle(ctx context.Context, body []byte, signature string) (*models.WebhookResponse, error) {
	ok, err := utils.VerifySignature(body, signature, s.secret)
	if errors.Is(err, utils.ErrEmptySignature) {
		s.metrics.ObserveWebhook("rejected")
		return nil, utils.NewBadRequestError(utils.ErrMissingSignature)
	}
	if err != nil || !ok {
		s.metrics.ObserveWebhook("rejected")
		slog.Warn("Webhook signature mismatch")
		return nil, utils.NewBadRequestError(utils.ErrInvalidSignature)
	}

	var envelope models.WebhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Event == "" {
		s.metrics.ObserveWebhook("malformed")
		return nil, utils.NewBadRequestError(utils.ErrInvalidPayload)
	}

	if envelope.Event != utils.EventPaymentCaptured {
		s.metrics.ObserveWebhook(utils.WebhookStatusIgnored)
		slog.Debug("Ignoring webhook event", "event", envelope.Event)
		return &models.WebhookResponse{Status: utils.WebhookStatusIgnored}, nil
	}

	entity, err := decodePaymentEntity(envelope.Payload)
	if err != nil {
		s.metrics.ObserveWebhook("malformed")
		slog.Warn("Rejecting malformed payment entity", "error", err)
		return nil, utils.NewBadRequestError(utils.ErrInvalidPayload)
	}

	outcome, err := s.ledger.RecordPayment(ctx, models.CapturedPayment{
		PaymentID:     entity.ID,
		OrderID:       entity.OrderID,
		BillID:        entity.BillID(),
		Amount:        models.Amount(entity.Amount),
		Currency:      entity.Currency,
		Email:         entity.Email,
		Contact:       entity.Contact,
		Method:        entity.Method,
		CreatedAtUnix: entity.CreatedAt,
		Raw:           entity.raw,
	})
	if err != nil {
		s.metrics.ObserveWebhook("error")
		slog.Error("Failed to record payment", "payment_id", entity.ID, "error", err)
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	s.metrics.ObserveWebhook(string(outcome))
	switch outcome {
	case OutcomeBillNotFound:
		return &models.WebhookResponse{Status: utils.WebhookStatusBillNotFound}, nil
	case OutcomeDuplicate:
		return &models.WebhookResponse{Status: utils.WebhookStatusOK, Duplicate: true}, nil
	default:
		return &models.WebhookResponse{Status: utils.WebhookStatusOK}, nil
	}
}

type decodedEntity struct {
	models.PaymentEntity
	raw json.RawMessage
}

func decodePaymentEntity(payload json.RawMessage) (*decodedEntity, error) {
	if len(payload) == 0 {
		return nil, errors.New("payload is missing")
	}
	var p models.PaymentPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, err
	}
	if len(p.Payment.Entity) == 0 {
		return nil, errors.New("payload.payment.entity is missing")
	}

	var entity models.PaymentEntity
	if err := json.Unmarshal(p.Payment.Entity, &entity); err != nil {
		return nil, err
	}
	if err := binding.Validator.ValidateStruct(&entity); err != nil {
		return nil, err
	}
	return &decodedEntity{PaymentEntity: entity, raw: p.Payment.Entity}, nil
}
