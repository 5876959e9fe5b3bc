package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/trust-ledger/models"
	"github.com/fadhlanhapp/trust-ledger/services"
	"github.com/fadhlanhapp/trust-ledger/utils"
)

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	orderService   *services.OrderService
	webhookService *services.WebhookService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(orderService *services.OrderService, webhookService *services.WebhookService) *PaymentHandler {
	return &PaymentHandler{
		orderService:   orderService,
		webhookService: webhookService,
	}
}

// CreateOrder handles POST /payments/create-order
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, order)
}

// Webhook handles POST /payments/webhook. The signature covers the raw body,
// so it must be read before any decoding.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	resp, err := h.webhookService.Handle(c.Request.Context(), body, c.GetHeader(utils.SignatureHeader))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, resp)
}
