package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/trust-ledger/services"
	"github.com/fadhlanhapp/trust-ledger/utils"
)

// AuditHandler exposes the audit log to administrators
type AuditHandler struct {
	ledgerService *services.LedgerService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(ledgerService *services.LedgerService) *AuditHandler {
	return &AuditHandler{ledgerService: ledgerService}
}

// ListAudit handles GET /audit?event_type=&limit=
func (h *AuditHandler) ListAudit(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.HandleError(c, utils.NewBadRequestError("limit must be a number"))
			return
		}
		limit = n
	}

	entries, err := h.ledgerService.AuditLog(c.Request.Context(), c.Query("event_type"), limit)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, entries)
}
