package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/trust-ledger/models"
	"github.com/fadhlanhapp/trust-ledger/services"
	"github.com/fadhlanhapp/trust-ledger/utils"
)

// TrustHandler handles trust and bill HTTP requests
type TrustHandler struct {
	trustService *services.TrustService
	billService  *services.BillService
}

// NewTrustHandler creates a new trust handler
func NewTrustHandler(trustService *services.TrustService, billService *services.BillService) *TrustHandler {
	return &TrustHandler{
		trustService: trustService,
		billService:  billService,
	}
}

// CreateTrust handles POST /trusts
func (h *TrustHandler) CreateTrust(c *gin.Context) {
	var req models.CreateTrustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	trust, err := h.trustService.CreateTrust(c.Request.Context(), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleCreated(c, trust)
}

// GetTrust handles GET /trusts/:id
func (h *TrustHandler) GetTrust(c *gin.Context) {
	trust, err := h.trustService.GetTrust(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, trust)
}

// CreateBill handles POST /bills
func (h *TrustHandler) CreateBill(c *gin.Context) {
	var req models.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleCreated(c, bill)
}

// ListTrusts handles GET /public/trusts
func (h *TrustHandler) ListTrusts(c *gin.Context) {
	trusts, err := h.trustService.ListTrusts(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, trusts)
}

// ListBills handles GET /public/trusts/:id/bills
func (h *TrustHandler) ListBills(c *gin.Context) {
	bills, err := h.billService.ListBillsByTrust(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, bills)
}
