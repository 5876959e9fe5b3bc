package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"github.com/fadhlanhapp/trust-ledger/services"
	"github.com/fadhlanhapp/trust-ledger/utils"
)

const (
	defaultQRSize = 256
	maxQRSize     = 1024
)

// PublicHandler serves the unauthenticated transparency endpoints
type PublicHandler struct {
	billService   *services.BillService
	ledgerService *services.LedgerService
	exportService *services.ExportService
	publicBaseURL string
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(billService *services.BillService, ledgerService *services.LedgerService, exportService *services.ExportService, publicBaseURL string) *PublicHandler {
	return &PublicHandler{
		billService:   billService,
		ledgerService: ledgerService,
		exportService: exportService,
		publicBaseURL: publicBaseURL,
	}
}

// GetBill handles GET /public/bills/:id
func (h *PublicHandler) GetBill(c *gin.Context) {
	detail, err := h.billService.GetBillDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, detail)
}

// VerifyPayment handles GET /public/verify/:payment_id
func (h *PublicHandler) VerifyPayment(c *gin.Context) {
	verification, err := h.ledgerService.VerifyPayment(c.Request.Context(), c.Param("payment_id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, verification)
}

// ExportBill handles GET /public/bills/:id/export
func (h *PublicHandler) ExportBill(c *gin.Context) {
	excelFile, filename, err := h.exportService.ExportBill(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer excelFile.Close()

	// Set headers for file download
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Header("Content-Transfer-Encoding", "binary")

	if err := excelFile.Write(c.Writer); err != nil {
		slog.Error("Failed to write workbook", "bill_id", c.Param("id"), "error", err)
	}
}

// BillQRCode handles GET /public/bills/:id/qrcode?size=256
func (h *PublicHandler) BillQRCode(c *gin.Context) {
	bill, err := h.billService.GetBill(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	size := defaultQRSize
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 64 || n > maxQRSize {
			utils.HandleError(c, utils.NewBadRequestError("size must be between 64 and 1024"))
			return
		}
		size = n
	}

	png, err := qrcode.Encode(h.publicBaseURL+"/bills/"+bill.ID, qrcode.Medium, size)
	if err != nil {
		utils.HandleError(c, fmt.Errorf("failed to encode qr code: %w", err))
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/png", png)
}
