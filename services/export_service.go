package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/fadhlanhapp/trust-ledger/models"
	"github.com/fadhlanhapp/trust-ledger/utils"
)

const (
	billSheet         = "Bill"
	transactionsSheet = "Transactions"
)

// ExportService builds spreadsheet exports of a bill's ledger
type ExportService struct {
	billService *BillService
}

// NewExportService creates a new export service
func NewExportService(billService *BillService) *ExportService {
	return &ExportService{billService: billService}
}

// ExportBill generates a workbook with the bill summary and every transaction
func (s *ExportService) ExportBill(ctx context.Context, billID string) (*excelize.File, string, error) {
	detail, err := s.billService.GetBillDetail(ctx, billID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create header style: %w", err)
	}

	if err := s.createBillSheet(f, detail.Bill, headerStyle); err != nil {
		return nil, "", fmt.Errorf("failed to create bill sheet: %w", err)
	}
	if err := s.createTransactionsSheet(f, detail.Transactions, headerStyle); err != nil {
		return nil, "", fmt.Errorf("failed to create transactions sheet: %w", err)
	}

	// Delete the default sheet
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", err
	}
	if idx, err := f.GetSheetIndex(billSheet); err == nil {
		f.SetActiveSheet(idx)
	}

	filename := fmt.Sprintf("%s_Ledger_%s.xlsx",
		utils.CleanFileName(detail.Bill.Title),
		time.Now().Format(time.DateOnly))

	return f, filename, nil
}

func (s *ExportService) createBillSheet(f *excelize.File, bill *models.Bill, headerStyle int) error {
	if _, err := f.NewSheet(billSheet); err != nil {
		return err
	}

	rows := [][2]any{
		{"Bill ID", bill.ID},
		{"Trust ID", bill.TrustID},
		{"Title", bill.Title},
		{"Description", bill.Description},
		{"Amount Required", bill.AmountRequired.Major()},
		{"Amount Collected", bill.AmountCollected.Major()},
		{"Remaining", bill.Remaining().Major()},
		{"Status", bill.Status},
		{"Due Date", bill.DueDate},
		{"Invoice URL", bill.InvoiceURL},
		{"Created At", time.UnixMilli(bill.CreatedAt).UTC().Format(time.RFC3339)},
	}
	for i, row := range rows {
		r := i + 1
		if err := f.SetCellValue(billSheet, fmt.Sprintf("A%d", r), row[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(billSheet, fmt.Sprintf("B%d", r), row[1]); err != nil {
			return err
		}
	}

	if err := f.SetCellStyle(billSheet, "A1", fmt.Sprintf("A%d", len(rows)), headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(billSheet, "A", "A", 20); err != nil {
		return err
	}
	return f.SetColWidth(billSheet, "B", "B", 45)
}

func (s *ExportService) createTransactionsSheet(f *excelize.File, txns []models.Transaction, headerStyle int) error {
	if _, err := f.NewSheet(transactionsSheet); err != nil {
		return err
	}

	headers := []string{"Date", "Payment ID", "Order ID", "Amount", "Currency", "Canonical Hash"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(transactionsSheet, cell, header); err != nil {
			return err
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(transactionsSheet, "A1", lastHeader, headerStyle); err != nil {
		return err
	}

	var total models.Amount
	for i, txn := range txns {
		row := i + 2
		values := []any{
			time.UnixMilli(txn.CreatedAt).UTC().Format(time.RFC3339),
			txn.PaymentID,
			txn.OrderID,
			txn.Amount.Major(),
			txn.Currency,
			txn.CanonicalHash,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(transactionsSheet, cell, v); err != nil {
				return err
			}
		}
		total += txn.Amount
	}

	totalRow := len(txns) + 3
	if err := f.SetCellValue(transactionsSheet, fmt.Sprintf("C%d", totalRow), "Total"); err != nil {
		return err
	}
	if err := f.SetCellValue(transactionsSheet, fmt.Sprintf("D%d", totalRow), total.Major()); err != nil {
		return err
	}

	if err := f.SetColWidth(transactionsSheet, "A", "E", 22); err != nil {
		return err
	}
	return f.SetColWidth(transactionsSheet, "F", "F", 68)
}
