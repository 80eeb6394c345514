package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sheetapp/qlda-nhathau-ksnb-sub000/internal/repository"
	"github.com/xuri/excelize/v2"
)

var dnttExportHeaders = []string{
	"Code", "Date", "Payment reason", "Supplier", "Tax code",
	"Payment method", "Document no.", "Expense type", "Expense group",
	"Gross", "Net", "VAT", "Status", "Requester",
}

// ExportService renders the payment-request register as an xlsx workbook.
type ExportService struct {
	dnttRepo *repository.DNTTRepository
}

func NewExportService(dnttRepo *repository.DNTTRepository) *ExportService {
	return &ExportService{dnttRepo: dnttRepo}
}

// ExportPaymentRequests writes every payment request matching the filters
// into one sheet, one row per voucher, with a totals row at the bottom.
func (s *ExportService) ExportPaymentRequests(ctx context.Context, filters map[string]string) (*excelize.File, string, error) {
	// Register export is unpaginated by design; page size is a cap.
	items, _, err := s.dnttRepo.FindAll(ctx, 1, 10000, filters)
	if err != nil {
		return nil, "", fmt.Errorf("list payment requests: %w", err)
	}

	f := excelize.NewFile()
	sheet := "DNTT"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range dnttExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	var totalGross, totalNet, totalVAT float64
	for rowIdx, dntt := range items {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), dntt.ID)
		if dntt.RequestDate != nil {
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), dntt.RequestDate.Format("2006-01-02"))
		}
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), dntt.PaymentReason)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), dntt.SupplierName)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), dntt.SupplierTaxCode)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), dntt.PaymentMethod)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), dntt.DocumentNumber)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), dntt.ExpenseTypeName)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), dntt.ExpenseGroupName)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), dntt.TotalGross)
		f.SetCellValue(sheet, fmt.Sprintf("K%d", row), dntt.TotalNet)
		f.SetCellValue(sheet, fmt.Sprintf("L%d", row), dntt.VATAmount)
		f.SetCellValue(sheet, fmt.Sprintf("M%d", row), dntt.Status)
		f.SetCellValue(sheet, fmt.Sprintf("N%d", row), dntt.Requester)

		totalGross += dntt.TotalGross
		totalNet += dntt.TotalNet
		totalVAT += dntt.VATAmount
	}

	summaryRow := len(items) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("J%d", summaryRow), totalGross)
	f.SetCellValue(sheet, fmt.Sprintf("K%d", summaryRow), totalNet)
	f.SetCellValue(sheet, fmt.Sprintf("L%d", summaryRow), totalVAT)
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("N%d", summaryRow), summaryStyle)

	colWidths := []float64{26, 12, 36, 24, 14, 14, 14, 20, 20, 14, 14, 12, 10, 20}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("DNTT_register_%s.xlsx", time.Now().Format("20060102"))
	return f, filename, nil
}
